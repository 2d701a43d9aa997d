package storage

import (
	"encoding/json"
	"path/filepath"
	"sort"

	"github.com/dpshade/dsinit/internal/fs"
	"github.com/dpshade/dsinit/internal/models"
)

// KnownTags collects the tags recorded by projects scaffolded directly under
// base. Directories without a readable info.json are skipped.
func KnownTags(fsys fs.FS, base string) ([]string, error) {
	entries, err := fsys.ReadDir(base)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var tags []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		data, err := fsys.ReadFile(filepath.Join(base, entry.Name(), InfoFile))
		if err != nil {
			continue
		}
		var info models.ProjectInfo
		if err := json.Unmarshal(data, &info); err != nil {
			continue
		}
		for _, tag := range info.Tags {
			if tag == "" || seen[tag] {
				continue
			}
			seen[tag] = true
			tags = append(tags, tag)
		}
	}

	sort.Strings(tags)
	return tags, nil
}
