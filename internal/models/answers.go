package models

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Answers holds the values collected from the user before scaffolding.
type Answers struct {
	DirName     string  `yaml:"dir_name"`
	ProjectName string  `yaml:"project_name"`
	Author      string  `yaml:"author"`
	Tags        TagList `yaml:"tags"`
}

// TagList decodes from either a ", "-separated string or a YAML sequence.
type TagList []string

// UnmarshalYAML implements yaml.Unmarshaler
func (t *TagList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var raw string
		if err := node.Decode(&raw); err != nil {
			return err
		}
		*t = SplitTags(raw)
		return nil
	case yaml.SequenceNode:
		var tags []string
		if err := node.Decode(&tags); err != nil {
			return err
		}
		*t = tags
		return nil
	default:
		return fmt.Errorf("line %d: tags must be a string or a list of strings", node.Line)
	}
}
