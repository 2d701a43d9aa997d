package models

import (
	"strings"
	"time"
)

// CreateAtLayout formats ProjectInfo.CreateAt as two-digit year, month and day.
const CreateAtLayout = "06-01-02"

// TagSeparator is the literal separator between tags in a tags answer.
const TagSeparator = ", "

// ProjectInfo is the metadata record written to info.json
type ProjectInfo struct {
	DirName     string   `json:"dir_name"`
	Author      string   `json:"author"`
	CreateAt    string   `json:"create_at"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// NewProjectInfo builds the record for answers collected at now.
// Description is always empty; ProjectName is not part of the record.
func NewProjectInfo(a Answers, now time.Time) ProjectInfo {
	tags := a.Tags
	if tags == nil {
		tags = []string{}
	}
	return ProjectInfo{
		DirName:     a.DirName,
		Author:      a.Author,
		CreateAt:    now.Format(CreateAtLayout),
		Description: "",
		Tags:        tags,
	}
}

// SplitTags splits raw on TagSeparator. Pieces are neither trimmed nor
// deduplicated, and an empty raw yields a single empty tag.
func SplitTags(raw string) []string {
	return strings.Split(raw, TagSeparator)
}

// Encode serializes the record on a single line in field order, using
// `", "` and `": "` separators and ASCII-only string escapes.
func (p ProjectInfo) Encode() []byte {
	var b strings.Builder
	b.WriteByte('{')
	writeMember(&b, "dir_name", p.DirName)
	b.WriteString(", ")
	writeMember(&b, "author", p.Author)
	b.WriteString(", ")
	writeMember(&b, "create_at", p.CreateAt)
	b.WriteString(", ")
	writeMember(&b, "description", p.Description)
	b.WriteString(", ")
	writeString(&b, "tags")
	b.WriteString(": [")
	for i, tag := range p.Tags {
		if i > 0 {
			b.WriteString(", ")
		}
		writeString(&b, tag)
	}
	b.WriteString("]}")
	return []byte(b.String())
}

func writeMember(b *strings.Builder, key, value string) {
	writeString(b, key)
	b.WriteString(": ")
	writeString(b, value)
}

const hexDigits = "0123456789abcdef"

// writeString writes s as a JSON string literal escaping everything outside
// printable ASCII. Runes beyond the BMP are written as surrogate pairs.
func writeString(b *strings.Builder, s string) {
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		default:
			switch {
			case r >= 0x20 && r <= 0x7e:
				b.WriteRune(r)
			case r > 0xffff:
				r -= 0x10000
				writeUnicodeEscape(b, 0xd800|((r>>10)&0x3ff))
				writeUnicodeEscape(b, 0xdc00|(r&0x3ff))
			default:
				writeUnicodeEscape(b, r)
			}
		}
	}
	b.WriteByte('"')
}

func writeUnicodeEscape(b *strings.Builder, r rune) {
	b.WriteString(`\u`)
	b.WriteByte(hexDigits[(r>>12)&0xf])
	b.WriteByte(hexDigits[(r>>8)&0xf])
	b.WriteByte(hexDigits[(r>>4)&0xf])
	b.WriteByte(hexDigits[r&0xf])
}
