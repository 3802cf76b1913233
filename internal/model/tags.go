package model

import (
	"database/sql/driver"
	"encoding/json"
	"strings"

	"github.com/lib/pq"
)

// TagList is an ordered list of normalized tags. It accepts both a JSON
// array and a single comma-separated string on input; entries are trimmed,
// lowercased, and empty entries dropped. It always marshals as an array.
type TagList []string

func (t *TagList) UnmarshalJSON(data []byte) error {
	var raw []string
	if err := json.Unmarshal(data, &raw); err != nil {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.Split(s, ",")
	}
	*t = NormalizeTags(raw)
	return nil
}

func (t TagList) MarshalJSON() ([]byte, error) {
	if t == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(t))
}

// Value stores the list as a Postgres text[].
func (t TagList) Value() (driver.Value, error) {
	return pq.StringArray(t).Value()
}

func (t *TagList) Scan(src any) error {
	var arr pq.StringArray
	if err := arr.Scan(src); err != nil {
		return err
	}
	*t = TagList(arr)
	return nil
}

// NormalizeTags trims and lowercases each tag, dropping empties.
func NormalizeTags(raw []string) TagList {
	tags := make(TagList, 0, len(raw))
	for _, tag := range raw {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
