package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// encodeTags serializes tags as a JSON array without HTML escaping, so the
// indexed text matches what the caller submitted.
func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(tags); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

func decodeTags(raw string) ([]string, error) {
	tags := []string{}
	if raw == "" {
		return tags, nil
	}
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		return nil, fmt.Errorf("decode tags: %w", err)
	}
	return tags, nil
}

// querySyntaxMarkers are engine messages caused by the MATCH expression itself.
var querySyntaxMarkers = []string{
	"fts5: syntax error",
	"unterminated string",
	"unknown special query",
}

// noSuchColumn prefixes the error for an unknown column. A MATCH column filter
// such as "foo:bar" names a bare column; statement columns are always qualified.
const noSuchColumn = "no such column: "

func isQuerySyntaxError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, m := range querySyntaxMarkers {
		if strings.Contains(msg, m) {
			return true
		}
	}
	return isUnknownFilterColumn(msg)
}

func isUnknownFilterColumn(msg string) bool {
	i := strings.Index(msg, noSuchColumn)
	if i < 0 {
		return false
	}
	column, _, _ := strings.Cut(msg[i+len(noSuchColumn):], " ")
	return column != "" && !strings.Contains(column, ".")
}
