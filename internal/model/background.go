package model

import "fmt"

// Background is the narrative context of an experiment. Every field defaults to "".
type Background struct {
	Orientation  string `json:"orientation"`
	Purpose      string `json:"purpose"`
	Hypothesis   string `json:"hypothesis"`
	CitationPath string `json:"citation_path"`
	Citation     string `json:"citation"`
}

// NewBackground builds a Background from raw. It never fails: missing or null
// fields become "", non-string values are formatted, unknown fields are ignored.
func NewBackground(raw map[string]any) Background {
	return Background{
		Orientation:  textField(raw, "orientation"),
		Purpose:      textField(raw, "purpose"),
		Hypothesis:   textField(raw, "hypothesis"),
		CitationPath: textField(raw, "citation_path"),
		Citation:     textField(raw, "citation"),
	}
}

func textField(obj map[string]any, key string) string {
	switch v := obj[key].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
