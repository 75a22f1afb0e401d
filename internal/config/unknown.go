package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// detectUnknownFields compares raw manifest JSON with the known struct fields.
// It runs after a successful decode, so re-parsing failures are not expected.
func detectUnknownFields(data []byte) []string {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return []string{"internal: failed to re-parse manifest for unknown field detection"}
	}

	var warnings []string
	known := getJSONFields(reflect.TypeOf(Manifest{}))
	for _, key := range sortedKeys(raw) {
		if key == "$schema" {
			continue
		}
		if !known[key] {
			warnings = append(warnings, fmt.Sprintf("unknown field %q at root level (ignored)", key))
		}
	}

	if defaults, ok := raw["defaults"]; ok {
		warnings = append(warnings, checkRunFields(defaults, "defaults")...)
	}

	var runs []json.RawMessage
	if err := json.Unmarshal(raw["runs"], &runs); err == nil {
		for i, run := range runs {
			warnings = append(warnings, checkRunFields(run, fmt.Sprintf("runs[%d]", i))...)
		}
	}
	return warnings
}

func checkRunFields(data json.RawMessage, where string) []string {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil
	}
	known := getJSONFields(reflect.TypeOf(GenerationConfig{}))
	var warnings []string
	for _, key := range sortedKeys(fields) {
		if !known[key] {
			warnings = append(warnings, fmt.Sprintf("unknown field %q in %s (ignored)", key, where))
		}
	}
	return warnings
}

// getJSONFields returns a map of known JSON field names for a struct type.
func getJSONFields(t reflect.Type) map[string]bool {
	fields := make(map[string]bool)
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("json")
		if tag == "" || tag == "-" {
			continue
		}
		if name := strings.Split(tag, ",")[0]; name != "" {
			fields[name] = true
		}
	}
	return fields
}

func sortedKeys(m map[string]json.RawMessage) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
