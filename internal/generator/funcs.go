package generator

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"text/template"

	"github.com/AndreyAkinshin/hypogen/internal/model"
	"github.com/AndreyAkinshin/hypogen/internal/naming"
)

// FuncMap returns the helpers available to every template.
func FuncMap() template.FuncMap {
	m := make(template.FuncMap, len(funcMap))
	for k, v := range funcMap {
		m[k] = v
	}
	return m
}

var funcMap = template.FuncMap{
	"py":       pyLiteral,
	"snake":    naming.ToSnakeCase,
	"pascal":   naming.ToPascalCase,
	"sanitize": naming.SanitizeIdentifier,
	"comment":  comment,
	"join":     join,
	"indent":   indent,
}

// pyLiteral renders v as a Python literal.
func pyLiteral(v any) string {
	switch x := v.(type) {
	case nil:
		return "None"
	case bool:
		if x {
			return "True"
		}
		return "False"
	case string:
		return strconv.Quote(x)
	case json.Number:
		return x.String()
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return pyFloat(x)
	case Case:
		return "(" + pyLiteral(x.Input) + ", " + pyLiteral(x.Expected) + ")"
	case model.ParameterValue:
		return pyLiteral(x.Value)
	case []any:
		return pyList(len(x), func(i int) any { return x[i] })
	case []string:
		return pyList(len(x), func(i int) any { return x[i] })
	case []Case:
		return pyList(len(x), func(i int) any { return x[i] })
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = strconv.Quote(k) + ": " + pyLiteral(x[k])
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		rv := reflect.ValueOf(v)
		if rv.Kind() == reflect.Slice {
			return pyList(rv.Len(), func(i int) any { return rv.Index(i).Interface() })
		}
		return strconv.Quote(fmt.Sprint(v))
	}
}

func pyList(n int, at func(int) any) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = pyLiteral(at(i))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func pyFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return `float("inf")`
	case math.IsInf(f, -1):
		return `float("-inf")`
	case math.IsNaN(f):
		return `float("nan")`
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eEn") {
		s += ".0"
	}
	return s
}

// comment prefixes every line of s with "# ".
func comment(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight("# "+line, " ")
	}
	return strings.Join(lines, "\n")
}

func join(sep string, items []string) string {
	return strings.Join(items, sep)
}

// indent prefixes every non-empty line of s with n spaces.
func indent(n int, s string) string {
	pad := strings.Repeat(" ", n)
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = pad + line
		}
	}
	return strings.Join(lines, "\n")
}
