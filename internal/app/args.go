package app

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Args is the free-form JSON body of an AI request.
type Args map[string]any

// lookup: safe nested lookup with dot paths on maps.
func (a Args) lookup(path string) any {
	cur := any(map[string]any(a))
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		v, ok := obj[part]
		if !ok {
			return nil
		}
		cur = v
	}
	return cur
}

// Str returns the first non-empty string found at paths, or "".
func (a Args) Str(paths ...string) string {
	for _, p := range paths {
		if s, ok := a.lookup(p).(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

// Float reads a number that may arrive as a JSON number or a string such as
// "1.500,50" or "8,0".
func (a Args) Float(paths ...string) (float64, bool) {
	for _, p := range paths {
		switch v := a.lookup(p).(type) {
		case float64:
			return v, true
		case json.Number:
			if f, err := v.Float64(); err == nil {
				return f, true
			}
		case string:
			s := strings.TrimSpace(v)
			if strings.Contains(s, ",") {
				s = strings.ReplaceAll(s, ".", "")
				s = strings.ReplaceAll(s, ",", ".")
			}
			if s == "" {
				continue
			}
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				return f, true
			}
		}
	}
	return 0, false
}

// Strings returns a list of strings; a single string becomes a one-item list.
func (a Args) Strings(path string) []string {
	switch v := a.lookup(path).(type) {
	case []any:
		out := make([]string, 0, len(v))
		for _, it := range v {
			if s, ok := it.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		if v != "" {
			return []string{v}
		}
	}
	return nil
}

// JSON renders the value at path for embedding in a prompt, or "{}" when absent.
func (a Args) JSON(path string) string {
	v := a.lookup(path)
	if v == nil {
		return "{}"
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(b)
}

func money(f float64) string { return strconv.FormatFloat(f, 'f', 2, 64) }

func joinNonEmpty(sep string, parts ...string) string {
	var out []string
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return strings.Join(out, sep)
}
