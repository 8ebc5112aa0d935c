// Package config holds what the config stores share: coercion of stored
// values to the types settings ask for, and the mapping between flat
// dotted keys and nested TOML tables.
package config

import (
	"sort"
	"strconv"
	"strings"
)

// String returns v when it is a string.
func String(v any) string {
	s, _ := v.(string)
	return s
}

// Int accepts every integer shape a TOML decoder or the CLI produces,
// including numeric strings. Anything else is 0.
func Int(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0
		}
		return i
	default:
		return 0
	}
}

// Bool accepts bools and strconv.ParseBool strings.
func Bool(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		parsed, _ := strconv.ParseBool(strings.TrimSpace(b))
		return parsed
	default:
		return false
	}
}

// Strings accepts string slices and TOML arrays, dropping non-string
// items. The result never aliases v.
func Strings(v any) []string {
	switch items := v.(type) {
	case []string:
		return append([]string(nil), items...)
	case []any:
		out := make([]string, 0, len(items))
		for _, item := range items {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// Flatten turns nested tables into dotted keys: {"a": {"b": 1}} becomes
// {"a.b": 1}.
func Flatten(tree map[string]any) map[string]any {
	flat := make(map[string]any)
	flattenInto(flat, "", tree)
	return flat
}

func flattenInto(flat map[string]any, prefix string, tree map[string]any) {
	for k, v := range tree {
		if prefix != "" {
			k = prefix + "." + k
		}
		if table, ok := v.(map[string]any); ok {
			flattenInto(flat, k, table)
			continue
		}
		flat[k] = v
	}
}

// Nest is the inverse of Flatten. A key that is both a value and a table
// prefix, such as "a" next to "a.b", keeps the later one in sorted order
// as a quoted dotted key at the top level.
func Nest(flat map[string]any) map[string]any {
	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	tree := make(map[string]any)
	for _, k := range keys {
		if !place(tree, strings.Split(k, "."), flat[k]) {
			tree[k] = flat[k]
		}
	}
	return tree
}

func place(tree map[string]any, path []string, v any) bool {
	head := path[0]
	if len(path) == 1 {
		if _, taken := tree[head]; taken {
			return false
		}
		tree[head] = v
		return true
	}
	next, ok := tree[head]
	if !ok {
		next = make(map[string]any)
		tree[head] = next
	}
	table, ok := next.(map[string]any)
	return ok && place(table, path[1:], v)
}
