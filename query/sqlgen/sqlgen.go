// Package sqlgen provides parameter-safe SQL fragments for different database providers.
package sqlgen

import (
	"strings"
)

// Fragment represents a piece of SQL text with its bound arguments.
// Placeholders are always written as "?" and rebound per dialect at
// execution time.
type Fragment struct {
	SQL  string
	Args []interface{}
}

// Raw creates a fragment from literal SQL text and its arguments.
// The text must contain one "?" placeholder per argument.
func Raw(sql string, args ...interface{}) Fragment {
	return Fragment{SQL: sql, Args: args}
}

// Bind creates a single-placeholder fragment binding one value.
func Bind(value interface{}) Fragment {
	return Fragment{SQL: "?", Args: []interface{}{value}}
}

// True returns a fragment that matches every row.
func True() Fragment {
	return Fragment{SQL: "1 = 1"}
}

// IsEmpty returns true if the fragment carries no SQL text.
func (f Fragment) IsEmpty() bool {
	return f.SQL == ""
}

// Append returns a new fragment with extra SQL text and arguments
// concatenated after f.
func (f Fragment) Append(sql string, args ...interface{}) Fragment {
	return Fragment{
		SQL:  f.SQL + sql,
		Args: append(append([]interface{}{}, f.Args...), args...),
	}
}

// Join combines fragments with a separator. Argument order follows
// fragment order.
func Join(sep string, fragments ...Fragment) Fragment {
	parts := make([]string, 0, len(fragments))
	var args []interface{}
	for _, f := range fragments {
		if f.IsEmpty() {
			continue
		}
		parts = append(parts, f.SQL)
		args = append(args, f.Args...)
	}
	return Fragment{
		SQL:  strings.Join(parts, sep),
		Args: args,
	}
}
