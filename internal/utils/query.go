package utils

import (
	"net/url"
	"strconv"
	"strings"
)

// QueryInt safely parses an integer from query parameters.
// If missing or invalid, returns the provided default.
func QueryInt(q url.Values, key string, def int) int {
	v := strings.TrimSpace(q.Get(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// FormBool reads an HTML checkbox: present and not "0"/"false" means true.
func FormBool(q url.Values, key string) bool {
	v, ok := q[key]
	if !ok || len(v) == 0 {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(v[len(v)-1])) {
	case "", "0", "false", "off":
		return false
	}
	return true
}

// FormInts parses every value of key as an int, skipping junk.
func FormInts(q url.Values, key string) []int {
	out := make([]int, 0, len(q[key]))
	for _, v := range q[key] {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			out = append(out, n)
		}
	}
	return out
}
