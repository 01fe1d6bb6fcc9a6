package query

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
)

var controlKeys = map[string]struct{}{
	"page":   {},
	"sort":   {},
	"limit":  {},
	"fields": {},
}

// Parse builds a Spec from raw query parameters. It never fails: malformed numbers
// fall back to defaults and unknown fields are left for the compiler to reject.
func Parse(values url.Values) Spec {
	raw := Filter{}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		vals := values[key]
		path := splitKey(key)
		if _, control := controlKeys[path[0]]; control || len(vals) == 0 {
			continue
		}
		var v interface{} = vals[0]
		if len(vals) > 1 {
			v = append([]string(nil), vals...)
		}
		assign(raw, path, v)
	}

	spec := Spec{
		Filter: Translate(raw),
		Sort:   parseSort(values.Get("sort")),
		Page:   DefaultPage,
		Limit:  positiveOr(values.Get("limit"), DefaultLimit),
	}
	spec.Fields, spec.ExcludeFields = parseFields(values.Get("fields"))

	if rawPage := strings.TrimSpace(values.Get("page")); rawPage != "" {
		spec.PageRequested = true
		spec.Page = positiveOr(rawPage, DefaultPage)
	}

	return spec.Normalized()
}

// splitKey expands bracket notation: "a[b][c]" -> [a b c]. Malformed keys stay literal.
func splitKey(key string) []string {
	open := strings.IndexByte(key, '[')
	if open <= 0 || !strings.HasSuffix(key, "]") {
		return []string{key}
	}

	parts := []string{key[:open]}
	rest := key[open:]
	for len(rest) > 0 {
		if rest[0] != '[' {
			return []string{key}
		}
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return []string{key}
		}
		if seg := rest[1:end]; seg != "" {
			parts = append(parts, seg)
		}
		rest = rest[end+1:]
	}
	return parts
}

func assign(dst map[string]interface{}, path []string, value interface{}) {
	node := dst
	for _, seg := range path[:len(path)-1] {
		next, ok := node[seg].(map[string]interface{})
		if !ok {
			next = map[string]interface{}{}
			node[seg] = next
		}
		node = next
	}
	node[path[len(path)-1]] = value
}

func parseSort(raw string) []SortKey {
	var keys []SortKey
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		desc := false
		switch {
		case strings.HasPrefix(part, "-"):
			desc = true
			part = part[1:]
		case strings.HasPrefix(part, "+"):
			part = part[1:]
		}
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		keys = append(keys, SortKey{Field: part, Desc: desc})
	}
	if len(keys) == 0 {
		return []SortKey{{Field: DefaultSortField, Desc: true}}
	}
	return keys
}

func parseFields(raw string) (include, exclude []string) {
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if strings.HasPrefix(part, "-") {
			if name := strings.TrimSpace(part[1:]); name != "" {
				exclude = append(exclude, name)
			}
			continue
		}
		include = append(include, part)
	}
	return include, exclude
}

func positiveOr(raw string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
