package query

// OperatorPrefix marks a filter key as a comparison operator.
const OperatorPrefix = "$"

var operatorTokens = map[string]struct{}{
	"gte":   {},
	"gt":    {},
	"lte":   {},
	"lt":    {},
	"in":    {},
	"nin":   {},
	"ne":    {},
	"regex": {},
}

// IsOperatorToken reports whether key is one of the bare comparison tokens.
func IsOperatorToken(key string) bool {
	_, ok := operatorTokens[key]
	return ok
}

// Translate rewrites every map key that is exactly a comparison token into its
// operator form ({"gte": 5} -> {"$gte": 5}) at any depth. The input is not mutated
// and already-translated filters come back unchanged.
func Translate(filter Filter) Filter {
	if filter == nil {
		return nil
	}
	return Filter(translateMap(filter))
}

func translateMap(m map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		key := k
		if IsOperatorToken(k) {
			key = OperatorPrefix + k
			// an explicit "$op" sibling takes precedence
			if _, dup := m[key]; dup {
				continue
			}
		}
		out[key] = translateValue(v)
	}
	return out
}

func translateValue(v interface{}) interface{} {
	switch t := v.(type) {
	case Filter:
		return translateMap(t)
	case map[string]interface{}:
		return translateMap(t)
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, item := range t {
			out[i] = translateValue(item)
		}
		return out
	case []string:
		return append([]string(nil), t...)
	default:
		return v
	}
}
