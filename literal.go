package treesearch

import "strings"

// ParseLiteral turns command-line text into a search target.
//
//	'a' or "a"      string a
//	true, false     bool
//	null            null
//	3, -7           integer
//	0.5, 1e3        float
//	[...] or {...}  decoded JSON
//
// Any other text, including malformed JSON containers, is taken as a bare
// string, so ParseLiteral never fails.
func ParseLiteral(s string) Value {
	s = strings.TrimSpace(s)

	if len(s) >= 2 {
		if (s[0] == '\'' && s[len(s)-1] == '\'') || (s[0] == '"' && s[len(s)-1] == '"') {
			if s[0] == '"' {
				if v, err := Unmarshal([]byte(s)); err == nil {
					return v
				}
			}
			return String(s[1 : len(s)-1])
		}
		if (s[0] == '[' && s[len(s)-1] == ']') || (s[0] == '{' && s[len(s)-1] == '}') {
			if v, err := Unmarshal([]byte(s)); err == nil {
				return v
			}
			return String(s)
		}
	}

	switch s {
	case "true":
		return Bool(true)
	case "false":
		return Bool(false)
	case "null":
		return Null()
	}

	if n, err := ParseNumber(s); err == nil {
		return Num(n)
	}

	return String(s)
}
