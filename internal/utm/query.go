package utm

import "strings"

type queryPair struct {
	key   string
	value string
}

// orderedQuery keeps the original parameter order of a query string, unlike
// url.Values whose Encode sorts by key. Set replaces the first occurrence in
// place, drops later duplicates and appends unknown keys.
//
// Parsing and encoding follow application/x-www-form-urlencoded as browsers
// apply it to search params: '+' reads as a space, broken escapes are kept
// literally, and only alphanumerics and *-._ are written unescaped.
type orderedQuery []queryPair

func parseOrderedQuery(raw string) orderedQuery {
	var q orderedQuery
	for _, part := range strings.Split(raw, "&") {
		if part == "" {
			continue
		}
		key, value, _ := strings.Cut(part, "=")
		q = append(q, queryPair{key: formDecode(key), value: formDecode(value)})
	}
	return q
}

func (q *orderedQuery) Set(key, value string) {
	out := (*q)[:0]
	found := false
	for _, p := range *q {
		if p.key != key {
			out = append(out, p)
			continue
		}
		if !found {
			out = append(out, queryPair{key: key, value: value})
			found = true
		}
	}
	if !found {
		out = append(out, queryPair{key: key, value: value})
	}
	*q = out
}

func (q orderedQuery) Encode() string {
	var b strings.Builder
	for i, p := range q {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(formEncode(p.key))
		b.WriteByte('=')
		b.WriteString(formEncode(p.value))
	}
	return b.String()
}

const upperHex = "0123456789ABCDEF"

func isHex(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}

func formDecode(s string) string {
	s = strings.ReplaceAll(s, "+", " ")
	if !strings.Contains(s, "%") {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]) {
			b.WriteByte(unhex(s[i+1])<<4 | unhex(s[i+2]))
			i += 2
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func formEncode(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9',
			c == '*', c == '-', c == '.', c == '_':
			b.WriteByte(c)
		case c == ' ':
			b.WriteByte('+')
		default:
			b.WriteByte('%')
			b.WriteByte(upperHex[c>>4])
			b.WriteByte(upperHex[c&15])
		}
	}
	return b.String()
}

type encodeSet func(c byte) bool

func inFragmentSet(c byte) bool {
	return c <= ' ' || c >= 0x7f || c == '"' || c == '<' || c == '>' || c == '`'
}

func inPathSet(c byte) bool {
	return inFragmentSet(c) || c == '#' || c == '?' || c == '{' || c == '}'
}

// percentEncode escapes the bytes of s that fall in set. Existing escapes and
// stray '%' signs pass through.
func percentEncode(s string, set encodeSet) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if set(c) {
			b.WriteByte('%')
			b.WriteByte(upperHex[c>>4])
			b.WriteByte(upperHex[c&15])
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}
