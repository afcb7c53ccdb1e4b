package module

import "strings"

// ScanFragment reads a module fragment starting at cursor and stops before the
// ')' that closes the enclosing content production. Balanced parentheses and
// backslash escapes are skipped over. The returned fragment is raw (still escaped).
func ScanFragment(src string, cursor int) (fragment string, end int) {
	depth := 0
	i := cursor
	for i < len(src) {
		switch src[i] {
		case '\\':
			i += 2
			continue
		case '(':
			depth++
		case ')':
			if depth == 0 {
				return src[cursor:i], i
			}
			depth--
		}
		i++
	}
	if i > len(src) {
		i = len(src)
	}
	return src[cursor:i], i
}

// Escape makes arbitrary text safe to embed as a fragment.
func Escape(s string) string {
	if !strings.ContainsAny(s, `\()`) {
		return s
	}
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '\\', '(', ')':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Unescape reverses Escape. A trailing lone backslash is kept as-is.
func Unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// Simple adapts a fragment-level constructor into a Builder. The fragment is
// scanned with ScanFragment and passed unescaped.
func Simple(fn func(fragment string, env Env) (Content, error)) Builder {
	return func(src string, cursor int, env Env) (Content, int, error) {
		raw, end := ScanFragment(src, cursor)
		c, err := fn(Unescape(raw), env)
		if err != nil {
			return nil, cursor, err
		}
		return c, end, nil
	}
}
