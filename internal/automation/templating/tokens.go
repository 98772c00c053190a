package templating

import "strings"

// segment is either literal text or a {{token}} reference.
type segment struct {
	literal string
	token   string
	raw     string
}

func (s segment) isToken() bool { return s.token != "" }

// parse splits text into literal and token segments in a single left to right scan.
// Malformed or unterminated braces stay literal.
func parse(text string) []segment {
	var segments []segment
	rest := text
	for {
		open := strings.Index(rest, "{{")
		if open < 0 {
			break
		}
		closeIdx := strings.Index(rest[open+2:], "}}")
		if closeIdx < 0 {
			break
		}
		end := open + 2 + closeIdx + 2
		name := strings.TrimSpace(rest[open+2 : open+2+closeIdx])
		if !validTokenName(name) {
			// keep the opening braces literal and continue after them
			segments = appendLiteral(segments, rest[:open+2])
			rest = rest[open+2:]
			continue
		}
		segments = appendLiteral(segments, rest[:open])
		segments = append(segments, segment{token: name, raw: rest[open:end]})
		rest = rest[end:]
	}
	return appendLiteral(segments, rest)
}

func appendLiteral(segments []segment, s string) []segment {
	if s == "" {
		return segments
	}
	if n := len(segments); n > 0 && !segments[n-1].isToken() {
		segments[n-1].literal += s
		return segments
	}
	return append(segments, segment{literal: s})
}

// validTokenName accepts identifiers made of letters, digits, '_', '.' and '-'.
// Custom field names are user defined and may also contain spaces.
func validTokenName(name string) bool {
	if name == "" {
		return false
	}
	spaces := strings.HasPrefix(name, "custom_field.") && len(name) > len("custom_field.")
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '.', r == '-':
		case r == ' ' && spaces:
		default:
			return false
		}
	}
	return true
}

// render writes segments, substituting known tokens and keeping unknown ones verbatim.
// escape, when set, is applied to substituted values only.
func render(segments []segment, values map[string]string, escape func(string) string) string {
	var b strings.Builder
	for _, s := range segments {
		if !s.isToken() {
			b.WriteString(s.literal)
			continue
		}
		if v, ok := values[s.token]; ok {
			if escape != nil {
				v = escape(v)
			}
			b.WriteString(v)
			continue
		}
		b.WriteString(s.raw)
	}
	return b.String()
}
