package vdom

import "strings"

// Selector is a parsed tag#id.class selector.
type Selector struct {
	Tag     string
	ID      string
	Classes string // space separated, as it goes into the class attribute
	HasID   bool
}

// ParseSelector splits sel into tag, id and classes. The first '#' starts
// the id and the first '.' after it starts the class list. Id and class are
// only reported when present in sel.
func ParseSelector(sel string) Selector {
	hashIdx := strings.IndexByte(sel, '#')
	dotIdx := -1
	if hashIdx < 0 {
		dotIdx = strings.IndexByte(sel, '.')
	} else if i := strings.IndexByte(sel[hashIdx:], '.'); i >= 0 {
		dotIdx = hashIdx + i
	}
	hash := len(sel)
	if hashIdx > 0 {
		hash = hashIdx
	}
	dot := len(sel)
	if dotIdx > 0 {
		dot = dotIdx
	}

	var s Selector
	if hashIdx != -1 || dotIdx != -1 {
		s.Tag = sel[:min(hash, dot)]
	} else {
		s.Tag = sel
	}
	if hash < dot {
		s.ID = sel[hash+1 : dot]
		s.HasID = true
	}
	if dotIdx > 0 {
		s.Classes = strings.ReplaceAll(sel[dot+1:], ".", " ")
	}
	return s
}

// BuildSelector renders tag, id and a space separated class list back into
// selector form. Empty id and class are omitted.
func BuildSelector(tag, id, class string) string {
	var sb strings.Builder
	sb.WriteString(tag)
	if id != "" {
		sb.WriteByte('#')
		sb.WriteString(id)
	}
	for _, c := range strings.Fields(class) {
		sb.WriteByte('.')
		sb.WriteString(c)
	}
	return sb.String()
}
