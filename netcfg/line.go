package netcfg

import (
	"regexp"
	"strings"
)

// Line is a single configuration line placed in the indent hierarchy of the
// document. Text is stored trimmed; Indent is the normalized nesting level,
// not the raw space count.
type Line struct {
	Number   int
	Indent   int
	Text     string
	Parent   *Line
	Children []*Line
}

// IsComment reports whether the line is a comment/separator ("!").
func (l *Line) IsComment() bool {
	return strings.HasPrefix(l.Text, "!")
}

// IsParent reports whether the line has child lines.
func (l *Line) IsParent() bool {
	return len(l.Children) > 0
}

// Match reports whether the line's text matches the pattern.
func (l *Line) Match(re *regexp.Regexp) bool {
	return re.MatchString(l.Text)
}

// Groups returns the named capture groups of the first match of re against
// the line's text. The second return value is false when the line does not
// match at all. Groups that did not participate map to the empty string.
func (l *Line) Groups(re *regexp.Regexp) (map[string]string, bool) {
	m := re.FindStringSubmatch(l.Text)
	if m == nil {
		return nil, false
	}
	groups := make(map[string]string)
	for i, name := range re.SubexpNames() {
		if name != "" {
			groups[name] = m[i]
		}
	}
	return groups, true
}

// Group returns a single named capture group of the line's text.
func (l *Line) Group(re *regexp.Regexp, name string) (string, bool) {
	groups, ok := l.Groups(re)
	if !ok {
		return "", false
	}
	val, ok := groups[name]
	return val, ok && val != ""
}

// Descendants returns every line nested under this one, depth first.
func (l *Line) Descendants() []*Line {
	var out []*Line
	for _, child := range l.Children {
		out = append(out, child)
		out = append(out, child.Descendants()...)
	}
	return out
}

// FindChildren returns the descendants whose text matches the pattern.
func (l *Line) FindChildren(re *regexp.Regexp) []*Line {
	var out []*Line
	for _, child := range l.Descendants() {
		if child.Match(re) {
			out = append(out, child)
		}
	}
	return out
}

// FirstChildGroups returns the named groups of the first matching descendant,
// or false when none matches.
func (l *Line) FirstChildGroups(re *regexp.Regexp) (map[string]string, bool) {
	for _, child := range l.Descendants() {
		if groups, ok := child.Groups(re); ok {
			return groups, true
		}
	}
	return nil, false
}

// FirstChildGroup returns one named group of the first matching descendant.
func (l *Line) FirstChildGroup(re *regexp.Regexp, name string) (string, bool) {
	groups, ok := l.FirstChildGroups(re)
	if !ok {
		return "", false
	}
	val, ok := groups[name]
	return val, ok && val != ""
}

// String implements fmt.Stringer.
func (l *Line) String() string {
	return l.Text
}
