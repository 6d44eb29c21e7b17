// Package netcfg parses Cisco-style device configurations into an
// indent-aware line tree and extracts structured models from it.
package netcfg

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/ashkalikava/net-parser/internal/ctxlog"
)

// Document is a parsed configuration: the flat list of lines, each placed in
// the indent hierarchy.
type Document struct {
	Lines []*Line
}

// ParseFile reads and parses a configuration file.
func ParseFile(ctx context.Context, path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return ParseString(ctx, string(data))
}

// ParseString parses a configuration held in a single string.
func ParseString(ctx context.Context, config string) (*Document, error) {
	return ParseLines(ctx, strings.Split(config, "\n"))
}

// ParseLines parses a configuration supplied as raw lines. Indentation is
// normalized first: uneven space counts collapse to nesting levels, so a
// section indented by one space and one indented by three behave the same.
func ParseLines(ctx context.Context, raw []string) (*Document, error) {
	logger := ctxlog.FromContext(ctx)

	type entry struct {
		number int
		indent int
		text   string
	}
	var entries []entry
	for i, line := range raw {
		trimmed := strings.TrimRight(line, " \t\r")
		if strings.TrimSpace(trimmed) == "" {
			continue
		}
		entries = append(entries, entry{
			number: i,
			indent: len(trimmed) - len(strings.TrimLeft(trimmed, " ")),
			text:   strings.TrimSpace(trimmed),
		})
	}

	doc := &Document{}
	// Stack of raw indents; its depth minus one is the nesting level.
	indents := []int{0}
	// parents[level] is the most recent line seen at that level.
	var parents []*Line

	for _, e := range entries {
		top := indents[len(indents)-1]
		switch {
		case e.indent > top:
			indents = append(indents, e.indent)
		case e.indent < top:
			for len(indents) > 1 && indents[len(indents)-1] > e.indent {
				indents = indents[:len(indents)-1]
			}
		}
		level := len(indents) - 1

		line := &Line{
			Number: e.number,
			Indent: level,
			Text:   e.text,
		}
		if level > 0 && len(parents) >= level {
			parent := parents[level-1]
			line.Parent = parent
			parent.Children = append(parent.Children, line)
		}

		if level < len(parents) {
			parents = parents[:level]
		}
		parents = append(parents, line)
		doc.Lines = append(doc.Lines, line)
	}

	logger.Debug("Parsed configuration.", "lines", len(doc.Lines))
	return doc, nil
}

// FindLines returns every line whose text matches the pattern.
func (d *Document) FindLines(re *regexp.Regexp) []*Line {
	var out []*Line
	for _, line := range d.Lines {
		if line.Match(re) {
			out = append(out, line)
		}
	}
	return out
}

// FindStrings returns the given named group of every matching line.
func (d *Document) FindStrings(re *regexp.Regexp, group string) []string {
	var out []string
	for _, line := range d.Lines {
		if val, ok := line.Group(re, group); ok {
			out = append(out, val)
		}
	}
	return out
}

var hostnameRegex = regexp.MustCompile(`^hostname (?P<hostname>\S+)`)

// Hostname returns the configured hostname, if present.
func (d *Document) Hostname() (string, bool) {
	for _, line := range d.Lines {
		if val, ok := line.Group(hostnameRegex, "hostname"); ok {
			return val, true
		}
	}
	return "", false
}

// SectionByParents walks the given parent statements from the top level down
// and returns the children of the section they select. Each parent pattern
// must match exactly one line within the current section.
func (d *Document) SectionByParents(parents ...*regexp.Regexp) ([]*Line, error) {
	section := d.Lines
	for _, parent := range parents {
		var matched []*Line
		for _, line := range section {
			if line.IsParent() && line.Match(parent) {
				matched = append(matched, line)
			}
		}
		switch len(matched) {
		case 1:
			section = matched[0].Children
		case 0:
			return nil, fmt.Errorf("no lines matched parent statement %q", parent)
		default:
			return nil, fmt.Errorf("%d lines matched parent statement %q, cannot determine section", len(matched), parent)
		}
	}
	return section, nil
}
