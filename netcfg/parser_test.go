package netcfg

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ashkalikava/net-parser/internal/ctxlog"
)

func testContext() context.Context {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return ctxlog.WithLogger(context.Background(), logger)
}

func fixturePath(t *testing.T) string {
	t.Helper()
	return filepath.Join("testdata", "ios", "test_load_01.txt")
}

func TestParseFile(t *testing.T) {
	doc, err := ParseFile(testContext(), fixturePath(t))
	require.NoError(t, err)
	require.NotEmpty(t, doc.Lines)
}

func TestParseString(t *testing.T) {
	data, err := os.ReadFile(fixturePath(t))
	require.NoError(t, err)

	doc, err := ParseString(testContext(), string(data))
	require.NoError(t, err)
	require.NotEmpty(t, doc.Lines)
}

func TestParseSingleLineConfig(t *testing.T) {
	doc, err := ParseString(testContext(), "! This might be a config but not a path")
	require.NoError(t, err)
	require.Len(t, doc.Lines, 1)
	require.True(t, doc.Lines[0].IsComment())
}

func TestParseFileNonexistentPath(t *testing.T) {
	_, err := ParseFile(testContext(), "/path/does/not/exist.txt")
	require.Error(t, err)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestIndentHierarchy(t *testing.T) {
	doc, err := ParseLines(testContext(), []string{
		"interface Ethernet0/0",
		"  description outer",
		"  ip address 10.0.0.1 255.255.255.0",
		"interface Ethernet0/1",
	})
	require.NoError(t, err)
	require.Len(t, doc.Lines, 4)

	iface := doc.Lines[0]
	require.True(t, iface.IsParent())
	require.Len(t, iface.Children, 2)
	require.Equal(t, iface, iface.Children[0].Parent)
	require.Equal(t, 1, iface.Children[0].Indent)

	require.Equal(t, 0, doc.Lines[3].Indent)
	require.Nil(t, doc.Lines[3].Parent)
}

func TestFindLines(t *testing.T) {
	doc, err := ParseFile(testContext(), fixturePath(t))
	require.NoError(t, err)

	re := regexp.MustCompile(`^hostname (?P<hostname>.*)`)
	lines := doc.FindLines(re)
	require.Len(t, lines, 1)
	require.Equal(t, "hostname RouterA", lines[0].Text)

	names := doc.FindStrings(re, "hostname")
	require.Equal(t, []string{"RouterA"}, names)
}

func TestHostname(t *testing.T) {
	doc, err := ParseFile(testContext(), fixturePath(t))
	require.NoError(t, err)

	hostname, ok := doc.Hostname()
	require.True(t, ok)
	require.Equal(t, "RouterA", hostname)
}

func TestHostnameAbsent(t *testing.T) {
	doc, err := ParseString(testContext(), "!\nversion 15.2\nend")
	require.NoError(t, err)

	_, ok := doc.Hostname()
	require.False(t, ok)
}

func TestSectionByParents(t *testing.T) {
	doc, err := ParseFile(testContext(), fixturePath(t))
	require.NoError(t, err)

	section, err := doc.SectionByParents(regexp.MustCompile(`^router ospf 1`))
	require.NoError(t, err)
	require.Len(t, section, 2)
	require.Equal(t, "router-id 10.0.255.1", section[0].Text)
}

func TestSectionByParentsNoMatch(t *testing.T) {
	doc, err := ParseFile(testContext(), fixturePath(t))
	require.NoError(t, err)

	_, err = doc.SectionByParents(regexp.MustCompile(`^router bgp`))
	require.Error(t, err)
}

func TestSectionByParentsAmbiguous(t *testing.T) {
	doc, err := ParseFile(testContext(), fixturePath(t))
	require.NoError(t, err)

	_, err = doc.SectionByParents(regexp.MustCompile(`^interface Ethernet0/[01]`))
	require.Error(t, err)
	require.Contains(t, err.Error(), "cannot determine section")
}
