package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/knitlang/knit"
)

func TestFileTypeDefaultsWhenEmpty(t *testing.T) {
	ft, err := fileType("", knit.FileTypeLaTeX)
	require.NoError(t, err)
	require.Equal(t, knit.FileTypeLaTeX, ft)
}

func TestFileTypeRecognisesAliases(t *testing.T) {
	cases := map[string]knit.FileType{
		"md":       knit.FileTypeMarkdown,
		"markdown": knit.FileTypeMarkdown,
		"html":     knit.FileTypeHTML,
		"htm":      knit.FileTypeHTML,
		"tex":      knit.FileTypeLaTeX,
		"latex":    knit.FileTypeLaTeX,
		"txt":      knit.FileTypePlain,
		"plain":    knit.FileTypePlain,
	}
	for ext, want := range cases {
		got, err := fileType(ext, knit.FileTypeMarkdown)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

func TestFileTypeRejectsUnknown(t *testing.T) {
	_, err := fileType("docx", knit.FileTypeMarkdown)
	require.Error(t, err)
}

func TestParseFileTypesValidatesBothEnds(t *testing.T) {
	_, err := parseFileTypes("md", "docx")
	require.Error(t, err)

	cfg, err := parseFileTypes("md", "html")
	require.NoError(t, err)
	require.Equal(t, knit.FileTypeMarkdown, cfg.InputType)
	require.Equal(t, knit.FileTypeHTML, cfg.OutputType)
}
