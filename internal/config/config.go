// Package config loads an optional TOML document overriding the default
// cell delimiters, so a document author can pick delimiters that don't
// collide with the surrounding markup (LaTeX-heavy documents often want
// something other than "{|").
package config

import (
	"os"

	toml "github.com/pelletier/go-toml"

	"github.com/knitlang/knit"
)

// File is the on-disk shape of a knit.toml configuration file.
type File struct {
	Delimiters struct {
		HereDocOpen  string `toml:"heredoc_open"`
		HereDocClose string `toml:"heredoc_close"`
		InlineOpen   string `toml:"inline_open"`
		InlineClose  string `toml:"inline_close"`
		CommentOpen  string `toml:"comment_open"`
		CommentClose string `toml:"comment_close"`
	} `toml:"delimiters"`
}

// Load reads path and returns the delimiter set it describes, falling back
// to knit's defaults for any field left unset. A missing file is not an
// error: it returns the defaults outright.
func Load(path string) (knit.Delimiters, error) {
	delims := knit.DefaultDelimiters()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return delims, nil
	}
	if err != nil {
		return delims, err
	}

	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return delims, err
	}

	if f.Delimiters.HereDocOpen != "" {
		delims.HereDocOpen = f.Delimiters.HereDocOpen
	}
	if f.Delimiters.HereDocClose != "" {
		delims.HereDocClose = f.Delimiters.HereDocClose
	}
	if f.Delimiters.InlineOpen != "" {
		delims.InlineOpen = f.Delimiters.InlineOpen
	}
	if f.Delimiters.InlineClose != "" {
		delims.InlineClose = f.Delimiters.InlineClose
	}
	if f.Delimiters.CommentOpen != "" {
		delims.CommentOpen = f.Delimiters.CommentOpen
	}
	if f.Delimiters.CommentClose != "" {
		delims.CommentClose = f.Delimiters.CommentClose
	}
	return delims, nil
}
