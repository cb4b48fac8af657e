// Package outline extracts a heading outline from rendered Markdown, for
// the parse-and-json CLI subcommand.
package outline

import (
	blackfriday "github.com/russross/blackfriday/v2"

	"github.com/knitlang/knit"
)

// Extract walks rendered's Markdown heading nodes in document order.
func Extract(rendered string) []knit.OutlineEntry {
	root := blackfriday.New().Parse([]byte(rendered))

	var entries []knit.OutlineEntry
	root.Walk(func(n *blackfriday.Node, entering bool) blackfriday.WalkStatus {
		if !entering || n.Type != blackfriday.Heading {
			return blackfriday.GoToNext
		}
		entries = append(entries, knit.OutlineEntry{
			Level: n.HeadingData.Level,
			Text:  headingText(n),
		})
		return blackfriday.SkipChildren
	})
	return entries
}

func headingText(heading *blackfriday.Node) string {
	var text []byte
	for child := heading.FirstChild; child != nil; child = child.Next {
		child.Walk(func(n *blackfriday.Node, entering bool) blackfriday.WalkStatus {
			if entering && n.Literal != nil {
				text = append(text, n.Literal...)
			}
			return blackfriday.GoToNext
		})
	}
	return string(text)
}
