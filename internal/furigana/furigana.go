// Package furigana renders headwords as HTML with ruby annotations.
package furigana

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/at-ishikawa/kotoba/internal/dictionary"
)

type Options struct {
	// ShowKatakanaReading annotates katakana segments as well as kanji ones.
	ShowKatakanaReading bool
}

// Render returns the HTML of segments, wrapping the segments that need a
// reading in <ruby> elements. Text is escaped.
func Render(segments []dictionary.Segment, opts Options) (string, error) {
	var b strings.Builder
	for _, segment := range segments {
		node := segmentNode(segment, opts)
		if err := html.Render(&b, node); err != nil {
			return "", fmt.Errorf("html.Render(%q) > %w", segment.Text, err)
		}
	}
	return b.String(), nil
}

func segmentNode(segment dictionary.Segment, opts Options) *html.Node {
	text := &html.Node{Type: html.TextNode, Data: segment.Text}
	needsRuby := segment.HasKanji || (opts.ShowKatakanaReading && segment.HasKatakana)
	if !needsRuby || segment.Reading == "" || segment.Reading == segment.Text {
		return text
	}

	ruby := &html.Node{Type: html.ElementNode, DataAtom: atom.Ruby, Data: "ruby"}
	rt := &html.Node{Type: html.ElementNode, DataAtom: atom.Rt, Data: "rt"}
	rt.AppendChild(&html.Node{Type: html.TextNode, Data: segment.Reading})
	ruby.AppendChild(text)
	ruby.AppendChild(rt)
	return ruby
}
