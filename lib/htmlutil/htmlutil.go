package htmlutil

import (
	"bytes"
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// GetText concatenates every text node below node, without any of the
// whitespace collapsing a browser would apply.
func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

// FirstText returns the raw text of the first node matching selector.
func FirstText(doc *goquery.Document, selector string) (string, bool) {
	sel := doc.Find(selector).First()
	if len(sel.Nodes) == 0 {
		return "", false
	}
	return GetText(sel.Nodes[0]), true
}

var innerWhitespace = regexp.MustCompile(`\s\s+`)

// NormalizeText drops non-printable characters, trims and collapses runs
// of whitespace to a single space.
func NormalizeText(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, s)
	s = strings.TrimSpace(s)
	return innerWhitespace.ReplaceAllString(s, " ")
}
