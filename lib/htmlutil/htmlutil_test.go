package htmlutil

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func TestFirstText(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(
		`<html><body><pre>[{"id": 1,
 "name": "a &amp; b"}]</pre><pre>second</pre></body></html>`,
	))
	require.NoError(t, err)

	text, ok := FirstText(doc, "pre")
	require.True(t, ok)
	require.Equal(t, "[{\"id\": 1,\n \"name\": \"a & b\"}]", text)

	_, ok = FirstText(doc, "table")
	require.False(t, ok)
}

func TestNormalizeText(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{input: "  hello \n\t world  ", expected: "hello world"},
		{input: "a\u0000b", expected: "ab"},
		{input: "", expected: ""},
	}

	for _, test := range testCases {
		require.Equal(t, test.expected, NormalizeText(test.input))
	}
}
