package htmlutil

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

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

var innerWhitespace = regexp.MustCompile(`\s\s+`)

func removeNonPrintable(s string) string {
	newStr := strings.Builder{}
	for _, c := range s {
		if unicode.IsPrint(c) {
			newStr.WriteRune(c)
		}
	}
	return newStr.String()
}

// CleanText collapses the whitespace soup profile pages wrap their
// numbers in down to a single trimmed line.
func CleanText(s string) string {
	s = removeNonPrintable(s)
	s = strings.Trim(s, " \t\n")
	return innerWhitespace.ReplaceAllString(s, " ")
}

var digits = regexp.MustCompile(`[0-9][0-9,]*`)

// ExtractInt pulls the first integer out of text like "Problems Solved: 1,024".
// Returns 0 when there is no number, profile widgets frequently render
// empty for new accounts.
func ExtractInt(s string) int64 {
	match := digits.FindString(s)
	if match == "" {
		return 0
	}
	match = strings.ReplaceAll(match, ",", "")
	n, err := strconv.ParseInt(match, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
