package testkit

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
)

// XMLNode is a parsed XML element: tag, attributes, the text directly
// inside it, the tail text following its close tag, and child elements in
// document order
type XMLNode struct {
	Tag      string
	Attr     map[string]string
	Text     string
	Tail     string
	Children []*XMLNode
}

// ParseXML parses an XML document string into its root XMLNode
func ParseXML(s string) (*XMLNode, error) {
	dec := xml.NewDecoder(strings.NewReader(s))
	var root *XMLNode
	var stack []*XMLNode
	var last *XMLNode // most recently closed element at the current level
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			if root == nil {
				return nil, fmt.Errorf("parse xml: empty document")
			}
			return root, nil
		}
		if err != nil {
			return nil, fmt.Errorf("parse xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			n := &XMLNode{Tag: t.Name.Local, Attr: map[string]string{}}
			for _, a := range t.Attr {
				n.Attr[a.Name.Local] = a.Value
			}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, n)
			} else if root == nil {
				root = n
			}
			stack = append(stack, n)
			last = nil
		case xml.EndElement:
			last = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return root, nil
			}
		case xml.CharData:
			text := string(t)
			if last != nil {
				last.Tail += text
			} else if len(stack) > 0 {
				stack[len(stack)-1].Text += text
			}
		}
	}
}

// CompareXML compares two xml elements. If they are equal it returns
// true, if not it returns false and reports each difference by calling
// reporter, such as
//
//	reporter("tags do not match: Foo and Bar")
//
// Text and tail comparisons strip surrounding whitespace, and the literal
// "*" matches any text
func CompareXML(a, b *XMLNode, reporter func(string)) bool {
	if reporter == nil {
		reporter = func(string) {}
	}
	if a.Tag != b.Tag {
		reporter(fmt.Sprintf("tags do not match: %s and %s", a.Tag, b.Tag))
		return false
	}
	for name, value := range a.Attr {
		if b.Attr[name] != value {
			reporter(fmt.Sprintf("attributes do not match: %s=%q, %s=%q",
				name, value, name, b.Attr[name]))
			return false
		}
	}
	for name := range b.Attr {
		if _, ok := a.Attr[name]; !ok {
			reporter(fmt.Sprintf("b has an attribute a is missing: %s", name))
			return false
		}
	}
	if !xmlTextEqual(a.Text, b.Text) {
		reporter(fmt.Sprintf("text: %q != %q", a.Text, b.Text))
		return false
	}
	if !xmlTextEqual(a.Tail, b.Tail) {
		reporter(fmt.Sprintf("tail: %q != %q", a.Tail, b.Tail))
		return false
	}
	if len(a.Children) != len(b.Children) {
		reporter(fmt.Sprintf("children length differs, %d != %d",
			len(a.Children), len(b.Children)))
		return false
	}
	for i := range a.Children {
		if !CompareXML(a.Children[i], b.Children[i], reporter) {
			reporter(fmt.Sprintf("children %d do not match: %s",
				i+1, a.Children[i].Tag))
			return false
		}
	}
	return true
}

func xmlTextEqual(t1, t2 string) bool {
	if strings.TrimSpace(t1) == "" && strings.TrimSpace(t2) == "" {
		return true
	}
	if t1 == "*" || t2 == "*" {
		return true
	}
	return strings.TrimSpace(t1) == strings.TrimSpace(t2)
}

// XMLEqual fails the test if the two xml document strings are not
// structurally equal, listing every reported difference
func XMLEqual(t testing.TB, a, b string) {
	t.Helper()
	na, err := ParseXML(a)
	if err != nil {
		t.Fatalf("a: %v", err)
	}
	nb, err := ParseXML(b)
	if err != nil {
		t.Fatalf("b: %v", err)
	}
	var diffs []string
	if !CompareXML(na, nb, func(d string) { diffs = append(diffs, d) }) {
		t.Fatalf("XMLs not equal.\ndiffs: %s\na: %s\nb: %s",
			strings.Join(diffs, "\n"), a, b)
	}
}
