package summary

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// blockedElements is keyed by lowercased tag name; SVG animation elements
// have no atom and can assign script URLs to href.
var blockedElements = map[string]bool{
	"script":           true,
	"style":            true,
	"iframe":           true,
	"object":           true,
	"embed":            true,
	"frame":            true,
	"frameset":         true,
	"base":             true,
	"link":             true,
	"meta":             true,
	"form":             true,
	"animate":          true,
	"animatemotion":    true,
	"animatetransform": true,
	"set":              true,
}

var urlAttributes = map[string]bool{
	"href":       true,
	"src":        true,
	"action":     true,
	"formaction": true,
	"poster":     true,
	"xlink:href": true,
}

// Sanitize drops active content from an HTML fragment: blocked elements with
// their subtree, comments, event-handler attributes and script URLs.
func Sanitize(fragment string) (string, error) {
	container := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), container)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, n := range nodes {
		if dropNode(n) {
			continue
		}
		cleanNode(n)
		if err := html.Render(&b, n); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

func dropNode(n *html.Node) bool {
	switch n.Type {
	case html.CommentNode, html.DoctypeNode:
		return true
	case html.ElementNode:
		return blockedElements[strings.ToLower(n.Data)]
	default:
		return false
	}
}

func cleanNode(n *html.Node) {
	if n.Type == html.ElementNode {
		n.Attr = cleanAttributes(n.Attr)
	}
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if dropNode(c) {
			n.RemoveChild(c)
		} else {
			cleanNode(c)
		}
		c = next
	}
}

func cleanAttributes(attrs []html.Attribute) []html.Attribute {
	out := attrs[:0]
	for _, a := range attrs {
		key := strings.ToLower(a.Key)
		if a.Namespace != "" {
			key = strings.ToLower(a.Namespace) + ":" + key
		}
		if strings.HasPrefix(key, "on") {
			continue
		}
		if urlAttributes[key] && unsafeURL(a.Val) {
			continue
		}
		out = append(out, a)
	}
	return out
}

func unsafeURL(raw string) bool {
	var b strings.Builder
	for _, r := range strings.ToLower(raw) {
		if r <= ' ' {
			continue
		}
		b.WriteRune(r)
	}
	v := b.String()
	for _, scheme := range []string{"javascript:", "vbscript:", "data:"} {
		if strings.HasPrefix(v, scheme) {
			return true
		}
	}
	return false
}
