// convert html-only mail bodies into plain text //
package email

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	xhtml "golang.org/x/net/html"
)

// htmlToPlain renders an html body as plain text with lightweight markdown-ish
// markup: paragraphs, line breaks, headings, lists, emphasis, code and links.
// Images are reduced to their alt text, scripts and styles get dropped.
func htmlToPlain(src string) (string, error) {
	doc, err := xhtml.Parse(strings.NewReader(src))
	if err != nil {
		return "", err
	}

	conv := &htmlConverter{}
	conv.walk(doc)
	out := strings.TrimSpace(conv.buf.String())
	// collapse runs of blank lines to a single one
	for strings.Contains(out, "\n\n\n") {
		out = strings.ReplaceAll(out, "\n\n\n", "\n\n")
	}
	return out, nil
}

type htmlConverter struct {
	buf bytes.Buffer
	// collapsed whitespace waiting to be emitted before the next inline token
	pendingSpace bool
	// "ul" / "ol" nesting
	listStack  []string
	olCounters []int
}

func (c *htmlConverter) walk(n *xhtml.Node) {
	switch n.Type {
	case xhtml.TextNode:
		if insidePre(n) {
			c.buf.WriteString(n.Data)
			return
		}
		c.writeCollapsed(html.UnescapeString(n.Data))
	case xhtml.ElementNode:
		c.element(n)
	default:
		c.children(n)
	}
}

func (c *htmlConverter) children(n *xhtml.Node) {
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		c.walk(child)
	}
}

func (c *htmlConverter) element(n *xhtml.Node) {
	tag := strings.ToLower(n.Data)
	switch tag {
	case "head", "style", "script":
		return
	case "br":
		c.buf.WriteString("\n")
	case "p", "div":
		c.blockBreak()
		c.children(n)
		c.blockBreak()
	case "h1", "h2", "h3", "h4", "h5", "h6":
		c.blockBreak()
		c.buf.WriteString(strings.Repeat("#", int(tag[1]-'0')) + " ")
		c.children(n)
		c.blockBreak()
	case "strong", "b":
		c.flushSpace()
		c.buf.WriteString("**")
		c.children(n)
		c.buf.WriteString("**")
	case "em", "i":
		c.flushSpace()
		c.buf.WriteString("*")
		c.children(n)
		c.buf.WriteString("*")
	case "a":
		text := strings.TrimSpace(innerText(n))
		href := attrValue(n, "href")
		c.writeCollapsed(text)
		if href != "" && href != text {
			c.buf.WriteString(" (" + href + ")")
		}
	case "ul", "ol":
		c.listStack = append(c.listStack, tag)
		if tag == "ol" {
			c.olCounters = append(c.olCounters, 1)
		}
		c.children(n)
		if tag == "ol" {
			c.olCounters = c.olCounters[:len(c.olCounters)-1]
		}
		c.listStack = c.listStack[:len(c.listStack)-1]
		c.blockBreak()
	case "li":
		prefix := "- "
		if len(c.listStack) > 0 && c.listStack[len(c.listStack)-1] == "ol" && len(c.olCounters) > 0 {
			idx := len(c.olCounters) - 1
			prefix = fmt.Sprintf("%d. ", c.olCounters[idx])
			c.olCounters[idx]++
		}
		c.lineBreak()
		c.buf.WriteString(strings.Repeat("  ", len(c.listStack)-1) + prefix)
		c.children(n)
		c.buf.WriteString("\n")
	case "pre":
		c.blockBreak()
		raw := innerText(n)
		c.buf.WriteString("```\n" + raw)
		if !strings.HasSuffix(raw, "\n") {
			c.buf.WriteString("\n")
		}
		c.buf.WriteString("```")
		c.blockBreak()
	case "code":
		if insidePre(n) {
			c.children(n)
			return
		}
		c.flushSpace()
		c.buf.WriteString("`")
		c.children(n)
		c.buf.WriteString("`")
	case "img":
		alt := attrValue(n, "alt")
		if alt != "" {
			c.flushSpace()
			c.buf.WriteString("![" + alt + "](" + attrValue(n, "src") + ")")
		}
	default:
		c.children(n)
	}
}

// writeCollapsed appends text with whitespace runs collapsed to single spaces.
// Trailing whitespace stays pending so it only gets emitted when more inline
// content follows on the same line.
func (c *htmlConverter) writeCollapsed(text string) {
	for _, r := range text {
		switch r {
		case ' ', '\n', '\t', '\r':
			c.pendingSpace = true
		default:
			c.flushSpace()
			c.buf.WriteRune(r)
		}
	}
}

func (c *htmlConverter) flushSpace() {
	if !c.pendingSpace {
		return
	}
	c.pendingSpace = false
	tail := c.buf.String()
	if tail != "" && !strings.HasSuffix(tail, "\n") && !strings.HasSuffix(tail, " ") {
		c.buf.WriteByte(' ')
	}
}

func (c *htmlConverter) lineBreak() {
	c.pendingSpace = false
	s := c.buf.String()
	if s != "" && !strings.HasSuffix(s, "\n") {
		c.buf.WriteString("\n")
	}
}

func (c *htmlConverter) blockBreak() {
	c.pendingSpace = false
	s := c.buf.String()
	if s == "" || strings.HasSuffix(s, "\n\n") {
		return
	}
	if strings.HasSuffix(s, "\n") {
		c.buf.WriteString("\n")
		return
	}
	c.buf.WriteString("\n\n")
}

func attrValue(n *xhtml.Node, key string) string {
	for _, attr := range n.Attr {
		if strings.ToLower(attr.Key) == key {
			return strings.TrimSpace(attr.Val)
		}
	}
	return ""
}

func innerText(n *xhtml.Node) string {
	var b bytes.Buffer
	var gather func(*xhtml.Node)
	gather = func(x *xhtml.Node) {
		if x.Type == xhtml.TextNode {
			b.WriteString(html.UnescapeString(x.Data))
			return
		}
		for child := x.FirstChild; child != nil; child = child.NextSibling {
			gather(child)
		}
	}
	gather(n)
	return b.String()
}

func insidePre(n *xhtml.Node) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == xhtml.ElementNode && strings.ToLower(p.Data) == "pre" {
			return true
		}
	}
	return false
}
