// Package feed renders the channel settings and a slice of published items
// into RSS 2.0 XML and JSON Feed 1.1 documents. Rendering is a pure
// function of its inputs apart from lastBuildDate, which uses the clock.
package feed

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/polysend/notifeed/app/database"
)

// escapeMode selects how an element body is written. Free-text fields are
// CDATA-wrapped; URL-typed and machine-generated values are written raw.
type escapeMode int

const (
	escapeCDATA escapeMode = iota
	escapeRaw
)

type Generator struct {
	baseURL string
}

// NewGenerator creates a generator whose self-referencing links point at
// baseURL.
func NewGenerator(baseURL string) *Generator {
	return &Generator{baseURL: strings.TrimSuffix(baseURL, "/")}
}

func itemGUID(item database.Item) string {
	if item.GUID != "" {
		return item.GUID
	}
	return strconv.FormatInt(item.ID, 10)
}

// RSS renders the channel and items as an RSS 2.0 document.
func (g *Generator) RSS(settings database.Settings, items []database.Item) string {
	var buf bytes.Buffer

	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	buf.WriteString("\n")
	buf.WriteString(`<rss version="2.0" xmlns:content="http://purl.org/rss/1.0/modules/content/" xmlns:atom="http://www.w3.org/2005/Atom">`)
	buf.WriteString("\n  <channel>\n")

	g.writeElement(&buf, "title", settings.Title, escapeCDATA, 4)
	g.writeElement(&buf, "description", settings.Description, escapeCDATA, 4)
	g.writeElement(&buf, "link", settings.Link, escapeRaw, 4)

	buf.WriteString(fmt.Sprintf("    <atom:link href=\"%s/feed.xml\" rel=\"self\" type=\"application/rss+xml\" />\n", g.baseURL))

	g.writeElement(&buf, "language", settings.Language, escapeRaw, 4)
	g.writeElement(&buf, "copyright", settings.Copyright, escapeCDATA, 4)
	g.writeElement(&buf, "managingEditor", settings.ManagingEditor, escapeCDATA, 4)
	g.writeElement(&buf, "webMaster", settings.Webmaster, escapeCDATA, 4)
	g.writeElement(&buf, "generator", settings.Generator, escapeRaw, 4)
	g.writeElement(&buf, "lastBuildDate", time.Now().UTC().Format(time.RFC1123Z), escapeRaw, 4)

	if settings.ImageURL != "" {
		buf.WriteString("    <image>\n")
		g.writeElement(&buf, "url", settings.ImageURL, escapeRaw, 6)
		g.writeElement(&buf, "title", settings.ImageTitle, escapeCDATA, 6)
		g.writeElement(&buf, "link", settings.ImageLink, escapeRaw, 6)
		buf.WriteString("    </image>\n")
	}

	for _, item := range items {
		g.writeItem(&buf, item)
	}

	buf.WriteString("  </channel>\n</rss>")

	return buf.String()
}

func (g *Generator) writeItem(buf *bytes.Buffer, item database.Item) {
	buf.WriteString("    <item>\n")

	g.writeElement(buf, "title", item.Title, escapeCDATA, 6)
	g.writeElement(buf, "description", item.Description, escapeCDATA, 6)

	if item.Content != "" {
		g.writeElement(buf, "content:encoded", item.Content, escapeCDATA, 6)
	}

	g.writeElement(buf, "link", item.Link, escapeRaw, 6)
	g.writeElement(buf, "author", item.Author, escapeCDATA, 6)
	g.writeElement(buf, "category", item.Category, escapeCDATA, 6)

	buf.WriteString("      <guid isPermaLink=\"false\">")
	buf.WriteString(itemGUID(item))
	buf.WriteString("</guid>\n")

	g.writeElement(buf, "pubDate", item.PubDate.UTC().Format(time.RFC1123Z), escapeRaw, 6)

	buf.WriteString("    </item>\n")
}

func (g *Generator) writeElement(buf *bytes.Buffer, tag, content string, mode escapeMode, indent int) {
	if content == "" {
		return
	}

	for i := 0; i < indent; i++ {
		buf.WriteByte(' ')
	}

	buf.WriteString("<")
	buf.WriteString(tag)
	buf.WriteString(">")

	switch mode {
	case escapeCDATA:
		buf.WriteString("<![CDATA[")
		// A literal "]]>" inside the body would terminate the section early
		buf.WriteString(strings.ReplaceAll(content, "]]>", "]]]]><![CDATA[>"))
		buf.WriteString("]]>")
	case escapeRaw:
		buf.WriteString(content)
	}

	buf.WriteString("</")
	buf.WriteString(tag)
	buf.WriteString(">\n")
}
