package feed

import (
	"bytes"
	"cmp"
	"encoding/xml"
	"fmt"
	"html"
	"mime"
	"path"
	"strings"
	"time"

	"github.com/lysyi3m/microbrands/app/gallery"
)

const (
	channelTitle       = "Indian Micro Brands - Creative Inspiration Gallery"
	channelDescription = "Curated collection of creative posts and carousels from lesser-known Indian micro brands"
	defaultImageType   = "image/jpeg"
)

type Generator struct {
	baseURL string
	version string
	now     func() time.Time
}

// NewGenerator returns a generator whose links are rooted at baseURL.
func NewGenerator(baseURL, version string) *Generator {
	return &Generator{
		baseURL: strings.TrimRight(baseURL, "/"),
		version: version,
		now:     time.Now,
	}
}

// Run renders the visible posts of summary as an RSS 2.0 channel. selfPath is
// the request path (with query) the channel is served from.
func (g *Generator) Run(summary gallery.Summary, selfPath string) (string, error) {
	var buf bytes.Buffer

	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	buf.WriteString("\n")
	buf.WriteString(`<rss version="2.0" xmlns:atom="http://www.w3.org/2005/Atom">`)
	buf.WriteString("\n  <channel>\n")

	g.writeElement(&buf, "title", channelTitle, 4)
	g.writeElement(&buf, "link", g.baseURL+"/", 4)
	g.writeElement(&buf, "description",
		fmt.Sprintf("%s. Showing %d of %d posts.", channelDescription, summary.Visible, summary.Total), 4)

	buf.WriteString(fmt.Sprintf("    <atom:link href=\"%s\" rel=\"self\" type=\"application/rss+xml\" />\n",
		html.EscapeString(g.baseURL+selfPath)))

	g.writeElement(&buf, "lastBuildDate", g.now().Format(time.RFC1123Z), 4)
	g.writeElement(&buf, "generator", fmt.Sprintf("Microbrands/%s", g.version), 4)
	g.writeElement(&buf, "language", "en", 4)

	for _, post := range summary.Posts {
		g.writeItem(&buf, post)
	}

	buf.WriteString("  </channel>\n</rss>")

	return buf.String(), nil
}

func (g *Generator) writeItem(buf *bytes.Buffer, post gallery.BrandPost) {
	buf.WriteString("    <item>\n")

	buf.WriteString("      <guid isPermaLink=\"false\">")
	xml.EscapeText(buf, []byte(post.ID))
	buf.WriteString("</guid>\n")

	g.writeElement(buf, "title", post.BrandName, 6)
	g.writeElement(buf, "link", post.SocialURL, 6)
	g.writeElement(buf, "description", cmp.Or(post.Description, "No description available"), 6)

	buf.WriteString("      <category domain=\"industry\">")
	xml.EscapeText(buf, []byte(post.Industry))
	buf.WriteString("</category>\n")

	for _, tag := range post.CreativeTags {
		g.writeElement(buf, "category", tag, 6)
	}

	// RSS 2.0 requires url, length and type; the image size is unknown.
	if post.ImageURL != "" {
		buf.WriteString(fmt.Sprintf("      <enclosure url=\"%s\" length=\"0\" type=\"%s\" />\n",
			html.EscapeString(post.ImageURL),
			html.EscapeString(g.imageType(post.ImageURL))))
	}

	buf.WriteString("    </item>\n")
}

func (g *Generator) writeElement(buf *bytes.Buffer, tag, content string, indent int) {
	if content == "" {
		return
	}

	for i := 0; i < indent; i++ {
		buf.WriteByte(' ')
	}

	buf.WriteString("<")
	buf.WriteString(tag)
	buf.WriteString(">")
	xml.EscapeText(buf, []byte(content))
	buf.WriteString("</")
	buf.WriteString(tag)
	buf.WriteString(">\n")
}

func (g *Generator) imageType(imageURL string) string {
	ext := path.Ext(imageURL)
	if i := strings.IndexAny(ext, "?#"); i >= 0 {
		ext = ext[:i]
	}
	if t := mime.TypeByExtension(strings.ToLower(ext)); strings.HasPrefix(t, "image/") {
		return t
	}
	return defaultImageType
}
