package scrub

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// document lo que el extractor usa de una página, recogido en un solo recorrido del árbol.
type document struct {
	title       string
	meta        map[string][]string // name/property en minúsculas → content, en orden
	text        string              // texto visible del body
	links       []string            // href de <a>
	images      []string            // src, data-src y srcset de <img>
	backgrounds []string            // data-bg y url() de style
	address     string              // texto del primer <address>
}

// parseDocument construye el árbol con el parser HTML5; comentarios, script y
// style nunca aportan texto, imágenes ni enlaces.
func parseDocument(rawHTML string) *document {
	doc := &document{meta: make(map[string][]string)}
	root, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return doc
	}

	text := make([]string, 0)
	var walk func(n *html.Node, inBody bool)
	walk = func(n *html.Node, inBody bool) {
		switch n.Type {
		case html.TextNode:
			if inBody {
				text = append(text, n.Data)
			}
			return
		case html.CommentNode:
			return
		case html.ElementNode:
			if skippedElement(n) {
				return
			}
			switch n.DataAtom {
			case atom.Title:
				if n.Namespace == "" {
					if doc.title == "" {
						doc.title = collapse(nodeText(n))
					}
					return
				}
			case atom.Meta:
				doc.addMeta(n)
			case atom.Body:
				inBody = true
			case atom.A:
				if v := attrValue(n, "href"); v != "" {
					doc.links = append(doc.links, v)
				}
			case atom.Img:
				doc.images = append(doc.images, imageSources(n)...)
			case atom.Address:
				if doc.address == "" {
					doc.address = collapse(nodeText(n))
				}
			}
			doc.backgrounds = append(doc.backgrounds, backgroundSources(n)...)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, inBody)
		}
	}
	walk(root, false)

	doc.text = collapse(strings.Join(text, " "))
	return doc
}

func skippedElement(n *html.Node) bool {
	switch n.DataAtom {
	case atom.Script, atom.Style, atom.Noscript, atom.Template:
		return true
	}
	return false
}

func (d *document) addMeta(n *html.Node) {
	key := strings.ToLower(attrValue(n, "name"))
	if key == "" {
		key = strings.ToLower(attrValue(n, "property"))
	}
	if key == "" {
		return
	}
	if v := collapse(attrValue(n, "content")); v != "" {
		d.meta[key] = append(d.meta[key], v)
	}
}

// metaContent primer content no vacío de las claves, en orden de prioridad.
func (d *document) metaContent(keys ...string) string {
	for _, k := range keys {
		if values := d.meta[k]; len(values) > 0 {
			return values[0]
		}
	}
	return ""
}

// nodeText texto de los descendientes separado por espacios; <br> queda como espacio.
func nodeText(n *html.Node) string {
	parts := make([]string, 0)
	var walk func(*html.Node)
	walk = func(c *html.Node) {
		switch c.Type {
		case html.TextNode:
			parts = append(parts, c.Data)
			return
		case html.ElementNode:
			if skippedElement(c) {
				return
			}
		case html.CommentNode:
			return
		}
		for ch := c.FirstChild; ch != nil; ch = ch.NextSibling {
			walk(ch)
		}
	}
	walk(n)
	return strings.Join(parts, " ")
}

// attrValue el parser ya pasa las claves a minúsculas y decodifica entidades.
func attrValue(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == name {
			return strings.TrimSpace(a.Val)
		}
	}
	return ""
}

func imageSources(n *html.Node) []string {
	sources := make([]string, 0, 4)
	for _, a := range imgSrcAttrs {
		if v := attrValue(n, a); v != "" {
			sources = append(sources, v)
		}
	}
	for _, a := range imgSrcSetAttrs {
		sources = append(sources, parseSrcSet(attrValue(n, a))...)
	}
	return sources
}

func backgroundSources(n *html.Node) []string {
	sources := make([]string, 0)
	for _, a := range bgAttrs {
		if v := attrValue(n, a); v != "" {
			sources = append(sources, v)
		}
	}
	for _, m := range styleURLRe.FindAllStringSubmatch(attrValue(n, "style"), -1) {
		sources = append(sources, m[1])
	}
	return sources
}
