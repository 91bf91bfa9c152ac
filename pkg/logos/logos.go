// Package logos construye URLs de logos de empresas a partir de su dominio
// usando el CDN de logo.dev.
package logos

import (
	"net/url"
	"strconv"
	"strings"
)

const baseURL = "https://img.logo.dev/"

// DefaultSize tamaño usado en formularios de agencias y agentes.
const DefaultSize = 96

// Options parámetros opcionales del CDN.
type Options struct {
	Size   int    // px; 0 = sin especificar
	Format string // png, jpg, webp
	Theme  string // light, dark
}

// Client arma URLs firmadas con el token público de logo.dev.
type Client struct {
	token string
}

// New crea el cliente. Con token vacío las URLs se generan sin token.
func New(token string) *Client {
	return &Client{token: strings.TrimSpace(token)}
}

// URL devuelve la URL del logo para un dominio o sitio web; nil si no se puede
// derivar un dominio.
func (c *Client) URL(domainOrURL string, opts Options) *string {
	domain := Domain(domainOrURL)
	if domain == "" {
		return nil
	}

	q := url.Values{}
	if c.token != "" {
		q.Set("token", c.token)
	}
	if opts.Size > 0 {
		q.Set("size", strconv.Itoa(opts.Size))
	}
	if opts.Format != "" {
		q.Set("format", opts.Format)
	}
	if opts.Theme != "" {
		q.Set("theme", opts.Theme)
	}

	u := baseURL + url.PathEscape(domain)
	if encoded := q.Encode(); encoded != "" {
		u += "?" + encoded
	}
	return &u
}

// Lookup función de búsqueda con tamaño fijo, para inyectar en los casos de uso.
func (c *Client) Lookup(size int) func(domainOrURL string) *string {
	return func(domainOrURL string) *string {
		return c.URL(domainOrURL, Options{Size: size})
	}
}

// Domain extrae el host de "https://www.acme.com/team" → "acme.com".
// Devuelve "" si el valor no parece un dominio.
func Domain(domainOrURL string) string {
	s := strings.ToLower(strings.TrimSpace(domainOrURL))
	if s == "" {
		return ""
	}
	if !strings.Contains(s, "://") {
		s = "https://" + s
	}
	u, err := url.Parse(s)
	if err != nil {
		return ""
	}
	host := strings.TrimPrefix(u.Hostname(), "www.")
	if !strings.Contains(host, ".") || strings.HasPrefix(host, ".") || strings.HasSuffix(host, ".") {
		return ""
	}
	return host
}
