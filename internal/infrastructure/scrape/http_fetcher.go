// Package scrape descarga páginas públicas de perfiles de agentes y agencias.
package scrape

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/inspectos-api/internal/application/ports"
)

var _ ports.PageFetcher = (*HTTPFetcher)(nil)

const acceptHeader = "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8"

// Config límites de la descarga.
type Config struct {
	Timeout   time.Duration
	MaxBytes  int64
	UserAgent string
}

// HTTPFetcher implementa ports.PageFetcher con net/http.
type HTTPFetcher struct {
	client    *http.Client
	maxBytes  int64
	userAgent string
}

// NewHTTPFetcher construye el descargador. Timeout 0 = 10 s; MaxBytes 0 = 2 MiB.
func NewHTTPFetcher(cfg Config) *HTTPFetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = 2 << 20
	}
	return &HTTPFetcher{
		client:    &http.Client{Timeout: cfg.Timeout},
		maxBytes:  cfg.MaxBytes,
		userAgent: cfg.UserAgent,
	}
}

// Fetch hace GET y devuelve el cuerpo en UTF-8, truncado a MaxBytes.
// Un estado distinto de 2xx es error.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*ports.FetchedPage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("scrape: crear request: %w", err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}
	req.Header.Set("Accept", acceptHeader)

	resp, err := f.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("scrape: timeout o cancelación: %w", ctx.Err())
		}
		return nil, fmt.Errorf("scrape: GET %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("scrape: GET %s: HTTP %d", url, resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	body, err := io.ReadAll(decoder(contentType, io.LimitReader(resp.Body, f.maxBytes)))
	if err != nil {
		return nil, fmt.Errorf("scrape: leer cuerpo: %w", err)
	}

	return &ports.FetchedPage{
		URL:         resp.Request.URL.String(),
		ContentType: contentType,
		Body:        body,
	}, nil
}

// decoder pasa a UTF-8 los sitios que todavía declaran Latin-1 o Windows-1252.
func decoder(contentType string, r io.Reader) io.Reader {
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return r
	}
	switch strings.ToLower(params["charset"]) {
	case "iso-8859-1", "latin1", "latin-1":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	case "windows-1252", "cp1252":
		return transform.NewReader(r, charmap.Windows1252.NewDecoder())
	default:
		return r
	}
}
