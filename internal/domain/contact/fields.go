// Package contact normaliza los datos de contacto de agentes y agencias, sean
// ingresados a mano o traídos por el "scrub" de perfiles en internet.
//
// Un campo opcional ausente se representa con nil, nunca con "".
package contact

import (
	"regexp"
	"strings"
)

var (
	schemeRe        = regexp.MustCompile(`(?i)^https?://`)
	trailingSlashRe = regexp.MustCompile(`/+$`)
)

// Normalize recorta espacios; nil si queda vacío.
func Normalize(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// NormalizeWebsite devuelve la URL canónica "https://host/ruta": quita el
// esquema http(s) y las barras finales y pasa el host a minúsculas.
// Aplicarla dos veces da el mismo resultado.
func NormalizeWebsite(s string) *string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	sanitized := trailingSlashRe.ReplaceAllString(schemeRe.ReplaceAllString(trimmed, ""), "")
	if sanitized == "" {
		return nil
	}

	host, rest := sanitized, ""
	if i := strings.IndexAny(sanitized, "/?#"); i >= 0 {
		host, rest = sanitized[:i], sanitized[i:]
	}
	website := "https://" + strings.ToLower(host) + rest
	return &website
}

// WebsiteFromDomain sitio web a partir de un dominio suelto; "" si no hay dominio.
func WebsiteFromDomain(domain string) string {
	if w := NormalizeWebsite(domain); w != nil {
		return *w
	}
	return ""
}

// MergeField aplica un valor del scrub sobre el valor actual del formulario sin
// pisarlo con vacíos.
func MergeField(next *string, current string) string {
	if next != nil {
		if trimmed := strings.TrimSpace(*next); trimmed != "" {
			return trimmed
		}
	}
	return current
}

// LogoLookup resuelve la URL de un logo a partir de un dominio o sitio web.
// Devuelve nil si no puede derivar un dominio.
type LogoLookup func(domainOrURL string) *string

// ResolveLogoForSubmit usa el logo informado; si no hay, lo deriva del sitio web.
func ResolveLogoForSubmit(logoURL, website string, lookup LogoLookup) *string {
	if logo := Normalize(logoURL); logo != nil {
		return logo
	}
	if lookup == nil || strings.TrimSpace(website) == "" {
		return nil
	}
	return lookup(website)
}

// AgencyAddressFields partes de la dirección de la agencia en el formulario del agente.
type AgencyAddressFields struct {
	AddressLine1 string
	AddressLine2 string
	City         string
	State        string
	ZipCode      string
}

// BuildAgencyAddress arma "línea 1, línea 2, Ciudad, ST 12345" omitiendo los
// segmentos vacíos; nil si no hay nada.
func BuildAgencyAddress(f AgencyAddressFields) *string {
	segments := make([]string, 0, 3)
	if line1 := strings.TrimSpace(f.AddressLine1); line1 != "" {
		segments = append(segments, line1)
	}
	if line2 := strings.TrimSpace(f.AddressLine2); line2 != "" {
		segments = append(segments, line2)
	}

	cityState := joinNonEmpty(", ", f.City, f.State)
	if locality := joinNonEmpty(" ", cityState, f.ZipCode); locality != "" {
		segments = append(segments, locality)
	}

	if len(segments) == 0 {
		return nil
	}
	address := strings.Join(segments, ", ")
	return &address
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
