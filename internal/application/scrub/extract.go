package scrub

import (
	"net/url"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const maxPhotoCandidates = 30

// Profile datos reconocidos en el HTML de un perfil, sin LLM.
type Profile struct {
	Name            string
	Role            string
	Email           string
	Phone           string
	LicenseNumbers  []string
	PhotoCandidates []string
	AgencyName      string
	AgencyAddress   string
	Text            string // texto visible del body, para el LLM
}

const streetSuffix = `(?:street|st|avenue|ave|road|rd|boulevard|blvd|drive|dr|lane|ln|way|parkway|pkwy|court|ct|place|pl|terrace|ter|circle|cir|highway|hwy)\b\.?`

var (
	spacesRe   = regexp.MustCompile(`\s+`)
	pathSplit  = regexp.MustCompile(`[\s-]+`)
	pageExtRe  = regexp.MustCompile(`(?i)\.(html|htm|php)$`)
	emailRe    = regexp.MustCompile(`(?i)[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}`)
	phoneRe    = regexp.MustCompile(`[+\d][0-9().\-\s]{7,}`)
	nonDigitRe = regexp.MustCompile(`\D`)
	digitRe    = regexp.MustCompile(`\d`)
	realtorRe  = regexp.MustCompile(`(?i)realtor|real estate agent|listing agent`)
	brokerRe   = regexp.MustCompile(`(?i)broker`)
	teamLeadRe = regexp.MustCompile(`(?i)team lead`)
	licenseRe  = regexp.MustCompile(`(?i)\b(?:licen(?:se|sed)|license#?)[:\s#-]*([A-Z0-9-]{4,})`)

	styleURLRe = regexp.MustCompile(`(?i)url\(\s*['"]?([^'")]+)['"]?\s*\)`)
	imageExtRe = regexp.MustCompile(`(?i)\.(png|jpe?g|webp|gif|avif|bmp|svg)(\?|$)`)
	imageFmtRe = regexp.MustCompile(`(?i)[?&](?:fm|format|image_format)=(?:png|jpe?g|webp|gif|avif|bmp|svg)\b`)
	imagePath  = regexp.MustCompile(`(?i)/(?:image|images|img|photo|photos|avatar|media)\b`)
	headshotRe = regexp.MustCompile(`(?i)headshot|portrait|profile|agent|team|staff`)
	mediaRe    = regexp.MustCompile(`(?i)photo|image|media|cdn`)
	logoLikeRe = regexp.MustCompile(`(?i)logo|icon|favicon|sprite|placeholder`)
	layoutRe   = regexp.MustCompile(`(?i)banner|header|footer|background|hero`)
	thumbRe    = regexp.MustCompile(`(?i)\b(?:16|24|32|48|64|96|128)x(?:16|24|32|48|64|96|128)\b`)

	labeledAddrRe   = regexp.MustCompile(`(?i)\b(?:Address|Office|Location)\b[:\s-]+([A-Za-z0-9#.,\-\s]{12,120})`)
	directAddrRe    = regexp.MustCompile(`(?i)(\d{1,6}\s+[A-Za-z0-9#.'-]+(?:\s+[A-Za-z0-9#.'-]+){0,7}\s+` + streetSuffix + `)\s+([A-Za-z .'-]+),?\s*([A-Za-z]{2})\s*,?\s*(\d{5}(?:-\d{4})?)`)
	trailingInfoRe  = regexp.MustCompile(`(?i)\b(?:hours?|phone|call|contact)\b.*$`)
	addressLabelRe  = regexp.MustCompile(`(?i)\b(?:hours?|office|address|location)\b[:\s-]*`)
	fullAddressRe   = regexp.MustCompile(`(?i)(\d{1,6}\s+[A-Za-z0-9#.'-]+(?:\s+[A-Za-z0-9#.'-]+){0,6}\s+` + streetSuffix + `)\s*,?\s*([A-Za-z .'-]+),?\s*([A-Za-z]{2})\s*,?\s*(\d{5}(?:-\d{4})?)`)
	streetOnlyRe    = regexp.MustCompile(`(?i)\d{1,6}\s+[A-Za-z0-9#.'-]+(?:\s+[A-Za-z0-9#.'-]+){0,6}\s+` + streetSuffix + `\b`)
	zipInAddressRe  = regexp.MustCompile(`\b\d{5}(?:-\d{4})?\b`)
	httpSchemeRe    = regexp.MustCompile(`(?i)^https?://`)
	personSeparator = []string{" — ", " – ", " | ", " • ", " - "}

	titleCaser = cases.Title(language.English, cases.NoLower)
)

var (
	nameMetaKeys   = []string{"profile:first_name", "og:title", "twitter:title"}
	agencyMetaKeys = []string{"og:site_name", "application-name"}
	imageMetaKeys  = []string{"og:image", "og:image:url", "twitter:image", "twitter:image:src", "profile:image"}
	imgSrcAttrs    = []string{"src", "data-src", "data-lazy-src", "data-original"}
	imgSrcSetAttrs = []string{"srcset", "data-srcset"}
	bgAttrs        = []string{"data-bg", "data-background", "data-background-image", "data-lazy-bg"}
)

// ExtractProfile reconoce nombre, contacto, licencias, fotos y agencia en el
// HTML de un perfil público.
func ExtractProfile(page *url.URL, domain, rawHTML string) Profile {
	doc := parseDocument(rawHTML)
	text := doc.text

	candidateName := doc.metaContent(nameMetaKeys...)
	if candidateName == "" {
		candidateName = doc.title
	}
	if candidateName == "" {
		candidateName = nameFromPath(page.Path)
	}
	person, agencyFromName := splitPersonAndAgency(candidateName)

	agencyName := doc.metaContent(agencyMetaKeys...)
	if agencyName == "" {
		agencyName = agencyNameFromDomain(domain)
	}
	if agencyName == "" {
		agencyName = agencyFromName
	}

	return Profile{
		Name:            person,
		Role:            extractRole(text),
		Email:           extractEmail(doc.links, text),
		Phone:           extractPhone(doc.links, text),
		LicenseNumbers:  extractLicenses(text),
		PhotoCandidates: photoCandidates(doc, page),
		AgencyName:      agencyName,
		AgencyAddress:   NormalizeAgencyAddress(extractAgencyAddress(doc.address, text)),
		Text:            text,
	}
}

func collapse(s string) string {
	return strings.TrimSpace(spacesRe.ReplaceAllString(s, " "))
}

// toTitleCase "jane-doe" → "Jane Doe"; conserva el resto de cada palabra.
func toTitleCase(s string) string {
	parts := pathSplit.Split(s, -1)
	words := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			words = append(words, titleCaser.String(p))
		}
	}
	return strings.Join(words, " ")
}

// nameFromPath "/agents/jane-doe.html" → "Jane Doe".
func nameFromPath(p string) string {
	segments := strings.FieldsFunc(p, func(r rune) bool { return r == '/' })
	if len(segments) == 0 {
		return ""
	}
	last := pageExtRe.ReplaceAllString(segments[len(segments)-1], "")
	if len(last) < 2 {
		return ""
	}
	return toTitleCase(last)
}

// agencyNameFromDomain "kellerwilliams.com" → "Kellerwilliams".
func agencyNameFromDomain(domain string) string {
	label, _, _ := strings.Cut(domain, ".")
	if label == "" {
		return ""
	}
	return toTitleCase(label)
}

// splitPersonAndAgency separa "Jane Doe | Keller Williams" en persona y agencia.
// Sólo corta en separadores con espacios para no partir apellidos compuestos.
func splitPersonAndAgency(raw string) (person, agency string) {
	cleaned := collapse(raw)
	if cleaned == "" {
		return "", ""
	}
	for _, sep := range personSeparator {
		if !strings.Contains(cleaned, sep) {
			continue
		}
		parts := make([]string, 0)
		for _, p := range strings.Split(cleaned, sep) {
			if p = strings.TrimSpace(p); p != "" {
				parts = append(parts, p)
			}
		}
		if len(parts) == 0 {
			continue
		}
		return parts[0], strings.TrimSpace(strings.Join(parts[1:], " "))
	}
	return cleaned, ""
}

// linkTarget valor de un href con el esquema dado ("mailto:", "tel:"), sin query.
func linkTarget(href, scheme string) (string, bool) {
	if len(href) < len(scheme) || !strings.EqualFold(href[:len(scheme)], scheme) {
		return "", false
	}
	v, _, _ := strings.Cut(href[len(scheme):], "?")
	if unescaped, err := url.PathUnescape(v); err == nil {
		v = unescaped
	}
	return strings.TrimSpace(v), true
}

// extractEmail primero enlaces mailto:, después el primer correo del texto visible.
func extractEmail(links []string, text string) string {
	for _, href := range links {
		if v, ok := linkTarget(href, "mailto:"); ok {
			if m := emailRe.FindString(v); m != "" {
				return strings.ToLower(m)
			}
		}
	}
	return strings.ToLower(emailRe.FindString(text))
}

// extractPhone primero enlaces tel:, después el primer candidato con 10 a 15 dígitos.
func extractPhone(links []string, text string) string {
	for _, href := range links {
		if v, ok := linkTarget(href, "tel:"); ok {
			if m := phoneRe.FindString(v); m != "" {
				return collapse(m)
			}
		}
	}
	for _, candidate := range phoneRe.FindAllString(text, -1) {
		digits := nonDigitRe.ReplaceAllString(candidate, "")
		if len(digits) >= 10 && len(digits) <= 15 {
			return collapse(candidate)
		}
	}
	return ""
}

func extractRole(text string) string {
	switch {
	case realtorRe.MatchString(text):
		return "Realtor"
	case brokerRe.MatchString(text):
		return "Broker"
	case teamLeadRe.MatchString(text):
		return "Team Lead"
	default:
		return ""
	}
}

// extractLicenses números tras "License", "Licensed" o "License#". Se exige un
// dígito para no tomar frases como "Licensed Realtor".
func extractLicenses(text string) []string {
	seen := make(map[string]bool)
	out := make([]string, 0)
	for _, m := range licenseRe.FindAllStringSubmatch(text, -1) {
		v := strings.Trim(m[1], "-")
		if v == "" || !digitRe.MatchString(v) || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// ── Fotos ─────────────────────────────────────────────────────────────────────

func resolveURL(raw string, base *url.URL) string {
	ref, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return ""
	}
	u := base.ResolveReference(ref)
	u.Fragment = ""
	s := u.String()
	if !httpSchemeRe.MatchString(s) {
		return ""
	}
	return s
}

func isLikelyImageURL(u string) bool {
	return imageExtRe.MatchString(u) || imageFmtRe.MatchString(u) || imagePath.MatchString(u)
}

func scorePhoto(u string) int {
	score := 0
	if headshotRe.MatchString(u) {
		score += 5
	}
	if mediaRe.MatchString(u) {
		score += 2
	}
	if logoLikeRe.MatchString(u) {
		score -= 6
	}
	if layoutRe.MatchString(u) {
		score -= 3
	}
	if thumbRe.MatchString(u) {
		score -= 2
	}
	return score
}

// photoCandidates imágenes de meta og/twitter, <img> (src, data-src, srcset) y
// fondos CSS, ordenadas por probabilidad de ser un retrato.
func photoCandidates(doc *document, base *url.URL) []string {
	results := make([]string, 0)
	for _, k := range imageMetaKeys {
		v := doc.metaContent(k)
		if v == "" {
			continue
		}
		if resolved := resolveURL(v, base); resolved != "" && isLikelyImageURL(resolved) {
			results = append(results, resolved)
		}
	}
	for _, group := range [][]string{doc.images, doc.backgrounds} {
		for _, raw := range group {
			if resolved := resolveURL(raw, base); resolved != "" {
				results = append(results, resolved)
			}
		}
	}

	unique := dedupe(results)
	sort.SliceStable(unique, func(a, b int) bool {
		return scorePhoto(unique[a]) > scorePhoto(unique[b])
	})
	if len(unique) > maxPhotoCandidates {
		unique = unique[:maxPhotoCandidates]
	}
	return unique
}

func parseSrcSet(v string) []string {
	out := make([]string, 0)
	for _, entry := range strings.Split(v, ",") {
		if fields := strings.Fields(entry); len(fields) > 0 {
			out = append(out, fields[0])
		}
	}
	return out
}

func dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

// PickHeadshot prefiere una URL con palabras de retrato; si no, la primera.
func PickHeadshot(candidates []string) string {
	for _, c := range candidates {
		if headshotRe.MatchString(c) {
			return c
		}
	}
	if len(candidates) > 0 {
		return candidates[0]
	}
	return ""
}

// ── Dirección de la agencia ───────────────────────────────────────────────────

// extractAgencyAddress busca un bloque <address>, después un rótulo
// "Address:/Office:/Location:" y por último una calle con ciudad, estado y ZIP.
func extractAgencyAddress(address, text string) string {
	if address != "" {
		return address
	}
	if m := labeledAddrRe.FindStringSubmatch(text); m != nil {
		return collapse(m[1])
	}
	if m := directAddrRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1]) + ", " + strings.TrimSpace(m[2]) + ", " + strings.ToUpper(m[3]) + " " + m[4]
	}
	return ""
}

// NormalizeAgencyAddress limpia rótulos y texto sobrante ("Phone ...", "Hours ...")
// y, si reconoce calle, ciudad, estado y ZIP, devuelve "calle, Ciudad, ST 12345".
func NormalizeAgencyAddress(value string) string {
	cleaned := collapse(addressLabelRe.ReplaceAllString(trailingInfoRe.ReplaceAllString(value, ""), ""))
	if cleaned == "" {
		return ""
	}
	if m := fullAddressRe.FindStringSubmatch(cleaned); m != nil {
		return strings.TrimSpace(m[1]) + ", " + strings.TrimSpace(m[2]) + ", " + strings.ToUpper(m[3]) + " " + m[4]
	}
	if loc := streetOnlyRe.FindStringIndex(cleaned); loc != nil {
		if zipInAddressRe.MatchString(cleaned[loc[0]:]) {
			return strings.TrimSpace(strings.Trim(cleaned[loc[0]:], ", "))
		}
		return strings.TrimSpace(cleaned[loc[0]:loc[1]])
	}
	return cleaned
}
