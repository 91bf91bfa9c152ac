package contact

import (
	"regexp"
	"strings"
)

// ParsedAddress dirección estructurada extraída de texto libre.
// AddressLine1 nunca está vacío; el resto puede faltar.
type ParsedAddress struct {
	AddressLine1 string
	AddressLine2 *string
	City         *string
	State        *string // dos letras, en mayúsculas
	ZipCode      *string // 12345 o 12345-6789
}

var (
	whitespaceRe  = regexp.MustCompile(`\s+`)
	noiseLabelRe  = regexp.MustCompile(`(?i)^(?:hours?|office|address|location)\b[:\s-]*`)
	streetStartRe = regexp.MustCompile(`(?i)\b\d{1,6}\s+[A-Za-z0-9#.'-]+(?:\s+[A-Za-z0-9#.'-]+){0,5}\s+` +
		`(?:st|street|ave|avenue|rd|road|blvd|boulevard|dr|drive|ln|lane|way|pkwy|parkway|ct|court|pl|place|ter|terrace|cir|circle|hwy|highway)\b`)
	lineBreakRe = regexp.MustCompile(`\r?\n+`)

	zipRe          = regexp.MustCompile(`\b\d{5}(?:-\d{4})?\b`)
	exactZipRe     = regexp.MustCompile(`^\d{5}(?:-\d{4})?$`)
	stateRe        = regexp.MustCompile(`\b[A-Za-z]{2}\b`)
	twoLettersRe   = regexp.MustCompile(`^[A-Za-z]{2}$`)
	trailingComma  = regexp.MustCompile(`,\s*$`)
	nonLetterRe    = regexp.MustCompile(`[^A-Za-z]`)
	digitRe        = regexp.MustCompile(`\d`)
	cityStateZipRe = regexp.MustCompile(`^(?:(.*?),\s*)?([A-Za-z .'-]+)\s*,?\s*([A-Za-z]{2})\s+(\d{5}(?:-\d{4})?)$`)
	secondaryRe    = regexp.MustCompile(`(?i)^(.+?)\s+((?:suite|ste|apt|apartment|unit|bldg|building|floor|fl|rm|room)\.?\s*#?\s*([A-Za-z0-9-]+)|#\s*([A-Za-z0-9-]+))$`)
)

var countryNames = map[string]bool{
	"us":                    true,
	"usa":                   true,
	"unitedstates":          true,
	"unitedstatesofamerica": true,
}

// ParseScrubbedAddress interpreta una dirección de EE.UU. en texto libre
// ("123 Main St, Austin, TX 78701"). Es heurístico: ante ruido devuelve lo que
// pudo reconocer. nil si la entrada está vacía.
//
// Un token final de dos letras se descarta como código de país antes de buscar
// el estado, así que "Austin, TX" sin ZIP pierde el estado.
func ParseScrubbedAddress(raw string) *ParsedAddress {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	input := normalizeAddressInput(raw)
	tokens := tokenize(input)
	if len(tokens) == 0 {
		return nil
	}

	addr := &ParsedAddress{AddressLine1: tokens[0]}
	remaining := tokens[1:]

	for len(remaining) > 0 && isCountryToken(remaining[len(remaining)-1]) {
		remaining = remaining[:len(remaining)-1]
	}

	if len(remaining) > 0 {
		last := len(remaining) - 1
		rest, state, zip := splitStateZip(remaining[last])
		addr.State, addr.ZipCode = state, zip
		if rest != "" {
			remaining[last] = rest
		} else {
			remaining = remaining[:last]
		}
	}

	if addr.State == nil && len(remaining) > 0 {
		if last := remaining[len(remaining)-1]; twoLettersRe.MatchString(last) {
			addr.State = ptr(strings.ToUpper(last))
			remaining = remaining[:len(remaining)-1]
		}
	}

	if addr.ZipCode == nil && len(remaining) > 0 {
		if last := remaining[len(remaining)-1]; exactZipRe.MatchString(last) {
			addr.ZipCode = ptr(last)
			remaining = remaining[:len(remaining)-1]
		}
	}

	if len(remaining) > 0 {
		addr.City = ptr(remaining[len(remaining)-1])
		remaining = remaining[:len(remaining)-1]
	}

	if len(remaining) > 0 {
		addr.AddressLine2 = ptr(strings.Join(remaining, ", "))
	}

	if addr.City == nil || addr.State == nil || addr.ZipCode == nil {
		applyFallback(addr, input)
	}

	splitSecondaryUnit(addr)
	return addr
}

// normalizeAddressInput colapsa espacios, quita rótulos como "Hours:" y descarta
// el texto previo al inicio de una calle reconocible.
func normalizeAddressInput(raw string) string {
	s := strings.TrimSpace(whitespaceRe.ReplaceAllString(raw, " "))
	s = strings.TrimSpace(noiseLabelRe.ReplaceAllString(s, ""))
	if loc := streetStartRe.FindStringIndex(s); loc != nil && loc[0] > 0 {
		s = s[loc[0]:]
	}
	return s
}

// tokenize separa por líneas y luego por comas, sin tokens vacíos.
func tokenize(input string) []string {
	tokens := make([]string, 0)
	for _, line := range lineBreakRe.Split(input, -1) {
		for _, part := range strings.Split(line, ",") {
			if part = strings.TrimSpace(part); part != "" {
				tokens = append(tokens, part)
			}
		}
	}
	return tokens
}

// isCountryToken reconoce "US", "U.S.A.", "United States" y cualquier token de
// dos letras sin dígitos.
func isCountryToken(token string) bool {
	cleaned := strings.TrimSpace(strings.ReplaceAll(token, ".", ""))
	if cleaned == "" {
		return false
	}
	if countryNames[strings.ToLower(nonLetterRe.ReplaceAllString(cleaned, ""))] {
		return true
	}
	if digitRe.MatchString(cleaned) {
		return false
	}
	return twoLettersRe.MatchString(cleaned)
}

// splitStateZip extrae ZIP y estado de un token como "Austin TX 78701" y
// devuelve lo que sobra.
func splitStateZip(token string) (rest string, state, zip *string) {
	rest = token
	if loc := zipRe.FindStringIndex(rest); loc != nil {
		zip = ptr(rest[loc[0]:loc[1]])
		rest = strings.TrimSpace(rest[:loc[0]] + rest[loc[1]:])
	}
	// el estado va al final; la ciudad puede empezar con dos letras ("El Paso")
	if all := stateRe.FindAllStringIndex(rest, -1); len(all) > 0 {
		loc := all[len(all)-1]
		state = ptr(strings.ToUpper(rest[loc[0]:loc[1]]))
		rest = rest[:loc[0]] + rest[loc[1]:]
		rest = strings.TrimSpace(trailingComma.ReplaceAllString(strings.TrimSpace(rest), ""))
	}
	return rest, state, zip
}

type cityStateZip struct {
	street, city, state, zip string
}

// extractCityStateZip reconoce "<calle>, <ciudad>, <ST> <ZIP>" en una sola cadena.
// La coma tras la calle es obligatoria para no partir "123 Main St" en el número.
func extractCityStateZip(source string) (cityStateZip, bool) {
	m := cityStateZipRe.FindStringSubmatch(source)
	if m == nil {
		return cityStateZip{}, false
	}
	return cityStateZip{
		street: strings.TrimSpace(m[1]),
		city:   strings.TrimSpace(m[2]),
		state:  strings.ToUpper(m[3]),
		zip:    m[4],
	}, true
}

// applyFallback completa ciudad, estado o ZIP faltantes con el patrón combinado,
// primero sobre la línea 1 y después sobre la entrada completa.
func applyFallback(addr *ParsedAddress, input string) {
	match, ok := extractCityStateZip(addr.AddressLine1)
	if !ok {
		match, ok = extractCityStateZip(input)
	}
	if !ok {
		return
	}
	if street := strings.TrimSpace(trailingComma.ReplaceAllString(match.street, "")); street != "" {
		addr.AddressLine1 = street
	}
	if addr.City == nil && match.city != "" {
		addr.City = ptr(match.city)
	}
	if addr.State == nil && match.state != "" {
		addr.State = ptr(match.state)
	}
	if addr.ZipCode == nil && match.zip != "" {
		addr.ZipCode = ptr(match.zip)
	}
}

// splitSecondaryUnit mueve "Suite 4", "Apt 2B", "#300" del final de la línea 1
// al comienzo de la línea 2.
func splitSecondaryUnit(addr *ParsedAddress) {
	m := secondaryRe.FindStringSubmatch(addr.AddressLine1)
	if m == nil {
		return
	}
	id := m[3]
	if id == "" {
		id = m[4]
	}
	if !digitRe.MatchString(id) && len(id) != 1 {
		return
	}

	street := strings.TrimSpace(trailingComma.ReplaceAllString(m[1], ""))
	if street == "" {
		return
	}
	unit := strings.TrimSpace(m[2])
	addr.AddressLine1 = street
	if addr.AddressLine2 != nil {
		unit = unit + ", " + *addr.AddressLine2
	}
	addr.AddressLine2 = &unit
}

func ptr(s string) *string {
	return &s
}
