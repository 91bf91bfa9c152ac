// Package ai implementa ports.ProfileExtractor con las APIs REST de Anthropic
// y Gemini. Usa net/http; no requiere los SDK oficiales.
package ai

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/jhoicas/inspectos-api/internal/application/ports"
)

// Proveedores soportados (AI_PROVIDER).
const (
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
)

const maxResponseBytes = 64 * 1024

const profileSystemPrompt = `You extract contact details of a real estate agent or agency from the visible text of their public web page.
Return ONLY a valid JSON object (no markdown, no code fences) with these keys:
{
  "name": "<person or agency name>",
  "email": "<email address>",
  "phone": "<phone number as written on the page>",
  "role": "<job title, e.g. Realtor, Broker, Team Lead>",
  "agency_name": "<brokerage or agency name>",
  "agency_address": "<street, city, state ZIP of the office>"
}
Rules:
- Use "" for any value not present in the text. Never invent data.
- Only the requested fields matter; the rest may be "".`

// jsonBlockRe primer objeto JSON del texto aunque el modelo lo envuelva en markdown.
var jsonBlockRe = regexp.MustCompile(`(?s)\{.*\}`)

func profileUserPrompt(pageURL, pageText string, missing []string) string {
	return fmt.Sprintf("Page URL: %s\nRequested fields: %s\n\nPage text:\n%s",
		pageURL, strings.Join(missing, ", "), pageText)
}

// parseProfile decodifica la respuesta del modelo en ProfileFields.
func parseProfile(rawText string) (*ports.ProfileFields, error) {
	cleanJSON := extractJSON(rawText)
	if cleanJSON == "" {
		return nil, fmt.Errorf("AI: no se encontró JSON válido en la respuesta del modelo (respuesta: %s)", rawText)
	}
	var fields ports.ProfileFields
	if err := json.Unmarshal([]byte(cleanJSON), &fields); err != nil {
		return nil, fmt.Errorf("AI: parsear JSON de perfil: %w (JSON extraído: %s)", err, cleanJSON)
	}
	fields.Name = strings.TrimSpace(fields.Name)
	fields.Email = strings.TrimSpace(fields.Email)
	fields.Phone = strings.TrimSpace(fields.Phone)
	fields.Role = strings.TrimSpace(fields.Role)
	fields.AgencyName = strings.TrimSpace(fields.AgencyName)
	fields.AgencyAddress = strings.TrimSpace(fields.AgencyAddress)
	return &fields, nil
}

// extractJSON extrae el primer objeto JSON de un texto libre.
//  1. Quita bloques de código markdown (```json … ``` o ``` … ```).
//  2. Si no empieza con '{', toma el primer bloque { … } por regex.
func extractJSON(text string) string {
	text = strings.TrimSpace(text)
	if idx := strings.Index(text, "```"); idx != -1 {
		after := text[idx+3:]
		if nl := strings.Index(after, "\n"); nl != -1 {
			after = after[nl+1:]
		}
		if end := strings.LastIndex(after, "```"); end != -1 {
			after = after[:end]
		}
		text = strings.TrimSpace(after)
	}
	if strings.HasPrefix(text, "{") {
		return text
	}
	return strings.TrimSpace(jsonBlockRe.FindString(text))
}

// New elige el adaptador según el proveedor configurado; nil si no hay.
func New(provider, anthropicKey, anthropicModel, geminiKey, geminiModel string) ports.ProfileExtractor {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case ProviderAnthropic:
		return NewAnthropicService(anthropicKey, anthropicModel)
	case ProviderGemini:
		return NewGeminiService(geminiKey, geminiModel)
	default:
		return nil
	}
}
