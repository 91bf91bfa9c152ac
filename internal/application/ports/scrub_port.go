package ports

import (
	"context"
)

// FetchedPage HTML descargado de un perfil público.
type FetchedPage struct {
	URL         string // URL final tras redirecciones
	ContentType string
	Body        []byte
}

// PageFetcher descarga una página pública respetando timeout y límite de bytes.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (*FetchedPage, error)
}

// ProfileFields campos de contacto que un modelo de lenguaje puede completar.
// Vacío = no encontrado.
type ProfileFields struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Role          string `json:"role"`
	AgencyName    string `json:"agency_name"`
	AgencyAddress string `json:"agency_address"`
}

// ProfileExtractor puerto de salida hacia el LLM (Anthropic, Gemini).
// Recibe el texto visible de la página y la lista de campos faltantes; el
// contexto debe llevar timeout.
type ProfileExtractor interface {
	ExtractProfile(ctx context.Context, pageURL, pageText string, missing []string) (*ProfileFields, error)
}
