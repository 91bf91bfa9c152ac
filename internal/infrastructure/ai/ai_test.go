package ai_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inspectos-api/internal/infrastructure/ai"
)

func TestAnthropic_ExtraePerfilEnvueltoEnMarkdown(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "clave", r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"Here you go:\n` + "```json" + `\n{\"name\":\" Jane Doe \",\"email\":\"jane@kw.com\",\"agency_address\":\"500 Congress Ave, Austin, TX 78701\"}\n` + "```" + `"}]}`))
	}))
	defer srv.Close()

	svc := ai.NewAnthropicService("clave", "claude-test").WithEndpoint(srv.URL)
	out, err := svc.ExtractProfile(context.Background(), "https://kw.com/jane", "Jane Doe Realtor", []string{"email", "agency_address"})
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", out.Name)
	assert.Equal(t, "jane@kw.com", out.Email)
	assert.Equal(t, "500 Congress Ave, Austin, TX 78701", out.AgencyAddress)
	assert.Empty(t, out.Phone)
	assert.Equal(t, "claude-test", got["model"])
}

func TestAnthropic_ErrorDeAPI(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"type":"rate_limit_error","message":"slow down"}}`))
	}))
	defer srv.Close()

	_, err := ai.NewAnthropicService("clave", "m").WithEndpoint(srv.URL).
		ExtractProfile(context.Background(), "u", "t", []string{"email"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate_limit_error")
}

func TestAnthropic_SinAPIKey(t *testing.T) {
	_, err := ai.NewAnthropicService("", "m").ExtractProfile(context.Background(), "u", "t", nil)
	assert.ErrorContains(t, err, "ANTHROPIC_API_KEY")
}

func TestGemini_ExtraePerfil(t *testing.T) {
	var path, key string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		key = r.URL.Query().Get("key")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"{\"phone\":\"(512) 555-0100\",\"role\":\"Broker\"}"}]}}]}`))
	}))
	defer srv.Close()

	svc := ai.NewGeminiService("clave", "gemini-test").WithBaseURL(srv.URL)
	out, err := svc.ExtractProfile(context.Background(), "https://kw.com/jane", "texto", []string{"phone"})
	require.NoError(t, err)

	assert.Equal(t, "/models/gemini-test:generateContent", path)
	assert.Equal(t, "clave", key)
	assert.Equal(t, "(512) 555-0100", out.Phone)
	assert.Equal(t, "Broker", out.Role)
}

func TestGemini_RespuestaSinJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"no sé"}]}}]}`))
	}))
	defer srv.Close()

	_, err := ai.NewGeminiService("clave", "m").WithBaseURL(srv.URL).
		ExtractProfile(context.Background(), "u", "t", []string{"name"})
	assert.ErrorContains(t, err, "no se encontró JSON")
}

func TestNew_EligeProveedor(t *testing.T) {
	assert.IsType(t, &ai.AnthropicService{}, ai.New("Anthropic", "k", "m", "", ""))
	assert.IsType(t, &ai.GeminiService{}, ai.New("gemini", "", "", "k", "m"))
	assert.Nil(t, ai.New("", "k", "m", "k", "m"))
}
