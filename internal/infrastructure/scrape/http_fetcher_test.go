package scrape_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inspectos-api/internal/infrastructure/scrape"
)

func TestHTTPFetcher_DescargaConCabeceras(t *testing.T) {
	var gotUA, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html><title>Jane Doe</title></html>"))
	}))
	defer srv.Close()

	f := scrape.NewHTTPFetcher(scrape.Config{UserAgent: "InspectOSBot/1.0"})
	page, err := f.Fetch(context.Background(), srv.URL+"/agents/jane")
	require.NoError(t, err)

	assert.Equal(t, "InspectOSBot/1.0", gotUA)
	assert.Contains(t, gotAccept, "text/html")
	assert.Equal(t, srv.URL+"/agents/jane", page.URL)
	assert.Equal(t, "<html><title>Jane Doe</title></html>", string(page.Body))
}

func TestHTTPFetcher_TruncaAlLimite(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("a", 100)))
	}))
	defer srv.Close()

	f := scrape.NewHTTPFetcher(scrape.Config{MaxBytes: 10})
	page, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Len(t, page.Body, 10)
}

func TestHTTPFetcher_EstadoNo2xxEsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := scrape.NewHTTPFetcher(scrape.Config{}).Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 404")
}

func TestHTTPFetcher_DecodificaLatin1(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=ISO-8859-1")
		_, _ = w.Write([]byte{'J', 'o', 's', 0xe9})
	}))
	defer srv.Close()

	page, err := scrape.NewHTTPFetcher(scrape.Config{}).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "José", string(page.Body))
}

func TestHTTPFetcher_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	f := scrape.NewHTTPFetcher(scrape.Config{Timeout: 20 * time.Millisecond})
	_, err := f.Fetch(context.Background(), srv.URL)
	assert.Error(t, err)
}
