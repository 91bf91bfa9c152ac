package scrub_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inspectos-api/internal/application/scrub"
)

const agentPage = `<!doctype html>
<html><head>
<title>Jane Doe | Keller Williams Austin</title>
<meta property="og:site_name" content="Keller Williams Realty">
<meta property="og:image" content="https://cdn.kw.com/images/jane-headshot.jpg">
</head><body>
<script>var contacto = "ignorar@script.com";</script>
<h1>Jane Doe</h1>
<p>Licensed Realtor in Texas. License #0654321</p>
<a href="mailto:Jane.Doe@KW.com">Email me</a>
<a href="tel:+1 (512) 555-0100">Call</a>
<img src="/assets/logo.png"><img data-src="/team/jane-profile.jpg">
<address>Office: 500 Congress Ave<br>Austin, TX 78701</address>
</body></html>`

func mustURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func TestExtractProfile_PaginaDeAgente(t *testing.T) {
	p := scrub.ExtractProfile(mustURL(t, "https://kw.com/agents/jane-doe"), "kw.com", agentPage)

	assert.Equal(t, "Jane Doe", p.Name)
	assert.Equal(t, "Keller Williams Realty", p.AgencyName, "og:site_name tiene prioridad")
	assert.Equal(t, "Realtor", p.Role)
	assert.Equal(t, "jane.doe@kw.com", p.Email, "mailto primero y en minúsculas")
	assert.Equal(t, "+1 (512) 555-0100", p.Phone)
	assert.Equal(t, []string{"0654321"}, p.LicenseNumbers, "'Licensed Realtor' no es una licencia")
	assert.Equal(t, "500 Congress Ave, Austin, TX 78701", p.AgencyAddress)
	assert.Equal(t, []string{
		"https://cdn.kw.com/images/jane-headshot.jpg",
		"https://kw.com/team/jane-profile.jpg",
		"https://kw.com/assets/logo.png",
	}, p.PhotoCandidates, "ordenadas por puntaje, el logo al final")
	assert.NotContains(t, p.Text, "ignorar@script.com", "el texto excluye scripts")
}

func TestExtractProfile_NombreDesdeRutaYAgenciaDesdeDominio(t *testing.T) {
	page := `<html><body><p>Call 512.555.0199 today</p></body></html>`

	p := scrub.ExtractProfile(mustURL(t, "https://acmehomes.com/team/john-smith.html"), "acmehomes.com", page)

	assert.Equal(t, "John Smith", p.Name)
	assert.Equal(t, "Acmehomes", p.AgencyName)
	assert.Equal(t, "512.555.0199", p.Phone, "sin tel: se toma el primer número de 10 dígitos")
	assert.Empty(t, p.Email)
	assert.Empty(t, p.Role)
	assert.Empty(t, p.LicenseNumbers)
}

func TestExtractProfile_DireccionConRotulo(t *testing.T) {
	page := `<html><body><div>Office: 1200 Lamar Blvd, Austin, TX 78703 Phone 512-555-0100</div></body></html>`

	p := scrub.ExtractProfile(mustURL(t, "https://example.com"), "example.com", page)

	assert.Equal(t, "1200 Lamar Blvd, Austin, TX 78703", p.AgencyAddress)
}

func TestExtractProfile_FotosDeSrcsetYFondos(t *testing.T) {
	page := `<html><body>
<img srcset="/img/agent-400.jpg 400w, /img/agent-800.jpg 800w">
<div style="background-image: url('/media/hero-banner.jpg')"></div>
<div data-bg="https://cdn.example.com/staff/portrait.webp#frag"></div>
</body></html>`

	p := scrub.ExtractProfile(mustURL(t, "https://example.com/about"), "example.com", page)

	assert.ElementsMatch(t, []string{
		"https://example.com/img/agent-400.jpg",
		"https://example.com/img/agent-800.jpg",
		"https://example.com/media/hero-banner.jpg",
		"https://cdn.example.com/staff/portrait.webp",
	}, p.PhotoCandidates)
	assert.Equal(t, "https://cdn.example.com/staff/portrait.webp", p.PhotoCandidates[0])
}

func TestExtractProfile_ApostrofeEnMetaYEntidades(t *testing.T) {
	page := `<html><head>
<meta property="og:title" content="Jane O'Brien | Smith &amp; Sons Realty">
<meta property='og:site_name' content='Smith &amp; Sons "Realty"'>
</head><body><a href="mailto:JOBrien@Smith-Sons.com?subject=Hola">Escribir</a></body></html>`

	p := scrub.ExtractProfile(mustURL(t, "https://smith-sons.com/agents/obrien"), "smith-sons.com", page)

	assert.Equal(t, "Jane O'Brien", p.Name, "la comilla simple dentro de comillas dobles no corta el valor")
	assert.Equal(t, `Smith & Sons "Realty"`, p.AgencyName)
	assert.Equal(t, "jobrien@smith-sons.com", p.Email, "se descarta la query del mailto")
}

func TestExtractProfile_IgnoraComentariosYScripts(t *testing.T) {
	page := `<html><body>
<!-- <img src="/old/agent-headshot.jpg"> -->
<!-- <a href="mailto:viejo@example.com">x</a> antiguo 512-555-0000 -->
<script>document.write('<img src="/js/agent-photo.jpg">')</script>
<img src="/team/current-agent.jpg">
<p>Contacto: 512-555-0123</p>
</body></html>`

	p := scrub.ExtractProfile(mustURL(t, "https://example.com/about"), "example.com", page)

	assert.Equal(t, []string{"https://example.com/team/current-agent.jpg"}, p.PhotoCandidates)
	assert.Empty(t, p.Email, "un mailto comentado no cuenta")
	assert.Equal(t, "512-555-0123", p.Phone)
	assert.NotContains(t, p.Text, "antiguo")
}

func TestExtractProfile_SinHTMLValido(t *testing.T) {
	p := scrub.ExtractProfile(mustURL(t, "https://example.com/agents/ana-ruiz"), "example.com", "texto plano sin etiquetas")

	assert.Equal(t, "Ana Ruiz", p.Name)
	assert.Equal(t, "texto plano sin etiquetas", p.Text, "el parser envuelve el texto suelto en un body")
	assert.Empty(t, p.PhotoCandidates)
}

func TestNormalizeAgencyAddress(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Address: 123 Main Street Austin TX 78701", "123 Main Street, Austin, TX 78701"},
		{"Hours: Mon-Fri 9-5", ""},
		{"Visit 42 Oak Ln, Suite 3, Round Rock, TX 78664 Contact us", "42 Oak Ln, Suite 3, Round Rock, TX 78664"},
		{"Location 77 Elm Dr near the park", "77 Elm Dr"},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, scrub.NormalizeAgencyAddress(tc.in), tc.in)
	}
}

func TestPickHeadshot(t *testing.T) {
	assert.Equal(t, "https://x.com/staff/ana.jpg", scrub.PickHeadshot([]string{"https://x.com/a.jpg", "https://x.com/staff/ana.jpg"}))
	assert.Equal(t, "https://x.com/a.jpg", scrub.PickHeadshot([]string{"https://x.com/a.jpg"}))
	assert.Empty(t, scrub.PickHeadshot(nil))
}
