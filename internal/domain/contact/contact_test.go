package contact_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inspectos-api/internal/domain/contact"
)

func str(s string) *string { return &s }

// ──────────────────────────────────────────────────────────────────────────────
// Campos simples
// ──────────────────────────────────────────────────────────────────────────────

func TestNormalize(t *testing.T) {
	assert.Nil(t, contact.Normalize(""))
	assert.Nil(t, contact.Normalize("   \t"))

	got := contact.Normalize("  Acme Realty ")
	require.NotNil(t, got)
	assert.Equal(t, "Acme Realty", *got)

	again := contact.Normalize(*got)
	require.NotNil(t, again)
	assert.Equal(t, *got, *again, "normalizar dos veces no cambia el valor")
}

func TestNormalizeWebsite(t *testing.T) {
	cases := []struct {
		in   string
		want *string
	}{
		{"HTTP://Example.com/", str("https://example.com")},
		{"example.com", str("https://example.com")},
		{"https://www.Acme.com/Team/Jane//", str("https://www.acme.com/Team/Jane")},
		{"  http://acme.com  ", str("https://acme.com")},
		{"", nil},
		{"https://", nil},
		{"///", nil},
	}
	for _, tc := range cases {
		got := contact.NormalizeWebsite(tc.in)
		if tc.want == nil {
			assert.Nil(t, got, "entrada %q", tc.in)
			continue
		}
		require.NotNil(t, got, "entrada %q", tc.in)
		assert.Equal(t, *tc.want, *got, "entrada %q", tc.in)

		again := contact.NormalizeWebsite(*got)
		require.NotNil(t, again)
		assert.Equal(t, *got, *again, "debe ser idempotente")
	}
}

func TestWebsiteFromDomain(t *testing.T) {
	assert.Equal(t, "https://acme.com", contact.WebsiteFromDomain("acme.com"))
	assert.Equal(t, "", contact.WebsiteFromDomain(" "))
}

func TestMergeField(t *testing.T) {
	assert.Equal(t, "nuevo", contact.MergeField(str("  nuevo "), "actual"))
	assert.Equal(t, "actual", contact.MergeField(str("   "), "actual"), "un vacío no pisa el valor actual")
	assert.Equal(t, "actual", contact.MergeField(nil, "actual"))
	assert.Equal(t, "", contact.MergeField(nil, ""))
}

func TestResolveLogoForSubmit(t *testing.T) {
	var asked string
	lookup := func(domain string) *string {
		asked = domain
		return str("https://img.logo.dev/" + domain)
	}

	got := contact.ResolveLogoForSubmit(" https://cdn/logo.png ", "acme.com", lookup)
	require.NotNil(t, got)
	assert.Equal(t, "https://cdn/logo.png", *got)
	assert.Empty(t, asked, "con logo explícito no se consulta el servicio")

	got = contact.ResolveLogoForSubmit("", "acme.com", lookup)
	require.NotNil(t, got)
	assert.Equal(t, "https://img.logo.dev/acme.com", *got)

	assert.Nil(t, contact.ResolveLogoForSubmit("", "", lookup))
	assert.Nil(t, contact.ResolveLogoForSubmit("", "acme.com", nil))
}

func TestBuildAgencyAddress(t *testing.T) {
	full := contact.BuildAgencyAddress(contact.AgencyAddressFields{
		AddressLine1: "123 Main St",
		AddressLine2: "Suite 4",
		City:         "Austin",
		State:        "TX",
		ZipCode:      "78701",
	})
	require.NotNil(t, full)
	assert.Equal(t, "123 Main St, Suite 4, Austin, TX 78701", *full)

	partial := contact.BuildAgencyAddress(contact.AgencyAddressFields{City: " Austin ", ZipCode: "78701"})
	require.NotNil(t, partial)
	assert.Equal(t, "Austin 78701", *partial)

	onlyState := contact.BuildAgencyAddress(contact.AgencyAddressFields{AddressLine1: "9 Elm Ct", State: "TX"})
	require.NotNil(t, onlyState)
	assert.Equal(t, "9 Elm Ct, TX", *onlyState)

	assert.Nil(t, contact.BuildAgencyAddress(contact.AgencyAddressFields{AddressLine2: "  "}))
}

// ──────────────────────────────────────────────────────────────────────────────
// ParseScrubbedAddress
// ──────────────────────────────────────────────────────────────────────────────

type wantAddress struct {
	line1, line2, city, state, zip string
}

func assertAddress(t *testing.T, want wantAddress, got *contact.ParsedAddress) {
	t.Helper()
	require.NotNil(t, got)
	assert.Equal(t, want.line1, got.AddressLine1, "address_line1")
	assertOptional(t, want.line2, got.AddressLine2, "address_line2")
	assertOptional(t, want.city, got.City, "city")
	assertOptional(t, want.state, got.State, "state")
	assertOptional(t, want.zip, got.ZipCode, "zip_code")
}

func assertOptional(t *testing.T, want string, got *string, field string) {
	t.Helper()
	if want == "" {
		assert.Nil(t, got, "%s debe faltar", field)
		return
	}
	if assert.NotNil(t, got, "%s debe existir", field) {
		assert.Equal(t, want, *got, field)
	}
}

func TestParseScrubbedAddress_Vacia(t *testing.T) {
	assert.Nil(t, contact.ParseScrubbedAddress(""))
	assert.Nil(t, contact.ParseScrubbedAddress("  \n "))
	assert.Nil(t, contact.ParseScrubbedAddress(" , ,"))
}

func TestParseScrubbedAddress_Casos(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want wantAddress
	}{
		{
			name: "dirección completa",
			in:   "123 Main St, Austin, TX 78701",
			want: wantAddress{line1: "123 Main St", city: "Austin", state: "TX", zip: "78701"},
		},
		{
			name: "rótulo, suite y país",
			in:   "Hours: 123 Main St Suite 4, Austin, TX 78701, USA",
			want: wantAddress{line1: "123 Main St", line2: "Suite 4", city: "Austin", state: "TX", zip: "78701"},
		},
		{
			name: "preámbulo antes de la calle",
			in:   "Visit our team at 4500 Bee Cave Rd, Austin, TX 78746",
			want: wantAddress{line1: "4500 Bee Cave Rd", city: "Austin", state: "TX", zip: "78746"},
		},
		{
			name: "línea 2 con varios tokens",
			in:   "100 Congress Ave, Floor 2, Building B, Austin, tx 78701-1234",
			want: wantAddress{line1: "100 Congress Ave", line2: "Floor 2, Building B", city: "Austin", state: "TX", zip: "78701-1234"},
		},
		{
			name: "ciudad y estado en el mismo token",
			in:   "Office:  77 Ocean Blvd,\n Miami FL 33139, United States",
			want: wantAddress{line1: "77 Ocean Blvd", city: "Miami", state: "FL", zip: "33139"},
		},
		{
			name: "ciudad de dos palabras que empieza con dos letras",
			in:   "123 Main St, El Paso TX 79901",
			want: wantAddress{line1: "123 Main St", city: "El Paso", state: "TX", zip: "79901"},
		},
		{
			name: "ciudad con abreviatura y línea 2",
			in:   "1 Elm Ave, Suite 5, St Louis MO 63101",
			want: wantAddress{line1: "1 Elm Ave", line2: "Suite 5", city: "St Louis", state: "MO", zip: "63101"},
		},
		{
			name: "estado y zip en tokens separados",
			in:   "9 Elm Ct, Denver, 80202",
			want: wantAddress{line1: "9 Elm Ct", city: "Denver", zip: "80202"},
		},
		{
			name: "unidad con numeral y línea 2 existente",
			in:   "500 Pine Street #300, Rear Entrance, Seattle, WA 98101",
			want: wantAddress{line1: "500 Pine Street", line2: "#300, Rear Entrance", city: "Seattle", state: "WA", zip: "98101"},
		},
		{
			name: "sin comas recurre al patrón combinado",
			in:   "Austin TX 78701",
			want: wantAddress{line1: "Austin TX 78701", city: "Austin", state: "TX", zip: "78701"},
		},
		{
			name: "estado final sin zip se toma como país",
			in:   "123 Main St, Austin, TX",
			want: wantAddress{line1: "123 Main St", city: "Austin"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assertAddress(t, tc.want, contact.ParseScrubbedAddress(tc.in))
		})
	}
}

func TestParseScrubbedAddress_SoloLinea1(t *testing.T) {
	got := contact.ParseScrubbedAddress("PO Box 12")
	assertAddress(t, wantAddress{line1: "PO Box 12"}, got)
}
