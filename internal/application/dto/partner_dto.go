package dto

// AgencyFormValues formulario de alta/edición de agencia.
// Los campos de texto vacíos se guardan como NULL.
type AgencyFormValues struct {
	ID            string `json:"id,omitempty"`
	Name          string `json:"name"`
	Status        string `json:"status,omitempty"`
	LogoURL       string `json:"logo_url"`
	LicenseNumber string `json:"license_number"`
	Phone         string `json:"phone"`
	Website       string `json:"website"`
	AddressLine1  string `json:"address_line1"`
	AddressLine2  string `json:"address_line2"`
	City          string `json:"city"`
	State         string `json:"state"`
	ZipCode       string `json:"zip_code"`
	Notes         string `json:"notes"`
}

// AgentFormValues formulario de alta/edición de agente. La dirección de la
// agencia se edita por partes y se persiste como una sola línea.
type AgentFormValues struct {
	ID                 string `json:"id,omitempty"`
	AgencyID           string `json:"agency_id"`
	Name               string `json:"name"`
	Status             string `json:"status,omitempty"`
	Email              string `json:"email"`
	Phone              string `json:"phone"`
	LicenseNumber      string `json:"license_number"`
	Role               string `json:"role"`
	PhotoURL           string `json:"photo_url"`
	AgencyName         string `json:"agency_name"`
	AgencyWebsite      string `json:"agency_website"`
	AgencyAddressLine1 string `json:"agency_address_line1"`
	AgencyAddressLine2 string `json:"agency_address_line2"`
	AgencyCity         string `json:"agency_city"`
	AgencyState        string `json:"agency_state"`
	AgencyZipCode      string `json:"agency_zip_code"`
}

// ScrubRequest entrada de POST /api/agents/scrub y /api/agencies/:id/scrub.
// exclude_photos descarta fotos ya rechazadas por el usuario.
type ScrubRequest struct {
	URL           string   `json:"url"`
	ExcludePhotos []string `json:"exclude_photos"`
}

// ScrubResult perfil público obtenido de la web de un agente o agencia.
// Todos los campos son opcionales; se fusionan sobre el formulario sin pisar
// valores ya cargados.
type ScrubResult struct {
	URL             string   `json:"url"`
	Domain          string   `json:"domain"`
	Name            string   `json:"name,omitempty"`
	Role            string   `json:"role,omitempty"`
	Email           string   `json:"email,omitempty"`
	Phone           string   `json:"phone,omitempty"`
	LicenseNumbers  []string `json:"license_numbers"`
	PhotoURL        string   `json:"photo_url,omitempty"`
	PhotoCandidates []string `json:"photo_candidates"`
	LogoURL         string   `json:"logo_url,omitempty"`
	AgencyName      string   `json:"agency_name,omitempty"`
	AgencyAddress   string   `json:"agency_address,omitempty"`
}

// ParseAddressRequest entrada de POST /api/tools/parse-address.
type ParseAddressRequest struct {
	Address string `json:"address"`
}

// ParsedAddressDTO dirección separada en partes; las ausentes son null.
type ParsedAddressDTO struct {
	AddressLine1 string  `json:"address_line1"`
	AddressLine2 *string `json:"address_line2"`
	City         *string `json:"city"`
	State        *string `json:"state"`
	ZipCode      *string `json:"zip_code"`
}
