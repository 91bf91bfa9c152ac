// Package scrub obtiene el perfil público de un agente o agencia a partir de
// la URL de su página web.
package scrub

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/jhoicas/inspectos-api/internal/application/dto"
	"github.com/jhoicas/inspectos-api/internal/application/ports"
	"github.com/jhoicas/inspectos-api/internal/domain"
	"github.com/jhoicas/inspectos-api/internal/domain/contact"
	"github.com/jhoicas/inspectos-api/internal/metrics"
	"github.com/jhoicas/inspectos-api/pkg/logger"
	"github.com/jhoicas/inspectos-api/pkg/logos"
)

const (
	scrubCache       = "scrub"
	extractorTimeout = 10 * time.Second
	maxExtractorText = 12000
)

// ScrubUseCase descarga la página, extrae datos con reglas fijas y, si hay un
// extractor LLM configurado, completa sólo los campos que faltan.
type ScrubUseCase struct {
	fetcher   ports.PageFetcher
	extractor ports.ProfileExtractor // nil = sin LLM
	provider  string
	cache     ports.Cache // nil = sin caché
	ttl       time.Duration
	logo      contact.LogoLookup
	log       *logger.Logger
}

// NewScrubUseCase construye el caso de uso.
func NewScrubUseCase(
	fetcher ports.PageFetcher,
	extractor ports.ProfileExtractor,
	provider string,
	cache ports.Cache,
	ttl time.Duration,
	logo contact.LogoLookup,
	log *logger.Logger,
) *ScrubUseCase {
	return &ScrubUseCase{
		fetcher:   fetcher,
		extractor: extractor,
		provider:  provider,
		cache:     cache,
		ttl:       ttl,
		logo:      logo,
		log:       log,
	}
}

// Scrub devuelve el perfil público de la URL pedida.
// Las fotos de ExcludePhotos se descartan después de leer la caché, así el
// usuario puede pedir "otra foto" sin volver a descargar la página.
func (uc *ScrubUseCase) Scrub(ctx context.Context, tenantID string, in dto.ScrubRequest) (*dto.ScrubResult, error) {
	pageURL, err := normalizeTarget(in.URL)
	if err != nil {
		return nil, err
	}
	key := cacheKey(pageURL.String())

	result := uc.fromCache(ctx, key)
	if result != nil {
		metrics.RecordScrub(metrics.ScrubCached)
	} else {
		result, err = uc.scrape(ctx, tenantID, pageURL)
		if err != nil {
			metrics.RecordScrub(metrics.ScrubError)
			return nil, err
		}
		metrics.RecordScrub(metrics.ScrubOK)
		uc.toCache(ctx, key, result)
	}

	return withExcludedPhotos(result, in.ExcludePhotos), nil
}

func (uc *ScrubUseCase) scrape(ctx context.Context, tenantID string, pageURL *url.URL) (*dto.ScrubResult, error) {
	started := time.Now()
	page, err := uc.fetcher.Fetch(ctx, pageURL.String())
	metrics.RecordScrubFetch(time.Since(started).Seconds())
	if err != nil {
		uc.log.Warn().Err(err).Str("tenant_id", tenantID).Str("url", pageURL.String()).Msg("no se pudo descargar el perfil")
		return nil, fmt.Errorf("%w: %v", domain.ErrScrubUnavailable, err)
	}

	domainName := logos.Domain(pageURL.Host)
	profile := ExtractProfile(pageURL, domainName, string(page.Body))

	uc.fillMissing(ctx, tenantID, pageURL.String(), &profile)

	out := &dto.ScrubResult{
		URL:             pageURL.String(),
		Domain:          domainName,
		Name:            profile.Name,
		Role:            profile.Role,
		Email:           profile.Email,
		Phone:           profile.Phone,
		LicenseNumbers:  profile.LicenseNumbers,
		PhotoCandidates: profile.PhotoCandidates,
		AgencyName:      profile.AgencyName,
		AgencyAddress:   profile.AgencyAddress,
	}
	if uc.logo != nil {
		if logo := uc.logo(domainName); logo != nil {
			out.LogoURL = *logo
		}
	}

	uc.log.Debug().
		Str("tenant_id", tenantID).
		Str("url", out.URL).
		Int("photos", len(out.PhotoCandidates)).
		Bool("email", out.Email != "").
		Msg("perfil obtenido")
	return out, nil
}

// fillMissing pide al LLM sólo los campos vacíos; un error no corta el scrub.
func (uc *ScrubUseCase) fillMissing(ctx context.Context, tenantID, pageURL string, p *Profile) {
	if uc.extractor == nil {
		return
	}
	missing := missingFields(p)
	if len(missing) == 0 || p.Text == "" {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, extractorTimeout)
	defer cancel()

	text := p.Text
	if len(text) > maxExtractorText {
		text = text[:maxExtractorText]
	}
	fields, err := uc.extractor.ExtractProfile(ctx, pageURL, text, missing)
	metrics.RecordProfileExtraction(uc.provider, err == nil)
	if err != nil {
		uc.log.Warn().Err(err).
			Str("tenant_id", tenantID).
			Str("provider", uc.provider).
			Strs("missing", missing).
			Msg("extractor LLM falló; se devuelve la extracción básica")
		return
	}
	if fields == nil {
		return
	}
	fill(&p.Name, fields.Name)
	fill(&p.Email, strings.ToLower(fields.Email))
	fill(&p.Phone, fields.Phone)
	fill(&p.Role, fields.Role)
	fill(&p.AgencyName, fields.AgencyName)
	if p.AgencyAddress == "" {
		p.AgencyAddress = NormalizeAgencyAddress(fields.AgencyAddress)
	}
}

func missingFields(p *Profile) []string {
	missing := make([]string, 0, 4)
	if p.Name == "" {
		missing = append(missing, "name")
	}
	if p.Email == "" {
		missing = append(missing, "email")
	}
	if p.Phone == "" {
		missing = append(missing, "phone")
	}
	if p.AgencyAddress == "" {
		missing = append(missing, "agency_address")
	}
	return missing
}

func fill(dst *string, v string) {
	if *dst == "" {
		*dst = strings.TrimSpace(v)
	}
}

// normalizeTarget "Kellerwilliams.com/agents/jane/" → https://kellerwilliams.com/agents/jane.
func normalizeTarget(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if scheme, _, found := strings.Cut(trimmed, "://"); found {
		s := strings.ToLower(scheme)
		if s != "http" && s != "https" {
			return nil, domain.ErrInvalidInput
		}
	}
	website := contact.NormalizeWebsite(trimmed)
	if website == nil {
		return nil, domain.ErrInvalidInput
	}
	u, err := url.Parse(*website)
	if err != nil || logos.Domain(u.Host) == "" {
		return nil, domain.ErrInvalidInput
	}
	return u, nil
}

// withExcludedPhotos copia el resultado sin las fotos excluidas y elige el retrato.
func withExcludedPhotos(cached *dto.ScrubResult, exclude []string) *dto.ScrubResult {
	out := *cached
	skip := make(map[string]bool, len(exclude))
	for _, e := range exclude {
		skip[strings.TrimSpace(e)] = true
	}
	photos := make([]string, 0, len(cached.PhotoCandidates))
	for _, p := range cached.PhotoCandidates {
		if !skip[p] {
			photos = append(photos, p)
		}
	}
	out.PhotoCandidates = photos
	out.PhotoURL = PickHeadshot(photos)
	if out.LicenseNumbers == nil {
		out.LicenseNumbers = []string{}
	}
	return &out
}

func cacheKey(pageURL string) string {
	return "scrub:" + pageURL
}

func (uc *ScrubUseCase) fromCache(ctx context.Context, key string) *dto.ScrubResult {
	if uc.cache == nil {
		return nil
	}
	raw, ok, err := uc.cache.Get(ctx, key)
	if err != nil {
		uc.log.Warn().Err(err).Str("key", key).Msg("caché de scrub no disponible")
		return nil
	}
	metrics.RecordCache(scrubCache, ok)
	if !ok {
		return nil
	}
	var out dto.ScrubResult
	if err := json.Unmarshal(raw, &out); err != nil {
		uc.log.Warn().Err(err).Str("key", key).Msg("entrada de caché inválida")
		return nil
	}
	return &out
}

func (uc *ScrubUseCase) toCache(ctx context.Context, key string, out *dto.ScrubResult) {
	if uc.cache == nil || uc.ttl <= 0 {
		return
	}
	raw, err := json.Marshal(out)
	if err != nil {
		return
	}
	if err := uc.cache.Set(ctx, key, raw, uc.ttl); err != nil {
		uc.log.Warn().Err(err).Str("key", key).Msg("no se pudo guardar el scrub en caché")
	}
}
