package partners

import (
	"strings"

	"github.com/jhoicas/inspectos-api/internal/domain"
	"github.com/jhoicas/inspectos-api/internal/domain/entity"
)

// partnerStatus vacío = active; cualquier otro valor debe ser active o inactive.
func partnerStatus(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", entity.PartnerStatusActive:
		return entity.PartnerStatusActive, nil
	case entity.PartnerStatusInactive:
		return entity.PartnerStatusInactive, nil
	default:
		return "", domain.ErrInvalidInput
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func upper(s *string) *string {
	if s == nil {
		return nil
	}
	u := strings.ToUpper(*s)
	return &u
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
