package ports

import "github.com/jhoicas/inspectos-api/internal/application/dto"

// OverviewReportRenderer genera el informe del panel en PDF.
type OverviewReportRenderer interface {
	RenderOverview(tenantName string, overview *dto.OverviewDTO) ([]byte, error)
}
