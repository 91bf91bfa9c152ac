// Package analytics contiene los casos de uso del panel de márgenes del dueño.
package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jhoicas/inspectos-api/internal/application/dto"
	"github.com/jhoicas/inspectos-api/internal/application/ports"
	"github.com/jhoicas/inspectos-api/internal/domain"
	"github.com/jhoicas/inspectos-api/internal/domain/entity"
	"github.com/jhoicas/inspectos-api/internal/domain/margins"
	"github.com/jhoicas/inspectos-api/internal/domain/repository"
	"github.com/jhoicas/inspectos-api/internal/metrics"
	"github.com/jhoicas/inspectos-api/pkg/logger"
)

// lookbackDays cubre las dos ventanas de 30 días y las 8 semanas de tendencia.
const lookbackDays = 60

const overviewCache = "overview"

// OverviewUseCase arma el panel de decisión de un tenant.
//
// Fuente de datos: OrderRepository y ClientRepository (consultas read-only).
// El cálculo es puro (margins.ComputeDecisionData); el resultado se guarda en
// caché por tenant durante ttl.
type OverviewUseCase struct {
	orderRepo  repository.OrderRepository
	clientRepo repository.ClientRepository
	tenantRepo repository.TenantRepository
	cache      ports.Cache // nil = sin caché
	ttl        time.Duration
	renderer   ports.OverviewReportRenderer
	log        *logger.Logger
	now        func() time.Time
}

// NewOverviewUseCase construye el caso de uso.
func NewOverviewUseCase(
	orderRepo repository.OrderRepository,
	clientRepo repository.ClientRepository,
	tenantRepo repository.TenantRepository,
	cache ports.Cache,
	ttl time.Duration,
	renderer ports.OverviewReportRenderer,
	log *logger.Logger,
) *OverviewUseCase {
	return &OverviewUseCase{
		orderRepo:  orderRepo,
		clientRepo: clientRepo,
		tenantRepo: tenantRepo,
		cache:      cache,
		ttl:        ttl,
		renderer:   renderer,
		log:        log,
		now:        time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *OverviewUseCase) WithClock(now func() time.Time) *OverviewUseCase {
	uc.now = now
	return uc
}

// GetOverview devuelve el panel del tenant.
//
// Dos llamadas en paralelo:
//  1. ListForOverview(now-60d) → métricas de decisión + agenda de hoy
//  2. CountActive               → clientes activos
func (uc *OverviewUseCase) GetOverview(ctx context.Context, tenantID string) (*dto.OverviewDTO, error) {
	if tenantID == "" {
		return nil, domain.ErrInvalidInput
	}
	key := cacheKey(tenantID)
	if cached := uc.fromCache(ctx, key); cached != nil {
		return cached, nil
	}

	now := uc.now()
	since := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -lookbackDays)

	type ordersResult struct {
		orders []entity.Order
		err    error
	}
	type clientsResult struct {
		count int
		err   error
	}

	ordersCh := make(chan ordersResult, 1)
	clientsCh := make(chan clientsResult, 1)

	go func() {
		orders, err := uc.orderRepo.ListForOverview(ctx, tenantID, since)
		ordersCh <- ordersResult{orders, err}
	}()
	go func() {
		count, err := uc.clientRepo.CountActive(ctx, tenantID)
		clientsCh <- clientsResult{count, err}
	}()

	orders := <-ordersCh
	clients := <-clientsCh

	if orders.err != nil {
		return nil, fmt.Errorf("overview: pedidos: %w", orders.err)
	}
	if clients.err != nil {
		return nil, fmt.Errorf("overview: clientes activos: %w", clients.err)
	}

	data := margins.ComputeDecisionData(orders.orders, now)
	metrics.RecordOverview(len(orders.orders))

	out := &dto.OverviewDTO{
		DecisionDataDTO: ToDecisionDTO(data),
		TodayOrders:     ToTodayOrderDTOs(margins.TodayOrders(orders.orders, now)),
		ActiveClients:   clients.count,
		GeneratedAt:     now,
	}
	uc.log.Debug().
		Str("tenant_id", tenantID).
		Int("orders", len(orders.orders)).
		Int("at_risk", data.KPIs.AtRiskCount).
		Msg("panel calculado")

	uc.toCache(ctx, key, out)
	return out, nil
}

// TodaySchedule pedidos agendados para hoy (fecha local del servidor).
func (uc *OverviewUseCase) TodaySchedule(ctx context.Context, tenantID string) ([]dto.TodayOrderDTO, error) {
	now := uc.now()
	orders, err := uc.orderRepo.ListScheduledOn(ctx, tenantID, now.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("agenda de hoy: %w", err)
	}
	return ToTodayOrderDTOs(margins.TodayOrders(orders, now)), nil
}

// RenderReport genera el PDF del panel. Devuelve bytes y nombre de archivo.
func (uc *OverviewUseCase) RenderReport(ctx context.Context, tenantID string) ([]byte, string, error) {
	overview, err := uc.GetOverview(ctx, tenantID)
	if err != nil {
		return nil, "", err
	}
	tenant, err := uc.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return nil, "", fmt.Errorf("informe: tenant: %w", err)
	}
	if tenant == nil {
		return nil, "", domain.ErrNotFound
	}
	pdf, err := uc.renderer.RenderOverview(tenant.Name, overview)
	if err != nil {
		return nil, "", fmt.Errorf("informe: generar PDF: %w", err)
	}
	filename := fmt.Sprintf("overview-%s.pdf", overview.GeneratedAt.Format("2006-01-02"))
	return pdf, filename, nil
}

// Invalidate descarta el panel en caché del tenant.
func (uc *OverviewUseCase) Invalidate(ctx context.Context, tenantID string) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Delete(ctx, cacheKey(tenantID)); err != nil {
		uc.log.Warn().Err(err).Str("tenant_id", tenantID).Msg("no se pudo invalidar la caché del panel")
	}
}

func cacheKey(tenantID string) string {
	return "overview:" + tenantID
}

// fromCache nil si no hay caché, no hay entrada o la entrada es ilegible.
func (uc *OverviewUseCase) fromCache(ctx context.Context, key string) *dto.OverviewDTO {
	if uc.cache == nil {
		return nil
	}
	raw, ok, err := uc.cache.Get(ctx, key)
	if err != nil {
		uc.log.Warn().Err(err).Str("key", key).Msg("caché del panel no disponible")
		return nil
	}
	metrics.RecordCache(overviewCache, ok)
	if !ok {
		return nil
	}
	var out dto.OverviewDTO
	if err := json.Unmarshal(raw, &out); err != nil {
		uc.log.Warn().Err(err).Str("key", key).Msg("entrada de caché inválida")
		return nil
	}
	return &out
}

func (uc *OverviewUseCase) toCache(ctx context.Context, key string, out *dto.OverviewDTO) {
	if uc.cache == nil || uc.ttl <= 0 {
		return
	}
	raw, err := json.Marshal(out)
	if err != nil {
		return
	}
	if err := uc.cache.Set(ctx, key, raw, uc.ttl); err != nil {
		uc.log.Warn().Err(err).Str("key", key).Msg("no se pudo guardar el panel en caché")
	}
}
