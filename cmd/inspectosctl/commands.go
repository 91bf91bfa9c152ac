package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"

	"github.com/jhoicas/inspectos-api/internal/application/analytics"
	"github.com/jhoicas/inspectos-api/internal/application/dto"
	"github.com/jhoicas/inspectos-api/internal/domain/contact"
	"github.com/jhoicas/inspectos-api/internal/domain/entity"
	"github.com/jhoicas/inspectos-api/internal/domain/margins"
	"github.com/jhoicas/inspectos-api/internal/infrastructure/migrations"
	"github.com/jhoicas/inspectos-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/inspectos-api/internal/interfaces/http"
	"github.com/jhoicas/inspectos-api/pkg/config"
	"github.com/jhoicas/inspectos-api/pkg/logger"
)

// ── overview ──────────────────────────────────────────────────────────────────

func overviewCommand() *cli.Command {
	return &cli.Command{
		Name:  "overview",
		Usage: "Calcula el panel de márgenes a partir de un JSON de pedidos",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "orders",
				Aliases:  []string{"o"},
				Usage:    "Archivo JSON con un arreglo de pedidos (- para stdin)",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "now",
				Usage: "Instante de referencia RFC 3339 (por defecto, ahora)",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   "json",
				Usage:   "Formato de salida (json, table)",
			},
		},
		Action: func(c *cli.Context) error {
			now := time.Now()
			if raw := c.String("now"); raw != "" {
				t, err := time.Parse(time.RFC3339, raw)
				if err != nil {
					return fmt.Errorf("--now: %w", err)
				}
				now = t
			}
			orders, err := readOrders(c.String("orders"), c.App.Reader)
			if err != nil {
				return err
			}
			return runOverview(c.App.Writer, orders, now, c.String("format"))
		},
	}
}

func readOrders(path string, stdin io.Reader) ([]entity.Order, error) {
	var r io.Reader = stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("abrir pedidos: %w", err)
		}
		defer f.Close()
		r = f
	}
	var orders []entity.Order
	if err := json.NewDecoder(r).Decode(&orders); err != nil {
		return nil, fmt.Errorf("leer pedidos: %w", err)
	}
	return orders, nil
}

func runOverview(w io.Writer, orders []entity.Order, now time.Time, format string) error {
	data := analytics.ToDecisionDTO(margins.ComputeDecisionData(orders, now))
	switch format {
	case "json":
		return writeJSON(w, data)
	case "table":
		return writeOverviewTable(w, data)
	default:
		return fmt.Errorf("formato desconocido %q (json, table)", format)
	}
}

func writeOverviewTable(w io.Writer, d dto.DecisionDataDTO) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "KPI\tVALOR\tDELTA")
	fmt.Fprintf(tw, "Margen\t%s\t%s\n", d.KPIs.Margin.StringFixed(2), deltaText(d.KPIs.MarginDelta))
	fmt.Fprintf(tw, "Tasa de margen %%\t%s\t%s\n", d.KPIs.MarginRate.StringFixed(2), deltaText(d.KPIs.MarginRateDelta))
	fmt.Fprintf(tw, "Costo promedio\t%s\t\n", d.KPIs.AvgCostPerInspection.StringFixed(2))
	fmt.Fprintf(tw, "Margen en riesgo\t%s\t%d pedidos\n", d.KPIs.AtRiskMargin.StringFixed(2), d.KPIs.AtRiskCount)
	fmt.Fprintf(tw, "Inspecciones\t%d\t\n", d.KPIs.InspectionCount)

	fmt.Fprintln(tw, "\nSEMANA\tPEDIDOS\tINGRESO\tMARGEN")
	for _, b := range d.TrendBuckets {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", b.Label, b.Orders, b.Revenue.StringFixed(2), b.Margin.StringFixed(2))
	}

	writeMetrics(tw, "REFERIDO", d.ReferralLeaderboard)
	writeMetrics(tw, "MEJORES SERVICIOS", d.TopServices)
	writeMetrics(tw, "PEORES SERVICIOS", d.BottomServices)

	if len(d.LowMarginOrders) > 0 {
		fmt.Fprintln(tw, "\nPEDIDO\tDIRECCIÓN\tMARGEN\t%")
		for _, o := range d.LowMarginOrders {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", o.OrderNumber, o.Address, o.Margin.StringFixed(2), o.MarginPct.StringFixed(2))
		}
	}
	return tw.Flush()
}

func writeMetrics(w io.Writer, title string, rows []dto.MetricDTO) {
	if len(rows) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s\tINSPECCIONES\tINGRESO\tMARGEN %%\n", title)
	for _, m := range rows {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", m.Name, m.Inspections, m.Revenue.StringFixed(2), m.MarginPct.StringFixed(2))
	}
}

func deltaText(d *decimal.Decimal) string {
	if d == nil {
		return "n/a"
	}
	s := d.StringFixed(2)
	if !d.IsNegative() {
		s = "+" + s
	}
	return s
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// ── parse-address / normalize-website ─────────────────────────────────────────

func parseAddressCommand() *cli.Command {
	return &cli.Command{
		Name:      "parse-address",
		Usage:     "Separa una dirección libre en sus partes",
		ArgsUsage: "\"<dirección>\"",
		Action: func(c *cli.Context) error {
			raw := strings.Join(c.Args().Slice(), " ")
			parsed := contact.ParseScrubbedAddress(raw)
			if parsed == nil {
				return errors.New("no se reconoce una dirección")
			}
			return writeJSON(c.App.Writer, httpRouter.ToParsedAddressDTO(parsed))
		},
	}
}

func normalizeWebsiteCommand() *cli.Command {
	return &cli.Command{
		Name:      "normalize-website",
		Usage:     "Normaliza una URL de sitio web (https, host en minúsculas)",
		ArgsUsage: "\"<url>\"",
		Action: func(c *cli.Context) error {
			website := contact.NormalizeWebsite(c.Args().First())
			if website == nil {
				return errors.New("URL vacía")
			}
			_, err := fmt.Fprintln(c.App.Writer, *website)
			return err
		},
	}
}

// ── migrate ───────────────────────────────────────────────────────────────────

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Aplica o revierte el esquema en la base configurada (DATABASE_URL / DB_*)",
		Subcommands: []*cli.Command{
			{
				Name:  "up",
				Usage: "Aplica las migraciones pendientes",
				Action: func(c *cli.Context) error {
					return withMigrator(c, func(m *migrations.Migrator) error { return m.Up() })
				},
			},
			{
				Name:  "down",
				Usage: "Revierte la última migración",
				Action: func(c *cli.Context) error {
					return withMigrator(c, func(m *migrations.Migrator) error { return m.Down() })
				},
			},
		},
	}
}

func withMigrator(c *cli.Context, fn func(*migrations.Migrator) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: c.String("log-level"),
		App:   "inspectosctl",
	})

	ctx, cancel := context.WithTimeout(c.Context, 2*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer pool.Close()

	return fn(migrations.NewMigrator(pool, log.Component("migrate").Zerolog()))
}
