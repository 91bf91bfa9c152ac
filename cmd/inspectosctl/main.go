// inspectosctl herramientas de operación de InspectOS:
//
//	inspectosctl overview --orders orders.json [--now 2025-01-15T10:00:00Z] [--format table]
//	inspectosctl parse-address "123 Main St, Austin, TX 78701"
//	inspectosctl normalize-website "KW.com/"
//	inspectosctl migrate up|down
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

var version = "dev"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "inspectosctl",
		Usage:   "Herramientas de operación de InspectOS",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Usage:   "Nivel de log (debug, info, warn, error)",
				EnvVars: []string{"LOG_LEVEL"},
			},
		},
		Commands: []*cli.Command{
			overviewCommand(),
			parseAddressCommand(),
			normalizeWebsiteCommand(),
			migrateCommand(),
		},
	}
}
