/*
main.go - Application entry point

PURPOSE:
  CLI for the workcover case-management engine.

COMMANDS:
  serve    Start the HTTP server (graceful shutdown on SIGINT/SIGTERM)
  seed     Load demonstration cases into an empty database

ENVIRONMENT:
  WORKCOVER_PORT               HTTP port (default: 8080)
  WORKCOVER_DATABASE_PATH      SQLite path (default: workcover.db,
                               ":memory:" for in-memory)
  WORKCOVER_READ_TIMEOUT_SEC   Read timeout (default: 10)
  WORKCOVER_WRITE_TIMEOUT_SEC  Write timeout (default: 15)
  WORKCOVER_LOG_JSON           JSON log output (default: false)

SEE ALSO:
  - api/server.go: Router configuration
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "workcover",
		Usage: "Workers' compensation case-management engine",
		Commands: []*cli.Command{
			serveCommand,
			seedCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		logrus.WithError(err).Fatal("application failed")
	}
}
