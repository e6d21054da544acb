package cmd

import (
	"database/sql"
	"fmt"
	"os"

	configsqlite "codetrack-backend/lib/configutil/sqlite"
	"codetrack-backend/lib/telemetry"
	"codetrack-backend/services/statistics"
	statisticsdb "codetrack-backend/services/statistics/db"

	"github.com/spf13/cobra"
)

var databaseFile string

var rootCmd = &cobra.Command{
	Use:   "codetrack-cli",
	Short: "codetrack-cli operates on the coding-profile statistics store.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&databaseFile, "db", "codetrack.db",
		"path to the statistics sqlite database",
	)
}

func openService() (*statistics.Service, *sql.DB, error) {
	db, err := configsqlite.Struct{File: databaseFile}.OpenDB(statisticsdb.Schema)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	registry, err := statistics.DefaultRegistry(statistics.ScraperClients{})
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("build registry: %w", err)
	}
	return statistics.NewService(db, registry, statistics.Options{}), db, nil
}

func Execute() {
	telemetry.InitSlog(false)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
