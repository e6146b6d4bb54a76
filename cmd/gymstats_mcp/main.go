// Package main runs the coachtracker MCP server over stdio (for local editor
// use). The same server is mounted by the backend at /mcp over HTTP.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/2beens/coachtracker/internal/config"
	"github.com/2beens/coachtracker/internal/db"
	"github.com/2beens/coachtracker/internal/gymstats/history"
	gymstatsmcp "github.com/2beens/coachtracker/internal/gymstats/mcp"
	"github.com/2beens/coachtracker/internal/gymstats/store"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	log "github.com/sirupsen/logrus"
)

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path to TOML config file")
	flag.Parse()

	// stdout carries the MCP protocol
	log.SetOutput(os.Stderr)

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %s", err)
	}

	ctx := context.Background()
	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         cfg.PostgresHost,
		DBPort:         cfg.PostgresPort,
		DBName:         cfg.PostgresDBName,
		DBPassword:     os.Getenv("COACHTRACKER_DB_PASS"),
		TracingEnabled: false,
	})
	if err != nil {
		log.Fatalf("db pool: %s", err)
	}
	defer dbPool.Close()

	sessionStore := store.NewCachedHistory(store.NewRepo(dbPool), cfg.HistoryCacheSizeMB, cfg.HistoryCacheTTL.Duration)
	service := gymstatsmcp.NewContextService(
		gymstatsmcp.NewPoolSchemaRepo(dbPool),
		history.NewService(sessionStore),
	)
	server := gymstatsmcp.NewServer(service)

	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		log.Fatal(err)
	}
}
