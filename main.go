package main

import (
	"github.com/minepair/gameserver/config"
	"github.com/minepair/gameserver/logger"
	"github.com/minepair/gameserver/persistence"
	"github.com/minepair/gameserver/server"
)

func main() {
	// Initialize logger
	logger.Init()

	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		logger.Log.Fatalf("Failed to load configuration: %v", err)
	}

	// Match archive is optional; rooms are memory-resident either way.
	var db persistence.Database
	if cfg.Database.Enabled {
		gormDB, err := persistence.NewGormPostgreSQL(
			cfg.Database.Postgres.Host,
			cfg.Database.Postgres.Port,
			cfg.Database.Postgres.User,
			cfg.Database.Postgres.Password,
			cfg.Database.Postgres.DBName,
		)
		if err != nil {
			logger.Log.Fatalf("Failed to connect to database: %v", err)
		}
		logger.Log.Info("Database connection successful.")
		db = gormDB
	} else {
		logger.Log.Info("Match archive disabled.")
	}

	// Initialize Game Server
	gameServer := server.NewGameServer(
		cfg.Server.HTTPAddress,
		cfg.Server.RPCAddress,
		cfg.Server.MetricsAddress,
		db,
	)

	// Start Server
	logger.Log.Infof("Starting game server on %s", cfg.Server.HTTPAddress)
	if err := gameServer.Start(); err != nil {
		logger.Log.Fatalf("Failed to start server: %v", err)
	}
}
