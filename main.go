package main

import (
	"Mafia/config"
	pgconfig "Mafia/config/postgres"
	_ "Mafia/config/swagger"
	"Mafia/controllers"
	"Mafia/middleware"
	"Mafia/routes"
	"Mafia/services/identity"
	"Mafia/services/records"
	"Mafia/services/redis"
	"Mafia/services/rooms"
	"Mafia/services/scheduler"
	"Mafia/services/socket_io"
	socketio_types "Mafia/services/socket_io/types"
	syncmanager "Mafia/services/sync"
	"Mafia/utils/logger"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

// @title Mafia API
// @version 1.0
// @description Gin-Gonic server for the "Mafia" party game. The game itself is played over socket.io.
// @BasePath /
// @paths
func main() {
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Error reading configuration: %v", err)
	}
	logger.SetLevel(cfg.LogLevel)
	if cfg.Debug {
		logger.SetLevel("debug")
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	logger.Info("Setting up server...")

	// Redis keeps the statistics, the game works without it
	var stats syncmanager.StatsStore
	var statsReader controllers.StatsReader
	var redisClient *redis.RedisClient
	if cfg.RedisURL != "" {
		redisClient, err = config.Connect_redis(cfg.RedisURL)
		if err != nil {
			logger.Warningf("[STATS] Statistics disabled: %v", err)
		} else {
			stats = redisClient
			statsReader = redisClient
		}
	}

	// PostgreSQL keeps finished games, also optional
	var gormDB *gorm.DB
	if cfg.Postgres.Enabled() {
		gormDB, err = pgconfig.ConnectGORM(cfg.Postgres)
		if err != nil {
			logger.Warningf("[ARCHIVE] Game archive disabled: %v", err)
			gormDB = nil
		} else if cfg.Postgres.Migrate {
			// Only migrate in development or during deployment
			logger.Info("Migrating PostgreSQL database...")
			if err := pgconfig.MigrateDatabase(gormDB); err != nil {
				// Continue execution even if migration fails
				logger.Warningf("Database migration failed: %v", err)
			}
		}
	}
	archive := records.NewArchive(gormDB)
	var archiveSink syncmanager.GameArchive
	if gormDB != nil {
		archiveSink = archive
	}

	syncManager := syncmanager.NewSyncManager(stats, archiveSink, cfg.SyncQueue)

	server := socketio_types.NewSocketServer(socketio_types.Settings{
		DefaultOptions: cfg.GameOptions,
		NewRoomTimeout: cfg.NewRoomTimeout,
		Debug:          cfg.Debug,
	}, identity.New())
	registry := rooms.NewRegistry(cfg.RoomsConfig(), scheduler.New(),
		rooms.WithBroadcaster(server),
		rooms.WithObserver(syncManager))
	server.Registry = registry

	r := gin.New()
	r.Use(gin.Recovery())

	middleware.SetUpMiddleware(r, cfg.Key)

	routes.SetupRoutes(r,
		&controllers.RoomController{
			Registry:       registry,
			Identity:       server.Identity,
			Options:        cfg.GameOptions,
			NewRoomTimeout: cfg.NewRoomTimeout,
		},
		&controllers.StatsController{Registry: registry, Stats: statsReader},
		&controllers.GamesController{Archive: archive},
	)

	sio := (*socket_io.MySocketServer)(server)
	sio.Start(r, func() {
		// Rooms are gone by now, flush what they reported
		syncManager.Close()
		if redisClient != nil {
			if err := redis.CloseRedis(redisClient); err != nil {
				logger.Warningf("[STATS] %v", err)
			}
		}
		if gormDB != nil {
			if err := pgconfig.CloseGORM(gormDB); err != nil {
				logger.Warningf("[ARCHIVE] %v", err)
			}
		}
	})

	logger.Infof("Server starting on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatalf("Error starting server: %v", err)
	}
}
