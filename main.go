package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"Chessio/config"
	pgconfig "Chessio/config/postgres"
	"Chessio/middleware"
	"Chessio/routes"
	"Chessio/services/game"
	"Chessio/services/socket_io"
	socketio_types "Chessio/services/socket_io/types"
	"Chessio/services/store"
	"Chessio/sync"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// @title Chessio API
// @version 1.0
// @description Gin-Gonic server for the Chessio session coordinator
// @BasePath /
func main() {
	godotenv.Load()
	log.Println("Setting up server...")

	if os.Getenv("PROD") == "true" {
		gin.SetMode(gin.ReleaseMode)
	}

	gormDB, err := pgconfig.ConnectGORM()
	if err != nil {
		log.Fatalf("Error connecting to PostgreSQL: %v", err)
	}
	log.Println("GORM Connected")

	// Only migrate in development or during deployment
	if os.Getenv("MIGRATE_POSTGRES") == "true" {
		log.Println("Migrating PostgreSQL database...")
		if err := pgconfig.MigrateDatabase(gormDB); err != nil {
			log.Printf("Warning: Database migration failed: %v", err)
			// Continue execution even if migration fails
		} else {
			log.Println("Database migrated successfully")
		}
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		log.Fatalf("Error reading GORM PostgreSQL instance: %v", err)
	}
	defer sqlDB.Close()

	// Session store: Redis when configured, in-memory otherwise.
	var sessionStore game.SessionStore
	if os.Getenv("REDIS_URL") != "" {
		redisClient, err := config.ConnectRedis()
		if err != nil {
			log.Fatalf("Error connecting to Redis: %v", err)
		}
		sessionStore = redisClient
	} else {
		log.Println("REDIS_URL not set, using in-memory session store")
		sessionStore = store.NewMemoryStore()
	}

	r := gin.Default()

	middleware.SetUpMiddleware(r)

	routes.SetupRoutes(r, gormDB)

	sio := socketio_types.NewSocketServer()
	coord := game.NewCoordinator(sessionStore, sio, sync.NewSyncManager(gormDB))
	(*socket_io.MySocketServer)(sio).Start(r, coord)

	SignalC := make(chan os.Signal, 1)
	signal.Notify(SignalC, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		for s := range SignalC {
			switch s {
			case syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT:
				(*socket_io.MySocketServer)(sio).Close()
				os.Exit(0)
			}
		}
	}()

	// Configure port
	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Error starting server: %v", err)
	}
}
