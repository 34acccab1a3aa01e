package main

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"vooud_backend/internal/database"
	"vooud_backend/internal/router"
	"vooud_backend/pkg/utils"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, relying on environment")
	}

	utils.InitLogger()

	db, err := database.InitDB(database.ConfigFromEnv())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()
	log.Info().Msg("Database connection established")

	if utils.Getenv("GIN_MODE", "") == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(utils.GinLogger())
	engine.Use(cors.New(corsConfig()))

	router.Setup(engine, db)

	port := utils.Getenv("PORT", "8080")
	log.Info().Str("port", port).Msg("Starting server")
	if err := engine.Run(":" + port); err != nil {
		log.Fatal().Err(err).Msg("Server stopped")
	}
}

func corsConfig() cors.Config {
	cfg := cors.DefaultConfig()
	origins := utils.Getenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	cfg.AllowOrigins = strings.Split(origins, ",")
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization")
	cfg.AllowCredentials = true
	cfg.MaxAge = 12 * time.Hour
	return cfg
}
