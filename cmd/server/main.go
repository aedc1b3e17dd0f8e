package main

import (
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/arnavshah/planning-view-go/internal/config"
	"github.com/arnavshah/planning-view-go/internal/logger"
	"github.com/arnavshah/planning-view-go/pkg/auth"
	"github.com/arnavshah/planning-view-go/pkg/client"
	"github.com/arnavshah/planning-view-go/pkg/database"
	"github.com/arnavshah/planning-view-go/pkg/handlers"
)

func main() {
	cfg := config.Load()

	log := logger.New(cfg.App.LogFilePath, cfg.IsProduction())
	defer func() { _ = log.Sync() }()

	if cfg.App.GinMode == "" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(cfg.App.GinMode)
	}

	if cfg.Auth.JWTSecret == "" || cfg.Auth.MasterSecret == "" {
		log.Warn("JWT_SECRET or API_MASTER_SECRET is empty, tokens and keys are not secure")
	}

	db := database.InitDB(cfg.Database)
	if err := auth.EnsureAdminExists(db, cfg.Auth); err != nil {
		log.Error("could not ensure admin user", zap.Error(err))
	}

	h := &handlers.Handler{
		DB:       db,
		Auth:     auth.New(cfg.Auth),
		Planning: client.FromConfig(cfg.Planning),
		Logger:   log,
		Language: language.Make(cfg.App.CollationLanguage),
	}

	r := gin.New()
	r.Use(ginzap.Ginzap(log, time.RFC3339, true))
	r.Use(ginzap.RecoveryWithZap(log, true))
	handlers.RegisterRoutes(r, h)

	log.Info("server starting",
		zap.String("port", cfg.App.Port),
		zap.String("planning_api", cfg.Planning.BaseURL),
	)
	if err := r.Run(":" + cfg.App.Port); err != nil {
		log.Fatal("could not run server", zap.Error(err))
	}
}
