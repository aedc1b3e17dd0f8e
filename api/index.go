package handler

import (
	"net/http"
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

var r *gin.Engine

func init() {
	cfg := config.Load()

	// serverless file systems are read-only, so log to stdout only
	log := logger.New("", cfg.IsProduction())

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

	gin.SetMode(gin.ReleaseMode)
	r = gin.New()
	r.Use(ginzap.Ginzap(log, time.RFC3339, true))
	r.Use(ginzap.RecoveryWithZap(log, true))
	handlers.RegisterRoutes(r, h)
}

// Handler is the entry point for Vercel Go Runtime
func Handler(w http.ResponseWriter, req *http.Request) {
	r.ServeHTTP(w, req)
}
