package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/oliveira-navegacao/erp-fluvial/docs"
	"github.com/oliveira-navegacao/erp-fluvial/internal/adapter/api/controller"
	"github.com/oliveira-navegacao/erp-fluvial/internal/adapter/api/route"
	"github.com/oliveira-navegacao/erp-fluvial/internal/adapter/repository"
	"github.com/oliveira-navegacao/erp-fluvial/internal/config"
	"github.com/oliveira-navegacao/erp-fluvial/internal/infrastructure/database"
	"github.com/oliveira-navegacao/erp-fluvial/internal/report"
	"github.com/oliveira-navegacao/erp-fluvial/internal/report/export"
	"github.com/oliveira-navegacao/erp-fluvial/pkg/auth"
	"github.com/oliveira-navegacao/erp-fluvial/pkg/daterange"
	"github.com/oliveira-navegacao/erp-fluvial/pkg/logger"
	"github.com/oliveira-navegacao/erp-fluvial/pkg/vessel"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const version = "1.0.0"

// App representa a aplicação e suas dependências
type App struct {
	cfg    *config.Config
	log    *logger.ZeroLogger
	db     *database.PostgresDB
	router *gin.Engine
}

// NewApp carrega a configuração, conecta ao banco e monta o router
func NewApp(ctx context.Context, envFile string) (*App, error) {
	cfg, warnings := config.Load(envFile)
	if cfg == nil {
		return nil, errors.Join(warnings...)
	}

	log := logger.NewLogger(logger.Options{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})
	for _, w := range warnings {
		log.Warn("Aviso de configuração", "error", w)
	}

	db, err := database.NewPostgresDB(ctx, cfg.Database, log)
	if err != nil {
		return nil, err
	}

	jwtService, err := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		db.Close()
		return nil, err
	}

	dates := daterange.NewBuilder(daterange.Config{UTCOffsetHours: cfg.Business.UTCOffsetHours})

	// Criar repositórios
	userRepo := repository.NewUserRepository(db)
	sequences := repository.NewSequenceRepository()
	freightRepo := repository.NewFreightRepository(db, sequences)
	ticketRepo := repository.NewTicketRepository(db, sequences)

	reports := report.NewService(freightRepo, ticketRepo, dates, log)
	geometry := export.Geometry{Width: export.Letter().Width, Height: cfg.Export.PageHeight, Margin: cfg.Export.PageMargin}
	exporter := export.NewExporter(reports, geometry, cfg.Export.Timeout, log, export.NewPDFRenderer(), export.NewExcelRenderer())

	// Criar controllers
	controllers := route.Controllers{
		Auth:    controller.NewAuthController(userRepo, jwtService, log),
		User:    controller.NewUserController(userRepo, log),
		Freight: controller.NewFreightController(freightRepo, dates, log),
		Ticket:  controller.NewTicketController(ticketRepo, dates, log),
		Report:  controller.NewReportController(reports, exporter, log),
	}

	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(logger.GinMiddleware(log.Zerolog()), gin.Recovery(), corsMiddleware(cfg.Server.CORSOrigins))

	docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", cfg.Server.Port)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", controller.NewHealthController(db, version).Check)

	route.SetupRoutes(router.Group("/api/v1"), controllers, jwtService)

	return &App{cfg: cfg, log: log, db: db, router: router}, nil
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", vessel.Header, logger.RequestIDHeader},
		ExposeHeaders: []string{"Content-Disposition", logger.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cors.New(cfg)
		}
	}
	cfg.AllowOrigins = origins
	return cors.New(cfg)
}

// Start sobe o servidor e aguarda SIGINT ou SIGTERM para encerrar com as requisições em andamento concluídas
func (a *App) Start() error {
	server := &http.Server{
		Addr:              a.cfg.Server.Address(),
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		a.log.Info("Servidor iniciado", "addr", server.Addr, "version", version)
		serverErrors <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("erro no servidor: %w", err)
	case sig := <-shutdown:
		a.log.Info("Encerrando servidor", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			a.log.Error("Falha no encerramento gracioso", "error", err)
			return server.Close()
		}
		return nil
	}
}

// Close libera os recursos da aplicação
func (a *App) Close() {
	if a.db != nil {
		a.db.Close()
	}
}
