package main

import (
	"os"
	"os/signal"
	"syscall"

	"casetrack/internal/handler"
	"casetrack/internal/middleware"
	"casetrack/internal/model"
	"casetrack/internal/repository"
	"casetrack/internal/service"
	"casetrack/internal/ws"
	"casetrack/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

func main() {
	// 1. Logging + Env
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	if err := db.AutoMigrate(
		&model.Case{}, &model.Product{}, &model.LedgerEntry{},
		&model.HistoryRecord{}, &model.CaseCount{}, &model.User{},
	); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}

	// 3. Seed the virtual New Receipts staging case
	seedNewReceipts(db)

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	caseRepo := repository.NewCaseRepo(db)
	productRepo := repository.NewProductRepo(db)
	ledgerRepo := repository.NewLedgerRepo(db)
	historyRepo := repository.NewHistoryRepo(db)
	countRepo := repository.NewCountRepo(db)
	userRepo := repository.NewUserRepo(db)

	invService := service.NewInventoryService(caseRepo, productRepo, ledgerRepo, historyRepo, db, wsHub)
	caseService := service.NewCaseService(caseRepo, ledgerRepo, historyRepo, countRepo, db)
	historyService := service.NewHistoryService(historyRepo, caseRepo, db)
	countService := service.NewCountService(countRepo, caseRepo, ledgerRepo)
	reportService := service.NewReportService(caseRepo, historyRepo, countRepo)
	authService := service.NewAuthService(userRepo)
	userService := service.NewUserService(userRepo, historyRepo, db)

	invHandler := handler.NewInventoryHandler(invService)
	caseHandler := handler.NewCaseHandler(caseService)
	historyHandler := handler.NewHistoryHandler(historyService)
	countHandler := handler.NewCountHandler(countService)
	reportHandler := handler.NewReportHandler(reportService)
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Casetrack v1.0",
	})

	// Middleware
	app.Use(logger.New())         // Logging request
	app.Use(recover.New())        // Panic recovery
	app.Use(cors.New())           // CORS
	app.Use(middleware.Metrics()) // Prometheus counters

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// 7. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	api.Post("/setup", authHandler.Setup)
	api.Post("/auth/login", authHandler.Login)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(userRepo))

	// Case Routes
	protected.Get("/cases", caseHandler.List)
	protected.Post("/cases", middleware.RequireAction(model.ActionCaseCreateAuth), caseHandler.Create)
	protected.Get("/cases/:code", caseHandler.Get)
	protected.Put("/cases/:code", middleware.RequireAction(model.ActionCaseRenameAuth), caseHandler.Rename)
	protected.Delete("/cases/:code", middleware.RequireAction(model.ActionCaseArchiveAuth), caseHandler.Archive)
	protected.Get("/cases/:code/items", caseHandler.Items)

	// Inventory Routes
	protected.Post("/receive", invHandler.Receive)
	protected.Post("/move", invHandler.Move)
	protected.Post("/sell", invHandler.Sell)
	protected.Post("/missing", invHandler.MarkMissing)

	// History + Exports
	protected.Get("/history", historyHandler.List)
	protected.Get("/history/export", historyHandler.ExportCSV)
	protected.Get("/export/inventory", historyHandler.ExportInventoryCSV)
	protected.Get("/export/cases/:code", historyHandler.ExportCaseCSV)

	// Daily Counts
	protected.Get("/counts", countHandler.Status)
	protected.Post("/counts/:code", countHandler.Record)
	protected.Get("/counts/export", countHandler.ExportCSV)

	// Reports
	protected.Get("/reports/daily/:code", reportHandler.DailyActivity)
	protected.Get("/reports/daily-counts/:code", reportHandler.DailyCount)

	// User Management Routes
	protected.Get("/users", middleware.RequireAction(model.ActionUserViewAuth), userHandler.List)
	protected.Post("/users", middleware.RequireAction(model.ActionUserCreateAuth), userHandler.Create)
	protected.Post("/users/:id/disable", middleware.RequireAction(model.ActionUserDisableAuth), userHandler.Disable)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 8. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic().Err(err).Msg("server stopped")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	if err := app.Shutdown(); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited")
}

// seedNewReceipts makes sure the virtual staging case exists
func seedNewReceipts(db *gorm.DB) {
	var existing model.Case
	err := db.First(&existing, "code = ?", model.NewReceiptsCode).Error
	if err == nil {
		return
	}

	nr := &model.Case{
		Code:      model.NewReceiptsCode,
		Name:      model.NewReceiptsName,
		IsVirtual: true,
		IsActive:  true,
	}
	nr.CreatedBy = "system"
	nr.UpdatedBy = "system"
	if err := db.Create(nr).Error; err != nil {
		log.Warn().Err(err).Msg("failed to seed New Receipts case")
		return
	}
	log.Info().Msg("seeded New Receipts case")
}
