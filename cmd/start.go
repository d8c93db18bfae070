package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"variation-manager/core/config"
	"variation-manager/core/database"
	"variation-manager/core/loader"
	"variation-manager/core/logger"
	"variation-manager/core/middleware/auth"
	"variation-manager/core/middleware/rayid"
	"variation-manager/core/storage"

	"variation-manager/feature/variation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "variation-manager/docs/swagger"
)

// @title Variation Manager API
// @version 1.0
// @description API for editing product variation matrices.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the variation manager server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		ctx := context.Background()

		// 3. Connect to Database (Optional, enables drafts)
		var repo variation.Repository
		if db, err := database.Connect(cfg.Database); err != nil {
			logg.Warn("Optional database connection failed, drafts disabled", zap.Error(err))
		} else {
			gormRepo := variation.NewRepository(db)
			if err := gormRepo.Prepare(ctx); err != nil {
				logg.Fatal("Failed to prepare drafts table", zap.Error(err))
			}
			repo = gormRepo
			logg.Info("Connected to draft database", zap.String("driver", cfg.Database.Driver))
		}

		// 4. Initialize Storage (Optional, enables image upload)
		var images storage.Client
		if client, err := storage.NewClient(cfg.Storage); err != nil {
			logg.Warn("Failed to create storage client, image upload disabled", zap.Error(err))
		} else if err := storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region); err != nil {
			logg.Warn("Storage bucket unavailable, image upload disabled", zap.Error(err))
		} else {
			images = client
		}

		// 5. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			BodyLimit:             cfg.Server.BodyLimit(),
			UnescapePath:          true,
		})

		// 6. Initialize Feature Loader
		mgr := loader.NewManager()
		feature := variation.NewFeature(cfg.Variation, repo, images, cfg.Storage, logg)
		mgr.Register(feature)

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Logging Middleware (Zap + RayID)
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// 3. Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		// 4. Auth (Protect API)
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey, Skip: []string{"/swagger"}}))

		// 7. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 8. Sweep idle sessions
		sweepDone := make(chan struct{})
		go func() {
			ticker := time.NewTicker(time.Minute)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					feature.Service().Sweep()
				case <-sweepDone:
					return
				}
			}
		}()

		// 9. Start Server
		go func() {
			logg.Info("Starting server", zap.String("address", cfg.Server.Address()))
			if err := app.Listen(cfg.Server.Address()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 10. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		close(sweepDone)
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
