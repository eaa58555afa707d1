package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/marginote/annotator-api/api"
	"github.com/marginote/annotator-api/api/types"
	"github.com/marginote/annotator-api/internal/database"
	"github.com/marginote/annotator-api/internal/logging"
	"github.com/marginote/annotator-api/internal/models"
	annotationService "github.com/marginote/annotator-api/internal/services/annotations"
	mediaService "github.com/marginote/annotator-api/internal/services/media"
	"github.com/marginote/annotator-api/pkg/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	serverHost string
	serverPort int
	serveMedia string
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the annotation API server",
	Long: `Start the Annotator API server with the configured settings.

The server exposes annotation CRUD, playback-time queries, subtitle
export and local media serving over HTTP.

Example:
  annotator-api serve
  annotator-api serve --port 9090
  annotator-api serve --host 0.0.0.0 --port 8080`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serverHost, "host", "", "server host (overrides config)")
	serveCmd.Flags().IntVar(&serverPort, "port", 0, "server port (overrides config)")
	serveCmd.Flags().StringVar(&serveMedia, "media", "", "media file to resolve and register at startup")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logLevel, _ := cmd.Flags().GetString("log-level")
	if logLevel == "" {
		logLevel = cfg.Logging.Level
	}
	jsonLogs, _ := cmd.Flags().GetBool("json-logs")
	log, err := logging.NewLogger(logLevel, jsonLogs || cfg.Logging.JSON)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	if serverHost == "" {
		serverHost = cfg.Server.Host
	}
	if serverPort == 0 {
		serverPort = cfg.Server.Port
	}

	db, err := database.Initialize(cfg.Database.Path, database.Options{
		EnableWAL:  cfg.Database.EnableWAL,
		LogQueries: cfg.Database.LogQueries,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize annotation store: %w", err)
	}
	defer func() { _ = db.Close() }()

	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to migrate annotation store: %w", err)
	}

	annotationRepo := annotationService.NewRepository(db.DB)
	deps := &types.Dependencies{
		DB:                db,
		Log:               log,
		AnnotationService: annotationService.NewService(annotationRepo),
		MediaService:      mediaService.NewService(mediaService.NewRepository(db.DB)),
		Export:            cfg.Export,
	}

	if serveMedia != "" {
		m, err := deps.MediaService.Resolve(cmd.Context(), serveMedia)
		if err != nil {
			return fmt.Errorf("failed to resolve media %q: %w", serveMedia, err)
		}
		log.Info("registered media",
			zap.String("media_id", m.MediaID),
			zap.String("path", m.Path))
	}

	server := api.NewServer(fmt.Sprintf("%s:%d", serverHost, serverPort))
	server.SetDependencies(deps)
	if err := server.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	log.Info("starting annotator API server",
		zap.String("host", serverHost),
		zap.Int("port", serverPort),
		zap.String("database", cfg.Database.Path))

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			serverErr <- fmt.Errorf("server error: %w", err)
		}
	}()

	select {
	case <-stop:
		log.Info("shutting down server")
	case err := <-serverErr:
		log.Error("server failed", zap.Error(err))
	}

	shutdownTimeout := cfg.Server.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
		return err
	}

	log.Info("server stopped")
	return nil
}
