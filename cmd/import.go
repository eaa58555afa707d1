package cmd

import (
	"fmt"
	"os"

	"github.com/marginote/annotator-api/internal/database"
	"github.com/marginote/annotator-api/internal/models"
	annotationService "github.com/marginote/annotator-api/internal/services/annotations"
	exportService "github.com/marginote/annotator-api/internal/services/export"
	mediaService "github.com/marginote/annotator-api/internal/services/media"
	"github.com/marginote/annotator-api/pkg/config"
	"github.com/spf13/cobra"
)

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import <media-file> <json-file>",
	Short: "Import annotations from a JSON export",
	Long: `Import annotations from a previously exported JSON document into the
annotation set of a media file.

Example:
  annotator-api import ./episode.mp3 ./episode-annotations.json`,
	Args: cobra.ExactArgs(2),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	data, err := os.ReadFile(args[1])
	if err != nil {
		return fmt.Errorf("failed to read import file: %w", err)
	}

	db, err := database.Initialize(cfg.Database.Path, database.Options{EnableWAL: cfg.Database.EnableWAL})
	if err != nil {
		return fmt.Errorf("failed to open annotation store: %w", err)
	}
	defer func() { _ = db.Close() }()

	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to migrate annotation store: %w", err)
	}

	ctx := cmd.Context()
	media := mediaService.NewService(mediaService.NewRepository(db.DB))
	m, err := media.Resolve(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to resolve media %q: %w", args[0], err)
	}

	service := annotationService.NewService(annotationService.NewRepository(db.DB))
	imported, err := exportService.Import(ctx, service, m.MediaID, data)
	if err != nil {
		return fmt.Errorf("import failed after %d annotations: %w", len(imported), err)
	}

	fmt.Printf("Imported %d annotations for %s\n", len(imported), m.Filename)
	return nil
}
