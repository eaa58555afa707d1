package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/marginote/annotator-api/internal/database"
	"github.com/marginote/annotator-api/internal/models"
	annotationService "github.com/marginote/annotator-api/internal/services/annotations"
	exportService "github.com/marginote/annotator-api/internal/services/export"
	mediaService "github.com/marginote/annotator-api/internal/services/media"
	"github.com/marginote/annotator-api/pkg/config"
	"github.com/spf13/cobra"
)

var (
	exportFormat string
	exportOutput string
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export <media-file>",
	Short: "Export a media file's annotations",
	Long: `Export the annotations recorded for a media file as WebVTT, SRT or JSON.

The media file is resolved to its stable ID by name, size and mtime, so
the file must exist at the given path. Output goes to stdout unless
--output names a file.

Example:
  annotator-api export ./episode.mp3 --format vtt
  annotator-api export ./episode.mp3 --format srt --output episode.srt`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportFormat, "format", "", "export format: vtt, srt or json (defaults to config)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (defaults to stdout)")
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	formatName := exportFormat
	if formatName == "" {
		formatName = cfg.Export.DefaultFormat
	}
	format, err := exportService.ParseFormat(strings.ToLower(formatName))
	if err != nil {
		return err
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
	list, err := service.ListByMedia(ctx, m.MediaID, annotationService.ListFilter{})
	if err != nil {
		return err
	}

	data, err := exportService.Export(format, list, exportService.Options{
		PointCueDurationMs: int64(cfg.Export.PointCueDurationMs),
		RequireAnnotations: format != exportService.FormatJSON,
	})
	if err != nil {
		return err
	}

	if exportOutput == "" {
		_, err = os.Stdout.Write(data)
		return err
	}

	out := exportOutput
	if cfg.Export.OutputDir != "" && !filepath.IsAbs(out) {
		if err := os.MkdirAll(cfg.Export.OutputDir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		out = filepath.Join(cfg.Export.OutputDir, out)
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}

	fmt.Printf("Exported %d annotations to %s\n", len(list), out)
	return nil
}
