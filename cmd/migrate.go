package cmd

import (
	"fmt"

	"github.com/marginote/annotator-api/internal/database"
	"github.com/marginote/annotator-api/internal/models"
	"github.com/marginote/annotator-api/pkg/config"
	"github.com/spf13/cobra"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply annotation store schema migrations",
	Long: `Create or update the annotation store schema.

The serve command migrates automatically on startup; this command exists
for provisioning a database ahead of time or after upgrading.`,
	RunE: runMigrate,
}

// migrateStatusCmd reports which tables exist
var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show annotation store schema status",
	RunE:  runMigrateStatus,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateStatusCmd)
}

func openStore() (*database.DB, error) {
	cfg, err := config.GetConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	db, err := database.Initialize(cfg.Database.Path, database.Options{EnableWAL: cfg.Database.EnableWAL})
	if err != nil {
		return nil, fmt.Errorf("failed to open annotation store: %w", err)
	}
	return db, nil
}

func runMigrate(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	fmt.Println("Annotation store schema is up to date")
	return nil
}

func runMigrateStatus(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	for _, model := range models.All() {
		name := fmt.Sprintf("%T", model)
		if db.DB.Migrator().HasTable(model) {
			fmt.Printf("%-30s present\n", name)
		} else {
			fmt.Printf("%-30s missing\n", name)
		}
	}
	return nil
}
