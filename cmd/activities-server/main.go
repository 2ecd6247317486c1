// cmd/activities-server/main.go
package main

import (
	"os"

	"github.com/spf13/cobra"

	"mergington-activities/internal/common/config"
	"mergington-activities/internal/models"
	"mergington-activities/pkg/registry"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:          "activities-server",
	Short:        "Mergington High School extracurricular activity sign-up service",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: configs/config.yaml)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFromFile(configPath)
	}
	return config.Load()
}

// loadCatalog returns the embedded catalog unless a file is configured.
func loadCatalog(cfg config.CatalogConfig) (models.Catalog, error) {
	if cfg.Path == "" {
		return registry.Default()
	}
	return registry.LoadCatalog(cfg.Path)
}
