// cmd/activities-server/catalog.go
package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"mergington-activities/internal/directory"
	"mergington-activities/internal/models"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Validate the configured activity catalog and print it",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("config load failed: %w", err)
		}

		catalog, err := loadCatalog(cfg.Catalog)
		if err != nil {
			return err
		}
		dir, err := directory.New(catalog)
		if err != nil {
			return err
		}

		renderCatalog(cmd.OutOrStdout(), dir.List())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
}

func renderCatalog(w io.Writer, catalog models.Catalog) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Activity", "Schedule", "Enrolled", "Capacity", "Spots Left"})
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	for _, e := range catalog {
		table.Append([]string{
			e.Name,
			e.Activity.Schedule,
			strconv.Itoa(len(e.Activity.Participants)),
			strconv.Itoa(e.Activity.MaxParticipants),
			strconv.Itoa(e.Activity.SpotsLeft()),
		})
	}
	table.Render()
}
