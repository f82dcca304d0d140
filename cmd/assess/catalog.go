package main

import (
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"finhealth/internal/catalog"
)

func newCatalogCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Print the assessment categories and questions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := catalog.Default()
			out := cmd.OutOrStdout()

			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(c.Categories())
			}

			for _, cat := range c.Categories() {
				fmt.Fprintf(out, "%s  %s\n", cat.ID, cat.Title)
				for _, q := range cat.Questions {
					fmt.Fprintf(out, "  %-3s %s\n", q.ID, q.Text)
				}
			}
			fmt.Fprintf(out, "\n%d questions\n", c.Len())
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print as JSON")
	return cmd
}
