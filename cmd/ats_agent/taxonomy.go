package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/taxonomy"
)

var taxonomyCmd = &cobra.Command{
	Use:   "taxonomy",
	Short: "Show the skills taxonomy in use",
	RunE:  runTaxonomy,
}

var (
	taxonomyCategory string
	taxonomyJSON     bool
)

func init() {
	taxonomyCmd.Flags().StringVar(&taxonomyCategory, "category", "", "Only show this category")
	taxonomyCmd.Flags().BoolVar(&taxonomyJSON, "json", false, "Print as JSON")

	rootCmd.AddCommand(taxonomyCmd)
}

func runTaxonomy(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	categories := a.tax.Categories()
	if taxonomyCategory != "" {
		var selected []taxonomy.Category
		for _, c := range categories {
			if c.Name == taxonomyCategory {
				selected = append(selected, c)
			}
		}
		if len(selected) == 0 {
			return fmt.Errorf("unknown category: %s", taxonomyCategory)
		}
		categories = selected
	}

	if taxonomyJSON {
		return printJSON(cmd, categories)
	}

	out := cmd.OutOrStdout()
	for _, c := range categories {
		_, _ = fmt.Fprintf(out, "%s (%d)\n", c.Name, len(c.Skills))
		for _, s := range c.Skills {
			line := "  " + s.Name
			if len(s.Aliases) > 0 {
				line += "  [" + strings.Join(s.Aliases, ", ") + "]"
			}
			_, _ = fmt.Fprintln(out, line)
		}
	}
	return nil
}
