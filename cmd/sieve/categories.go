package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/ledger-sieve/internal/cli"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List configured categories and their keywords",
		RunE: func(cobraCmd *cobra.Command, _ []string) error {
			verbose, _ := cobraCmd.Flags().GetBool("verbose")

			categories, err := loadCategories()
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatTitle("Categories"))
			for _, name := range categories.Categories() {
				keywords := categories.Keywords(name)
				if verbose {
					fmt.Printf("  %s: %s\n", cli.TitleStyle.Render(name), strings.Join(keywords, ", "))
				} else {
					fmt.Printf("  %s %s\n", name, cli.SubtleStyle.Render(fmt.Sprintf("(%d keywords)", len(keywords))))
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolP("verbose", "v", false, "show the keyword lists")
	return cmd
}
