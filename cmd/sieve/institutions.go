package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/ledger-sieve/internal/cli"
)

func institutionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "institutions",
		Short: "List configured institutions",
		RunE: func(_ *cobra.Command, _ []string) error {
			registry, err := loadRegistry()
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatTitle("Configured institutions"))
			for _, name := range registry.Institutions() {
				rule, _ := registry.Rule(name)
				if rule.Regexp() == nil {
					fmt.Printf("  %s %s\n", cli.FormatWarning(name), cli.SubtleStyle.Render("(no pattern, inert)"))
					continue
				}
				fmt.Printf("  %s %s\n", cli.FormatSuccess(name), cli.SubtleStyle.Render("date layout "+rule.DateLayout))
			}
			return nil
		},
	}
}
