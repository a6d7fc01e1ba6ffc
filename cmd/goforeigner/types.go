package main

import (
	"goforeigner/internal/typemap"

	"github.com/spf13/cobra"
)

func newTypesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "Show the native to JNI type table in effect",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			seed := typemap.Seed()
			var rows [][]string
			for _, entry := range cfg.Registry().Entries() {
				origin := "config"
				if seed[entry.Native] == entry.Bridge {
					origin = "builtin"
				}
				rows = append(rows, []string{entry.Native, entry.Bridge, origin})
			}
			newUI(cmd).Table([]string{"Native", "Bridge", "Origin"}, rows)
			return nil
		},
	}
}
