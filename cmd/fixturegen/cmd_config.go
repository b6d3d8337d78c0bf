package main

import (
	"github.com/spf13/cobra"
)

func (r *rootEnv) configCmd() *cobra.Command {
	var save string
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if save != "" {
				return r.cfg.SaveTo(save)
			}
			return r.cfg.Encode(cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&save, "save", "", "Write the config to this file instead of stdout")
	return cmd
}
