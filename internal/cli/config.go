package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/nhle/sortbase/internal/model"
)

func newConfigCmd(a *App) *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Long: "Print the configuration after defaults, the config file, SORTBASE_* " +
			"environment variables and flags are applied. With --write it is saved " +
			"to the config file.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if write {
				if err := model.SaveConfig(a.ConfigPath, a.cfg); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", a.ConfigPath)
				return nil
			}
			out, err := yaml.Marshal(a.cfg)
			if err != nil {
				return fmt.Errorf("encoding config: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	cmd.Flags().BoolVar(&write, "write", false, "Save the effective configuration to --config")
	return cmd
}
