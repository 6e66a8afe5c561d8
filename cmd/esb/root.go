package main

import (
	"context"
	"fmt"
	"maps"
	"strings"

	"github.com/spf13/cobra"

	"esbBot/internal/infrastructure/config"
	"esbBot/internal/infrastructure/tiamp"
	"esbBot/internal/usecase/directory"
	"esbBot/internal/usecase/esbconfig"
)

type rootOptions struct {
	sets []string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "esb <p|project|imputation|e|employee|salarie|salarié> <id>",
		Short: "Look up a project or an employee in the TIAMP directory",
		Long: `Look up a project (imputation) or an employee (salarié) in the TIAMP
directory and print the record the way the chat bot answers it.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := opts.manager(cmd.Context())
			if err != nil {
				return err
			}

			text, err := directory.NewService(manager, tiamp.NewClient()).Lookup(cmd.Context(), args)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}

	cmd.PersistentFlags().StringArrayVar(&opts.sets, "set", nil, "override a configuration key (KEY=value), repeatable")

	cmd.AddCommand(&cobra.Command{
		Use:   "config",
		Short: "Print the active configuration, secret masked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			manager, err := opts.manager(cmd.Context())
			if err != nil {
				return err
			}
			cfg := manager.Redacted()
			for _, key := range esbconfig.KnownKeys() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", key, cfg.Get(key))
			}
			return nil
		},
	})

	return cmd
}

// manager layers the --set flags over the ESB_* environment. Nothing is
// persisted from the command line.
func (o *rootOptions) manager(ctx context.Context) (*esbconfig.Manager, error) {
	c, err := config.Load()
	if err != nil {
		return nil, err
	}

	overrides := maps.Clone(c.EsbOverrides)
	if overrides == nil {
		overrides = map[string]string{}
	}
	for _, set := range o.sets {
		key, value, found := strings.Cut(set, "=")
		key = strings.TrimSpace(key)
		if !found || key == "" {
			return nil, fmt.Errorf("--set %q: want KEY=value", set)
		}
		overrides[key] = value
	}

	return esbconfig.NewManager(ctx, nil, overrides)
}
