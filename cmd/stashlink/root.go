package main

import (
	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/stashlink/internal/app"
	"github.com/MrSnakeDoc/stashlink/internal/version"
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "stashlink",
		Short:         "Resolve stored Stash-Box identifiers into website links",
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		// Without a subcommand the HTTP service starts, as in the container image.
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.New().Run()
		},
	}

	root.AddCommand(newServeCommand(), newResolveCommand())
	return root
}

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP service (configured through STASHLINK_* environment variables)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.New().Run()
		},
	}
}
