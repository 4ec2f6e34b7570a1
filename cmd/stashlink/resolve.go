package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/stashlink/internal/domain"
	"github.com/MrSnakeDoc/stashlink/internal/linker"
	"github.com/MrSnakeDoc/stashlink/internal/settings"
)

var errNoLink = errors.New("no link for this identifier")

func newResolveCommand() *cobra.Command {
	var settingsFile string
	var kind string
	var explain bool

	cmd := &cobra.Command{
		Use:   "resolve PROVIDER IDENTIFIER",
		Short: "Resolve one stored identifier offline and print its URL",
		Example: `  stashlink resolve stashdb 'https://stashdb.org/graphql|abc-123'
  stashlink resolve --kind person --settings ./settings.yaml fansdb 'FansDB;xyz'`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := loadSnapshot(settingsFile)
			if err != nil {
				return err
			}

			entityKind, err := domain.ParseEntityKind(kind)
			if err != nil {
				return err
			}

			return runResolve(cmd.OutOrStdout(), linker.New(snap), args[0], entityKind, args[1], explain)
		},
	}

	cmd.Flags().StringVar(&settingsFile, "settings", os.Getenv("STASHLINK_SETTINGS_FILE"), "settings file (defaults apply when empty)")
	cmd.Flags().StringVar(&kind, "kind", string(domain.KindMovie), "entity kind of the record")
	cmd.Flags().BoolVar(&explain, "explain", false, "print the detected identifier format and capability checks")
	return cmd
}

// loadSnapshot reads the settings file. The defaults apply when path is empty
// or the file does not exist.
func loadSnapshot(path string) (*settings.Snapshot, error) {
	if path == "" {
		return settings.Defaults(time.Now()), nil
	}
	snap, err := settings.NewLoader(path).Load()
	if errors.Is(err, os.ErrNotExist) {
		return settings.Defaults(time.Now()), nil
	}
	return snap, err
}

func runResolve(out io.Writer, l *linker.Linker, providerKey string, kind domain.EntityKind, raw string, explain bool) error {
	link, ok := l.Link(providerKey)
	if !ok {
		return fmt.Errorf("unknown provider %q", providerKey)
	}

	record := domain.MediaRecord{Kind: kind, ProviderIDs: map[string]string{link.CapabilityKey(): raw}}

	if explain {
		parsed := domain.ParseIdentifier(raw)
		fmt.Fprintf(out, "identifier: %s\n", parsed)
		fmt.Fprintf(out, "enabled:    %t\n", link.Enabled())
		fmt.Fprintf(out, "kind:       %s (allowed: %t)\n", kind, link.Provider().Allows(kind))
		fmt.Fprintf(out, "website:    %s\n", link.WebsiteBase())
	}

	u, ok := link.ResolveURL(record).Get()
	if !ok {
		return errNoLink
	}
	fmt.Fprintln(out, u)
	return nil
}
