// Package cli implements portalctl, the operator tool for the portal's
// durable slots.
package cli

import (
	"context"
	"fmt"
	"slices"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spec-kit/village-portal/internal/config"
	"github.com/spec-kit/village-portal/internal/persistence"
)

// SlotOpener connects to the slots a command works on.
type SlotOpener func(ctx context.Context) (*persistence.Slots, error)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Format string
	Open   SlotOpener
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json", "yaml"}

// NewRootCommand creates the portalctl root command. A nil opener reads the
// environment configuration and opens the configured backend.
func NewRootCommand(open SlotOpener) *cobra.Command {
	if open == nil {
		open = openFromEnv
	}
	opts := &RootOptions{Open: open}

	cmd := &cobra.Command{
		Use:           "portalctl",
		Short:         "Inspect and maintain the village portal's stored data",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json|yaml)")

	cmd.AddCommand(newSnapshotCommand(opts))
	cmd.AddCommand(newUsersCommand(opts))
	return cmd
}

func openFromEnv(ctx context.Context) (*persistence.Slots, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return persistence.Open(ctx, cfg, zap.NewNop())
}

func withSlots(cmd *cobra.Command, opts *RootOptions, fn func(ctx context.Context, slots *persistence.Slots) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	slots, err := opts.Open(ctx)
	if err != nil {
		return fmt.Errorf("open slots: %w", err)
	}
	defer slots.Close() //nolint:errcheck
	return fn(ctx, slots)
}
