package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/spec-kit/village-portal/internal/domain"
	"github.com/spec-kit/village-portal/internal/persistence"
	"github.com/spec-kit/village-portal/internal/seed"
	"github.com/spec-kit/village-portal/internal/store"
)

// SnapshotSummary counts the records in each collection.
type SnapshotSummary struct {
	Users           int `json:"users"`
	Staff           int `json:"staff"`
	Bids            int `json:"bids"`
	BidSubmissions  int `json:"bidSubmissions"`
	ServiceRequests int `json:"serviceRequests"`
	Announcements   int `json:"announcements"`
}

func summarize(s domain.Snapshot) SnapshotSummary {
	return SnapshotSummary{
		Users:           len(s.Users),
		Staff:           len(s.Staff),
		Bids:            len(s.Bids),
		BidSubmissions:  len(s.BidSubmissions),
		ServiceRequests: len(s.ServiceRequests),
		Announcements:   len(s.Announcements),
	}
}

func (s SnapshotSummary) writeText(w io.Writer) error {
	_, err := fmt.Fprintf(w, "users: %d\nstaff: %d\nbids: %d\nbid submissions: %d\nservice requests: %d\nannouncements: %d\n",
		s.Users, s.Staff, s.Bids, s.BidSubmissions, s.ServiceRequests, s.Announcements)
	return err
}

func newSnapshotCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Read or reset the stored portal data",
	}
	cmd.AddCommand(newSnapshotShowCommand(opts))
	cmd.AddCommand(newSnapshotResetCommand(opts))
	return cmd
}

func newSnapshotShowCommand(opts *RootOptions) *cobra.Command {
	var full bool
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the stored snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSlots(cmd, opts, func(ctx context.Context, slots *persistence.Slots) error {
				snap, err := loadSnapshot(ctx, slots)
				if err != nil {
					return err
				}
				summary := summarize(snap)
				if full {
					return render(cmd.OutOrStdout(), opts.Format, snap, summary.writeText)
				}
				return render(cmd.OutOrStdout(), opts.Format, summary, summary.writeText)
			})
		},
	}
	cmd.Flags().BoolVar(&full, "full", false, "print every record instead of counts")
	return cmd
}

func newSnapshotResetCommand(opts *RootOptions) *cobra.Command {
	var empty bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Discard stored data and the saved session, then reseed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSlots(cmd, opts, func(ctx context.Context, slots *persistence.Slots) error {
				if err := slots.Session.Clear(ctx); err != nil {
					return fmt.Errorf("clear session slot: %w", err)
				}
				if err := slots.Data.Clear(ctx); err != nil {
					return fmt.Errorf("clear data slot: %w", err)
				}
				fallback := seed.Provider(time.Now)
				if empty {
					fallback = domain.Empty
				}
				st := store.Open(ctx, slots.Data, fallback, store.Options{})
				summary := summarize(st.Snapshot())
				return render(cmd.OutOrStdout(), opts.Format, summary, summary.writeText)
			})
		},
	}
	cmd.Flags().BoolVar(&empty, "empty", false, "start from empty collections instead of the demonstration data")
	return cmd
}

func loadSnapshot(ctx context.Context, slots *persistence.Slots) (domain.Snapshot, error) {
	blob, err := slots.Data.Load(ctx)
	if errors.Is(err, persistence.ErrSlotEmpty) {
		return domain.Snapshot{}, errors.New("data slot is empty; start the portal or run 'snapshot reset'")
	}
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("read data slot: %w", err)
	}
	return store.Decode(blob)
}
