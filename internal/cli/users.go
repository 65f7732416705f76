package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/spec-kit/village-portal/internal/domain"
	"github.com/spec-kit/village-portal/internal/persistence"
	"github.com/spec-kit/village-portal/internal/service"
	"github.com/spec-kit/village-portal/internal/store"
)

func newUsersCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "List accounts and manage resident approval",
	}
	cmd.AddCommand(newUsersListCommand(opts))
	cmd.AddCommand(newUsersApproveCommand(opts, true))
	cmd.AddCommand(newUsersApproveCommand(opts, false))
	cmd.AddCommand(newUsersImportCommand(opts))
	return cmd
}

func newUsersListCommand(opts *RootOptions) *cobra.Command {
	var pending bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List user accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSlots(cmd, opts, func(ctx context.Context, slots *persistence.Slots) error {
				snap, err := loadSnapshot(ctx, slots)
				if err != nil {
					return err
				}
				users := make([]domain.User, 0, len(snap.Users))
				for _, u := range snap.Users {
					if pending && (u.Role != domain.RoleResident || u.Approved) {
						continue
					}
					u.Password = ""
					users = append(users, u)
				}
				return render(cmd.OutOrStdout(), opts.Format, users, func(w io.Writer) error {
					return writeUsers(w, users)
				})
			})
		},
	}
	cmd.Flags().BoolVar(&pending, "pending", false, "only residents awaiting approval")
	return cmd
}

func newUsersApproveCommand(opts *RootOptions, approved bool) *cobra.Command {
	use, short := "approve <user-id>", "Approve a resident account"
	if !approved {
		use, short = "revoke <user-id>", "Withdraw a resident's approval"
	}
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSlots(cmd, opts, func(ctx context.Context, slots *persistence.Slots) error {
				if _, err := loadSnapshot(ctx, slots); err != nil {
					return err
				}
				st := store.Open(ctx, slots.Data, nil, store.Options{})
				residents := service.NewResidentService(service.Dependencies{Store: st})
				user, err := residents.SetApproval(ctx, args[0], approved)
				if err != nil {
					return err
				}
				stored, err := loadSnapshot(ctx, slots)
				if err != nil {
					return err
				}
				if saved, ok := stored.FindUser(user.ID); !ok || saved.Approved != approved {
					return fmt.Errorf("approval for %s was not written to the data slot", user.ID)
				}
				return render(cmd.OutOrStdout(), opts.Format, user, func(w io.Writer) error {
					return writeUsers(w, []domain.User{user})
				})
			})
		},
	}
}

// newUsersImportCommand replaces the stored user collection with the JSON
// array read from a file, or from stdin when the argument is "-".
func newUsersImportCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file|->",
		Short: "Replace every user account with the ones in a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := readUsers(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			return withSlots(cmd, opts, func(ctx context.Context, slots *persistence.Slots) error {
				if _, err := loadSnapshot(ctx, slots); err != nil {
					return err
				}
				st := store.Open(ctx, slots.Data, nil, store.Options{})
				res, err := st.Dispatch(ctx, store.ReplaceUsers{Users: users})
				if err != nil {
					return err
				}
				out := make([]domain.User, 0, len(res.Snapshot.Users))
				for _, u := range res.Snapshot.Users {
					u.Password = ""
					out = append(out, u)
				}
				return render(cmd.OutOrStdout(), opts.Format, out, func(w io.Writer) error {
					return writeUsers(w, out)
				})
			})
		},
	}
}

func readUsers(stdin io.Reader, path string) ([]domain.User, error) {
	var (
		raw []byte
		err error
	)
	if path == "-" {
		raw, err = io.ReadAll(stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read users: %w", err)
	}
	var users []domain.User
	if err := json.Unmarshal(raw, &users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	ids := make(map[string]bool, len(users))
	emails := make(map[string]bool, len(users))
	for i, u := range users {
		if strings.TrimSpace(u.ID) == "" {
			return nil, fmt.Errorf("user %d has no id", i)
		}
		if ids[u.ID] {
			return nil, fmt.Errorf("duplicate user id %q", u.ID)
		}
		ids[u.ID] = true
		email := strings.ToLower(strings.TrimSpace(u.Email))
		if email == "" {
			return nil, fmt.Errorf("user %s has no email", u.ID)
		}
		if emails[email] {
			return nil, fmt.Errorf("duplicate email %q", u.Email)
		}
		emails[email] = true
		if u.Role != domain.RoleAdmin && u.Role != domain.RoleResident {
			return nil, fmt.Errorf("user %s has unknown role %q", u.ID, u.Role)
		}
	}
	return users, nil
}

func writeUsers(w io.Writer, users []domain.User) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tROLE\tAPPROVED")
	for _, u := range users {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%t\n", u.ID, u.FullName, u.Email, u.Role, u.Approved)
	}
	return tw.Flush()
}
