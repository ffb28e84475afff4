package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/flicknote/flick/cmd/config"
	"github.com/flicknote/flick/pkg/teardown"
)

// NewAccountCmd groups account-level operations.
func NewAccountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage your account",
	}
	cmd.AddCommand(newAccountDeleteCmd())
	return cmd
}

func newAccountDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete your account and every note",
		Long: `Delete all of your notes, then your account record.

Deletion is one-way. If it fails partway, nothing is restored;
re-running continues deleting whatever remains.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				fmt.Print("Delete your account and all notes? This cannot be undone. [y/N] ")
				line, err := bufio.NewReader(os.Stdin).ReadString('\n')
				if err != nil {
					return err
				}
				if !strings.EqualFold(strings.TrimSpace(line), "y") {
					fmt.Println("Cancelled.")
					return nil
				}
			}

			log := config.NewLogger()
			sess, err := config.InitSession()
			if err != nil {
				return err
			}
			defer sess.Close()

			saga := teardown.New(sess.Repo, sess.Identity, sess.UserID, log)
			saga.Observe(func(p *teardown.Progress) {
				if p != nil {
					fmt.Printf("[%3d%%] %s\n", p.Percent, p.Status)
				}
			})

			if err := saga.Run(context.Background()); err != nil {
				return err
			}

			_ = config.ClearToken()
			fmt.Println("Your account and notes have been deleted.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Skip the confirmation prompt")

	return cmd
}
