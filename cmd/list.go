package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/flicknote/flick/cmd/config"
)

// NewListCmd prints the note list without opening the editor.
func NewListCmd() *cobra.Command {
	var listJSON bool

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List your notes",
		Aliases: []string{"ls"},
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := config.InitSession()
			if err != nil {
				return err
			}
			defer sess.Close()

			notes, err := sess.Repo.List(context.Background(), sess.UserID)
			if err != nil {
				return fmt.Errorf("list notes: %w", err)
			}

			if listJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(notes)
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tUPDATED\tTITLE")
			for _, n := range notes {
				fmt.Fprintf(w, "%s\t%s\t%s\n", n.ID, n.DateLabel(), n.Title())
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&listJSON, "json", false, "Output notes as JSON")

	return cmd
}
