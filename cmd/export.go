package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/flicknote/flick/cmd/config"
	"github.com/flicknote/flick/pkg/frontmatter"
)

// NewExportCmd writes every note to a directory as markdown with YAML
// frontmatter.
func NewExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <dir>",
		Short: "Export all notes as markdown files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("create export dir: %w", err)
			}

			sess, err := config.InitSession()
			if err != nil {
				return err
			}
			defer sess.Close()

			notes, err := sess.Repo.List(context.Background(), sess.UserID)
			if err != nil {
				return fmt.Errorf("list notes: %w", err)
			}

			for _, n := range notes {
				fm := &frontmatter.Frontmatter{
					ID:       n.ID,
					Created:  frontmatter.FormatTimestamp(n.CreatedAt),
					Modified: frontmatter.FormatTimestamp(n.UpdatedAt),
				}
				content, err := frontmatter.Build(fm, n.Content)
				if err != nil {
					return fmt.Errorf("render note %s: %w", n.ID, err)
				}

				name := fmt.Sprintf("%s-%s.md", n.CreatedAt.Format("20060102"), n.ID)
				if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
					return fmt.Errorf("write note %s: %w", n.ID, err)
				}
			}

			fmt.Printf("Exported %d note(s) to %s\n", len(notes), dir)
			return nil
		},
	}
}
