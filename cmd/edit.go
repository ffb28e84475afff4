package cmd

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/flicknote/flick/cmd/config"
	"github.com/flicknote/flick/internal/tui/editor"
	"github.com/flicknote/flick/pkg/session"
	"github.com/flicknote/flick/pkg/teardown"
)

// NewEditCmd launches the interactive note editor. It is also the root
// command's default action.
func NewEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Open the note editor",
		Long: `Open the interactive editor on your most recent note.

Edits save automatically after a short pause in typing. Page through
your note history with ctrl+arrow keys or by dragging with the mouse.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunEditor()
		},
	}
}

// RunEditor bootstraps a session and runs the TUI until the user quits
// or tears the account down.
func RunEditor() error {
	log := config.NewLogger()

	sess, err := config.InitSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	store, err := session.Bootstrap(context.Background(), sess.Repo, sess.UserID, log)
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}

	writer := session.NewWriter(store, sess.Repo, sess.UserID, log)
	defer writer.Close()

	nav := session.NewNavigator(store)
	saga := teardown.New(sess.Repo, sess.Identity, sess.UserID, log)

	model := editor.New(store, writer, nav, saga, log)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("run editor: %w", err)
	}

	if m, ok := final.(editor.Model); ok && m.TornDown {
		// The account is gone; drop the cached credentials too.
		_ = config.ClearToken()
		fmt.Println("Your account and notes have been deleted.")
	}
	return nil
}
