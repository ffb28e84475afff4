package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/flicknote/flick/cmd"
	"github.com/flicknote/flick/cmd/config"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "flick",
		Short: "A single-user note-taking client",
		Long: `flick keeps one note in front of you at a time. Type, and your
edits persist on their own after a short pause; page back through
your history with the keyboard or a mouse drag.

Notes live in a local database by default, or on a flick server
when storage is set to remote.`,
		SilenceUsage: true,
		RunE: func(c *cobra.Command, args []string) error {
			return cmd.RunEditor()
		},
	}

	config.RegisterFlags(rootCmd)
	cobra.OnInitialize(config.InitConfig)

	rootCmd.AddCommand(cmd.NewEditCmd())
	rootCmd.AddCommand(cmd.NewListCmd())
	rootCmd.AddCommand(cmd.NewExportCmd())
	rootCmd.AddCommand(cmd.NewLoginCmd())
	rootCmd.AddCommand(cmd.NewRegisterCmd())
	rootCmd.AddCommand(cmd.NewLogoutCmd())
	rootCmd.AddCommand(cmd.NewAccountCmd())
	rootCmd.AddCommand(cmd.NewServeCmd())
	rootCmd.AddCommand(cmd.NewVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
