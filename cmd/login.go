package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/flicknote/flick/cmd/config"
	"github.com/flicknote/flick/pkg/repository/remote"
)

func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	pw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(pw), nil
}

// NewLoginCmd signs in against the note server and caches the token.
func NewLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login <email>",
		Short: "Sign in to the note server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			email := strings.TrimSpace(args[0])
			password, err := readPassword("Password: ")
			if err != nil {
				return err
			}

			token, err := remote.Login(context.Background(), viper.GetString("server_url"), email, password)
			if err != nil {
				return fmt.Errorf("login: %w", err)
			}
			if err := config.SaveToken(token); err != nil {
				return fmt.Errorf("save token: %w", err)
			}

			fmt.Println("Signed in.")
			return nil
		},
	}
}

// NewRegisterCmd creates an account on the note server.
func NewRegisterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register <email>",
		Short: "Create an account on the note server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			email := strings.TrimSpace(args[0])
			password, err := readPassword("Password: ")
			if err != nil {
				return err
			}

			token, err := remote.Register(context.Background(), viper.GetString("server_url"), email, password)
			if err != nil {
				return fmt.Errorf("register: %w", err)
			}
			if err := config.SaveToken(token); err != nil {
				return fmt.Errorf("save token: %w", err)
			}

			fmt.Println("Account created and signed in.")
			return nil
		},
	}
}

// NewLogoutCmd drops the cached session token.
func NewLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out of the note server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.ClearToken(); err != nil {
				return fmt.Errorf("clear token: %w", err)
			}
			fmt.Println("Signed out.")
			return nil
		},
	}
}
