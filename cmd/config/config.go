package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/flicknote/flick/pkg/repository"
	"github.com/flicknote/flick/pkg/repository/remote"
	"github.com/flicknote/flick/pkg/repository/sqlite"
)

var cfgFile string

// RegisterFlags attaches the shared --config flag to the root command.
func RegisterFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.config/flick/config.yaml)")
}

// InitConfig wires viper to the config file and FLICK_* environment.
func InitConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		configDir := filepath.Join(home, ".config", "flick")
		viper.AddConfigPath(configDir)
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("FLICK")

	viper.SetDefault("storage", "local")
	viper.SetDefault("server_url", "http://localhost:8080")
	viper.SetDefault("data_dir", filepath.Join(os.Getenv("HOME"), ".local", "share", "flick"))

	if err := viper.ReadInConfig(); err == nil {
		// Config file is optional; defaults and env cover local use.
		_ = viper.ConfigFileUsed()
	}
}

// NewLogger builds the process logger the way the CLI wants it:
// warnings and errors to stderr, debug on demand via FLICK_DEBUG.
func NewLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.WarnLevel)
	if os.Getenv("FLICK_DEBUG") != "" {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}

// Session bundles the collaborators a note session needs: the note
// repository, the identity handle, and the user the session belongs
// to. Close releases whatever backend was opened.
type Session struct {
	Repo     repository.Repository
	Identity repository.Identity
	UserID   string
	Close    func() error
}

// localUserID keys the single local account in the on-disk store.
const localUserID = "local"

// InitSession builds the configured backend: a local SQLite store by
// default, or the hosted server when storage is "remote" and a login
// token is cached.
func InitSession() (*Session, error) {
	switch storage := viper.GetString("storage"); storage {
	case "local":
		dataDir := viper.GetString("data_dir")
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
		store, err := sqlite.Open(filepath.Join(dataDir, "notes.db"))
		if err != nil {
			return nil, err
		}
		return &Session{
			Repo:     store,
			Identity: sqlite.NewIdentity(store, localUserID),
			UserID:   localUserID,
			Close:    store.Close,
		}, nil

	case "remote":
		token, err := LoadToken()
		if err != nil {
			return nil, fmt.Errorf("not signed in, run `flick login` first")
		}
		client := remote.New(viper.GetString("server_url"), token)
		return &Session{
			Repo:     client,
			Identity: client,
			UserID:   "me", // the server scopes calls to the token's subject
			Close:    func() error { return nil },
		}, nil

	default:
		return nil, fmt.Errorf("unknown storage backend %q (want local or remote)", storage)
	}
}

// TokenPath is where the remote session token is cached.
func TokenPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "flick", "token"), nil
}

// SaveToken caches a session token with owner-only permissions.
func SaveToken(token string) error {
	path, err := TokenPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(token+"\n"), 0600)
}

// LoadToken reads the cached session token.
func LoadToken() (string, error) {
	path, err := TokenPath()
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", fmt.Errorf("empty token file")
	}
	return token, nil
}

// ClearToken removes the cached token, signing the user out.
func ClearToken() error {
	path, err := TokenPath()
	if err != nil {
		return err
	}
	err = os.Remove(path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
