package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/2azusa/Go-Blog/internal/config"
	"github.com/2azusa/Go-Blog/internal/domain/listing"
	"github.com/2azusa/Go-Blog/internal/infrastructure/blogapi"
	"github.com/2azusa/Go-Blog/internal/infrastructure/gateway"
	"github.com/2azusa/Go-Blog/internal/infrastructure/logger"
	"github.com/2azusa/Go-Blog/internal/infrastructure/session"
)

// fileConfig is the optional ~/.blogctl.yaml: defaults that environment
// variables and flags override.
type fileConfig struct {
	BaseURL        string `yaml:"base_url"`
	TokenFile      string `yaml:"token_file"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// app bundles the wired client stack for a command invocation.
type app struct {
	cfg   *config.Config
	log   zerolog.Logger
	store session.Store
	api   *blogapi.Client
}

func newApp(cmd *cobra.Command) (*app, error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	applyFileConfig(cfg)

	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		cfg.LogLevel = "debug"
	}
	if baseURL, _ := cmd.Flags().GetString("base-url"); baseURL != "" {
		cfg.BaseURL = baseURL
	}

	log := logger.New(cfg)
	store := session.NewFileStore(cfg.TokenFile)

	gw := gateway.New(gateway.Config{
		BaseURL:       cfg.BaseURL,
		Timeout:       cfg.Timeout(),
		RedirectDelay: cfg.RedirectDelay(),
	}, store, gateway.WithLogger(log))

	return &app{
		cfg:   cfg,
		log:   log,
		store: store,
		api:   blogapi.New(gw, store, log),
	}, nil
}

// applyFileConfig fills cfg from ~/.blogctl.yaml for settings whose
// environment variables are unset.
func applyFileConfig(cfg *config.Config) {
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	raw, err := os.ReadFile(filepath.Join(home, ".blogctl.yaml"))
	if err != nil {
		return
	}

	fc := fileConfig{}
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return
	}

	if fc.BaseURL != "" && os.Getenv("BLOG_API_BASE_URL") == "" {
		cfg.BaseURL = fc.BaseURL
	}
	if fc.TokenFile != "" && os.Getenv("BLOG_TOKEN_FILE") == "" {
		cfg.TokenFile = fc.TokenFile
	}
	if fc.TimeoutSeconds > 0 && os.Getenv("BLOG_HTTP_TIMEOUT") == "" {
		cfg.TimeoutSeconds = fc.TimeoutSeconds
	}
}

// promptConfirmer asks on the terminal before destructive operations.
// --yes answers every prompt affirmatively.
func promptConfirmer(assumeYes bool) listing.Confirmer {
	return listing.ConfirmFunc(func(prompt string) bool {
		if assumeYes {
			return true
		}
		fmt.Fprintf(os.Stderr, "%s [y/N]: ", prompt)
		reader := bufio.NewReader(os.Stdin)
		answer, err := reader.ReadString('\n')
		if err != nil {
			return false
		}
		answer = strings.ToLower(strings.TrimSpace(answer))
		return answer == "y" || answer == "yes"
	})
}

func promptLine(label string) (string, error) {
	fmt.Fprintf(os.Stderr, "%s: ", label)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
