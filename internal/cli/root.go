// Package cli defines Cobra command definitions for the dojoterm CLI.
// This file contains the root command and the TUI wiring.
package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dojoterm-dev/dojoterm/internal/api"
	"github.com/dojoterm-dev/dojoterm/internal/auth"
	"github.com/dojoterm-dev/dojoterm/internal/catalog"
	"github.com/dojoterm-dev/dojoterm/internal/config"
	"github.com/dojoterm-dev/dojoterm/internal/log"
	"github.com/dojoterm-dev/dojoterm/internal/stats"
	"github.com/dojoterm-dev/dojoterm/internal/tui"
	"github.com/dojoterm-dev/dojoterm/internal/tui/app"
	"github.com/dojoterm-dev/dojoterm/internal/voice"
	"github.com/dojoterm-dev/dojoterm/internal/voice/speak"
	"github.com/dojoterm-dev/dojoterm/internal/voice/stream"
)

var version = "dev" // set via ldflags at build time

var rootCmd = &cobra.Command{
	Use:   "dojoterm",
	Short: "Terminal client for coding practice",
	Long: `Dojoterm is a terminal client for an online coding practice server.
Browse problems, write and run solutions against the server's test
cases, track your progress, and talk to the voice assistant.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// When no subcommand is provided, launch the TUI if on a TTY.
		if !tui.IsTTY() {
			return cmd.Help()
		}

		deps, err := wire()
		if err != nil {
			return err
		}
		return tui.Run(app.New(deps))
	},
}

// Execute runs the root command. Called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(problemsCmd)
	rootCmd.AddCommand(statsCmd)
}

// assistantClient adapts the request gateway to the voice session's
// Assistant port.
type assistantClient struct {
	client *api.Client
}

func (a assistantClient) Ask(ctx context.Context, text string) (string, error) {
	return a.client.AskAssistant(ctx, text)
}

// wire assembles the collaborator graph for the TUI.
func wire() (tui.Deps, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return tui.Deps{}, fmt.Errorf("finding home directory: %w", err)
	}

	cfg, err := config.ReadConfig(home)
	if err != nil {
		cfg = config.DefaultConfig()
	}

	creds := auth.NewStore(home)
	client := api.NewClient(cfg.Server.BaseURL, creds, time.Duration(cfg.Server.Timeout)*time.Second)

	logger, err := log.NewLogger(home)
	if err != nil {
		return tui.Deps{}, fmt.Errorf("opening event log: %w", err)
	}

	events := make(chan tui.VoiceEvent, 32)

	var recognizer voice.Recognizer
	var rec *stream.Recognizer
	if cfg.Voice.Enabled && cfg.Voice.StreamURL != "" {
		rec = stream.New(stream.Config{
			URL:      cfg.Voice.StreamURL,
			APIKey:   cfg.Voice.APIKey,
			Language: cfg.Voice.Language,
		})
		recognizer = rec
	}

	session := voice.NewSession(
		recognizer,
		assistantClient{client: client},
		speak.New(cfg.Voice.SynthCommand),
		tui.NewChannelSink(events),
		voice.Options{
			VoicePrefix: cfg.Voice.VoicePrefix,
			Logger:      logger,
		},
	)
	if rec != nil {
		rec.Bind(session)
	}

	return tui.Deps{
		Cfg:         cfg,
		Client:      client,
		Creds:       creds,
		Logger:      logger,
		Catalog:     catalog.NewStore(cfg.Editor.Languages),
		Stats:       stats.NewAggregator(),
		Voice:       session,
		VoiceEvents: events,
	}, nil
}
