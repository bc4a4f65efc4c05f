package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/kolah/synth/internal/config"
	"github.com/kolah/synth/internal/loader"
	"github.com/kolah/synth/model"
)

// session is the loaded configuration and document shared by the commands.
type session struct {
	cfg    *config.Config
	doc    *model.Document
	result *loader.Result
	logger *slog.Logger
}

func openSession(cmd *cobra.Command) (*session, error) {
	cfg, err := config.Load(cmd)
	if err != nil {
		return nil, err
	}

	logger := newLogger(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)

	doc, result, err := loader.LoadDocument(cfg.Spec)
	if err != nil {
		return nil, fmt.Errorf("loading spec: %w", err)
	}

	for _, w := range result.Warnings {
		logger.Warn(w)
	}
	logger.Debug("loaded document",
		"version", result.Version,
		"title", doc.Info.Title,
		"operations", len(doc.Operations),
	)

	return &session{cfg: cfg, doc: doc, result: result, logger: logger}, nil
}

func newLogger(w io.Writer, level, format string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
