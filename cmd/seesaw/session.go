package main

import (
	"fmt"
	"io"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/seesaw/internal/audio"
	"github.com/san-kum/seesaw/internal/config"
	"github.com/san-kum/seesaw/internal/present"
	"github.com/san-kum/seesaw/internal/seesaw"
	"github.com/san-kum/seesaw/internal/storage"
	"github.com/spf13/cobra"
)

// resolveConfig applies defaults < preset < yaml < env < flags.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		if err := config.Merge(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}
	if err := config.ApplyEnv(cfg, ".env"); err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("backend") {
		cfg.Backend = backend
	}
	if flags.Changed("data") {
		cfg.DataDir = dataDir
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if noSound {
		cfg.Sound.Enabled = false
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// newLogger routes controller logging to --log, or discards it.
func newLogger() (*log.Logger, func(), error) {
	if logFile == "" {
		return log.New(io.Discard, "", 0), func() {}, nil
	}
	f, err := tea.LogToFile(logFile, "seesaw")
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}
	return log.Default(), func() { f.Close() }, nil
}

type session struct {
	cfg    *config.Config
	blob   storage.Blob
	store  *storage.Store
	queue  *present.Queue
	player *audio.Player
	ctrl   *seesaw.Controller
	close  func()
}

type sessionOptions struct {
	sound     bool
	presenter seesaw.Presenter
}

func openSession(cfg *config.Config, so sessionOptions) (*session, error) {
	logger, closeLog, err := newLogger()
	if err != nil {
		return nil, err
	}

	blob, err := storage.Open(cfg.Backend, cfg.AppName, cfg.DataDir)
	if err != nil {
		closeLog()
		return nil, err
	}

	s := &session{
		cfg:   cfg,
		blob:  blob,
		store: storage.NewStore(blob),
		queue: present.NewQueue(present.DefaultQueueSize),
	}

	opts := cfg.ControllerOptions()
	opts.Store = s.store
	opts.Logger = logger
	opts.Presenter = s.queue
	if so.presenter != nil {
		opts.Presenter = so.presenter
	}

	if so.sound && cfg.Sound.Enabled {
		p := audio.NewPlayer(cfg.Sound.Volume)
		if err := p.Start(); err != nil {
			logger.Printf("sound disabled: %v", err)
		} else {
			s.player = p
			opts.Cue = p
		}
	}

	s.ctrl = seesaw.New(opts)
	s.close = closeLog
	return s, nil
}

func (s *session) Close() {
	s.ctrl.Close()
	if s.player != nil {
		s.player.Stop()
	}
	s.blob.Close()
	s.close()
}
