package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"wheelpage/internal/config"
	"wheelpage/internal/content"
	"wheelpage/internal/eventbus"
	"wheelpage/internal/ui"
)

func main() {
	// Parse command line arguments
	flags := pflag.NewFlagSet("wheelpage", pflag.ExitOnError)
	configFlag := flags.StringP("config", "c", config.FileName, "Config file to load and save toggles to")
	flags.String("content", "", "File or directory of pages to show (default: built-in sample)")
	flags.String("log-file", "", "Log file (default from config: wheelpage.log)")
	flags.String("log-level", "", "Log level: debug, info, warn, error")
	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: wheelpage [flags] [content]\n\n")
		flags.PrintDefaults()
	}
	_ = flags.Parse(os.Args[1:])

	// A positional argument is the content source
	if flags.NArg() > 0 && !flags.Changed("content") {
		_ = flags.Set("content", flags.Arg(0))
	}

	configPath, err := filepath.Abs(*configFlag)
	if err != nil {
		fmt.Printf("Error resolving config path: %v\n", err)
		os.Exit(1)
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle termination signals; ctrl+c arrives as a key in raw mode
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGHUP)
	go func() {
		<-sigChan
		cancel()
	}()

	// Create event bus
	bus := eventbus.New()
	defer bus.Close()

	configSvc := config.NewConfigServiceWithBus(bus, flags)
	cfg, err := loadOrCreateConfig(configSvc, configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Printf("Error in %s: %v\n", configPath, err)
		os.Exit(1)
	}

	closeLog := setupLogging(cfg.Log)
	defer closeLog()
	log.WithField("path", configPath).Info("config loaded")

	deck, err := content.Load(cfg.Content)
	if err != nil {
		fmt.Printf("Error loading content: %v\n", err)
		os.Exit(1)
	}
	subscribeLogging(bus)
	bus.Publish(eventbus.DeckLoadedEvent{Source: deck.Source, Pages: deck.Len()})

	// Persist runtime toggles to the file only; flags and env stay out of it
	saver := config.NewToggleSaver(configSvc, configPath)
	bus.Subscribe(eventbus.EventConfigChanged, func(e eventbus.DomainEvent) {
		event, ok := e.(eventbus.ConfigChangedEvent)
		if !ok {
			return
		}
		if _, err := saver.Save(event); err != nil {
			bus.Publish(eventbus.ErrorEvent{Message: "failed to save config", Err: err})
		}
	})

	// Create UI model
	model, err := ui.NewModel(cfg, deck, bus)
	if err != nil {
		fmt.Printf("Error creating UI: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	model.SetProgram(p)

	log.Info("starting UI")
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		log.WithError(err).Error("error running program")
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
	log.Info("UI exited normally")
}

// loadOrCreateConfig loads the config file, writing the defaults first when
// there is none yet
func loadOrCreateConfig(configSvc config.ConfigService, path string) (*config.Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := configSvc.SaveToPath(config.DefaultConfig(), path); err != nil {
			// Not fatal: run on defaults and overrides
			log.WithError(err).Warn("could not write default config")
		}
	}
	return configSvc.LoadFromPath(path)
}

// setupLogging points logrus at the configured file. The terminal belongs to
// the UI, so a file that cannot be opened disables logging instead.
func setupLogging(settings config.LogSettings) func() {
	level, err := log.ParseLevel(settings.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true, DisableColors: true})

	logFile, err := os.OpenFile(settings.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not open log file: %v\n", err)
		log.SetOutput(io.Discard)
		return func() {}
	}
	log.SetOutput(logFile)
	return func() { _ = logFile.Close() }
}

// subscribeLogging mirrors interesting domain events into the log
func subscribeLogging(bus eventbus.EventBus) {
	bus.Subscribe(eventbus.EventDeckLoaded, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.DeckLoadedEvent); ok {
			log.WithFields(log.Fields{"source": event.Source, "pages": event.Pages}).Info("deck loaded")
		}
	})
	bus.Subscribe(eventbus.EventPageChanged, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.PageChangedEvent); ok {
			log.WithFields(log.Fields{
				"from":  event.Previous + 1,
				"to":    event.Current + 1,
				"title": event.Title,
			}).Info("page changed")
		}
	})
	bus.Subscribe(eventbus.EventScrollStopped, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.ScrollStoppedEvent); ok {
			log.WithFields(log.Fields{
				"page":       event.Page + 1,
				"percentage": event.Percentage,
			}).Debug("scroll stopped")
		}
	})
	bus.Subscribe(eventbus.EventPagerToggled, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.PagerToggledEvent); ok {
			log.WithField("enabled", event.Enabled).Info("wheel input toggled")
		}
	})
	bus.Subscribe(eventbus.EventConfigSaved, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.ConfigSavedEvent); ok {
			log.WithField("path", event.Path).Debug("config saved")
		}
	})
	bus.Subscribe(eventbus.EventError, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.ErrorEvent); ok {
			log.WithError(event.Err).Error(event.Message)
		}
	})
}
