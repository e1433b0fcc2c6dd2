package main

import (
	"context"
	"flag"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"tecnoAcademiaAdmin/internal/config"
	"tecnoAcademiaAdmin/internal/directory"
	grpcserver "tecnoAcademiaAdmin/internal/grpc"
	"tecnoAcademiaAdmin/internal/logging"
	"tecnoAcademiaAdmin/internal/tui"
	"tecnoAcademiaAdmin/models"
)

func main() {
	logPath := flag.String("log", "admin.log", "log file; the terminal is owned by the UI")
	flag.Parse()

	cfg, err := config.LoadWithDefaults()
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}

	f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		logrus.Fatalf("open log: %v", err)
	}
	defer f.Close()
	log := logging.NewWithOutput(f, cfg.Log.Level)
	log.Infof("Configuration loaded: %v", cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	seed := models.SeedUsers()
	var mirror *grpcserver.Mirror
	if cfg.Directory.Address != "" {
		client, err := grpcserver.Dial(cfg.Directory.Address, cfg.Directory.Token)
		if err != nil {
			log.Fatalf("dial directory: %v", err)
		}
		defer client.Close()

		lctx, lcancel := context.WithTimeout(ctx, 5*time.Second)
		remote, err := client.ListUsers(lctx)
		lcancel()
		if err != nil {
			log.Fatalf("load users from %s: %v", cfg.Directory.Address, err)
		}
		seed = remote
		mirror = grpcserver.NewMirror(ctx, client, log.WithField("component", "mirror"))
	}

	dir := directory.New(seed, directory.WithLogger(log.WithField("component", "directory")))
	if mirror != nil {
		dir.Subscribe(mirror.Observe)
	}

	_, runErr := tea.NewProgram(tui.New(dir, log), tea.WithAltScreen()).Run()
	if mirror != nil {
		mirror.Close()
	}
	if runErr != nil {
		log.Errorf("console: %v", runErr)
		os.Exit(1)
	}
}
