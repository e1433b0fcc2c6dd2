package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tecnoAcademiaAdmin/internal/auth"
	"tecnoAcademiaAdmin/internal/config"
	"tecnoAcademiaAdmin/internal/db"
	grpcserver "tecnoAcademiaAdmin/internal/grpc"
	"tecnoAcademiaAdmin/internal/logging"
	"tecnoAcademiaAdmin/repository"
)

func main() {
	issueFor := flag.String("issue-token", "", "print a token for the named operator and exit")
	kind := flag.String("kind", auth.KindAdmin, "principal kind for -issue-token (admin or viewer)")
	ttl := flag.Duration("ttl", 24*time.Hour, "lifetime for -issue-token; 0 never expires")
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadWithDefaults()
	log := logging.New("info")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	log = logging.New(cfg.Log.Level)

	if *issueFor != "" {
		tok, err := auth.IssueToken(cfg.Auth.JWTSecret, *issueFor, *kind, *ttl)
		if err != nil {
			log.Fatalf("issue token: %v", err)
		}
		fmt.Println(tok)
		return
	}
	log.Infof("Configuration loaded: %v", cfg)

	// Open DB
	d, err := db.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer func() {
		if err := d.Close(); err != nil {
			log.Errorf("close db: %v", err)
		}
	}()

	users := repository.NewUserRepository(d)

	shutdown, err := grpcserver.StartGRPC(cfg, users, log)
	if err != nil {
		log.Fatalf("start grpc: %v", err)
	}
	log.Infof("directory service listening on %s", cfg.GRPC.Address)

	// Wait for signal
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		log.Errorf("shutdown error: %v", err)
	}
}
