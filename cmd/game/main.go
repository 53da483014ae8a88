package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/louisbranch/werewolf/internal/cmd/serve"
	"github.com/louisbranch/werewolf/internal/platform/config"
)

func main() {
	_ = godotenv.Load()

	cfg, err := serve.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	log.SetPrefix("[GAME] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := serve.Run(ctx, cfg); err != nil {
		log.Fatalf("failed to serve: %v", err)
	}
}
