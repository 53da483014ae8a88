package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/louisbranch/werewolf/internal/cmd/simulate"
	"github.com/louisbranch/werewolf/internal/platform/config"
)

func main() {
	_ = godotenv.Load()

	cfg, err := simulate.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	log.SetPrefix("[SIM] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := simulate.Run(ctx, cfg, os.Stdout); err != nil {
		log.Fatalf("simulation failed: %v", err)
	}
}
