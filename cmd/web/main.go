// Package main starts the web service process lifecycle.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	webcmd "github.com/louisbranch/tastebuds/internal/cmd/web"
)

func main() {
	// Local development keeps settings in a .env file; deployed environments
	// set TASTEBUDS_ENV and inject configuration directly.
	if os.Getenv("TASTEBUDS_ENV") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("no .env file found")
		}
	}

	cfg, err := webcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	log.SetPrefix("[WEB] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := webcmd.Run(ctx, cfg); err != nil {
		log.Fatalf("failed to serve: %v", err)
	}
}
