package main

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/klabast/wb-services/kleiderspende/internal/app"
	"github.com/klabast/wb-services/kleiderspende/internal/commands"
	"github.com/klabast/wb-services/kleiderspende/internal/registration"
)

//go:embed static/*
var staticFiles embed.FS

//go:embed static/index.html
var indexHTML []byte

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found, using system environment variables")
	}

	// Check for subcommands
	if len(os.Args) > 1 && os.Args[1] == "hash-password" {
		os.Exit(commands.HashPassword(os.Args[2:]))
	}

	cfg, err := app.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	auth, err := app.LoadAuthenticator(cfg.AuthFile)
	if err != nil {
		log.Fatalf("Failed to load auth credentials: %v", err)
	}

	state := registration.NewState()
	srv := app.NewServer(cfg, state,
		app.WithAuthenticator(auth),
		app.WithStatic(indexHTML, staticFiles),
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("Error during shutdown: %v", err)
		}
	}()

	log.Printf("Starting Kleiderspende on http://localhost:%d", cfg.Port)
	log.Printf("Office postal code: %s, time zone: %s, holidays excluded: %t",
		cfg.OfficePostalCode, cfg.Location, cfg.ExcludeHolidays)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
	log.Printf("Server stopped")
}
