package main

import (
	"context"
	"errors"
	"log"
	"logistics-planner/internal/api"
	"logistics-planner/internal/app"
	"logistics-planner/internal/config"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
)

// main is the application composition root.
// It wires the optional ledger and plan cache behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	settings, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	costs, err := config.LoadCosts(settings.CostProfile)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stores, err := app.OpenStores(ctx, settings)
	if err != nil {
		log.Fatal(err)
	}
	defer stores.Close()

	router := api.NewRouter(api.Deps{
		Runs:    stores.Runs,
		Cache:   stores.Cache,
		Costs:   costs,
		Options: app.SearchOptions(settings),
	})

	// Timeouts allow for long searches; a disconnecting client cancels its search.
	log.Printf("Server listening addr=:%s", settings.Port)
	srv := &http.Server{
		Addr:              ":" + settings.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      300 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown failed: %v", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
