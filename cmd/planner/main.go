package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"logistics-planner/internal/adapters/modelfile"
	"logistics-planner/internal/adapters/output"
	"logistics-planner/internal/app"
	"logistics-planner/internal/config"
	"logistics-planner/internal/services"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
)

// main is the CLI composition root: planner <input> <outputBase>.
// Every method runs in order and writes its instructions next to outputBase plus one log line.
func main() {
	if len(os.Args) < 3 {
		return
	}
	input, outputBase := os.Args[1], os.Args[2]

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

	model, err := modelfile.Load(input, costs)
	if err != nil {
		fmt.Println(loadFailure(input, err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	stores, err := app.OpenStores(ctx, settings)
	if err != nil {
		log.Fatal(err)
	}
	defer stores.Close()

	req := services.RunRequest{
		InputName: outputBase,
		Options:   app.SearchOptions(settings),
		DumpState: settings.DumpState,
	}
	writer := output.NewFilePlanWriter(settings.LogFile)

	if _, err := services.RunAll(ctx, model, req, writer, stores.Runs, stores.Cache); err != nil {
		log.Printf("run failed: %v", err)
		stores.Close()
		os.Exit(1)
	}
}

// loadFailure is the only console output of a model that cannot be used.
func loadFailure(input string, err error) string {
	if errors.Is(err, modelfile.ErrFormat) {
		return "Error during parsing input file"
	}
	return "Cannot read file: " + input
}
