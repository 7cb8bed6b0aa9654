package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/rl1809/inventory-tracker/internal/adapter/handler"
	"github.com/rl1809/inventory-tracker/internal/adapter/storage"
	"github.com/rl1809/inventory-tracker/internal/adapter/tui"
	"github.com/rl1809/inventory-tracker/internal/cli"
	"github.com/rl1809/inventory-tracker/internal/config"
	"github.com/rl1809/inventory-tracker/internal/core/service"
	"github.com/rl1809/inventory-tracker/internal/logger"
)

func main() {
	// Root flags (apply to every subcommand)
	remote := flag.String("remote", "", "gRPC address of an inventory server; empty uses the configured store directly")
	verbose := flag.Bool("v", false, "log store activity to stderr")
	flag.Parse()

	os.Exit(run(*remote, *verbose, flag.Args()))
}

func run(remote string, verbose bool, args []string) int {
	_ = godotenv.Load() // Load .env file if it exists

	ctx := context.Background()
	runner := &cli.Runner{Out: os.Stdout, Err: os.Stderr}
	if len(args) == 0 {
		runner.PrintHelp()
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		return 1
	}

	log := zap.NewNop()
	if verbose {
		if log, err = logger.New(cfg.Logger, true); err != nil {
			fmt.Fprintln(os.Stderr, "logger:", err)
			return 1
		}
	}
	defer log.Sync()

	var inventory tui.Inventory
	if remote != "" {
		conn, err := grpc.NewClient(remote, grpc.WithTransportCredentials(insecure.NewCredentials()))
		if err != nil {
			fmt.Fprintln(os.Stderr, "connect:", err)
			return 1
		}
		defer conn.Close()
		inventory = handler.NewInventoryClient(conn)
	} else {
		store, closeStore, err := storage.Open(ctx, cfg, log)
		if err != nil {
			fmt.Fprintln(os.Stderr, "store:", err)
			return 1
		}
		defer closeStore()
		inventory = service.NewInventoryService(store, cfg.Store.Collection, cfg.Store.Timeout, log)
	}

	runner.Inventory = inventory
	code := runner.Run(ctx, args)
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	return code
}
