package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/vytor/wortflash/internal/chat"
	"github.com/vytor/wortflash/internal/cli"
	"github.com/vytor/wortflash/internal/client"
	"github.com/vytor/wortflash/internal/config"
	"github.com/vytor/wortflash/internal/db"
	"github.com/vytor/wortflash/internal/logger"
	"github.com/vytor/wortflash/internal/repository"
	"github.com/vytor/wortflash/internal/repository/memory"
	"github.com/vytor/wortflash/internal/repository/sqlite"
	"github.com/vytor/wortflash/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	serverURL := flag.String("server", cfg.ServerURL, "base URL of the WortFlash server")
	dbPath := flag.String("db", cfg.DBPath, "path of the local profile database")
	flag.Parse()

	// The REPL owns stdout, so logs go to stderr and stay quiet by default.
	log := logger.New(
		logger.WithOutput(os.Stderr),
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(cli.ColorsEnabled()),
	)
	logger.SetDefault(log)

	var repo repository.KeyValueRepository
	database, err := db.Open(*dbPath)
	if err != nil {
		log.Warn("failed to open %s, progress will not be saved: %v", *dbPath, err)
		repo = memory.NewKeyValueRepository()
	} else {
		defer database.Close()
		repo = sqlite.NewKeyValueRepository(database.DB)
	}

	clock := services.SystemClock{}
	quota := services.NewChatQuotaService(repo, clock)
	api := client.New(*serverURL)

	app := cli.New(os.Stdin, os.Stdout, cli.Deps{
		Learner:  api,
		Chat:     chat.NewSession(api, quota),
		Profiles: services.NewProfileService(repo, clock),
		Quota:    quota,
	}, cli.WithColors(cli.ColorsEnabled()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logger.NewContext(ctx, log)

	if err := app.Run(ctx); err != nil && ctx.Err() == nil {
		log.Error("%v", err)
		os.Exit(1)
	}
}
