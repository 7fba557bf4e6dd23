// Command jobsctl enqueues list cache jobs and reports queue state.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/animeaux/animeaux/internal/app"
	"github.com/animeaux/animeaux/internal/platform/cache"
	"github.com/animeaux/animeaux/jobs"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	cfg, err := app.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	opts, err := cache.QueueOptions(cfg.RedisAddr)
	if err != nil {
		return err
	}
	client := jobs.NewClient(opts, cfg.WorkerQueue)
	defer client.Close()
	inspector := asynq.NewInspector(opts)
	defer inspector.Close()

	root := newRootCmd(client, inspector, cfg.WorkerQueue)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}
