package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/stemsi/chemistry-web/internal/config"
	"github.com/stemsi/chemistry-web/internal/database"
	"github.com/stemsi/chemistry-web/internal/dataset"
	"github.com/stemsi/chemistry-web/internal/model"
	"github.com/stemsi/chemistry-web/internal/worker"
)

func newFactsCmd(app *cli) *cobra.Command {
	var follow bool
	var count int

	cmd := &cobra.Command{
		Use:   "facts",
		Short: "Print the chemistry facts, or follow the rotation",
		Long: `Without flags every fact is printed once. With --follow the rotation is
followed: from the server's Redis channel when REDIS_URL is set, otherwise
from a local rotator ticking every FACT_INTERVAL_SECONDS.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if !follow {
				for i, f := range dataset.Facts {
					fmt.Fprintf(out, "%2d. %s\n", i+1, f)
				}
				return nil
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if app.cfg.RedisURL != "" {
				return followRedis(ctx, app, out, count)
			}
			return followLocal(ctx, app, out, count)
		},
	}
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "keep printing facts as they rotate")
	cmd.Flags().IntVar(&count, "count", 0, "stop after this many facts (0 runs until interrupted)")
	return cmd
}

func followRedis(ctx context.Context, app *cli, out io.Writer, count int) error {
	rdb, err := database.NewRedisClient(ctx, app.cfg, app.log)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	defer rdb.Close()

	sub := rdb.Subscribe(ctx, config.CacheKey.FactChannel())
	defer sub.Close()

	seen := 0
	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			var fact model.Fact
			if err := json.Unmarshal([]byte(msg.Payload), &fact); err != nil {
				app.log.Warn().Err(err).Msg("Skipping malformed fact message")
				continue
			}
			printFact(out, fact)
			seen++
			if count > 0 && seen >= count {
				return nil
			}
		}
	}
}

func followLocal(ctx context.Context, app *cli, out io.Writer, count int) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	rotator := worker.NewFactRotator(dataset.Facts, app.cfg.FactInterval, nil, app.log)
	facts, unsubscribe := rotator.Subscribe()
	defer unsubscribe()
	go rotator.Start(ctx)

	printFact(out, rotator.Current())
	seen := 1
	for count <= 0 || seen < count {
		select {
		case <-ctx.Done():
			return nil
		case fact, ok := <-facts:
			if !ok {
				return nil
			}
			printFact(out, fact)
			seen++
		}
	}
	return nil
}

func printFact(out io.Writer, f model.Fact) {
	fmt.Fprintf(out, "💡 %s\n", f.Text)
}
