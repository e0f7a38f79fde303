package cli

import (
	"context"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/orthogram/orthogram/internal/server"
	"github.com/orthogram/orthogram/pkg/cache"
	"github.com/orthogram/orthogram/pkg/diagram"
)

// newServeCmd builds the "serve" command: run the optional HTTP render
// API on top of the same pkg/diagram pipeline the render command drives.
func newServeCmd() *cobra.Command {
	var addr string
	var mongoDB string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP render API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), addr, mongoDB)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "address to listen on")
	cmd.Flags().StringVar(&mongoDB, "mongo-db", "orthogram", "Mongo database name for render history")

	return cmd
}

func runServe(ctx context.Context, addr, mongoDB string) error {
	logger := loggerFromContext(ctx)
	cfg := configFromContext(ctx)

	var backend cache.Cache
	var err error
	if cfg.RedisAddr != "" {
		backend, err = cache.NewRedisCache(ctx, cfg.RedisAddr)
		if err != nil {
			return err
		}
		logger.Infof("Using Redis cache at %s", cfg.RedisAddr)
	} else {
		backend = cache.NewNullCache()
		logger.Warn("No redis_addr configured; render results are not shared across replicas")
	}

	runner := diagram.NewRunner(backend, nil)
	runner.Logger = logger
	defer runner.Close()

	var store *server.Store
	if cfg.MongoURI != "" {
		store, err = server.NewStore(ctx, cfg.MongoURI, mongoDB)
		if err != nil {
			return err
		}
		defer store.Close(ctx)
		logger.Infof("Recording render history to Mongo database %q", mongoDB)
	} else {
		logger.Warn("No mongo_uri configured; GET /v1/renders/{id} will return 501")
	}

	handler := server.New(runner, store, logger)
	logger.Infof("Listening on %s", addr)

	httpServer := &http.Server{Addr: addr, Handler: handler}
	go func() {
		<-ctx.Done()
		_ = httpServer.Close()
	}()
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
