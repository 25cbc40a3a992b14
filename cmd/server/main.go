package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/partyroom/partyroom/internal/api"
	"github.com/partyroom/partyroom/internal/factory"
	"github.com/partyroom/partyroom/internal/services/registry"
	redisstorage "github.com/partyroom/partyroom/internal/storage/redis"
)

// productionMaxRooms caps concurrent open rooms when running in production
const productionMaxRooms = 4

type serverConfig struct {
	bind        string
	port        int
	env         string
	storageType string
	redisURL    string
	maxRooms    int
	uniqueNames bool
	adminToken  string
}

func newCmd(cfg *serverConfig) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("PARTYROOM")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:   "partyroom-server",
		Short: "Run the partyroom API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cfg)
		},
	}

	fs := cmd.Flags()

	fs.StringVarP(&cfg.bind, "bind", "b", "", "address to bind to (env: PARTYROOM_BIND)")
	fs.IntVarP(&cfg.port, "port", "p", 3000, "port to listen on (env: PARTYROOM_PORT)")
	fs.StringVar(&cfg.env, "env", "development", "runtime environment, production caps open rooms (env: PARTYROOM_ENV)")
	fs.StringVar(&cfg.storageType, "storage-type", factory.StorageTypeMemory, "storage backend: memory, redis (env: PARTYROOM_STORAGE_TYPE)")
	fs.StringVar(&cfg.redisURL, "redis-url", "", "redis connection URL (env: PARTYROOM_REDIS_URL)")
	fs.IntVar(&cfg.maxRooms, "max-rooms", 0, "max concurrent open rooms, 0 for unlimited (env: PARTYROOM_MAX_ROOMS)")
	fs.BoolVar(&cfg.uniqueNames, "unique-names", false, "reject duplicate player names (env: PARTYROOM_UNIQUE_NAMES)")
	fs.StringVar(&cfg.adminToken, "admin-token", "", "bearer token for the player directory, empty disables it (env: PARTYROOM_ADMIN_TOKEN)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	return cmd
}

func run(ctx context.Context, cfg *serverConfig) error {
	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	maxRooms := cfg.maxRooms
	if cfg.env == "production" && maxRooms == 0 {
		maxRooms = productionMaxRooms
	}

	factoryConfig := factory.Config{
		Logger:      logger,
		StorageType: cfg.storageType,
		RegistryConfig: registry.Config{
			MaxRooms:    maxRooms,
			UniqueNames: cfg.uniqueNames,
		},
	}

	if cfg.storageType == factory.StorageTypeRedis {
		if cfg.redisURL == "" {
			return fmt.Errorf("redis-url required when storage-type is redis")
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.redisURL
		factoryConfig.RedisConfig = &redisCfg
	}

	app, err := factory.New(factoryConfig)
	if err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}

	router := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		Registry:       app.Registry,
		RoomController: app.RoomController,
		AdminToken:     cfg.adminToken,
	})

	httpCfg := api.DefaultServerConfig()
	httpCfg.Host = cfg.bind
	httpCfg.Port = cfg.port
	server := api.NewServer(router, httpCfg, logger)

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started",
		slog.String("addr", server.Addr()),
		slog.String("storage", cfg.storageType),
		slog.String("env", cfg.env))

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
	}

	return nil
}

func main() {
	cfg := &serverConfig{}
	cobra.CheckErr(newCmd(cfg).Execute())
}
