package cli

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/hurlingham/leaguesync/internal/factory"
	redisstorage "github.com/hurlingham/leaguesync/internal/storage/redis"
)

var (
	storageType string
	redisURL    string
	baseURL     string

	app *factory.App
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "leaguectl",
		Short: "Admin CLI for the league scheduler",
		Long: `leaguectl seeds and schedules a round-robin league.

It talks directly to the same storage backend as the server: seed
players and timeslots, pair available players into matches, and
inspect the season schedule. Players sign up through their personal
links; pairing a timeslot locks it against further signup edits.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg := factory.Config{
				Logger:      slog.New(slog.NewJSONHandler(io.Discard, nil)),
				StorageType: storageType,
			}
			if storageType == factory.StorageTypeRedis {
				redisCfg := redisstorage.DefaultConfig()
				redisCfg.URL = redisURL
				cfg.RedisConfig = &redisCfg
			}

			var err error
			app, err = factory.New(cfg)
			return err
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&storageType, "storage", envOr("LEAGUESYNC_STORAGE", factory.StorageTypeRedis),
		"Storage backend: redis, memory (env: LEAGUESYNC_STORAGE)")
	rootCmd.PersistentFlags().StringVar(&redisURL, "redis-url", envOr("LEAGUESYNC_REDIS_URL", "redis://localhost:6379"),
		"Redis URL (env: LEAGUESYNC_REDIS_URL)")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", envOr("LEAGUESYNC_BASE_URL", "http://localhost:8080"),
		"Base URL used when printing personal links (env: LEAGUESYNC_BASE_URL)")

	// Add subcommands
	rootCmd.AddCommand(newPlayerCmd())
	rootCmd.AddCommand(newTimeslotCmd())
	rootCmd.AddCommand(newPairCmd())
	rootCmd.AddCommand(newUnpairCmd())
	rootCmd.AddCommand(newShowCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// personalLink renders the link a player uses to open their signup page
func personalLink(shareToken string) string {
	return baseURL + "/?t=" + shareToken
}
