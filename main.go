package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	repoMongo "grade-stats/app/repository/mongodb"
	repoPg "grade-stats/app/repository/postgresql"
	repoRedis "grade-stats/app/repository/redis"
	service "grade-stats/app/service/grades"
	"grade-stats/config"
	"grade-stats/database"
	FiberApp "grade-stats/fiber"
	"grade-stats/route"
	"grade-stats/utils"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:          "gradestats",
		Short:        "Weighted grade statistics over the grades store",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if envFile == "" {
				return config.LoadEnv()
			}
			return config.LoadEnv(envFile)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", "", "path to a .env file (default .env)")

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP API",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runServe(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "class-stats <classId>",
			Short: "Print the pass-rate summary of a class",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runQuery(cmd, args[0], "class id", func(ctx context.Context, s *service.GradeService, id int) (interface{}, error) {
					return s.ClassStats(ctx, id)
				})
			},
		},
		&cobra.Command{
			Use:   "learner-avg <learnerId>",
			Short: "Print a learner's weighted average per class",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runQuery(cmd, args[0], "learner id", func(ctx context.Context, s *service.GradeService, id int) (interface{}, error) {
					return s.LearnerClassAverages(ctx, id)
				})
			},
		},
		newTokenCmd(),
	)
	return root
}

func newTokenCmd() *cobra.Command {
	var subject, role string
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token signed with JWT_SECRET",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := utils.GenerateToken(os.Getenv("JWT_SECRET"), subject, role, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "", "token subject")
	cmd.Flags().StringVar(&role, "role", "", "role claim")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	_ = cmd.MarkFlagRequired("subject")
	return cmd
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(cfg.LogLevel)
	return zcfg.Build()
}

// buildService wires the configured store and optional cache. The returned
// cleanup closes every connection that was opened.
func buildService(ctx context.Context, cfg *config.Config, log *zap.Logger) (*service.GradeService, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	var repo repoMongo.GradeRepository
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		db, err := database.ConnectPostgres(ctx, cfg.DatabaseURL, log)
		if err != nil {
			return nil, cleanup, err
		}
		closers = append(closers, func() { db.Close() })
		repo = repoPg.NewGradeRepoPostgres(db)
	default:
		client, db, err := database.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDB, log)
		if err != nil {
			return nil, cleanup, err
		}
		closers = append(closers, func() { _ = client.Disconnect(context.Background()) })
		repo = repoMongo.NewGradeRepository(db, cfg.Collection)
	}

	opts := []service.Option{
		service.WithPolicy(cfg.Policy),
		service.WithTimeout(cfg.QueryTimeout),
		service.WithLogger(log),
	}
	if rdb := database.ConnectRedis(ctx, cfg.RedisAddr, log); rdb != nil {
		closers = append(closers, func() { rdb.Close() })
		opts = append(opts, service.WithCache(repoRedis.NewStatsCache(rdb, cfg.CacheTTL)))
	}

	return service.NewGradeService(repo, opts...), cleanup, nil
}

func runServe(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	gradeService, cleanup, err := buildService(ctx, cfg, log)
	defer cleanup()
	if err != nil {
		log.Error("failed to connect to grade store", zap.Error(err))
		return err
	}

	app := FiberApp.SetupFiber(log)
	route.SetupGradeRoutes(app, cfg.RoutePrefix, cfg.JWTSecret, gradeService)

	addr := fmt.Sprintf(":%d", cfg.Port)
	errCh := make(chan error, 1)
	go func() {
		log.Info("server running",
			zap.String("addr", addr),
			zap.String("store", cfg.StoreDriver),
			zap.String("policy", string(cfg.Policy)),
			zap.Bool("auth", cfg.JWTSecret != ""))
		errCh <- app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		log.Error("server stopped", zap.Error(err))
		return err
	case <-ctx.Done():
	}

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Warn("server forced to shutdown", zap.Error(err))
	}
	log.Info("server stopped")
	return nil
}

func runQuery(cmd *cobra.Command, rawID, param string, query func(context.Context, *service.GradeService, int) (interface{}, error)) error {
	id, err := strconv.Atoi(rawID)
	if err != nil {
		return &service.InvalidArgumentError{Param: param, Value: rawID}
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	gradeService, cleanup, err := buildService(cmd.Context(), cfg, log)
	defer cleanup()
	if err != nil {
		return err
	}

	result, err := query(cmd.Context(), gradeService, id)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
