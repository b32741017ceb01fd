// Command dispatcher sends medication reminder push notifications.
//
// Usage:
//
//	reminder-dispatcher once
//	reminder-dispatcher loop
//	reminder-dispatcher serve --with-loop
//	reminder-dispatcher hash-key <key>
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/go-med-reminder/internal/application/reminder"
	"github.com/go-med-reminder/internal/config"
	"github.com/go-med-reminder/internal/infrastructure/dynamo"
	googleinfra "github.com/go-med-reminder/internal/infrastructure/google"
	jwtinfra "github.com/go-med-reminder/internal/infrastructure/jwt"
	s3infra "github.com/go-med-reminder/internal/infrastructure/s3"
	"github.com/go-med-reminder/internal/infrastructure/sns"
	"github.com/go-med-reminder/internal/pkg/apikey"
	transporthttp "github.com/go-med-reminder/internal/transport/http"
	appmiddleware "github.com/go-med-reminder/internal/transport/http/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, reading from environment")
	}

	root := &cobra.Command{
		Use:           "reminder-dispatcher",
		Short:         "Medication reminder dispatcher",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(onceCmd(), loopCmd(), serveCmd(), hashKeyCmd())

	if err := root.Execute(); err != nil {
		slog.Error("dispatcher exited", "err", err)
		os.Exit(1)
	}
}

func onceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "once",
		Short: "Run a single dispatch pass and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app) error {
				_, err := a.svc.Run(ctx)
				return err
			})
		},
	}
}

func loopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "loop",
		Short: "Run a dispatch pass every DISPATCH_INTERVAL until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app) error {
				runLoop(ctx, a)
				return nil
			})
		},
	}
}

func serveCmd() *cobra.Command {
	var withLoop bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP trigger endpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app) error {
				if withLoop {
					go runLoop(ctx, a)
				}
				return serve(ctx, a)
			})
		},
	}
	cmd.Flags().BoolVar(&withLoop, "with-loop", false, "Also run the in-process dispatch loop")
	return cmd
}

func hashKeyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-key <key>",
		Short: "Print the bcrypt hash of a trigger API key for TRIGGER_API_KEY_HASH",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := apikey.Hash(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), h)
			return nil
		},
	}
}

type app struct {
	cfg    *config.Config
	logger *slog.Logger
	svc    reminder.Service
}

func withApp(fn func(ctx context.Context, a *app) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	svc, err := buildService(ctx, cfg, logger)
	if err != nil {
		return err
	}
	return fn(ctx, &app{cfg: cfg, logger: logger, svc: svc})
}

func buildService(ctx context.Context, cfg *config.Config, logger *slog.Logger) (reminder.Service, error) {
	dynamoClient := dynamo.NewClient(cfg)
	if cfg.DynamoBootstrap {
		dynamo.Bootstrap(ctx, dynamoClient, cfg.DynamoTables)
	}

	gateway, err := sns.NewGateway(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("push gateway: %w", err)
	}

	deps := reminder.ServiceDeps{
		Users:           dynamo.NewUserRepo(dynamoClient, cfg.DynamoTables.Users),
		Medications:     dynamo.NewMedicationRepo(dynamoClient, cfg.DynamoTables.Medications),
		Tokens:          dynamo.NewNotificationTokenRepo(dynamoClient, cfg.DynamoTables.NotificationTokens),
		Preferences:     dynamo.NewPreferenceRepo(dynamoClient, cfg.DynamoTables.Preferences),
		Locks:           dynamo.NewDispatchRepo(dynamoClient, cfg.DynamoTables.ReminderDispatches),
		Gateway:         gateway,
		Logger:          logger,
		PageSize:        int32(cfg.Dispatch.PageSize),
		UserConcurrency: cfg.Dispatch.UserConcurrency,
		ChunkSize:       cfg.Dispatch.ChunkSize,
		LockTTL:         cfg.Dispatch.LockTTL,
	}
	if cfg.SummaryBucket != "" {
		store := s3infra.NewStore(s3infra.NewClient(cfg), cfg.SummaryBucket)
		deps.Archive = s3infra.NewSummaryArchive(store)
	}
	return reminder.NewService(deps), nil
}

// runLoop fires a pass on every interval boundary. A failed pass is logged
// and the next tick proceeds.
func runLoop(ctx context.Context, a *app) {
	interval := a.cfg.Dispatch.Interval
	a.logger.Info("dispatch loop started", "interval", interval.String())

	wait := time.Until(time.Now().Truncate(interval).Add(interval))
	timer := time.NewTimer(wait)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			a.logger.Info("dispatch loop stopped")
			return
		case <-timer.C:
			if _, err := a.svc.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				a.logger.Error("dispatch pass failed", "err", err)
			}
			timer.Reset(time.Until(time.Now().Truncate(interval).Add(interval)))
		}
	}
}

func serve(ctx context.Context, a *app) error {
	auth, err := triggerAuth(a.cfg)
	if err != nil {
		return err
	}
	if !auth.Enabled() {
		a.logger.Warn("trigger endpoint is unauthenticated")
	}

	router := transporthttp.NewRouter(a.cfg, &transporthttp.Deps{
		Dispatcher: a.svc,
		Auth:       auth,
		Logger:     a.logger,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", a.cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("server starting", "port", a.cfg.AppPort, "env", a.cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}
	a.logger.Info("server stopped")
	return nil
}

func triggerAuth(cfg *config.Config) (appmiddleware.TriggerAuth, error) {
	var auth appmiddleware.TriggerAuth
	if cfg.Trigger.JWTPublicKeyPath != "" {
		p, err := jwtinfra.NewProvider(cfg.Trigger.JWTPublicKeyPath, cfg.Trigger.JWTAudience)
		if err != nil {
			return auth, fmt.Errorf("trigger jwt: %w", err)
		}
		auth.Bearer = append(auth.Bearer, p)
	}
	if cfg.Trigger.GoogleAudience != "" {
		auth.Bearer = append(auth.Bearer, googleinfra.NewVerifier(cfg.Trigger.GoogleAudience))
	}
	if cfg.Trigger.APIKeyHash != "" {
		auth.APIKey = apikey.NewVerifier(cfg.Trigger.APIKeyHash)
	}
	return auth, nil
}
