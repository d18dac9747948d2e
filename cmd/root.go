package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/Caden-Dane/cadenbudget/internal/backend"
	"github.com/Caden-Dane/cadenbudget/internal/budget"
	"github.com/Caden-Dane/cadenbudget/internal/config"
	"github.com/Caden-Dane/cadenbudget/internal/identity"
	applog "github.com/Caden-Dane/cadenbudget/internal/log"
	"github.com/Caden-Dane/cadenbudget/internal/store"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	flagUser    string
	flagBackend string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "cadenbudget",
	Short: "Per-user budget tracker",
	Long:  "Track income, categorized expenses, and spending limits, one isolated data partition per user.",
	RunE:  runSummary,

	SilenceUsage: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagUser, "user", "u", "", "User identity the operation applies to")
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", "", "Override data backend (memory, sqlite, firestore)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
}

// app bundles the wiring every command needs: config, resolver, verified
// store, and the mutation engine.
type app struct {
	cfg      *config.Config
	resolver *identity.Resolver
	store    *store.DocumentStore
	service  *budget.Service
	cleanup  backend.CleanupFunc
}

// newApp loads configuration, constructs the configured backend, and probes
// the store once before any command logic runs. A failed probe aborts the
// command instead of proceeding as if persistence were working.
func newApp(ctx context.Context) (*app, error) {
	_ = godotenv.Load()

	level := slog.LevelWarn
	if flagVerbose {
		level = slog.LevelDebug
	}
	logger := applog.New(applog.Config{Level: level, Component: "cadenbudget"})
	applog.SetDefault(logger)

	cfg := config.Load()
	if flagBackend != "" {
		cfg.DataBackend = flagBackend
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	resolver, err := identity.NewResolver(cfg.Identities)
	if err != nil {
		return nil, fmt.Errorf("identity set: %w", err)
	}

	factory := backend.NewFactory(logger.Logger)
	result, err := factory.CreateBackend(ctx, backend.Config{
		Type:                backend.Type(cfg.DataBackend),
		SQLiteDBPath:        cfg.SQLiteDBPath,
		FirestoreProjectID:  cfg.FirestoreProjectID,
		FirestoreCollection: cfg.FirestoreCollection,
		CredentialsFile:     cfg.CredentialsFile,
		CredentialsJSON:     cfg.CredentialsJSON,
	})
	if err != nil {
		return nil, err
	}

	docStore := store.New(result.Backend)
	if err := docStore.Probe(ctx); err != nil {
		if result.Cleanup != nil {
			_ = result.Cleanup()
		}
		return nil, fmt.Errorf("persistence unavailable: %w", err)
	}

	return &app{
		cfg:      cfg,
		resolver: resolver,
		store:    docStore,
		service:  budget.NewService(docStore, resolver),
		cleanup:  result.Cleanup,
	}, nil
}

func (a *app) Close() {
	if a.cleanup != nil {
		_ = a.cleanup()
	}
}

// user returns the identity this invocation operates on. There is no
// default: an unset or unrecognized identity is an error, never a silent
// fallback to someone else's partition.
func (a *app) user() (string, error) {
	if flagUser == "" {
		return "", fmt.Errorf("no user selected: pass --user, one of [%s]",
			strings.Join(a.resolver.Identities(), ", "))
	}
	if _, err := a.resolver.ResolveKey(flagUser); err != nil {
		return "", fmt.Errorf("%w (recognized: %s)", err,
			strings.Join(a.resolver.Identities(), ", "))
	}
	return flagUser, nil
}

// opContext derives the store-call context for one command invocation.
func (a *app) opContext(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, a.cfg.StoreTimeout)
}
