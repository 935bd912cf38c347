package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/vertex-mlops/vertex-featurestore-go-sdk/api"
	"github.com/vertex-mlops/vertex-featurestore-go-sdk/config"
	"github.com/vertex-mlops/vertex-featurestore-go-sdk/featurestore"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// featureStore is the part of featurestore.FeatureStoreClient the commands use.
type featureStore interface {
	CreateStore(ctx context.Context, storeId string, opts *featurestore.CreateStoreOpts) (featurestore.CreateStoreResult, error)
	CreateEntity(ctx context.Context, storeId, entityId, entityDescr string, features []string, opts *featurestore.CreateEntityOpts) (featurestore.CreateEntityResult, error)
	IngestCSV(ctx context.Context, storeId, entityId string, features, gcsUris []string) (*api.ImportFeatureValuesResponse, error)
	ReadFeatures(ctx context.Context, storeId, entityId string, features []string, entityValue string) (map[string]float64, error)
	ReadFeaturesBatch(ctx context.Context, storeId, entityId string, features, entityValues []string, parallelism int) (map[string]map[string]float64, error)
	Close() error
}

type app struct {
	// Global flags
	verbose    bool
	configPath string
	project    string
	region     string
	storeId    string
	timeout    time.Duration

	cfg    *config.Config
	logger *zap.Logger

	openStore func(ctx context.Context, cfg *config.Config, logger *zap.Logger) (featureStore, error)
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "fsctl",
		Short: "Manage Vertex AI featurestores",
		Long: `fsctl creates featurestores, entity types and features, imports CSV files
from object storage and reads online feature values.

Settings come from --config, VERTEXFS_* environment variables and flags, in
increasing priority.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.logger == nil {
				zapConfig := zap.NewProductionConfig()
				if a.verbose {
					zapConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
				}
				logger, err := zapConfig.Build()
				if err != nil {
					return fmt.Errorf("failed to initialize logger: %w", err)
				}
				a.logger = logger
			}

			cfg, err := config.LoadConfig(a.configPath)
			if err != nil {
				return err
			}
			if a.project != "" {
				cfg.Project = a.project
			}
			if a.region != "" {
				cfg.Region = a.region
			}
			if a.storeId != "" {
				cfg.StoreId = a.storeId
			}
			if a.timeout > 0 {
				cfg.Timeout = a.timeout.String()
			}
			a.cfg = cfg
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Config file (YAML)")
	rootCmd.PersistentFlags().StringVar(&a.project, "project", "", "Google Cloud project (or set VERTEXFS_PROJECT env)")
	rootCmd.PersistentFlags().StringVar(&a.region, "region", "", "Region (or set VERTEXFS_REGION env)")
	rootCmd.PersistentFlags().StringVar(&a.storeId, "store", "", "Featurestore id (or set VERTEXFS_STORE_ID env)")
	rootCmd.PersistentFlags().DurationVar(&a.timeout, "timeout", 0, "Operation timeout, 0 waits for the service")

	rootCmd.AddCommand(
		newCreateStoreCmd(a),
		newCreateEntityCmd(a),
		newIngestCmd(a),
		newReadCmd(a),
		newExplainConfigCmd(a),
		newCategoricalFeaturesCmd(a),
		newServeCmd(a),
	)

	return rootCmd
}

// connect validates the remote settings and opens the feature store client.
func (a *app) connect(ctx context.Context) (featureStore, error) {
	if err := a.cfg.Validate(); err != nil {
		return nil, err
	}
	if a.cfg.StoreId == "" {
		return nil, errors.New("featurestore id not configured (use --store or set VERTEXFS_STORE_ID)")
	}
	return a.openStore(ctx, a.cfg, a.logger)
}

type cachedFeatureStore struct {
	*featurestore.FeatureStoreClient
	cache config.CacheConfig
}

func (s *cachedFeatureStore) Close() error {
	defer config.CloseFeatureCache(s.cache)
	return s.FeatureStoreClient.Close()
}

func openFeatureStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (featureStore, error) {
	opts := []featurestore.ClientOption{
		featurestore.WithLogger(featurestore.NewZapLogger(logger, zapcore.InfoLevel)),
		featurestore.WithErrorLogger(featurestore.NewZapLogger(logger, zapcore.ErrorLevel)),
		featurestore.WithOperationTimeout(cfg.GetTimeout()),
	}
	if cfg.Endpoint != "" {
		opts = append(opts, featurestore.WithEndpoint(cfg.Endpoint))
	}
	if cfg.CircuitBreaker.Enabled {
		opts = append(opts, featurestore.WithCircuitBreaker(cfg.CircuitBreaker.Settings()))
	}

	featureCache, err := config.OpenFeatureCache(ctx, cfg.Cache)
	if err != nil {
		return nil, err
	}
	if featureCache != nil {
		opts = append(opts, featurestore.WithFeatureCache(featureCache))
	}

	client, err := featurestore.NewFeatureStoreClient(ctx, cfg.Project, cfg.Region, opts...)
	if err != nil {
		config.CloseFeatureCache(cfg.Cache)
		return nil, err
	}

	return &cachedFeatureStore{FeatureStoreClient: client, cache: cfg.Cache}, nil
}

func main() {
	a := &app{openStore: openFeatureStore}
	if err := newRootCmd(a).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
