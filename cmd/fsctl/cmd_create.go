package main

import (
	"context"
	"fmt"

	"github.com/antihax/optional"
	"github.com/spf13/cobra"
	"github.com/vertex-mlops/vertex-featurestore-go-sdk/featurestore"
	"go.uber.org/zap"
)

func newCreateStoreCmd(a *app) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "create-store",
		Short: "Create the featurestore unless it already exists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			store, err := a.connect(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			opts := &featurestore.CreateStoreOpts{}
			if name != "" {
				opts.StoreName = optional.NewString(name)
			}
			result, err := store.CreateStore(ctx, a.cfg.StoreId, opts)
			if err != nil {
				return err
			}

			a.logger.Info("create-store finished",
				zap.String("outcome", result.Outcome.String()),
				zap.String("featurestore", result.Featurestore.Name))
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", result.Outcome, result.Featurestore.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Featurestore resource name (default: derived from --store)")

	return cmd
}

func newCreateEntityCmd(a *app) *cobra.Command {
	var (
		description   string
		features      []string
		featuresDescr []string
	)

	cmd := &cobra.Command{
		Use:   "create-entity ENTITY_TYPE",
		Short: "Create an entity type with one double feature per --features entry",
		Example: `  fsctl create-entity users --features V1,V2,Amount
  fsctl create-entity users --features V1,V2 --descriptions "first,second"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			store, err := a.connect(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			opts := &featurestore.CreateEntityOpts{}
			if cmd.Flags().Changed("descriptions") {
				opts.FeaturesDescr = optional.NewInterface(featuresDescr)
			}
			result, err := store.CreateEntity(ctx, a.cfg.StoreId, args[0], description, features, opts)
			if result.Outcome == featurestore.OutcomeValidationFailed {
				return fmt.Errorf("%s: %w", result.Outcome, err)
			}
			if err != nil {
				return err
			}

			a.logger.Info("create-entity finished",
				zap.String("outcome", result.Outcome.String()),
				zap.String("entity_type", result.EntityType.Name),
				zap.Int("features", len(result.Features)))
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", result.Outcome, result.EntityType.Name)
			for _, feature := range result.Features {
				fmt.Fprintln(cmd.OutOrStdout(), feature.Name)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&description, "description", "", "Entity type description")
	cmd.Flags().StringSliceVar(&features, "features", nil, "Feature ids (required)")
	cmd.Flags().StringSliceVar(&featuresDescr, "descriptions", nil, "One description per feature (default: the feature ids)")
	cmd.MarkFlagRequired("features")

	return cmd
}
