package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vertex-mlops/vertex-featurestore-go-sdk/features"
)

var errFilterNotMatched = errors.New("feature values do not match --where")

func newReadCmd(a *app) *cobra.Command {
	var (
		featureIds  []string
		where       string
		parallelism int
	)

	cmd := &cobra.Command{
		Use:   "read ENTITY_TYPE ENTITY_ID...",
		Short: "Read the latest feature values of entities",
		Long: `Read the latest feature values of one or more entities. Features never
written for an entity are left out of the output. Several entity ids are read
concurrently and printed keyed by entity id.

With --where only entities whose values hold the expression are printed, the
command fails when none does. Only the requested features can appear in the
expression.`,
		Example: `  fsctl read users u1 --features V1,Amount
  fsctl read users u1 --features V1,Amount --where "Amount > 100 && V1 < 0"
  fsctl read users u1 u2 u3 --features V1,Amount --parallelism 2`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var filter *features.Filter
			if where != "" {
				f, err := features.CompileFilter(where, featureIds)
				if err != nil {
					return err
				}
				filter = f
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			store, err := a.connect(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			entityIds := args[1:]
			if len(entityIds) == 1 {
				values, err := store.ReadFeatures(ctx, a.cfg.StoreId, args[0], featureIds, entityIds[0])
				if err != nil {
					return err
				}
				if filter != nil {
					ok, err := filter.Match(values)
					if err != nil {
						return err
					}
					if !ok {
						return fmt.Errorf("%w: %s", errFilterNotMatched, filter)
					}
				}
				return printJSON(cmd, values)
			}

			result, err := store.ReadFeaturesBatch(ctx, a.cfg.StoreId, args[0], featureIds, entityIds, parallelism)
			if err != nil {
				return err
			}
			if filter != nil {
				for entityId, values := range result {
					ok, err := filter.Match(values)
					if err != nil {
						return err
					}
					if !ok {
						delete(result, entityId)
					}
				}
				if len(result) == 0 {
					return fmt.Errorf("%w: %s", errFilterNotMatched, filter)
				}
			}
			return printJSON(cmd, result)
		},
	}
	cmd.Flags().StringSliceVar(&featureIds, "features", nil, "Feature ids (required)")
	cmd.Flags().StringVar(&where, "where", "", "Boolean expression over the feature values")
	cmd.Flags().IntVar(&parallelism, "parallelism", 4, "Concurrent reads when several entity ids are given")
	cmd.MarkFlagRequired("features")

	return cmd
}
