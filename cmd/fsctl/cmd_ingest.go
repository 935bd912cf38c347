package main

import (
	"context"

	"github.com/spf13/cobra"
)

func newIngestCmd(a *app) *cobra.Command {
	var (
		features []string
		uris     []string
	)

	cmd := &cobra.Command{
		Use:     "ingest ENTITY_TYPE",
		Short:   "Import CSV files from object storage into an entity type",
		Example: `  fsctl ingest users --features V1,V2 --uri gs://bucket/users.csv`,
		Args:    cobra.ExactArgs(1),
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

			resp, err := store.IngestCSV(ctx, a.cfg.StoreId, args[0], features, uris)
			if err != nil {
				return err
			}
			return printJSON(cmd, resp)
		},
	}
	cmd.Flags().StringSliceVar(&features, "features", nil, "Feature ids, one CSV column each (required)")
	cmd.Flags().StringSliceVar(&uris, "uri", nil, "CSV file URIs (required)")
	cmd.MarkFlagRequired("features")
	cmd.MarkFlagRequired("uri")

	return cmd
}
