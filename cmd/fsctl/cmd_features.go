package main

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vertex-mlops/vertex-featurestore-go-sdk/api"
	"github.com/vertex-mlops/vertex-featurestore-go-sdk/features"
	"google.golang.org/protobuf/encoding/protojson"
)

func newExplainConfigCmd(a *app) *cobra.Command {
	var (
		featureSpec []string
		asProto     bool
	)

	cmd := &cobra.Command{
		Use:   "explain-config",
		Short: "Print the Shapley explanation config for a feature list",
		Long: `Print the Shapley explanation config for a feature list. With --proto the
config is printed as the ExplanationSpec message of a Vertex AI model upload.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config := features.BuildExplanationConfig(featureSpec)
			if !asProto {
				return printJSON(cmd, config)
			}
			b, err := protojson.Marshal(api.ExplanationSpecFromConfig(config))
			if err != nil {
				return err
			}
			// protojson output is not stable, indent it the way printJSON does
			var out bytes.Buffer
			if err := json.Indent(&out, b, "", "  "); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out.String())
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&featureSpec, "features", nil, "Feature names, the target label is left out (required)")
	cmd.Flags().BoolVar(&asProto, "proto", false, "Print the Vertex AI ExplanationSpec as protobuf JSON")
	cmd.MarkFlagRequired("features")

	return cmd
}

func newCategoricalFeaturesCmd(a *app) *cobra.Command {
	var transformed bool

	cmd := &cobra.Command{
		Use:   "categorical-features",
		Short: "List the categorical features of the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := features.CategoricalFeatureNames(a.cfg.Categorical)
			if err != nil {
				return err
			}
			for _, name := range names {
				if transformed {
					name = features.TransformedName(name)
				}
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&transformed, "transformed", false, "Print transformed feature names")

	return cmd
}
