package api

import (
	"cloud.google.com/go/aiplatform/apiv1beta1/aiplatformpb"
	"github.com/vertex-mlops/vertex-featurestore-go-sdk/features"
)

// ExplanationSpecFromConfig converts an explanation config to the spec attached to a
// model upload.
func ExplanationSpecFromConfig(config *features.ExplanationConfig) *aiplatformpb.ExplanationSpec {
	metadata := &aiplatformpb.ExplanationMetadata{
		Inputs:  make(map[string]*aiplatformpb.ExplanationMetadata_InputMetadata, len(config.Inputs)),
		Outputs: make(map[string]*aiplatformpb.ExplanationMetadata_OutputMetadata, len(config.Outputs)),
	}
	for name, input := range config.Inputs {
		metadata.Inputs[name] = &aiplatformpb.ExplanationMetadata_InputMetadata{
			InputTensorName: input.InputTensorName,
			Modality:        input.Modality,
		}
	}
	for name, output := range config.Outputs {
		metadata.Outputs[name] = &aiplatformpb.ExplanationMetadata_OutputMetadata{
			OutputTensorName: output.OutputTensorName,
		}
	}

	return &aiplatformpb.ExplanationSpec{
		Parameters: &aiplatformpb.ExplanationParameters{
			Method: &aiplatformpb.ExplanationParameters_SampledShapleyAttribution{
				SampledShapleyAttribution: &aiplatformpb.SampledShapleyAttribution{
					PathCount: int32(config.Params.SampledShapleyAttribution.PathCount),
				},
			},
		},
		Metadata: metadata,
	}
}
