package features

const (
	ShapleyPathCount = 10

	numericModality = "numeric"
	scoresOutput    = "scores"
)

type ExplanationConfig struct {
	Inputs  map[string]InputMetadata  `json:"inputs"`
	Outputs map[string]OutputMetadata `json:"outputs"`
	Params  ExplanationParams         `json:"params"`
}

type InputMetadata struct {
	InputTensorName string `json:"input_tensor_name"`
	Modality        string `json:"modality"`
}

type OutputMetadata struct {
	OutputTensorName string `json:"output_tensor_name"`
}

type ExplanationParams struct {
	SampledShapleyAttribution SampledShapleyAttribution `json:"sampled_shapley_attribution"`
}

type SampledShapleyAttribution struct {
	PathCount int `json:"path_count"`
}

// BuildExplanationConfig describes every feature of featureSpec except the target label
// as a numeric input of a sampled Shapley attribution over the "scores" output.
func BuildExplanationConfig(featureSpec []string) *ExplanationConfig {
	config := &ExplanationConfig{
		Inputs: make(map[string]InputMetadata, len(featureSpec)),
		Outputs: map[string]OutputMetadata{
			scoresOutput: {OutputTensorName: scoresOutput},
		},
		Params: ExplanationParams{
			SampledShapleyAttribution: SampledShapleyAttribution{PathCount: ShapleyPathCount},
		},
	}

	for _, name := range featureSpec {
		if name == TargetFeatureName {
			continue
		}
		config.Inputs[name] = InputMetadata{
			InputTensorName: name,
			Modality:        numericModality,
		}
	}

	return config
}
