package model

const (
	HiddenUnitsKey  = "hidden_units"
	LearningRateKey = "learning_rate"
	BatchSizeKey    = "batch_size"
	NumEpochsKey    = "num_epochs"
)

// DefaultHyperparams returns a fresh copy of the training defaults.
func DefaultHyperparams() map[string]interface{} {
	return map[string]interface{}{
		HiddenUnitsKey:  []int{64, 32},
		LearningRateKey: 0.0001,
		BatchSizeKey:    512,
		NumEpochsKey:    10,
	}
}

// UpdateHyperparams fills the keys missing from hyperparams with defaults. Values already
// set are kept. A nil map yields the defaults.
func UpdateHyperparams(hyperparams map[string]interface{}) map[string]interface{} {
	if hyperparams == nil {
		hyperparams = make(map[string]interface{})
	}
	for key, value := range DefaultHyperparams() {
		if _, ok := hyperparams[key]; !ok {
			hyperparams[key] = value
		}
	}
	return hyperparams
}
