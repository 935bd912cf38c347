package features

import (
	"errors"
	"fmt"
)

var ErrCategoricalConfigUnset = errors.New("categorical feature config is not set")

type EmbeddingFeature struct {
	Name      string `yaml:"name" json:"name"`
	Dimension int    `yaml:"dimension" json:"dimension"`
}

// CategoricalConfig lists the categorical features of a model. Embedding features keep
// their configured order.
type CategoricalConfig struct {
	EmbeddingFeatures     []EmbeddingFeature `yaml:"embedding_features" json:"embedding_features"`
	OneHotFeatureNames    []string           `yaml:"onehot_features" json:"onehot_features"`
	NumericalFeatureNames []string           `yaml:"numerical_features,omitempty" json:"numerical_features,omitempty"`
}

func (c *CategoricalConfig) isEmpty() bool {
	return c == nil || (len(c.EmbeddingFeatures) == 0 && len(c.OneHotFeatureNames) == 0)
}

// Validate check the CategoricalConfig value
func (c *CategoricalConfig) Validate() error {
	if c.isEmpty() {
		return ErrCategoricalConfigUnset
	}

	seen := make(map[string]struct{})
	check := func(name string) error {
		if name == "" {
			return errors.New("categorical feature name is empty")
		}
		if _, ok := seen[name]; ok {
			return fmt.Errorf("duplicate categorical feature: %s", name)
		}
		seen[name] = struct{}{}
		return nil
	}

	for _, f := range c.EmbeddingFeatures {
		if err := check(f.Name); err != nil {
			return err
		}
		if f.Dimension <= 0 {
			return fmt.Errorf("embedding feature %s has invalid dimension %d", f.Name, f.Dimension)
		}
	}
	for _, name := range c.OneHotFeatureNames {
		if err := check(name); err != nil {
			return err
		}
	}

	return nil
}

// EmbeddingDimensions returns feature name : embedding dimension
func (c *CategoricalConfig) EmbeddingDimensions() map[string]int {
	dims := make(map[string]int, len(c.EmbeddingFeatures))
	for _, f := range c.EmbeddingFeatures {
		dims[f.Name] = f.Dimension
	}
	return dims
}

// CategoricalFeatureNames returns the embedding feature names followed by the one-hot
// feature names.
func CategoricalFeatureNames(cfg *CategoricalConfig) ([]string, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(cfg.EmbeddingFeatures)+len(cfg.OneHotFeatureNames))
	for _, f := range cfg.EmbeddingFeatures {
		names = append(names, f.Name)
	}
	names = append(names, cfg.OneHotFeatureNames...)

	return names, nil
}
