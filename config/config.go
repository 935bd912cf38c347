package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/vertex-mlops/vertex-featurestore-go-sdk/constants"
	"github.com/vertex-mlops/vertex-featurestore-go-sdk/features"
	"gopkg.in/yaml.v3"
)

const (
	EnvProject  = "VERTEXFS_PROJECT"
	EnvRegion   = "VERTEXFS_REGION"
	EnvStoreId  = "VERTEXFS_STORE_ID"
	EnvCacheDSN = "VERTEXFS_CACHE_DSN"
)

type Config struct {
	Project  string `yaml:"project"`
	Region   string `yaml:"region"`
	StoreId  string `yaml:"store_id"`
	Endpoint string `yaml:"endpoint,omitempty"`
	// Timeout per operation as a duration string, empty or "0" means none
	Timeout string `yaml:"timeout,omitempty"`

	Cache          CacheConfig                 `yaml:"cache"`
	CircuitBreaker CircuitBreakerConfig        `yaml:"circuit_breaker"`
	Serving        ServingConfig               `yaml:"serving"`
	Categorical    *features.CategoricalConfig `yaml:"categorical,omitempty"`
}

// CacheConfig selects the feature value cache in front of online reads. An empty Type
// disables it.
type CacheConfig struct {
	Type string `yaml:"type"`
	// DSN is a redis URL, a database DSN or the tablestore endpoint
	DSN       string `yaml:"dsn"`
	TableName string `yaml:"table_name,omitempty"`
	KeyPrefix string `yaml:"key_prefix,omitempty"`
	TTL       string `yaml:"ttl,omitempty"`

	// tablestore
	InstanceName    string `yaml:"instance_name,omitempty"`
	AccessKeyId     string `yaml:"access_key_id,omitempty"`
	AccessKeySecret string `yaml:"access_key_secret,omitempty"`
}

type CircuitBreakerConfig struct {
	Enabled     bool   `yaml:"enabled"`
	MaxFailures uint32 `yaml:"max_failures"`
	Timeout     string `yaml:"timeout"`
}

type ServingConfig struct {
	Listen    string  `yaml:"listen"`
	RateLimit float64 `yaml:"rate_limit"`
	Burst     int     `yaml:"burst"`
}

func DefaultConfig() *Config {
	return &Config{
		Region: "us-central1",
		CircuitBreaker: CircuitBreakerConfig{
			MaxFailures: 5,
			Timeout:     "30s",
		},
		Serving: ServingConfig{
			Listen:    ":8080",
			RateLimit: 100,
			Burst:     200,
		},
	}
}

// LoadConfig reads the YAML file at path over the defaults, then applies environment
// overrides. An empty path or a missing file yields defaults plus environment.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

func Unmarshal(conf []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(conf, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(EnvProject); v != "" {
		c.Project = v
	}
	if v := os.Getenv(EnvRegion); v != "" {
		c.Region = v
	}
	if v := os.Getenv(EnvStoreId); v != "" {
		c.StoreId = v
	}
	if v := os.Getenv(EnvCacheDSN); v != "" {
		c.Cache.DSN = v
	}
}

func (c *Config) GetTimeout() time.Duration {
	return parseDuration(c.Timeout, 0)
}

func (c *CacheConfig) GetTTL() time.Duration {
	return parseDuration(c.TTL, 0)
}

func (c *CircuitBreakerConfig) GetTimeout() time.Duration {
	return parseDuration(c.Timeout, 30*time.Second)
}

func parseDuration(s string, defaultVal time.Duration) time.Duration {
	if s == "" || s == "0" {
		return defaultVal
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return defaultVal
	}
	return d
}

var ValidCacheTypes = []string{
	constants.Datasource_Type_Redis,
	constants.Datasource_Type_MySQL,
	constants.Datasource_Type_Postgres,
	constants.Datasource_Type_SQLite,
	constants.Datasource_Type_TableStore,
}

func (c *Config) Validate() error {
	var errs []error
	if c.Project == "" {
		errs = append(errs, fmt.Errorf("project not configured (set %s)", EnvProject))
	}
	if c.Region == "" {
		errs = append(errs, fmt.Errorf("region not configured (set %s)", EnvRegion))
	}
	for _, d := range []string{c.Timeout, c.Cache.TTL, c.CircuitBreaker.Timeout} {
		if d == "" || d == "0" {
			continue
		}
		if _, err := time.ParseDuration(d); err != nil {
			errs = append(errs, fmt.Errorf("invalid duration %q: %w", d, err))
		}
	}
	if c.Cache.Type != "" {
		valid := false
		for _, t := range ValidCacheTypes {
			if c.Cache.Type == t {
				valid = true
				break
			}
		}
		if !valid {
			errs = append(errs, fmt.Errorf("invalid cache type: %s (valid: %v)", c.Cache.Type, ValidCacheTypes))
		} else if c.Cache.DSN == "" {
			errs = append(errs, fmt.Errorf("cache dsn not configured (set %s)", EnvCacheDSN))
		}
	}
	if c.Serving.RateLimit <= 0 || c.Serving.Burst <= 0 {
		errs = append(errs, errors.New("serving rate_limit and burst must be positive"))
	}
	if c.Categorical != nil {
		if err := c.Categorical.Validate(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
