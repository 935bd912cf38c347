package api

import (
	"context"
	"errors"

	aiplatform "cloud.google.com/go/aiplatform/apiv1beta1"
	"google.golang.org/api/option"
)

type service struct {
	client *APIClient
}

// APIClient holds one admin and one online serving client for a region. Both are
// safe for concurrent use and must be released with Close.
type APIClient struct {
	cfg *Configuration

	admin   *aiplatform.FeaturestoreClient
	serving *aiplatform.FeaturestoreOnlineServingClient

	common service

	FeaturestoreApi  *FeaturestoreApiService
	EntityTypeApi    *EntityTypeApiService
	FeatureApi       *FeatureApiService
	OnlineServingApi *OnlineServingApiService
}

func NewAPIClient(ctx context.Context, cfg *Configuration, opts ...option.ClientOption) (*APIClient, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	clientOpts := append([]option.ClientOption{
		option.WithEndpoint(cfg.dialAddress()),
		option.WithUserAgent(cfg.UserAgent),
	}, opts...)

	admin, err := aiplatform.NewFeaturestoreClient(ctx, clientOpts...)
	if err != nil {
		return nil, err
	}
	serving, err := aiplatform.NewFeaturestoreOnlineServingClient(ctx, clientOpts...)
	if err != nil {
		admin.Close()
		return nil, err
	}

	c := &APIClient{
		cfg:     cfg,
		admin:   admin,
		serving: serving,
	}
	c.common.client = c

	c.FeaturestoreApi = (*FeaturestoreApiService)(&c.common)
	c.EntityTypeApi = (*EntityTypeApiService)(&c.common)
	c.FeatureApi = (*FeatureApiService)(&c.common)
	c.OnlineServingApi = (*OnlineServingApiService)(&c.common)

	return c, nil
}

func (c *APIClient) GetConfig() *Configuration {
	return c.cfg
}

func (c *APIClient) Close() error {
	return errors.Join(c.admin.Close(), c.serving.Close())
}
