package featurestore

import (
	"context"
	"fmt"
	"sync"

	"github.com/vertex-mlops/vertex-featurestore-go-sdk/api"
	"golang.org/x/sync/errgroup"
)

// ReadFeatures reads the latest values of features for one entity. Features without a
// generate time, never written or unknown, are left out of the result.
func (c *FeatureStoreClient) ReadFeatures(ctx context.Context, storeId, entityId string, features []string, entityValue string) (map[string]float64, error) {
	if len(features) == 0 {
		return nil, ErrEmptyFeatureList
	}
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	cacheEntityType := c.cacheEntityType(storeId, entityId)

	if c.cache != nil {
		cached, err := c.cache.GetFeatureValues(ctx, cacheEntityType, entityValue, features)
		if err != nil {
			c.logError(fmt.Errorf("get cached feature values error, entity=%s/%s: %v", entityId, entityValue, err))
		} else if len(cached) == len(features) {
			return cached, nil
		}
	}

	resp, err := c.readFeatureValues(ctx, api.ReadFeatureValuesRequest{
		EntityType: c.entityTypePath(storeId, entityId),
		EntityId:   entityValue,
		FeatureIds: features,
	})
	if err != nil {
		err = fmt.Errorf("read feature values error, entity=%s/%s: %w", entityId, entityValue, err)
		c.logError(err)
		return nil, err
	}

	requested := make(map[string]struct{}, len(features))
	for _, feature := range features {
		requested[feature] = struct{}{}
	}
	result := make(map[string]float64, len(features))
	for _, value := range resp.Values {
		if _, ok := requested[value.FeatureId]; !ok {
			continue
		}
		if value.HasGenerateTime() {
			result[value.FeatureId] = value.DoubleValue
		}
	}

	if c.cache != nil && len(result) > 0 {
		if err := c.cache.PutFeatureValues(ctx, cacheEntityType, entityValue, result); err != nil {
			c.logError(fmt.Errorf("put cached feature values error, entity=%s/%s: %v", entityId, entityValue, err))
		}
	}

	return result, nil
}

func (c *FeatureStoreClient) readFeatureValues(ctx context.Context, request api.ReadFeatureValuesRequest) (*api.ReadFeatureValuesResponse, error) {
	if c.breaker == nil {
		return c.onlineServingApi.ReadFeatureValues(ctx, request)
	}

	resp, err := c.breaker.Execute(func() (interface{}, error) {
		return c.onlineServingApi.ReadFeatureValues(ctx, request)
	})
	if err != nil {
		return nil, err
	}
	return resp.(*api.ReadFeatureValuesResponse), nil
}

// ReadFeaturesBatch reads features for every entity value with at most parallelism
// reads in flight. The first error cancels the remaining reads.
func (c *FeatureStoreClient) ReadFeaturesBatch(ctx context.Context, storeId, entityId string, features, entityValues []string, parallelism int) (map[string]map[string]float64, error) {
	if parallelism <= 0 {
		parallelism = 1
	}

	var (
		mu     sync.Mutex
		result = make(map[string]map[string]float64, len(entityValues))
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(parallelism)
	for _, entityValue := range entityValues {
		entityValue := entityValue
		eg.Go(func() error {
			values, err := c.ReadFeatures(egCtx, storeId, entityId, features, entityValue)
			if err != nil {
				return err
			}
			mu.Lock()
			result[entityValue] = values
			mu.Unlock()
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return result, nil
}
