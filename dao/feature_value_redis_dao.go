package dao

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	fsredis "github.com/vertex-mlops/vertex-featurestore-go-sdk/datasource/redis"
	"github.com/vertex-mlops/vertex-featurestore-go-sdk/utils"
)

// FeatureValueRedisDao keeps one hash per entity, field name is the feature id.
type FeatureValueRedisDao struct {
	UnimplementedFeatureValueDao
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

func NewFeatureValueRedisDao(config DaoConfig) (*FeatureValueRedisDao, error) {
	r, err := fsredis.GetRedis(config.RedisName)
	if err != nil {
		return nil, err
	}

	return &FeatureValueRedisDao{
		client:    r.Client,
		keyPrefix: config.KeyPrefix,
		ttl:       config.TTL,
	}, nil
}

func (d *FeatureValueRedisDao) key(entityType, entityId string) string {
	return d.keyPrefix + entityKey(entityType, entityId)
}

func (d *FeatureValueRedisDao) GetFeatureValues(ctx context.Context, entityType, entityId string, featureIds []string) (map[string]float64, error) {
	result := make(map[string]float64, len(featureIds))
	if len(featureIds) == 0 {
		return result, nil
	}

	values, err := d.client.HMGet(ctx, d.key(entityType, entityId), featureIds...).Result()
	if err != nil {
		return nil, err
	}
	for i, value := range values {
		if i >= len(featureIds) {
			break
		}
		if f, ok := utils.ToFloat64(value); ok {
			result[featureIds[i]] = f
		}
	}

	return result, nil
}

func (d *FeatureValueRedisDao) PutFeatureValues(ctx context.Context, entityType, entityId string, values map[string]float64) error {
	if len(values) == 0 {
		return nil
	}

	key := d.key(entityType, entityId)
	fields := make(map[string]interface{}, len(values))
	for featureId, value := range values {
		fields[featureId] = utils.FormatFloat(value)
	}

	pipe := d.client.TxPipeline()
	pipe.HSet(ctx, key, fields)
	if d.ttl > 0 {
		pipe.Expire(ctx, key, d.ttl)
	}
	_, err := pipe.Exec(ctx)

	return err
}
