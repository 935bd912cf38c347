package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/sony/gobreaker"
	"github.com/vertex-mlops/vertex-featurestore-go-sdk/constants"
	"github.com/vertex-mlops/vertex-featurestore-go-sdk/dao"
	fsredis "github.com/vertex-mlops/vertex-featurestore-go-sdk/datasource/redis"
	"github.com/vertex-mlops/vertex-featurestore-go-sdk/datasource/sqldb"
	fstablestore "github.com/vertex-mlops/vertex-featurestore-go-sdk/datasource/tablestore"
)

const cacheDatasourceName = "feature_cache"

// OpenFeatureCache registers the configured cache datasource and returns a dao over it.
// It returns nil, nil when no cache is configured.
func OpenFeatureCache(ctx context.Context, c CacheConfig) (dao.FeatureValueDao, error) {
	daoConfig := dao.DaoConfig{
		DatasourceType: c.Type,
		TTL:            c.GetTTL(),
	}

	switch c.Type {
	case "":
		return nil, nil
	case constants.Datasource_Type_Redis:
		opts, err := redis.ParseURL(c.DSN)
		if err != nil {
			return nil, fmt.Errorf("parse redis dsn: %w", err)
		}
		if err := fsredis.RegisterRedis(ctx, cacheDatasourceName, opts); err != nil {
			return nil, err
		}
		daoConfig.RedisName = cacheDatasourceName
		daoConfig.KeyPrefix = c.KeyPrefix
	case constants.Datasource_Type_MySQL, constants.Datasource_Type_Postgres, constants.Datasource_Type_SQLite:
		if err := sqldb.RegisterDB(cacheDatasourceName, c.Type, c.DSN); err != nil {
			return nil, err
		}
		daoConfig.SQLName = cacheDatasourceName
		daoConfig.SQLTableName = c.TableName
	case constants.Datasource_Type_TableStore:
		if c.InstanceName == "" || c.TableName == "" {
			return nil, errors.New("tablestore cache needs instance_name and table_name")
		}
		client := fstablestore.NewClient(c.DSN, c.InstanceName, c.AccessKeyId, c.AccessKeySecret)
		fstablestore.RegisterTableStoreClient(cacheDatasourceName, client)
		daoConfig.TableStoreName = cacheDatasourceName
		daoConfig.TableStoreTableName = c.TableName
	default:
		return nil, fmt.Errorf("invalid cache type: %s", c.Type)
	}

	featureCache, err := dao.NewFeatureValueDao(daoConfig)
	if err != nil {
		return nil, err
	}
	if sqlDao, ok := featureCache.(*dao.FeatureValueSQLDao); ok {
		if err := sqlDao.CreateTable(ctx); err != nil {
			return nil, fmt.Errorf("create cache table: %w", err)
		}
	}

	return featureCache, nil
}

// CloseFeatureCache releases the connections opened by OpenFeatureCache.
func CloseFeatureCache(c CacheConfig) {
	switch c.Type {
	case constants.Datasource_Type_Redis:
		fsredis.RemoveRedis(cacheDatasourceName)
	case constants.Datasource_Type_MySQL, constants.Datasource_Type_Postgres, constants.Datasource_Type_SQLite:
		sqldb.RemoveDB(cacheDatasourceName)
	case constants.Datasource_Type_TableStore:
		fstablestore.RemoveTableStoreClient(cacheDatasourceName)
	}
}

func (c *CircuitBreakerConfig) Settings() gobreaker.Settings {
	maxFailures := c.MaxFailures
	if maxFailures == 0 {
		maxFailures = 5
	}
	return gobreaker.Settings{
		Name:    "online-serving",
		Timeout: c.GetTimeout(),
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
	}
}
