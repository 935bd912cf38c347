package dao

import (
	"context"
	"fmt"

	"github.com/vertex-mlops/vertex-featurestore-go-sdk/constants"
)

// FeatureValueDao caches the latest double value of entity features in front of online
// serving. GetFeatureValues returns only the features it holds.
type FeatureValueDao interface {
	GetFeatureValues(ctx context.Context, entityType, entityId string, featureIds []string) (map[string]float64, error)
	PutFeatureValues(ctx context.Context, entityType, entityId string, values map[string]float64) error
}

type UnimplementedFeatureValueDao struct {
}

func (d *UnimplementedFeatureValueDao) GetFeatureValues(ctx context.Context, entityType, entityId string, featureIds []string) (map[string]float64, error) {
	return nil, nil
}
func (d *UnimplementedFeatureValueDao) PutFeatureValues(ctx context.Context, entityType, entityId string, values map[string]float64) error {
	return nil
}

func NewFeatureValueDao(config DaoConfig) (FeatureValueDao, error) {
	switch config.DatasourceType {
	case constants.Datasource_Type_Redis:
		return NewFeatureValueRedisDao(config)
	case constants.Datasource_Type_MySQL, constants.Datasource_Type_Postgres, constants.Datasource_Type_SQLite:
		return NewFeatureValueSQLDao(config)
	case constants.Datasource_Type_TableStore:
		return NewFeatureValueTableStoreDao(config)
	}

	return nil, fmt.Errorf("not found FeatureValueDao implement, datasource type:%s", config.DatasourceType)
}

func entityKey(entityType, entityId string) string {
	return entityType + ":" + entityId
}
