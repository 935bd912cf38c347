package dao

import (
	"context"
	"errors"
	"time"

	"github.com/aliyun/aliyun-tablestore-go-sdk/tablestore"
	fstablestore "github.com/vertex-mlops/vertex-featurestore-go-sdk/datasource/tablestore"
	"github.com/vertex-mlops/vertex-featurestore-go-sdk/utils"
)

// FeatureValueTableStoreDao keeps one row per entity, one attribute column per feature.
type FeatureValueTableStoreDao struct {
	UnimplementedFeatureValueDao
	tablestoreClient *tablestore.TableStoreClient
	table            string
	primaryKeyField  string
	// columns written more than ttl ago are not returned
	ttl time.Duration
	now func() time.Time
}

func NewFeatureValueTableStoreDao(config DaoConfig) (*FeatureValueTableStoreDao, error) {
	client, err := fstablestore.GetTableStoreClient(config.TableStoreName)
	if err != nil {
		return nil, err
	}
	primaryKeyField := config.PrimaryKeyField
	if primaryKeyField == "" {
		primaryKeyField = "entity_key"
	}

	return &FeatureValueTableStoreDao{
		tablestoreClient: client.GetClient(),
		table:            config.TableStoreTableName,
		primaryKeyField:  primaryKeyField,
		ttl:              config.TTL,
		now:              time.Now,
	}, nil
}

func (d *FeatureValueTableStoreDao) primaryKey(entityType, entityId string) *tablestore.PrimaryKey {
	pk := new(tablestore.PrimaryKey)
	pk.AddPrimaryKeyColumn(d.primaryKeyField, entityKey(entityType, entityId))
	return pk
}

func (d *FeatureValueTableStoreDao) GetFeatureValues(ctx context.Context, entityType, entityId string, featureIds []string) (map[string]float64, error) {
	result := make(map[string]float64, len(featureIds))
	if len(featureIds) == 0 {
		return result, nil
	}

	criteria := new(tablestore.SingleRowQueryCriteria)
	criteria.TableName = d.table
	criteria.PrimaryKey = d.primaryKey(entityType, entityId)
	criteria.MaxVersion = 1
	criteria.ColumnsToGet = featureIds
	criteria.TimeRange = d.timeRange()

	getRowRequest := new(tablestore.GetRowRequest)
	getRowRequest.SingleRowQueryCriteria = criteria
	getResp, err := d.tablestoreClient.GetRow(getRowRequest)
	if err != nil {
		return nil, err
	}

	for _, column := range getResp.Columns {
		if f, ok := utils.ToFloat64(column.Value); ok {
			result[column.ColumnName] = f
		}
	}

	return result, nil
}

// timeRange selects column versions written within ttl, in milliseconds.
func (d *FeatureValueTableStoreDao) timeRange() *tablestore.TimeRange {
	if d.ttl <= 0 {
		return nil
	}
	currTime := d.now().UnixMilli()
	timeRange := new(tablestore.TimeRange)
	timeRange.Start = currTime - d.ttl.Milliseconds()
	timeRange.End = currTime + 1
	return timeRange
}

func (d *FeatureValueTableStoreDao) PutFeatureValues(ctx context.Context, entityType, entityId string, values map[string]float64) error {
	if len(values) == 0 {
		return nil
	}
	if d.table == "" {
		return errors.New("tablestore table name is empty")
	}

	putRowChange := new(tablestore.PutRowChange)
	putRowChange.TableName = d.table
	putRowChange.PrimaryKey = d.primaryKey(entityType, entityId)
	for featureId, value := range values {
		putRowChange.AddColumn(featureId, value)
	}
	putRowChange.SetCondition(tablestore.RowExistenceExpectation_IGNORE)

	putRowRequest := new(tablestore.PutRowRequest)
	putRowRequest.PutRowChange = putRowChange
	_, err := d.tablestoreClient.PutRow(putRowRequest)

	return err
}
