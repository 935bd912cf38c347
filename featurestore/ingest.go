package featurestore

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vertex-mlops/vertex-featurestore-go-sdk/api"
	"github.com/vertex-mlops/vertex-featurestore-go-sdk/constants"
)

// IngestCSV imports the CSV files at gcsUris into entity type entityId. The entity id
// column is named after the entity type and every row shares one feature time.
func (c *FeatureStoreClient) IngestCSV(ctx context.Context, storeId, entityId string, features, gcsUris []string) (*api.ImportFeatureValuesResponse, error) {
	if len(features) == 0 {
		return nil, ErrEmptyFeatureList
	}
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	opId := uuid.NewString()

	c.logf("op_id=%s importing %d files into %s/%s", opId, len(gcsUris), storeId, entityId)
	resp, err := c.featureApi.ImportFeatureValues(ctx, api.ImportFeatureValuesRequest{
		EntityType:    c.entityTypePath(storeId, entityId),
		EntityIdField: entityId,
		GcsUris:       gcsUris,
		FeatureIds:    features,
		FeatureTime:   time.Now().Truncate(time.Second),
		WorkerCount:   constants.Ingestion_Worker_Count,
	})
	if err != nil {
		err = fmt.Errorf("import feature values error, op_id=%s: %w", opId, err)
		c.logError(err)
		return nil, err
	}
	c.invalidateCache(storeId, entityId)

	if resp.InvalidRowCount > 0 {
		c.logError(fmt.Errorf("op_id=%s import %s skipped %d invalid rows", opId, resp.OperationName, resp.InvalidRowCount))
	}
	c.logf("op_id=%s imported %d entities, %d feature values", opId, resp.ImportedEntityCount, resp.ImportedFeatureValueCount)

	return resp, nil
}
