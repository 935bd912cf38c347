package featurestore

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/vertex-mlops/vertex-featurestore-go-sdk/api"
	"github.com/vertex-mlops/vertex-featurestore-go-sdk/constants"
	"github.com/vertex-mlops/vertex-featurestore-go-sdk/domain"
)

// CreateStore creates featurestore storeId unless one with that id already exists in
// the location. The create call waits for the long-running operation.
func (c *FeatureStoreClient) CreateStore(ctx context.Context, storeId string, opts *CreateStoreOpts) (CreateStoreResult, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	opId := uuid.NewString()

	stores, err := c.featurestoreApi.ListFeaturestores(ctx, c.locationPath())
	if err != nil {
		err = fmt.Errorf("list featurestores error, op_id=%s: %w", opId, err)
		c.logError(err)
		return CreateStoreResult{}, err
	}

	if existing := domain.FindFeaturestore(stores, storeId); existing != nil {
		c.putFeaturestore(existing.Featurestore)
		c.logf("op_id=%s featurestore %s already exists", opId, existing.Name)
		return CreateStoreResult{Outcome: OutcomeAlreadyExists, Featurestore: existing.Featurestore}, nil
	}

	name := c.featurestorePath(storeId)
	if opts != nil && opts.StoreName.IsSet() {
		name = opts.StoreName.Value()
	}

	c.logf("op_id=%s creating featurestore %s", opId, storeId)
	created, err := c.featurestoreApi.CreateFeaturestore(ctx, api.CreateFeaturestoreRequest{
		Parent:                 c.locationPath(),
		FeaturestoreId:         storeId,
		Name:                   name,
		OnlineServingNodeCount: constants.Online_Serving_Node_Count,
	})
	if err != nil {
		err = fmt.Errorf("create featurestore error, op_id=%s: %w", opId, err)
		c.logError(err)
		return CreateStoreResult{}, err
	}

	c.putFeaturestore(created)
	c.logf("op_id=%s featurestore created: %s", opId, created.Name)

	return CreateStoreResult{Outcome: OutcomeCreated, Featurestore: created}, nil
}
