package featurestore

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/vertex-mlops/vertex-featurestore-go-sdk/api"
	"github.com/vertex-mlops/vertex-featurestore-go-sdk/constants"
	"github.com/vertex-mlops/vertex-featurestore-go-sdk/domain"
)

func defaultMonitoringConfig() *api.MonitoringConfig {
	return &api.MonitoringConfig{
		SnapshotAnalysisInterval: constants.Snapshot_Analysis_Interval,
	}
}

// CreateEntity creates entity type entityId in featurestore storeId and one double
// feature per id. Features and descriptions of different length fail validation before
// any remote call.
func (c *FeatureStoreClient) CreateEntity(ctx context.Context, storeId, entityId, entityDescr string, features []string, opts *CreateEntityOpts) (CreateEntityResult, error) {
	opId := uuid.NewString()

	featuresDescr := features
	if opts != nil && opts.FeaturesDescr.IsSet() {
		descr, ok := opts.FeaturesDescr.Value().([]string)
		if !ok {
			err := fmt.Errorf("op_id=%s feature descriptions must be []string, got %T: %w", opId, opts.FeaturesDescr.Value(), ErrFeatureDescriptionMismatch)
			c.logError(err)
			return CreateEntityResult{Outcome: OutcomeValidationFailed}, err
		}
		featuresDescr = descr
	}

	if len(features) != len(featuresDescr) {
		err := fmt.Errorf("op_id=%s %d features, %d descriptions: %w", opId, len(features), len(featuresDescr), ErrFeatureDescriptionMismatch)
		c.logError(err)
		return CreateEntityResult{Outcome: OutcomeValidationFailed}, err
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	c.logf("op_id=%s creating entity type %s in featurestore %s", opId, entityId, storeId)
	entityType, err := c.entityTypeApi.CreateEntityType(ctx, api.CreateEntityTypeRequest{
		Parent:           c.featurestorePath(storeId),
		EntityTypeId:     entityId,
		Description:      entityDescr,
		MonitoringConfig: defaultMonitoringConfig(),
	})
	if err != nil {
		err = fmt.Errorf("create entity type error, op_id=%s: %w", opId, err)
		c.logError(err)
		return CreateEntityResult{}, err
	}

	requests := make([]*api.Feature, 0, len(features))
	for i, id := range features {
		requests = append(requests, &api.Feature{
			FeatureId:        id,
			Description:      featuresDescr[i],
			ValueType:        constants.Feature_Value_Type,
			MonitoringConfig: defaultMonitoringConfig(),
		})
	}

	created, err := c.featureApi.BatchCreateFeatures(ctx, api.BatchCreateFeaturesRequest{
		Parent:   c.entityTypePath(storeId, entityId),
		Features: requests,
	})
	if err != nil {
		err = fmt.Errorf("batch create features error, op_id=%s: %w", opId, err)
		c.logError(err)
		return CreateEntityResult{}, err
	}

	store := c.putFeaturestore(&api.Featurestore{Name: c.featurestorePath(storeId)})
	store.AddEntityType(domain.NewEntityType(entityType, created))
	c.logf("op_id=%s entity type %s created with %d features", opId, entityType.Name, len(created))

	return CreateEntityResult{Outcome: OutcomeCreated, EntityType: entityType, Features: created}, nil
}
