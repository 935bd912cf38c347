package featurestore

import (
	"context"

	"github.com/vertex-mlops/vertex-featurestore-go-sdk/api"
)

// The remote services FeatureStoreClient depends on. The api package services
// implement them.

type FeaturestoreAPI interface {
	ListFeaturestores(ctx context.Context, parent string) ([]*api.Featurestore, error)
	CreateFeaturestore(ctx context.Context, request api.CreateFeaturestoreRequest) (*api.Featurestore, error)
}

type EntityTypeAPI interface {
	CreateEntityType(ctx context.Context, request api.CreateEntityTypeRequest) (*api.EntityType, error)
}

type FeatureAPI interface {
	BatchCreateFeatures(ctx context.Context, request api.BatchCreateFeaturesRequest) ([]*api.Feature, error)
	ImportFeatureValues(ctx context.Context, request api.ImportFeatureValuesRequest) (*api.ImportFeatureValuesResponse, error)
}

type OnlineServingAPI interface {
	ReadFeatureValues(ctx context.Context, request api.ReadFeatureValuesRequest) (*api.ReadFeatureValuesResponse, error)
}
