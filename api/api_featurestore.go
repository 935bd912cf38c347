package api

import (
	"context"

	"cloud.google.com/go/aiplatform/apiv1beta1/aiplatformpb"
	"google.golang.org/api/iterator"
)

type FeaturestoreApiService service

/*
FeaturestoreApiService List Featurestores
  - @param ctx context.Context - for authentication, logging, cancellation, deadlines, tracing, etc.
  - @param parent - location path, projects/{project}/locations/{region}

@return all featurestores of the location, every page
*/
func (a *FeaturestoreApiService) ListFeaturestores(ctx context.Context, parent string) ([]*Featurestore, error) {
	var (
		localVarReturnValue []*Featurestore
	)

	it := a.client.admin.ListFeaturestores(ctx, &aiplatformpb.ListFeaturestoresRequest{Parent: parent})
	for {
		featurestore, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		localVarReturnValue = append(localVarReturnValue, featurestoreFromProto(featurestore))
	}

	return localVarReturnValue, nil
}

/*
FeaturestoreApiService Create Featurestore
  - @param ctx context.Context
  - @param request

@return the created featurestore, after the long-running operation finished
*/
func (a *FeaturestoreApiService) CreateFeaturestore(ctx context.Context, request CreateFeaturestoreRequest) (*Featurestore, error) {
	op, err := a.client.admin.CreateFeaturestore(ctx, request.toProto())
	if err != nil {
		return nil, err
	}

	featurestore, err := op.Wait(ctx)
	if err != nil {
		return nil, err
	}

	return featurestoreFromProto(featurestore), nil
}
