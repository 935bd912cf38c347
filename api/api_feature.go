package api

import (
	"context"
)

type FeatureApiService service

/*
FeatureApiService Batch Create Features
  - @param ctx context.Context
  - @param request - features created under request.Parent

@return the created features
*/
func (a *FeatureApiService) BatchCreateFeatures(ctx context.Context, request BatchCreateFeaturesRequest) ([]*Feature, error) {
	var (
		localVarReturnValue []*Feature
	)

	op, err := a.client.admin.BatchCreateFeatures(ctx, request.toProto())
	if err != nil {
		return nil, err
	}

	response, err := op.Wait(ctx)
	if err != nil {
		return nil, err
	}

	for _, feature := range response.GetFeatures() {
		localVarReturnValue = append(localVarReturnValue, featureFromProto(feature))
	}

	return localVarReturnValue, nil
}

/*
FeatureApiService Import Feature Values
  - @param ctx context.Context
  - @param request

@return counts reported by the ingestion job. Row level failures are only visible as InvalidRowCount.
*/
func (a *FeatureApiService) ImportFeatureValues(ctx context.Context, request ImportFeatureValuesRequest) (*ImportFeatureValuesResponse, error) {
	op, err := a.client.admin.ImportFeatureValues(ctx, request.toProto())
	if err != nil {
		return nil, err
	}

	response, err := op.Wait(ctx)
	if err != nil {
		return nil, err
	}

	return importFeatureValuesResponseFromProto(op.Name(), response), nil
}
