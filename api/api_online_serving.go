package api

import (
	"context"
)

type OnlineServingApiService service

/*
OnlineServingApiService Read Feature Values
  - @param ctx context.Context
  - @param request - one entity, features selected by id

@return the entity view, one value per returned feature
*/
func (a *OnlineServingApiService) ReadFeatureValues(ctx context.Context, request ReadFeatureValuesRequest) (*ReadFeatureValuesResponse, error) {
	response, err := a.client.serving.ReadFeatureValues(ctx, request.toProto())
	if err != nil {
		return nil, err
	}

	return readFeatureValuesResponseFromProto(request.FeatureIds, response), nil
}
