package api

import (
	"context"
)

type EntityTypeApiService service

/*
EntityTypeApiService Create EntityType
  - @param ctx context.Context
  - @param request

@return the created entity type, after the long-running operation finished
*/
func (a *EntityTypeApiService) CreateEntityType(ctx context.Context, request CreateEntityTypeRequest) (*EntityType, error) {
	op, err := a.client.admin.CreateEntityType(ctx, request.toProto())
	if err != nil {
		return nil, err
	}

	entityType, err := op.Wait(ctx)
	if err != nil {
		return nil, err
	}

	return entityTypeFromProto(entityType), nil
}
