package api

import (
	"time"

	"cloud.google.com/go/aiplatform/apiv1beta1/aiplatformpb"
)

type ReadFeatureValuesRequest struct {
	EntityType string
	EntityId   string
	FeatureIds []string
}

func (r *ReadFeatureValuesRequest) toProto() *aiplatformpb.ReadFeatureValuesRequest {
	return &aiplatformpb.ReadFeatureValuesRequest{
		EntityType: r.EntityType,
		EntityId:   r.EntityId,
		FeatureSelector: &aiplatformpb.FeatureSelector{
			IdMatcher: &aiplatformpb.IdMatcher{Ids: r.FeatureIds},
		},
	}
}

// FeatureValue is one feature of an entity view. GenerateTime is zero when the
// feature was never written for the entity.
type FeatureValue struct {
	FeatureId    string    `json:"feature_id"`
	DoubleValue  float64   `json:"double_value"`
	GenerateTime time.Time `json:"generate_time"`
}

func (v *FeatureValue) HasGenerateTime() bool {
	return !v.GenerateTime.IsZero()
}

type ReadFeatureValuesResponse struct {
	EntityType string          `json:"entity_type"`
	EntityId   string          `json:"entity_id"`
	Values     []*FeatureValue `json:"values"`
}

// readFeatureValuesResponseFromProto pairs each entity view value with the header's
// feature descriptor at the same position, falling back to the requested ids.
func readFeatureValuesResponseFromProto(requested []string, pb *aiplatformpb.ReadFeatureValuesResponse) *ReadFeatureValuesResponse {
	response := &ReadFeatureValuesResponse{
		EntityType: pb.GetHeader().GetEntityType(),
		EntityId:   pb.GetEntityView().GetEntityId(),
	}

	descriptors := pb.GetHeader().GetFeatureDescriptors()
	for i, data := range pb.GetEntityView().GetData() {
		var featureId string
		if i < len(descriptors) && descriptors[i].GetId() != "" {
			featureId = descriptors[i].GetId()
		} else if i < len(requested) {
			featureId = requested[i]
		} else {
			continue
		}

		value := &FeatureValue{FeatureId: featureId}
		if pbValue := data.GetValue(); pbValue != nil {
			value.DoubleValue = pbValue.GetDoubleValue()
			if ts := pbValue.GetMetadata().GetGenerateTime(); ts != nil && (ts.GetSeconds() != 0 || ts.GetNanos() != 0) {
				value.GenerateTime = ts.AsTime()
			}
		}
		response.Values = append(response.Values, value)
	}

	return response
}
