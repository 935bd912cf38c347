package domain

import "github.com/vertex-mlops/vertex-featurestore-go-sdk/api"

type EntityType struct {
	*api.EntityType
	featureIds []string
	featureMap map[string]*api.Feature
}

func NewEntityType(entityType *api.EntityType, features []*api.Feature) *EntityType {
	e := &EntityType{
		EntityType: entityType,
		featureMap: make(map[string]*api.Feature, len(features)),
	}
	for _, feature := range features {
		id := feature.FeatureId
		if id == "" {
			id = api.ResourceId(feature.Name)
		}
		if _, ok := e.featureMap[id]; !ok {
			e.featureIds = append(e.featureIds, id)
		}
		e.featureMap[id] = feature
	}
	return e
}

func (e *EntityType) GetFeature(id string) *api.Feature {
	return e.featureMap[id]
}

func (e *EntityType) FeatureIds() []string {
	return e.featureIds
}

func (e *EntityType) Features() []*api.Feature {
	features := make([]*api.Feature, 0, len(e.featureIds))
	for _, id := range e.featureIds {
		features = append(features, e.featureMap[id])
	}
	return features
}
