package domain

import (
	"sync"

	"github.com/vertex-mlops/vertex-featurestore-go-sdk/api"
)

type Featurestore struct {
	*api.Featurestore

	mu            sync.RWMutex
	entityTypeMap map[string]*EntityType
}

func NewFeaturestore(f *api.Featurestore) *Featurestore {
	featurestore := Featurestore{
		Featurestore:  f,
		entityTypeMap: make(map[string]*EntityType),
	}
	return &featurestore
}

// HasId reports whether the trailing segment of the featurestore name is id.
func (f *Featurestore) HasId(id string) bool {
	return f.FeaturestoreId() == id
}

func (f *Featurestore) AddEntityType(entityType *EntityType) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entityTypeMap[entityType.EntityTypeId()] = entityType
}

func (f *Featurestore) GetEntityType(id string) *EntityType {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.entityTypeMap[id]
}

// FindFeaturestore returns the featurestore of stores whose id is id, or nil.
func FindFeaturestore(stores []*api.Featurestore, id string) *Featurestore {
	for _, s := range stores {
		if s.FeaturestoreId() == id {
			return NewFeaturestore(s)
		}
	}
	return nil
}
