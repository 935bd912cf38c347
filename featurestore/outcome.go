package featurestore

import (
	"errors"

	"github.com/antihax/optional"
	"github.com/vertex-mlops/vertex-featurestore-go-sdk/api"
)

var (
	ErrFeatureDescriptionMismatch = errors.New("features and feature descriptions differ in length")
	ErrEmptyFeatureList           = errors.New("feature list is empty")
)

// Outcome tells apart the ways a create call can finish without a remote error.
type Outcome int

const (
	OutcomeCreated Outcome = iota + 1
	OutcomeAlreadyExists
	OutcomeValidationFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCreated:
		return "Created"
	case OutcomeAlreadyExists:
		return "AlreadyExists"
	case OutcomeValidationFailed:
		return "ValidationFailed"
	default:
		return "Unknown"
	}
}

/*
CreateStoreOpts Optional parameters for the method 'CreateStore'
  - @param "StoreName" (optional.String) - display resource name, defaults to the featurestore path of storeId
*/
type CreateStoreOpts struct {
	StoreName optional.String
}

type CreateStoreResult struct {
	Outcome      Outcome
	Featurestore *api.Featurestore
}

/*
CreateEntityOpts Optional parameters for the method 'CreateEntity'
  - @param "FeaturesDescr" (optional.Interface of []string) - one description per feature, defaults to the feature ids
*/
type CreateEntityOpts struct {
	FeaturesDescr optional.Interface
}

type CreateEntityResult struct {
	Outcome    Outcome
	EntityType *api.EntityType
	Features   []*api.Feature
}
