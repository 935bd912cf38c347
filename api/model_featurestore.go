package api

import (
	"time"

	"cloud.google.com/go/aiplatform/apiv1beta1/aiplatformpb"
)

type Featurestore struct {
	Name                   string    `json:"name"`
	OnlineServingNodeCount int32     `json:"online_serving_node_count"`
	State                  string    `json:"state,omitempty"`
	CreateTime             time.Time `json:"create_time,omitempty"`
}

func (f *Featurestore) FeaturestoreId() string {
	return ResourceId(f.Name)
}

type CreateFeaturestoreRequest struct {
	Parent                 string
	FeaturestoreId         string
	Name                   string
	OnlineServingNodeCount int32
}

func (r *CreateFeaturestoreRequest) toProto() *aiplatformpb.CreateFeaturestoreRequest {
	return &aiplatformpb.CreateFeaturestoreRequest{
		Parent:         r.Parent,
		FeaturestoreId: r.FeaturestoreId,
		Featurestore: &aiplatformpb.Featurestore{
			Name: r.Name,
			OnlineServingConfig: &aiplatformpb.Featurestore_OnlineServingConfig{
				FixedNodeCount: r.OnlineServingNodeCount,
			},
		},
	}
}

func featurestoreFromProto(pb *aiplatformpb.Featurestore) *Featurestore {
	featurestore := &Featurestore{
		Name:  pb.GetName(),
		State: pb.GetState().String(),
	}
	if pb.GetOnlineServingConfig() != nil {
		featurestore.OnlineServingNodeCount = pb.GetOnlineServingConfig().GetFixedNodeCount()
	}
	if pb.GetCreateTime() != nil {
		featurestore.CreateTime = pb.GetCreateTime().AsTime()
	}
	return featurestore
}
