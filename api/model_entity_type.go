package api

import (
	"time"

	"cloud.google.com/go/aiplatform/apiv1beta1/aiplatformpb"
	"google.golang.org/protobuf/types/known/durationpb"
)

type MonitoringConfig struct {
	SnapshotAnalysisInterval time.Duration `json:"snapshot_analysis_interval"`
	Disabled                 bool          `json:"disabled,omitempty"`
}

func (m *MonitoringConfig) toProto() *aiplatformpb.FeaturestoreMonitoringConfig {
	if m == nil {
		return nil
	}
	return &aiplatformpb.FeaturestoreMonitoringConfig{
		SnapshotAnalysis: &aiplatformpb.FeaturestoreMonitoringConfig_SnapshotAnalysis{
			Disabled:           m.Disabled,
			MonitoringInterval: durationpb.New(m.SnapshotAnalysisInterval),
		},
	}
}

func monitoringConfigFromProto(pb *aiplatformpb.FeaturestoreMonitoringConfig) *MonitoringConfig {
	snapshot := pb.GetSnapshotAnalysis()
	if snapshot == nil {
		return nil
	}
	config := &MonitoringConfig{Disabled: snapshot.GetDisabled()}
	if snapshot.GetMonitoringInterval() != nil {
		config.SnapshotAnalysisInterval = snapshot.GetMonitoringInterval().AsDuration()
	}
	return config
}

type EntityType struct {
	Name             string            `json:"name"`
	Description      string            `json:"description,omitempty"`
	MonitoringConfig *MonitoringConfig `json:"monitoring_config,omitempty"`
}

func (e *EntityType) EntityTypeId() string {
	return ResourceId(e.Name)
}

type CreateEntityTypeRequest struct {
	Parent           string
	EntityTypeId     string
	Description      string
	MonitoringConfig *MonitoringConfig
}

func (r *CreateEntityTypeRequest) toProto() *aiplatformpb.CreateEntityTypeRequest {
	return &aiplatformpb.CreateEntityTypeRequest{
		Parent:       r.Parent,
		EntityTypeId: r.EntityTypeId,
		EntityType: &aiplatformpb.EntityType{
			Description:      r.Description,
			MonitoringConfig: r.MonitoringConfig.toProto(),
		},
	}
}

func entityTypeFromProto(pb *aiplatformpb.EntityType) *EntityType {
	return &EntityType{
		Name:             pb.GetName(),
		Description:      pb.GetDescription(),
		MonitoringConfig: monitoringConfigFromProto(pb.GetMonitoringConfig()),
	}
}
