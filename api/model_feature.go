package api

import (
	"time"

	"cloud.google.com/go/aiplatform/apiv1beta1/aiplatformpb"
	"github.com/vertex-mlops/vertex-featurestore-go-sdk/constants"
	"google.golang.org/protobuf/types/known/timestamppb"
)

type Feature struct {
	Name             string            `json:"name"`
	FeatureId        string            `json:"feature_id,omitempty"`
	Description      string            `json:"description,omitempty"`
	ValueType        constants.FSType  `json:"value_type"`
	MonitoringConfig *MonitoringConfig `json:"monitoring_config,omitempty"`
}

type BatchCreateFeaturesRequest struct {
	Parent   string
	Features []*Feature
}

func (r *BatchCreateFeaturesRequest) toProto() *aiplatformpb.BatchCreateFeaturesRequest {
	request := &aiplatformpb.BatchCreateFeaturesRequest{
		Parent:   r.Parent,
		Requests: make([]*aiplatformpb.CreateFeatureRequest, 0, len(r.Features)),
	}
	for _, feature := range r.Features {
		request.Requests = append(request.Requests, &aiplatformpb.CreateFeatureRequest{
			FeatureId: feature.FeatureId,
			Feature: &aiplatformpb.Feature{
				ValueType:        valueTypeToProto(feature.ValueType),
				Description:      feature.Description,
				MonitoringConfig: feature.MonitoringConfig.toProto(),
			},
		})
	}
	return request
}

func featureFromProto(pb *aiplatformpb.Feature) *Feature {
	return &Feature{
		Name:             pb.GetName(),
		FeatureId:        ResourceId(pb.GetName()),
		Description:      pb.GetDescription(),
		ValueType:        valueTypeFromProto(pb.GetValueType()),
		MonitoringConfig: monitoringConfigFromProto(pb.GetMonitoringConfig()),
	}
}

func valueTypeToProto(t constants.FSType) aiplatformpb.Feature_ValueType {
	switch t {
	case constants.FS_INT32, constants.FS_INT64:
		return aiplatformpb.Feature_INT64
	case constants.FS_FLOAT, constants.FS_DOUBLE:
		return aiplatformpb.Feature_DOUBLE
	case constants.FS_BOOLEAN:
		return aiplatformpb.Feature_BOOL
	case constants.FS_STRING, constants.FS_TIMESTAMP:
		return aiplatformpb.Feature_STRING
	default:
		return aiplatformpb.Feature_VALUE_TYPE_UNSPECIFIED
	}
}

func valueTypeFromProto(t aiplatformpb.Feature_ValueType) constants.FSType {
	switch t {
	case aiplatformpb.Feature_INT64:
		return constants.FS_INT64
	case aiplatformpb.Feature_DOUBLE:
		return constants.FS_DOUBLE
	case aiplatformpb.Feature_BOOL:
		return constants.FS_BOOLEAN
	default:
		return constants.FS_STRING
	}
}

// ImportFeatureValuesRequest imports feature values from CSV files in object storage.
// Every row gets the same FeatureTime.
type ImportFeatureValuesRequest struct {
	EntityType    string
	EntityIdField string
	GcsUris       []string
	FeatureIds    []string
	FeatureTime   time.Time
	WorkerCount   int32
}

func (r *ImportFeatureValuesRequest) toProto() *aiplatformpb.ImportFeatureValuesRequest {
	specs := make([]*aiplatformpb.ImportFeatureValuesRequest_FeatureSpec, 0, len(r.FeatureIds))
	for _, id := range r.FeatureIds {
		specs = append(specs, &aiplatformpb.ImportFeatureValuesRequest_FeatureSpec{Id: id})
	}

	return &aiplatformpb.ImportFeatureValuesRequest{
		EntityType: r.EntityType,
		Source: &aiplatformpb.ImportFeatureValuesRequest_CsvSource{
			CsvSource: &aiplatformpb.CsvSource{
				GcsSource: &aiplatformpb.GcsSource{Uris: r.GcsUris},
			},
		},
		FeatureTimeSource: &aiplatformpb.ImportFeatureValuesRequest_FeatureTime{
			FeatureTime: timestamppb.New(r.FeatureTime),
		},
		EntityIdField: r.EntityIdField,
		FeatureSpecs:  specs,
		WorkerCount:   r.WorkerCount,
	}
}

type ImportFeatureValuesResponse struct {
	OperationName                      string `json:"operation_name"`
	ImportedEntityCount                int64  `json:"imported_entity_count"`
	ImportedFeatureValueCount          int64  `json:"imported_feature_value_count"`
	InvalidRowCount                    int64  `json:"invalid_row_count"`
	TimestampOutsideRetentionRowsCount int64  `json:"timestamp_outside_retention_rows_count"`
}

func importFeatureValuesResponseFromProto(operationName string, pb *aiplatformpb.ImportFeatureValuesResponse) *ImportFeatureValuesResponse {
	return &ImportFeatureValuesResponse{
		OperationName:                      operationName,
		ImportedEntityCount:                pb.GetImportedEntityCount(),
		ImportedFeatureValueCount:          pb.GetImportedFeatureValueCount(),
		InvalidRowCount:                    pb.GetInvalidRowCount(),
		TimestampOutsideRetentionRowsCount: pb.GetTimestampOutsideRetentionRowsCount(),
	}
}
