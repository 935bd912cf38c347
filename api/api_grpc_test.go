package api

import (
	"context"
	"net"
	"sync"
	"testing"
	"time"

	"cloud.google.com/go/aiplatform/apiv1beta1/aiplatformpb"
	"cloud.google.com/go/longrunning/autogen/longrunningpb"
	"fortio.org/assert"
	"github.com/vertex-mlops/vertex-featurestore-go-sdk/constants"
	"google.golang.org/api/option"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/anypb"
	"google.golang.org/protobuf/types/known/timestamppb"
)

const importOperationName = "projects/p/locations/r/operations/import-1"

// adminServer serves featurestore admin calls. Creates finish inside the call, imports
// finish on the first GetOperation.
type adminServer struct {
	aiplatformpb.UnimplementedFeaturestoreServiceServer

	mu        sync.Mutex
	pageCalls []string
	imports   []*aiplatformpb.ImportFeatureValuesRequest
}

func doneOperation(name string, response proto.Message) (*longrunningpb.Operation, error) {
	packed, err := anypb.New(response)
	if err != nil {
		return nil, err
	}
	return &longrunningpb.Operation{
		Name:   name,
		Done:   true,
		Result: &longrunningpb.Operation_Response{Response: packed},
	}, nil
}

func (s *adminServer) ListFeaturestores(ctx context.Context, req *aiplatformpb.ListFeaturestoresRequest) (*aiplatformpb.ListFeaturestoresResponse, error) {
	s.mu.Lock()
	s.pageCalls = append(s.pageCalls, req.GetPageToken())
	s.mu.Unlock()

	switch req.GetPageToken() {
	case "":
		return &aiplatformpb.ListFeaturestoresResponse{
			Featurestores: []*aiplatformpb.Featurestore{{Name: req.GetParent() + "/featurestores/fraud"}},
			NextPageToken: "page-2",
		}, nil
	case "page-2":
		return &aiplatformpb.ListFeaturestoresResponse{
			Featurestores: []*aiplatformpb.Featurestore{{Name: req.GetParent() + "/featurestores/churn"}},
		}, nil
	}
	return nil, status.Errorf(codes.InvalidArgument, "unknown page token %q", req.GetPageToken())
}

func (s *adminServer) CreateFeaturestore(ctx context.Context, req *aiplatformpb.CreateFeaturestoreRequest) (*longrunningpb.Operation, error) {
	store := proto.Clone(req.GetFeaturestore()).(*aiplatformpb.Featurestore)
	store.Name = req.GetParent() + "/featurestores/" + req.GetFeaturestoreId()
	store.State = aiplatformpb.Featurestore_STABLE
	return doneOperation(req.GetParent()+"/operations/create-store", store)
}

func (s *adminServer) CreateEntityType(ctx context.Context, req *aiplatformpb.CreateEntityTypeRequest) (*longrunningpb.Operation, error) {
	entityType := proto.Clone(req.GetEntityType()).(*aiplatformpb.EntityType)
	entityType.Name = req.GetParent() + "/entityTypes/" + req.GetEntityTypeId()
	return doneOperation(req.GetParent()+"/operations/create-entity", entityType)
}

func (s *adminServer) BatchCreateFeatures(ctx context.Context, req *aiplatformpb.BatchCreateFeaturesRequest) (*longrunningpb.Operation, error) {
	response := &aiplatformpb.BatchCreateFeaturesResponse{}
	for _, r := range req.GetRequests() {
		feature := proto.Clone(r.GetFeature()).(*aiplatformpb.Feature)
		feature.Name = req.GetParent() + "/features/" + r.GetFeatureId()
		response.Features = append(response.Features, feature)
	}
	return doneOperation(req.GetParent()+"/operations/batch-create", response)
}

func (s *adminServer) ImportFeatureValues(ctx context.Context, req *aiplatformpb.ImportFeatureValuesRequest) (*longrunningpb.Operation, error) {
	s.mu.Lock()
	s.imports = append(s.imports, req)
	s.mu.Unlock()
	return &longrunningpb.Operation{Name: importOperationName}, nil
}

type operationsServer struct {
	longrunningpb.UnimplementedOperationsServer
}

func (s *operationsServer) GetOperation(ctx context.Context, req *longrunningpb.GetOperationRequest) (*longrunningpb.Operation, error) {
	if req.GetName() != importOperationName {
		return nil, status.Errorf(codes.NotFound, "operation %s", req.GetName())
	}
	return doneOperation(importOperationName, &aiplatformpb.ImportFeatureValuesResponse{
		ImportedEntityCount:       2,
		ImportedFeatureValueCount: 4,
		InvalidRowCount:           1,
	})
}

type servingServer struct {
	aiplatformpb.UnimplementedFeaturestoreOnlineServingServiceServer
}

func (s *servingServer) ReadFeatureValues(ctx context.Context, req *aiplatformpb.ReadFeatureValuesRequest) (*aiplatformpb.ReadFeatureValuesResponse, error) {
	header := &aiplatformpb.ReadFeatureValuesResponse_Header{EntityType: req.GetEntityType()}
	view := &aiplatformpb.ReadFeatureValuesResponse_EntityView{EntityId: req.GetEntityId()}
	for i, id := range req.GetFeatureSelector().GetIdMatcher().GetIds() {
		header.FeatureDescriptors = append(header.FeatureDescriptors, &aiplatformpb.ReadFeatureValuesResponse_FeatureDescriptor{Id: id})
		if id == "Unset" {
			view.Data = append(view.Data, &aiplatformpb.ReadFeatureValuesResponse_EntityView_Data{})
			continue
		}
		view.Data = append(view.Data, &aiplatformpb.ReadFeatureValuesResponse_EntityView_Data{
			Data: &aiplatformpb.ReadFeatureValuesResponse_EntityView_Data_Value{
				Value: &aiplatformpb.FeatureValue{
					Value:    &aiplatformpb.FeatureValue_DoubleValue{DoubleValue: float64(i + 1)},
					Metadata: &aiplatformpb.FeatureValue_Metadata{GenerateTime: timestamppb.Now()},
				},
			},
		})
	}
	return &aiplatformpb.ReadFeatureValuesResponse{Header: header, EntityView: view}, nil
}

// newGRPCTestClient serves the fakes over an in-memory listener and connects an
// APIClient to them.
func newGRPCTestClient(t *testing.T, admin *adminServer) *APIClient {
	t.Helper()
	listener := bufconn.Listen(1 << 20)
	server := grpc.NewServer()
	aiplatformpb.RegisterFeaturestoreServiceServer(server, admin)
	aiplatformpb.RegisterFeaturestoreOnlineServingServiceServer(server, &servingServer{})
	longrunningpb.RegisterOperationsServer(server, &operationsServer{})
	go server.Serve(listener)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return listener.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	assert.NoError(t, err)

	client, err := NewAPIClient(context.Background(), NewConfiguration("p", "r"),
		option.WithGRPCConn(conn),
		option.WithoutAuthentication(),
	)
	assert.NoError(t, err)

	t.Cleanup(func() {
		client.Close()
		conn.Close()
		server.Stop()
	})
	return client
}

func TestFeaturestoreApiOverGRPC(t *testing.T) {
	admin := &adminServer{}
	client := newGRPCTestClient(t, admin)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stores, err := client.FeaturestoreApi.ListFeaturestores(ctx, "projects/p/locations/r")
	assert.NoError(t, err)
	assert.Equal(t, len(stores), 2)
	assert.Equal(t, stores[0].FeaturestoreId(), "fraud")
	assert.Equal(t, stores[1].FeaturestoreId(), "churn")
	assert.Equal(t, admin.pageCalls, []string{"", "page-2"})

	store, err := client.FeaturestoreApi.CreateFeaturestore(ctx, CreateFeaturestoreRequest{
		Parent:                 "projects/p/locations/r",
		FeaturestoreId:         "fraud",
		OnlineServingNodeCount: constants.Online_Serving_Node_Count,
	})
	assert.NoError(t, err)
	assert.Equal(t, store.Name, "projects/p/locations/r/featurestores/fraud")
	assert.Equal(t, store.OnlineServingNodeCount, int32(3))
	assert.Equal(t, store.State, "STABLE")
}

func TestEntityTypeAndFeatureApiOverGRPC(t *testing.T) {
	admin := &adminServer{}
	client := newGRPCTestClient(t, admin)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	storePath := "projects/p/locations/r/featurestores/fraud"

	entityType, err := client.EntityTypeApi.CreateEntityType(ctx, CreateEntityTypeRequest{
		Parent:           storePath,
		EntityTypeId:     "users",
		Description:      "users of the bank",
		MonitoringConfig: &MonitoringConfig{SnapshotAnalysisInterval: time.Hour},
	})
	assert.NoError(t, err)
	assert.Equal(t, entityType.EntityTypeId(), "users")
	assert.Equal(t, entityType.Description, "users of the bank")
	assert.Equal(t, entityType.MonitoringConfig.SnapshotAnalysisInterval, time.Hour)

	created, err := client.FeatureApi.BatchCreateFeatures(ctx, BatchCreateFeaturesRequest{
		Parent: storePath + "/entityTypes/users",
		Features: []*Feature{
			{FeatureId: "V1", ValueType: constants.FS_DOUBLE},
			{FeatureId: "Amount", ValueType: constants.FS_DOUBLE, Description: "amount"},
		},
	})
	assert.NoError(t, err)
	assert.Equal(t, len(created), 2)
	assert.Equal(t, created[0].FeatureId, "V1")
	assert.Equal(t, created[1].FeatureId, "Amount")
	assert.Equal(t, created[1].Description, "amount")
	assert.Equal(t, created[1].ValueType, constants.FS_DOUBLE)

	imported, err := client.FeatureApi.ImportFeatureValues(ctx, ImportFeatureValuesRequest{
		EntityType:    storePath + "/entityTypes/users",
		EntityIdField: "users",
		GcsUris:       []string{"gs://bucket/a.csv"},
		FeatureIds:    []string{"V1", "Amount"},
		FeatureTime:   time.Unix(1700000000, 0),
		WorkerCount:   constants.Ingestion_Worker_Count,
	})
	assert.NoError(t, err)
	assert.Equal(t, imported.OperationName, importOperationName)
	assert.Equal(t, imported.ImportedEntityCount, int64(2))
	assert.Equal(t, imported.ImportedFeatureValueCount, int64(4))
	assert.Equal(t, imported.InvalidRowCount, int64(1))
	assert.Equal(t, len(admin.imports), 1)
	assert.Equal(t, admin.imports[0].GetCsvSource().GetGcsSource().GetUris(), []string{"gs://bucket/a.csv"})
	assert.Equal(t, admin.imports[0].GetWorkerCount(), int32(5))
}

func TestOnlineServingApiOverGRPC(t *testing.T) {
	client := newGRPCTestClient(t, &adminServer{})
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	response, err := client.OnlineServingApi.ReadFeatureValues(ctx, ReadFeatureValuesRequest{
		EntityType: "projects/p/locations/r/featurestores/fraud/entityTypes/users",
		EntityId:   "u1",
		FeatureIds: []string{"V1", "Unset", "Amount"},
	})
	assert.NoError(t, err)
	assert.Equal(t, response.EntityId, "u1")
	assert.Equal(t, len(response.Values), 3)
	assert.Equal(t, response.Values[0].FeatureId, "V1")
	assert.Equal(t, response.Values[0].DoubleValue, 1.0)
	assert.Equal(t, response.Values[1].FeatureId, "Unset")
	assert.Equal(t, response.Values[1].HasGenerateTime(), false)
	assert.Equal(t, response.Values[2].FeatureId, "Amount")
	assert.Equal(t, response.Values[2].DoubleValue, 3.0)
	assert.Equal(t, response.Values[2].HasGenerateTime(), true)
}
