package featurestore

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/vertex-mlops/vertex-featurestore-go-sdk/api"
)

// fakeService records every remote call and serves in-memory state.
type fakeService struct {
	mu    sync.Mutex
	calls []string

	stores  []*api.Featurestore
	created []api.CreateFeaturestoreRequest

	entityTypes    []api.CreateEntityTypeRequest
	featureBatches []api.BatchCreateFeaturesRequest
	imports        []api.ImportFeatureValuesRequest
	importResponse *api.ImportFeatureValuesResponse

	reads  []api.ReadFeatureValuesRequest
	values map[string][]*api.FeatureValue
	err    error
}

func newFakeService() *fakeService {
	return &fakeService{values: make(map[string][]*api.FeatureValue)}
}

func (f *fakeService) record(call string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
	return f.err
}

func (f *fakeService) callCount(call string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == call || call == "" {
			n++
		}
	}
	return n
}

func (f *fakeService) ListFeaturestores(ctx context.Context, parent string) ([]*api.Featurestore, error) {
	if err := f.record("ListFeaturestores"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*api.Featurestore(nil), f.stores...), nil
}

func (f *fakeService) CreateFeaturestore(ctx context.Context, request api.CreateFeaturestoreRequest) (*api.Featurestore, error) {
	if err := f.record("CreateFeaturestore"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, request)
	store := &api.Featurestore{
		Name:                   request.Parent + "/featurestores/" + request.FeaturestoreId,
		OnlineServingNodeCount: request.OnlineServingNodeCount,
	}
	f.stores = append(f.stores, store)
	return store, nil
}

func (f *fakeService) CreateEntityType(ctx context.Context, request api.CreateEntityTypeRequest) (*api.EntityType, error) {
	if err := f.record("CreateEntityType"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entityTypes = append(f.entityTypes, request)
	return &api.EntityType{
		Name:             request.Parent + "/entityTypes/" + request.EntityTypeId,
		Description:      request.Description,
		MonitoringConfig: request.MonitoringConfig,
	}, nil
}

func (f *fakeService) BatchCreateFeatures(ctx context.Context, request api.BatchCreateFeaturesRequest) ([]*api.Feature, error) {
	if err := f.record("BatchCreateFeatures"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.featureBatches = append(f.featureBatches, request)
	features := make([]*api.Feature, 0, len(request.Features))
	for _, feature := range request.Features {
		features = append(features, &api.Feature{
			Name:        request.Parent + "/features/" + feature.FeatureId,
			FeatureId:   feature.FeatureId,
			Description: feature.Description,
			ValueType:   feature.ValueType,
		})
	}
	return features, nil
}

func (f *fakeService) ImportFeatureValues(ctx context.Context, request api.ImportFeatureValuesRequest) (*api.ImportFeatureValuesResponse, error) {
	if err := f.record("ImportFeatureValues"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.imports = append(f.imports, request)
	if f.importResponse != nil {
		return f.importResponse, nil
	}
	return &api.ImportFeatureValuesResponse{OperationName: "operations/1"}, nil
}

func (f *fakeService) ReadFeatureValues(ctx context.Context, request api.ReadFeatureValuesRequest) (*api.ReadFeatureValuesResponse, error) {
	if err := f.record("ReadFeatureValues"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads = append(f.reads, request)
	values, ok := f.values[request.EntityId]
	if !ok {
		return nil, fmt.Errorf("entity %s not found", request.EntityId)
	}
	return &api.ReadFeatureValuesResponse{
		EntityType: request.EntityType,
		EntityId:   request.EntityId,
		Values:     values,
	}, nil
}

func newTestClient(t *testing.T, fake *fakeService, opts ...ClientOption) *FeatureStoreClient {
	t.Helper()
	client := newFeatureStoreClient("demo-project", "us-central1", opts...)
	client.featurestoreApi = fake
	client.entityTypeApi = fake
	client.featureApi = fake
	client.onlineServingApi = fake
	return client
}

type recordLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *recordLogger) Printf(format string, v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, fmt.Sprintf(format, v...))
}

func (l *recordLogger) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.lines)
}

// memoryCache is an in-process FeatureValueDao.
type memoryCache struct {
	mu     sync.Mutex
	rows   map[string]map[string]float64
	getErr error
	puts   int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{rows: make(map[string]map[string]float64)}
}

func (m *memoryCache) GetFeatureValues(ctx context.Context, entityType, entityId string, featureIds []string) (map[string]float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	result := make(map[string]float64)
	row := m.rows[entityType+":"+entityId]
	for _, id := range featureIds {
		if v, ok := row[id]; ok {
			result[id] = v
		}
	}
	return result, nil
}

func (m *memoryCache) PutFeatureValues(ctx context.Context, entityType, entityId string, values map[string]float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.puts++
	key := entityType + ":" + entityId
	if m.rows[key] == nil {
		m.rows[key] = make(map[string]float64)
	}
	for k, v := range values {
		m.rows[key][k] = v
	}
	return nil
}
