package featurestore

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/sony/gobreaker"
	"github.com/vertex-mlops/vertex-featurestore-go-sdk/api"
	"github.com/vertex-mlops/vertex-featurestore-go-sdk/dao"
	"github.com/vertex-mlops/vertex-featurestore-go-sdk/domain"
	"google.golang.org/api/option"
)

type ClientOption func(c *FeatureStoreClient)

func WithLogger(l Logger) ClientOption {
	return func(e *FeatureStoreClient) {
		e.Logger = l
	}
}

func WithErrorLogger(l Logger) ClientOption {
	return func(e *FeatureStoreClient) {
		e.ErrorLogger = l
	}
}

// WithEndpoint set custom endpoint, host without port
func WithEndpoint(endpoint string) ClientOption {
	return func(e *FeatureStoreClient) {
		e.endpoint = endpoint
	}
}

// WithClientOptions passes options such as credentials to the underlying google clients
func WithClientOptions(opts ...option.ClientOption) ClientOption {
	return func(e *FeatureStoreClient) {
		e.clientOptions = append(e.clientOptions, opts...)
	}
}

// WithOperationTimeout bounds every operation, long-running waits included. 0 means no timeout.
func WithOperationTimeout(timeout time.Duration) ClientOption {
	return func(e *FeatureStoreClient) {
		e.operationTimeout = timeout
	}
}

// WithFeatureCache puts a feature value cache in front of online reads
func WithFeatureCache(cache dao.FeatureValueDao) ClientOption {
	return func(e *FeatureStoreClient) {
		e.cache = cache
	}
}

// WithCircuitBreaker runs online reads through a circuit breaker built from settings
func WithCircuitBreaker(settings gobreaker.Settings) ClientOption {
	return func(e *FeatureStoreClient) {
		if settings.Name == "" {
			settings.Name = "online-serving"
		}
		e.breaker = gobreaker.NewCircuitBreaker(settings)
	}
}

type FeatureStoreClient struct {
	projectId string
	region    string

	endpoint      string
	clientOptions []option.ClientOption

	// operationTimeout applied to each operation when > 0
	operationTimeout time.Duration

	client *api.APIClient

	featurestoreApi  FeaturestoreAPI
	entityTypeApi    EntityTypeAPI
	featureApi       FeatureAPI
	onlineServingApi OnlineServingAPI

	mu       sync.RWMutex
	storeMap map[string]*domain.Featurestore

	cache dao.FeatureValueDao
	// cacheGen holds the last ingestion per entity type, entries cached before it are not read
	cacheGen map[string]int64
	breaker *gobreaker.CircuitBreaker

	// Logger specifies a logger used to report operations
	Logger Logger

	// ErrorLogger is the logger to report errors
	ErrorLogger Logger
}

// NewFeatureStoreClient builds one long-lived client for a project and region. The
// client is safe for concurrent use, release it with Close.
func NewFeatureStoreClient(ctx context.Context, projectId, region string, opts ...ClientOption) (*FeatureStoreClient, error) {
	client := newFeatureStoreClient(projectId, region, opts...)

	cfg := api.NewConfiguration(projectId, region)
	if client.endpoint != "" {
		cfg.SetEndpoint(client.endpoint)
	}

	apiClient, err := api.NewAPIClient(ctx, cfg, client.clientOptions...)
	if err != nil {
		return nil, err
	}

	client.client = apiClient
	client.featurestoreApi = apiClient.FeaturestoreApi
	client.entityTypeApi = apiClient.EntityTypeApi
	client.featureApi = apiClient.FeatureApi
	client.onlineServingApi = apiClient.OnlineServingApi

	return client, nil
}

func newFeatureStoreClient(projectId, region string, opts ...ClientOption) *FeatureStoreClient {
	client := FeatureStoreClient{
		projectId: projectId,
		region:    region,
		storeMap:  make(map[string]*domain.Featurestore),
		cacheGen:  make(map[string]int64),
	}

	for _, opt := range opts {
		opt(&client)
	}

	return &client
}

func (c *FeatureStoreClient) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}

func (c *FeatureStoreClient) ProjectId() string {
	return c.projectId
}

func (c *FeatureStoreClient) Region() string {
	return c.region
}

// GetFeaturestore returns a featurestore seen by this client, through CreateStore or
// CreateEntity.
func (c *FeatureStoreClient) GetFeaturestore(storeId string) (*domain.Featurestore, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	store, ok := c.storeMap[storeId]
	if ok {
		return store, nil
	}

	return nil, fmt.Errorf("not found featurestore, id:%s", storeId)
}

func (c *FeatureStoreClient) putFeaturestore(f *api.Featurestore) *domain.Featurestore {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := f.FeaturestoreId()
	if store, ok := c.storeMap[id]; ok {
		return store
	}
	store := domain.NewFeaturestore(f)
	c.storeMap[id] = store
	return store
}

// cacheEntityType names the cache partition of an entity type. IngestCSV moves it to a
// new partition so values cached before the import are no longer served.
func (c *FeatureStoreClient) cacheEntityType(storeId, entityId string) string {
	key := storeId + "/" + entityId
	c.mu.RLock()
	gen := c.cacheGen[key]
	c.mu.RUnlock()
	if gen == 0 {
		return key
	}
	return key + "@" + strconv.FormatInt(gen, 36)
}

func (c *FeatureStoreClient) invalidateCache(storeId, entityId string) {
	if c.cache == nil {
		return
	}
	key := storeId + "/" + entityId
	c.mu.Lock()
	defer c.mu.Unlock()
	gen := time.Now().UnixNano()
	if gen <= c.cacheGen[key] {
		gen = c.cacheGen[key] + 1
	}
	c.cacheGen[key] = gen
}

func (c *FeatureStoreClient) locationPath() string {
	return api.LocationPath(c.projectId, c.region)
}

func (c *FeatureStoreClient) featurestorePath(storeId string) string {
	return api.FeaturestorePath(c.projectId, c.region, storeId)
}

func (c *FeatureStoreClient) entityTypePath(storeId, entityId string) string {
	return api.EntityTypePath(c.projectId, c.region, storeId, entityId)
}

func (c *FeatureStoreClient) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.operationTimeout > 0 {
		return context.WithTimeout(ctx, c.operationTimeout)
	}
	return context.WithCancel(ctx)
}

func (c *FeatureStoreClient) logf(format string, v ...interface{}) {
	if c.Logger != nil {
		c.Logger.Printf(format, v...)
	}
}

func (c *FeatureStoreClient) logError(err error) {
	if c.ErrorLogger != nil {
		c.ErrorLogger.Printf("%s", err.Error())
		return
	}

	if c.Logger != nil {
		c.Logger.Printf("%s", err.Error())
	}
}
