package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/gommon/log"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vertex-mlops/vertex-featurestore-go-sdk/config"
	"github.com/vertex-mlops/vertex-featurestore-go-sdk/features"
)

type readCall struct {
	storeId, entityId, entityValue string
	features                       []string
}

type fakeReader struct {
	calls  []readCall
	values map[string]float64
	err    error
}

func (r *fakeReader) ReadFeatures(ctx context.Context, storeId, entityId string, featureIds []string, entityValue string) (map[string]float64, error) {
	r.calls = append(r.calls, readCall{storeId: storeId, entityId: entityId, entityValue: entityValue, features: featureIds})
	return r.values, r.err
}

func servingConfig() config.ServingConfig {
	return config.DefaultConfig().Serving
}

func TestGetFeatures(t *testing.T) {
	reader := &fakeReader{values: map[string]float64{"V1": 1.5, "Amount": 42}}
	e := BuildServer(reader, servingConfig(), "off")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/featurestores/fraud/entityTypes/users/entities/u1?features=V1,%20Amount,", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var got map[string]float64
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, map[string]float64{"V1": 1.5, "Amount": 42}, got)

	require.Len(t, reader.calls, 1)
	assert.Equal(t, readCall{storeId: "fraud", entityId: "users", entityValue: "u1", features: []string{"V1", "Amount"}}, reader.calls[0])
}

func TestGetFeaturesErrors(t *testing.T) {
	for name, testcase := range map[string]struct {
		query string
		err   error
		code  int
	}{
		"missing features": {query: "", code: http.StatusBadRequest},
		"open breaker":     {query: "?features=V1", err: gobreaker.ErrOpenState, code: http.StatusServiceUnavailable},
		"remote error":     {query: "?features=V1", err: errors.New("deadline exceeded"), code: http.StatusInternalServerError},
	} {
		t.Run(name, func(t *testing.T) {
			reader := &fakeReader{err: testcase.err}
			e := BuildServer(reader, servingConfig(), "off")

			req := httptest.NewRequest(http.MethodGet, "/api/v1/featurestores/fraud/entityTypes/users/entities/u1"+testcase.query, nil)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, testcase.code, rec.Code)
		})
	}
}

func TestGetFeaturesRateLimit(t *testing.T) {
	reader := &fakeReader{values: map[string]float64{}}
	e := BuildServer(reader, config.ServingConfig{RateLimit: 0.001, Burst: 1}, "off")

	codes := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/featurestores/fraud/entityTypes/users/entities/u1?features=V1", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests}, codes)
	assert.Len(t, reader.calls, 1)
}

func TestPostExplanationConfig(t *testing.T) {
	e := BuildServer(&fakeReader{}, servingConfig(), "off")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/explanation-config", strings.NewReader(`{"features":["f1","f2","Class"]}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var got features.ExplanationConfig
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Contains(t, got.Inputs, "f1")
	assert.Contains(t, got.Inputs, "f2")
	assert.NotContains(t, got.Inputs, "Class")
	assert.Equal(t, 10, got.Params.SampledShapleyAttribution.PathCount)
}

func TestPostExplanationConfigEmpty(t *testing.T) {
	e := BuildServer(&fakeReader{}, servingConfig(), "off")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/explanation-config", strings.NewReader(`{"features":[]}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestParseLogLevel(t *testing.T) {
	level, err := ParseLogLevel("DEBUG")
	require.NoError(t, err)
	assert.Equal(t, log.DEBUG, level)

	level, err = ParseLogLevel("")
	require.NoError(t, err)
	assert.Equal(t, log.WARN, level)

	level, err = ParseLogLevel("verbose")
	assert.Error(t, err)
	assert.Equal(t, log.WARN, level)
}

func TestAccessLog(t *testing.T) {
	reader := &fakeReader{values: map[string]float64{"V1": 1}}
	e := BuildServer(reader, servingConfig(), "info")
	out := new(bytes.Buffer)
	e.Logger.SetOutput(out)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/featurestores/fraud/entityTypes/users/entities/u1?features=V1", nil)
	e.ServeHTTP(httptest.NewRecorder(), req)
	assert.Contains(t, out.String(), "GET /api/v1/featurestores/fraud/entityTypes/users/entities/u1/ status=200")

	out.Reset()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/featurestores/fraud/entityTypes/users/entities/u1", nil)
	e.ServeHTTP(httptest.NewRecorder(), req)
	assert.Contains(t, out.String(), "status=400")
}

func TestRoute(t *testing.T) {
	assert.Equal(t, "/api/v1/explanation-config/", route("explanation-config"))
	assert.Equal(t, "/api/v1/explanation-config/", route("/explanation-config/"))
}
