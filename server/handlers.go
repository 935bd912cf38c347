package server

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/sony/gobreaker"
	"github.com/vertex-mlops/vertex-featurestore-go-sdk/features"
	"github.com/vertex-mlops/vertex-featurestore-go-sdk/featurestore"
)

type FeatureReader interface {
	ReadFeatures(ctx context.Context, storeId, entityId string, features []string, entityValue string) (map[string]float64, error)
}

type ExplanationConfigRequest struct {
	Features []string `json:"features"`
}

// GetFeaturesHandler serves the latest values of the comma separated "features" query
// parameter for one entity.
func GetFeaturesHandler(reader FeatureReader, storeParam, entityParam, idParam string) echo.HandlerFunc {
	return func(c echo.Context) error {
		featureIds := splitFeatures(c.QueryParam("features"))
		if len(featureIds) == 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "query parameter features is required")
		}

		values, err := reader.ReadFeatures(
			c.Request().Context(),
			c.Param(storeParam), c.Param(entityParam), featureIds, c.Param(idParam),
		)
		switch {
		case err == nil:
			return c.JSON(http.StatusOK, values)
		case errors.Is(err, featurestore.ErrEmptyFeatureList):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
		case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
			return echo.NewHTTPError(http.StatusServiceUnavailable, "online serving unavailable").SetInternal(err)
		default:
			return echo.NewHTTPError(http.StatusInternalServerError).SetInternal(err)
		}
	}
}

func PostExplanationConfigHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(ExplanationConfigRequest)
		if err := c.Bind(req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "malformed request body").SetInternal(err)
		}
		if len(req.Features) == 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "features is required")
		}

		return c.JSON(http.StatusOK, features.BuildExplanationConfig(req.Features))
	}
}

func splitFeatures(s string) []string {
	var result []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			result = append(result, f)
		}
	}
	return result
}
