package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/vertex-mlops/vertex-featurestore-go-sdk/config"
	"golang.org/x/time/rate"
)

const apiRoot = "/api/v1"

// route joins path under apiRoot with the trailing slash AddTrailingSlash leaves on
// every request.
func route(path string) string {
	return apiRoot + "/" + strings.Trim(path, "/") + "/"
}

var logLevels = map[string]log.Lvl{
	"":      log.WARN,
	"debug": log.DEBUG,
	"info":  log.INFO,
	"warn":  log.WARN,
	"error": log.ERROR,
	"off":   log.OFF,
}

// ParseLogLevel maps a level name to an echo logger level. Unknown names give WARN
// and an error.
func ParseLogLevel(name string) (log.Lvl, error) {
	if level, ok := logLevels[strings.ToLower(name)]; ok {
		return level, nil
	}
	return log.WARN, fmt.Errorf("unknown log level %q, using warn", name)
}

// BuildServer routes online reads and explanation configs to reader. Reads are
// rate limited by cfg.
func BuildServer(reader FeatureReader, cfg config.ServingConfig, logLevel string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	level, err := ParseLogLevel(logLevel)
	e.Logger.SetLevel(level)
	if err != nil {
		e.Logger.Warn(err)
	}

	e.HTTPErrorHandler = func(err error, c echo.Context) {
		e.DefaultHTTPErrorHandler(err, c)
		e.Logger.Error(err)
	}
	e.Pre(middleware.AddTrailingSlash())
	e.Use(accessLog)

	limiter := rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.Burst)
	e.GET(
		route("featurestores/:store/entityTypes/:entity/entities/:id"),
		GetFeaturesHandler(reader, "store", "entity", "id"),
		RateLimit(limiter),
	)
	e.POST(route("explanation-config"), PostExplanationConfigHandler())

	return e
}

// accessLog writes one info line per request once the handler returned.
func accessLog(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)

		status := c.Response().Status
		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			status = httpErr.Code
		}
		req := c.Request()
		c.Logger().Infof("%s %s status=%d latency=%s err=%v", req.Method, req.URL.Path, status, time.Since(start), err)
		return err
	}
}

// RateLimit rejects requests with 429 once limiter runs out of tokens.
func RateLimit(limiter *rate.Limiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !limiter.Allow() {
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}
			return next(c)
		}
	}
}
