package controller

import (
	"context"
	"time"

	"aperture/internal/core"
	"aperture/internal/gateway"
	"aperture/internal/log"
)

// Fetcher is the gateway's read side.
type Fetcher interface {
	FetchMonth(ctx context.Context, endpoint, month, user string) (core.MonthData, error)
}

// MonthCache is the local write-through copy of fetched months.
type MonthCache interface {
	Put(ctx context.Context, month, user string, data core.MonthData) error
	Get(ctx context.Context, month, user string) (core.MonthData, time.Time, bool, error)
}

// Loader executes FetchRequests: gateway first, cache write-through on
// success, cache fallback (marked stale) on failure.
type Loader struct {
	fetcher Fetcher
	cache   MonthCache
	logger  *log.Logger
}

func NewLoader(fetcher Fetcher, cache MonthCache, logger *log.Logger) *Loader {
	return &Loader{fetcher: fetcher, cache: cache, logger: logger.WithComponent(log.ComponentApp)}
}

// Load runs one fetch to completion. It never returns an error; all
// failure modes are folded into the FetchResult.
func (l *Loader) Load(ctx context.Context, req FetchRequest) FetchResult {
	data, err := l.fetcher.FetchMonth(ctx, req.Endpoint, req.Month, req.User)
	if err == nil {
		if l.cache != nil {
			if cacheErr := l.cache.Put(ctx, req.Month, req.User, data); cacheErr != nil {
				l.logger.Warn("Month cache write failed",
					log.FieldMonth, req.Month, log.FieldError, cacheErr)
			}
		}
		return FetchResult{
			Generation: req.Generation,
			Month:      req.Month,
			Data:       data,
			HasData:    true,
			FetchedAt:  time.Now(),
		}
	}

	msg := errorMessage(err)
	if l.cache != nil {
		cached, fetchedAt, ok, cacheErr := l.cache.Get(ctx, req.Month, req.User)
		if cacheErr != nil {
			l.logger.Warn("Month cache read failed",
				log.FieldMonth, req.Month, log.FieldError, cacheErr)
		}
		if ok {
			l.logger.Info("Serving cached month after fetch failure",
				log.FieldMonth, req.Month, log.FieldCacheHit, true)
			return FetchResult{
				Generation: req.Generation,
				Month:      req.Month,
				Data:       cached,
				HasData:    true,
				Err:        msg,
				Stale:      true,
				FetchedAt:  fetchedAt,
			}
		}
	}

	return FetchResult{Generation: req.Generation, Month: req.Month, Err: msg}
}

// errorMessage keeps the user-facing string stable for transport
// failures while passing backend messages through verbatim.
func errorMessage(err error) string {
	if gateway.IsConnectionFailed(err) {
		return "Connection Failed"
	}
	return err.Error()
}
