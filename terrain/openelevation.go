// terrain/openelevation.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package terrain

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/mmp/ifpd/log"
	"github.com/mmp/ifpd/math"
	"github.com/mmp/ifpd/util"

	"golang.org/x/sync/errgroup"
)

const DefaultURL = "https://api.open-elevation.com/api/v1/lookup"

type OpenElevationConfig struct {
	URL         string
	BatchSize   int           // maximum points per request
	MaxAttempts int           // per batch
	RetryDelay  time.Duration // between attempts
	Timeout     time.Duration // per attempt
	Concurrency int           // maximum batches in flight
}

var DefaultOpenElevationConfig = OpenElevationConfig{
	URL:         DefaultURL,
	BatchSize:   50,
	MaxAttempts: 3,
	RetryDelay:  time.Second,
	Timeout:     5 * time.Second,
	Concurrency: 4,
}

// OpenElevation looks up elevations using an open-elevation compatible
// web service. If any part of a request can't be fetched, the whole
// request is answered by the fallback provider instead so that a result
// never mixes real and estimated data.
type OpenElevation struct {
	config   OpenElevationConfig
	client   *http.Client
	cache    *Cache
	fallback Provider
	lg       *log.Logger

	requests atomic.Int64 // HTTP requests issued
}

// NewOpenElevation returns a provider using the given configuration; zero
// fields take their values from DefaultOpenElevationConfig. cache may be
// nil.
func NewOpenElevation(config OpenElevationConfig, cache *Cache, lg *log.Logger) *OpenElevation {
	d := DefaultOpenElevationConfig
	if config.URL == "" {
		config.URL = d.URL
	}
	if config.BatchSize <= 0 {
		config.BatchSize = d.BatchSize
	}
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = d.MaxAttempts
	}
	if config.RetryDelay < 0 {
		config.RetryDelay = d.RetryDelay
	}
	if config.Timeout <= 0 {
		config.Timeout = d.Timeout
	}
	if config.Concurrency <= 0 {
		config.Concurrency = d.Concurrency
	}

	return &OpenElevation{
		config:   config,
		client:   &http.Client{},
		cache:    cache,
		fallback: Synthetic{},
		lg:       lg,
	}
}

// Requests returns the number of HTTP requests that have been issued.
func (o *OpenElevation) Requests() int64 {
	return o.requests.Load()
}

func (o *OpenElevation) Elevations(ctx context.Context, pts []math.Point2LL) ([]float64, bool) {
	elev := make([]float64, len(pts))

	var missing []int
	for i, p := range pts {
		if e, ok := o.cache.Get(p); ok {
			elev[i] = e
		} else {
			missing = append(missing, i)
		}
	}
	if len(missing) == 0 {
		return elev, false
	}

	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(o.config.Concurrency)
	for _, batch := range util.Chunk(missing, o.config.BatchSize) {
		eg.Go(func() error {
			locs := util.MapSlice(batch, func(i int) math.Point2LL { return pts[i] })
			e, err := o.fetchBatch(gctx, locs)
			if err != nil {
				return err
			}
			// Each batch writes to disjoint indices.
			for j, idx := range batch {
				elev[idx] = e[j]
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		o.lg.Warn("elevation lookup failed; using synthetic terrain", "error", err,
			"points", len(pts), "url", o.config.URL)
		return o.fallback.Elevations(ctx, pts)
	}

	for _, idx := range missing {
		o.cache.Add(pts[idx], elev[idx])
	}
	o.lg.Debug("fetched elevations", "points", len(pts), "fetched", len(missing))

	return elev, false
}

func (o *OpenElevation) fetchBatch(ctx context.Context, pts []math.Point2LL) ([]float64, error) {
	var elev []float64
	var lastErr error
	ok := util.DoWithBackoff(ctx, o.config.MaxAttempts, o.config.RetryDelay, func(attempt int) util.Status {
		var status util.Status
		elev, status, lastErr = o.lookup(ctx, pts)
		if lastErr != nil {
			o.lg.Info("elevation request failed", "attempt", attempt+1, "points", len(pts), "error", lastErr)
		}
		return status
	})

	if ok {
		return elev, nil
	}
	if lastErr == nil {
		lastErr = ctx.Err()
	}
	return nil, lastErr
}

type lookupLocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type lookupRequest struct {
	Locations []lookupLocation `json:"locations"`
}

type lookupResponse struct {
	Results []struct {
		Elevation *float64 `json:"elevation"` // meters
	} `json:"results"`
}

// lookup makes a single request for the given points' elevations,
// returned in feet.
func (o *OpenElevation) lookup(ctx context.Context, pts []math.Point2LL) ([]float64, util.Status, error) {
	ctx, cancel := context.WithTimeout(ctx, o.config.Timeout)
	defer cancel()

	body, err := json.Marshal(lookupRequest{
		Locations: util.MapSlice(pts, func(p math.Point2LL) lookupLocation {
			return lookupLocation{Latitude: p.Latitude(), Longitude: p.Longitude()}
		}),
	})
	if err != nil {
		return nil, util.StatusPermanentFailure, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.config.URL, bytes.NewReader(body))
	if err != nil {
		return nil, util.StatusPermanentFailure, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	o.requests.Add(1)
	resp, err := o.client.Do(req)
	if err != nil {
		return nil, util.StatusTransientFailure, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, util.StatusTransientFailure, fmt.Errorf("%s: %d: %w", o.config.URL, resp.StatusCode, ErrHTTPStatus)
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, util.StatusTransientFailure, err
	}

	var lr lookupResponse
	if err := json.Unmarshal(b, &lr); err != nil {
		return nil, util.StatusTransientFailure, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if len(lr.Results) != len(pts) {
		return nil, util.StatusTransientFailure,
			fmt.Errorf("%w: %d results for %d points", ErrMalformedResponse, len(lr.Results), len(pts))
	}

	elev := make([]float64, len(pts))
	for i, r := range lr.Results {
		if r.Elevation == nil {
			return nil, util.StatusTransientFailure, fmt.Errorf("%w: no elevation for result %d", ErrMalformedResponse, i)
		}
		elev[i] = *r.Elevation * math.FeetPerMeter
	}
	return elev, util.StatusSuccess, nil
}
