package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/dm/ctrack/internal/model"
)

const (
	endpointWorldwide  = "/v3/covid-19/all"
	endpointCountries  = "/v3/covid-19/countries"
	endpointHistorical = "/v3/covid-19/historical"
)

// GetWorldwide fetches the worldwide summary from /v3/covid-19/all.
func (c *DefaultClient) GetWorldwide(ctx context.Context) (*RegionStats, error) {
	body, err := c.doGet(ctx, endpointWorldwide)
	if err != nil {
		return nil, fmt.Errorf("GetWorldwide: %w", err)
	}

	var result RegionStats
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("GetWorldwide decode: %w", malformed(err))
	}
	return &result, nil
}

// GetCountries fetches the per-country summaries from /v3/covid-19/countries,
// in the order the API returns them.
func (c *DefaultClient) GetCountries(ctx context.Context) ([]RegionStats, error) {
	body, err := c.doGet(ctx, endpointCountries)
	if err != nil {
		return nil, fmt.Errorf("GetCountries: %w", err)
	}

	var result []RegionStats
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("GetCountries decode: %w", malformed(err))
	}
	return result, nil
}

// GetCountry fetches one country's summary. query is an ISO code or a country
// name; the API resolves either.
func (c *DefaultClient) GetCountry(ctx context.Context, query string) (*RegionStats, error) {
	if query == "" {
		return nil, fmt.Errorf("GetCountry: query must not be empty")
	}
	body, err := c.doGet(ctx, endpointCountries+"/"+url.PathEscape(query))
	if err != nil {
		return nil, fmt.Errorf("GetCountry: %w", err)
	}

	var result RegionStats
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("GetCountry decode: %w", malformed(err))
	}
	return &result, nil
}

// GetHistorical fetches the cumulative series for the last lastDays days.
// An empty query means worldwide, whose payload is the timeline itself; a
// country payload wraps it in {"timeline": ...}. lastDays <= 0 requests the
// full history.
func (c *DefaultClient) GetHistorical(ctx context.Context, query string, lastDays int) (*Timeline, error) {
	days := "all"
	if lastDays > 0 {
		days = strconv.Itoa(lastDays)
	}

	path := endpointHistorical + "/all"
	if query != "" {
		path = endpointHistorical + "/" + url.PathEscape(query)
	}
	path += "?lastdays=" + days

	body, err := c.doGet(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("GetHistorical: %w", err)
	}

	if query == "" {
		var result Timeline
		if err := json.Unmarshal(body, &result); err != nil {
			return nil, fmt.Errorf("GetHistorical decode: %w", malformed(err))
		}
		return &result, nil
	}

	var wrapped countryHistory
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return nil, fmt.Errorf("GetHistorical decode: %w", malformed(err))
	}
	if wrapped.Timeline == nil {
		return nil, fmt.Errorf("GetHistorical decode: %w: timeline missing", model.ErrMalformedInput)
	}
	return wrapped.Timeline, nil
}

// malformed tags a JSON decode error as ErrMalformedInput unless it already is.
func malformed(err error) error {
	if errors.Is(err, model.ErrMalformedInput) {
		return err
	}
	return fmt.Errorf("%w: %v", model.ErrMalformedInput, err)
}
