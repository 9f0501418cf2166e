// Copyright 2026 The Placebook Authors
// SPDX-License-Identifier: Apache-2.0

// Package directions computes driving times between confirmed places
// using the Google Directions API.
package directions

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"

	"github.com/avelardi/placebook/places"
)

const directionsBaseURL = "https://maps.googleapis.com/maps/api/directions"

// Client queries the Directions API for driving durations. Like the
// places clients it never retries; a failed leg is reported, not
// recovered.
type Client struct {
	apiKey     string
	language   string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a directions client. A nil httpClient falls back
// to http.DefaultClient.
func NewClient(apiKey, language string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		apiKey:     apiKey,
		language:   language,
		baseURL:    directionsBaseURL,
		httpClient: httpClient,
	}
}

type directionsResponse struct {
	Routes []struct {
		Legs []struct {
			Duration *struct {
				Value int `json:"value"` // seconds
			} `json:"duration"`
			DurationInTraffic *struct {
				Value int `json:"value"` // seconds
			} `json:"duration_in_traffic"`
		} `json:"legs"`
	} `json:"routes"`
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
}

// DrivingMinutes returns the current driving time between two
// addresses in whole minutes, traffic included when the provider
// reports it.
func (c *Client) DrivingMinutes(ctx context.Context, origin, destination string) (int, error) {
	params := url.Values{}
	params.Set("origin", origin)
	params.Set("destination", destination)
	params.Set("mode", "driving")
	params.Set("departure_time", "now")
	params.Set("key", c.apiKey)

	if c.language != "" {
		params.Set("language", c.language)
	}

	reqURL := fmt.Sprintf("%s/json?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return 0, &places.ResolveError{Kind: places.ErrorKindInvalidRequest, Message: "building request", Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, &places.ResolveError{Kind: places.ErrorKindNetwork, Message: "directions request failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, places.ClassifyHTTPError(resp.StatusCode)
	}

	var dirResp directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&dirResp); err != nil {
		return 0, &places.ResolveError{Kind: places.ErrorKindUnknown, Message: "decoding response", Err: err}
	}

	if serr := places.ClassifyProviderStatus(dirResp.Status); serr != nil {
		if dirResp.ErrorMessage != "" {
			serr.Message = fmt.Sprintf("%s: %s", serr.Message, dirResp.ErrorMessage)
		}

		return 0, serr
	}

	if len(dirResp.Routes) == 0 || len(dirResp.Routes[0].Legs) == 0 {
		return 0, &places.ResolveError{
			Kind:    places.ErrorKindNotFound,
			Message: fmt.Sprintf("no route from %q to %q", origin, destination),
		}
	}

	leg := dirResp.Routes[0].Legs[0]

	seconds := 0
	switch {
	case leg.DurationInTraffic != nil:
		seconds = leg.DurationInTraffic.Value
	case leg.Duration != nil:
		seconds = leg.Duration.Value
	default:
		return 0, &places.ResolveError{
			Kind:    places.ErrorKindUnknown,
			Message: "route leg has no duration",
		}
	}

	return int(math.Round(float64(seconds) / 60)), nil
}
