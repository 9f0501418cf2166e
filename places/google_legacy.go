// Copyright 2026 The Placebook Authors
// SPDX-License-Identifier: Apache-2.0

package places

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/avelardi/placebook/spatial"
)

const legacyBaseURL = "https://maps.googleapis.com/maps/api/place"

// detailsFields is the field mask sent to the legacy Place Details
// endpoint. Asking for less keeps the call in the cheaper SKU.
const detailsFields = "name,formatted_address,rating,user_ratings_total,geometry"

// LegacyClient talks to the original Places Web Service API
// (textsearch, autocomplete and details under
// maps.googleapis.com/maps/api/place). The key travels as a query
// parameter.
type LegacyClient struct {
	apiKey     string
	language   string
	region     string
	baseURL    string
	httpClient *http.Client
}

// NewLegacyClient creates a legacy API client. A nil httpClient falls
// back to http.DefaultClient.
func NewLegacyClient(apiKey, language, region string, httpClient *http.Client) *LegacyClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &LegacyClient{
		apiKey:     apiKey,
		language:   language,
		region:     region,
		baseURL:    legacyBaseURL,
		httpClient: httpClient,
	}
}

type legacySearchResponse struct {
	Results []struct {
		Name             string `json:"name"`
		FormattedAddress string `json:"formatted_address"`
		PlaceID          string `json:"place_id"`
	} `json:"results"`
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
}

type legacyAutocompleteResponse struct {
	Predictions []struct {
		Description string `json:"description"`
		PlaceID     string `json:"place_id"`
	} `json:"predictions"`
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
}

type legacyDetailsResponse struct {
	Result struct {
		Name             string   `json:"name"`
		FormattedAddress string   `json:"formatted_address"`
		Rating           *float64 `json:"rating"`
		UserRatingsTotal *int     `json:"user_ratings_total"`
		Geometry         *struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"result"`
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
}

func (c *LegacyClient) get(ctx context.Context, endpoint string, params url.Values, out any) error {
	params.Set("key", c.apiKey)
	if c.language != "" {
		params.Set("language", c.language)
	}

	reqURL := fmt.Sprintf("%s/%s/json?%s", c.baseURL, endpoint, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return &ResolveError{Kind: ErrorKindInvalidRequest, Message: "building request", Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &ResolveError{Kind: ErrorKindNetwork, Message: "places request failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ClassifyHTTPError(resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ResolveError{Kind: ErrorKindUnknown, Message: "decoding response", Err: err}
	}

	return nil
}

// Search implements Provider using the Text Search endpoint.
func (c *LegacyClient) Search(ctx context.Context, query string) ([]Candidate, error) {
	params := url.Values{}
	params.Set("query", query)
	if c.region != "" {
		params.Set("region", c.region)
	}

	var searchResp legacySearchResponse
	if err := c.get(ctx, "textsearch", params, &searchResp); err != nil {
		return nil, err
	}

	if serr := ClassifyProviderStatus(searchResp.Status); serr != nil {
		serr.Message = withProviderDetail(serr.Message, searchResp.ErrorMessage)

		return nil, serr
	}

	candidates := make([]Candidate, 0, len(searchResp.Results))
	for i, result := range searchResp.Results {
		candidates = append(candidates, Candidate{
			DisplayLabel: fmt.Sprintf("%s :: %s", result.Name, result.FormattedAddress),
			ID:           result.PlaceID,
			Rank:         i + 1,
		})
	}

	return candidates, nil
}

// Suggest implements Provider using the Query Autocomplete endpoint.
func (c *LegacyClient) Suggest(ctx context.Context, query string) ([]Candidate, error) {
	params := url.Values{}
	params.Set("input", query)

	var acResp legacyAutocompleteResponse
	if err := c.get(ctx, "autocomplete", params, &acResp); err != nil {
		return nil, err
	}

	if serr := ClassifyProviderStatus(acResp.Status); serr != nil {
		serr.Message = withProviderDetail(serr.Message, acResp.ErrorMessage)

		return nil, serr
	}

	candidates := make([]Candidate, 0, len(acResp.Predictions))
	for i, prediction := range acResp.Predictions {
		candidates = append(candidates, Candidate{
			DisplayLabel: prediction.Description,
			ID:           prediction.PlaceID,
			Rank:         i + 1,
		})
	}

	return candidates, nil
}

// Details implements Provider using the Place Details endpoint.
func (c *LegacyClient) Details(ctx context.Context, id string) (*Details, error) {
	params := url.Values{}
	params.Set("place_id", id)
	params.Set("fields", detailsFields)

	var detailsResp legacyDetailsResponse
	if err := c.get(ctx, "details", params, &detailsResp); err != nil {
		return nil, err
	}

	if serr := ClassifyProviderStatus(detailsResp.Status); serr != nil {
		serr.Message = withProviderDetail(serr.Message, detailsResp.ErrorMessage)

		return nil, serr
	}

	if detailsResp.Status == "ZERO_RESULTS" {
		return nil, &ResolveError{
			Kind:    ErrorKindNotFound,
			Message: fmt.Sprintf("no details for place %q", id),
		}
	}

	result := detailsResp.Result
	details := &Details{
		Name:    result.Name,
		Address: result.FormattedAddress,
	}

	// Absent numeric fields stay invalid; zero is a legitimate value and
	// must not be confused with absence.
	if result.Rating != nil {
		details.Rating = Rating{Value: *result.Rating, Valid: true}
	}

	if result.UserRatingsTotal != nil {
		details.Reviews = ReviewCount{Value: *result.UserRatingsTotal, Valid: true}
	}

	if result.Geometry != nil {
		details.Location = &spatial.Point{
			Lat: result.Geometry.Location.Lat,
			Lng: result.Geometry.Location.Lng,
		}
	}

	return details, nil
}

func withProviderDetail(message, detail string) string {
	if detail == "" {
		return message
	}

	return fmt.Sprintf("%s: %s", message, detail)
}
