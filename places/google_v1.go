// Copyright 2026 The Placebook Authors
// SPDX-License-Identifier: Apache-2.0

package places

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/avelardi/placebook/spatial"
)

const v1BaseURL = "https://places.googleapis.com/v1"

// V1Client talks to the Places API (New) under
// places.googleapis.com/v1. The key travels in the X-Goog-Api-Key
// header and every call carries an explicit field mask.
type V1Client struct {
	apiKey     string
	language   string
	region     string
	baseURL    string
	httpClient *http.Client
}

// NewV1Client creates a Places API (New) client. A nil httpClient
// falls back to http.DefaultClient.
func NewV1Client(apiKey, language, region string, httpClient *http.Client) *V1Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &V1Client{
		apiKey:     apiKey,
		language:   language,
		region:     region,
		baseURL:    v1BaseURL,
		httpClient: httpClient,
	}
}

type v1Place struct {
	ID          string `json:"id"`
	DisplayName struct {
		Text string `json:"text"`
	} `json:"displayName"`
	FormattedAddress string   `json:"formattedAddress"`
	Rating           *float64 `json:"rating"`
	UserRatingCount  *int     `json:"userRatingCount"`
	Location         *struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"location"`
}

type v1SearchResponse struct {
	Places []v1Place `json:"places"`
}

type v1AutocompleteResponse struct {
	Suggestions []struct {
		PlacePrediction struct {
			PlaceID string `json:"placeId"`
			Text    struct {
				Text string `json:"text"`
			} `json:"text"`
		} `json:"placePrediction"`
	} `json:"suggestions"`
}

type v1ErrorResponse struct {
	Error struct {
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

func (c *V1Client) do(ctx context.Context, method, path, fieldMask string, body, out any) error {
	var reader io.Reader

	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &ResolveError{Kind: ErrorKindInvalidRequest, Message: "encoding request", Err: err}
		}

		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &ResolveError{Kind: ErrorKindInvalidRequest, Message: "building request", Err: err}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-Api-Key", c.apiKey)
	req.Header.Set("X-Goog-FieldMask", fieldMask)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &ResolveError{Kind: ErrorKindNetwork, Message: "places request failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		serr := ClassifyHTTPError(resp.StatusCode)

		// The v1 API reports detail in a JSON error envelope.
		var errResp v1ErrorResponse
		if decodeErr := json.NewDecoder(resp.Body).Decode(&errResp); decodeErr == nil {
			serr.Message = withProviderDetail(serr.Message, errResp.Error.Message)
		}

		return serr
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ResolveError{Kind: ErrorKindUnknown, Message: "decoding response", Err: err}
	}

	return nil
}

// Search implements Provider using places:searchText.
func (c *V1Client) Search(ctx context.Context, query string) ([]Candidate, error) {
	body := map[string]any{"textQuery": query}
	if c.language != "" {
		body["languageCode"] = c.language
	}

	if c.region != "" {
		body["regionCode"] = c.region
	}

	const mask = "places.id,places.displayName,places.formattedAddress"

	var searchResp v1SearchResponse
	if err := c.do(ctx, http.MethodPost, "/places:searchText", mask, body, &searchResp); err != nil {
		return nil, err
	}

	candidates := make([]Candidate, 0, len(searchResp.Places))
	for i, place := range searchResp.Places {
		candidates = append(candidates, Candidate{
			DisplayLabel: fmt.Sprintf("%s :: %s", place.DisplayName.Text, place.FormattedAddress),
			ID:           place.ID,
			Rank:         i + 1,
		})
	}

	return candidates, nil
}

// Suggest implements Provider using places:autocomplete.
func (c *V1Client) Suggest(ctx context.Context, query string) ([]Candidate, error) {
	body := map[string]any{"input": query}
	if c.language != "" {
		body["languageCode"] = c.language
	}

	const mask = "suggestions.placePrediction.placeId,suggestions.placePrediction.text"

	var acResp v1AutocompleteResponse
	if err := c.do(ctx, http.MethodPost, "/places:autocomplete", mask, body, &acResp); err != nil {
		return nil, err
	}

	candidates := make([]Candidate, 0, len(acResp.Suggestions))
	for i, suggestion := range acResp.Suggestions {
		prediction := suggestion.PlacePrediction
		candidates = append(candidates, Candidate{
			DisplayLabel: prediction.Text.Text,
			ID:           prediction.PlaceID,
			Rank:         i + 1,
		})
	}

	return candidates, nil
}

// Details implements Provider fetching a single place resource.
func (c *V1Client) Details(ctx context.Context, id string) (*Details, error) {
	const mask = "id,displayName,formattedAddress,rating,userRatingCount,location"

	var place v1Place
	if err := c.do(ctx, http.MethodGet, "/places/"+id, mask, nil, &place); err != nil {
		return nil, err
	}

	details := &Details{
		Name:    place.DisplayName.Text,
		Address: place.FormattedAddress,
	}

	if place.Rating != nil {
		details.Rating = Rating{Value: *place.Rating, Valid: true}
	}

	if place.UserRatingCount != nil {
		details.Reviews = ReviewCount{Value: *place.UserRatingCount, Valid: true}
	}

	if place.Location != nil {
		details.Location = &spatial.Point{
			Lat: place.Location.Latitude,
			Lng: place.Location.Longitude,
		}
	}

	return details, nil
}
