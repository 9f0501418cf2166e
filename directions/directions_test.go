// Copyright 2026 The Placebook Authors
// SPDX-License-Identifier: Apache-2.0

package directions

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelardi/placebook/places"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient("test-key", "en", server.Client())
	client.baseURL = server.URL

	return client
}

func routeBody(durationSecs int, trafficSecs int) string {
	traffic := ""
	if trafficSecs > 0 {
		traffic = fmt.Sprintf(`, "duration_in_traffic": {"value": %d}`, trafficSecs)
	}

	return fmt.Sprintf(`{
		"status": "OK",
		"routes": [{"legs": [{"duration": {"value": %d}%s}]}]
	}`, durationSecs, traffic)
}

func TestDrivingMinutesPrefersTraffic(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/json", r.URL.Path)
		assert.Equal(t, "Home", r.URL.Query().Get("origin"))
		assert.Equal(t, "Office", r.URL.Query().Get("destination"))
		assert.Equal(t, "driving", r.URL.Query().Get("mode"))
		assert.Equal(t, "now", r.URL.Query().Get("departure_time"))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		fmt.Fprint(w, routeBody(600, 900))
	})

	minutes, err := client.DrivingMinutes(context.Background(), "Home", "Office")
	require.NoError(t, err)
	assert.Equal(t, 15, minutes)
}

func TestDrivingMinutesWithoutTraffic(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, routeBody(600, 0))
	})

	minutes, err := client.DrivingMinutes(context.Background(), "Home", "Office")
	require.NoError(t, err)
	assert.Equal(t, 10, minutes)
}

func TestDrivingMinutesRoundsToNearestMinute(t *testing.T) {
	tests := []struct {
		seconds int
		minutes int
	}{
		{89, 1},
		{90, 2},
		{29, 0},
		{61, 1},
	}

	for _, tc := range tests {
		t.Run(fmt.Sprintf("%ds", tc.seconds), func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				fmt.Fprint(w, routeBody(tc.seconds, 0))
			})

			minutes, err := client.DrivingMinutes(context.Background(), "A", "B")
			require.NoError(t, err)
			assert.Equal(t, tc.minutes, minutes)
		})
	}
}

func TestDrivingMinutesNoRoute(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"status": "OK", "routes": []}`)
	})

	_, err := client.DrivingMinutes(context.Background(), "Home", "Atlantis")
	require.Error(t, err)

	var rerr *places.ResolveError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, places.ErrorKindNotFound, rerr.Kind)
}

func TestDrivingMinutesProviderStatusError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"status": "OVER_QUERY_LIMIT", "error_message": "daily quota reached"}`)
	})

	_, err := client.DrivingMinutes(context.Background(), "Home", "Office")
	require.Error(t, err)
	assert.True(t, places.IsQuotaExceededError(err))
	assert.Contains(t, err.Error(), "daily quota reached")
}

func TestDrivingMinutesHTTPError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := client.DrivingMinutes(context.Background(), "Home", "Office")
	require.Error(t, err)
	assert.True(t, places.IsRateLimitError(err))
}
