// Copyright 2026 The Placebook Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"golang.org/x/text/language"

	"github.com/avelardi/placebook/directions"
	"github.com/avelardi/placebook/places"
	"github.com/avelardi/placebook/utils/httputils"
)

// providerOptions are the shared flags for everything that talks to
// the Google APIs.
type providerOptions struct {
	APIKey        string
	API           string
	Language      string
	Region        string
	Policy        string
	HTTPTrace     bool
	HTTPBodyTrace bool
}

var provOptions providerOptions

func registerProviderFlags() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&provOptions.APIKey, "api-key", "", "Google Maps API key (default: GOOGLE_MAPS_API_KEY, then ADC lookup)")
	flags.StringVar(&provOptions.API, "api", "legacy", "Places API generation to use: legacy or v1")
	flags.StringVar(&provOptions.Language, "language", "en", "BCP-47 language tag for provider responses")
	flags.StringVar(&provOptions.Region, "region", "", "region bias, e.g. us or fr")
	flags.StringVar(&provOptions.Policy, "policy", "ask", "disambiguation policy: auto, ask or review")
	flags.BoolVar(&provOptions.HTTPTrace, "http-trace", false, "trace HTTP requests and responses to stderr")
	flags.BoolVar(&provOptions.HTTPBodyTrace, "http-trace-body", false, "also dump HTTP response bodies when tracing")
}

func init() {
	registerProviderFlags()
}

func (o *providerOptions) validate() error {
	if o.Language != "" {
		if _, err := language.Parse(o.Language); err != nil {
			return fmt.Errorf("invalid --language %q: %w", o.Language, err)
		}
	}

	if o.API != "legacy" && o.API != "v1" {
		return fmt.Errorf("invalid --api %q (want legacy or v1)", o.API)
	}

	return nil
}

func (o *providerOptions) httpClient() *http.Client {
	var traceWriter io.Writer
	if o.HTTPTrace {
		traceWriter = os.Stderr
	}

	return httputils.NewClient(httputils.ClientOptions{
		UserAgent:   "placebook/" + Version,
		TraceWriter: traceWriter,
		TraceBody:   o.HTTPBodyTrace,
	})
}

// app bundles everything a command needs once flags are resolved.
type app struct {
	session    *places.Session
	resolver   *places.Resolver
	driving    *directions.Client
	httpClient *http.Client
}

// newApp validates flags, resolves credentials and wires the provider,
// resolver, session and directions client.
func (o *providerOptions) newApp(ctx context.Context) (*app, error) {
	if err := o.validate(); err != nil {
		return nil, err
	}

	policy, err := places.ParsePolicy(o.Policy)
	if err != nil {
		return nil, err
	}

	apiKey, err := places.ResolveAPIKey(ctx, o.APIKey)
	if err != nil {
		return nil, err
	}

	httpClient := o.httpClient()

	var provider places.Provider
	if o.API == "v1" {
		provider = places.NewV1Client(apiKey, o.Language, o.Region, httpClient)
	} else {
		provider = places.NewLegacyClient(apiKey, o.Language, o.Region, httpClient)
	}

	resolver := places.NewResolver(provider)

	return &app{
		session:    places.NewSession(resolver, policy),
		resolver:   resolver,
		driving:    directions.NewClient(apiKey, o.Language, httpClient),
		httpClient: httpClient,
	}, nil
}
