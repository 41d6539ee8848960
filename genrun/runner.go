// Package genrun runs a single text-generation prompt, preferring the
// vendor SDK and falling back to a raw REST call when the SDK is
// unavailable or fails.
package genrun

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/golang/glog"

	"github.com/liuzl/gemini-tools/gemini"
)

// Generator is the optional higher-level collaborator. A nil Generator
// means the SDK path is disabled and only the fallback runs.
type Generator interface {
	Generate(ctx context.Context, model, prompt string) (string, error)
}

// Sources of a Result.
const (
	SourceSDK  = "vendor SDK"
	SourceREST = "REST fallback"
)

// Result is the outcome of one run. Exactly one path produced it.
type Result struct {
	Text   string
	Source string
	// Note records why the SDK path was skipped, when it was.
	Note string
}

// Runner owns the two-step flow: try the SDK once, else POST to the
// legacy generateText endpoint. The two paths are never combined.
type Runner struct {
	SDK      Generator
	Fallback *gemini.Client
}

// Run produces a result via the SDK if possible, else via REST. Any
// REST response counts as a result, whatever its status or embedded
// error fields; only a fallback transport failure is returned as error.
func (r *Runner) Run(ctx context.Context, model, prompt string) (*Result, error) {
	var note string
	if r.SDK == nil {
		note = "vendor SDK disabled"
	} else {
		out, err := r.SDK.Generate(ctx, model, prompt)
		if err == nil {
			return &Result{Text: out, Source: SourceSDK}, nil
		}
		note = err.Error()
	}
	glog.V(1).Infof("SDK path not used (%s); falling back to REST.", note)

	resp, err := r.Fallback.GenerateText(ctx, model, prompt)
	if err != nil {
		return nil, err
	}
	return &Result{Text: renderBody(resp.Body), Source: SourceREST, Note: note}, nil
}

// renderBody pretty-prints a JSON response for display and passes
// anything else through as-is.
func renderBody(body []byte) string {
	var data any
	if err := json.Unmarshal(body, &data); err != nil {
		return string(body)
	}
	pretty, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return string(body)
	}
	return string(pretty)
}

// sdkShape is one known surface of the vendor SDKs. Shapes are probed
// in priority order; any error, from construction or the call itself,
// means "this shape is unavailable" and the next one is tried.
type sdkShape struct {
	name     string
	generate func(ctx context.Context, apiKey, model, prompt string) (string, error)
}

// SDKGenerator probes the known SDK call shapes in a fixed order.
type SDKGenerator struct {
	apiKey string
	shapes []sdkShape
}

// NewSDKGenerator builds the standard shape list: the current genai
// client surface first, then the legacy generative-ai-go surface.
func NewSDKGenerator(apiKey string) *SDKGenerator {
	return &SDKGenerator{
		apiKey: apiKey,
		shapes: []sdkShape{
			{name: "genai Models.GenerateContent", generate: generateViaGenAI},
			{name: "generative-ai-go GenerativeModel", generate: generateViaLegacySDK},
		},
	}
}

// Generate tries each shape once and returns the first success. All
// failures fold into a single error describing the last one.
func (g *SDKGenerator) Generate(ctx context.Context, model, prompt string) (string, error) {
	var lastErr error
	for _, shape := range g.shapes {
		out, err := shape.generate(ctx, g.apiKey, model, prompt)
		if err == nil {
			glog.V(1).Infof("SDK call shape %q succeeded.", shape.name)
			return out, nil
		}
		glog.V(1).Infof("SDK call shape %q unavailable: %v", shape.name, err)
		lastErr = err
	}
	if lastErr == nil {
		return "", errors.New("no SDK call shapes configured")
	}
	return "", fmt.Errorf("SDK call failed: %w", lastErr)
}
