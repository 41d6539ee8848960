// Package keycheck validates a Generative Language API key by probing
// the models-list endpoint and classifying what comes back.
package keycheck

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/liuzl/gemini-tools/gemini"
	"github.com/liuzl/gemini-tools/internal/textutil"
)

// Outcome is the classification of a single validation attempt.
type Outcome int

const (
	// OutcomeModels: HTTP 200 with a recognized model listing.
	OutcomeModels Outcome = iota
	// OutcomeOpaque: HTTP 200 but the body shape was not recognized.
	// Still treated as success; the key did pass authentication.
	OutcomeOpaque
	// OutcomeUnauthorized: HTTP 401 or 403.
	OutcomeUnauthorized
	// OutcomeUnexpected: any other HTTP status.
	OutcomeUnexpected
	// OutcomeNetwork: no HTTP response was received at all.
	OutcomeNetwork
)

// ExitCode maps an outcome to the process exit code the tool reports.
func (o Outcome) ExitCode() int {
	switch o {
	case OutcomeModels, OutcomeOpaque:
		return 0
	case OutcomeNetwork:
		return 3
	case OutcomeUnauthorized:
		return 4
	default:
		return 5
	}
}

// Display limits. Names and bodies are cut for the console, never for
// classification.
const (
	maxListedModels  = 10
	nameDisplayLimit = 200
	bodyDisplayLimit = 400
)

// The same logical model listing appears under different field names
// across API versions. Probed in priority order; first list wins.
var modelListFields = []string{"models", "model", "availableModels"}

// Per-entry name fields, also in priority order.
var modelNameFields = []string{"name", "model"}

// Report is the result of one validation attempt.
type Report struct {
	Outcome    Outcome
	StatusCode int
	ModelNames []string
	Body       []byte
	// Unparsable marks a 200 whose body was not valid JSON.
	Unparsable bool
	// Err is set only for OutcomeNetwork.
	Err error
}

// Check issues the single models-list request and classifies the result.
// Transport failures become OutcomeNetwork; they are never returned as
// errors from here.
func Check(ctx context.Context, client *gemini.Client) Report {
	resp, err := client.ListModels(ctx)
	if err != nil {
		return Report{Outcome: OutcomeNetwork, Err: err}
	}
	return Classify(resp.StatusCode, resp.Body)
}

// Classify maps an HTTP status and body to an outcome.
func Classify(status int, body []byte) Report {
	r := Report{StatusCode: status, Body: body}

	switch {
	case status == 200:
		var data map[string]any
		if err := json.Unmarshal(body, &data); err != nil {
			r.Outcome = OutcomeOpaque
			r.Unparsable = true
			return r
		}
		if names, ok := extractModelNames(data); ok {
			r.Outcome = OutcomeModels
			r.ModelNames = names
			return r
		}
		r.Outcome = OutcomeOpaque
		return r
	case status == 401 || status == 403:
		r.Outcome = OutcomeUnauthorized
		return r
	default:
		r.Outcome = OutcomeUnexpected
		return r
	}
}

// extractModelNames probes the known list fields in priority order and
// returns the display name of each entry in the first list found.
func extractModelNames(data map[string]any) ([]string, bool) {
	for _, field := range modelListFields {
		list, ok := data[field].([]any)
		if !ok {
			continue
		}
		names := make([]string, 0, len(list))
		for _, entry := range list {
			names = append(names, entryName(entry))
		}
		return names, true
	}
	return nil, false
}

// entryName extracts a printable name from one listing entry, which may
// be an object or a bare string.
func entryName(entry any) string {
	switch e := entry.(type) {
	case map[string]any:
		for _, field := range modelNameFields {
			if s, ok := e[field].(string); ok && s != "" {
				return s
			}
		}
		raw, err := json.Marshal(e)
		if err != nil {
			return fmt.Sprint(e)
		}
		return string(raw)
	case string:
		return e
	default:
		return fmt.Sprint(entry)
	}
}

// Fprint renders the report the way the tool presents it to the user.
func (r Report) Fprint(w io.Writer) {
	if r.Outcome == OutcomeNetwork {
		fmt.Fprintf(w, "Network error while attempting to validate the key: %v\n", r.Err)
		return
	}

	fmt.Fprintf(w, "- HTTP status: %d\n", r.StatusCode)

	body := textutil.Truncate(strings.TrimSpace(string(r.Body)), bodyDisplayLimit)

	switch r.Outcome {
	case OutcomeModels:
		fmt.Fprintf(w, "- Key appears valid. %d model(s) returned:\n", len(r.ModelNames))
		for i, name := range r.ModelNames {
			if i == maxListedModels {
				break
			}
			fmt.Fprintf(w, "  - %s\n", textutil.Truncate(name, nameDisplayLimit))
		}
	case OutcomeOpaque:
		if r.Unparsable {
			fmt.Fprintln(w, "- Received 200 but response is not valid JSON. Key may be partially valid.")
			return
		}
		fmt.Fprintln(w, "- Key appears valid (200). Response:")
		fmt.Fprintln(w, textutil.Indent(body, "  "))
	case OutcomeUnauthorized:
		fmt.Fprintln(w, "- Unauthorized or forbidden. The API key is invalid or lacks permissions.")
		if body != "" {
			fmt.Fprintln(w, textutil.Indent(body, "  "))
		}
	default:
		fmt.Fprintln(w, "- Received unexpected status. Response body (truncated):")
		fmt.Fprintln(w, textutil.Indent(body, "  "))
	}
}

// KeyFormatHint reports which vendor's key shape the credential
// resembles. Purely informational: the network check runs regardless.
func KeyFormatHint(key string) string {
	switch {
	case strings.HasPrefix(key, "AIza"):
		return "- Looks like a Google API key (starts with 'AIza')."
	case strings.HasPrefix(key, "sk-"):
		return "- Looks like an OpenAI-style secret key (starts with 'sk-')."
	default:
		return "- Key format unknown. Will still attempt a validation request."
	}
}

// KeyHint returns the last 4 characters of the key for safe display.
func KeyHint(key string) string {
	if len(key) < 4 {
		return "****"
	}
	return key[len(key)-4:]
}
