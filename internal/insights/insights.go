// Package insights asks a Gemini model for short policy insights about the
// registered community.
//
// Insights are advisory. With no residents or no API key the result is
// empty, and model failures are logged and reported as an empty result so
// callers never block on them.
package insights

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/agentstation/cadastro/pkg/bundle"
	"github.com/agentstation/cadastro/pkg/constants"
	"github.com/agentstation/cadastro/pkg/errors"
	"github.com/agentstation/cadastro/pkg/logging"
)

// Insight is one finding returned by the model.
type Insight struct {
	Title    string `json:"title" yaml:"title"`
	Content  string `json:"content" yaml:"content"`
	Category string `json:"category" yaml:"category"`
}

// Categories suggested to the model.
var Categories = []string{
	"Community Health",
	"Education and Youth",
	"Urban Development",
	"Socioeconomic Profile",
}

// Backend produces a JSON array of insights for a prompt.
type Backend interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Client builds prompts from resident samples and parses model output.
type Client struct {
	backend  Backend
	sample   int
	language string
}

// New creates a Client. Without a backend option the client is disabled and
// Generate returns an empty result.
func New(opts ...Option) (*Client, error) {
	o, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}
	return &Client{backend: o.backend, sample: o.sample, language: o.language}, nil
}

// Enabled reports whether a model backend is configured.
func (c *Client) Enabled() bool {
	return c != nil && c.backend != nil
}

// Generate returns insights for the first residents of the registry.
func (c *Client) Generate(ctx context.Context, residents []bundle.Resident) []Insight {
	if len(residents) == 0 || !c.Enabled() {
		return []Insight{}
	}
	logger := logging.FromContext(ctx)

	ctx, cancel := context.WithTimeout(ctx, constants.InsightsTimeout)
	defer cancel()

	text, err := c.backend.Generate(ctx, c.Prompt(residents))
	if err != nil {
		logger.Warn().Err(err).Msg("Insights request failed")
		return []Insight{}
	}

	out, err := Parse(text)
	if err != nil {
		logger.Warn().Err(err).Msg("Insights response discarded")
		return []Insight{}
	}
	logger.Debug().Int("insights", len(out)).Msg("Insights generated")
	return out
}

// Prompt renders the request for a sample of residents.
func (c *Client) Prompt(residents []bundle.Resident) string {
	if len(residents) > c.sample {
		residents = residents[:c.sample]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "As a public policy analyst, examine this demographic data from a community and provide %d strategic insights in JSON.\n", constants.InsightCount)
	fmt.Fprintf(&b, "Suggested categories: %s.\n\nData sample:\n", strings.Join(Categories, ", "))
	for _, r := range residents {
		neighborhood := r.Neighborhood
		if neighborhood == "" {
			neighborhood = "N/A"
		}
		fmt.Fprintf(&b, "- %s, %s, Neighborhood: %s, Birth: %s\n", r.Name, r.Relationship, neighborhood, r.BirthDate)
	}
	fmt.Fprintf(&b, "\nRespond strictly in %s as a JSON ARRAY [{title, content, category}].", c.language)
	return b.String()
}

// Parse decodes a model response.
func Parse(text string) ([]Insight, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return []Insight{}, nil
	}
	var out []Insight
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return nil, errors.WrapParse("json", "insights response", err)
	}
	if out == nil {
		out = []Insight{}
	}
	return out, nil
}
