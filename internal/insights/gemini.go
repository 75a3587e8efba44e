package insights

import (
	"context"

	"google.golang.org/genai"

	"github.com/agentstation/cadastro/pkg/constants"
	"github.com/agentstation/cadastro/pkg/errors"
)

// Gemini is a Backend calling the Gemini API.
type Gemini struct {
	client *genai.Client
	model  string
}

var _ Backend = (*Gemini)(nil)

// NewGemini creates a Gemini backend authenticated with apiKey. An empty
// model selects constants.DefaultInsightsModel.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, &errors.AuthenticationError{
			Service: "gemini",
			Method:  "api-key",
			Message: "GEMINI_API_KEY is not set",
			Err:     errors.ErrAPIKeyRequired,
		}
	}
	if model == "" {
		model = constants.DefaultInsightsModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Backend: genai.BackendGeminiAPI,
		APIKey:  apiKey,
	})
	if err != nil {
		return nil, errors.NewConfigError("gemini", "creating client", err)
	}
	return &Gemini{client: client, model: model}, nil
}

// Model returns the model name requests are sent to.
func (g *Gemini) Model() string {
	return g.model
}

// Generate implements Backend. The response is constrained to an array of
// {title, content, category} objects.
func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   responseSchema(),
	})
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

func responseSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"title":    {Type: genai.TypeString},
				"content":  {Type: genai.TypeString},
				"category": {Type: genai.TypeString},
			},
			Required: []string{"title", "content", "category"},
		},
	}
}
