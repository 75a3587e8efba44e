package insights

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/cadastro/internal/appcontext"
	"github.com/agentstation/cadastro/internal/cmd/cmdtest"
	"github.com/agentstation/cadastro/internal/insights"
)

type fakeBackend struct {
	text   string
	err    error
	prompt string
}

func (f *fakeBackend) Generate(_ context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.text, f.err
}

func appWith(t *testing.T, backend insights.Backend) *appcontext.Mock {
	t.Helper()
	app := cmdtest.App(cmdtest.Registry(t, cmdtest.ServerState()), "")
	if backend != nil {
		app.InsightsFunc = func(context.Context) (*insights.Client, error) {
			return insights.New(insights.WithBackend(backend))
		}
	}
	return app
}

func TestInsights(t *testing.T) {
	backend := &fakeBackend{text: `[{"title": "Escolas", "content": "Uma criança estuda.", "category": "Education and Youth"}]`}

	res, err := cmdtest.Run(t, NewCommand(appWith(t, backend)))
	require.NoError(t, err)

	var got []insights.Insight
	require.NoError(t, json.Unmarshal([]byte(res.Stdout), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Escolas", got[0].Title)
	assert.Contains(t, backend.prompt, "Maria Silva")
}

func TestInsightsFailureIsSilent(t *testing.T) {
	backend := &fakeBackend{err: errors.New("quota exceeded")}

	res, err := cmdtest.Run(t, NewCommand(appWith(t, backend)))
	require.NoError(t, err)
	assert.JSONEq(t, "[]", res.Stdout)
}

func TestInsightsDisabled(t *testing.T) {
	res, err := cmdtest.Run(t, NewCommand(appWith(t, nil)))
	require.NoError(t, err)
	assert.JSONEq(t, "[]", res.Stdout)
}
