package docs

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestRegisteredDoc(t *testing.T) {
	doc, err := swag.ReadDoc()
	require.NoError(t, err)

	var parsed struct {
		Info struct {
			Title       string `json:"title"`
			Description string `json:"description"`
		} `json:"info"`
		BasePath string                     `json:"basePath"`
		Paths    map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(doc), &parsed))

	assert.Equal(t, "Finance Health Assessment API", parsed.Info.Title)
	assert.Equal(t, "Finance health self-assessment, lead capture and finance assistant chat", parsed.Info.Description)
	assert.Equal(t, "/v1", parsed.BasePath)
	assert.Contains(t, parsed.Paths, "/chat/history")
	assert.NotContains(t, parsed.Paths, "/chat/{sessionId}/history")
}
