package coingecko

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestBuilder_BuildURL(t *testing.T) {
	rb := NewRequestBuilder("https://api.example.com/", "/api/v3/search").
		With("query", "bit coin").
		WithCurrency("usd")

	parsed, err := url.Parse(rb.BuildURL())
	require.NoError(t, err)
	assert.Equal(t, "/api/v3/search", parsed.Path)
	assert.Equal(t, "bit coin", parsed.Query().Get("query"))
	assert.Equal(t, "usd", parsed.Query().Get("vs_currency"))
}

func TestRequestBuilder_APIKeyParams(t *testing.T) {
	proURL := NewRequestBuilder("https://api.example.com", "/x").
		WithAPIKey("pro-key", ProKey).BuildURL()
	parsed, err := url.Parse(proURL)
	require.NoError(t, err)
	assert.Equal(t, "pro-key", parsed.Query().Get("x_cg_pro_api_key"))

	demoURL := NewRequestBuilder("https://api.example.com", "/x").
		WithAPIKey("CG-demo", DemoKey).BuildURL()
	parsed, err = url.Parse(demoURL)
	require.NoError(t, err)
	assert.Equal(t, "CG-demo", parsed.Query().Get("x_cg_demo_api_key"))

	bare := NewRequestBuilder("https://api.example.com", "/x").BuildURL()
	assert.Equal(t, "https://api.example.com/x", bare)
}

func TestRequestBuilder_Build(t *testing.T) {
	req, err := NewRequestBuilder("https://api.example.com", "/api/v3/search/trending").Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "application/json", req.Header.Get("Accept"))
	assert.Contains(t, req.Header.Get("User-Agent"), "Coindash")
}
