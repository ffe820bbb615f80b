package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/ahmetcoskunkizilkaya/seal-bridge/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSealClient_CallParsesJSON(t *testing.T) {
	seal := newFakeSeal(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"success":true,"payload":{"id":7}}`)
	})

	resp, err := seal.client("tok").Call(context.Background(), http.MethodPut, "/subscription", map[string]any{"id": 7}, nil)
	require.NoError(t, err)

	assert.True(t, resp.OK)
	assert.Equal(t, http.StatusOK, resp.Status)
	assert.JSONEq(t, `{"success":true,"payload":{"id":7}}`, string(resp.Body))

	calls := seal.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "tok", calls[0].Token)
	assert.Equal(t, http.MethodPut, calls[0].Method)
	assert.Equal(t, "/subscription", calls[0].Path)
	assert.EqualValues(t, 7, calls[0].Body["id"])
}

func TestSealClient_InvalidJSONBecomesEmptyObject(t *testing.T) {
	seal := newFakeSeal(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"broken":`)
	})

	resp, err := seal.client("tok").Call(context.Background(), http.MethodGet, "/subscriptions", nil, nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(resp.Body))
}

func TestSealClient_NonJSONIsWrapped(t *testing.T) {
	seal := newFakeSeal(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<h1>bad gateway</h1>"))
	})

	resp, err := seal.client("tok").Call(context.Background(), http.MethodGet, "/subscriptions", nil, nil)
	require.NoError(t, err)
	assert.False(t, resp.OK)
	assert.Equal(t, http.StatusBadGateway, resp.Status)
	assert.JSONEq(t, `{"non_json":"<h1>bad gateway</h1>"}`, string(resp.Body))
}

func TestSealClient_ExtraHeadersOverrideDefaults(t *testing.T) {
	var accept string
	seal := newFakeSeal(t, func(w http.ResponseWriter, r *http.Request) {
		accept = r.Header.Get("Accept")
		writeJSON(w, http.StatusOK, `{}`)
	})

	_, err := seal.client("tok").Call(context.Background(), http.MethodGet, "/subscriptions", nil, map[string]string{"Accept": "text/plain"})
	require.NoError(t, err)
	assert.Equal(t, "text/plain", accept)
}

func TestSealClient_MissingCredential(t *testing.T) {
	seal := newFakeSeal(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{}`)
	})

	_, err := seal.client("").Call(context.Background(), http.MethodGet, "/subscriptions", nil, nil)
	require.Error(t, err)

	var cfgErr *config.ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)
	assert.True(t, IsConfigurationError(err))
	assert.False(t, IsTransportError(err))
	assert.Empty(t, seal.Calls())
}

func TestSealClient_TransportFailure(t *testing.T) {
	seal := newFakeSeal(t, func(w http.ResponseWriter, r *http.Request) {})
	client := seal.client("tok")
	seal.Close()

	_, err := client.Call(context.Background(), http.MethodGet, "/subscriptions", nil, nil)
	require.Error(t, err)
	assert.True(t, IsTransportError(err))
	assert.False(t, IsConfigurationError(err))
}

func TestSealClient_Endpoint(t *testing.T) {
	client := NewSealClientWith("https://seal.example/api/", &config.Config{SealToken: "tok"}, nil)
	assert.Equal(t, "https://seal.example/api/subscription", client.Endpoint("/subscription"))
}
