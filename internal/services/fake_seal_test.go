package services

import (
	"net/http"
	"testing"

	"github.com/ahmetcoskunkizilkaya/seal-bridge/internal/config"
	"github.com/ahmetcoskunkizilkaya/seal-bridge/internal/services/sealtest"
)

type fakeSeal struct {
	*sealtest.Server
}

func newFakeSeal(t *testing.T, respond func(w http.ResponseWriter, r *http.Request)) *fakeSeal {
	t.Helper()
	return &fakeSeal{Server: sealtest.New(t, respond)}
}

func (f *fakeSeal) client(token string) *SealClient {
	return NewSealClientWith(f.URL, &config.Config{SealToken: token}, f.Server.Client())
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	sealtest.JSON(status, body)(w, nil)
}
