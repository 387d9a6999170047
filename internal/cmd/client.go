package cmd

import (
	"net/http"
	"strings"

	"github.com/dingolabs/dingo/internal/api"
	"github.com/dingolabs/dingo/internal/config"
)

// newClient builds the backend client from cfg. A zero timeout leaves
// requests bounded only by the command context.
func newClient(cfg *config.Config) *api.Client {
	userAgent := strings.TrimSpace(cfg.API.UserAgent)
	if userAgent == "" {
		userAgent = "dingo/" + currentVersion()
	}
	return &api.Client{
		BaseURL:    cfg.API.BaseURL,
		HTTPClient: &http.Client{Timeout: cfg.API.Timeout},
		UserAgent:  userAgent,
	}
}

func currentVersion() string {
	if v := strings.TrimSpace(versionInfo.Version); v != "" {
		return v
	}
	return "dev"
}
