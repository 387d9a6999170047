package handlers

import (
	"net/http"
	"runtime"

	"github.com/fulmenhq/gofulmen/crucible"

	"github.com/dingolabs/dingo/internal/appid"
)

// BuildInfo is the build metadata main injects at startup.
type BuildInfo struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	Commit    string `json:"git_commit"`
	BuildDate string `json:"build_date"`
}

// Build is reported by /version. An empty Name falls back to the app
// identity's binary name.
var Build = BuildInfo{Version: "dev", Commit: "unknown", BuildDate: "unknown"}

// SetVersionInfo records the build metadata reported by /version.
func SetVersionInfo(version, commit, buildDate string) {
	Build.Version = version
	Build.Commit = commit
	Build.BuildDate = buildDate
}

// VersionResponse is the body of GET /version.
type VersionResponse struct {
	Build        BuildInfo         `json:"build"`
	Go           string            `json:"go"`
	Platform     string            `json:"platform"`
	BasePath     string            `json:"base_path"`
	Endpoints    []Endpoint        `json:"endpoints"`
	Dependencies map[string]string `json:"dependencies"`
}

// VersionHandler reports the build, the runtime and the API routes the demo
// backend answers.
func VersionHandler(w http.ResponseWriter, r *http.Request) {
	build := Build
	if build.Name == "" {
		build.Name = appid.BinaryName(r.Context())
	}
	deps := crucible.GetVersion()

	writeJSON(w, http.StatusOK, VersionResponse{
		Build:     build,
		Go:        runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
		BasePath:  APIBasePath,
		Endpoints: Endpoints(),
		Dependencies: map[string]string{
			"gofulmen": deps.Gofulmen,
			"crucible": deps.Crucible,
		},
	})
}
