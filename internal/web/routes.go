package web

import "net/http"

// RegisterAPIV1 registers the preview API routes under /api/v1/.
func RegisterAPIV1(mux *http.ServeMux, deps APIV1Deps) {
	mux.Handle("/api/v1/", http.StripPrefix("/api/v1", apiV1Router(deps)))
}

// RegisterUI serves the preview page at "/".
func RegisterUI(mux *http.ServeMux) {
	mux.HandleFunc("/", handleIndex)
}

// NewDefaultMux builds the mux used by the preview server:
// - /api/v1/* for the API
// - / for the preview page
func NewDefaultMux(deps APIV1Deps) *http.ServeMux {
	mux := http.NewServeMux()
	RegisterAPIV1(mux, deps)
	RegisterUI(mux)
	return mux
}
