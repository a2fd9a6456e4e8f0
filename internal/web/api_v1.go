package web

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"net/http"
	"strconv"

	"github.com/rook-computer/ribbons/internal/ribbon"
	"github.com/rook-computer/ribbons/internal/state"
)

// StateSource is typically a *state.Store.
type StateSource interface {
	Snapshot() state.State
}

// FrameSource returns a private copy of the latest frame, or nil when
// nothing has been drawn yet.
type FrameSource interface {
	Snapshot() *image.RGBA
}

// RibbonSource is typically the running *ribbon.Manager.
type RibbonSource interface {
	Active() int
	Config() ribbon.Config
}

type APIV1Deps struct {
	State  StateSource
	Frames FrameSource
	// Ribbons returns nil while the animation is not running.
	Ribbons func() RibbonSource
}

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type statusResponse struct {
	Phase   string  `json:"phase"`
	Width   int     `json:"width"`
	Height  int     `json:"height"`
	ScrollX float64 `json:"scrollX"`
	ScrollY float64 `json:"scrollY"`
	Frames  uint64  `json:"frames"`
	Active  int     `json:"activeRibbons"`
	Error   string  `json:"error,omitempty"`
}

func apiV1Router(deps APIV1Deps) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) { handleStatus(w, r, deps) })
	mux.HandleFunc("/config", func(w http.ResponseWriter, r *http.Request) { handleConfig(w, r, deps) })
	mux.HandleFunc("/frame.png", func(w http.ResponseWriter, r *http.Request) { handleFrame(w, r, deps) })
	return mux
}

func (d APIV1Deps) ribbons() RibbonSource {
	if d.Ribbons == nil {
		return nil
	}
	return d.Ribbons()
}

func handleStatus(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	if deps.State == nil {
		writeAPIError(w, http.StatusNotImplemented, "not_implemented", "state not configured")
		return
	}

	snap := deps.State.Snapshot()
	resp := statusResponse{
		Phase:   snap.Phase.String(),
		Width:   snap.Surface.Width,
		Height:  snap.Surface.Height,
		ScrollX: snap.Surface.ScrollX,
		ScrollY: snap.Surface.ScrollY,
		Frames:  snap.Frames,
		Error:   snap.Err,
	}
	if rs := deps.ribbons(); rs != nil {
		resp.Active = rs.Active()
	}
	writeJSON(w, http.StatusOK, resp)
}

func handleConfig(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	rs := deps.ribbons()
	if rs == nil {
		writeAPIError(w, http.StatusServiceUnavailable, "not_running", "animation is not running")
		return
	}
	writeJSON(w, http.StatusOK, rs.Config())
}

func handleFrame(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	if deps.Frames == nil {
		writeAPIError(w, http.StatusNotImplemented, "not_implemented", "frames not configured")
		return
	}
	img := deps.Frames.Snapshot()
	if img == nil {
		writeAPIError(w, http.StatusServiceUnavailable, "no_frame", "no frame drawn yet")
		return
	}

	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	if err := enc.Encode(&buf, img); err != nil {
		writeAPIError(w, http.StatusInternalServerError, "encode_failed", err.Error())
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodGet {
		_, _ = w.Write(buf.Bytes())
	}
}

const indexHTML = `<!doctype html>
<html>
<head><meta charset="utf-8"><title>ribbons</title>
<style>body{margin:0;background:#0b0b12;color:#ccc;font:14px sans-serif}img{display:block;max-width:100%}pre{padding:8px}</style>
</head>
<body>
<img id="frame" alt="current frame">
<pre id="status"></pre>
<script>
async function tick() {
  document.getElementById("frame").src = "api/v1/frame.png?t=" + Date.now();
  const res = await fetch("api/v1/status");
  document.getElementById("status").textContent = JSON.stringify(await res.json(), null, 2);
}
tick();
setInterval(tick, 1000);
</script>
</body>
</html>
`

func handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(indexHTML))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeAPIError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, apiError{Error: code, Message: message})
}
