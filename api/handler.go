// Package api implements the estimator's HTTP surface: the estimate
// endpoint, artifact downloads, the cached-result lookup and the
// WebSocket progress stream.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/vamshi737/smartestimator/access"
	"github.com/vamshi737/smartestimator/data"
	"github.com/vamshi737/smartestimator/logging"
	"github.com/vamshi737/smartestimator/metrics"
	"github.com/vamshi737/smartestimator/pipeline"
)

// maxUploadBytes bounds the multipart form, plan images included.
const maxUploadBytes = 32 << 20

// RunState is the optional Redis-backed run state: a cache of finished
// run records plus the cancellation flags the pipeline polls between
// stages. A nil RunState disables both.
type RunState interface {
	SetCancelFlag(ctx context.Context, runID string, flag int) error
	SetResult(ctx context.Context, runID string, result *data.EstimateResult) error
	GetResult(ctx context.Context, runID string) (*data.EstimateResult, error)
}

// Handler handles estimate requests.
type Handler struct {
	// Runner executes estimate runs.
	Runner *pipeline.Runner

	// Store is the run directory layout shared with Runner.
	Store *pipeline.Store

	// State is the optional Redis-backed run state.
	State RunState

	// Upgrader is the WebSocket upgrader.
	Upgrader websocket.Upgrader
}

// RegisterRoutes installs every API route on mux. Static content,
// including the landing page, is served from htmlDir. The estimate
// endpoints run behind ac; a nil controller disables the limit.
func (h *Handler) RegisterRoutes(mux *http.ServeMux, htmlDir string, ac access.Controller) {
	limit := func(hf http.HandlerFunc) http.Handler {
		if ac == nil {
			return hf
		}
		return ac.Limit(hf)
	}
	mux.Handle("/", http.FileServer(http.Dir(htmlDir)))
	mux.Handle("/estimate", limit(h.Estimate))
	mux.Handle("/estimate/ws", limit(h.EstimateWS))
	mux.HandleFunc("/download/", h.Download)
	mux.HandleFunc("/result/", h.Result)
	mux.HandleFunc("/health", h.Health)
	mux.HandleFunc("/robots.txt", h.Robots)
}

// estimateResponse is the JSON body of a successful POST /estimate.
type estimateResponse struct {
	OK        bool              `json:"ok"`
	RunID     string            `json:"run_id"`
	Artifacts map[string]string `json:"artifacts"`
	Log       []string          `json:"log"`
}

// Estimate runs one estimate end to end from a multipart form. The
// form carries the plan image under "image" plus the mode, height and
// price-override fields; everything is optional except that a prices
// override, when present, must be valid JSON.
func (h *Handler) Estimate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSONError(w, http.StatusMethodNotAllowed, "POST required")
		return
	}
	metrics.ActiveRuns.WithLabelValues("api").Inc()
	defer metrics.ActiveRuns.WithLabelValues("api").Dec()

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSONError(w, http.StatusBadRequest, "cannot parse form: "+err.Error())
		return
	}
	opts, err := optionsFromForm(r.FormValue)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	runID := newRunID()
	if _, err := h.Store.CreateRun(runID); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "cannot create run: "+err.Error())
		return
	}
	if file, header, ferr := r.FormFile("image"); ferr == nil {
		planPath, serr := h.Store.SaveUpload(runID, header.Filename, file)
		file.Close()
		if serr != nil {
			writeJSONError(w, http.StatusInternalServerError, "cannot save upload: "+serr.Error())
			return
		}
		opts.PlanPath = planPath
	}

	var logLines []string
	result, err := h.Runner.Run(r.Context(), runID, opts, func(ev pipeline.Event) {
		logLines = append(logLines, eventLine(ev))
	})
	if err != nil {
		logging.Logger.WithError(err).WithField("run", runID).Error("estimate run failed")
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"error":  err.Error(),
			"run_id": runID,
			"log":    logLines,
		})
		return
	}
	h.cacheResult(r.Context(), runID, result)

	writeJSON(w, http.StatusOK, estimateResponse{
		OK:        true,
		RunID:     runID,
		Artifacts: artifactLinks(runID, result.Artifacts),
		Log:       logLines,
	})
}

// Download serves one artifact from a finished run.
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/download/")
	parts := strings.Split(rest, "/")
	if len(parts) != 2 {
		writeJSONError(w, http.StatusNotFound, "file not found")
		return
	}
	path, err := h.Store.ArtifactPath(parts[0], parts[1])
	if err != nil {
		writeJSONError(w, http.StatusNotFound, "file not found")
		return
	}
	http.ServeFile(w, r, path)
}

// Result returns the cached record of a finished run.
func (h *Handler) Result(w http.ResponseWriter, r *http.Request) {
	if h.State == nil {
		writeJSONError(w, http.StatusNotFound, "result cache not configured")
		return
	}
	runID := strings.TrimPrefix(r.URL.Path, "/result/")
	result, err := h.State.GetResult(r.Context(), runID)
	if err != nil {
		writeJSONError(w, http.StatusNotFound, "run not found")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Health answers liveness probes.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Robots tells crawlers to stay away.
func (h *Handler) Robots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprint(w, "User-agent: *\nDisallow: /\n")
}

func (h *Handler) cacheResult(ctx context.Context, runID string, result *data.EstimateResult) {
	if h.State == nil {
		return
	}
	if err := h.State.SetResult(ctx, runID, result); err != nil {
		logging.Logger.WithError(err).WithField("run", runID).Warn("cannot cache run result")
	}
}

// optionsFromForm builds run options from form fields. The same fields
// arrive as multipart values on POST /estimate and as JSON on the
// WebSocket endpoint, so the lookup is abstracted over.
func optionsFromForm(value func(string) string) (pipeline.Options, error) {
	opts := pipeline.Options{Mode: pipeline.ModeAll}
	if mode := value("mode"); mode != "" {
		if !pipeline.ValidMode(mode) {
			return opts, fmt.Errorf("unknown mode %q", mode)
		}
		opts.Mode = mode
	}
	if prices := value("prices_json"); prices != "" {
		if !json.Valid([]byte(prices)) {
			return opts, fmt.Errorf("prices_json is not valid JSON")
		}
		opts.PricesOverride = []byte(prices)
	}
	var err error
	if opts.INHeightFt, err = formFloat(value, "in_height_ft"); err != nil {
		return opts, err
	}
	if opts.USHeightFt, err = formFloat(value, "us_height_ft"); err != nil {
		return opts, err
	}
	return opts, nil
}

func formFloat(value func(string) string, name string) (float64, error) {
	s := value(name)
	if s == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%s is not a number: %q", name, s)
	}
	return f, nil
}

// newRunID returns a short run identifier. Eight hex characters keep
// download URLs readable while collisions stay unlikely for the volume
// a single server sees.
func newRunID() string {
	return uuid.NewString()[:8]
}

func artifactLinks(runID string, names []string) map[string]string {
	links := make(map[string]string, len(names))
	for _, name := range names {
		links[name] = "/download/" + runID + "/" + name
	}
	return links
}

func eventLine(ev pipeline.Event) string {
	line := fmt.Sprintf("[%s] %s", ev.Stage, ev.Status)
	if ev.Error != "" {
		line += ": " + ev.Error
	}
	return line
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Logger.WithError(err).Warn("cannot write JSON response")
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
