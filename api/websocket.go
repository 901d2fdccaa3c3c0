package api

import (
	"context"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/vamshi737/smartestimator/logging"
	"github.com/vamshi737/smartestimator/metrics"
	"github.com/vamshi737/smartestimator/pipeline"
)

// wsRequest is the single JSON message a WebSocket client sends to
// start a run. The fields mirror the multipart form; there is no file
// upload over the socket, so runs start from the built-in sample plan.
type wsRequest struct {
	Mode       string `json:"mode"`
	PricesJSON string `json:"prices_json"`
	INHeightFt string `json:"in_height_ft"`
	USHeightFt string `json:"us_height_ft"`
}

// wsResult is the final message of a WebSocket run, sent after the
// last stage event.
type wsResult struct {
	OK        bool              `json:"ok"`
	RunID     string            `json:"run_id"`
	Artifacts map[string]string `json:"artifacts,omitempty"`
	Error     string            `json:"error,omitempty"`
}

// warnAndClose emits message as a warning and then sends a Bad Request
// response to the client using writer.
func warnAndClose(writer http.ResponseWriter, message string) {
	logging.Logger.Warn(message)
	writer.Header().Set("Connection", "Close")
	writer.WriteHeader(http.StatusBadRequest)
}

// EstimateWS runs one estimate over a WebSocket, streaming a stage
// event per pipeline step and a final result message. Closing the
// socket mid-run flags the run for cancellation.
func (h *Handler) EstimateWS(writer http.ResponseWriter, request *http.Request) {
	logging.Logger.Debug("EstimateWS: upgrading to WebSockets")
	if !websocket.IsWebSocketUpgrade(request) {
		warnAndClose(writer, "EstimateWS: request is not a WebSocket upgrade")
		return
	}
	conn, err := h.Upgrader.Upgrade(writer, request, nil)
	if err != nil {
		// Upgrade has already replied to the client.
		logging.Logger.WithError(err).Warn("EstimateWS: cannot UPGRADE to WebSocket")
		return
	}
	defer conn.Close()
	metrics.ActiveRuns.WithLabelValues("ws").Inc()
	defer metrics.ActiveRuns.WithLabelValues("ws").Dec()

	var req wsRequest
	if err := conn.ReadJSON(&req); err != nil {
		logging.Logger.WithError(err).Warn("EstimateWS: cannot read request")
		return
	}
	fields := map[string]string{
		"mode":         req.Mode,
		"prices_json":  req.PricesJSON,
		"in_height_ft": req.INHeightFt,
		"us_height_ft": req.USHeightFt,
	}
	opts, err := optionsFromForm(func(name string) string { return fields[name] })
	if err != nil {
		writeWS(conn, wsResult{Error: err.Error()})
		return
	}

	runID := newRunID()
	if _, err := h.Store.CreateRun(runID); err != nil {
		writeWS(conn, wsResult{Error: "cannot create run: " + err.Error()})
		return
	}

	ctx, cancel := context.WithCancel(request.Context())
	defer cancel()
	// The client sends nothing after the request, so the next read only
	// returns when the socket dies. Flag the run so the pipeline stops
	// at the next stage boundary.
	go func() {
		_, _, rerr := conn.ReadMessage()
		if rerr == nil || ctx.Err() != nil {
			return
		}
		if h.State != nil {
			if serr := h.State.SetCancelFlag(ctx, runID, 1); serr != nil {
				logging.Logger.WithError(serr).WithField("run", runID).Warn("cannot flag canceled run")
			}
		}
		cancel()
	}()

	result, err := h.Runner.Run(ctx, runID, opts, func(ev pipeline.Event) {
		writeWS(conn, ev)
	})
	if err != nil {
		logging.Logger.WithError(err).WithField("run", runID).Error("estimate run failed")
		writeWS(conn, wsResult{RunID: runID, Error: err.Error()})
		return
	}
	h.cacheResult(ctx, runID, result)
	writeWS(conn, wsResult{
		OK:        true,
		RunID:     runID,
		Artifacts: artifactLinks(runID, result.Artifacts),
	})
}

func writeWS(conn *websocket.Conn, v interface{}) {
	if err := conn.WriteJSON(v); err != nil {
		logging.Logger.WithError(err).Warn("cannot write WebSocket message")
	}
}
