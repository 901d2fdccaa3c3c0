package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"github.com/m-lab/go/flagx"
	"github.com/m-lab/go/httpx"
	"github.com/m-lab/go/prometheusx"
	"github.com/m-lab/go/rtx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vamshi737/smartestimator/access"
	"github.com/vamshi737/smartestimator/api"
	"github.com/vamshi737/smartestimator/logging"
	"github.com/vamshi737/smartestimator/metadata"
	"github.com/vamshi737/smartestimator/pipeline"
	"github.com/vamshi737/smartestimator/pricing"
	"github.com/vamshi737/smartestimator/redis"
)

var (
	// Flags that can be passed in on the command line
	listenAddr   = flag.String("listen_addr", ":8080", "The address and port to use for the estimate API")
	dataDir      = flag.String("datadir", "data", "The directory in which to write run artifacts and archived results")
	pricesFile   = flag.String("prices", "prices.json", "The price book JSON file. A missing file yields an empty book")
	tesseractCmd = flag.String("tesseract", "tesseract", "The tesseract command for plan OCR. Empty disables the OCR stage")
	redisAddr    = flag.String("redisaddr", "", "The address of the optional Redis run-state backend")
	htmlDir      = flag.String("htmldir", "html", "The directory from which to serve static web content")
	maxRuns      = flag.Int64("max_runs", 4, "The maximum number of concurrent estimate runs. Zero disables the limit")

	// serverMetadata caches the deployment labels attached to every run record.
	serverMetadata = flagx.KeyValue{}

	currentRequests = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "smartestimator_requests_current",
		Help: "A gauge of requests currently being served by the estimate API.",
	})
	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "smartestimator_request_duration_seconds",
			Help: "A histogram of request latencies to the estimate API.",
			// Durations are bi-modal: static and download requests (fast)
			// and full estimate runs (slower).
			Buckets: []float64{.01, .1, .5, 1, 2, 5, 10, 30, 60, 120, 300},
		},
		[]string{"code"},
	)

	// A metric to use to signal that the server is in lame duck mode.
	lameDuck = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "lame_duck_experiment",
		Help: "Indicates when the server is in lame duck",
	})

	// Context for the whole program.
	ctx, cancel = context.WithCancel(context.Background())
)

func init() {
	flag.Var(&serverMetadata, "label", "Key=value pairs to attach to archived run records. May be repeated")
}

func catchSigterm() {
	// Disable lame duck status.
	lameDuck.Set(0)

	// Register channel to receive SIGTERM events.
	c := make(chan os.Signal, 1)
	defer close(c)
	signal.Notify(c, syscall.SIGTERM)

	// Wait until we receive a SIGTERM or the context is canceled.
	select {
	case <-c:
		fmt.Println("Received SIGTERM")
	case <-ctx.Done():
		fmt.Println("Canceled")
	}
	// Set lame duck status. This will remain set until exit.
	lameDuck.Set(1)
	// When we receive a second SIGTERM, cancel the context and shut everything
	// down. This should cause main() to exit cleanly.
	select {
	case <-c:
		fmt.Println("Received SIGTERM")
		cancel()
	case <-ctx.Done():
		fmt.Println("Canceled")
	}
}

// nameValues converts the -label flag's map into the record form, sorted
// so repeated runs archive identical metadata.
func nameValues(labels map[string]string) []metadata.NameValue {
	names := make([]string, 0, len(labels))
	for name := range labels {
		names = append(names, name)
	}
	sort.Strings(names)
	nvs := make([]metadata.NameValue, 0, len(names))
	for _, name := range names {
		nvs = append(nvs, metadata.NameValue{Name: name, Value: labels[name]})
	}
	return nvs
}

// findTesseract verifies that the configured OCR command exists. Runs
// still work without it, they just fall back to the sample dimensions,
// so a missing binary downgrades to a warning.
func findTesseract(cmd string) string {
	if cmd == "" {
		return ""
	}
	if _, err := exec.LookPath(cmd); err != nil {
		logging.Logger.WithError(err).Warn("tesseract not found, OCR stage disabled")
		return ""
	}
	return cmd
}

func main() {
	flag.Parse()
	rtx.Must(flagx.ArgsFromEnv(flag.CommandLine), "Could not get args from env")

	promSrv := prometheusx.MustServeMetrics()
	defer promSrv.Close()

	go catchSigterm()

	book, err := pricing.Load(*pricesFile)
	rtx.Must(err, "Could not load the price book")
	store, err := pipeline.NewStore(*dataDir)
	rtx.Must(err, "Could not create the data directory")

	cfg := pipeline.Config{
		Store:          store,
		Book:           book,
		TesseractCmd:   findTesseract(*tesseractCmd),
		ServerMetadata: nameValues(serverMetadata.Get()),
	}
	handler := &api.Handler{
		Store:    store,
		Upgrader: websocket.Upgrader{ReadBufferSize: 1 << 10, WriteBufferSize: 1 << 10},
	}
	if *redisAddr != "" {
		client := redis.NewClient(*redisAddr)
		defer client.Close()
		cfg.Cancel = client
		handler.State = client
	}
	handler.Runner = pipeline.New(cfg)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, *htmlDir, &access.MaxController{Max: *maxRuns})

	srv := &http.Server{
		Addr: *listenAddr,
		Handler: logging.MakeAccessLogHandler(
			promhttp.InstrumentHandlerInFlight(currentRequests,
				promhttp.InstrumentHandlerDuration(requestDuration, mux))),
		// NOTE: set absolute read and write timeouts for server connections.
		// This prevents clients, or middleboxes, from opening a connection and
		// holding it open indefinitely. The write timeout must leave room for
		// a full estimate run, reports included.
		ReadTimeout:  time.Minute,
		WriteTimeout: 10 * time.Minute,
	}
	logging.Logger.WithField("addr", *listenAddr).Info("About to listen for estimate requests")
	rtx.Must(httpx.ListenAndServeAsync(srv), "Could not start the estimate API server")
	defer srv.Close()

	<-ctx.Done()
}
