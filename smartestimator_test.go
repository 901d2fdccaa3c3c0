package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"testing"
	"time"

	"github.com/m-lab/go/osx"
	"github.com/m-lab/go/prometheusx/promtest"
	"github.com/m-lab/go/rtx"
)

// Get a bunch of open ports, and then close them. Hopefully the ports will
// remain open for the next few microseconds so that we can use them in unit
// tests.
func getOpenPorts(n int) []string {
	ports := []string{}
	for i := 0; i < n; i++ {
		ts := httptest.NewServer(http.NewServeMux())
		defer ts.Close()
		u, err := url.Parse(ts.URL)
		rtx.Must(err, "Could not parse url to local server:", ts.URL)
		ports = append(ports, ":"+u.Port())
	}
	return ports
}

func setupMain(t *testing.T) func() {
	cleanups := []func(){}

	// Set up the command-line args via environment variables:
	ports := getOpenPorts(2)
	for _, ev := range []struct{ key, value string }{
		{"LISTEN_ADDR", ports[0]},
		{"PROMETHEUSX_LISTEN_ADDRESS", ports[1]},
		{"DATADIR", t.TempDir()},
		{"PRICES", "testdata/no-such-prices.json"},
		{"TESSERACT", ""},
		{"HTMLDIR", t.TempDir()},
	} {
		cleanups = append(cleanups, osx.MustSetenv(ev.key, ev.value))
	}
	return func() {
		for _, f := range cleanups {
			f()
		}
	}
}

func Test_ContextCancelsMain(t *testing.T) {
	cleanup := setupMain(t)
	defer cleanup()

	// Set up the global context for main()
	ctx, cancel = context.WithCancel(context.Background())

	// Run main, but cancel it very soon after starting.
	go func() {
		time.Sleep(1 * time.Second)
		cancel()
	}()
	// If this doesn't run forever, then canceling the context causes main to exit.
	main()
}

func Test_MainServesHealth(t *testing.T) {
	cleanup := setupMain(t)
	defer cleanup()

	ctx, cancel = context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		main()
		close(done)
	}()

	// The listener is up before main blocks on the context, so a short
	// retry loop is enough.
	healthURL := "http://localhost" + os.Getenv("LISTEN_ADDR") + "/health"
	deadline := time.Now().Add(5 * time.Second)
	var healthy bool
	for time.Now().Before(deadline) {
		resp, err := http.Get(healthURL)
		if err != nil {
			time.Sleep(50 * time.Millisecond)
			continue
		}
		var body map[string]bool
		err = json.NewDecoder(resp.Body).Decode(&body)
		resp.Body.Close()
		if err == nil && body["ok"] {
			healthy = true
			break
		}
		time.Sleep(50 * time.Millisecond)
	}
	if !healthy {
		t.Error("GET /health never reported ok")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Error("main did not exit after cancellation")
	}
}

func TestMetrics(t *testing.T) {
	promtest.LintMetrics(t)
}
