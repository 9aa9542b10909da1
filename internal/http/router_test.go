package http

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/jonboulle/clockwork"

	"github.com/betterscore/scoreboard-service/internal/clock"
	"github.com/betterscore/scoreboard-service/internal/config"
	"github.com/betterscore/scoreboard-service/internal/domain/game"
	"github.com/betterscore/scoreboard-service/internal/http/handlers"
	"github.com/betterscore/scoreboard-service/internal/metrics"
	"github.com/betterscore/scoreboard-service/internal/scoreboard"
	"github.com/betterscore/scoreboard-service/internal/testutil"
)

func newTestRouter(t *testing.T, cfg RouterConfig) (http.Handler, *scoreboard.Controller) {
	t.Helper()
	writer := testutil.NewTempWriter(t)
	ctrl := scoreboard.New(game.DefaultRules(), writer,
		scoreboard.WithRecorder(cfg.Metrics),
		scoreboard.WithClockOptions(clock.WithClock(clockwork.NewFakeClock())),
	)
	t.Cleanup(ctrl.Close)
	ctrl.Sync(context.Background())
	if cfg.Logger == nil {
		cfg.Logger, _ = testutil.NewBufferLogger()
	}
	return NewRouter(handlers.NewHandler(ctrl, cfg.Logger, writer.Status), cfg), ctrl
}

func TestRouterRoutesKnownPaths(t *testing.T) {
	router, _ := newTestRouter(t, RouterConfig{})

	gets := map[string]int{
		"/health": http.StatusOK,
		"/ready":  http.StatusOK,
		"/state":  http.StatusOK,
	}
	for path, expected := range gets {
		rr := testutil.Serve(router, http.MethodGet, path, nil)
		if rr.Code != expected {
			t.Fatalf("route %s expected status %d, got %d", path, expected, rr.Code)
		}
	}

	posts := []string{
		"/score/home", "/score/away", "/score/reset",
		"/period/next", "/period/reset",
		"/pp/home", "/pp/away", "/pp/clear",
		"/clock/start", "/clock/stop", "/clock/reset",
		"/set/score", "/set/period", "/set/time", "/set/pp/time",
	}
	for _, path := range posts {
		rr := testutil.PostJSON(router, path, "")
		if rr.Code != http.StatusOK || rr.Body.String() != "OK" {
			t.Fatalf("route %s expected 200 OK, got %d %q", path, rr.Code, rr.Body.String())
		}
	}
}

func TestRouterUnknownRouteReturns404(t *testing.T) {
	router, _ := newTestRouter(t, RouterConfig{})

	rr := testutil.Serve(router, http.MethodGet, "/does-not-exist", nil)
	testutil.AssertStatus(t, rr, http.StatusNotFound)
	if !strings.Contains(rr.Body.String(), "not found") {
		t.Fatalf("expected json not found body, got %s", rr.Body.String())
	}
}

func TestRouterWrongMethodReturns405(t *testing.T) {
	router, ctrl := newTestRouter(t, RouterConfig{})

	rr := testutil.Serve(router, http.MethodGet, "/score/home", nil)
	testutil.AssertStatus(t, rr, http.StatusMethodNotAllowed)
	if ctrl.State().Home != 0 {
		t.Fatalf("expected no mutation on GET")
	}
}

func TestRouterSetTimeEndToEnd(t *testing.T) {
	router, ctrl := newTestRouter(t, RouterConfig{})

	rr := testutil.PostJSON(router, "/set/time", `{"seconds":500}`)
	testutil.AssertStatus(t, rr, http.StatusOK)

	rr = testutil.Serve(router, http.MethodGet, "/state", nil)
	var state game.State
	testutil.DecodeJSON(t, rr, &state)
	if state.Seconds != 500 || ctrl.State().Seconds != 500 {
		t.Fatalf("expected 500 seconds, got %+v", state)
	}
}

func TestRouterRecordsMutationMetrics(t *testing.T) {
	rec := metrics.NewRecorder()
	router, _ := newTestRouter(t, RouterConfig{Metrics: rec})

	testutil.AssertStatus(t, testutil.PostJSON(router, "/score/home", ""), http.StatusOK)
	testutil.AssertStatus(t, testutil.PostJSON(router, "/score/home", ""), http.StatusOK)
	if got := rec.Snapshot().Mutations[scoreboard.OpScoreHome]; got != 2 {
		t.Fatalf("expected two recorded mutations, got %d", got)
	}
}

func TestRouterRateLimitsReadsButNotControls(t *testing.T) {
	rec := metrics.NewRecorder()
	router, ctrl := newTestRouter(t, RouterConfig{
		Metrics: rec,
		HTTP: config.HTTPConfig{
			Limiter: config.LimiterConfig{Enabled: true, RPS: 0.001, Burst: 1},
		},
	})

	testutil.AssertStatus(t, testutil.Serve(router, http.MethodGet, "/state", nil), http.StatusOK)
	testutil.AssertStatus(t, testutil.Serve(router, http.MethodGet, "/state", nil), http.StatusTooManyRequests)

	for i := 0; i < 5; i++ {
		testutil.AssertStatus(t, testutil.PostJSON(router, "/score/home", ""), http.StatusOK)
	}
	testutil.AssertStatus(t, testutil.PostJSON(router, "/set/time", `{"seconds":90}`), http.StatusOK)
	testutil.AssertStatus(t, testutil.Serve(router, http.MethodGet, "/health", nil), http.StatusOK)

	if got := ctrl.State().Home; got != 5 {
		t.Fatalf("expected every control call applied, got home %d", got)
	}
	if got := rec.Snapshot().Mutations[scoreboard.OpScoreHome]; got != 5 {
		t.Fatalf("expected five recorded mutations, got %d", got)
	}
}

func TestRouterMountsStream(t *testing.T) {
	called := false
	stream := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusSwitchingProtocols)
	})
	router, _ := newTestRouter(t, RouterConfig{Stream: stream})

	testutil.Serve(router, http.MethodGet, "/ws", nil)
	if !called {
		t.Fatalf("expected stream handler mounted at /ws")
	}
}
