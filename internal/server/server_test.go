package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/preston-bernstein/nba-roster-service/internal/config"
	"github.com/preston-bernstein/nba-roster-service/internal/metrics"
	"github.com/preston-bernstein/nba-roster-service/internal/poller"
	"github.com/preston-bernstein/nba-roster-service/internal/testutil"
)

type stubPoller struct {
	mu         sync.Mutex
	startCalls int
	stopCalls  int
	err        error
	status     poller.Status
}

func (p *stubPoller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.startCalls++
}

func (p *stubPoller) Stop(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopCalls++
	return p.err
}

func (p *stubPoller) Status() poller.Status {
	return p.status
}

func (p *stubPoller) calls() (int, int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.startCalls, p.stopCalls
}

func fixtureConfig() config.Config {
	return config.Config{
		Port:         "0",
		Provider:     "fixture",
		PollInterval: 5 * time.Millisecond,
		WatchTeams:   []string{"BOS"},
		AdminToken:   "secret",
		Storage: config.StorageConfig{
			HistoricDir: "testdata-missing",
			ExportDir:   "",
		},
	}
}

func TestServerPollerUpdatesStanding(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := fixtureConfig()
	cfg.Storage.ExportDir = t.TempDir()
	srv := newServerWithMetrics(cfg, testutil.NewTestLogger(), nil, metrics.NewRecorder())
	srv.poller.Start(ctx)
	defer func() { _ = srv.poller.Stop(context.Background()) }()

	deadline := time.Now().Add(time.Second)
	for {
		if team, ok := srv.Store().GetTeam("BOS"); ok && team.Standing.Wins > 0 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for poller to record a win")
		}
		time.Sleep(5 * time.Millisecond)
	}

	router := srv.Handler()
	rr := testutil.Serve(router, http.MethodGet, "/health", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	rr = testutil.Serve(router, http.MethodGet, "/ready", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	rr = testutil.Serve(router, http.MethodGet, "/teams/BOS/standing", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	var body map[string]any
	testutil.DecodeJSON(t, rr, &body)
	if wins, _ := body["wins"].(float64); wins < 1 {
		t.Fatalf("expected at least one win in standing, got %v", body)
	}
	if defeats, _ := body["defeats"].(float64); defeats != 0 {
		t.Fatalf("expected no defeats for BOS, got %v", body)
	}
}

func TestServerServesRosterAndAdminRoutes(t *testing.T) {
	cfg := fixtureConfig()
	cfg.Storage.ExportDir = t.TempDir()
	srv := newServerWithMetrics(cfg, testutil.NewTestLogger(), nil, metrics.NewRecorder())
	router := srv.Handler()

	rr := testutil.Serve(router, http.MethodGet, "/teams/bos/players", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	rr = testutil.ServeRequest(router, testutil.BearerRequest(http.MethodPost, "/admin/teams/BOS/register", "secret"))
	testutil.AssertStatus(t, rr, http.StatusOK)
	if !srv.components.Championship.IsRegistered("BOS") {
		t.Fatalf("expected BOS registered in the shared championship")
	}

	rr = testutil.Serve(router, http.MethodGet, "/teams", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
}

func TestServerWithoutAdminTokenHidesAdminRoutes(t *testing.T) {
	cfg := fixtureConfig()
	cfg.AdminToken = ""
	srv := newServerWithMetrics(cfg, nil, nil, metrics.NewRecorder())

	rr := testutil.ServeRequest(srv.Handler(), testutil.BearerRequest(http.MethodPost, "/admin/teams/BOS/export", ""))
	testutil.AssertStatus(t, rr, http.StatusNotFound)
}

func TestNewConstructsServer(t *testing.T) {
	cfg := fixtureConfig()
	cfg.Metrics.Enabled = false
	srv := New(cfg, nil)
	if srv == nil || srv.Handler() == nil {
		t.Fatalf("expected server with handler")
	}
	if srv.metrics == nil {
		t.Fatalf("expected recorder to be set even when metrics disabled")
	}
}

func TestBuildMetricsSuccessPathSetsServerAndShutdown(t *testing.T) {
	orig := metricsSetup
	defer func() { metricsSetup = orig }()
	metricsSetup = func(ctx context.Context, cfg metrics.TelemetryConfig) (*metrics.Recorder, http.Handler, func(context.Context) error, error) {
		return metrics.NewRecorder(), http.NewServeMux(), func(context.Context) error { return nil }, nil
	}

	rec, srv, stop := buildMetrics(config.Config{
		Metrics: config.MetricsConfig{Enabled: true, Port: "9999"},
	}, nil, nil)

	if rec == nil || srv == nil || stop == nil {
		t.Fatalf("expected recorder, server, and shutdown to be set on success")
	}
	if srv.Addr() != ":9999" {
		t.Fatalf("expected metrics addr :9999, got %s", srv.Addr())
	}
}

func TestBuildMetricsHandlesSetupFailure(t *testing.T) {
	orig := metricsSetup
	defer func() { metricsSetup = orig }()
	metricsSetup = func(ctx context.Context, cfg metrics.TelemetryConfig) (*metrics.Recorder, http.Handler, func(context.Context) error, error) {
		return nil, nil, nil, errors.New("fail")
	}

	rec, srv, stop := buildMetrics(config.Config{Metrics: config.MetricsConfig{Enabled: true}}, testutil.NewTestLogger(), nil)
	if rec == nil {
		t.Fatalf("expected fallback metrics recorder even on setup failure")
	}
	if srv != nil || stop != nil {
		t.Fatalf("expected no metrics server on failure")
	}
}

func TestBuildMetricsUsesInjectedRecorder(t *testing.T) {
	rec, _ := testutil.NewRecorderWithShutdown()
	got, srv, stop := buildMetrics(config.Config{Metrics: config.MetricsConfig{Enabled: true}}, nil, rec)
	if got != rec || srv != nil || stop != nil {
		t.Fatalf("expected injected recorder to be used as is")
	}
}

func TestGracefulShutdownCallsStopAndShutdown(t *testing.T) {
	p := &stubPoller{}
	httpSrv := &testutil.StubHTTPServer{}
	metricsSrv := &testutil.StubHTTPServer{}

	srv := newServerWithDeps(config.Config{}, nil, httpSrv, p)
	srv.metricsServer = metricsSrv
	metricsStopped := false
	srv.metricsStop = func(context.Context) error {
		metricsStopped = true
		return errors.New("flush failed")
	}
	srv.gracefulShutdown()

	if _, stops := p.calls(); stops != 1 {
		t.Fatalf("expected poller Stop to be called once, got %d", stops)
	}
	if httpSrv.ShutdownCalls != 1 || metricsSrv.ShutdownCalls != 1 {
		t.Fatalf("expected both servers shut down, got http=%d metrics=%d", httpSrv.ShutdownCalls, metricsSrv.ShutdownCalls)
	}
	if !metricsStopped {
		t.Fatalf("expected metrics shutdown to run")
	}
}

func TestGracefulShutdownClosesComponents(t *testing.T) {
	closed := 0
	comps := &Components{closers: []func() error{
		func() error { closed++; return nil },
		func() error { closed++; return errors.New("close failed") },
	}}
	srv := newServerWithDeps(config.Config{}, testutil.NewTestLogger(), &testutil.StubHTTPServer{}, &stubPoller{})
	srv.components = comps

	srv.gracefulShutdown()

	if closed != 2 {
		t.Fatalf("expected every closer to run, got %d", closed)
	}
}

func TestGracefulShutdownTimesOutLongRunningShutdown(t *testing.T) {
	p := &stubPoller{}
	blocking := &testutil.BlockingHTTPServer{
		AddrVal:    ":0",
		HandlerVal: http.NewServeMux(),
		Unblock:    make(chan struct{}),
	}

	original := shutdownTimeout
	shutdownTimeout = 5 * time.Millisecond
	defer func() { shutdownTimeout = original }()

	srv := newServerWithDeps(config.Config{}, nil, blocking, p)

	start := time.Now()
	srv.gracefulShutdown()
	elapsed := time.Since(start)

	if blocking.ShutdownCalls != 1 {
		t.Fatalf("expected server Shutdown to be called once, got %d", blocking.ShutdownCalls)
	}
	if _, stops := p.calls(); stops != 1 {
		t.Fatalf("expected poller Stop to be called once, got %d", stops)
	}
	if elapsed > 200*time.Millisecond {
		t.Fatalf("shutdown took too long: %s", elapsed)
	}
}

func TestGracefulShutdownContinuesWhenPollerStopErrors(t *testing.T) {
	p := &stubPoller{err: errors.New("stop failure")}
	httpSrv := &testutil.StubHTTPServer{}

	srv := newServerWithDeps(config.Config{}, testutil.NewTestLogger(), httpSrv, p)
	srv.gracefulShutdown()

	if _, stops := p.calls(); stops != 1 {
		t.Fatalf("expected poller Stop to be called once, got %d", stops)
	}
	if httpSrv.ShutdownCalls != 1 {
		t.Fatalf("expected server Shutdown to be called once, got %d", httpSrv.ShutdownCalls)
	}
}

func TestServerStartHandlesListenErrorAndStops(t *testing.T) {
	srv := newServerWithDeps(config.Config{}, nil, &testutil.ErrHTTPServer{}, &stubPoller{})

	stopCalled := make(chan struct{})
	var once sync.Once
	srv.startServer(func() { once.Do(func() { close(stopCalled) }) })

	select {
	case <-stopCalled:
	case <-time.After(200 * time.Millisecond):
		t.Fatal("expected stop to be called on listen failure")
	}
}

func TestRunCancelsAndStopsComponents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	plr := &stubPoller{}
	httpSrv := &testutil.CloseableHTTPServer{}
	srv := newServerWithDeps(config.Config{}, nil, httpSrv, plr)

	done := make(chan struct{})
	go func() {
		srv.Run(ctx, cancel)
		close(done)
	}()

	// Let Start be invoked.
	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("run did not return after cancel")
	}

	starts, stops := plr.calls()
	if starts != 1 {
		t.Fatalf("expected poller Start called once, got %d", starts)
	}
	if stops != 1 {
		t.Fatalf("expected poller Stop called once, got %d", stops)
	}
	if httpSrv.ShutdownCalls != 1 {
		t.Fatalf("expected server Shutdown called once, got %d", httpSrv.ShutdownCalls)
	}
}
