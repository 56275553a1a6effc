package server

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/danmuck/scorectl/internal/config"
	"github.com/danmuck/scorectl/internal/testutil/testlog"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	testlog.Start(t)
	gin.SetMode(gin.TestMode)

	cfg := config.DefaultServerConfig()
	cfg.Name = "scorectl-test"
	cfg.MaxRolls = 24
	s := Appear(cfg)
	s.RegisterRoutes()
	return s
}

func do(t *testing.T, s *Server, req *http.Request) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	rr := httptest.NewRecorder()
	s.HTTPRouter().ServeHTTP(rr, req)

	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode %s %s response: %v body=%s", req.Method, req.URL, err, rr.Body.String())
	}
	return rr, body
}

func TestPostScorecardMixedGame(t *testing.T) {
	s := newTestServer(t)

	payload := `{"rolls": ["X",0,0,"X","X",1,"/",5,"/",0,0,"X",0,0,"X",0,0]}`
	req := httptest.NewRequest(http.MethodPost, "/v1/scorecards", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rr, body := do(t, s, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	if body["score"] != float64(96) {
		t.Fatalf("expected score 96, got %#v", body["score"])
	}
	scores := body["frame_scores"].([]any)
	want := []float64{10, 0, 21, 20, 15, 10, 0, 10, 0, 10, 0}
	if len(scores) != len(want) {
		t.Fatalf("expected %d frame scores, got %d", len(want), len(scores))
	}
	for i, w := range want {
		if scores[i] != w {
			t.Fatalf("frame %d: expected %v, got %#v", i+1, w, scores[i])
		}
	}
	if rr.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected request id header")
	}
	log.Debug().Int("status", rr.Code).Interface("score", body["score"]).Msg("server/http: POST /v1/scorecards")
}

func TestGetScorecardFromQuery(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/scorecards?rolls=4,5,X,8", nil)
	rr, body := do(t, s, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	if body["score"] != float64(9) || body["pending"] != float64(2) {
		t.Fatalf("unexpected body: %#v", body)
	}
	scores := body["frame_scores"].([]any)
	if scores[0] != float64(9) || scores[1] != nil || scores[2] != nil {
		t.Fatalf("expected [9 null null], got %#v", scores)
	}
}

func TestScorecardRejectsBadInput(t *testing.T) {
	s := newTestServer(t)

	cases := []struct {
		name   string
		req    *http.Request
		status int
		check  func(map[string]any) bool
	}{
		{
			name:   "out of range roll",
			req:    httptest.NewRequest(http.MethodPost, "/v1/scorecards", strings.NewReader(`{"rolls":[0,1,2,3,4,186282,"Light"]}`)),
			status: http.StatusBadRequest,
			check:  func(b map[string]any) bool { return b["index"] == float64(5) && b["token"] == float64(186282) },
		},
		{
			name:   "null roll",
			req:    httptest.NewRequest(http.MethodPost, "/v1/scorecards", strings.NewReader(`{"rolls":[null]}`)),
			status: http.StatusBadRequest,
			check:  func(b map[string]any) bool { return b["index"] == float64(0) && b["token"] == nil },
		},
		{
			name:   "missing rolls",
			req:    httptest.NewRequest(http.MethodPost, "/v1/scorecards", strings.NewReader(`{}`)),
			status: http.StatusBadRequest,
			check:  func(b map[string]any) bool { return strings.HasPrefix(b["error"].(string), "invalid request body") },
		},
		{
			name:   "too many rolls",
			req:    httptest.NewRequest(http.MethodGet, "/v1/scorecards?rolls="+strings.Repeat("0,", 25), nil),
			status: http.StatusBadRequest,
			check:  func(b map[string]any) bool { return b["max_rolls"] == float64(24) },
		},
		{
			name:   "missing query",
			req:    httptest.NewRequest(http.MethodGet, "/v1/scorecards", nil),
			status: http.StatusBadRequest,
			check:  func(b map[string]any) bool { return b["error"] == "missing rolls query parameter" },
		},
	}

	for _, tc := range cases {
		rr, body := do(t, s, tc.req)
		if rr.Code != tc.status {
			t.Fatalf("%s: expected %d, got %d body=%s", tc.name, tc.status, rr.Code, rr.Body.String())
		}
		if !tc.check(body) {
			t.Fatalf("%s: unexpected body %#v", tc.name, body)
		}
		if _, ok := body["score"]; ok {
			t.Fatalf("%s: rejected input must not carry a score", tc.name)
		}
		log.Debug().Str("case", tc.name).Int("status", rr.Code).Msg("server/http: rejected")
	}
}

func TestHealthAndMetricsRoutes(t *testing.T) {
	s := newTestServer(t)

	rr, body := do(t, s, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rr.Code != http.StatusOK || body["status"] != "ok" || body["service"] != "scorectl-test" {
		t.Fatalf("unexpected health response: %d %#v", rr.Code, body)
	}

	rr, body = do(t, s, httptest.NewRequest(http.MethodGet, "/ready", nil))
	if rr.Code != http.StatusOK || body["ready"] != true {
		t.Fatalf("unexpected ready response: %d %#v", rr.Code, body)
	}

	mr := httptest.NewRecorder()
	s.HTTPRouter().ServeHTTP(mr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if mr.Code != http.StatusOK || !strings.Contains(mr.Body.String(), "scorectl_http_requests_total") {
		t.Fatalf("expected scorectl metrics, got %d", mr.Code)
	}
}

func TestServeStopsOnContextCancel(t *testing.T) {
	testlog.Start(t)
	gin.SetMode(gin.TestMode)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Skipf("skipping listener test in restricted environment: %v", err)
	}
	addr := ln.Addr().String()
	_ = ln.Close()

	cfg := config.DefaultServerConfig()
	cfg.Addr = addr
	cfg.ShutdownTimeout = time.Second
	s := Appear(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx) }()

	var resp *http.Response
	for i := 0; i < 50; i++ {
		resp, err = http.Get("http://" + addr + "/health")
		if err == nil {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	if err != nil {
		cancel()
		t.Fatalf("server never became reachable: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 from live health, got %d", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected clean shutdown, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("server did not stop after cancel")
	}
}

func TestScorecardRoutesRequireTokenWhenConfigured(t *testing.T) {
	testlog.Start(t)
	gin.SetMode(gin.TestMode)

	cfg := config.DefaultServerConfig()
	cfg.AuthToken = "lane-key"
	s := Appear(cfg)
	s.RegisterRoutes()

	rr, _ := do(t, s, httptest.NewRequest(http.MethodGet, "/v1/scorecards?rolls=X,X,X", nil))
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rr.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/scorecards?rolls=X,X,X", nil)
	req.Header.Set("Authorization", "Bearer lane-key")
	rr, body := do(t, s, req)
	if rr.Code != http.StatusOK || body["score"] != float64(30) {
		t.Fatalf("expected 200 with score 30, got %d %#v", rr.Code, body)
	}

	rr, _ = do(t, s, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected health to stay open, got %d", rr.Code)
	}
}
