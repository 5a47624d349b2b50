package chi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimit_Disabled(t *testing.T) {
	handler := RateLimitMiddleware(0, 0)(okHandler())

	for i := 0; i < 50; i++ {
		req := httptest.NewRequest("GET", "/api/v1/items", http.NoBody)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Fatalf("request %d: got %d, want 200", i, rr.Code)
		}
	}
}

func TestRateLimit_BurstThen429(t *testing.T) {
	handler := RateLimitMiddleware(0.001, 2)(okHandler())

	codes := make([]int, 3)
	for i := range codes {
		req := httptest.NewRequest("GET", "/api/v1/items", http.NoBody)
		req.RemoteAddr = "10.0.0.1:5555"
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		codes[i] = rr.Code

		if rr.Code == http.StatusTooManyRequests {
			var errResp ErrorResponse
			if err := json.NewDecoder(rr.Body).Decode(&errResp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if errResp.Code != ErrorCodeRateLimited {
				t.Errorf("code = %q, want %q", errResp.Code, ErrorCodeRateLimited)
			}
			if rr.Header().Get("Retry-After") == "" {
				t.Error("expected Retry-After header")
			}
		}
	}

	want := []int{200, 200, 429}
	for i := range want {
		if codes[i] != want[i] {
			t.Errorf("codes = %v, want %v", codes, want)
			break
		}
	}
}

func TestRateLimit_PerClient(t *testing.T) {
	handler := RateLimitMiddleware(0.001, 1)(okHandler())

	for _, addr := range []string{"10.0.0.1:1", "10.0.0.2:1", "10.0.0.3:1"} {
		req := httptest.NewRequest("GET", "/api/v1/items", http.NoBody)
		req.RemoteAddr = addr
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Errorf("%s: got %d, want 200", addr, rr.Code)
		}
	}
}

func TestRateLimit_ExemptPaths(t *testing.T) {
	handler := RateLimitMiddleware(0.001, 1)(okHandler())

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest("GET", "/health", http.NoBody)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Fatalf("health request %d: got %d", i, rr.Code)
		}
	}
}

func TestIPLimiters_SweepsIdleClients(t *testing.T) {
	now := time.Unix(1_000_000, 0)
	l := newIPLimiters(1, 1)
	l.now = func() time.Time { return now }

	l.allow("a")
	l.allow("b")
	if len(l.clients) != 2 {
		t.Fatalf("clients = %d, want 2", len(l.clients))
	}

	now = now.Add(limiterTTL + limiterSweepEvery + time.Second)
	l.allow("c")
	if len(l.clients) != 1 {
		t.Errorf("clients after sweep = %d, want 1", len(l.clients))
	}
	if _, ok := l.clients["c"]; !ok {
		t.Error("expected the active client to remain")
	}
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest("GET", "/", http.NoBody)
	req.RemoteAddr = "192.168.1.7:4242"
	if got := clientIP(req); got != "192.168.1.7" {
		t.Errorf("clientIP() = %q", got)
	}
	req.RemoteAddr = "no-port"
	if got := clientIP(req); got != "no-port" {
		t.Errorf("clientIP() = %q", got)
	}
}
