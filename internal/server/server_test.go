package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/incense/internal/models"
	"github.com/desertthunder/incense/internal/shared"
	"github.com/desertthunder/incense/internal/tasks"
	tu "github.com/desertthunder/incense/internal/testing"
)

var testNow = time.Date(2026, 10, 19, 9, 41, 0, 0, time.UTC)

func newTestSource(t *testing.T, store *tu.MapStore) *StoreSource {
	t.Helper()
	clock := tu.NewFixedClock(testNow)
	logger := shared.NewLogger(io.Discard)
	return &StoreSource{
		Log:    tasks.NewSessionLog(store, clock, logger),
		Quotes: tasks.NewQuoteRotator(store, clock, &tu.SeqRand{Values: []int{0}}, logger),
	}
}

func seededStore() *tu.MapStore {
	store := tu.NewMapStore()
	store.Data[models.SessionsKey] = `[{"id":"c","duration":15,"completedAt":"2026-10-19T08:00:00Z"},{"id":"b","duration":45,"completedAt":"2026-10-18T08:00:00Z"},{"id":"a","duration":25,"completedAt":"2026-10-17T08:00:00Z"}]`
	store.Data[models.QuoteDateKey] = "Mon Oct 19 2026"
	store.Data[models.QuoteTextKey] = "One breath at a time."
	return store
}

func newTestRouter(t *testing.T, store *tu.MapStore) *BasicRouter {
	t.Helper()
	logger := shared.NewLogger(io.Discard)
	router := NewBasicRouter()
	router.Use(Recover(logger), Logging(logger))
	router.Handler(NewAPIHandler(newTestSource(t, store), logger))
	return router
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestAPIHandler(t *testing.T) {
	t.Run("sessions", func(t *testing.T) {
		rec := get(t, newTestRouter(t, seededStore()), "/api/sessions")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected application/json, got %s", ct)
		}

		var body SessionsResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if body.Total != 3 || len(body.Sessions) != 3 || body.Sessions[0].ID != "c" {
			t.Errorf("unexpected body: %+v", body)
		}
	})

	t.Run("sessions limit", func(t *testing.T) {
		rec := get(t, newTestRouter(t, seededStore()), "/api/sessions?limit=1")

		var body SessionsResponse
		_ = json.Unmarshal(rec.Body.Bytes(), &body)
		if body.Total != 3 || len(body.Sessions) != 1 {
			t.Errorf("expected 1 of 3 sessions, got %d of %d", len(body.Sessions), body.Total)
		}
	})

	t.Run("invalid limit", func(t *testing.T) {
		rec := get(t, newTestRouter(t, seededStore()), "/api/sessions?limit=-2")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("empty store", func(t *testing.T) {
		rec := get(t, newTestRouter(t, tu.NewMapStore()), "/api/sessions")
		if !strings.Contains(rec.Body.String(), `"sessions":[]`) {
			t.Errorf("expected empty array, got %s", rec.Body.String())
		}
	})

	t.Run("stats", func(t *testing.T) {
		rec := get(t, newTestRouter(t, seededStore()), "/api/stats")

		var sum models.Summary
		if err := json.Unmarshal(rec.Body.Bytes(), &sum); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		want := models.Summary{TotalSessions: 3, TotalMinutes: 85, TodaySessions: 1, TodayMinutes: 15}
		if sum != want {
			t.Errorf("expected %+v, got %+v", want, sum)
		}
	})

	t.Run("quote", func(t *testing.T) {
		rec := get(t, newTestRouter(t, seededStore()), "/api/quote")

		var q QuoteResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &q); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if q.Text != "One breath at a time." || !q.Today {
			t.Errorf("unexpected quote: %+v", q)
		}
	})

	t.Run("reads never write", func(t *testing.T) {
		store := tu.NewMapStore()
		router := newTestRouter(t, store)
		for _, path := range []string{"/api/sessions", "/api/stats", "/api/quote"} {
			get(t, router, path)
		}
		if store.Writes != 0 {
			t.Errorf("expected no writes, got %d", store.Writes)
		}

		rec := get(t, router, "/api/quote")
		if !strings.Contains(rec.Body.String(), `"today":false`) {
			t.Errorf("expected stale quote flag, got %s", rec.Body.String())
		}
	})

	t.Run("sees sessions recorded elsewhere", func(t *testing.T) {
		store := tu.NewMapStore()
		router := newTestRouter(t, store)

		writer := tasks.NewSessionLog(store, tu.NewFixedClock(testNow), shared.NewLogger(io.Discard))
		_, _ = writer.Record(25)

		var body SessionsResponse
		_ = json.Unmarshal(get(t, router, "/api/sessions").Body.Bytes(), &body)
		if body.Total != 1 {
			t.Errorf("expected 1 session, got %d", body.Total)
		}

		var sum models.Summary
		_ = json.Unmarshal(get(t, router, "/api/stats").Body.Bytes(), &sum)
		if sum.TotalSessions != 1 || sum.TodayMinutes != 25 {
			t.Errorf("expected stats to include the new session, got %+v", sum)
		}
	})

	t.Run("source keeps the reloaded log", func(t *testing.T) {
		store := tu.NewMapStore()
		source := newTestSource(t, store)

		writer := tasks.NewSessionLog(store, tu.NewFixedClock(testNow), shared.NewLogger(io.Discard))
		_, _ = writer.Record(45)

		if got := len(source.Sessions()); got != 1 {
			t.Fatalf("expected 1 session, got %d", got)
		}
		if source.Log.TotalMinutes() != 45 {
			t.Errorf("expected in-memory log to hold 45 minutes, got %d", source.Log.TotalMinutes())
		}
	})

	t.Run("method not allowed", func(t *testing.T) {
		rec := httptest.NewRecorder()
		newTestRouter(t, seededStore()).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/sessions", nil))
		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("expected 405, got %d", rec.Code)
		}
	})
}

func TestRouter(t *testing.T) {
	t.Run("middleware order", func(t *testing.T) {
		var order []string
		mw := func(name string) Middleware {
			return func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					order = append(order, name)
					next.ServeHTTP(w, r)
				})
			}
		}

		router := NewBasicRouter()
		router.Use(mw("first"), mw("second"))
		router.Handle(http.MethodGet, "/ping", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			order = append(order, "handler")
		}))

		get(t, router, "/ping")
		if strings.Join(order, ",") != "first,second,handler" {
			t.Errorf("expected first,second,handler, got %v", order)
		}
	})

	t.Run("head on get routes", func(t *testing.T) {
		router := NewBasicRouter()
		router.Handle(http.MethodGet, "/ping", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodHead, "/ping", nil))
		if rec.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", rec.Code)
		}
	})
}

func TestMiddleware(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	t.Run("rate limit", func(t *testing.T) {
		h := RateLimit(1, 2)(ok)

		codes := make([]int, 4)
		for i := range codes {
			codes[i] = get(t, h, "/").Code
		}

		if codes[0] != 200 || codes[1] != 200 {
			t.Errorf("expected burst of 2 to pass, got %v", codes)
		}
		if codes[3] != http.StatusTooManyRequests {
			t.Errorf("expected 429 after burst, got %v", codes)
		}
	})

	t.Run("rate limit disabled", func(t *testing.T) {
		h := RateLimit(0, 0)(ok)
		for range 50 {
			if code := get(t, h, "/").Code; code != 200 {
				t.Fatalf("expected 200, got %d", code)
			}
		}
	})

	t.Run("recover", func(t *testing.T) {
		h := Recover(shared.NewLogger(io.Discard))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			panic("boom")
		}))
		if code := get(t, h, "/").Code; code != http.StatusInternalServerError {
			t.Errorf("expected 500, got %d", code)
		}
	})

	t.Run("logging", func(t *testing.T) {
		var buf strings.Builder
		h := Logging(shared.NewLogger(&buf))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		}))
		get(t, h, "/brew")

		out := buf.String()
		if !strings.Contains(out, "/brew") || !strings.Contains(out, "418") {
			t.Errorf("expected path and status in log, got %s", out)
		}
	})
}

func TestServe(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	ready := make(chan string, 1)
	done := make(chan error, 1)

	go func() {
		done <- Serve(ctx, "127.0.0.1:0", newTestRouter(t, seededStore()), shared.NewLogger(io.Discard), ready)
	}()

	var addr string
	select {
	case addr = <-ready:
	case err := <-done:
		t.Fatalf("server exited early: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not start")
	}

	resp, err := http.Get("http://" + addr + "/api/stats")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("expected clean shutdown, got %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("server did not stop")
	}
}
