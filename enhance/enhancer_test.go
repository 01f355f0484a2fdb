package enhance

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/brandsift/brandsift/config"
)

// fakeModelServer returns an httptest server that answers chat completions
// with the given reply text, counting how many requests it received.
func fakeModelServer(t *testing.T, reply string, status int) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if status != http.StatusOK {
			w.WriteHeader(status)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]string{"message": "insufficient quota"},
			})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": reply}},
			},
		})
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func enhancerFor(srv *httptest.Server) *Enhancer {
	client := NewClient(srv.Client(), "test-key", "test-model", srv.URL)
	return NewWithClient(client, "test-model")
}

func TestEnhance_DisabledUsesFallback(t *testing.T) {
	e := New(config.EnhancerConfig{Model: "test-model"}) // no API key

	out := e.Enhance(context.Background(), "a perfectly reasonable description", "Acme", "https://acme.test")
	if !out.UsedFallback {
		t.Error("disabled engine must use the local fallback")
	}
	if out.Text == "" {
		t.Error("fallback text must be non-empty")
	}
}

func TestEnhance_ShortInputSkipsRemoteCall(t *testing.T) {
	srv, calls := fakeModelServer(t, "should never be used", http.StatusOK)
	e := enhancerFor(srv)

	out := e.Enhance(context.Background(), "Hi", "Acme", "https://acme.test")

	if calls.Load() != 0 {
		t.Errorf("short input triggered %d remote calls, want 0", calls.Load())
	}
	if !out.UsedFallback {
		t.Error("short input must use the local fallback")
	}
	if out.Text != "Hi." {
		t.Errorf("unexpected fallback text %q", out.Text)
	}
}

func TestEnhance_RemoteSuccess(t *testing.T) {
	srv, calls := fakeModelServer(t, `"Enhanced Description: Acme crafts premium widgets."`, http.StatusOK)
	e := enhancerFor(srv)

	out := e.Enhance(context.Background(), "acme makes widgets and stuff", "Acme", "https://acme.test")

	if calls.Load() != 1 {
		t.Errorf("expected exactly one remote call, got %d", calls.Load())
	}
	if out.UsedFallback {
		t.Error("successful remote call must not be marked as fallback")
	}
	if out.Text != "Acme crafts premium widgets." {
		t.Errorf("response not sanitized, got %q", out.Text)
	}
}

func TestEnhance_RemoteFailureFallsBack(t *testing.T) {
	srv, _ := fakeModelServer(t, "", http.StatusTooManyRequests)
	e := enhancerFor(srv)

	out := e.Enhance(context.Background(), "acme makes widgets and stuff", "Acme", "https://acme.test")

	if !out.UsedFallback {
		t.Error("remote failure must fall back to local cleanup")
	}
	if out.Text == "" {
		t.Error("fallback text must be non-empty")
	}
}

func TestEnhance_TransportErrorFallsBack(t *testing.T) {
	srv, _ := fakeModelServer(t, "", http.StatusOK)
	client := NewClient(srv.Client(), "test-key", "test-model", srv.URL)
	srv.Close() // simulate an unreachable provider
	e := NewWithClient(client, "test-model")

	out := e.Enhance(context.Background(), "acme makes widgets and stuff", "Acme", "https://acme.test")

	if !out.UsedFallback {
		t.Error("transport error must fall back to local cleanup")
	}
	if out.Text == "" {
		t.Error("fallback text must be non-empty")
	}
}

func TestEnhance_EmptyRemoteReplyFallsBack(t *testing.T) {
	srv, _ := fakeModelServer(t, "   ", http.StatusOK)
	e := enhancerFor(srv)

	out := e.Enhance(context.Background(), "acme makes widgets and stuff", "Acme", "https://acme.test")

	if !out.UsedFallback {
		t.Error("empty remote reply must fall back to local cleanup")
	}
}

func TestStatus(t *testing.T) {
	disabled := New(config.EnhancerConfig{Model: "gpt-4o-mini"})
	st := disabled.Status()
	if st.Enabled || !st.FallbackMode {
		t.Errorf("unexpected disabled status: %+v", st)
	}
	if st.Model != "gpt-4o-mini" {
		t.Errorf("status must report the configured model, got %q", st.Model)
	}

	enabled := New(config.EnhancerConfig{APIKey: "k", Model: "gpt-4o-mini", BaseURL: "https://api.openai.com/v1"})
	st = enabled.Status()
	if !st.Enabled || st.FallbackMode {
		t.Errorf("unexpected enabled status: %+v", st)
	}
}
