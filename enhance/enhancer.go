package enhance

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/brandsift/brandsift/config"
)

const (
	// minInputLen is the minimum trimmed input length worth a remote call.
	minInputLen = 10

	// maxEnhancedLen caps both the sanitized remote output and the local
	// cleanup output.
	maxEnhancedLen = 1000

	// maxOutputWords is the word budget given to the model.
	maxOutputWords = 200
)

// Outcome is the result of one enhancement: the final text and whether the
// deterministic local fallback produced it.
type Outcome struct {
	Text         string `json:"text"`
	UsedFallback bool   `json:"used_fallback"`
}

// Status is a snapshot of the engine's configuration, independent of any
// specific call.
type Status struct {
	Enabled      bool   `json:"enabled"`
	Model        string `json:"model"`
	FallbackMode bool   `json:"fallback_mode"`
}

// Enhancer rewrites extracted descriptions into more professional prose via
// an OpenAI-compatible model, falling back to a deterministic local cleanup
// whenever the model is disabled, unavailable, or fails.
//
// Whether the engine is enabled is decided once at construction (a model
// credential was configured) and never rechecked.
type Enhancer struct {
	client  *Client
	model   string
	enabled bool
}

// New constructs an Enhancer from configuration. When cfg.APIKey is empty
// the engine runs in permanent fallback mode and never calls out.
func New(cfg config.EnhancerConfig) *Enhancer {
	e := &Enhancer{
		model:   cfg.Model,
		enabled: cfg.APIKey != "",
	}
	if e.enabled {
		e.client = NewClient(&http.Client{Timeout: cfg.Timeout}, cfg.APIKey, cfg.Model, cfg.BaseURL)
	}
	return e
}

// NewWithClient constructs an enabled Enhancer around an existing client.
func NewWithClient(client *Client, model string) *Enhancer {
	return &Enhancer{client: client, model: model, enabled: client != nil}
}

// Enhance rewrites rawText. It never fails the caller: any remote failure,
// including quota and rate-limit errors, is absorbed by the local cleanup.
func (e *Enhancer) Enhance(ctx context.Context, rawText, brandName, sourceURL string) Outcome {
	trimmed := strings.TrimSpace(rawText)

	// A remote call is never attempted on trivially short input, even when
	// the engine is enabled.
	if !e.enabled || len(trimmed) < minInputLen {
		return Outcome{Text: Cleanup(trimmed), UsedFallback: true}
	}

	reply, err := e.client.Complete(ctx, systemPrompt, buildUserPrompt(trimmed, brandName, sourceURL))
	if err != nil {
		if isQuotaError(err) {
			slog.Warn("model quota exhausted, using local cleanup", "error", err)
		} else {
			slog.Warn("enhancement call failed, using local cleanup", "error", err)
		}
		return Outcome{Text: Cleanup(trimmed), UsedFallback: true}
	}

	sanitized := Sanitize(reply)
	if sanitized == "" {
		slog.Warn("model returned empty text, using local cleanup")
		return Outcome{Text: Cleanup(trimmed), UsedFallback: true}
	}

	return Outcome{Text: sanitized, UsedFallback: false}
}

// Status reports the engine's enabled/fallback state and model identifier.
func (e *Enhancer) Status() Status {
	return Status{
		Enabled:      e.enabled,
		Model:        e.model,
		FallbackMode: !e.enabled,
	}
}

const systemPrompt = "You are a professional copywriter. Rewrite the " +
	"description you are given into clear, professional prose. Improve " +
	"grammar and flow, do not introduce facts that are not in the original, " +
	"and keep the result under 200 words. Return only the rewritten text " +
	"with no commentary, labels, or quotation marks."

// buildUserPrompt embeds the raw text plus optional brand and source context.
func buildUserPrompt(rawText, brandName, sourceURL string) string {
	var b strings.Builder
	if brandName != "" {
		fmt.Fprintf(&b, "Brand: %s\n", brandName)
	}
	if sourceURL != "" {
		fmt.Fprintf(&b, "Source: %s\n", sourceURL)
	}
	fmt.Fprintf(&b, "Description:\n%s", rawText)
	return b.String()
}

// isQuotaError detects quota/rate-limit failures by message inspection; the
// provider reports them only as text.
func isQuotaError(err error) bool {
	text := strings.ToLower(err.Error())
	return strings.Contains(text, "quota") ||
		strings.Contains(text, "rate limit") ||
		strings.Contains(text, "returned 429")
}
