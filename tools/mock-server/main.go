// Package main implements a mock Discord webhook server for local
// development. It accepts validation summary and stale deal embeds posted
// by laptop-compare, logs them, and keeps the most recent ones in memory so
// they can be inspected without a real Discord channel.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"
	"unicode/utf8"
)

// Discord embed limits enforced by the real API.
const (
	maxEmbeds          = 10
	maxTitleLen        = 256
	maxDescriptionLen  = 4096
	maxFields          = 25
	maxFieldValueLen   = 1024
	invalidFormBodyErr = 50035
)

type webhookPayload struct {
	Content string  `json:"content,omitempty"`
	Embeds  []embed `json:"embeds"`
}

type embed struct {
	Title       string  `json:"title"`
	Color       int     `json:"color"`
	Description string  `json:"description,omitempty"`
	Fields      []field `json:"fields,omitempty"`
	Footer      *footer `json:"footer,omitempty"`
	Timestamp   string  `json:"timestamp,omitempty"`
}

type field struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type footer struct {
	Text string `json:"text"`
}

// message is a received webhook call.
type message struct {
	ID         string    `json:"id"`
	WebhookID  string    `json:"webhook_id"`
	ReceivedAt time.Time `json:"received_at"`
	Embeds     []embed   `json:"embeds"`
}

// inbox holds the most recent messages, oldest first.
type inbox struct {
	mu       sync.Mutex
	limit    int
	seq      int
	messages []message
}

func newInbox(limit int) *inbox {
	return &inbox{limit: limit}
}

func (b *inbox) add(webhookID string, embeds []embed, now time.Time) message {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.seq++
	m := message{
		ID:         strconv.Itoa(b.seq),
		WebhookID:  webhookID,
		ReceivedAt: now,
		Embeds:     embeds,
	}
	b.messages = append(b.messages, m)
	if len(b.messages) > b.limit {
		b.messages = b.messages[len(b.messages)-b.limit:]
	}
	return m
}

func (b *inbox) list() []message {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]message{}, b.messages...)
}

func (b *inbox) clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.messages = nil
}

func main() {
	port := flag.Int("port", 8089, "port to listen on")
	keep := flag.Int("keep", 100, "number of messages kept in memory")
	rateLimitEvery := flag.Int("rate-limit-every", 0, "answer every Nth webhook call with 429 (0 disables)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	box := newInbox(*keep)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/webhooks/{id}/{token}", webhookHandler(logger, box, *rateLimitEvery))
	mux.HandleFunc("GET /messages", listHandler(box))
	mux.HandleFunc("DELETE /messages", clearHandler(logger, box))

	addr := fmt.Sprintf(":%d", *port)
	logger.Info("starting mock Discord server", "addr", addr,
		"webhook_url", fmt.Sprintf("http://localhost%s/api/webhooks/1/local", addr))

	srv := &http.Server{
		Addr:         addr,
		Handler:      requestLogger(logger, mux),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("request", "method", r.Method, "path", r.URL.Path, "query", r.URL.RawQuery)
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
	json.NewEncoder(w).Encode(v)
}

func invalidForm(w http.ResponseWriter, reason string) {
	writeJSON(w, http.StatusBadRequest, map[string]any{
		"code":    invalidFormBodyErr,
		"message": "Invalid Form Body",
		"errors":  reason,
	})
}

// checkPayload applies the Discord embed limits and returns the first
// violation, or "".
func checkPayload(p *webhookPayload) string {
	if len(p.Embeds) == 0 && p.Content == "" {
		return "message must have content or embeds"
	}
	if len(p.Embeds) > maxEmbeds {
		return fmt.Sprintf("embeds: at most %d allowed", maxEmbeds)
	}
	for i, e := range p.Embeds {
		if utf8.RuneCountInString(e.Title) > maxTitleLen {
			return fmt.Sprintf("embeds.%d.title: longer than %d", i, maxTitleLen)
		}
		if utf8.RuneCountInString(e.Description) > maxDescriptionLen {
			return fmt.Sprintf("embeds.%d.description: longer than %d", i, maxDescriptionLen)
		}
		if len(e.Fields) > maxFields {
			return fmt.Sprintf("embeds.%d.fields: at most %d allowed", i, maxFields)
		}
		for j, f := range e.Fields {
			if f.Name == "" || f.Value == "" {
				return fmt.Sprintf("embeds.%d.fields.%d: name and value are required", i, j)
			}
			if utf8.RuneCountInString(f.Value) > maxFieldValueLen {
				return fmt.Sprintf("embeds.%d.fields.%d.value: longer than %d", i, j, maxFieldValueLen)
			}
		}
	}
	return ""
}

func webhookHandler(logger *slog.Logger, box *inbox, rateLimitEvery int) http.HandlerFunc {
	var (
		mu    sync.Mutex
		calls int
	)
	return func(w http.ResponseWriter, r *http.Request) {
		if rateLimitEvery > 0 {
			mu.Lock()
			calls++
			limited := calls%rateLimitEvery == 0
			mu.Unlock()
			if limited {
				logger.Warn("rate limiting webhook call", "webhook", r.PathValue("id"))
				writeJSON(w, http.StatusTooManyRequests, map[string]any{
					"message":     "You are being rate limited.",
					"retry_after": 1.0,
					"global":      false,
				})
				return
			}
		}

		var p webhookPayload
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			invalidForm(w, "body is not valid JSON")
			return
		}
		if reason := checkPayload(&p); reason != "" {
			logger.Warn("rejected webhook payload", "reason", reason)
			invalidForm(w, reason)
			return
		}

		m := box.add(r.PathValue("id"), p.Embeds, time.Now())
		for _, e := range p.Embeds {
			logger.Info("embed", "id", m.ID, "title", e.Title, "fields", len(e.Fields))
		}

		if r.URL.Query().Get("wait") == "true" {
			writeJSON(w, http.StatusOK, m)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func listHandler(box *inbox) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, box.list())
	}
}

func clearHandler(logger *slog.Logger, box *inbox) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		box.clear()
		logger.Info("cleared messages")
		w.WriteHeader(http.StatusNoContent)
	}
}
