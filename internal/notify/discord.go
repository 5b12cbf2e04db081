package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/donaldgifford/laptop-compare/internal/metrics"
	"github.com/donaldgifford/laptop-compare/pkg/validate"
)

const (
	colorGreen  = 0x2ECC71 // clean run
	colorYellow = 0xF1C40F // warnings only
	colorRed    = 0xE74C3C // errors

	// Discord caps embed descriptions at 4096 characters.
	maxDescription = 4000
	// Error lines listed before the rest are summarized.
	maxListedIssues = 15
)

// DiscordNotifier implements Notifier via Discord webhook.
type DiscordNotifier struct {
	webhookURL   string
	client       *http.Client
	onlyOnErrors bool
}

// NewDiscordNotifier creates a new DiscordNotifier.
func NewDiscordNotifier(webhookURL string, opts ...DiscordOption) *DiscordNotifier {
	d := &DiscordNotifier{
		webhookURL: webhookURL,
		client:     http.DefaultClient,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DiscordOption configures a DiscordNotifier.
type DiscordOption func(*DiscordNotifier)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) DiscordOption {
	return func(d *DiscordNotifier) {
		d.client = c
	}
}

// WithOnlyOnErrors suppresses summaries for runs without errors.
func WithOnlyOnErrors(only bool) DiscordOption {
	return func(d *DiscordNotifier) {
		d.onlyOnErrors = only
	}
}

// discordWebhookPayload is the Discord webhook JSON structure.
type discordWebhookPayload struct {
	Embeds []discordEmbed `json:"embeds"`
}

type discordEmbed struct {
	Title       string              `json:"title"`
	Color       int                 `json:"color"`
	Description string              `json:"description,omitempty"`
	Fields      []discordEmbedField `json:"fields,omitempty"`
	Footer      *discordFooter      `json:"footer,omitempty"`
	Timestamp   string              `json:"timestamp,omitempty"`
}

type discordEmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type discordFooter struct {
	Text string `json:"text"`
}

// SendValidationSummary posts a validation run as a single embed.
func (d *DiscordNotifier) SendValidationSummary(ctx context.Context, summary *SummaryPayload) error {
	if d.onlyOnErrors && !summary.Result.HasErrors() {
		return nil
	}
	payload := discordWebhookPayload{
		Embeds: []discordEmbed{buildSummaryEmbed(summary)},
	}
	return d.post(ctx, payload)
}

// SendStaleDeals posts the list of deals that need re-verification.
func (d *DiscordNotifier) SendStaleDeals(ctx context.Context, stale *StaleDealsPayload) error {
	if len(stale.Deals) == 0 {
		return nil
	}

	var b strings.Builder
	for i := range stale.Deals {
		deal := &stale.Deals[i]
		last := "never"
		if deal.LastVerified != nil {
			last = deal.LastVerified.Format(time.DateOnly)
		}
		line := fmt.Sprintf("- %s: %s at %s ($%.0f), last verified %s\n",
			deal.ID, deal.ProductID, deal.Retailer, deal.Price, last)
		if b.Len()+len(line) > maxDescription {
			fmt.Fprintf(&b, "... and %d more\n", len(stale.Deals)-i)
			break
		}
		b.WriteString(line)
	}

	embed := discordEmbed{
		Title:       fmt.Sprintf("%d deals not verified in %d days", len(stale.Deals), stale.Threshold),
		Color:       colorYellow,
		Description: b.String(),
		Timestamp:   stale.Now.UTC().Format(time.RFC3339),
	}
	return d.post(ctx, discordWebhookPayload{Embeds: []discordEmbed{embed}})
}

func buildSummaryEmbed(s *SummaryPayload) discordEmbed {
	res := s.Result
	embed := discordEmbed{
		Title: summaryTitle(res),
		Color: summaryColor(res),
		Fields: []discordEmbedField{
			{Name: "Errors", Value: fmt.Sprintf("%d", len(res.Errors)), Inline: true},
			{Name: "Warnings", Value: fmt.Sprintf("%d", len(res.Warnings)), Inline: true},
			{Name: "Products", Value: fmt.Sprintf("%d", s.Products), Inline: true},
		},
		Footer: &discordFooter{Text: fmt.Sprintf("run %s · %s", s.RunID, s.Source)},
	}
	if !s.LoadedAt.IsZero() {
		embed.Timestamp = s.LoadedAt.UTC().Format(time.RFC3339)
	}
	embed.Description = describeErrors(res.Errors)
	return embed
}

func summaryTitle(res validate.Result) string {
	switch {
	case res.HasErrors():
		return fmt.Sprintf("Catalog validation failed: %d errors", len(res.Errors))
	case len(res.Warnings) > 0:
		return fmt.Sprintf("Catalog validation passed with %d warnings", len(res.Warnings))
	default:
		return "Catalog validation passed"
	}
}

func summaryColor(res validate.Result) int {
	switch {
	case res.HasErrors():
		return colorRed
	case len(res.Warnings) > 0:
		return colorYellow
	default:
		return colorGreen
	}
}

// describeErrors lists error issues grouped by category, truncated to fit
// an embed.
func describeErrors(errs []validate.Issue) string {
	if len(errs) == 0 {
		return ""
	}
	var b strings.Builder
	listed := 0
	for _, g := range validate.GroupByCategory(errs) {
		fmt.Fprintf(&b, "**%s** (%d)\n", g.Category, len(g.Issues))
		for _, is := range g.Issues {
			if listed == maxListedIssues || b.Len() > maxDescription {
				fmt.Fprintf(&b, "... and %d more\n", len(errs)-listed)
				return b.String()
			}
			fmt.Fprintf(&b, "- %s\n", is.Message)
			listed++
		}
	}
	return b.String()
}

func (d *DiscordNotifier) post(ctx context.Context, payload discordWebhookPayload) error {
	start := time.Now()
	defer func() {
		metrics.NotificationDuration.Observe(time.Since(start).Seconds())
	}()

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling discord payload: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		d.webhookURL,
		bytes.NewReader(body),
	)
	if err != nil {
		return fmt.Errorf("creating discord request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		metrics.NotificationFailuresTotal.Inc()
		return fmt.Errorf("sending discord webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		metrics.NotificationFailuresTotal.Inc()
		return fmt.Errorf("discord rate limited (429)")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.NotificationFailuresTotal.Inc()
		respBody, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return fmt.Errorf("discord returned %d (body unreadable)", resp.StatusCode)
		}
		return fmt.Errorf("discord returned %d: %s", resp.StatusCode, respBody)
	}

	return nil
}
