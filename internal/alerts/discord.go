package alerts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3/client"

	"grimoire/internal/config"
	"grimoire/internal/models"
	"grimoire/internal/validation"
)

// discordContentLimit is Discord's maximum message content length.
const discordContentLimit = 2000

// ErrDisabled is returned when sending through an unconfigured service.
var ErrDisabled = errors.New("alert forwarding disabled")

// Service posts log events to a Discord webhook.
type Service struct {
	webhookURL string
	username   string
	client     *client.Client
	enabled    bool
}

// NewService creates a new Discord alert service.
func NewService(cfg *config.Config) *Service {
	s := &Service{
		webhookURL: cfg.DiscordWebhookURL,
		username:   cfg.DiscordUsername,
		client:     client.New().SetTimeout(5 * time.Second),
	}

	if !cfg.IsAlertsEnabled() {
		slog.Info("alert forwarding disabled (DISCORD_WEBHOOK_URL not set)")
		return s
	}
	if ok, msg := validation.ValidateURL(cfg.DiscordWebhookURL); !ok {
		slog.Warn("alert forwarding disabled: invalid DISCORD_WEBHOOK_URL", "reason", msg)
		return s
	}

	s.enabled = true
	slog.Info("alert forwarding enabled", "sink", "discord")
	return s
}

// IsEnabled returns true if a valid webhook is configured.
func (s *Service) IsEnabled() bool {
	return s.enabled
}

type webhookPayload struct {
	Username string `json:"username,omitempty"`
	Content  string `json:"content"`
}

// Send posts a single event to the webhook.
func (s *Service) Send(ctx context.Context, ev *models.LogEvent) error {
	if !s.enabled {
		return ErrDisabled
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("User-Agent", "Grimoire-Alerts/1.0").
		SetJSON(webhookPayload{Username: s.username, Content: FormatMessage(ev)}).
		Post(s.webhookURL)
	if err != nil {
		return fmt.Errorf("failed to post webhook: %w", err)
	}
	defer resp.Close()

	if code := resp.StatusCode(); code < 200 || code >= 300 {
		return fmt.Errorf("webhook returned HTTP %d", code)
	}
	return nil
}

// FormatMessage renders an event as Discord markdown, truncated to the
// message length limit.
func FormatMessage(ev *models.LogEvent) string {
	var b strings.Builder

	fmt.Fprintf(&b, "**[%s]** %s", strings.ToUpper(ev.Level), ev.Message)
	if ev.Source != "" {
		fmt.Fprintf(&b, "\nsource: `%s`", ev.Source)
	}
	fmt.Fprintf(&b, "\nid: `%s`", ev.ID)

	if len(ev.Context) > 0 {
		if data, err := json.MarshalIndent(ev.Context, "", "  "); err == nil {
			b.WriteString("\n```json\n")
			b.Write(data)
			b.WriteString("\n```")
		}
	}

	return truncate(b.String(), discordContentLimit)
}

// truncate shortens s to at most limit bytes without splitting a rune.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	const ellipsis = "…"
	cut := limit - len(ellipsis)
	for cut > 0 && !isRuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + ellipsis
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
