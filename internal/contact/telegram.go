package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"cr-records/internal/config"
	"cr-records/internal/logger"
)

// ErrNotConfigured is returned when no bot token or chat ids are set.
var ErrNotConfigured = errors.New("contact: telegram relay not configured")

// Message is a validated contact form submission.
type Message struct {
	Name    string
	Email   string
	Message string
	Company string
	Phone   string
}

// Relay forwards contact messages to every configured Telegram chat. The
// overall send succeeds only if every chat accepted the message.
type Relay struct {
	Client *http.Client
	Logger *logger.Logger
	Config config.ContactConfig
}

func NewRelay(client *http.Client, log *logger.Logger, cfg config.ContactConfig) *Relay {
	return &Relay{Client: client, Logger: log, Config: cfg}
}

// Configured reports whether the relay can send at all.
func (r *Relay) Configured() bool {
	return r.Config.BotToken != "" && len(r.Config.ChatIDs) > 0
}

var markdownSpecial = regexp.MustCompile("([_*\\[\\]()~`>#+\\-=|{}.!])")

// EscapeMarkdown backslash-escapes Telegram markdown control characters.
func EscapeMarkdown(text string) string {
	return markdownSpecial.ReplaceAllString(text, `\$1`)
}

func (r *Relay) renderText(msg Message) string {
	orDash := func(value string) string {
		if value == "" {
			return "-"
		}
		return EscapeMarkdown(value)
	}
	lines := []string{
		"📩 *New Website Inquiry - cyrusreigns.com*",
		"",
		"👤 *Name:* " + EscapeMarkdown(msg.Name),
		"🏢 *Company:* " + orDash(msg.Company),
		"📞 *Phone:* " + orDash(msg.Phone),
		"📧 *Email:* " + EscapeMarkdown(msg.Email),
		"💬 *Message:*",
		orDash(msg.Message),
	}
	return strings.Join(lines, "\n")
}

type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

type sendMessageResponse struct {
	OK bool `json:"ok"`
}

// Send relays one message to every configured chat concurrently and fails if
// any single chat rejects it.
func (r *Relay) Send(ctx context.Context, msg Message) error {
	if !r.Configured() {
		return ErrNotConfigured
	}

	correlationID := uuid.NewString()
	text := r.renderText(msg)
	url := fmt.Sprintf("%s/bot%s/sendMessage", strings.TrimSuffix(r.Config.APIBaseURL, "/"), r.Config.BotToken)

	g, ctx := errgroup.WithContext(ctx)
	for _, chatID := range r.Config.ChatIDs {
		chatID := chatID
		g.Go(func() error {
			return r.sendOne(ctx, url, chatID, text)
		})
	}
	if err := g.Wait(); err != nil {
		r.Logger.Error("CONTACT", fmt.Sprintf("Relay %s failed: %v", correlationID, err))
		return err
	}
	r.Logger.Info("CONTACT", fmt.Sprintf("Relay %s delivered to %d chats", correlationID, len(r.Config.ChatIDs)))
	return nil
}

func (r *Relay) sendOne(ctx context.Context, url, chatID, text string) error {
	body, err := json.Marshal(sendMessageRequest{
		ChatID:    chatID,
		Text:      text,
		ParseMode: "Markdown",
	})
	if err != nil {
		return fmt.Errorf("encode telegram request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create telegram request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.Client.Do(req)
	if err != nil {
		return fmt.Errorf("telegram send to chat %s: %w", chatID, err)
	}
	defer resp.Body.Close()

	var parsed sendMessageResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return fmt.Errorf("decode telegram response for chat %s: %w", chatID, err)
	}
	if !parsed.OK {
		return fmt.Errorf("telegram rejected message for chat %s", chatID)
	}
	return nil
}
