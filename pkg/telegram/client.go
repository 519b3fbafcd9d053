// Package telegram provides a minimal client for the Telegram Bot API:
// sending messages with inline keyboards and uploading document attachments.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/rotisserie/eris"

	"github.com/scopelock/leadflow/internal/resilience"
)

// Client defines the Bot API operations used by the notifier.
type Client interface {
	// SendMessage delivers a Markdown-formatted message to a chat.
	SendMessage(ctx context.Context, msg Message) error
	// SendDocument uploads a file attachment to a chat.
	SendDocument(ctx context.Context, doc Document) error
}

// Message is an outbound sendMessage request.
type Message struct {
	ChatID         string          `json:"chat_id"`
	Text           string          `json:"text"`
	ParseMode      string          `json:"parse_mode,omitempty"`
	ReplyMarkup    *InlineKeyboard `json:"reply_markup,omitempty"`
	DisablePreview bool            `json:"disable_web_page_preview,omitempty"`
}

// InlineKeyboard is a grid of callback buttons attached to a message.
type InlineKeyboard struct {
	InlineKeyboard [][]Button `json:"inline_keyboard"`
}

// Button is a single inline keyboard button carrying an opaque callback token.
type Button struct {
	Text         string `json:"text"`
	CallbackData string `json:"callback_data"`
}

// Document is an outbound sendDocument request.
type Document struct {
	ChatID   string
	Filename string
	Content  []byte
	Caption  string
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL sets a custom API base URL (for testing).
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

type httpClient struct {
	token   string
	baseURL string
	http    *http.Client
}

// NewClient creates a new Bot API client.
func NewClient(token string, opts ...Option) Client {
	c := &httpClient{
		token:   token,
		baseURL: "https://api.telegram.org",
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *httpClient) SendMessage(ctx context.Context, msg Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return eris.Wrap(err, "telegram: marshal message")
	}

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", c.baseURL, c.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return eris.Wrap(err, "telegram: create request")
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, "sendMessage")
}

func (c *httpClient) SendDocument(ctx context.Context, doc Document) error {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	if err := form.WriteField("chat_id", doc.ChatID); err != nil {
		return eris.Wrap(err, "telegram: write chat_id field")
	}
	if doc.Caption != "" {
		if err := form.WriteField("caption", doc.Caption); err != nil {
			return eris.Wrap(err, "telegram: write caption field")
		}
	}

	part, err := form.CreateFormFile("document", doc.Filename)
	if err != nil {
		return eris.Wrap(err, "telegram: create form file")
	}
	if _, err := part.Write(doc.Content); err != nil {
		return eris.Wrap(err, "telegram: write document")
	}
	if err := form.Close(); err != nil {
		return eris.Wrap(err, "telegram: close form")
	}

	endpoint := fmt.Sprintf("%s/bot%s/sendDocument", c.baseURL, c.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return eris.Wrap(err, "telegram: create request")
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	return c.do(req, "sendDocument")
}

func (c *httpClient) do(req *http.Request, operation string) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return eris.Wrapf(err, "telegram: %s", operation)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode >= 400 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		err := eris.Errorf("telegram: %s returned status %d: %s", operation, resp.StatusCode, string(detail))
		if resilience.IsTransientHTTPStatus(resp.StatusCode) {
			return resilience.NewTransientError(err, resp.StatusCode)
		}
		return err
	}
	return nil
}
