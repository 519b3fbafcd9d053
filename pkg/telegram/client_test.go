package telegram

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scopelock/leadflow/internal/resilience"
)

func TestSendMessage_PostsJSON(t *testing.T) {
	var got Message
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient("test-token", WithBaseURL(srv.URL))
	err := client.SendMessage(context.Background(), Message{
		ChatID:         "chat-1",
		Text:           "hello",
		ParseMode:      "Markdown",
		DisablePreview: true,
		ReplyMarkup: &InlineKeyboard{
			InlineKeyboard: [][]Button{{{Text: "✅ Submit", CallbackData: "submit_job-1"}}},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "/bottest-token/sendMessage", path)
	assert.Equal(t, "chat-1", got.ChatID)
	assert.Equal(t, "hello", got.Text)
	require.NotNil(t, got.ReplyMarkup)
	assert.Equal(t, "submit_job-1", got.ReplyMarkup.InlineKeyboard[0][0].CallbackData)
}

func TestSendDocument_PostsMultipart(t *testing.T) {
	var chatID, caption, filename, content string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		chatID = r.FormValue("chat_id")
		caption = r.FormValue("caption")

		file, header, err := r.FormFile("document")
		require.NoError(t, err)
		defer file.Close()
		filename = header.Filename
		data, err := io.ReadAll(file)
		require.NoError(t, err)
		content = string(data)

		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient("test-token", WithBaseURL(srv.URL))
	err := client.SendDocument(context.Background(), Document{
		ChatID:   "chat-1",
		Filename: "proposal_job-1.txt",
		Content:  []byte("full proposal text"),
		Caption:  "Full proposal for: AI chatbot",
	})

	require.NoError(t, err)
	assert.Equal(t, "chat-1", chatID)
	assert.Equal(t, "Full proposal for: AI chatbot", caption)
	assert.Equal(t, "proposal_job-1.txt", filename)
	assert.Equal(t, "full proposal text", content)
}

func TestSendMessage_ServerErrorIsTransient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient("test-token", WithBaseURL(srv.URL))
	err := client.SendMessage(context.Background(), Message{ChatID: "chat-1", Text: "hi"})

	require.Error(t, err)
	assert.True(t, resilience.IsTransient(err))
	assert.Contains(t, err.Error(), "status 502")
}

func TestSendMessage_ClientErrorIsPermanent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"ok":false,"description":"chat not found"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	client := NewClient("test-token", WithBaseURL(srv.URL))
	err := client.SendMessage(context.Background(), Message{ChatID: "bogus", Text: "hi"})

	require.Error(t, err)
	assert.False(t, resilience.IsTransient(err))
	assert.Contains(t, err.Error(), "chat not found")
}
