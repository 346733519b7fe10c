package notify_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinkerloft/promptshape/internal/model"
	"github.com/tinkerloft/promptshape/internal/notify"
)

func TestFormatAnswer(t *testing.T) {
	got := notify.FormatAnswer("Who?", model.StrategyChainOfThought, "Naruto.")
	assert.Equal(t, "*Q:* Who?\n*Technique:* Chain-of-Thought\n\nNaruto.", got)
}

func TestSlackNotifier_PostAnswer(t *testing.T) {
	var form url.Values
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		_ = r.ParseForm()
		form = r.PostForm
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true,"channel":"C123","ts":"1700000000.000100"}`))
	}))
	defer srv.Close()

	n := notify.NewSlackNotifier("xoxb-test", "C123", slack.OptionAPIURL(srv.URL+"/"))
	require.NoError(t, n.PostAnswer(context.Background(), "Who?", model.StrategyRAG, "Naruto."))

	assert.Equal(t, "/chat.postMessage", path)
	assert.Equal(t, "C123", form.Get("channel"))
	assert.Contains(t, form.Get("text"), "*Technique:* RAG")
	assert.Equal(t, "C123", n.Channel())
}

func TestSlackNotifier_PostAnswerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":false,"error":"channel_not_found"}`))
	}))
	defer srv.Close()

	n := notify.NewSlackNotifier("xoxb-test", "C404", slack.OptionAPIURL(srv.URL+"/"))
	err := n.PostAnswer(context.Background(), "Who?", model.StrategyRAG, "Naruto.")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "channel_not_found")
}
