package reminder

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingNotifier struct {
	calls int
}

func (n *failingNotifier) Notify(ctx context.Context, title, body string) error {
	n.calls++
	return errors.New("channel down")
}

func TestWebhookNotifier_Notify(t *testing.T) {
	t.Run("posts title and body as JSON", func(t *testing.T) {
		var received map[string]string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		notifier := NewWebhookNotifier(server.URL)
		err := notifier.Notify(context.Background(), "Hora de Poupar!", "corpo")

		require.NoError(t, err)
		assert.Equal(t, "Hora de Poupar!", received["title"])
		assert.Equal(t, "corpo", received["body"])
	})

	t.Run("non-2xx response is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		notifier := NewWebhookNotifier(server.URL)
		err := notifier.Notify(context.Background(), "t", "b")

		assert.Error(t, err)
	})
}

func TestFallbackNotifier_Notify(t *testing.T) {
	t.Run("uses the alert channel when no primary is configured", func(t *testing.T) {
		fallback := &recordingNotifier{}
		notifier := NewFallbackNotifier(nil, fallback)

		require.NoError(t, notifier.Notify(context.Background(), "t", "b"))

		assert.Len(t, fallback.titles, 1)
	})

	t.Run("degrades to the alert channel when the primary fails", func(t *testing.T) {
		primary := &failingNotifier{}
		fallback := &recordingNotifier{}
		notifier := NewFallbackNotifier(primary, fallback)

		require.NoError(t, notifier.Notify(context.Background(), "t", "b"))

		assert.Equal(t, 1, primary.calls)
		assert.Len(t, fallback.titles, 1)
	})

	t.Run("does not fall back when the primary succeeds", func(t *testing.T) {
		primary := &recordingNotifier{}
		fallback := &recordingNotifier{}
		notifier := NewFallbackNotifier(primary, fallback)

		require.NoError(t, notifier.Notify(context.Background(), "t", "b"))

		assert.Len(t, primary.titles, 1)
		assert.Empty(t, fallback.titles)
	})
}
