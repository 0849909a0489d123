package kie

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/digkill/cinexa/internal/config"
	"github.com/digkill/cinexa/internal/models"
	"github.com/digkill/cinexa/internal/provider"
	"github.com/digkill/cinexa/pkg/logger"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(config.Config{
		KIEAPIKey:       "key",
		KIEBaseURL:      srv.URL,
		KIEPollInterval: time.Millisecond,
		KIEMaxAttempts:  3,
		RequestTimeout:  5 * time.Second,
	}, logger.Discard())
}

func TestClient_GenerateMedia(t *testing.T) {
	var (
		polls   atomic.Int32
		mu      sync.Mutex
		payload map[string]any
	)
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/jobs/createTask", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))
		mu.Lock()
		defer mu.Unlock()
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		_, _ = w.Write([]byte(`{"code":200,"data":{"taskId":"task-1"}}`))
	})
	mux.HandleFunc("/api/v1/jobs/recordInfo", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "task-1", r.URL.Query().Get("taskId"))
		if polls.Add(1) == 1 {
			_, _ = w.Write([]byte(`{"code":200,"data":{"state":"generating"}}`))
			return
		}
		_, _ = w.Write([]byte(`{"code":200,"data":{"state":"success","resultJson":"{\"resultUrls\":[\"https://cdn/v.mp4\",\"https://cdn/t.jpg\"]}"}}`))
	})
	client := newTestClient(t, mux)

	res, err := client.GenerateMedia(context.Background(), provider.MediaRequest{
		Kind:            models.KindVideo,
		Prompt:          "sunset",
		ModelID:         "veo_3",
		AspectRatio:     "16:9",
		DurationMinutes: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn/v.mp4", res.URL)
	assert.Equal(t, "https://cdn/t.jpg", res.ThumbnailURL)
	assert.EqualValues(t, 2, polls.Load())

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, "veo3", payload["model"])
	input := payload["input"].(map[string]any)
	assert.Equal(t, "sunset", input["prompt"])
	assert.EqualValues(t, 120, input["duration"])
}

func TestClient_TaskFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/jobs/createTask", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"code":200,"data":{"taskId":"task-2"}}`))
	})
	mux.HandleFunc("/api/v1/jobs/recordInfo", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"code":200,"data":{"state":"fail","failCode":"500","failMsg":"nsfw"}}`))
	})
	client := newTestClient(t, mux)

	_, err := client.GenerateMedia(context.Background(), provider.MediaRequest{Kind: models.KindImage, Prompt: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nsfw")
}

func TestClient_Timeout(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/jobs/createTask", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"code":200,"data":{"taskId":"task-3"}}`))
	})
	mux.HandleFunc("/api/v1/jobs/recordInfo", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"code":200,"data":{"state":"queued"}}`))
	})
	client := newTestClient(t, mux)

	_, err := client.GenerateMedia(context.Background(), provider.MediaRequest{Kind: models.KindImage, Prompt: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timeout after 3 attempts")
}

func TestClient_HTTPError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad key", http.StatusUnauthorized)
	}))

	_, err := client.GenerateMedia(context.Background(), provider.MediaRequest{Kind: models.KindThumbnail, Prompt: "x", Title: "T"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status=401")
}

func TestClient_UnsupportedKind(t *testing.T) {
	client := NewClient(config.Config{KIEBaseURL: "http://127.0.0.1:1"}, logger.Discard())
	_, err := client.GenerateMedia(context.Background(), provider.MediaRequest{Kind: "AUDIO", Prompt: "x"})
	assert.ErrorIs(t, err, provider.ErrUnsupportedKind)
}
