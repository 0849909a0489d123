package kie

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/digkill/cinexa/internal/config"
	"github.com/digkill/cinexa/internal/models"
	"github.com/digkill/cinexa/internal/provider"
)

// Client drives the KIE jobs API: a task is created and then polled until it
// reaches a terminal state.
type Client struct {
	apiKey       string
	baseURL      string
	httpClient   *http.Client
	log          *slog.Logger
	pollInterval time.Duration
	maxAttempts  int
}

// remoteModels maps catalog model ids to KIE model names. Ids missing from the
// map are sent unchanged.
var remoteModels = map[string]string{
	"veo_3":         "veo3",
	"sora_1":        "sora-2-text-to-video",
	"kling_ai":      "kling/v2-1-standard",
	"imagen_3":      "google/imagen4",
	"midjourney_v6": "midjourney/v6",
	"flux_pro":      "flux-2/pro-text-to-image",
	"flux_1_pro":    "flux-2/pro-text-to-image",
	"ideogram_2":    "ideogram/v2",
}

func NewClient(cfg config.Config, log *slog.Logger) *Client {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	pollInterval := cfg.KIEPollInterval
	if pollInterval <= 0 {
		pollInterval = 2 * time.Second
	}
	maxAttempts := cfg.KIEMaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 60
	}

	return &Client{
		apiKey:  cfg.KIEAPIKey,
		baseURL: strings.TrimRight(cfg.KIEBaseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log:          log,
		pollInterval: pollInterval,
		maxAttempts:  maxAttempts,
	}
}

func (c *Client) GenerateMedia(ctx context.Context, req provider.MediaRequest) (*provider.MediaResult, error) {
	input := map[string]any{
		"prompt": req.Prompt,
	}
	if req.AspectRatio != "" {
		input["aspect_ratio"] = req.AspectRatio
	}
	if req.Style != "" {
		input["style"] = req.Style
	}

	switch req.Kind {
	case models.KindVideo:
		input["duration"] = req.DurationMinutes * 60
		if req.Language != "" {
			input["language"] = req.Language
		}
		if req.VoiceID != "" {
			input["voice"] = req.VoiceID
		}
	case models.KindThumbnail:
		// Thumbnail models render the overlay text into the image.
		text := req.Title
		if req.Subtitle != "" {
			text += " / " + req.Subtitle
		}
		input["prompt"] = fmt.Sprintf("%s. Headline text: %q", req.Prompt, text)
	case models.KindImage:
	default:
		return nil, fmt.Errorf("%w: %s", provider.ErrUnsupportedKind, req.Kind)
	}

	model := req.ModelID
	if remote, ok := remoteModels[model]; ok {
		model = remote
	}

	urls, err := c.postAsync(ctx, map[string]any{
		"model": model,
		"input": input,
	})
	if err != nil {
		return nil, err
	}

	result := &provider.MediaResult{URL: urls[0]}
	if len(urls) > 1 {
		result.ThumbnailURL = urls[1]
	} else if req.Kind != models.KindVideo {
		result.ThumbnailURL = urls[0]
	}
	return result, nil
}

func (c *Client) postAsync(ctx context.Context, payload map[string]any) ([]string, error) {
	taskID, err := c.createTask(ctx, payload)
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return c.pollTaskStatus(ctx, taskID)
}

func (c *Client) endpoint(path string, query url.Values) (string, error) {
	baseURL, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("parse base URL: %w", err)
	}
	ref, err := url.Parse(path)
	if err != nil {
		return "", fmt.Errorf("parse endpoint: %w", err)
	}
	if query != nil {
		ref.RawQuery = query.Encode()
	}
	return baseURL.ResolveReference(ref).String(), nil
}

func (c *Client) createTask(ctx context.Context, payload map[string]any) (string, error) {
	fullURL, err := c.endpoint("/api/v1/jobs/createTask", nil)
	if err != nil {
		return "", err
	}

	if c.log != nil {
		c.log.Info("creating KIE task", "url", fullURL, "model", payload["model"])
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fullURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	rawBody, err := c.do(req)
	if err != nil {
		return "", err
	}

	var createResp struct {
		Code int    `json:"code"`
		Msg  string `json:"msg"`
		Data struct {
			TaskID string `json:"taskId"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rawBody, &createResp); err != nil {
		return "", fmt.Errorf("decode create task response: %w (body=%s)", err, truncateBody(rawBody))
	}
	if createResp.Code != http.StatusOK {
		return "", fmt.Errorf("create task failed: code=%d msg=%s", createResp.Code, createResp.Msg)
	}
	if createResp.Data.TaskID == "" {
		return "", fmt.Errorf("empty taskId in response")
	}

	if c.log != nil {
		c.log.Info("KIE task created", "task_id", createResp.Data.TaskID)
	}
	return createResp.Data.TaskID, nil
}

func (c *Client) pollTaskStatus(ctx context.Context, taskID string) ([]string, error) {
	fullURL, err := c.endpoint("/api/v1/jobs/recordInfo", url.Values{"taskId": {taskID}})
	if err != nil {
		return nil, err
	}

	for attempt := 0; attempt < c.maxAttempts; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("new request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
		req.Header.Set("Accept", "application/json")

		rawBody, err := c.do(req)
		if err != nil {
			return nil, err
		}

		var statusResp struct {
			Code int    `json:"code"`
			Msg  string `json:"msg"`
			Data struct {
				State      string `json:"state"`
				ResultJSON string `json:"resultJson"`
				FailCode   string `json:"failCode"`
				FailMsg    string `json:"failMsg"`
			} `json:"data"`
		}
		if err := json.Unmarshal(rawBody, &statusResp); err != nil {
			return nil, fmt.Errorf("decode status response: %w (body=%s)", err, truncateBody(rawBody))
		}
		if statusResp.Code != http.StatusOK {
			return nil, fmt.Errorf("get task status failed: code=%d msg=%s", statusResp.Code, statusResp.Msg)
		}

		switch state := statusResp.Data.State; state {
		case "success":
			if statusResp.Data.ResultJSON == "" {
				return nil, fmt.Errorf("empty resultJson in success response")
			}
			var result struct {
				ResultURLs []string `json:"resultUrls"`
			}
			if err := json.Unmarshal([]byte(statusResp.Data.ResultJSON), &result); err != nil {
				return nil, fmt.Errorf("parse resultJson: %w", err)
			}
			if len(result.ResultURLs) == 0 {
				return nil, fmt.Errorf("no resultUrls in result")
			}
			if c.log != nil {
				c.log.Info("KIE task completed", "task_id", taskID, "attempt", attempt+1)
			}
			return result.ResultURLs, nil

		case "fail":
			failMsg := statusResp.Data.FailMsg
			if failMsg == "" {
				failMsg = "unknown error"
			}
			if c.log != nil {
				c.log.Error("KIE task failed", "task_id", taskID, "fail_code", statusResp.Data.FailCode, "fail_msg", failMsg)
			}
			return nil, fmt.Errorf("task failed: %s (code: %s)", failMsg, statusResp.Data.FailCode)

		case "waiting", "generating", "processing", "queued", "queueing":
			if c.log != nil && attempt%10 == 0 {
				c.log.Info("KIE task waiting", "task_id", taskID, "attempt", attempt+1, "max_attempts", c.maxAttempts)
			}
			if attempt == c.maxAttempts-1 {
				break
			}
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.pollInterval):
			}

		default:
			return nil, fmt.Errorf("unknown task state: %s", state)
		}
	}

	return nil, fmt.Errorf("task timeout after %d attempts", c.maxAttempts)
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s kie: %w", strings.ToLower(req.Method), err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	if resp.StatusCode >= 300 {
		if c.log != nil {
			c.log.Error("KIE request failed", "status", resp.StatusCode, "url", req.URL.String(), "body", truncateBody(rawBody))
		}
		return nil, fmt.Errorf("kie error: status=%d url=%s body=%s", resp.StatusCode, req.URL.String(), truncateBody(rawBody))
	}
	return rawBody, nil
}

func truncateBody(body []byte) string {
	const limit = 512
	s := strings.TrimSpace(string(body))
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "…"
}
