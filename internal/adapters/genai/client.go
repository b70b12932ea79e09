// internal/adapters/genai/client.go
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"

	"hostel_pms/internal/adapters/observability"
	"hostel_pms/internal/domain"
)

// Client is the live Gateway backed by the Gemini REST API. Calls are never
// retried; pacing and the concurrency cap only delay them.
type Client struct {
	base       string
	key        string
	textModel  string
	imageModel string
	hc         *http.Client
	rl         *rate.Limiter
	sem        *semaphore.Weighted
}

type Options struct {
	TextModel      string
	ImageModel     string
	RPS            int
	MaxConcurrency int
	Timeout        time.Duration
}

func New(base, key string, o Options) (*Client, error) {
	if key == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if o.RPS <= 0 {
		o.RPS = 5
	}
	if o.MaxConcurrency <= 0 {
		o.MaxConcurrency = 8
	}
	if o.Timeout <= 0 {
		o.Timeout = 60 * time.Second
	}
	return &Client{
		base:       strings.TrimRight(base, "/"),
		key:        key,
		textModel:  o.TextModel,
		imageModel: o.ImageModel,
		hc:         &http.Client{Timeout: o.Timeout},
		rl:         rate.NewLimiter(rate.Limit(o.RPS), o.RPS),
		sem:        semaphore.NewWeighted(int64(o.MaxConcurrency)),
	}, nil
}

func (c *Client) Mode() string { return "live" }

// GenerateJSON sends the prompt to the text model and returns the answer as
// JSON after stripping markdown code fences.
func (c *Client) GenerateJSON(ctx context.Context, p domain.Prompt) (json.RawMessage, error) {
	text, err := c.generate(ctx, p)
	if err != nil {
		return nil, err
	}
	raw := []byte(stripFences(text))
	if !json.Valid(raw) {
		return nil, fmt.Errorf("%w: %s: response is not valid JSON", domain.ErrGateway, p.Operation)
	}
	return raw, nil
}

func (c *Client) GenerateText(ctx context.Context, p domain.Prompt) (string, error) {
	return c.generate(ctx, p)
}

// GenerateImage returns the first generated image, or nil when the provider
// returned none.
func (c *Client) GenerateImage(ctx context.Context, p domain.Prompt, aspectRatio string) (*domain.GeneratedImage, error) {
	if aspectRatio == "" {
		aspectRatio = "1:1"
	}
	body := predictRequest{
		Instances: []predictInstance{{Prompt: p.Text}},
		Parameters: predictParams{
			SampleCount:   1,
			AspectRatio:   aspectRatio,
			OutputOptions: outputOptions{MimeType: "image/png"},
		},
	}
	var out predictResponse
	url := fmt.Sprintf("%s/models/%s:predict", c.base, c.imageModel)
	if err := c.post(ctx, p.Operation, url, body, &out); err != nil {
		log.Error().Err(err).Str("op", p.Operation).Msg("image generation failed")
		return nil, fmt.Errorf("%w: failed to generate image", domain.ErrGateway)
	}
	for _, pr := range out.Predictions {
		if pr.BytesBase64Encoded != "" {
			return &domain.GeneratedImage{Base64Image: pr.BytesBase64Encoded}, nil
		}
	}
	return nil, nil
}

// ---- Internals ----

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

type predictInstance struct {
	Prompt string `json:"prompt"`
}

type outputOptions struct {
	MimeType string `json:"mimeType"`
}

type predictParams struct {
	SampleCount   int           `json:"sampleCount"`
	AspectRatio   string        `json:"aspectRatio"`
	OutputOptions outputOptions `json:"outputOptions"`
}

type predictRequest struct {
	Instances  []predictInstance `json:"instances"`
	Parameters predictParams     `json:"parameters"`
}

type predictResponse struct {
	Predictions []struct {
		BytesBase64Encoded string `json:"bytesBase64Encoded"`
		MimeType           string `json:"mimeType"`
	} `json:"predictions"`
}

func (c *Client) generate(ctx context.Context, p domain.Prompt) (string, error) {
	parts := []part{{Text: p.Text}}
	if p.Image != nil && p.Image.Base64 != "" {
		parts = append(parts, part{InlineData: &inlineData{MimeType: p.Image.MIMEType, Data: p.Image.Base64}})
	}
	body := generateRequest{Contents: []content{{Role: "user", Parts: parts}}}
	var out generateResponse
	url := fmt.Sprintf("%s/models/%s:generateContent", c.base, c.textModel)
	if err := c.post(ctx, p.Operation, url, body, &out); err != nil {
		return "", err
	}
	var sb strings.Builder
	if len(out.Candidates) > 0 {
		for _, pt := range out.Candidates[0].Content.Parts {
			sb.WriteString(pt.Text)
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("%w: %s: empty response", domain.ErrGateway, p.Operation)
	}
	return sb.String(), nil
}

// post performs one rate-limited, concurrency-capped POST and decodes the
// JSON answer into out. Every failure is reported as domain.ErrGateway.
func (c *Client) post(ctx context.Context, op, url string, in, out any) error {
	if err := c.sem.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrGateway, err)
	}
	defer c.sem.Release(1)
	if err := c.rl.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrGateway, err)
	}

	b, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("%w: encode request: %v", domain.ErrGateway, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrGateway, err)
	}
	req.Header.Set("x-goog-api-key", c.key)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "hostel-pms/1.0")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("genai", op, 0, time.Since(start))
		return fmt.Errorf("%w: %v", domain.ErrGateway, err)
	}
	defer resp.Body.Close()
	observability.ObserveExternal("genai", op, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// read a small error body for diagnostics
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%w: provider status %d: %s", domain.ErrGateway, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %v", domain.ErrGateway, err)
	}
	return nil
}

var fenceReplacer = strings.NewReplacer("```json", "", "```", "")

func stripFences(s string) string {
	return strings.TrimSpace(fenceReplacer.Replace(s))
}
