// Package openai implements stt.Provider against the OpenAI
// audio/transcriptions endpoint.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/skillsenselab/meetscribe/internal/stt"
)

const (
	// ProviderName is the registered name for the OpenAI transcription provider.
	ProviderName = "openai"

	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "whisper-1"
	defaultTimeout = 120 * time.Second
)

// Config holds configuration for the OpenAI transcription provider.
type Config struct {
	BaseURL string        `yaml:"base_url" mapstructure:"base_url"`
	Model   string        `yaml:"model" mapstructure:"model"`
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// ApplyDefaults sets sensible default values for unset fields.
func (c *Config) ApplyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = defaultBaseURL
	}
	if c.Model == "" {
		c.Model = defaultModel
	}
	if c.Timeout == 0 {
		c.Timeout = defaultTimeout
	}
}

// Provider implements stt.Provider using OpenAI's transcription API.
type Provider struct {
	cfg    Config
	client *http.Client
}

// NewProvider creates a new OpenAI transcription provider.
func NewProvider(cfg Config) *Provider {
	cfg.ApplyDefaults()
	return &Provider{
		cfg: cfg,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// Name returns the provider name.
func (p *Provider) Name() string { return ProviderName }

// IsAvailable reports whether the API host answers at all. The API offers no
// unauthenticated health endpoint and credentials are caller-supplied, so any
// HTTP response counts as reachable.
func (p *Provider) IsAvailable(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.cfg.BaseURL+"/models", http.NoBody)
	if err != nil {
		return false
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return false
	}
	_ = resp.Body.Close()
	return resp.StatusCode < http.StatusInternalServerError
}

// Transcribe uploads the audio payload and returns the verbose transcription
// with segment-level timestamps. One attempt, no retry.
func (p *Provider) Transcribe(ctx context.Context, req stt.Request) (*stt.Response, error) {
	model := p.cfg.Model
	if req.Model != "" {
		model = req.Model
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := createAudioPart(writer, req.Filename, req.MIMEType)
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(req.Audio); err != nil {
		return nil, fmt.Errorf("write audio data: %w", err)
	}

	_ = writer.WriteField("model", model)
	_ = writer.WriteField("response_format", "verbose_json")
	_ = writer.WriteField("timestamp_granularities[]", "segment")
	if req.Language != "" {
		_ = writer.WriteField("language", req.Language)
	}
	writer.Close()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.BaseURL+"/audio/transcriptions", &buf)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())
	httpReq.Header.Set("Authorization", "Bearer "+req.APIKey)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("transcription request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("transcription error (status %d): %s", resp.StatusCode, string(body))
	}

	var result verboseResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode transcription response: %w", err)
	}

	return toResponse(&result), nil
}

// createAudioPart builds the file part with the sniffed media type instead of
// the octet-stream default that CreateFormFile would set.
func createAudioPart(writer *multipart.Writer, filename, mimeType string) (io.Writer, error) {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, quoteEscape(filename)))
	h.Set("Content-Type", mimeType)
	return writer.CreatePart(h)
}

func quoteEscape(s string) string {
	return strings.NewReplacer("\\", "\\\\", `"`, "\\\"").Replace(s)
}

// --- internal API response types ---

type verboseResponse struct {
	Text     string           `json:"text"`
	Segments []verboseSegment `json:"segments"`
	Duration float64          `json:"duration"`
	Language string           `json:"language"`
}

type verboseSegment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// toResponse applies the contract defaults: missing segments become an empty
// slice, missing language becomes "en", missing duration stays 0.
func toResponse(resp *verboseResponse) *stt.Response {
	segments := make([]stt.Segment, len(resp.Segments))
	for i, seg := range resp.Segments {
		segments[i] = stt.Segment{
			Start: seg.Start,
			End:   seg.End,
			Text:  seg.Text,
		}
	}

	language := resp.Language
	if language == "" {
		language = "en"
	}

	return &stt.Response{
		Text:     resp.Text,
		Segments: segments,
		Duration: resp.Duration,
		Language: language,
	}
}
