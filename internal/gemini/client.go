// Package gemini wraps the Gemini generateContent call for the image-in,
// image-out request poly2 sends.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"
)

// Defaults for the public Gemini API.
const (
	DefaultBaseURL    = "https://generativelanguage.googleapis.com/"
	DefaultAPIVersion = "v1beta"
	DefaultModel      = "gemini-2.5-flash-image-preview"
)

// Fixed generation parameters.
const (
	Temperature     = 0.4
	CandidateCount  = 1
	MaxOutputTokens = 2048
)

// ErrNoImage is returned when the model answers without an image part.
var ErrNoImage = errors.New("gemini: no image generated by model")

// APIError is returned for non-2xx responses.
type APIError struct {
	StatusCode int
	Status     string
	Message    string // error.message from the response body, if any
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("gemini: API error %d %s: %s", e.StatusCode, e.Status, e.Message)
	}
	return fmt.Sprintf("gemini: API error %d %s", e.StatusCode, e.Status)
}

// Config holds the connection settings for a Client.
type Config struct {
	APIKey     string
	BaseURL    string       // defaults to DefaultBaseURL
	APIVersion string       // defaults to DefaultAPIVersion
	Model      string       // defaults to DefaultModel
	HTTPClient *http.Client // nil lets the SDK pick its own
}

// Client sends image transformation requests.
type Client struct {
	client *genai.Client
	model  string
	gen    *genai.GenerateContentConfig
}

// NewClient returns a client for cfg. A blank API key is an error.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	key := strings.TrimSpace(cfg.APIKey)
	if key == "" {
		return nil, errors.New("gemini: API key is required")
	}

	opts := genai.HTTPOptions{BaseURL: cfg.BaseURL, APIVersion: cfg.APIVersion}
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.APIVersion == "" {
		opts.APIVersion = DefaultAPIVersion
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      key,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  cfg.HTTPClient,
		HTTPOptions: opts,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: creating client: %w", err)
	}

	return &Client{
		client: gc,
		model:  model,
		gen: &genai.GenerateContentConfig{
			Temperature:     genai.Ptr[float32](Temperature),
			CandidateCount:  CandidateCount,
			MaxOutputTokens: MaxOutputTokens,
		},
	}, nil
}

// GenerateImage sends img together with prompt and returns the bytes of the
// first inline image in the first candidate, plus its MIME type.
func (c *Client) GenerateImage(ctx context.Context, img []byte, mimeType, prompt string) ([]byte, string, error) {
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(img, mimeType),
			genai.NewPartFromText(prompt),
		}, genai.RoleUser),
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, c.gen)
	if err != nil {
		return nil, "", wrapError(err)
	}
	return firstImage(resp)
}

func wrapError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &APIError{StatusCode: apiErr.Code, Status: apiErr.Status, Message: apiErr.Message}
	}
	return fmt.Errorf("gemini: generateContent: %w", err)
}

// firstImage picks the first inline image of the first candidate. A
// candidate that stopped for any reason other than STOP reports it.
func firstImage(resp *genai.GenerateContentResponse) ([]byte, string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return nil, "", ErrNoImage
	}
	cand := resp.Candidates[0]
	if cand.Content != nil {
		for _, p := range cand.Content.Parts {
			if p == nil || p.InlineData == nil || len(p.InlineData.Data) == 0 {
				continue
			}
			return p.InlineData.Data, p.InlineData.MIMEType, nil
		}
	}
	if cand.FinishReason != "" && cand.FinishReason != genai.FinishReasonStop {
		return nil, "", fmt.Errorf("%w (finish reason %s)", ErrNoImage, cand.FinishReason)
	}
	return nil, "", ErrNoImage
}
