package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/poly2dev/poly2/internal/codec"
	"github.com/poly2dev/poly2/internal/config"
	"github.com/poly2dev/poly2/internal/gemini"
	"github.com/poly2dev/poly2/internal/ir"
	"github.com/poly2dev/poly2/internal/retro"
)

// Pipeline errors. Run wraps them with detail; test with errors.Is.
var (
	// ErrInputRejected: the upload is empty, too large or not an image.
	// Nothing was decoded.
	ErrInputRejected = errors.New("input rejected")

	// ErrRemoteUnavailable wraps AI path failures. It only appears in
	// Result.Fallback; Run recovers from it with the local engine.
	ErrRemoteUnavailable = errors.New("AI service unavailable")

	// ErrDecode: the source bytes could not be rasterized.
	ErrDecode = errors.New("cannot decode image")
)

// Codec converts between encoded image bytes and RGBA pixels.
type Codec interface {
	Decode(data []byte) (*ir.RGBAImage, error)
	Encode(img *ir.RGBAImage) ([]byte, error)
}

// Generator is the remote image transformation service.
type Generator interface {
	GenerateImage(ctx context.Context, img []byte, mimeType, prompt string) ([]byte, string, error)
}

// pngCodec decodes every registered format and encodes PNG.
type pngCodec struct{}

func (pngCodec) Decode(data []byte) (*ir.RGBAImage, error) { return codec.DecodeRGBA(data) }
func (pngCodec) Encode(img *ir.RGBAImage) ([]byte, error)  { return codec.EncodePNG(img) }

// Request is one transformation request.
type Request struct {
	Data     []byte // encoded source image
	Filename string // original file name, used for MIME detection
	MIMEType string // detected from Data and Filename when empty
	Preset   retro.Preset
}

// Orchestrator sequences decode, the optional AI attempt, the local filter
// engine and PNG encoding for one request at a time. It is not safe for
// concurrent use.
type Orchestrator struct {
	cfg      config.Config
	codec    Codec
	gen      Generator
	genFixed bool
	log      *slog.Logger
	now      func() time.Time
}

// New returns an orchestrator for cfg. Without WithGenerator, the AI path
// uses the Gemini client when cfg carries an API key.
func New(cfg config.Config, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		cfg:   cfg,
		codec: pngCodec{},
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	if !o.genFixed {
		o.gen = o.newGenerator()
	}
	return o
}

// newGenerator builds the Gemini client for the current credential. A key
// the client refuses is logged and leaves the AI path off.
func (o *Orchestrator) newGenerator() Generator {
	if o.cfg.APIKey == "" {
		return nil
	}
	c, err := gemini.NewClient(context.Background(), gemini.Config{
		APIKey:  o.cfg.APIKey,
		BaseURL: o.cfg.BaseURL,
		Model:   o.cfg.Model,
	})
	if err != nil {
		o.logger().Warn("AI client unavailable, using local transformation only", "error", err)
		return nil
	}
	return c
}

// Config returns the current configuration.
func (o *Orchestrator) Config() config.Config {
	return o.cfg
}

// SetAPIKey replaces the credential for subsequent runs. An empty key
// disables the AI path.
func (o *Orchestrator) SetAPIKey(key string) {
	o.cfg.APIKey = strings.TrimSpace(key)
	if !o.genFixed {
		o.gen = o.newGenerator()
	}
}

// AIEnabled reports whether Run will attempt the AI path.
func (o *Orchestrator) AIEnabled() bool {
	return o.gen != nil && !o.cfg.ForceLocal
}

func (o *Orchestrator) logger() *slog.Logger {
	if o.log != nil {
		return o.log
	}
	return Logger()
}

// Run executes one transformation: validate → AI attempt (if configured) →
// local engine fallback → PNG encode. The local path has no external
// dependency, so once the input is accepted Run only fails when the source
// cannot be decoded or encoded.
func (o *Orchestrator) Run(ctx context.Context, req Request) (*Result, error) {
	preset := req.Preset
	if !preset.Valid() {
		preset = retro.DefaultPreset
	}
	log := o.logger().With("preset", preset.String())

	// 1. Reject bad uploads before touching the codec
	mimeType, err := o.validate(req)
	if err != nil {
		log.Debug("input rejected", "error", err)
		return nil, err
	}
	log.Debug("transform stage", "stage", "idle", "bytes", len(req.Data), "mime", mimeType)

	// 2. Remote AI path
	var fallback error
	if o.AIEnabled() {
		log.Debug("transform stage", "stage", "attempting_ai")
		res, err := o.runAI(ctx, req.Data, mimeType, preset)
		if err == nil {
			log.Info("transformation complete", "mode", res.Mode.String(), "width", res.Width, "height", res.Height)
			return res, nil
		}
		fallback = fmt.Errorf("%w: %w", ErrRemoteUnavailable, err)
		log.Warn("AI transformation failed, falling back to local engine", "error", err)
		log.Debug("transform stage", "stage", "falling_back")
	}

	// 3. Local engine
	log.Debug("transform stage", "stage", "applying_engine")
	decoded, err := o.codec.Decode(req.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if err := decoded.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	filtered := retro.ApplyImage(decoded, preset)

	// 4. Encode PNG
	encoded, err := o.codec.Encode(filtered)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}

	res := &Result{
		Data:      encoded,
		Width:     filtered.Width,
		Height:    filtered.Height,
		Preset:    preset,
		Mode:      ModeLocal,
		Fallback:  fallback,
		CreatedAt: o.now(),
	}
	log.Info("transformation complete", "mode", res.Mode.String(), "width", res.Width, "height", res.Height)
	return res, nil
}

func (o *Orchestrator) validate(req Request) (string, error) {
	if len(req.Data) == 0 {
		return "", fmt.Errorf("%w: empty file", ErrInputRejected)
	}
	if limit := o.cfg.MaxInputBytes; limit > 0 && int64(len(req.Data)) > limit {
		return "", fmt.Errorf("%w: image file too large (%d bytes, max %d)", ErrInputRejected, len(req.Data), limit)
	}

	mimeType := req.MIMEType
	if mimeType == "" {
		mimeType = codec.DetectMIME(req.Data, req.Filename)
	}
	if !codec.IsImageMIME(mimeType) {
		return "", fmt.Errorf("%w: %s is not an image type", ErrInputRejected, mimeType)
	}
	return mimeType, nil
}

// runAI asks the generator for a transformed image and re-encodes it as PNG
// so both modes produce the same container.
func (o *Orchestrator) runAI(ctx context.Context, data []byte, mimeType string, preset retro.Preset) (*Result, error) {
	if o.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.cfg.Timeout)
		defer cancel()
	}

	generated, genMIME, err := o.gen.GenerateImage(ctx, data, mimeType, preset.Prompt())
	if err != nil {
		return nil, err
	}

	img, err := o.codec.Decode(generated)
	if err != nil {
		return nil, fmt.Errorf("decoding AI image (%s): %w", genMIME, err)
	}
	if err := img.Validate(); err != nil {
		return nil, fmt.Errorf("decoding AI image (%s): %v", genMIME, err)
	}

	encoded, err := o.codec.Encode(img)
	if err != nil {
		return nil, fmt.Errorf("encoding AI image: %w", err)
	}

	return &Result{
		Data:      encoded,
		Width:     img.Width,
		Height:    img.Height,
		Preset:    preset,
		Mode:      ModeAI,
		CreatedAt: o.now(),
	}, nil
}
