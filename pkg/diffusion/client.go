package diffusion

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
)

const DefaultModel = "runwayml/stable-diffusion-v1-5"

const defaultBaseURL = "https://api-inference.huggingface.co/models"

// Config carries the generator's connection settings explicitly; there is
// no package-level state.
type Config struct {
	Token   string
	Model   string
	BaseURL string
}

func NewClient(cfg Config, logger *zap.Logger) *Client {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}

	return &Client{
		cfg: cfg,
		cli: resty.New().SetDoNotParseResponse(true),
		log: logger,
	}
}

// Client renders text prompts into images through a hosted diffusion
// inference endpoint.
type Client struct {
	cfg Config
	cli *resty.Client
	log *zap.Logger
}

func (c *Client) Model() string {
	return c.cfg.Model
}

func (c *Client) url() string {
	return fmt.Sprintf("%s/%s", strings.TrimRight(c.cfg.BaseURL, "/"), c.cfg.Model)
}

func (c *Client) Generate(ctx context.Context, prompt string) (image.Image, error) {
	if c.cfg.Token == "" {
		return nil, errors.New("missing inference api token")
	}

	start := time.Now()

	resp, err := c.cli.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+c.cfg.Token).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"inputs": prompt}).
		Post(c.url())
	if err != nil {
		return nil, fmt.Errorf("inference request failed: %w", err)
	}

	defer func() {
		_ = resp.RawBody().Close()
	}()

	bar := progressbar.DefaultBytes(resp.RawResponse.ContentLength, fmt.Sprintf("Rendering %q", prompt))

	var buf bytes.Buffer
	if _, err := io.Copy(io.MultiWriter(&buf, bar), resp.RawBody()); err != nil {
		return nil, fmt.Errorf("read inference response failed: %w", err)
	}

	contentType := resp.RawResponse.Header.Get("Content-Type")
	if resp.StatusCode() != 200 || !strings.HasPrefix(contentType, "image") {
		return nil, fmt.Errorf("inference failed (%d): %s", resp.StatusCode(), strings.TrimSpace(buf.String()))
	}

	img, _, err := image.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("image decode failed: %w", err)
	}

	c.log.With(
		zap.String("model", c.cfg.Model),
		zap.String("prompt", prompt),
		zap.Duration("took", time.Since(start)),
	).Debug("image rendered")

	return img, nil
}
