package textgen

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"log/slog"
	"strings"
	"time"

	"gamereviews/internal/metrics"

	"github.com/microcosm-cc/bluemonday"
	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Generator writes review HTML for a game title. ok=false means use StockReview.
type Generator interface {
	Generate(ctx context.Context, title string) (text string, ok bool)
}

const systemPrompt = "You are a professional video game critic. Write concise, balanced reviews in Markdown. " +
	"Use three to five short paragraphs, no headings, no score."

var (
	markdownEngine = goldmark.New(goldmark.WithExtensions(extension.Typographer))
	reviewPolicy   = bluemonday.UGCPolicy()
)

type Options struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
	Logger  *slog.Logger
}

type OpenAIGenerator struct {
	client  openai.Client
	model   string
	timeout time.Duration
	logger  *slog.Logger
}

func NewOpenAIGenerator(opts Options) *OpenAIGenerator {
	reqOpts := []option.RequestOption{
		option.WithAPIKey(opts.APIKey),
		option.WithMaxRetries(1),
	}
	if base := strings.TrimSpace(opts.BaseURL); base != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(base))
	}
	if opts.Model == "" {
		opts.Model = "gpt-4o-mini"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &OpenAIGenerator{
		client:  openai.NewClient(reqOpts...),
		model:   opts.Model,
		timeout: opts.Timeout,
		logger:  opts.Logger,
	}
}

func (g *OpenAIGenerator) Generate(ctx context.Context, title string) (string, bool) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(g.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(fmt.Sprintf("Write a review of the video game %q.", title)),
		},
		MaxCompletionTokens: openai.Int(700),
		Temperature:         openai.Float(0.8),
	})
	if err != nil {
		metrics.TextgenRequests.WithLabelValues("failure").Inc()
		g.logger.Warn("textgen_failed", "title", title, "error", err)
		return "", false
	}
	if len(resp.Choices) == 0 {
		metrics.TextgenRequests.WithLabelValues("empty").Inc()
		return "", false
	}

	out, err := RenderMarkdown(resp.Choices[0].Message.Content)
	if err != nil || out == "" {
		metrics.TextgenRequests.WithLabelValues("empty").Inc()
		return "", false
	}
	metrics.TextgenRequests.WithLabelValues("success").Inc()
	return out, true
}

// RenderMarkdown converts model output to sanitized HTML.
func RenderMarkdown(md string) (string, error) {
	md = strings.TrimSpace(md)
	if md == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(md), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return strings.TrimSpace(reviewPolicy.Sanitize(buf.String())), nil
}

// Disabled never generates; the importer falls back to StockReview.
type Disabled struct{}

func (Disabled) Generate(context.Context, string) (string, bool) {
	return "", false
}

// StockReview is the deterministic review used when generation is off or fails.
func StockReview(title string) string {
	t := html.EscapeString(title)
	return "<p>This is an auto-generated review for " + t + ".</p>" +
		"<p>The game offers engaging gameplay mechanics and provides " +
		"excellent entertainment value for players. With solid controls, " +
		"immersive graphics, and compelling storyline, this title " +
		"delivers a memorable gaming experience.</p>" +
		"<p>Overall, this game represents a quality addition to any " +
		"gaming library and is recommended for fans of the genre.</p>"
}
