package infrastructure

import (
	"context"
	"fmt"
	"strings"
	"time"

	"flutter-scaffold/backend/internal/features/scaffold/domain"

	"github.com/charmbracelet/log"
	openai "github.com/sashabaranov/go-openai"
)

const describerSystemPrompt = `You write the overview paragraph of a README for a freshly generated Flutter project.
Write two to four plain sentences. Explain how the chosen architecture organises the listed folders and,
if the user supplied a description, what the app is meant to do. No headings, no lists, no code.`

// DescriberConfig holds configuration for the OpenAI describer.
type DescriberConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// OpenAIDescriber writes README overview text with a chat completion model.
type OpenAIDescriber struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	logger  *log.Logger
}

// NewOpenAIDescriber creates an OpenAI-backed describer.
func NewOpenAIDescriber(cfg DescriberConfig, logger *log.Logger) (*OpenAIDescriber, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key not set")
	}
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &OpenAIDescriber{
		client:  openai.NewClientWithConfig(clientConfig),
		model:   model,
		timeout: cfg.Timeout,
		logger:  logger,
	}, nil
}

// Describe asks the model for an overview of the project.
func (d *OpenAIDescriber) Describe(ctx context.Context, summary domain.ProjectSummary) (string, error) {
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	resp, err := d.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: d.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: describerSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: describerUserPrompt(summary)},
		},
		MaxTokens:   300,
		Temperature: 0.3,
	})
	if err != nil {
		d.logger.Error("OpenAI chat completion failed", "model", d.model, "err", err)
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}

	overview := strings.TrimSpace(resp.Choices[0].Message.Content)
	d.logger.Debug("Project overview generated", "project", summary.Name, "chars", len(overview))
	return overview, nil
}

func describerUserPrompt(summary domain.ProjectSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Project name: %s\n", summary.Name)
	fmt.Fprintf(&b, "Architecture: %s\n", summary.Architecture)
	if desc := strings.TrimSpace(summary.Description); desc != "" {
		fmt.Fprintf(&b, "Description: %s\n", desc)
	}
	b.WriteString("Folders:\n")
	for _, folder := range domain.SortedFolders(summary.Folders) {
		fmt.Fprintf(&b, "- %s\n", folder)
	}
	return b.String()
}
