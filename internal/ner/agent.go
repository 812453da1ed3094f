package ner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/adk/agent"
	"google.golang.org/adk/agent/llmagent"
	"google.golang.org/adk/model/gemini"
	"google.golang.org/adk/runner"
	"google.golang.org/adk/session"
	"google.golang.org/genai"
)

const (
	defaultModel = "gemini-2.5-flash"
	agentName    = "entity_recognizer"
	agentUser    = "skilledge"
)

// AgentRecognizer asks a Gemini-backed ADK agent to tag entities. Each call
// runs in its own short-lived in-memory session.
type AgentRecognizer struct {
	runner   *runner.Runner
	sessions session.Service
	appName  string
	logger   *zap.Logger
}

// NewAgentRecognizer builds the agent, its runner and an in-memory session service.
func NewAgentRecognizer(ctx context.Context, apiKey, modelName string, logger *zap.Logger) (*AgentRecognizer, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}
	if modelName = strings.TrimSpace(modelName); modelName == "" {
		modelName = defaultModel
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	model, err := gemini.NewModel(ctx, modelName, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create model: %w", err)
	}

	recognizer, err := llmagent.New(llmagent.Config{
		Name:        agentName,
		Model:       model,
		Description: "Recognize named entities in resumes",
		Instruction: prompt(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create agent: %w", err)
	}

	sessions := session.InMemoryService()
	r, err := runner.New(runner.Config{
		AppName:        recognizer.Name(),
		Agent:          recognizer,
		SessionService: sessions,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create runner: %w", err)
	}

	return &AgentRecognizer{
		runner:   r,
		sessions: sessions,
		appName:  recognizer.Name(),
		logger:   logger,
	}, nil
}

// Recognize sends the text to the agent and parses its JSON answer.
func (a *AgentRecognizer) Recognize(ctx context.Context, text string) ([]Entity, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	created, err := a.sessions.Create(ctx, &session.CreateRequest{
		AppName:   a.appName,
		UserID:    agentUser,
		SessionID: uuid.NewString(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	defer func() {
		err := a.sessions.Delete(ctx, &session.DeleteRequest{
			AppName:   created.Session.AppName(),
			UserID:    created.Session.UserID(),
			SessionID: created.Session.ID(),
		})
		if err != nil {
			a.logger.Warn("failed to delete recognizer session", zap.Error(err))
		}
	}()

	stream := a.runner.Run(ctx, created.Session.UserID(), created.Session.ID(), &genai.Content{
		Role: "user",
		Parts: []*genai.Part{
			{Text: text},
		},
	}, agent.RunConfig{})

	var output string
	for event, err := range stream {
		if err != nil {
			return nil, fmt.Errorf("agent stream error: %w", err)
		}
		if event != nil && event.IsFinalResponse() && event.Content != nil && len(event.Content.Parts) > 0 {
			output = event.Content.Parts[0].Text
		}
	}
	if strings.TrimSpace(output) == "" {
		return nil, errors.New("empty response from agent")
	}

	return ParseEntities(output)
}

type agentOutput struct {
	Entities []Entity `json:"entities"`
}

// ParseEntities decodes the agent's JSON answer, tolerating markdown fences.
// Entities with empty text are dropped.
func ParseEntities(raw string) ([]Entity, error) {
	var out agentOutput
	if err := json.Unmarshal([]byte(CleanJSON(raw)), &out); err != nil {
		return nil, fmt.Errorf("json unmarshal error: %w", err)
	}

	entities := make([]Entity, 0, len(out.Entities))
	for _, e := range out.Entities {
		e.Text = strings.TrimSpace(e.Text)
		if e.Text == "" {
			continue
		}
		e.Label = strings.ToUpper(strings.TrimSpace(e.Label))
		entities = append(entities, e)
	}
	return entities, nil
}

// CleanJSON strips a surrounding ```json fence from model output.
func CleanJSON(input string) string {
	clean := strings.TrimSpace(input)

	if strings.HasPrefix(clean, "```json") {
		clean = strings.TrimPrefix(clean, "```json")
	} else if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```")
	}
	clean = strings.TrimLeft(clean, "\r\n")

	clean = strings.TrimSuffix(clean, "```")

	return strings.TrimSpace(clean)
}
