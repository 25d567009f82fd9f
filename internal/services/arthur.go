package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"roundtable/internal/llm"
	"roundtable/internal/logging"
	"roundtable/internal/models"
	"roundtable/internal/tools"
)

// ErrLoopExceeded is returned when the model keeps requesting tools past
// the configured round ceiling. Surfaced to the caller as retryable.
var ErrLoopExceeded = errors.New("tool-calling round limit reached without a final response")

// ModelClient is the messages-API surface the controller needs.
// *llm.Client satisfies it; tests substitute a fake.
type ModelClient interface {
	CreateMessage(ctx context.Context, req *llm.MessagesRequest) (*llm.MessagesResponse, error)
}

// ToolExecutor is the operation catalog and executor surface.
// *tools.Registry satisfies it.
type ToolExecutor interface {
	ModelTools() []llm.Tool
	Execute(ctx context.Context, id tools.Identity, name string, args tools.Args) (any, *tools.ExecError)
}

// ChatResult is a completed conversation exchange.
type ChatResult struct {
	Message string
	Usage   models.ArthurUsage
}

// ArthurService drives the conversation loop: it submits the running
// history plus the operation catalog to the model, executes any
// requested operations, feeds results back, and repeats until the model
// answers in plain text. All state is request-scoped; nothing survives
// between Chat calls.
type ArthurService struct {
	client    ModelClient
	executor  ToolExecutor
	metrics   *Metrics
	model     string
	maxTokens int
	maxRounds int
}

// NewArthurService creates the conversation controller. The model client
// is injected so tests can fake the provider; construct it once at
// startup and share it.
func NewArthurService(client ModelClient, executor ToolExecutor, metrics *Metrics, model string, maxTokens, maxRounds int) *ArthurService {
	if maxRounds <= 0 {
		maxRounds = 8
	}
	if maxTokens <= 0 {
		maxTokens = 4096
	}
	return &ArthurService{
		client:    client,
		executor:  executor,
		metrics:   metrics,
		model:     model,
		maxTokens: maxTokens,
		maxRounds: maxRounds,
	}
}

// Chat runs one full exchange to a final assistant answer.
//
// Model-boundary errors abort the request and propagate to the caller.
// Tool failures never do: they are serialized into tool results so the
// model can explain the problem or ask a clarifying follow-up, keeping
// the conversation open for correction.
func (s *ArthurService) Chat(ctx context.Context, req *models.ArthurChatRequest) (*ChatResult, error) {
	identity := tools.Identity{
		OrganizationID: req.OrganizationID,
		UserID:         req.UserID,
	}
	log := logging.WithChat(req.OrganizationID, req.UserID)

	messages := make([]llm.Message, 0, len(req.Messages)+2*s.maxRounds)
	for _, m := range req.Messages {
		messages = append(messages, llm.Message{Role: m.Role, Content: m.Content})
	}

	system := systemPrompt(time.Now())
	modelTools := s.executor.ModelTools()

	var usage models.ArthurUsage
	for round := 1; round <= s.maxRounds; round++ {
		resp, err := s.client.CreateMessage(ctx, &llm.MessagesRequest{
			Model:     s.model,
			MaxTokens: s.maxTokens,
			System:    system,
			Messages:  messages,
			Tools:     modelTools,
		})
		if err != nil {
			s.observeOutcome("model_error", round)
			return nil, err
		}

		usage.InputTokens += resp.Usage.InputTokens
		usage.OutputTokens += resp.Usage.OutputTokens
		s.countTokens(resp.Usage)

		toolUses := resp.ToolUses()
		if resp.StopReason != llm.StopToolUse && len(toolUses) == 0 {
			s.observeOutcome("ok", round)
			text := resp.Text()
			if text == "" {
				text = "I apologize, but I couldn't generate a response."
			}
			log.Debug("arthur chat complete", "rounds", round,
				"input_tokens", usage.InputTokens, "output_tokens", usage.OutputTokens)
			return &ChatResult{Message: text, Usage: usage}, nil
		}

		log.Debug("model requested operations", "round", round, "count", len(toolUses))

		// The assistant turn that requested the operations is appended
		// first, then one user turn carrying every result, so the
		// transcript stays causally ordered for the next model call.
		messages = append(messages, llm.Message{Role: "assistant", Content: resp.Content})
		messages = append(messages, llm.Message{Role: "user", Content: s.runTools(ctx, log, identity, toolUses)})
	}

	s.observeOutcome("loop_exceeded", s.maxRounds)
	return nil, fmt.Errorf("%w (limit %d)", ErrLoopExceeded, s.maxRounds)
}

// runTools dispatches every operation of one round concurrently and
// waits for all of them. Results land in their request's slot so the
// returned block order matches the request order; each block carries the
// correlation id of the tool_use that produced it.
func (s *ArthurService) runTools(ctx context.Context, log *slog.Logger, identity tools.Identity, toolUses []llm.ContentBlock) []llm.ContentBlock {
	results := make([]llm.ContentBlock, len(toolUses))

	var wg sync.WaitGroup
	for i, use := range toolUses {
		wg.Add(1)
		go func(i int, use llm.ContentBlock) {
			defer wg.Done()
			results[i] = s.runTool(ctx, log, identity, use)
		}(i, use)
	}
	wg.Wait()

	return results
}

func (s *ArthurService) runTool(ctx context.Context, log *slog.Logger, identity tools.Identity, use llm.ContentBlock) llm.ContentBlock {
	toolLog := logging.WithTool(log, use.ID, use.Name)
	result := llm.ContentBlock{
		Type:      llm.BlockToolResult,
		ToolUseID: use.ID,
	}

	payload, execErr := s.executor.Execute(ctx, identity, use.Name, tools.Args(use.Input))
	if execErr != nil {
		toolLog.Warn("operation failed", "kind", execErr.Kind, "error", execErr.Message)
		s.countTool(use.Name, string(execErr.Kind))
		result.Content = marshalResult(execErr)
		result.IsError = true
		return result
	}

	toolLog.Debug("operation succeeded")
	s.countTool(use.Name, "ok")
	result.Content = marshalResult(payload)
	return result
}

func marshalResult(payload any) string {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"error": "failed to serialize result: %v"}`, err)
	}
	return string(data)
}

func (s *ArthurService) observeOutcome(outcome string, rounds int) {
	if s.metrics == nil {
		return
	}
	s.metrics.ChatRequests.WithLabelValues(outcome).Inc()
	s.metrics.ChatRounds.Observe(float64(rounds))
}

func (s *ArthurService) countTool(tool, outcome string) {
	if s.metrics == nil {
		return
	}
	s.metrics.ToolExecutions.WithLabelValues(tool, outcome).Inc()
}

func (s *ArthurService) countTokens(u llm.Usage) {
	if s.metrics == nil {
		return
	}
	s.metrics.TokensUsed.WithLabelValues("input").Add(float64(u.InputTokens))
	s.metrics.TokensUsed.WithLabelValues("output").Add(float64(u.OutputTokens))
}
