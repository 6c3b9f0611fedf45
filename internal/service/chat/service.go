package chat

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/cloudwego/eino/schema"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	chatmodel "github.com/barefootbuddy/backend/internal/model/chat"
	"github.com/barefootbuddy/backend/internal/service/ai"
)

const (
	// historyLimit covers the current user message plus the nine
	// prior turns fed to the model.
	historyLimit = 10
	// historyPageCap bounds the REST history endpoint.
	historyPageCap = 100

	completionTimeout = 60 * time.Second

	// fallbackResponse is the fixed in-persona reply used whenever
	// any part of the turn pipeline fails. The caller always gets a
	// successful response body; the stored message's error flag is
	// the only audit trail.
	fallbackResponse = "Well bless your heart, I'm havin' a little technical trouble right now, sugar! Give me just a moment and try again, would ya?"
)

var errEmptyCompletion = errors.New("completion returned empty text")

// CompletionProvider is the black-box LLM boundary.
type CompletionProvider interface {
	// GenerateWithTools may answer directly or request tool calls.
	GenerateWithTools(ctx context.Context, messages []*schema.Message) (*schema.Message, error)
	// Generate answers with no tools offered.
	Generate(ctx context.Context, messages []*schema.Message) (*schema.Message, error)
}

// ToolExecutor resolves one requested tool call into a JSON payload.
// It never fails; errors come back as error payloads.
type ToolExecutor interface {
	Execute(ctx context.Context, name, arguments string) string
}

// BotReply is the response body for one completed turn.
type BotReply struct {
	ID        string `json:"id"`
	Message   string `json:"message"`
	IsBot     bool   `json:"isBot"`
	Timestamp string `json:"timestamp"`
}

// HistoryEntry is one stored message in REST shape.
type HistoryEntry struct {
	ID        string `json:"id"`
	Message   string `json:"message"`
	IsBot     bool   `json:"isBot"`
	Timestamp string `json:"timestamp"`
}

// Service orchestrates chat turns: session lifecycle, context
// assembly, the tool-call resolution loop, and persistence.
type Service struct {
	store    chatmodel.Store
	provider CompletionProvider
	tools    ToolExecutor

	// Per-session turn lock: two concurrent sends on one session
	// would otherwise interleave their history reads. Locks are kept
	// for the life of the process; sessions are small.
	lockMu sync.Mutex
	locks  map[string]*sync.Mutex
}

// NewService wires the orchestrator. provider may be nil when the Ark
// credentials are absent; every turn then degrades to the fallback.
func NewService(store chatmodel.Store, provider CompletionProvider, tools ToolExecutor) *Service {
	return &Service{
		store:    store,
		provider: provider,
		tools:    tools,
		locks:    make(map[string]*sync.Mutex),
	}
}

// CreateSession provisions a fresh session for the user.
func (s *Service) CreateSession(ctx context.Context, userID string) (string, error) {
	now := time.Now().UTC()
	session := chatmodel.Session{
		SessionID:    uuid.NewString(),
		UserID:       userID,
		CreatedAt:    now,
		LastActivity: now,
	}

	if err := s.store.CreateSession(ctx, session); err != nil {
		return "", err
	}
	return session.SessionID, nil
}

// History returns up to 100 messages for the session, oldest first.
// Unknown sessions yield an empty slice, not an error.
func (s *Service) History(ctx context.Context, sessionID string) ([]HistoryEntry, error) {
	messages, err := s.store.Messages(ctx, sessionID, historyPageCap)
	if err != nil {
		return nil, err
	}

	entries := make([]HistoryEntry, 0, len(messages))
	for _, msg := range messages {
		entries = append(entries, HistoryEntry{
			ID:        msg.ID,
			Message:   msg.Content,
			IsBot:     msg.IsBot,
			Timestamp: msg.Timestamp.Format(time.RFC3339),
		})
	}
	return entries, nil
}

// SendMessage runs one full turn. It never surfaces a failure to the
// caller: anything that goes wrong after the user message is stored
// degrades to the fixed fallback reply, persisted with the error flag.
func (s *Service) SendMessage(ctx context.Context, sessionID, userText, userID string) BotReply {
	lock := s.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	userMsg := chatmodel.Message{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		UserID:    userID,
		Content:   userText,
		Timestamp: time.Now().UTC(),
	}
	if err := s.store.AppendMessage(ctx, userMsg); err != nil {
		// Degraded durability beats a hard failure for chat.
		log.WithError(err).WithField("session", sessionID).Error("failed to store user message")
	}

	botText, err := s.runTurn(ctx, sessionID, userMsg)
	isError := false
	if err != nil {
		log.WithError(err).WithField("session", sessionID).Error("chat turn failed, serving fallback")
		botText = fallbackResponse
		isError = true
	}

	botMsg := chatmodel.Message{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		UserID:    userID,
		Content:   botText,
		IsBot:     true,
		Timestamp: time.Now().UTC(),
		Error:     isError,
	}
	if err := s.store.AppendMessage(ctx, botMsg); err != nil {
		log.WithError(err).WithField("session", sessionID).Error("failed to store bot message")
	}

	if err := s.store.TouchSession(ctx, sessionID, 2); err != nil {
		log.WithError(err).WithField("session", sessionID).Warn("failed to touch session")
	}

	return BotReply{
		ID:        uuid.NewString(),
		Message:   botText,
		IsBot:     true,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// runTurn assembles context, calls the provider, and resolves any
// requested tool calls with a second completion.
func (s *Service) runTurn(ctx context.Context, sessionID string, userMsg chatmodel.Message) (string, error) {
	if s.provider == nil {
		return "", errors.New("completion provider unavailable")
	}

	messages, err := s.assembleContext(ctx, sessionID, userMsg)
	if err != nil {
		return "", err
	}

	first, err := s.generate(ctx, messages, true)
	if err != nil {
		return "", err
	}

	if len(first.ToolCalls) == 0 {
		return nonEmpty(first.Content)
	}

	// Tool branch: execute each call, feed the results back, and ask
	// again with no tools offered.
	messages = append(messages, first)
	for _, call := range first.ToolCalls {
		result := s.tools.Execute(ctx, call.Function.Name, call.Function.Arguments)
		log.WithFields(log.Fields{
			"session": sessionID,
			"tool":    call.Function.Name,
		}).Info("resolved tool call")
		messages = append(messages, schema.ToolMessage(result, call.ID))
	}

	final, err := s.generate(ctx, messages, false)
	if err != nil {
		return "", err
	}
	return nonEmpty(final.Content)
}

// assembleContext builds: system directive, up to nine prior messages
// in chronological order, then the current user message. The user
// message was already stored, so it is dropped from the history read
// before being re-appended last.
func (s *Service) assembleContext(ctx context.Context, sessionID string, userMsg chatmodel.Message) ([]*schema.Message, error) {
	recent, err := s.store.RecentMessages(ctx, sessionID, historyLimit)
	if err != nil {
		return nil, err
	}
	if n := len(recent); n > 0 && recent[n-1].ID == userMsg.ID {
		recent = recent[:n-1]
	}

	messages := make([]*schema.Message, 0, len(recent)+2)
	messages = append(messages, schema.SystemMessage(ai.SystemPrompt()))
	for _, msg := range recent {
		if msg.IsBot {
			messages = append(messages, schema.AssistantMessage(msg.Content, nil))
		} else {
			messages = append(messages, schema.UserMessage(msg.Content))
		}
	}
	return append(messages, schema.UserMessage(userMsg.Content)), nil
}

func (s *Service) generate(ctx context.Context, messages []*schema.Message, withTools bool) (*schema.Message, error) {
	ctx, cancel := context.WithTimeout(ctx, completionTimeout)
	defer cancel()

	if withTools {
		return s.provider.GenerateWithTools(ctx, messages)
	}
	return s.provider.Generate(ctx, messages)
}

func (s *Service) sessionLock(sessionID string) *sync.Mutex {
	s.lockMu.Lock()
	defer s.lockMu.Unlock()

	lock, ok := s.locks[sessionID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[sessionID] = lock
	}
	return lock
}

func nonEmpty(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", errEmptyCompletion
	}
	return text, nil
}
