// Package assistant implements the scripted conversational stub. Replies
// come from a fixed pool, picked uniformly at random with no dependency on
// the submitted text. Submissions are drained by a single worker, so there
// is at most one outstanding turn and every user message sits immediately
// before its reply in the transcript.
package assistant

import (
	"context"
	"log/slog"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"agriintel/internal/model"
)

// Config holds the reply latency and the fixed response pool.
type Config struct {
	ReplyDelay time.Duration
	Responses  []string
}

// DefaultConfig returns the reference reply delay and response pool.
func DefaultConfig() Config {
	return Config{
		ReplyDelay: 1500 * time.Millisecond,
		Responses: []string{
			"Based on your farm data, I recommend increasing irrigation frequency by 20% for the next two weeks.",
			"The optimal planting window for maize in your area is between March 15 and April 10.",
			"Your soil test shows slightly low potassium levels. Consider applying potassium-rich fertilizer.",
			"Current market prices suggest holding your maize harvest for 2 more weeks for better returns.",
			"The weather forecast indicates potential rainfall next week, so you might reduce irrigation.",
		},
	}
}

// Assistant owns the conversation transcript.
type Assistant struct {
	cfg    Config
	logger *slog.Logger

	mu         sync.RWMutex
	transcript []model.ChatMessage
	composing  bool

	queue  chan string
	rng    *rand.Rand
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates an assistant. An empty response pool falls back to the
// default pool; a non-positive delay falls back to the default delay.
func New(cfg Config, logger *slog.Logger) *Assistant {
	def := DefaultConfig()
	if len(cfg.Responses) == 0 {
		cfg.Responses = def.Responses
	}
	if cfg.ReplyDelay <= 0 {
		cfg.ReplyDelay = def.ReplyDelay
	}
	return &Assistant{
		cfg:    cfg,
		logger: logger,
		queue:  make(chan string, 16),
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Start launches the turn worker.
func (a *Assistant) Start(ctx context.Context) {
	ctx, a.cancel = context.WithCancel(ctx)
	a.wg.Add(1)
	go a.run(ctx)
}

// Stop cancels any pending turn and waits for the worker to exit.
func (a *Assistant) Stop() {
	if a.cancel != nil {
		a.cancel()
	}
	a.wg.Wait()
}

// Submit queues a user message for the next turn. Input is trimmed;
// empty or whitespace-only text is silently ignored. Returns false when
// nothing was queued.
func (a *Assistant) Submit(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	select {
	case a.queue <- text:
		return true
	default:
		a.logger.Warn("submission dropped, turn queue full")
		return false
	}
}

// Transcript returns a copy of the conversation so far.
func (a *Assistant) Transcript() []model.ChatMessage {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]model.ChatMessage, len(a.transcript))
	copy(out, a.transcript)
	return out
}

// Composing reports whether a reply is currently being composed.
func (a *Assistant) Composing() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.composing
}

func (a *Assistant) run(ctx context.Context) {
	defer a.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case text := <-a.queue:
			a.turn(ctx, text)
		}
	}
}

// turn appends the user message, waits out the reply delay, then appends
// the scripted reply. The composing flag spans exactly that window.
func (a *Assistant) turn(ctx context.Context, text string) {
	a.mu.Lock()
	a.transcript = append(a.transcript, model.ChatMessage{
		ID:     uuid.NewString(),
		Sender: model.SenderUser,
		Text:   text,
	})
	a.composing = true
	a.mu.Unlock()

	timer := time.NewTimer(a.cfg.ReplyDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		a.mu.Lock()
		a.composing = false
		a.mu.Unlock()
		return
	case <-timer.C:
	}

	reply := a.cfg.Responses[a.rng.Intn(len(a.cfg.Responses))]

	a.mu.Lock()
	a.transcript = append(a.transcript, model.ChatMessage{
		ID:     uuid.NewString(),
		Sender: model.SenderAssistant,
		Text:   reply,
	})
	a.composing = false
	a.mu.Unlock()
}
