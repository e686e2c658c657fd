// Package orchestrator drives one conversation turn end to end:
// classification, provider calls with interleaved status updates, response
// formatting, and transcript/session persistence. At most one turn is in
// flight at a time; busy submits are dropped, not queued.
package orchestrator

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/smartpick/smartpick/internal/classifier"
	"github.com/smartpick/smartpick/internal/format"
	"github.com/smartpick/smartpick/internal/gateway"
	"github.com/smartpick/smartpick/pkg/session"
)

// State is the turn machine state
type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateClassifying
	StateGenerating
	StateSearching
	StateSummarizing
	StateFormatting
	StateCompleted
	StateFailed
)

// Ephemeral status messages shown while a product turn is running.
// These live in the status overlay only and are never persisted.
const (
	StatusSearching = "🔍 Searching for products..."
	StatusAnalyzing = "✨ Analyzing the top picks..."
)

// User-visible texts for failed turns. The failure message itself becomes the
// assistant turn, so persisted history stays complete and replayable.
const (
	MsgGenerationFailed  = "Failed to load the generative model. Please try again later."
	MsgSearchUnavailable = "Sorry, I couldn't search for products right now. Please try again later."
	MsgNoResults         = "I couldn't find any products for that search. Please try different keywords."
	MsgUnexpected        = "Sorry, I couldn't process that request."
)

// StatusFunc observes ephemeral status updates. An empty status clears the
// overlay. Called from the submitting goroutine.
type StatusFunc func(status string)

// Result is the outcome of one completed turn
type Result struct {
	Reply     string
	SessionID int64
	Failed    bool
}

// Orchestrator sequences turns over the session store and the two providers
type Orchestrator struct {
	store     *session.Store
	generator gateway.Generator
	searcher  gateway.Searcher
	log       zerolog.Logger

	mu          sync.Mutex
	processing  bool
	state       State
	transcript  []session.Message
	status      string
	hasActive   bool
	viewingPast bool
	onStatus    StatusFunc
}

// New creates an orchestrator. The display transcript starts on the append
// target's messages so a restarted process resumes the latest conversation.
func New(store *session.Store, generator gateway.Generator, searcher gateway.Searcher, log zerolog.Logger) *Orchestrator {
	o := &Orchestrator{
		store:     store,
		generator: generator,
		searcher:  searcher,
		log:       log,
	}
	o.transcript = store.ActiveMessages()
	o.hasActive = store.Len() > 0
	return o
}

// SetStatusFunc registers the ephemeral status observer
func (o *Orchestrator) SetStatusFunc(fn StatusFunc) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.onStatus = fn
}

// State returns the current turn machine state
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Status returns the current ephemeral status overlay, empty when idle
func (o *Orchestrator) Status() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.status
}

// TranscriptView returns a detached copy of the currently displayed
// transcript. Ephemeral status entries are never part of it; they live in
// the overlay slot.
func (o *Orchestrator) TranscriptView() []session.Message {
	o.mu.Lock()
	defer o.mu.Unlock()

	out := make([]session.Message, len(o.transcript))
	copy(out, o.transcript)
	return out
}

// SelectForViewing loads a past session into the display transcript. The
// append target is untouched; the next utterance starts a new session when
// an older session is on display, so turns never interleave into the wrong
// thread.
func (o *Orchestrator) SelectForViewing(index int) []session.Message {
	messages := o.store.SelectForViewing(index)
	if messages == nil {
		return nil
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	o.transcript = messages
	o.viewingPast = index != o.store.Len()-1

	out := make([]session.Message, len(messages))
	copy(out, messages)
	return out
}

// ClearHistory discards all sessions and resets the display transcript.
// Rejected while a turn is in flight.
func (o *Orchestrator) ClearHistory() bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.processing {
		return false
	}

	o.store.Clear()
	o.transcript = nil
	o.hasActive = false
	o.viewingPast = false
	return true
}

// Submit runs one turn for the given utterance. Returns false without any
// side effects when the input trims to empty or another turn is in flight
// (silent no-ops, not errors). Blocks until the turn completes or fails.
func (o *Orchestrator) Submit(ctx context.Context, text string) (Result, bool) {
	if strings.TrimSpace(text) == "" {
		return Result{}, false
	}

	o.mu.Lock()
	if o.processing {
		o.mu.Unlock()
		return Result{}, false
	}
	o.processing = true
	o.state = StateSubmitting
	o.mu.Unlock()

	turnID := uuid.New().String()
	log := o.log.With().Str("turn_id", turnID).Logger()
	log.Debug().Msg("turn started")

	defer func() {
		o.mu.Lock()
		o.processing = false
		o.state = StateIdle
		o.mu.Unlock()
	}()

	o.recordUserMessage(text)

	o.setState(StateClassifying)
	c := classifier.Classify(text)

	var reply string
	var failed bool
	switch c.Kind {
	case classifier.ProductQuery:
		reply, failed = o.runProductTurn(ctx, log, c.Query)
	default:
		reply, failed = o.runGeneralTurn(ctx, log, c.Query)
	}

	if failed {
		o.setState(StateFailed)
	} else {
		o.setState(StateCompleted)
	}

	o.finishTurn(reply)
	log.Debug().Bool("failed", failed).Msg("turn finished")

	return Result{Reply: reply, SessionID: o.store.ActiveID(), Failed: failed}, true
}

// recordUserMessage persists the user message and mirrors it into the
// display transcript. A fresh conversation context, or a past session on
// display, starts a new session; otherwise the active session grows.
func (o *Orchestrator) recordUserMessage(text string) {
	msg := session.NewMessage(session.SenderUser, text)

	o.mu.Lock()
	startFresh := !o.hasActive || o.viewingPast
	o.mu.Unlock()

	if startFresh {
		o.store.CreateSession(msg)
	} else {
		o.store.AppendToActiveSession(msg)
	}

	o.mu.Lock()
	if startFresh {
		o.transcript = []session.Message{msg}
		o.hasActive = true
		o.viewingPast = false
	} else {
		o.transcript = append(o.transcript, msg)
	}
	o.mu.Unlock()
}

// runGeneralTurn handles the plain language-generation path
func (o *Orchestrator) runGeneralTurn(ctx context.Context, log zerolog.Logger, prompt string) (string, bool) {
	o.setState(StateGenerating)

	reply, err := o.generator.GenerateText(ctx, prompt)
	if err != nil {
		log.Warn().Err(err).Msg("general turn failed")
		return mapGenerationError(err), true
	}

	return reply, false
}

// runProductTurn handles the search-and-summarize pipeline: search, then
// summarize the result slice, then format. Strictly sequential.
func (o *Orchestrator) runProductTurn(ctx context.Context, log zerolog.Logger, query string) (string, bool) {
	o.setStatus(StatusSearching)
	o.setState(StateSearching)

	products, err := o.searcher.SearchProducts(ctx, query)
	if err != nil {
		log.Warn().Err(err).Str("query", query).Msg("product search failed")
		if errors.Is(err, gateway.ErrNoResults) {
			return MsgNoResults, true
		}
		return MsgSearchUnavailable, true
	}

	log.Debug().Int("products", len(products)).Msg("search succeeded")

	o.setStatus(StatusAnalyzing)
	o.setState(StateSummarizing)

	summary, err := o.generator.GenerateText(ctx, format.SummaryPrompt(query, products))
	if err != nil {
		log.Warn().Err(err).Msg("summarization failed")
		return mapGenerationError(err), true
	}

	o.setState(StateFormatting)
	return format.Document(products, summary), false
}

// finishTurn appends the final assistant message to the active session and
// the display transcript, then clears the status overlay
func (o *Orchestrator) finishTurn(reply string) {
	msg := session.NewMessage(session.SenderAssistant, reply)
	o.store.AppendToActiveSession(msg)

	o.mu.Lock()
	o.transcript = append(o.transcript, msg)
	o.mu.Unlock()

	o.setStatus("")
}

func (o *Orchestrator) setState(state State) {
	o.mu.Lock()
	o.state = state
	o.mu.Unlock()
}

func (o *Orchestrator) setStatus(status string) {
	o.mu.Lock()
	o.status = status
	fn := o.onStatus
	o.mu.Unlock()

	if fn != nil {
		fn(status)
	}
}

// mapGenerationError converts a generation failure into its user-visible text
func mapGenerationError(err error) string {
	if errors.Is(err, gateway.ErrProviderUnavailable) || errors.Is(err, gateway.ErrInvalidResponse) {
		return MsgGenerationFailed
	}
	return MsgUnexpected
}
