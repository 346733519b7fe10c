package prompt

import (
	"log/slog"

	"github.com/tinkerloft/promptshape/internal/knowledge"
	"github.com/tinkerloft/promptshape/internal/model"
)

// DefaultTopK is how many corpus entries the RAG strategy injects.
const DefaultTopK = 2

// Observer is notified after every dispatch.
type Observer interface {
	ObserveDispatch(strategy model.Strategy, fallback bool, retrieved int)
}

// Result is a dispatched conversation together with how it was resolved.
type Result struct {
	Strategy     model.Strategy         `json:"strategy"`
	Fallback     bool                   `json:"fallback"`
	Retrieved    []model.KnowledgeEntry `json:"retrieved,omitempty"`
	Conversation model.Conversation     `json:"conversation"`
}

// Dispatcher resolves strategy identifiers to builders. It holds no mutable
// state and may be shared between goroutines.
type Dispatcher struct {
	corpus   *knowledge.Corpus
	topK     int
	logger   *slog.Logger
	observer Observer
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithTopK overrides how many entries RAG retrieves. Values <= 0 are ignored.
func WithTopK(k int) Option {
	return func(d *Dispatcher) {
		if k > 0 {
			d.topK = k
		}
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithObserver registers an observer for dispatch outcomes.
func WithObserver(o Observer) Option {
	return func(d *Dispatcher) { d.observer = o }
}

// NewDispatcher creates a Dispatcher over corpus. A nil corpus selects the
// built-in default.
func NewDispatcher(corpus *knowledge.Corpus, opts ...Option) *Dispatcher {
	if corpus == nil {
		corpus = knowledge.DefaultCorpus()
	}
	d := &Dispatcher{
		corpus: corpus,
		topK:   DefaultTopK,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Corpus returns the corpus the dispatcher retrieves from.
func (d *Dispatcher) Corpus() *knowledge.Corpus {
	return d.corpus
}

// TopK returns the number of entries RAG retrieves.
func (d *Dispatcher) TopK() int {
	return d.topK
}

// Resolve maps strategyID to a strategy. Unknown identifiers resolve to
// model.StrategyDefault with fallback set.
func Resolve(strategyID string) (strategy model.Strategy, fallback bool) {
	s, ok := model.ParseStrategy(strategyID)
	return s, !ok
}

// Prepare builds the conversation for query under strategyID and reports how
// the strategy was resolved.
func (d *Dispatcher) Prepare(query, strategyID string) Result {
	strategy, fallback := Resolve(strategyID)
	b := builders[strategy]

	var retrieved []model.KnowledgeEntry
	if b.retrieves {
		retrieved = knowledge.Rank(query, d.corpus, d.topK)
	}

	d.log().Debug("prompt dispatched",
		"strategy_id", strategyID,
		"strategy", string(strategy),
		"fallback", fallback,
		"retrieved", len(retrieved))
	if d.observer != nil {
		d.observer.ObserveDispatch(strategy, fallback, len(retrieved))
	}

	return Result{
		Strategy:     strategy,
		Fallback:     fallback,
		Retrieved:    retrieved,
		Conversation: b.build(query, retrieved),
	}
}

func (d *Dispatcher) log() *slog.Logger {
	if d.logger != nil {
		return d.logger
	}
	return slog.Default()
}

// Dispatch returns the conversation for query under strategyID. It never
// fails: unknown strategies fall back to zero-shot.
func (d *Dispatcher) Dispatch(query, strategyID string) model.Conversation {
	return d.Prepare(query, strategyID).Conversation
}

var defaultDispatcher = NewDispatcher(nil)

// Dispatch shapes query with the default corpus and retrieval depth.
func Dispatch(query, strategyID string) model.Conversation {
	return defaultDispatcher.Dispatch(query, strategyID)
}
