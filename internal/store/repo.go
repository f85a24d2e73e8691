package store

import (
	"context"
	"time"

	"github.com/abhisek/verbiz/internal/conjugation"
	"github.com/abhisek/verbiz/internal/sentences"
	"github.com/abhisek/verbiz/internal/verbs"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	After   int64     // sequence > After
	Before  int64     // sequence < Before
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
	Mode    string    // round events only
	Purpose string    // LLM events only
}

// VerbRepo persists verb records.
type VerbRepo interface {
	// Upsert inserts or replaces verbs keyed by normalized infinitive and
	// returns how many were written. Within one call the first record per
	// key wins, matching verbs.Collection.
	Upsert(ctx context.Context, vs ...*verbs.Verb) (int, error)

	// All returns every verb in insertion order.
	All(ctx context.Context) ([]*verbs.Verb, error)

	// Collection returns every verb as a lookup collection.
	Collection(ctx context.Context) (*verbs.Collection, error)

	// ByInfinitive returns the verb or nil if it does not exist.
	ByInfinitive(ctx context.Context, infinitive string) (*verbs.Verb, error)

	Count(ctx context.Context) (int, error)
}

// SentenceRepo persists sentence templates. It also serves them to the
// sentence challenge.
type SentenceRepo interface {
	sentences.Provider

	// Add stores templates, skipping any whose text is already present.
	// It returns how many were inserted.
	Add(ctx context.Context, source string, ts ...sentences.Template) (int, error)

	// List returns up to limit templates ordered by creation time.
	List(ctx context.Context, limit int) ([]sentences.Template, error)

	Count(ctx context.Context) (int, error)
}

// RoundEventData captures one finished round.
type RoundEventData struct {
	SessionID      string
	Mode           string
	RequestedSteps int
	Steps          int
	CorrectSteps   int
	Score          int
	MaxScore       int
	DurationMs     int64
	Expired        bool
}

// RoundEvent is a stored round.
type RoundEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	RoundEventData
}

// ModeStat aggregates rounds per mode.
type ModeStat struct {
	Mode         string
	Rounds       int
	Steps        int
	CorrectSteps int
	Score        int
	MaxScore     int
	BestScore    int
}

// Accuracy is the share of correct steps, or 0 with no steps.
func (m ModeStat) Accuracy() float64 {
	if m.Steps == 0 {
		return 0
	}
	return float64(m.CorrectSteps) / float64(m.Steps)
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEvent is a stored LLM request.
type LLMRequestEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsage aggregates token use per purpose or per model. Only the
// grouping field is set.
type LLMUsage struct {
	Purpose      string
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// EventRepo provides append and query access to events.
type EventRepo interface {
	AppendRound(ctx context.Context, data RoundEventData) error
	QueryRounds(ctx context.Context, opts QueryOpts) ([]RoundEvent, error)
	ModeStats(ctx context.Context) ([]ModeStat, error)

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)

	// GetLLMEvent returns the event or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEvent, error)
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error)
	LLMUsageByModel(ctx context.Context) ([]LLMUsage, error)
}

var _ sentences.Provider = (*sentenceRepo)(nil)

// tensesToStrings keeps the JSON column free of the Tense type.
func tensesToStrings(ts []conjugation.Tense) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = string(t)
	}
	return out
}
