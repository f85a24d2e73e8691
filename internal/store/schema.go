package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

const (
	tableVerbs     = "verbs"
	tableSentences = "sentences"
	tableRounds    = "round_events"
	tableLLM       = "llm_request_events"
)

var (
	verbsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "infinitive", Type: field.TypeString},
		// NFC form of the infinitive; the lookup key.
		{Name: "infinitive_key", Type: field.TypeString, Unique: true},
		{Name: "past_participle", Type: field.TypeString, Default: ""},
		{Name: "present_participle", Type: field.TypeString, Default: ""},
		{Name: "auxiliary", Type: field.TypeString, Default: ""},
		{Name: "pronominal_form", Type: field.TypeString, Default: ""},
		{Name: "translation", Type: field.TypeString, Default: ""},
		{Name: "category", Type: field.TypeString, Default: ""},
		{Name: "difficulty", Type: field.TypeInt, Default: 0},
		{Name: "conjugations", Type: field.TypeJSON, Nullable: true},
		{Name: "updated_at", Type: field.TypeTime},
	}
	verbsTable = &schema.Table{
		Name:       tableVerbs,
		Columns:    verbsColumns,
		PrimaryKey: []*schema.Column{verbsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "verb_category", Columns: []*schema.Column{verbsColumns[8]}},
		},
	}

	sentencesColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "text", Type: field.TypeString, Size: 2048},
		{Name: "verbs", Type: field.TypeJSON},
		{Name: "tenses", Type: field.TypeJSON},
		// Where the template came from: "import", "builtin" or "llm".
		{Name: "source", Type: field.TypeString, Default: "import"},
		{Name: "created_at", Type: field.TypeTime},
	}
	sentencesTable = &schema.Table{
		Name:       tableSentences,
		Columns:    sentencesColumns,
		PrimaryKey: []*schema.Column{sentencesColumns[0]},
		Indexes: []*schema.Index{
			{Name: "sentence_text", Unique: true, Columns: []*schema.Column{sentencesColumns[1]}},
		},
	}

	roundEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "session_id", Type: field.TypeString},
		{Name: "mode", Type: field.TypeString},
		{Name: "requested_steps", Type: field.TypeInt, Default: 0},
		{Name: "steps", Type: field.TypeInt, Default: 0},
		{Name: "correct_steps", Type: field.TypeInt, Default: 0},
		{Name: "score", Type: field.TypeInt, Default: 0},
		{Name: "max_score", Type: field.TypeInt, Default: 0},
		{Name: "duration_ms", Type: field.TypeInt64, Default: 0},
		{Name: "expired", Type: field.TypeBool, Default: false},
	}
	roundEventsTable = &schema.Table{
		Name:       tableRounds,
		Columns:    roundEventsColumns,
		PrimaryKey: []*schema.Column{roundEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "roundevent_timestamp", Columns: []*schema.Column{roundEventsColumns[2]}},
			{Name: "roundevent_mode", Columns: []*schema.Column{roundEventsColumns[4]}},
		},
	}

	llmEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "provider", Type: field.TypeString},
		{Name: "model", Type: field.TypeString},
		{Name: "purpose", Type: field.TypeString},
		{Name: "input_tokens", Type: field.TypeInt, Default: 0},
		{Name: "output_tokens", Type: field.TypeInt, Default: 0},
		{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		{Name: "success", Type: field.TypeBool},
		{Name: "error_message", Type: field.TypeString, Default: ""},
		{Name: "request_body", Type: field.TypeString, Size: 1 << 20, Default: ""},
		{Name: "response_body", Type: field.TypeString, Size: 1 << 20, Default: ""},
	}
	llmEventsTable = &schema.Table{
		Name:       tableLLM,
		Columns:    llmEventsColumns,
		PrimaryKey: []*schema.Column{llmEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "llmrequestevent_purpose", Columns: []*schema.Column{llmEventsColumns[5]}},
			{Name: "llmrequestevent_success", Columns: []*schema.Column{llmEventsColumns[9]}},
		},
	}

	tables = []*schema.Table{verbsTable, sentencesTable, roundEventsTable, llmEventsTable}
)
