package store

// ChatExchange is one completed conversation turn. Records are append-only
// and never mutated after creation.
type ChatExchange struct {
	ID        int32
	UID       string
	SessionID string
	UserInput string
	Reply     string
	Intent    string
	Backend   string
	LatencyMs int64
	CreatedTs int64
}

type FindChatExchange struct {
	SessionID *string
	Limit     *int
}
