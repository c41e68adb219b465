package cleanup

import "time"

// Record is one row of deletion work. UserID, when present, is the
// authoritative Auth0 identifier and bypasses all search. Ssoid and Email are
// fallback lookup keys. Any of the three may be empty.
type Record struct {
	UserID string
	Ssoid  string
	Email  string
}

// Status is the terminal classification of one processed record.
type Status string

const (
	StatusDeleted  Status = "DELETED"
	StatusDryRun   Status = "DRY_RUN"
	StatusNotFound Status = "NOT_FOUND"
	StatusError    Status = "ERROR"
)

// Outcome is the unit persisted to the result ledger, one per processed
// record. UserID carries whatever identifier was resolved before a failure,
// possibly empty. Err is free text and only set when Status is ERROR.
type Outcome struct {
	Ssoid       string
	Email       string
	UserID      string
	Status      Status
	Deactivated bool
	Timestamp   time.Time
	Err         string
}
