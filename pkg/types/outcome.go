package types

// CandidateFile is a regular file discovered by the scan phase.
type CandidateFile struct {
	Path   string // absolute path
	Name   string // base name
	Suffix string // normalized lowercase extension, leading dot included ("" if none)
}

// OutcomeStatus is the terminal classification of one candidate file.
type OutcomeStatus string

const (
	StatusMoved               OutcomeStatus = "moved"
	StatusSkippedCollision    OutcomeStatus = "skipped_collision"
	StatusSkippedNoRule       OutcomeStatus = "skipped_no_rule"
	StatusSkippedSameLocation OutcomeStatus = "skipped_same_location"
	StatusFailed              OutcomeStatus = "failed"
)

// MoveOutcome records what happened to one candidate file. Immutable once created.
type MoveOutcome struct {
	Source      string
	Destination string // empty unless a destination was resolved
	Status      OutcomeStatus
	Err         error // set only for StatusFailed
}
