package domain

type EventKind string

const (
	EventInsert EventKind = "INSERT"
	EventModify EventKind = "MODIFY"
	EventDelete EventKind = "DELETE"
)

// MutationEvent describes one change applied to the record store.
type MutationEvent struct {
	Kind     EventKind       `json:"kind"`
	Key      RecordKey       `json:"key"`
	NewImage *SoftwareRecord `json:"new_image,omitempty"`
	OldImage *SoftwareRecord `json:"old_image,omitempty"`

	// SequenceID identifies the event within its source, e.g. a stream entry ID.
	SequenceID string `json:"-"`
}

// MutationBatch is an ordered group of events delivered together.
type MutationBatch struct {
	Events []MutationEvent
}
