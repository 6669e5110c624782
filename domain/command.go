package domain

import "time"

// CommandState is the delivery state of a queued command.
type CommandState string

const (
	// CommandStatePending is the only state a queued entry can be in:
	// entries are removed on clear rather than marked consumed.
	CommandStatePending CommandState = "pending"
)

// CommandEntry is one unit of work queued for a bot.
type CommandEntry struct {
	CommandID  string       `json:"command_id"`
	Command    string       `json:"command"`
	Params     Attrs        `json:"params,omitempty"`
	EnqueuedAt time.Time    `json:"enqueued_at"`
	State      CommandState `json:"status"`
}

// Clone returns a deep copy safe to hand to callers.
func (e CommandEntry) Clone() CommandEntry {
	cp := e
	cp.Params = e.Params.Clone()
	return cp
}
