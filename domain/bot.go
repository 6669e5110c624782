package domain

import (
	"encoding/json"
	"time"
)

// Attrs is an open mapping of operator-supplied fields. Values stay in
// their raw JSON form so the coordinator never interprets them.
type Attrs map[string]json.RawMessage

// Clone returns a deep copy of the attribute map.
func (a Attrs) Clone() Attrs {
	if a == nil {
		return nil
	}
	out := make(Attrs, len(a))
	for k, v := range a {
		cp := make(json.RawMessage, len(v))
		copy(cp, v)
		out[k] = cp
	}
	return out
}

// Merge overlays other onto a. New keys are added, existing keys are
// overwritten.
func (a Attrs) Merge(other Attrs) {
	for k, v := range other {
		cp := make(json.RawMessage, len(v))
		copy(cp, v)
		a[k] = cp
	}
}

// Values decodes the raw attribute values into plain Go values, for
// consumers (like the policy engine) that need structured input.
func (a Attrs) Values() map[string]interface{} {
	out := make(map[string]interface{}, len(a))
	for k, v := range a {
		var val interface{}
		if err := json.Unmarshal(v, &val); err == nil {
			out[k] = val
		}
	}
	return out
}

// Bot represents a registered bot.
type Bot struct {
	BotID        string    `json:"bot_id"`
	Attributes   Attrs     `json:"attributes,omitempty"`
	RegisteredAt time.Time `json:"registered_at"`
	LastSeenAt   time.Time `json:"last_seen"`
}

// Clone returns a deep copy safe to hand to callers.
func (b *Bot) Clone() *Bot {
	cp := *b
	cp.Attributes = b.Attributes.Clone()
	return &cp
}

// BotStatus is a Bot together with its pending-command count, as
// reported by the bot listing.
type BotStatus struct {
	Bot
	PendingCommands int `json:"pending_commands"`
}
