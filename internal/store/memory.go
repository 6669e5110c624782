package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/botfleet/coordinator/domain"
)

// MemoryStore holds the bot registry and the per-bot command queues in
// memory behind a single lock. Every operation is one critical section,
// so compound steps (existence check + enqueue, remove + queue drop)
// can never interleave with other callers. All reads return deep copies.
type MemoryStore struct {
	mu     sync.RWMutex
	bots   map[string]*domain.Bot
	queues map[string][]domain.CommandEntry
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		bots:   make(map[string]*domain.Bot),
		queues: make(map[string][]domain.CommandEntry),
	}
}

// RegisterBot creates the bot on first registration or merges attrs into
// the existing record. RegisteredAt is set once; LastSeenAt is refreshed
// on every call, acting as the heartbeat signal.
func (m *MemoryStore) RegisterBot(ctx context.Context, botID string, attrs domain.Attrs) (*domain.Bot, error) {
	if strings.TrimSpace(botID) == "" {
		return nil, &domain.ValidationError{Field: "bot_id"}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	bot, ok := m.bots[botID]
	if ok {
		bot.Attributes.Merge(attrs)
		bot.LastSeenAt = now
	} else {
		bot = &domain.Bot{
			BotID:        botID,
			Attributes:   attrs.Clone(),
			RegisteredAt: now,
			LastSeenAt:   now,
		}
		if bot.Attributes == nil {
			bot.Attributes = domain.Attrs{}
		}
		m.bots[botID] = bot
	}

	// Queue storage exists for the lifetime of the bot, even when empty.
	if _, ok := m.queues[botID]; !ok {
		m.queues[botID] = nil
	}

	return bot.Clone(), nil
}

// GetBot returns a snapshot of the bot, or ErrBotNotFound.
func (m *MemoryStore) GetBot(ctx context.Context, botID string) (*domain.Bot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	bot, ok := m.bots[botID]
	if !ok {
		return nil, domain.ErrBotNotFound
	}
	return bot.Clone(), nil
}

// ListBots returns a snapshot of all bots with their pending-command
// counts, ordered by registration time for determinism.
func (m *MemoryStore) ListBots(ctx context.Context) ([]domain.BotStatus, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]domain.BotStatus, 0, len(m.bots))
	for id, bot := range m.bots {
		out = append(out, domain.BotStatus{
			Bot:             *bot.Clone(),
			PendingCommands: len(m.queues[id]),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].RegisteredAt.Equal(out[j].RegisteredAt) {
			return out[i].RegisteredAt.Before(out[j].RegisteredAt)
		}
		return out[i].BotID < out[j].BotID
	})
	return out, nil
}

// CountBots returns the number of registered bots.
func (m *MemoryStore) CountBots(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.bots), nil
}

// UnregisterBot removes the bot and drops its entire queue storage in
// one critical section. On an unknown id it fails with ErrBotNotFound
// and leaves all state untouched.
func (m *MemoryStore) UnregisterBot(ctx context.Context, botID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.bots[botID]; !ok {
		return domain.ErrBotNotFound
	}
	delete(m.bots, botID)
	delete(m.queues, botID)
	return nil
}

// EnqueueCommand appends a command to the bot's queue. The existence
// check and the append share the lock, so the target bot cannot vanish
// between them.
func (m *MemoryStore) EnqueueCommand(ctx context.Context, botID, command string, params domain.Attrs) (*domain.CommandEntry, error) {
	if strings.TrimSpace(botID) == "" {
		return nil, &domain.ValidationError{Field: "bot_id"}
	}
	if strings.TrimSpace(command) == "" {
		return nil, &domain.ValidationError{Field: "command"}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.bots[botID]; !ok {
		return nil, domain.ErrBotNotFound
	}

	entry := domain.CommandEntry{
		CommandID:  "cmd_" + uuid.New().String()[:8],
		Command:    command,
		Params:     params.Clone(),
		EnqueuedAt: time.Now(),
		State:      domain.CommandStatePending,
	}
	m.queues[botID] = append(m.queues[botID], entry)

	cp := entry.Clone()
	return &cp, nil
}

// ListCommands returns a snapshot of the bot's pending commands in
// insertion order. Unknown ids yield an empty list, not an error.
func (m *MemoryStore) ListCommands(ctx context.Context, botID string) ([]domain.CommandEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	queue := m.queues[botID]
	out := make([]domain.CommandEntry, 0, len(queue))
	for _, entry := range queue {
		out = append(out, entry.Clone())
	}
	return out, nil
}

// ClearCommands empties the bot's queue and returns how many entries
// were removed. The queue storage itself survives; only unregistration
// drops it. Unknown ids report zero.
func (m *MemoryStore) ClearCommands(ctx context.Context, botID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cleared := len(m.queues[botID])
	if _, ok := m.queues[botID]; ok {
		m.queues[botID] = nil
	}
	return cleared, nil
}
