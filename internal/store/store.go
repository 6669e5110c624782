// Package store defines the state storage interface and implementations.
package store

import (
	"context"

	"github.com/botfleet/coordinator/domain"
)

// Store defines the interface for fleet state.
type Store interface {
	// Bot registry operations
	RegisterBot(ctx context.Context, botID string, attrs domain.Attrs) (*domain.Bot, error)
	GetBot(ctx context.Context, botID string) (*domain.Bot, error)
	ListBots(ctx context.Context) ([]domain.BotStatus, error)
	CountBots(ctx context.Context) (int, error)
	UnregisterBot(ctx context.Context, botID string) error

	// Command queue operations
	EnqueueCommand(ctx context.Context, botID, command string, params domain.Attrs) (*domain.CommandEntry, error)
	ListCommands(ctx context.Context, botID string) ([]domain.CommandEntry, error)
	ClearCommands(ctx context.Context, botID string) (int, error)
}
