package service

import (
	"context"
	"fmt"

	"github.com/botfleet/coordinator/domain"
)

// RegisterBot upserts a bot record. Re-registration merges attributes
// and refreshes the last-seen timestamp.
func (s *Service) RegisterBot(ctx context.Context, botID string, attrs domain.Attrs) (*domain.Bot, error) {
	bot, err := s.store.RegisterBot(ctx, botID, attrs)
	if err != nil {
		return nil, fmt.Errorf("failed to register bot: %w", err)
	}
	return bot, nil
}

func (s *Service) GetBot(ctx context.Context, botID string) (*domain.Bot, error) {
	bot, err := s.store.GetBot(ctx, botID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bot: %w", err)
	}
	return bot, nil
}

func (s *Service) ListBots(ctx context.Context) ([]domain.BotStatus, error) {
	bots, err := s.store.ListBots(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list bots: %w", err)
	}
	return bots, nil
}

func (s *Service) CountBots(ctx context.Context) (int, error) {
	return s.store.CountBots(ctx)
}

// UnregisterBot removes the bot and its entire command queue.
func (s *Service) UnregisterBot(ctx context.Context, botID string) error {
	if err := s.store.UnregisterBot(ctx, botID); err != nil {
		return fmt.Errorf("failed to unregister bot: %w", err)
	}
	return nil
}
