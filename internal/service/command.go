package service

import (
	"context"
	"fmt"
	"log"

	"github.com/botfleet/coordinator/domain"
	"github.com/botfleet/coordinator/policy"
)

// SendCommand vets the command against the policy engine and, if
// allowed, appends it to the target bot's queue.
func (s *Service) SendCommand(ctx context.Context, botID, command string, params domain.Attrs) (*domain.CommandEntry, error) {
	decision, err := s.policyEngine.Evaluate(ctx, policy.Input{
		BotID:   botID,
		Command: command,
		Params:  params.Values(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate command policy: %w", err)
	}
	if decision == "block" {
		log.Printf("WARN: policy blocked command %q for bot %s", command, botID)
		return nil, domain.ErrCommandBlocked
	}

	entry, err := s.store.EnqueueCommand(ctx, botID, command, params)
	if err != nil {
		return nil, fmt.Errorf("failed to enqueue command: %w", err)
	}
	return entry, nil
}

// Commands returns the pending commands for a bot in insertion order.
func (s *Service) Commands(ctx context.Context, botID string) ([]domain.CommandEntry, error) {
	entries, err := s.store.ListCommands(ctx, botID)
	if err != nil {
		return nil, fmt.Errorf("failed to list commands: %w", err)
	}
	return entries, nil
}

// ClearCommands empties a bot's queue and reports how many entries
// were removed.
func (s *Service) ClearCommands(ctx context.Context, botID string) (int, error) {
	cleared, err := s.store.ClearCommands(ctx, botID)
	if err != nil {
		return 0, fmt.Errorf("failed to clear commands: %w", err)
	}
	return cleared, nil
}
