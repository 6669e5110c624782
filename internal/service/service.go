// Package service implements the coordinator's business operations.
package service

import (
	"github.com/botfleet/coordinator/internal/config"
	"github.com/botfleet/coordinator/internal/store"
	"github.com/botfleet/coordinator/policy"
)

type Service struct {
	store        store.Store
	config       *config.Config
	policyEngine *policy.Engine
}

func New(store store.Store, cfg *config.Config, policyEngine *policy.Engine) *Service {
	return &Service{
		store:        store,
		config:       cfg,
		policyEngine: policyEngine,
	}
}
