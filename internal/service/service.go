// Package service implements the chat core: the turn executor, session
// registry operations, and the title summarizer.
package service

import (
	"github.com/meridianlabs/converse/internal/adapter/llm"
	"github.com/meridianlabs/converse/internal/config"
	"github.com/meridianlabs/converse/internal/store"
	"github.com/meridianlabs/converse/internal/tracker"
	"github.com/meridianlabs/converse/policy"
)

// Service coordinates the store, the model client, and the access policy.
type Service struct {
	store        store.Store
	model        llm.Client
	policyEngine *policy.Engine
	tracker      *tracker.Tracker
	config       *config.Config
	locks        *keyLocks
}

// New creates a Service. The tracker is injected so its lifecycle is owned by
// the caller, not by this package.
func New(st store.Store, model llm.Client, policyEngine *policy.Engine, trk *tracker.Tracker, cfg *config.Config) *Service {
	return &Service{
		store:        st,
		model:        model,
		policyEngine: policyEngine,
		tracker:      trk,
		config:       cfg,
		locks:        newKeyLocks(),
	}
}

// ActiveTurns returns a snapshot of turns currently in flight.
func (s *Service) ActiveTurns() []tracker.Turn {
	return s.tracker.Active()
}
