package history

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bamkzStore/domain"
	"bamkzStore/pkg/logger"
)

const (
	MaxViewed         = 50
	MaxRecentSearches = 5
)

var ErrInvalidArgument = errors.New("invalid history request")

// Store holds per-session browsing state.
type Store interface {
	// PushViewed moves productID to the front of the viewed list and trims it to max.
	PushViewed(ctx context.Context, sessionID string, productID uint64, max int) error
	Viewed(ctx context.Context, sessionID string) ([]uint64, error)
	AddPurchased(ctx context.Context, sessionID string, productIDs []uint64) error
	Purchased(ctx context.Context, sessionID string) ([]uint64, error)
	PushSearch(ctx context.Context, sessionID, query string, max int) error
	Searches(ctx context.Context, sessionID string) ([]string, error)
}

type EventRepository interface {
	SaveEvent(ctx context.Context, event *domain.ProductEvent) error
}

type Service struct {
	store  Store
	events EventRepository
}

// NewService wires the session store and the durable event log. events may
// be nil, in which case nothing is logged.
func NewService(store Store, events EventRepository) *Service {
	return &Service{
		store:  store,
		events: events,
	}
}

func (s *Service) TrackView(ctx context.Context, sessionID string, productID uint64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return fmt.Errorf("%w: session id is required", ErrInvalidArgument)
	}
	if productID == 0 {
		return fmt.Errorf("%w: product id is required", ErrInvalidArgument)
	}

	if err := s.store.PushViewed(ctx, sessionID, productID, MaxViewed); err != nil {
		logger.Error("failed to track view", "session_id", sessionID, "product_id", productID, "error", err)
		return fmt.Errorf("failed to track view: %w", err)
	}

	s.logEvent(ctx, &domain.ProductEvent{
		SessionID: sessionID,
		EventType: domain.EventView,
		ProductID: &productID,
	})

	return nil
}

func (s *Service) TrackPurchase(ctx context.Context, sessionID string, productIDs []uint64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return fmt.Errorf("%w: session id is required", ErrInvalidArgument)
	}

	ids := make([]uint64, 0, len(productIDs))
	for _, id := range productIDs {
		if id == 0 {
			return fmt.Errorf("%w: product id is required", ErrInvalidArgument)
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return fmt.Errorf("%w: at least one product id is required", ErrInvalidArgument)
	}

	if err := s.store.AddPurchased(ctx, sessionID, ids); err != nil {
		logger.Error("failed to track purchase", "session_id", sessionID, "error", err)
		return fmt.Errorf("failed to track purchase: %w", err)
	}

	for _, id := range ids {
		s.logEvent(ctx, &domain.ProductEvent{
			SessionID: sessionID,
			EventType: domain.EventPurchase,
			ProductID: &id,
		})
	}

	return nil
}

// RecordSearch keeps the last MaxRecentSearches distinct queries of a session.
func (s *Service) RecordSearch(ctx context.Context, sessionID, query string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}
	sessionID = strings.TrimSpace(sessionID)
	query = strings.TrimSpace(query)
	if sessionID == "" || query == "" {
		return nil
	}

	if err := s.store.PushSearch(ctx, sessionID, query, MaxRecentSearches); err != nil {
		return fmt.Errorf("failed to record search: %w", err)
	}

	s.logEvent(ctx, &domain.ProductEvent{
		SessionID: sessionID,
		EventType: domain.EventSearch,
		Context:   map[string]any{"query": query},
	})

	return nil
}

func (s *Service) RecentSearches(ctx context.Context, sessionID string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return []string{}, nil
	}

	searches, err := s.store.Searches(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent searches: %w", err)
	}
	if searches == nil {
		return []string{}, nil
	}
	if len(searches) > MaxRecentSearches {
		searches = searches[:MaxRecentSearches]
	}

	return searches, nil
}

// Snapshot returns what the recommendation scorer needs to know about a
// session. An unknown or empty session yields an empty snapshot.
func (s *Service) Snapshot(ctx context.Context, sessionID string) (domain.HistorySnapshot, error) {
	if err := ctx.Err(); err != nil {
		return domain.HistorySnapshot{}, fmt.Errorf("context error: %w", err)
	}

	snap := domain.HistorySnapshot{Viewed: []uint64{}, Purchased: []uint64{}}
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return snap, nil
	}

	viewed, err := s.store.Viewed(ctx, sessionID)
	if err != nil {
		return domain.HistorySnapshot{}, fmt.Errorf("failed to load viewed products: %w", err)
	}
	purchased, err := s.store.Purchased(ctx, sessionID)
	if err != nil {
		return domain.HistorySnapshot{}, fmt.Errorf("failed to load purchased products: %w", err)
	}

	if len(viewed) > MaxViewed {
		viewed = viewed[:MaxViewed]
	}
	if viewed != nil {
		snap.Viewed = viewed
	}
	if purchased != nil {
		snap.Purchased = purchased
	}

	return snap, nil
}

func (s *Service) logEvent(ctx context.Context, event *domain.ProductEvent) {
	if s.events == nil {
		return
	}
	if err := s.events.SaveEvent(ctx, event); err != nil {
		logger.Warn("failed to save product event", "session_id", event.SessionID, "event_type", event.EventType, "error", err)
	}
}
