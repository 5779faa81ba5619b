package search

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bamkzStore/domain"
	"bamkzStore/pkg/logger"
	"bamkzStore/pkg/metrics"
)

var ErrInvalidArgument = errors.New("search query is required")

const (
	defaultResultLimit   = 8
	maxRecentSuggestions = 3
	maxTrendSuggestions  = 3
	maxCategorySuggests  = 2
)

type ProductRepository interface {
	FindAll(ctx context.Context) ([]domain.Product, error)
}

type CategoryRepository interface {
	FindAll(ctx context.Context) ([]domain.Category, error)
}

// SearchHistory keeps the per-session recent search terms.
type SearchHistory interface {
	RecordSearch(ctx context.Context, sessionID, query string) error
	RecentSearches(ctx context.Context, sessionID string) ([]string, error)
}

type Config struct {
	ResultLimit   int
	TrendingTerms []string
}

// SearchRequest carries a nil Query when the caller sent none at all,
// which is different from sending a blank one.
type SearchRequest struct {
	Query     *string
	SessionID string
	Filters   domain.SearchFilters
}

type SearchService struct {
	productRepo  ProductRepository
	categoryRepo CategoryRepository
	history      SearchHistory
	cfg          Config
}

func NewSearchService(
	productRepo ProductRepository,
	categoryRepo CategoryRepository,
	history SearchHistory,
	cfg Config,
) *SearchService {
	if cfg.ResultLimit <= 0 {
		cfg.ResultLimit = defaultResultLimit
	}

	return &SearchService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		history:      history,
		cfg:          cfg,
	}
}

func (s *SearchService) Search(ctx context.Context, req SearchRequest) ([]domain.MatchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if req.Query == nil {
		return nil, ErrInvalidArgument
	}

	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		logger.Error("failed to load products for search", "error", err)
		return nil, fmt.Errorf("load products: %w", err)
	}

	metrics.SearchRequests.Inc()

	query := strings.TrimSpace(*req.Query)

	var results []domain.MatchResult
	if query == "" {
		results = make([]domain.MatchResult, 0, len(products))
		for _, p := range products {
			results = append(results, domain.MatchResult{
				ProductID:      p.ID,
				Classification: domain.MatchNone,
				Product:        p,
			})
		}
	} else {
		results = Rank(products, query)
		if len(results) > s.cfg.ResultLimit {
			results = results[:s.cfg.ResultLimit]
		}
		s.recordSearch(ctx, req.SessionID, query)
	}

	results = applyFilters(results, req.Filters)

	for _, r := range results {
		metrics.SearchResults.WithLabelValues(r.Classification.String()).Inc()
	}

	logger.Debug("search",
		"query", query,
		"session_id", req.SessionID,
		"result_count", len(results),
	)

	return results, nil
}

func (s *SearchService) Suggest(ctx context.Context, sessionID, query string) ([]domain.SearchSuggestion, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	q := strings.ToLower(strings.TrimSpace(query))
	suggestions := []domain.SearchSuggestion{}

	if q == "" && sessionID != "" && s.history != nil {
		recent, err := s.history.RecentSearches(ctx, sessionID)
		if err != nil {
			logger.Warn("failed to load recent searches", "session_id", sessionID, "error", err)
		}
		for i, term := range recent {
			if i == maxRecentSuggestions {
				break
			}
			suggestions = append(suggestions, domain.SearchSuggestion{Text: term, Type: domain.SuggestionRecent})
		}
	}

	if q != "" {
		n := 0
		for _, term := range s.cfg.TrendingTerms {
			if n == maxTrendSuggestions {
				break
			}
			if strings.Contains(strings.ToLower(term), q) {
				suggestions = append(suggestions, domain.SearchSuggestion{Text: term, Type: domain.SuggestionTrending})
				n++
			}
		}
	}

	if s.categoryRepo != nil {
		categories, err := s.categoryRepo.FindAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("load categories: %w", err)
		}

		n := 0
		for _, c := range categories {
			if n == maxCategorySuggests {
				break
			}
			if strings.Contains(strings.ToLower(c.ProductCategory), q) {
				suggestions = append(suggestions, domain.SearchSuggestion{Text: c.ProductCategory, Type: domain.SuggestionCategory})
				n++
			}
		}
	}

	return suggestions, nil
}

func (s *SearchService) recordSearch(ctx context.Context, sessionID, query string) {
	if sessionID == "" || s.history == nil {
		return
	}

	if err := s.history.RecordSearch(ctx, sessionID, query); err != nil {
		logger.Warn("failed to record search", "session_id", sessionID, "error", err)
	}
}

func applyFilters(results []domain.MatchResult, f domain.SearchFilters) []domain.MatchResult {
	out := make([]domain.MatchResult, 0, len(results))
	for _, r := range results {
		p := r.Product
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.MinPrice != nil && p.Price < *f.MinPrice {
			continue
		}
		if f.MaxPrice != nil && p.Price > *f.MaxPrice {
			continue
		}
		if f.MinRating != nil && (p.Rating == nil || *p.Rating < *f.MinRating) {
			continue
		}
		if f.InStock && !p.InStock() {
			continue
		}
		out = append(out, r)
	}

	return out
}
