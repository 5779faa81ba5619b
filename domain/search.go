package domain

import "fmt"

// MatchClassification is a relevance tier. Lower values are more relevant.
type MatchClassification int

const (
	MatchExact MatchClassification = iota
	MatchCategory
	MatchPartial
	MatchFuzzy
)

// MatchNone marks results listed for a blank query, where no matching ran.
const MatchNone MatchClassification = -1

func (m MatchClassification) String() string {
	switch m {
	case MatchNone:
		return "none"
	case MatchExact:
		return "exact"
	case MatchCategory:
		return "category"
	case MatchPartial:
		return "partial"
	case MatchFuzzy:
		return "fuzzy"
	default:
		return fmt.Sprintf("unknown(%d)", int(m))
	}
}

func (m MatchClassification) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

type MatchResult struct {
	ProductID      uint64              `json:"product_id"`
	Classification MatchClassification `json:"match_type"`
	Product        Product             `json:"product"`
}

// SearchFilters are applied to the classified result set.
type SearchFilters struct {
	Category  string
	MinPrice  *int64
	MaxPrice  *int64
	MinRating *float64
	InStock   bool
}

const (
	SuggestionRecent   = "recent"
	SuggestionTrending = "trending"
	SuggestionCategory = "category"
)

type SearchSuggestion struct {
	Text string `json:"text"`
	Type string `json:"type"`
}
