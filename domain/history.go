package domain

import (
	"time"

	"gorm.io/datatypes"
)

const (
	EventView     = "view"
	EventPurchase = "purchase"
	EventSearch   = "search"
)

// CREATE TABLE public.product_events (
//     id          BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     session_id  TEXT NOT NULL,
//     event_type  TEXT NOT NULL,
//     product_id  BIGINT,
//     context     JSONB,
//     created_at  TIMESTAMPTZ DEFAULT NOW()
// );
// CREATE INDEX idx_product_events_session ON public.product_events (session_id, created_at DESC);

type ProductEvent struct {
	ID        uint64            `gorm:"primaryKey" json:"id"`
	SessionID string            `gorm:"column:session_id;not null" json:"session_id"`
	EventType string            `gorm:"column:event_type;not null" json:"event_type"`
	ProductID *uint64           `gorm:"column:product_id" json:"product_id,omitempty"`
	Context   datatypes.JSONMap `gorm:"column:context;type:jsonb" json:"context,omitempty"`
	CreatedAt time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (ProductEvent) TableName() string {
	return "product_events"
}

// HistorySnapshot is a session's browsing state. Viewed is most recent first.
type HistorySnapshot struct {
	Viewed    []uint64 `json:"viewed"`
	Purchased []uint64 `json:"purchased"`
}
