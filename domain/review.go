package domain

import "time"

// CREATE TABLE public.reviews (
//     id          BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     product_id  BIGINT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
//     name        TEXT NOT NULL,
//     rating      SMALLINT NOT NULL CHECK (rating BETWEEN 1 AND 5),
//     comment     TEXT NOT NULL,
//     approved    BOOLEAN NOT NULL DEFAULT FALSE,
//     created_at  TIMESTAMPTZ DEFAULT NOW(),
//     updated_at  TIMESTAMPTZ DEFAULT NOW()
// );
// CREATE INDEX idx_reviews_product_approved ON public.reviews (product_id, approved);

// Review is a customer's star rating of a product. Only approved reviews
// count towards the product's rating and review count.
type Review struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID uint64    `gorm:"column:product_id;not null;index:idx_reviews_product_approved" json:"product_id"`
	Name      string    `gorm:"column:name;type:text;not null" json:"name"`
	Rating    int       `gorm:"column:rating;not null" json:"rating"`
	Comment   string    `gorm:"column:comment;type:text;not null" json:"comment"`
	Approved  bool      `gorm:"column:approved;not null;index:idx_reviews_product_approved" json:"approved"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Review) TableName() string {
	return "reviews"
}

const (
	ReviewStatusPending  = "pending"
	ReviewStatusApproved = "approved"
	ReviewStatusAll      = "all"
)

// ReviewQuery filters the moderation list. Search matches name or comment,
// case-insensitively.
type ReviewQuery struct {
	ProductID uint64
	Status    string
	Search    string
}

// ReviewSummary is what approved reviews contribute to a product. Rating is
// nil when there are none.
type ReviewSummary struct {
	Rating      *float64
	ReviewCount int
}
