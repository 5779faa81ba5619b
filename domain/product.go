package domain

import (
	"time"
)

// CREATE TABLE public.products (
//     id               BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     name             TEXT NOT NULL,
//     category         TEXT NOT NULL,
//     description      TEXT,
//     price            BIGINT NOT NULL,
//     original_price   BIGINT,
//     rating           NUMERIC,
//     review_count     INTEGER,
//     stock            INTEGER,
//     is_new           BOOLEAN DEFAULT FALSE,
//     is_bestseller    BOOLEAN DEFAULT FALSE,
//     discount_percent NUMERIC,
//     created_at       TIMESTAMPTZ DEFAULT NOW()
// );

// Product is the catalogue item that search and recommendations rank.
// Nil optional fields are treated as neutral by every scorer.
type Product struct {
	ID              uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name            string    `gorm:"column:name;type:text;not null" json:"name"`
	Category        string    `gorm:"column:category;type:text;not null" json:"category"`
	Description     string    `gorm:"column:description;type:text" json:"description,omitempty"`
	Price           int64     `gorm:"column:price;not null" json:"price"`
	OriginalPrice   *int64    `gorm:"column:original_price" json:"original_price,omitempty"`
	Rating          *float64  `gorm:"column:rating;type:numeric" json:"rating,omitempty"`
	ReviewCount     *int      `gorm:"column:review_count" json:"review_count,omitempty"`
	Stock           *int      `gorm:"column:stock" json:"stock,omitempty"`
	IsNew           bool      `gorm:"column:is_new;default:false" json:"is_new"`
	IsBestseller    bool      `gorm:"column:is_bestseller;default:false" json:"is_bestseller"`
	DiscountPercent *float64  `gorm:"column:discount_percent;type:numeric" json:"discount_percent,omitempty"`
	CreatedAt       time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Product) TableName() string {
	return "products"
}

// OutOfStock reports a known stock of zero. Unknown stock is not out of stock.
func (p Product) OutOfStock() bool {
	return p.Stock != nil && *p.Stock == 0
}

func (p Product) InStock() bool {
	return p.Stock == nil || *p.Stock > 0
}

func (p Product) HasDiscount() bool {
	return p.DiscountPercent != nil && *p.DiscountPercent > 0
}

const (
	SortNewest     = "newest"
	SortPriceAsc   = "price_asc"
	SortPriceDesc  = "price_desc"
	SortRating     = "rating"
	SortPopularity = "popularity"
)

// ProductQuery drives the catalogue listing.
type ProductQuery struct {
	Category  string
	MinPrice  *int64
	MaxPrice  *int64
	MinRating *float64
	InStock   bool
	SortBy    string
	Page      int
	PerPage   int
}

type ProductPage struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
	Page     int       `json:"page"`
	PerPage  int       `json:"per_page"`
}
