package domain

import "time"

// Product mirrors the catalog entry returned by the backend.
type Product struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	Price        Money     `json:"price"`
	Stock        int       `json:"stock"`
	Image        string    `json:"image,omitempty"`
	CategoryID   *int64    `json:"categoryId,omitempty"`
	CategoryName string    `json:"categoryName,omitempty"`
	InStock      *bool     `json:"inStock,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ProductInput is the admin create/update payload.
type ProductInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Price       Money  `json:"price"`
	Stock       int    `json:"stock"`
	Image       string `json:"image,omitempty"`
	CategoryID  *int64 `json:"categoryId,omitempty"`
}
