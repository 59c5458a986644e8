package domain

import "time"

// Product is a catalog entry managed through the admin API.
type Product struct {
	ProductID   string    `json:"id" dynamodbav:"product_id"`
	Name        string    `json:"name" dynamodbav:"name"`
	Description string    `json:"description" dynamodbav:"description"`
	Price       float64   `json:"price" dynamodbav:"price"`
	Sizes       []string  `json:"sizes,omitempty" dynamodbav:"sizes"`
	ImageKey    string    `json:"-" dynamodbav:"image_key"`
	ImageURL    string    `json:"imageUrl,omitempty" dynamodbav:"-"`
	Enable      bool      `json:"enable" dynamodbav:"enable"`
	CreatedAt   time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt   time.Time `json:"updated" dynamodbav:"updated_at"`
}

// CreateProductRequest is the admin payload for creating a catalog entry.
type CreateProductRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	Price       float64  `json:"price" validate:"gte=0"`
	Sizes       []string `json:"sizes"`
}

// UpdateProductRequest is the admin payload for partial catalog updates.
type UpdateProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Sizes       []string `json:"sizes"`
	Enable      *bool    `json:"enable"`
}
