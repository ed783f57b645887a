package domain

import "time"

// DefaultProductImage is applied when a product is created without an image.
const DefaultProductImage = "https://images.unsplash.com/photo-1557821552-17105176677c?auto=format&fit=crop&q=80&w=400"

type Product struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Price       float64   `bson:"price" json:"price"`
	Description string    `bson:"description" json:"description"`
	Image       string    `bson:"image" json:"image"`
	Rating      float64   `bson:"rating" json:"rating"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}
