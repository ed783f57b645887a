package service

import "github.com/omaradel73/zamazon-v2/internal/domain"

// defaultCatalog is the starter storefront inventory.
func defaultCatalog() []domain.Product {
	return []domain.Product{
		{
			Name:        "Zamazon Echo Dot",
			Price:       2500,
			Rating:      4.5,
			Image:       "https://images.unsplash.com/photo-1543512214-318c77a07298?auto=format&fit=crop&q=80&w=400",
			Description: "Voice controlled smart speaker with Alexa.",
		},
		{
			Name:        "Zamazon Kindle Paperwhite",
			Price:       7000,
			Rating:      4.8,
			Image:       "https://images.unsplash.com/photo-1592434134753-a70baf7979d5?auto=format&fit=crop&q=80&w=400",
			Description: "Now with a 6.8” display and warmer light.",
		},
		{
			Name:        "Z-Phone 15 Pro",
			Price:       55000,
			Rating:      4.7,
			Image:       "https://images.unsplash.com/photo-1616410011236-7a4211f92276?auto=format&fit=crop&q=80&w=400",
			Description: "The ultimate smartphone experience.",
		},
		{
			Name:        "Gaming Laptop Z-Series",
			Price:       65000,
			Rating:      4.6,
			Image:       "https://images.unsplash.com/photo-1603302576837-37561b2e2302?auto=format&fit=crop&q=80&w=400",
			Description: "High performance gaming on the go.",
		},
		{
			Name:        "Wireless Headphones",
			Price:       15000,
			Rating:      4.4,
			Image:       "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?auto=format&fit=crop&q=80&w=400",
			Description: "Immersive sound with premium comfort.",
		},
		{
			Name:        "4K Ultra HD Smart TV",
			Price:       25000,
			Rating:      4.3,
			Image:       "https://images.unsplash.com/photo-1593784991095-a20506948430?auto=format&fit=crop&q=80&w=400",
			Description: "Vibrant colors and incredible detail.",
		},
	}
}
