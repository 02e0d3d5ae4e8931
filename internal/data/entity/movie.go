package entity

import (
	"math"
	"time"
)

const DefaultGenre = "Unknown"

type Movie struct {
	Base
	Title       string    `db:"title"`
	Genre       string    `db:"genre"`
	ReleaseDate time.Time `db:"release_date"`
	PosterURL   *string   `db:"poster_url"`
	Price       float64   `db:"price"`
}

// AmountFor is the payment amount for quantity seats at price, rounded to cents.
func AmountFor(price float64, quantity int) float64 {
	return math.Round(price*float64(quantity)*100) / 100
}
