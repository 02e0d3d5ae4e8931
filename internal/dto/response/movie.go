package response

import (
	"fmt"

	"movie-booking/internal/data/entity"
)

type MovieResponse struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Genre       string  `json:"genre"`
	ReleaseDate string  `json:"release_date"`
	PosterURL   *string `json:"poster_url,omitempty"`
	Price       string  `json:"price"`
}

type ShowTimeResponse struct {
	ID       string `json:"id"`
	MovieID  string `json:"movie_id"`
	ShowTime string `json:"show_time"`
}

// BookingPage is everything the booking form needs.
type BookingPage struct {
	Movie     MovieResponse      `json:"movie"`
	ShowTimes []ShowTimeResponse `json:"show_times"`
	Fields    []string           `json:"fields"`
}

func FormatMoney(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}

// Helper converters
func MovieToResponse(movie *entity.Movie) MovieResponse {
	return MovieResponse{
		ID:          movie.ID.String(),
		Title:       movie.Title,
		Genre:       movie.Genre,
		ReleaseDate: movie.ReleaseDate.Format("2006-01-02"),
		PosterURL:   movie.PosterURL,
		Price:       FormatMoney(movie.Price),
	}
}

func ShowTimeToResponse(showTime *entity.ShowTime) ShowTimeResponse {
	return ShowTimeResponse{
		ID:       showTime.ID.String(),
		MovieID:  showTime.MovieID.String(),
		ShowTime: showTime.Clock(),
	}
}

func ShowTimesToResponse(showTimes []*entity.ShowTime) []ShowTimeResponse {
	resp := make([]ShowTimeResponse, 0, len(showTimes))
	for _, st := range showTimes {
		resp = append(resp, ShowTimeToResponse(st))
	}
	return resp
}
