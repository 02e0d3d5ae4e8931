package request

import "net/url"

type CreateMovieRequest struct {
	Title       string  `form:"title" json:"title" validate:"required,max=255"`
	Genre       string  `form:"genre" json:"genre,omitempty" validate:"omitempty,max=100"`
	ReleaseDate string  `form:"release_date" json:"release_date" validate:"required,datetime=2006-01-02"`
	PosterURL   *string `form:"poster_url" json:"poster_url,omitempty" validate:"omitempty,url"`
	Price       float64 `form:"price" json:"price" validate:"gte=0,lte=9999.99"`
}

func (r *CreateMovieRequest) FromForm(values url.Values) FieldErrors {
	errs := FieldErrors{}
	r.Title = formString(values, "title")
	r.Genre = formString(values, "genre")
	r.ReleaseDate = formString(values, "release_date")
	r.PosterURL = formOptional(values, "poster_url")
	r.Price = formFloat(values, "price", errs)
	return nilIfEmpty(errs)
}

type CreateShowTimeRequest struct {
	ShowTime string `form:"show_time" json:"show_time" validate:"required,datetime=15:04"`
}

func (r *CreateShowTimeRequest) FromForm(values url.Values) FieldErrors {
	r.ShowTime = formString(values, "show_time")
	return nil
}
