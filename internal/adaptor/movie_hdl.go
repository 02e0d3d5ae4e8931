package adaptor

import (
	"net/http"

	"movie-booking/internal/dto/request"
	"movie-booking/internal/usecase"
	"movie-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type MovieHandler struct {
	service usecase.MovieService
	log     *zap.Logger
}

func NewMovieHandler(service usecase.MovieService, log *zap.Logger) *MovieHandler {
	return &MovieHandler{
		service: service,
		log:     log.With(zap.String("handler", "movie")),
	}
}

// ListMovies handles GET /movies
func (h *MovieHandler) ListMovies(w http.ResponseWriter, r *http.Request) {
	req := request.PaginationFromQuery(r.URL.Query())

	movies, err := h.service.ListMovies(r.Context(), req)
	if err != nil {
		handleServiceError(w, h.log, err, "list movies")
		return
	}

	utils.ResponseSuccess(w, "Movies retrieved successfully", movies)
}

// BookingPage handles GET /movies/{id}/book
func (h *MovieHandler) BookingPage(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.GetBookingPage(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get booking page")
		return
	}

	utils.ResponseSuccess(w, "Book a ticket", page)
}

// CreateMovie handles POST /admin/movies
func (h *MovieHandler) CreateMovie(w http.ResponseWriter, r *http.Request) {
	var req request.CreateMovieRequest
	if !bindForm(w, r, &req) {
		return
	}

	movie, err := h.service.CreateMovie(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create movie")
		return
	}

	utils.ResponseCreated(w, "Movie created successfully", movie)
}

// AddShowTime handles POST /admin/movies/{id}/showtimes
func (h *MovieHandler) AddShowTime(w http.ResponseWriter, r *http.Request) {
	var req request.CreateShowTimeRequest
	if !bindForm(w, r, &req) {
		return
	}

	showTime, err := h.service.AddShowTime(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "add show time")
		return
	}

	utils.ResponseCreated(w, "Show time added successfully", showTime)
}
