package usecase

import (
	"context"
	"fmt"
	"time"

	"movie-booking/internal/data/entity"
	"movie-booking/internal/data/repository"
	"movie-booking/internal/dto/request"
	"movie-booking/internal/dto/response"
	"movie-booking/pkg/cache"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const movieListCachePrefix = "movies:list:"

type MovieService interface {
	ListMovies(ctx context.Context, req request.PaginatedRequest) (*response.PaginatedResponse[response.MovieResponse], error)
	GetBookingPage(ctx context.Context, movieID string) (*response.BookingPage, error)

	// Admin
	CreateMovie(ctx context.Context, req *request.CreateMovieRequest) (*response.MovieResponse, error)
	AddShowTime(ctx context.Context, movieID string, req *request.CreateShowTimeRequest) (*response.ShowTimeResponse, error)
}

type movieService struct {
	repo  *repository.Repository
	cache *cache.Cache
	log   *zap.Logger
}

func NewMovieService(repo *repository.Repository, movieCache *cache.Cache, log *zap.Logger) MovieService {
	return &movieService{
		repo:  repo,
		cache: movieCache,
		log:   log.With(zap.String("service", "movie")),
	}
}

func (s *movieService) ListMovies(ctx context.Context, req request.PaginatedRequest) (*response.PaginatedResponse[response.MovieResponse], error) {
	page, limit := req.Page, req.Limit()
	if page < 1 {
		page = 1
	}
	key := fmt.Sprintf("%s%d:%d", movieListCachePrefix, page, limit)

	var cached response.PaginatedResponse[response.MovieResponse]
	hit, err := s.cache.GetJSON(ctx, key, &cached)
	if err != nil {
		// lanjut ke database
		s.log.Warn("Movie list cache read failed", zap.Error(err))
	}
	if hit {
		return &cached, nil
	}

	movies, err := s.repo.Movie.FindAll(ctx, req.Offset(), limit)
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Movie.CountAll(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]response.MovieResponse, 0, len(movies))
	for _, m := range movies {
		items = append(items, response.MovieToResponse(m))
	}
	resp := response.NewPaginatedResponse(items, page, limit, total)

	if err := s.cache.SetJSON(ctx, key, resp); err != nil {
		s.log.Warn("Movie list cache write failed", zap.Error(err))
	}

	return resp, nil
}

func (s *movieService) GetBookingPage(ctx context.Context, movieID string) (*response.BookingPage, error) {
	movie, err := s.findMovie(ctx, movieID)
	if err != nil {
		return nil, err
	}

	showTimes, err := s.repo.ShowTime.FindByMovieID(ctx, movie.ID)
	if err != nil {
		return nil, err
	}

	return &response.BookingPage{
		Movie:     response.MovieToResponse(movie),
		ShowTimes: response.ShowTimesToResponse(showTimes),
		Fields:    []string{"show_time", "quantity", "seat_number"},
	}, nil
}

func (s *movieService) CreateMovie(ctx context.Context, req *request.CreateMovieRequest) (*response.MovieResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	releaseDate, err := time.Parse("2006-01-02", req.ReleaseDate)
	if err != nil {
		return nil, &ValidationError{Fields: map[string]string{"release_date": "Enter a valid date"}}
	}

	genre := req.Genre
	if genre == "" {
		genre = entity.DefaultGenre
	}

	now := time.Now()
	movie := &entity.Movie{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Title:       req.Title,
		Genre:       genre,
		ReleaseDate: releaseDate,
		PosterURL:   req.PosterURL,
		Price:       entity.AmountFor(req.Price, 1),
	}

	if err := s.repo.Movie.Create(ctx, movie); err != nil {
		return nil, err
	}

	if err := s.cache.DeletePrefix(ctx, movieListCachePrefix); err != nil {
		s.log.Warn("Failed to invalidate movie list cache", zap.Error(err))
	}

	s.log.Info("Movie created",
		zap.String("movie_id", movie.ID.String()),
		zap.String("title", movie.Title))

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *movieService) AddShowTime(ctx context.Context, movieID string, req *request.CreateShowTimeRequest) (*response.ShowTimeResponse, error) {
	movie, err := s.findMovie(ctx, movieID)
	if err != nil {
		return nil, err
	}

	if err := validate(req); err != nil {
		return nil, err
	}

	clock, err := time.Parse("15:04", req.ShowTime)
	if err != nil {
		return nil, &ValidationError{Fields: map[string]string{"show_time": "Enter a valid time"}}
	}

	showTime := &entity.ShowTime{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		MovieID:  movie.ID,
		ShowTime: time.Time{}.Add(time.Duration(clock.Hour())*time.Hour + time.Duration(clock.Minute())*time.Minute),
	}

	if err := s.repo.ShowTime.Create(ctx, showTime); err != nil {
		return nil, err
	}

	s.log.Info("Show time added",
		zap.String("movie_id", movie.ID.String()),
		zap.String("show_time", showTime.Clock()))

	resp := response.ShowTimeToResponse(showTime)
	return &resp, nil
}

func (s *movieService) findMovie(ctx context.Context, movieID string) (*entity.Movie, error) {
	id, err := parseID(movieID, "Movie")
	if err != nil {
		return nil, err
	}

	movie, err := s.repo.Movie.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if movie == nil {
		return nil, newError(ErrNotFound, "Movie not found")
	}
	return movie, nil
}
