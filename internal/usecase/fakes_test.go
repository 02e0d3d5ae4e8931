package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"movie-booking/internal/data/entity"
	"movie-booking/internal/data/repository"

	"github.com/google/uuid"
)

// memStore is an in-memory stand-in for Postgres. It mirrors the constraints
// the services rely on: one payment per ticket and ticket -> payment cascade.
type memStore struct {
	mu             sync.Mutex
	users          map[uuid.UUID]entity.User
	sessions       map[uuid.UUID]entity.Session // by token
	movies         map[uuid.UUID]entity.Movie
	showTimes      map[uuid.UUID]entity.ShowTime
	tickets        map[uuid.UUID]entity.Ticket
	payments       map[uuid.UUID]entity.Payment // by ticket id
	paymentInserts int
}

func newMemStore() *memStore {
	return &memStore{
		users:     make(map[uuid.UUID]entity.User),
		sessions:  make(map[uuid.UUID]entity.Session),
		movies:    make(map[uuid.UUID]entity.Movie),
		showTimes: make(map[uuid.UUID]entity.ShowTime),
		tickets:   make(map[uuid.UUID]entity.Ticket),
		payments:  make(map[uuid.UUID]entity.Payment),
	}
}

func (s *memStore) repository() *repository.Repository {
	return &repository.Repository{
		User:     &fakeUserRepo{s},
		Session:  &fakeSessionRepo{s},
		Movie:    &fakeMovieRepo{s},
		ShowTime: &fakeShowTimeRepo{s},
		Ticket:   &fakeTicketRepo{s},
		Payment:  &fakePaymentRepo{s},
	}
}

// ==================== SEED HELPERS ====================

func (s *memStore) addUser(username string) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.New()
	s.users[id] = entity.User{
		Base:     entity.Base{ID: id, CreatedAt: time.Now(), UpdatedAt: time.Now()},
		Username: username,
		Role:     entity.RoleCustomer,
		IsActive: true,
	}
	return id
}

func (s *memStore) addMovie(title string, price float64) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.New()
	s.movies[id] = entity.Movie{
		Base:        entity.Base{ID: id, CreatedAt: time.Now(), UpdatedAt: time.Now()},
		Title:       title,
		Genre:       entity.DefaultGenre,
		ReleaseDate: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		Price:       price,
	}
	return id
}

func (s *memStore) addShowTime(movieID uuid.UUID, hour, minute int) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.New()
	s.showTimes[id] = entity.ShowTime{
		BaseSimple: entity.BaseSimple{ID: id, CreatedAt: time.Now()},
		MovieID:    movieID,
		ShowTime:   time.Time{}.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute),
	}
	return id
}

func (s *memStore) setPrice(movieID uuid.UUID, price float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := s.movies[movieID]
	m.Price = price
	s.movies[movieID] = m
}

func (s *memStore) ticketCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tickets)
}

func (s *memStore) payment(ticketID uuid.UUID) (entity.Payment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.payments[ticketID]
	return p, ok
}

func (s *memStore) ticket(id uuid.UUID) (entity.Ticket, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tickets[id]
	return t, ok
}

// detail must be called with mu held
func (s *memStore) detail(t entity.Ticket) *entity.TicketDetail {
	return &entity.TicketDetail{
		Ticket:     t,
		MovieTitle: s.movies[t.MovieID].Title,
		MoviePrice: s.movies[t.MovieID].Price,
		ShowTime:   s.showTimes[t.ShowTimeID].ShowTime,
	}
}

// ==================== USERS ====================

type fakeUserRepo struct{ s *memStore }

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Username == user.Username {
			return fmt.Errorf("create user %s: %w", user.Username, repository.ErrDuplicate)
		}
	}
	r.s.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, nil
}

// ==================== SESSIONS ====================

type fakeSessionRepo struct{ s *memStore }

func (r *fakeSessionRepo) Create(_ context.Context, session *entity.Session) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.sessions[session.Token] = *session
	return nil
}

func (r *fakeSessionRepo) FindValidSession(_ context.Context, token string) (*entity.Session, error) {
	id, err := uuid.Parse(token)
	if err != nil {
		return nil, nil
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sess, ok := r.s.sessions[id]
	if !ok || !sess.Active(time.Now()) {
		return nil, nil
	}
	return &sess, nil
}

func (r *fakeSessionRepo) Revoke(_ context.Context, token string) error {
	id, err := uuid.Parse(token)
	if err != nil {
		return nil
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if sess, ok := r.s.sessions[id]; ok && sess.RevokedAt == nil {
		now := time.Now()
		sess.RevokedAt = &now
		r.s.sessions[id] = sess
	}
	return nil
}

func (r *fakeSessionRepo) CleanExpiredSessions(context.Context) (int64, error) {
	return 0, nil
}

// ==================== MOVIES ====================

type fakeMovieRepo struct{ s *memStore }

func (r *fakeMovieRepo) Create(_ context.Context, movie *entity.Movie) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.movies[movie.ID] = *movie
	return nil
}

func (r *fakeMovieRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Movie, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.movies[id]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (r *fakeMovieRepo) FindAll(_ context.Context, offset, limit int) ([]*entity.Movie, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	movies := make([]*entity.Movie, 0, len(r.s.movies))
	for _, m := range r.s.movies {
		m := m
		movies = append(movies, &m)
	}
	sort.Slice(movies, func(i, j int) bool { return movies[i].Title < movies[j].Title })
	if offset >= len(movies) {
		return nil, nil
	}
	end := offset + limit
	if end > len(movies) {
		end = len(movies)
	}
	return movies[offset:end], nil
}

func (r *fakeMovieRepo) CountAll(context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.movies)), nil
}

// ==================== SHOW TIMES ====================

type fakeShowTimeRepo struct{ s *memStore }

func (r *fakeShowTimeRepo) Create(_ context.Context, st *entity.ShowTime) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.showTimes[st.ID] = *st
	return nil
}

func (r *fakeShowTimeRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.ShowTime, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	st, ok := r.s.showTimes[id]
	if !ok {
		return nil, nil
	}
	return &st, nil
}

func (r *fakeShowTimeRepo) FindByMovieID(_ context.Context, movieID uuid.UUID) ([]*entity.ShowTime, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.ShowTime
	for _, st := range r.s.showTimes {
		if st.MovieID == movieID {
			st := st
			out = append(out, &st)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ShowTime.Before(out[j].ShowTime) })
	return out, nil
}

func (r *fakeShowTimeRepo) FindByIDAndMovie(_ context.Context, id, movieID uuid.UUID) (*entity.ShowTime, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	st, ok := r.s.showTimes[id]
	if !ok || st.MovieID != movieID {
		return nil, nil
	}
	return &st, nil
}

// ==================== TICKETS ====================

type fakeTicketRepo struct{ s *memStore }

func (r *fakeTicketRepo) Create(_ context.Context, ticket *entity.Ticket) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.tickets[ticket.ID] = *ticket
	return nil
}

func (r *fakeTicketRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.TicketDetail, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tickets[id]
	if !ok {
		return nil, nil
	}
	return r.s.detail(t), nil
}

func (r *fakeTicketRepo) FindByIDAndUser(_ context.Context, id, userID uuid.UUID) (*entity.TicketDetail, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tickets[id]
	if !ok || t.UserID != userID {
		return nil, nil
	}
	return r.s.detail(t), nil
}

func (r *fakeTicketRepo) FindByUserID(_ context.Context, userID uuid.UUID, offset, limit int) ([]*entity.TicketDetail, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.TicketDetail
	for _, t := range r.s.tickets {
		if t.UserID == userID {
			out = append(out, r.s.detail(t))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BookingDate.After(out[j].BookingDate) })
	if offset >= len(out) {
		return nil, nil
	}
	end := offset + limit
	if end > len(out) {
		end = len(out)
	}
	return out[offset:end], nil
}

func (r *fakeTicketRepo) CountByUserID(_ context.Context, userID uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, t := range r.s.tickets {
		if t.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (r *fakeTicketRepo) Update(_ context.Context, ticket *entity.Ticket) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.tickets[ticket.ID]
	if !ok || current.UserID != ticket.UserID {
		return repository.ErrNotFound
	}
	if current.IsPaid {
		return repository.ErrLocked
	}
	current.MovieID = ticket.MovieID
	current.ShowTimeID = ticket.ShowTimeID
	current.Quantity = ticket.Quantity
	current.SeatNumber = ticket.SeatNumber
	current.UpdatedAt = ticket.UpdatedAt
	r.s.tickets[ticket.ID] = current
	return nil
}

func (r *fakeTicketRepo) Delete(_ context.Context, id, userID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tickets[id]
	if !ok || t.UserID != userID {
		return repository.ErrNotFound
	}
	delete(r.s.tickets, id)
	delete(r.s.payments, id) // ON DELETE CASCADE
	return nil
}

func (r *fakeTicketRepo) MarkPaid(_ context.Context, id, userID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tickets[id]
	if !ok || t.UserID != userID {
		return repository.ErrNotFound
	}
	t.IsPaid = true
	r.s.tickets[id] = t
	return nil
}

// ==================== PAYMENTS ====================

type fakePaymentRepo struct{ s *memStore }

func (r *fakePaymentRepo) CreateIfAbsent(_ context.Context, payment *entity.Payment) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, exists := r.s.payments[payment.TicketID]; exists {
		return false, nil
	}
	r.s.payments[payment.TicketID] = *payment
	r.s.paymentInserts++
	return true, nil
}

func (r *fakePaymentRepo) FindByTicketID(_ context.Context, ticketID uuid.UUID) (*entity.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.payments[ticketID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *fakePaymentRepo) UpdateAmount(_ context.Context, id uuid.UUID, amount float64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for ticketID, p := range r.s.payments {
		if p.ID == id && p.Status == entity.PaymentStatusPending {
			p.Amount = amount
			r.s.payments[ticketID] = p
		}
	}
	return nil
}

func (r *fakePaymentRepo) Complete(_ context.Context, id uuid.UUID, transactionID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for ticketID, p := range r.s.payments {
		if p.ID == id && p.Status == entity.PaymentStatusPending {
			p.Status = entity.PaymentStatusCompleted
			p.TransactionID = &transactionID
			r.s.payments[ticketID] = p
			return true, nil
		}
	}
	return false, nil
}

// ==================== PUBLISHER ====================

type recordingPublisher struct {
	mu     sync.Mutex
	events []any
	keys   []string
}

func (p *recordingPublisher) Publish(_ context.Context, routingKey string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys = append(p.keys, routingKey)
	p.events = append(p.events, payload)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }
