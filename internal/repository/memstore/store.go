// Package memstore is an in-process implementation of every store the
// services consume. It backs STORAGE_DRIVER=memory and the tests.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Shivanand-hulikatti/sports-academy/internal/model"
	"github.com/Shivanand-hulikatti/sports-academy/internal/repository"
	"github.com/google/uuid"
)

// Store holds all collections behind a single lock, so Settle is atomic.
type Store struct {
	mu sync.RWMutex

	users        map[string]model.Identity
	classes      map[string]model.ClassOffering
	reservations map[string]model.Reservation
	payments     []model.PaymentRecord
	byTxn        map[string]model.PaymentRecord
	slides       []model.Slide

	now func() time.Time
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		users:        make(map[string]model.Identity),
		classes:      make(map[string]model.ClassOffering),
		reservations: make(map[string]model.Reservation),
		byTxn:        make(map[string]model.PaymentRecord),
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// Users is the identity collection view.
type Users struct{ *Store }

// Classes is the class offering collection view.
type Classes struct{ *Store }

// Reservations is the held booking collection view.
type Reservations struct{ *Store }

// Payments is the payment record collection view.
type Payments struct{ *Store }

// Slides is the slider collection view.
type Slides struct{ *Store }

func (s *Store) Users() Users               { return Users{s} }
func (s *Store) Classes() Classes           { return Classes{s} }
func (s *Store) Reservations() Reservations { return Reservations{s} }
func (s *Store) Payments() Payments         { return Payments{s} }
func (s *Store) Slides() Slides             { return Slides{s} }

// SeedSlides replaces the slider content.
func (s *Store) SeedSlides(slides []model.Slide) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slides = append([]model.Slide(nil), slides...)
}

// ─── Identities ───────────────────────────────────────────────────────────────

func (s Users) Upsert(_ context.Context, email string, req model.UpsertUserRequest) (*model.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	u, ok := s.users[email]
	if !ok {
		u = model.Identity{Email: email, Role: model.RoleStudent, CreatedAt: now}
	}
	u.Name = req.Name
	u.PhotoURL = req.PhotoURL
	u.UpdatedAt = now
	s.users[email] = u
	return &u, nil
}

func (s Users) GetByEmail(_ context.Context, email string) (*model.Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (s Users) List(_ context.Context) ([]model.Identity, error) {
	return s.usersWhere(func(model.Identity) bool { return true }), nil
}

func (s Users) ListByRole(_ context.Context, role model.Role) ([]model.Identity, error) {
	return s.usersWhere(func(u model.Identity) bool { return u.Role == role }), nil
}

func (s *Store) usersWhere(keep func(model.Identity) bool) []model.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.Identity
	for _, u := range s.users {
		if keep(u) {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (s Users) SetRole(_ context.Context, email string, role model.Role) (*model.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u.Role = role
	u.UpdatedAt = s.now()
	s.users[email] = u
	return &u, nil
}

// ─── Classes ──────────────────────────────────────────────────────────────────

func (s Classes) Create(_ context.Context, instructorEmail string, req model.ClassRequest) (*model.ClassOffering, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := model.ClassOffering{
		ID:              uuid.New().String(),
		Name:            req.Name,
		ImageURL:        req.ImageURL,
		InstructorEmail: instructorEmail,
		InstructorName:  req.InstructorName,
		Price:           req.Price,
		AvailableSeats:  req.AvailableSeats,
		Status:          model.ClassPending,
		CreatedAt:       s.now(),
	}
	s.classes[c.ID] = c
	return &c, nil
}

func (s Classes) GetByID(_ context.Context, id string) (*model.ClassOffering, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.classes[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (s Classes) List(_ context.Context, f repository.ClassFilter) ([]model.ClassOffering, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.ClassOffering
	for _, c := range s.classes {
		if f.Status != "" && c.Status != f.Status {
			continue
		}
		if f.InstructorEmail != "" && c.InstructorEmail != f.InstructorEmail {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s Classes) Update(_ context.Context, id string, req model.ClassRequest) (*model.ClassOffering, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.classes[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c.Name = req.Name
	c.ImageURL = req.ImageURL
	c.InstructorName = req.InstructorName
	c.Price = req.Price
	c.AvailableSeats = req.AvailableSeats
	s.classes[id] = c
	return &c, nil
}

func (s Classes) UpdateStatus(_ context.Context, id string, from, to model.ClassStatus, feedback string) (*model.ClassOffering, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.classes[id]
	if !ok || c.Status != from {
		return nil, repository.ErrStaleStatus
	}
	c.Status = to
	c.Feedback = feedback
	s.classes[id] = c
	return &c, nil
}

// ─── Reservations ─────────────────────────────────────────────────────────────

func (s Reservations) Create(_ context.Context, studentEmail string, class *model.ClassOffering) (*model.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := model.Reservation{
		ID:              uuid.New().String(),
		StudentEmail:    studentEmail,
		ClassID:         class.ID,
		ClassName:       class.Name,
		InstructorEmail: class.InstructorEmail,
		Price:           class.Price,
		CreatedAt:       s.now(),
	}
	s.reservations[r.ID] = r
	return &r, nil
}

func (s Reservations) GetByID(_ context.Context, id string) (*model.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.reservations[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &r, nil
}

func (s Reservations) ListByStudent(_ context.Context, studentEmail string) ([]model.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.Reservation
	for _, r := range s.reservations {
		if r.StudentEmail == studentEmail {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s Reservations) Delete(_ context.Context, id string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deleteReservationLocked(id), nil
}

func (s *Store) deleteReservationLocked(id string) int64 {
	if _, ok := s.reservations[id]; !ok {
		return 0
	}
	delete(s.reservations, id)
	return 1
}

// ─── Payments ─────────────────────────────────────────────────────────────────

func (s Payments) Settle(_ context.Context, p model.PaymentRecord) (model.SettlementResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var res model.SettlementResult
	if existing, ok := s.byTxn[p.TransactionID]; ok && p.TransactionID != "" {
		if existing.ReservationID != p.ReservationID || existing.StudentEmail != p.StudentEmail {
			return model.SettlementResult{}, repository.ErrTransactionReused
		}
		res.InsertResult = model.InsertResult{InsertedID: existing.ID}
	} else {
		if p.ID == "" {
			p.ID = uuid.New().String()
		}
		s.payments = append(s.payments, p)
		if p.TransactionID != "" {
			s.byTxn[p.TransactionID] = p
		}
		res.InsertResult = model.InsertResult{InsertedID: p.ID, Inserted: true}
	}
	res.DeleteResult.DeletedCount = s.deleteReservationLocked(p.ReservationID)
	return res, nil
}

func (s Payments) ListByStudent(_ context.Context, studentEmail string) ([]model.PaymentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.PaymentRecord
	for _, p := range s.payments {
		if p.StudentEmail == studentEmail {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].PaidAt.After(out[j].PaidAt) })
	return out, nil
}

// ─── Slider ───────────────────────────────────────────────────────────────────

func (s Slides) List(_ context.Context) ([]model.Slide, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Slide(nil), s.slides...), nil
}
