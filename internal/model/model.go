// Package model defines the core domain types for the sports academy booking system.
package model

import "time"

// Identity is a user profile keyed by email. The role is only changed by an
// admin; profile upserts leave it untouched.
type Identity struct {
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	PhotoURL  string    `json:"photoUrl"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ClassStatus is the approval state of a class offering.
type ClassStatus string

const (
	ClassPending  ClassStatus = "pending"
	ClassApproved ClassStatus = "approved"
	ClassDenied   ClassStatus = "denied"
)

// CanTransition reports whether an admin may move a class from s to next.
func (s ClassStatus) CanTransition(next ClassStatus) bool {
	switch s {
	case ClassPending:
		return next == ClassApproved || next == ClassDenied
	case ClassApproved:
		return next == ClassDenied
	case ClassDenied:
		return next == ClassApproved
	default:
		return false
	}
}

// ClassOffering is a class an instructor offers to students.
type ClassOffering struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	ImageURL        string      `json:"imageUrl"`
	InstructorEmail string      `json:"instructorEmail"`
	InstructorName  string      `json:"instructorName"`
	Price           float64     `json:"price"`
	AvailableSeats  int         `json:"availableSeats"`
	Status          ClassStatus `json:"status"`
	Feedback        string      `json:"feedback,omitempty"`
	CreatedAt       time.Time   `json:"createdAt"`
}

// Reservation is a student's held, unpaid selection of a class.
type Reservation struct {
	ID              string    `json:"id"`
	StudentEmail    string    `json:"studentEmail"`
	ClassID         string    `json:"classId"`
	ClassName       string    `json:"className"`
	InstructorEmail string    `json:"instructorEmail"`
	Price           float64   `json:"price"`
	CreatedAt       time.Time `json:"createdAt"`
}

// PaymentRecord is the append-only receipt of a settled reservation.
type PaymentRecord struct {
	ID            string    `json:"id"`
	StudentEmail  string    `json:"studentEmail"`
	ReservationID string    `json:"bookmarkedId"`
	ClassID       string    `json:"classId,omitempty"`
	ClassName     string    `json:"className,omitempty"`
	Amount        float64   `json:"amount"`
	TransactionID string    `json:"transactionId,omitempty"`
	PaidAt        time.Time `json:"date"`
}

// Slide is one entry of the marketing slider.
type Slide struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	ImageURL string `json:"imageUrl"`
	Position int    `json:"position"`
}

// InsertResult reports the payment half of a settlement.
type InsertResult struct {
	InsertedID string `json:"insertedId"`
	Inserted   bool   `json:"inserted"`
}

// DeleteResult reports a reservation removal.
type DeleteResult struct {
	DeletedCount int64 `json:"deletedCount"`
}

// SettlementResult carries both outcomes of a settlement.
type SettlementResult struct {
	InsertResult InsertResult `json:"insertResult"`
	DeleteResult DeleteResult `json:"deleteResult"`
}

// ErrorResponse is a standard JSON error envelope.
type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}
