package event

import (
	"time"

	"event-registry-service/internal/domain/user"
)

// PaymentStatus tracks whether a participant has paid the event fee.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

// Event represents a registrable event with a participant roster.
// IDs are unique within the event collection; StartDateTime is strictly
// before EndDateTime. JSON field names are the persisted contract of the
// events/events.json blob and must not change.
type Event struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Description   string        `json:"description"`
	Fee           float64       `json:"fee"`
	StartDateTime time.Time     `json:"startDateTime"`
	EndDateTime   time.Time     `json:"endDateTime"`
	Participants  []Participant `json:"participants"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// Participant is an embedded roster entry, not a stored entity of its own.
// User holds a denormalized snapshot of the user record taken when the
// participant joined; later edits to the user do not propagate here.
type Participant struct {
	UserID        string        `json:"userId"`
	User          user.User     `json:"user"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
	JoinedAt      time.Time     `json:"joinedAt"`
}

// FindParticipant returns the index of the roster entry for userID, or -1.
func (e *Event) FindParticipant(userID string) int {
	for i, p := range e.Participants {
		if p.UserID == userID {
			return i
		}
	}
	return -1
}
