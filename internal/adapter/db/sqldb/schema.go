package sqldb

import (
	"time"

	eventdomain "event-registry-service/internal/domain/event"
	userdomain "event-registry-service/internal/domain/user"
)

// UserSchema represents the database schema for the users table. Rows are
// keyed by the caller-generated entity id directly, so per-entity writes
// replace the whole-collection read-modify-write cycle of the blob backend.
type UserSchema struct {
	ID          string    `gorm:"primaryKey;size:64"`
	Name        string    `gorm:"not null"`
	ChineseName string    ``
	Gender      string    `gorm:"size:16"`
	DateOfBirth string    `gorm:"size:10"`
	Email       string    `gorm:"not null"`
	PhoneNumber string    `gorm:"size:32"`
	CreatedAt   time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime:false"`
}

// TableName specifies the table name for the UserSchema model.
func (UserSchema) TableName() string {
	return "users"
}

func userToSchema(u *userdomain.User) UserSchema {
	return UserSchema{
		ID:          u.ID,
		Name:        u.Name,
		ChineseName: u.ChineseName,
		Gender:      string(u.Gender),
		DateOfBirth: u.DateOfBirth,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func schemaToUser(m UserSchema) userdomain.User {
	return userdomain.User{
		ID:          m.ID,
		Name:        m.Name,
		ChineseName: m.ChineseName,
		Gender:      userdomain.Gender(m.Gender),
		DateOfBirth: m.DateOfBirth,
		Email:       m.Email,
		PhoneNumber: m.PhoneNumber,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// EventSchema represents the database schema for the events table. The
// participant roster stays an embedded JSON document: participants are
// value objects of the event, not rows of their own.
type EventSchema struct {
	ID            string                    `gorm:"primaryKey;size:64"`
	Name          string                    `gorm:"not null"`
	Description   string                    ``
	Fee           float64                   `gorm:"not null"`
	StartDateTime time.Time                 `gorm:"not null"`
	EndDateTime   time.Time                 `gorm:"not null"`
	Participants  []eventdomain.Participant `gorm:"serializer:json"`
	CreatedAt     time.Time                 `gorm:"autoCreateTime:false"`
	UpdatedAt     time.Time                 `gorm:"autoUpdateTime:false"`
}

// TableName specifies the table name for the EventSchema model.
func (EventSchema) TableName() string {
	return "events"
}

func eventToSchema(e *eventdomain.Event) EventSchema {
	return EventSchema{
		ID:            e.ID,
		Name:          e.Name,
		Description:   e.Description,
		Fee:           e.Fee,
		StartDateTime: e.StartDateTime,
		EndDateTime:   e.EndDateTime,
		Participants:  e.Participants,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

func schemaToEvent(m EventSchema) eventdomain.Event {
	participants := m.Participants
	if participants == nil {
		participants = []eventdomain.Participant{}
	}
	return eventdomain.Event{
		ID:            m.ID,
		Name:          m.Name,
		Description:   m.Description,
		Fee:           m.Fee,
		StartDateTime: m.StartDateTime,
		EndDateTime:   m.EndDateTime,
		Participants:  participants,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
