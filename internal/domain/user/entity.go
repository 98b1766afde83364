package user

import "time"

// Gender is the self-reported gender of a user.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// User represents an identity record. IDs are caller-generated and unique
// within the user collection. JSON field names are the persisted contract of
// the users/users.json blob and must not change.
type User struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	ChineseName string    `json:"chineseName"`
	Gender      Gender    `json:"gender"`
	DateOfBirth string    `json:"dateOfBirth"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phoneNumber"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
