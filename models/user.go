package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email          string             `bson:"email" json:"email"`
	Password       string             `bson:"password" json:"-"`
	FirstName      string             `bson:"firstName" json:"firstName"`
	LastName       string             `bson:"lastName" json:"lastName"`
	Birthday       string             `bson:"birthday,omitempty" json:"birthday,omitempty"`
	Country        string             `bson:"country,omitempty" json:"country,omitempty"`
	Bio            string             `bson:"bio,omitempty" json:"bio,omitempty"`
	ProfilePicture string             `bson:"profilePicture,omitempty" json:"profilePicture,omitempty"`
	Following      []string           `bson:"following" json:"following"`
	IsModerator    bool               `bson:"isModerator" json:"isModerator"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
}

// Follows reports whether the user follows targetID.
func (u *User) Follows(targetID string) bool {
	for _, id := range u.Following {
		if id == targetID {
			return true
		}
	}
	return false
}

// ValidateUser returns the list of violated fields for a signup request.
func ValidateUser(u *User) []string {
	errorList := []string{}
	if u.Email == "" {
		errorList = append(errorList, "email is a required field")
	} else if !strings.Contains(u.Email, "@") || strings.HasPrefix(u.Email, "@") || strings.HasSuffix(u.Email, "@") {
		errorList = append(errorList, "email must be a valid address")
	}
	if len(u.Password) < 6 {
		errorList = append(errorList, "password must be at least 6 characters")
	}
	if strings.TrimSpace(u.FirstName) == "" {
		errorList = append(errorList, "firstName is a required field")
	}
	if strings.TrimSpace(u.LastName) == "" {
		errorList = append(errorList, "lastName is a required field")
	}
	return errorList
}
