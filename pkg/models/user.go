package models

import "time"

type User struct {
	ID           string     `bson:"_id,omitempty" json:"id,omitempty"`
	UserID       string     `bson:"userId" json:"userId"`
	Email        string     `bson:"email" json:"email"`
	DisplayName  string     `bson:"displayName" json:"displayName"`
	PhoneNumbers []string   `bson:"phoneNumbers" json:"phoneNumbers"`
	CreatedAt    *time.Time `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
}

type CreateUserRequest struct {
	UserID       string   `json:"userId"`
	Email        string   `json:"email"`
	DisplayName  string   `json:"displayName"`
	PhoneNumbers []string `json:"phoneNumbers"`
}

func (r *CreateUserRequest) Validate() error {
	if r.UserID == "" {
		return &MissingFieldError{Field: "userId"}
	}
	return nil
}

func (r *CreateUserRequest) User() *User {
	user := &User{
		UserID:       r.UserID,
		Email:        r.Email,
		DisplayName:  r.DisplayName,
		PhoneNumbers: r.PhoneNumbers,
	}
	if user.PhoneNumbers == nil {
		user.PhoneNumbers = []string{}
	}
	return user
}
