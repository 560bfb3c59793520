package domain

import "time"

type User struct {
	ID           int64
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string
	CreatedAt    time.Time
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
