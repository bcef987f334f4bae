package domain

// User is a row of usuarios.
type User struct {
	ID                int64
	Name              string
	Email             string // unique, compared case-sensitively
	PasswordHash      string // argon2id PHC string
	Phone             string
	UserType          string // free text, e.g. "proprietario" or "inquilino"
	DeletionRequested bool
}

// NewUser carries the fields supplied at registration. The id is assigned by
// the database.
type NewUser struct {
	Name         string
	Email        string
	PasswordHash string
	Phone        string
	UserType     string
}

// ProfileUpdate overwrites the mutable profile fields in one statement.
type ProfileUpdate struct {
	Name         string
	Email        string
	PasswordHash string
	Phone        string
}
