package models

// User is a registered account.
//
// The email is the unique key. The password is held only as a one-way bcrypt
// digest; the clear text never reaches the data model.
type User struct {
	email        string
	passwordHash string
}

// NewUser creates a User from an email and an already-computed password digest.
func NewUser(email, passwordHash string) User {
	return User{email: email, passwordHash: passwordHash}
}

// Email returns the account's unique email.
func (u User) Email() string { return u.email }

// PasswordHash returns the stored bcrypt digest.
func (u User) PasswordHash() string { return u.passwordHash }
