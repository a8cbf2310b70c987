package identity

import "time"

// User is a stored credential record. PasswordHash holds the bcrypt digest;
// the plaintext password never reaches this package.
type User struct {
	ID           string
	FullName     string
	Email        string
	Mobile       string
	DOB          string
	PasswordHash []byte
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
