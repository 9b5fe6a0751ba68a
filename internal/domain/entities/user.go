package entities

import "time"

// User is a registered patient account. PasswordHash is a bcrypt hash and is
// never serialized.
type User struct {
	ID           string  `json:"id"`
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	Email        string  `json:"email"`
	Phone        string  `json:"phone"` // E.164
	Country      string  `json:"country,omitempty"`
	Province     string  `json:"province,omitempty"`
	City         string  `json:"city,omitempty"`
	Birthdate    string  `json:"birthdate,omitempty"` // YYYY-MM-DD
	WalletUSD    float64 `json:"wallet_usd"`
	PasswordHash string  `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FullName joins the first and last name for display.
func (u *User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// Session is an authenticated login session backed by a signed token.
type Session struct {
	Token     string    `json:"token"`
	User      User      `json:"user"`
	ExpiresAt time.Time `json:"expires_at"`
}
