package domain

import "time"

// Account is the authentication record behind a user. It is separate from
// UserProfile: the account exists from sign-up, the profile only after
// onboarding completes.
type Account struct {
	ID           string     `bson:"_id" json:"id"`
	Email        string     `bson:"email" json:"email"` // unique
	PasswordHash string     `bson:"passwordHash" json:"-"`
	ConfirmedAt  *time.Time `bson:"confirmedAt,omitempty" json:"confirmedAt,omitempty"`
	ConfirmToken string     `bson:"confirmToken,omitempty" json:"-"`
	CreatedAt    time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time  `bson:"updatedAt" json:"updatedAt"`
}

// Confirmed reports whether the account's email address has been confirmed.
func (a *Account) Confirmed() bool {
	return a.ConfirmedAt != nil
}
