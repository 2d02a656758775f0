package models

import "time"

// Purpose tags which flow issued an outstanding one-time code.
// Challenges are keyed by (address, purpose), so flows cannot clobber each other.
type Purpose string

const (
	PurposeRegistration  Purpose = "registration"
	PurposeLogin2FA      Purpose = "login_2fa"
	PurposePasswordReset Purpose = "password_reset"
	PurposeStepUp        Purpose = "step_up"
)

func (p Purpose) Valid() bool {
	switch p {
	case PurposeRegistration, PurposeLogin2FA, PurposePasswordReset, PurposeStepUp:
		return true
	}
	return false
}

// Challenge is one outstanding one-time code. Only the bcrypt hash of the
// code is stored; re-issuing for the same (address, purpose) overwrites.
type Challenge struct {
	Address   string    `json:"address"`
	Purpose   Purpose   `json:"purpose"`
	CodeHash  string    `json:"-"`
	SentAt    time.Time `json:"sent_at"`
	ExpiresAt time.Time `json:"expires_at"`
	Attempts  int       `json:"attempts"`
}
