package domain

import "time"

// VerificationTTL bounds how long a signup may sit unverified. The literal
// in the verification email copy is derived from this same constant.
const VerificationTTL = 24 * time.Hour

// LoginTokenTTL bounds the one-shot auto-login token minted after a
// successful verification.
const LoginTokenTTL = 10 * time.Minute

// PendingVerification is a signup awaiting confirmation via emailed token.
// It lives only in process memory; the durable user record is written when
// the token is consumed.
type PendingVerification struct {
	Token        string
	Email        string // case-normalized
	PasswordHash string
	Name         string
	CreatedAt    time.Time
}

// PendingLogin is a one-shot record consumed by the auto-login script on the
// verification page.
type PendingLogin struct {
	Token        string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// SignupRequest is the payload for POST /api/auth/signup.
type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Name     string `json:"name" validate:"required"`
}
