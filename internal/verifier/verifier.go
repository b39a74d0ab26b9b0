// Package verifier checks whether a signup email address is worth sending
// a confirmation code to. The check is best effort: transport failures are
// logged by the caller and never block a signup.
package verifier

import "context"

// Result is the outcome of a deliverability check.
type Result struct {
	Score   float32 `json:"score"`
	IsValid bool    `json:"valid"`
	Raw     string  `json:"raw"`
}

type EmailVerifier interface {
	VerifyEmail(ctx context.Context, email string) (*Result, error)
}
