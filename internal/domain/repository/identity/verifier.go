package identity

import "context"

// Verifier answers ownership questions against the identity service.
type Verifier interface {
	// OwnsCandidate reports whether the user owns or has delegated
	// authority over the candidate profile.
	OwnsCandidate(ctx context.Context, userID, candidateID string) (bool, error)
}
