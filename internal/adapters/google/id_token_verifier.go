package google

import (
	"context"
	"errors"
	"fmt"

	portssvc "github.com/SscSPs/gym_management_app/internal/core/ports/services"
	"google.golang.org/api/idtoken"
)

// validateFunc matches idtoken.Validate.
type validateFunc func(ctx context.Context, idToken, audience string) (*idtoken.Payload, error)

// IDTokenVerifier validates Google ID tokens issued for a single OAuth client.
type IDTokenVerifier struct {
	clientID string
	validate validateFunc
}

var _ portssvc.IDTokenVerifier = (*IDTokenVerifier)(nil)

// NewIDTokenVerifier returns nil when clientID is empty so Google sign-in stays disabled.
func NewIDTokenVerifier(clientID string) portssvc.IDTokenVerifier {
	if clientID == "" {
		return nil
	}
	return &IDTokenVerifier{clientID: clientID, validate: idtoken.Validate}
}

// VerifyEmail validates the token and returns its verified e-mail claim.
func (v *IDTokenVerifier) VerifyEmail(ctx context.Context, idToken string) (string, error) {
	payload, err := v.validate(ctx, idToken, v.clientID)
	if err != nil {
		return "", fmt.Errorf("google ID token validation failed: %w", err)
	}

	email, _ := payload.Claims["email"].(string)
	if email == "" {
		return "", errors.New("google ID token has no email claim")
	}
	if verified, ok := payload.Claims["email_verified"].(bool); ok && !verified {
		return "", fmt.Errorf("google e-mail %s is not verified", email)
	}
	return email, nil
}
