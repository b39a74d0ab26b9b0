package api

import (
	"errors"
	"strings"

	"github.com/aws/aws-lambda-go/events"
)

// Claims is the authenticated principal as supplied by the API Gateway
// Cognito authorizer. The gateway has already verified the token; nothing
// here re-checks signatures.
type Claims struct {
	Sub   string
	Email string
}

var (
	errNoAuthorizer = errors.New("No authorizer context")
	errNoClaims     = errors.New("No claims in authorizer context")
	errNoSubject    = errors.New("No user ID in token claims")
	errNoEmail      = errors.New("No email in token claims")
)

// ExtractClaims pulls the subject id and email out of the authorizer
// context; both must be present. An access token carries no email claim,
// so only id-token authorizers pass. The returned error text is safe to
// surface as the response detail field.
func ExtractClaims(req events.APIGatewayProxyRequest) (Claims, error) {
	auth := req.RequestContext.Authorizer
	if auth == nil {
		return Claims{}, errNoAuthorizer
	}
	raw, ok := auth["claims"].(map[string]any)
	if !ok {
		return Claims{}, errNoClaims
	}
	sub, _ := raw["sub"].(string)
	email, _ := raw["email"].(string)
	if sub == "" {
		return Claims{}, errNoSubject
	}
	if email == "" {
		return Claims{}, errNoEmail
	}
	return Claims{Sub: sub, Email: email}, nil
}

// BearerToken returns the access token from the Authorization header with
// any Bearer prefix stripped, or "" when the header is absent.
func BearerToken(req events.APIGatewayProxyRequest) string {
	h := req.Headers["Authorization"]
	if h == "" {
		h = req.Headers["authorization"]
	}
	h = strings.TrimSpace(h)
	if len(h) >= 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return h
}
