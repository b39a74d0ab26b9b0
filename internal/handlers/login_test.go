package handlers

import (
	"context"
	"testing"

	"github.com/aws/aws-lambda-go/events"

	"github.com/Nevelin-W/managment-monorepo/internal/identity"
)

func loginRequestBody() events.APIGatewayProxyRequest {
	return events.APIGatewayProxyRequest{
		Body: `{"email":"ann@example.com","password":"Passw0rd!"}`,
	}
}

func TestLoginReturnsTokens(t *testing.T) {
	h := &LoginHandler{Config: testConfig(), Identity: &fakeIdentity{}, Users: &fakeUsers{}}

	resp, err := h.Handle(context.Background(), loginRequestBody())
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d, want 200: %s", resp.StatusCode, resp.Body)
	}
	body := decodeBody(t, resp)
	if body["token"] != "access" || body["idToken"] != "id" || body["refreshToken"] != "refresh" {
		t.Errorf("tokens = %v %v %v", body["token"], body["idToken"], body["refreshToken"])
	}
	if body["email"] != "ann@example.com" || body["emailVerified"] != true {
		t.Errorf("profile fields = %v %v", body["email"], body["emailVerified"])
	}
}

func TestLoginUnverifiedAccount(t *testing.T) {
	id := &fakeIdentity{
		statusFunc: func(ctx context.Context, email string) (identity.AccountStatus, error) {
			return identity.AccountStatus{Confirmed: false, EmailVerified: false}, nil
		},
	}
	h := &LoginHandler{Config: testConfig(), Identity: id, Users: &fakeUsers{}}

	resp, err := h.Handle(context.Background(), loginRequestBody())
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if resp.StatusCode != 403 {
		t.Fatalf("status = %d, want 403", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["error"] != "Email not verified" {
		t.Errorf("error = %q", body["error"])
	}
	if body["message"] != "Please verify your email before logging in. Check your inbox for the verification code." {
		t.Errorf("message = %q", body["message"])
	}
}

// A wrong password and an unknown email must be indistinguishable.
func TestLoginBadCredentialsUniformResponse(t *testing.T) {
	cases := map[string]*fakeIdentity{
		"wrong password": {
			authenticateFunc: func(ctx context.Context, email, password string) (identity.Tokens, error) {
				return identity.Tokens{}, cogErr("NotAuthorizedException")
			},
		},
		"unknown email": {
			statusFunc: func(ctx context.Context, email string) (identity.AccountStatus, error) {
				return identity.AccountStatus{}, cogErr("UserNotFoundException")
			},
		},
	}

	for name, id := range cases {
		t.Run(name, func(t *testing.T) {
			h := &LoginHandler{Config: testConfig(), Identity: id, Users: &fakeUsers{}}
			resp, err := h.Handle(context.Background(), loginRequestBody())
			if err != nil {
				t.Fatalf("handle: %v", err)
			}
			if resp.StatusCode != 401 {
				t.Fatalf("status = %d, want 401", resp.StatusCode)
			}
			if body := decodeBody(t, resp); body["error"] != "Incorrect email or password" {
				t.Errorf("error = %q", body["error"])
			}
		})
	}
}

func TestLoginNoCredentialsIssued(t *testing.T) {
	id := &fakeIdentity{
		authenticateFunc: func(ctx context.Context, email, password string) (identity.Tokens, error) {
			return identity.Tokens{}, identity.ErrNoCredentials
		},
	}
	h := &LoginHandler{Config: testConfig(), Identity: id, Users: &fakeUsers{}}

	resp, err := h.Handle(context.Background(), loginRequestBody())
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if resp.StatusCode != 401 {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
	if body := decodeBody(t, resp); body["error"] != "Authentication failed" {
		t.Errorf("error = %q", body["error"])
	}
}

func TestLoginMissingFields(t *testing.T) {
	h := &LoginHandler{Config: testConfig(), Identity: &fakeIdentity{}, Users: &fakeUsers{}}

	resp, err := h.Handle(context.Background(), events.APIGatewayProxyRequest{Body: `{"email":"ann@example.com"}`})
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if resp.StatusCode != 400 {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if body := decodeBody(t, resp); body["error"] != "Email and password are required" {
		t.Errorf("error = %q", body["error"])
	}
}
