package handlers

import (
	"context"
	"testing"

	"github.com/aws/aws-lambda-go/events"

	"github.com/Nevelin-W/managment-monorepo/internal/identity"
	"github.com/Nevelin-W/managment-monorepo/internal/store"
)

func confirmRequestBody() events.APIGatewayProxyRequest {
	return events.APIGatewayProxyRequest{
		Body: `{"email":"ann@example.com","code":"123456"}`,
	}
}

func unconfirmedIdentity() *fakeIdentity {
	return &fakeIdentity{
		statusFunc: func(ctx context.Context, email string) (identity.AccountStatus, error) {
			return identity.AccountStatus{Confirmed: false}, nil
		},
	}
}

func TestConfirmSignup(t *testing.T) {
	id := unconfirmedIdentity()
	h := &ConfirmSignupHandler{Config: testConfig(), Identity: id, Users: &fakeUsers{}}

	resp, err := h.Handle(context.Background(), confirmRequestBody())
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d, want 200: %s", resp.StatusCode, resp.Body)
	}
	if id.confirmCalls != 1 {
		t.Errorf("confirmCalls = %d, want 1", id.confirmCalls)
	}
	if id.markVerifiedCalls != 1 {
		t.Errorf("markVerifiedCalls = %d, want 1", id.markVerifiedCalls)
	}
	body := decodeBody(t, resp)
	if body["message"] != confirmedMessage {
		t.Errorf("message = %q", body["message"])
	}
	user, ok := body["user"].(map[string]any)
	if !ok {
		t.Fatalf("missing user object in %s", resp.Body)
	}
	if user["emailVerified"] != true {
		t.Errorf("user.emailVerified = %v", user["emailVerified"])
	}
}

// Confirming an account that is already confirmed skips the code check but
// still reports success.
func TestConfirmSignupAlreadyConfirmed(t *testing.T) {
	id := &fakeIdentity{}
	h := &ConfirmSignupHandler{Config: testConfig(), Identity: id, Users: &fakeUsers{}}

	resp, err := h.Handle(context.Background(), confirmRequestBody())
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if id.confirmCalls != 0 {
		t.Errorf("confirmCalls = %d, want 0", id.confirmCalls)
	}
	if id.markVerifiedCalls != 1 {
		t.Errorf("markVerifiedCalls = %d, want 1", id.markVerifiedCalls)
	}
}

// The account may be confirmed between the status probe and the confirm
// call; the provider then rejects the code but the outcome is still success.
func TestConfirmSignupRacesWithConfirmation(t *testing.T) {
	id := unconfirmedIdentity()
	id.confirmFunc = func(ctx context.Context, email, code string) error {
		return cogErr("NotAuthorizedException")
	}
	h := &ConfirmSignupHandler{Config: testConfig(), Identity: id, Users: &fakeUsers{}}

	resp, err := h.Handle(context.Background(), confirmRequestBody())
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d, want 200: %s", resp.StatusCode, resp.Body)
	}
	if id.markVerifiedCalls != 1 {
		t.Errorf("markVerifiedCalls = %d, want 1", id.markVerifiedCalls)
	}
}

func TestConfirmSignupBadCode(t *testing.T) {
	id := unconfirmedIdentity()
	id.confirmFunc = func(ctx context.Context, email, code string) error {
		return cogErr("CodeMismatchException")
	}
	h := &ConfirmSignupHandler{Config: testConfig(), Identity: id, Users: &fakeUsers{}}

	resp, err := h.Handle(context.Background(), confirmRequestBody())
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if resp.StatusCode != 400 {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if body := decodeBody(t, resp); body["error"] != "Invalid verification code" {
		t.Errorf("error = %q", body["error"])
	}
	if id.markVerifiedCalls != 0 {
		t.Errorf("marked email verified after a rejected code")
	}
}

// A missing profile record is not an error once the provider confirmed the
// account; the response just omits the profile fields.
func TestConfirmSignupMissingProfileRecord(t *testing.T) {
	users := &fakeUsers{
		setVerifiedFunc: func(ctx context.Context, email string) (*store.User, error) {
			return nil, store.ErrNotFound
		},
	}
	h := &ConfirmSignupHandler{Config: testConfig(), Identity: unconfirmedIdentity(), Users: users}

	resp, err := h.Handle(context.Background(), confirmRequestBody())
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d, want 200: %s", resp.StatusCode, resp.Body)
	}
	body := decodeBody(t, resp)
	if body["email"] != "ann@example.com" || body["emailVerified"] != true {
		t.Errorf("fallback body = %s", resp.Body)
	}
	if _, ok := body["user"]; ok {
		t.Errorf("unexpected user object in fallback body")
	}
}

func TestConfirmSignupMissingCode(t *testing.T) {
	h := &ConfirmSignupHandler{Config: testConfig(), Identity: &fakeIdentity{}, Users: &fakeUsers{}}

	resp, err := h.Handle(context.Background(), events.APIGatewayProxyRequest{Body: `{"email":"ann@example.com"}`})
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if resp.StatusCode != 400 {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if body := decodeBody(t, resp); body["error"] != "Email and verification code are required" {
		t.Errorf("error = %q", body["error"])
	}
}
