package handlers

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/smithy-go"

	"github.com/Nevelin-W/managment-monorepo/internal/config"
	"github.com/Nevelin-W/managment-monorepo/internal/identity"
	"github.com/Nevelin-W/managment-monorepo/internal/store"
)

func testConfig() *config.Config {
	return &config.Config{
		LogLevel:           "debug",
		Environment:        "prod",
		UserPoolID:         "pool-1",
		UserPoolClientID:   "client-1",
		UsersTable:         "users",
		SubscriptionsTable: "subscriptions",
	}
}

// cogErr fabricates a provider error carrying the given identifier.
func cogErr(code string) error {
	return &smithy.GenericAPIError{Code: code, Message: code}
}

func authedRequest(sub, email, body string) events.APIGatewayProxyRequest {
	return events.APIGatewayProxyRequest{
		Body: body,
		RequestContext: events.APIGatewayProxyRequestContext{
			Authorizer: map[string]interface{}{
				"claims": map[string]interface{}{"sub": sub, "email": email},
			},
		},
	}
}

func decodeBody(t *testing.T, resp events.APIGatewayProxyResponse) map[string]any {
	t.Helper()
	out := map[string]any{}
	if err := json.Unmarshal([]byte(resp.Body), &out); err != nil {
		t.Fatalf("decode response body %q: %v", resp.Body, err)
	}
	return out
}

// fakeIdentity implements identity.Service; unset funcs succeed with zero
// values.
type fakeIdentity struct {
	signUpFunc         func(ctx context.Context, email, password, name string) (string, error)
	autoConfirmFunc    func(ctx context.Context, email string) error
	confirmFunc        func(ctx context.Context, email, code string) error
	resendCodeFunc     func(ctx context.Context, email string) error
	authenticateFunc   func(ctx context.Context, email, password string) (identity.Tokens, error)
	statusFunc         func(ctx context.Context, email string) (identity.AccountStatus, error)
	markVerifiedFunc   func(ctx context.Context, email string) error
	updateNameFunc     func(ctx context.Context, email, name string) error
	changePasswordFunc func(ctx context.Context, accessToken, oldPassword, newPassword string) error

	confirmCalls      int
	autoConfirmCalls  int
	markVerifiedCalls int
	updateNameCalls   int
}

func (f *fakeIdentity) SignUp(ctx context.Context, email, password, name string) (string, error) {
	if f.signUpFunc != nil {
		return f.signUpFunc(ctx, email, password, name)
	}
	return "cognito-sub-1", nil
}

func (f *fakeIdentity) AutoConfirm(ctx context.Context, email string) error {
	f.autoConfirmCalls++
	if f.autoConfirmFunc != nil {
		return f.autoConfirmFunc(ctx, email)
	}
	return nil
}

func (f *fakeIdentity) Confirm(ctx context.Context, email, code string) error {
	f.confirmCalls++
	if f.confirmFunc != nil {
		return f.confirmFunc(ctx, email, code)
	}
	return nil
}

func (f *fakeIdentity) ResendCode(ctx context.Context, email string) error {
	if f.resendCodeFunc != nil {
		return f.resendCodeFunc(ctx, email)
	}
	return nil
}

func (f *fakeIdentity) Authenticate(ctx context.Context, email, password string) (identity.Tokens, error) {
	if f.authenticateFunc != nil {
		return f.authenticateFunc(ctx, email, password)
	}
	return identity.Tokens{Access: "access", ID: "id", Refresh: "refresh"}, nil
}

func (f *fakeIdentity) Status(ctx context.Context, email string) (identity.AccountStatus, error) {
	if f.statusFunc != nil {
		return f.statusFunc(ctx, email)
	}
	return identity.AccountStatus{Confirmed: true, EmailVerified: true}, nil
}

func (f *fakeIdentity) MarkEmailVerified(ctx context.Context, email string) error {
	f.markVerifiedCalls++
	if f.markVerifiedFunc != nil {
		return f.markVerifiedFunc(ctx, email)
	}
	return nil
}

func (f *fakeIdentity) UpdateName(ctx context.Context, email, name string) error {
	f.updateNameCalls++
	if f.updateNameFunc != nil {
		return f.updateNameFunc(ctx, email, name)
	}
	return nil
}

func (f *fakeIdentity) ChangePassword(ctx context.Context, accessToken, oldPassword, newPassword string) error {
	if f.changePasswordFunc != nil {
		return f.changePasswordFunc(ctx, accessToken, oldPassword, newPassword)
	}
	return nil
}

func testUser() *store.User {
	return &store.User{
		ID:            "user-1",
		Email:         "ann@example.com",
		Name:          "Ann",
		CognitoSub:    "cognito-sub-1",
		EmailVerified: true,
		CreatedAt:     "2026-08-01T00:00:00Z",
		UpdatedAt:     "2026-08-01T00:00:00Z",
	}
}

// fakeUsers implements store.Users; unset funcs return the canned user.
type fakeUsers struct {
	getFunc         func(ctx context.Context, email string) (*store.User, error)
	putFunc         func(ctx context.Context, u *store.User) error
	setVerifiedFunc func(ctx context.Context, email string) (*store.User, error)
	updateNameFunc  func(ctx context.Context, email, name string) (*store.User, error)

	putCalls int
	lastPut  *store.User
}

func (f *fakeUsers) Get(ctx context.Context, email string) (*store.User, error) {
	if f.getFunc != nil {
		return f.getFunc(ctx, email)
	}
	return testUser(), nil
}

func (f *fakeUsers) Put(ctx context.Context, u *store.User) error {
	f.putCalls++
	f.lastPut = u
	if f.putFunc != nil {
		return f.putFunc(ctx, u)
	}
	return nil
}

func (f *fakeUsers) SetEmailVerified(ctx context.Context, email string) (*store.User, error) {
	if f.setVerifiedFunc != nil {
		return f.setVerifiedFunc(ctx, email)
	}
	return testUser(), nil
}

func (f *fakeUsers) UpdateName(ctx context.Context, email, name string) (*store.User, error) {
	if f.updateNameFunc != nil {
		return f.updateNameFunc(ctx, email, name)
	}
	u := testUser()
	u.Name = name
	return u, nil
}

func testSubscription() *store.Subscription {
	return &store.Subscription{
		ID:              "sub-1",
		UserID:          "user-1",
		Name:            "Netflix",
		Amount:          9.99,
		BillingCycle:    "monthly",
		NextBillingDate: "2026-09-01",
		IsActive:        true,
		CreatedAt:       "2026-08-01T00:00:00Z",
		UpdatedAt:       "2026-08-01T00:00:00Z",
	}
}

// fakeSubscriptions implements store.Subscriptions.
type fakeSubscriptions struct {
	putFunc            func(ctx context.Context, sub *store.Subscription) error
	getFunc            func(ctx context.Context, id, userID string) (*store.Subscription, error)
	updateFunc         func(ctx context.Context, id, userID string, changes store.SubscriptionUpdate) (*store.Subscription, error)
	deleteFunc         func(ctx context.Context, id, userID string) error
	listFunc           func(ctx context.Context, userID string) ([]store.Subscription, error)
	findByMerchantFunc func(ctx context.Context, userID, merchant string) (*store.Subscription, error)

	deleteCalls int
	updateCalls int
	lastChanges store.SubscriptionUpdate
	lastPut     *store.Subscription
}

func (f *fakeSubscriptions) Put(ctx context.Context, sub *store.Subscription) error {
	f.lastPut = sub
	if f.putFunc != nil {
		return f.putFunc(ctx, sub)
	}
	return nil
}

func (f *fakeSubscriptions) Get(ctx context.Context, id, userID string) (*store.Subscription, error) {
	if f.getFunc != nil {
		return f.getFunc(ctx, id, userID)
	}
	return testSubscription(), nil
}

func (f *fakeSubscriptions) Update(ctx context.Context, id, userID string, changes store.SubscriptionUpdate) (*store.Subscription, error) {
	f.updateCalls++
	f.lastChanges = changes
	if f.updateFunc != nil {
		return f.updateFunc(ctx, id, userID, changes)
	}
	return testSubscription(), nil
}

func (f *fakeSubscriptions) Delete(ctx context.Context, id, userID string) error {
	f.deleteCalls++
	if f.deleteFunc != nil {
		return f.deleteFunc(ctx, id, userID)
	}
	return nil
}

func (f *fakeSubscriptions) ListByUser(ctx context.Context, userID string) ([]store.Subscription, error) {
	if f.listFunc != nil {
		return f.listFunc(ctx, userID)
	}
	return []store.Subscription{*testSubscription()}, nil
}

func (f *fakeSubscriptions) FindByMerchant(ctx context.Context, userID, merchant string) (*store.Subscription, error) {
	if f.findByMerchantFunc != nil {
		return f.findByMerchantFunc(ctx, userID, merchant)
	}
	return nil, store.ErrNotFound
}

// fakeChanges implements store.PriceChanges.
type fakeChanges struct {
	logFunc  func(ctx context.Context, subscriptionID string, oldPrice, newPrice float64) error
	logCalls int
}

func (f *fakeChanges) Log(ctx context.Context, subscriptionID string, oldPrice, newPrice float64) error {
	f.logCalls++
	if f.logFunc != nil {
		return f.logFunc(ctx, subscriptionID, oldPrice, newPrice)
	}
	return nil
}
