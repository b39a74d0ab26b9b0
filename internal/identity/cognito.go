// Package identity adapts the Cognito user pool API to the narrow surface
// the handlers need. Provider errors pass through untranslated; the
// handlers map them per flow.
package identity

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	cognito "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
)

// CognitoAPI is the subset of the Cognito client used by this adapter.
type CognitoAPI interface {
	SignUp(ctx context.Context, params *cognito.SignUpInput, optFns ...func(*cognito.Options)) (*cognito.SignUpOutput, error)
	ConfirmSignUp(ctx context.Context, params *cognito.ConfirmSignUpInput, optFns ...func(*cognito.Options)) (*cognito.ConfirmSignUpOutput, error)
	ResendConfirmationCode(ctx context.Context, params *cognito.ResendConfirmationCodeInput, optFns ...func(*cognito.Options)) (*cognito.ResendConfirmationCodeOutput, error)
	InitiateAuth(ctx context.Context, params *cognito.InitiateAuthInput, optFns ...func(*cognito.Options)) (*cognito.InitiateAuthOutput, error)
	AdminGetUser(ctx context.Context, params *cognito.AdminGetUserInput, optFns ...func(*cognito.Options)) (*cognito.AdminGetUserOutput, error)
	AdminConfirmSignUp(ctx context.Context, params *cognito.AdminConfirmSignUpInput, optFns ...func(*cognito.Options)) (*cognito.AdminConfirmSignUpOutput, error)
	AdminUpdateUserAttributes(ctx context.Context, params *cognito.AdminUpdateUserAttributesInput, optFns ...func(*cognito.Options)) (*cognito.AdminUpdateUserAttributesOutput, error)
	ChangePassword(ctx context.Context, params *cognito.ChangePasswordInput, optFns ...func(*cognito.Options)) (*cognito.ChangePasswordOutput, error)
}

// Service is the identity-provider surface the handlers consume. Tests
// substitute a fake.
type Service interface {
	SignUp(ctx context.Context, email, password, name string) (string, error)
	AutoConfirm(ctx context.Context, email string) error
	Confirm(ctx context.Context, email, code string) error
	ResendCode(ctx context.Context, email string) error
	Authenticate(ctx context.Context, email, password string) (Tokens, error)
	Status(ctx context.Context, email string) (AccountStatus, error)
	MarkEmailVerified(ctx context.Context, email string) error
	UpdateName(ctx context.Context, email, name string) error
	ChangePassword(ctx context.Context, accessToken, oldPassword, newPassword string) error
}

// Tokens is the credential bundle issued on a successful login.
type Tokens struct {
	Access  string
	ID      string
	Refresh string
}

// AccountStatus reports the provider-side confirmation state for a user.
type AccountStatus struct {
	Confirmed     bool
	EmailVerified bool
}

// ErrNoCredentials is returned when the provider accepts an auth attempt
// but issues no token bundle (e.g. a challenge flow we do not support).
var ErrNoCredentials = errors.New("authentication produced no credentials")

type Client struct {
	api        CognitoAPI
	userPoolID string
	clientID   string
}

func NewClient(api CognitoAPI, userPoolID, clientID string) *Client {
	return &Client{api: api, userPoolID: userPoolID, clientID: clientID}
}

// SignUp creates the account and returns the provider subject id.
func (c *Client) SignUp(ctx context.Context, email, password, name string) (string, error) {
	out, err := c.api.SignUp(ctx, &cognito.SignUpInput{
		ClientId: aws.String(c.clientID),
		Username: aws.String(email),
		Password: aws.String(password),
		UserAttributes: []types.AttributeType{
			{Name: aws.String("email"), Value: aws.String(email)},
			{Name: aws.String("name"), Value: aws.String(name)},
		},
	})
	if err != nil {
		return "", err
	}
	return aws.ToString(out.UserSub), nil
}

// AutoConfirm confirms an account administratively, skipping the emailed
// code. Used outside production only.
func (c *Client) AutoConfirm(ctx context.Context, email string) error {
	_, err := c.api.AdminConfirmSignUp(ctx, &cognito.AdminConfirmSignUpInput{
		UserPoolId: aws.String(c.userPoolID),
		Username:   aws.String(email),
	})
	return err
}

func (c *Client) Confirm(ctx context.Context, email, code string) error {
	_, err := c.api.ConfirmSignUp(ctx, &cognito.ConfirmSignUpInput{
		ClientId:         aws.String(c.clientID),
		Username:         aws.String(email),
		ConfirmationCode: aws.String(code),
	})
	return err
}

func (c *Client) ResendCode(ctx context.Context, email string) error {
	_, err := c.api.ResendConfirmationCode(ctx, &cognito.ResendConfirmationCodeInput{
		ClientId: aws.String(c.clientID),
		Username: aws.String(email),
	})
	return err
}

func (c *Client) Authenticate(ctx context.Context, email, password string) (Tokens, error) {
	out, err := c.api.InitiateAuth(ctx, &cognito.InitiateAuthInput{
		AuthFlow: types.AuthFlowTypeUserPasswordAuth,
		ClientId: aws.String(c.clientID),
		AuthParameters: map[string]string{
			"USERNAME": email,
			"PASSWORD": password,
		},
	})
	if err != nil {
		return Tokens{}, err
	}
	r := out.AuthenticationResult
	if r == nil {
		return Tokens{}, ErrNoCredentials
	}
	return Tokens{
		Access:  aws.ToString(r.AccessToken),
		ID:      aws.ToString(r.IdToken),
		Refresh: aws.ToString(r.RefreshToken),
	}, nil
}

func (c *Client) Status(ctx context.Context, email string) (AccountStatus, error) {
	out, err := c.api.AdminGetUser(ctx, &cognito.AdminGetUserInput{
		UserPoolId: aws.String(c.userPoolID),
		Username:   aws.String(email),
	})
	if err != nil {
		return AccountStatus{}, err
	}
	st := AccountStatus{Confirmed: out.UserStatus == types.UserStatusTypeConfirmed}
	for _, a := range out.UserAttributes {
		if aws.ToString(a.Name) == "email_verified" && aws.ToString(a.Value) == "true" {
			st.EmailVerified = true
		}
	}
	return st, nil
}

// MarkEmailVerified forces the email_verified attribute to true. The
// confirmation flow calls this unconditionally after a confirm succeeds or
// turns out to be redundant.
func (c *Client) MarkEmailVerified(ctx context.Context, email string) error {
	return c.updateAttribute(ctx, email, "email_verified", "true")
}

// UpdateName mirrors a display-name change into the user pool.
func (c *Client) UpdateName(ctx context.Context, email, name string) error {
	return c.updateAttribute(ctx, email, "name", name)
}

func (c *Client) updateAttribute(ctx context.Context, email, name, value string) error {
	_, err := c.api.AdminUpdateUserAttributes(ctx, &cognito.AdminUpdateUserAttributesInput{
		UserPoolId: aws.String(c.userPoolID),
		Username:   aws.String(email),
		UserAttributes: []types.AttributeType{
			{Name: aws.String(name), Value: aws.String(value)},
		},
	})
	return err
}

func (c *Client) ChangePassword(ctx context.Context, accessToken, oldPassword, newPassword string) error {
	_, err := c.api.ChangePassword(ctx, &cognito.ChangePasswordInput{
		AccessToken:      aws.String(accessToken),
		PreviousPassword: aws.String(oldPassword),
		ProposedPassword: aws.String(newPassword),
	})
	return err
}
