// Package apperr translates identity-provider error identifiers into the
// HTTP response contract. The same provider code maps to different statuses
// and messages depending on the flow it occurred in, so the table is keyed
// by (operation, identifier).
package apperr

import (
	"errors"
	"net/http"

	"github.com/aws/smithy-go"
)

// Operation identifies the flow a provider error occurred in.
type Operation string

const (
	Signup         Operation = "signup"
	Confirm        Operation = "confirm"
	ResendCode     Operation = "resend-code"
	Login          Operation = "login"
	ChangePassword Operation = "change-password"
)

// Translation is the user-facing outcome of a provider failure.
type Translation struct {
	Status  int
	Message string
}

var fallback = Translation{Status: http.StatusInternalServerError, Message: "Internal server error"}

// The change-password flow reports every provider failure as a caller
// problem rather than a server fault.
var changePasswordFallback = Translation{Status: http.StatusBadRequest, Message: "Failed to change password"}

var table = map[Operation]map[string]Translation{
	Signup: {
		"UsernameExistsException":  {http.StatusConflict, "User already exists"},
		"InvalidPasswordException": {http.StatusBadRequest, "Password does not meet requirements"},
	},
	Confirm: {
		"CodeMismatchException":  {http.StatusBadRequest, "Invalid verification code"},
		"ExpiredCodeException":   {http.StatusBadRequest, "Verification code has expired. Please request a new code."},
		"UserNotFoundException":  {http.StatusNotFound, "User not found"},
		"LimitExceededException": {http.StatusTooManyRequests, "Too many attempts. Please try again later."},
	},
	Login: {
		// Identical message for bad password and unknown user so the
		// response never leaks which field was wrong.
		"NotAuthorizedException":    {http.StatusUnauthorized, "Incorrect email or password"},
		"UserNotFoundException":     {http.StatusUnauthorized, "Incorrect email or password"},
		"UserNotConfirmedException": {http.StatusForbidden, "Email not verified. Please check your inbox for the verification code."},
	},
	ResendCode: {
		"UserNotFoundException":     {http.StatusNotFound, "User not found"},
		"InvalidParameterException": {http.StatusBadRequest, "User is already confirmed"},
		"LimitExceededException":    {http.StatusTooManyRequests, "Too many requests. Please try again later"},
	},
	ChangePassword: {
		"NotAuthorizedException":    {http.StatusBadRequest, "Current password is incorrect"},
		"InvalidPasswordException":  {http.StatusBadRequest, "New password does not meet requirements"},
		"LimitExceededException":    {http.StatusBadRequest, "Too many attempts. Please try again later"},
		"InvalidParameterException": {http.StatusBadRequest, "Invalid password format"},
	},
}

// Code extracts the provider error identifier from err, or "" when err did
// not originate from an AWS service call.
func Code(err error) string {
	var ae smithy.APIError
	if errors.As(err, &ae) {
		return ae.ErrorCode()
	}
	return ""
}

// Translate maps a provider error identifier to the response for op.
// Unmapped identifiers fall back to a generic 500, except in the
// change-password flow which reports 400 for everything.
func Translate(op Operation, code string) Translation {
	if t, ok := table[op][code]; ok {
		return t
	}
	if op == ChangePassword {
		return changePasswordFallback
	}
	return fallback
}
