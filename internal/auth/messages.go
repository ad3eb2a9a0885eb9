package auth

import "errors"

// Provider error codes, as clients know them.
const (
	CodeEmailInUse        = "auth/email-already-in-use"
	CodeInvalidEmail      = "auth/invalid-email"
	CodeOperationNotAllow = "auth/operation-not-allowed"
	CodeWeakPassword      = "auth/weak-password"
	CodeUserDisabled      = "auth/user-disabled"
	CodeUserNotFound      = "auth/user-not-found"
	CodeWrongPassword     = "auth/wrong-password"
	CodeTooManyRequests   = "auth/too-many-requests"
	CodePopupClosed       = "auth/popup-closed-by-user"
	CodeNetworkFailed     = "auth/network-request-failed"
	CodeInvalidToken      = "auth/invalid-id-token"
	defaultMessage        = "An error occurred. Please try again."
	invalidSessionMessage = "Your session has expired. Please sign in again."
)

var messages = map[string]string{
	CodeEmailInUse:        "This email is already registered. Try signing in instead.",
	CodeInvalidEmail:      "Please enter a valid email address.",
	CodeOperationNotAllow: "Email/password accounts are not enabled.",
	CodeWeakPassword:      "Password should be at least 6 characters.",
	CodeUserDisabled:      "This account has been disabled.",
	CodeUserNotFound:      "No account found with this email.",
	CodeWrongPassword:     "Incorrect password. Please try again.",
	CodeTooManyRequests:   "Too many failed attempts. Please try again later.",
	CodePopupClosed:       "Sign-in popup was closed before completing.",
	CodeNetworkFailed:     "Network error. Please check your connection.",
	CodeInvalidToken:      invalidSessionMessage,
}

// Message returns the user-facing text for a provider error code.
func Message(code string) string {
	if m, ok := messages[code]; ok {
		return m
	}
	return defaultMessage
}

// Code maps an error from this package to its provider code, or "" when the
// error is not an auth error.
func Code(err error) string {
	switch {
	case errors.Is(err, ErrEmailExists):
		return CodeEmailInUse
	case errors.Is(err, ErrInvalidEmail):
		return CodeInvalidEmail
	case errors.Is(err, ErrWeakPassword):
		return CodeWeakPassword
	case errors.Is(err, ErrUserNotFound):
		return CodeUserNotFound
	case errors.Is(err, ErrInvalidCredentials):
		return CodeWrongPassword
	case errors.Is(err, ErrInvalidToken):
		return CodeInvalidToken
	}
	return ""
}
