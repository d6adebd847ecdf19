package auth

import (
	"errors"
	"net/http"
)

// Error is a failed authorization check. Status is 401 or 403.
type Error struct {
	Code        string
	Description string
	Status      int
}

func (e *Error) Error() string {
	return e.Code + ": " + e.Description
}

var (
	ErrHeaderMissing = &Error{
		Code:        "authorization_header_missing",
		Description: "Authorization header is expected.",
		Status:      http.StatusUnauthorized,
	}
	ErrInvalidHeader = &Error{
		Code:        "invalid_header",
		Description: `Authorization header must be of the form "Bearer <token>".`,
		Status:      http.StatusUnauthorized,
	}
	ErrTokenExpired = &Error{
		Code:        "token_expired",
		Description: "Token expired.",
		Status:      http.StatusUnauthorized,
	}
	ErrInvalidClaims = &Error{
		Code:        "invalid_claims",
		Description: "Incorrect claims. Please check the audience and issuer.",
		Status:      http.StatusUnauthorized,
	}
	ErrInvalidToken = &Error{
		Code:        "invalid_token",
		Description: "Unable to parse authentication token.",
		Status:      http.StatusUnauthorized,
	}
	ErrPermissionNotFound = &Error{
		Code:        "unauthorized",
		Description: "Permission not found.",
		Status:      http.StatusForbidden,
	}
)

// AsError unwraps err into an *Error, falling back to ErrInvalidToken.
func AsError(err error) *Error {
	var authErr *Error
	if errors.As(err, &authErr) {
		return authErr
	}
	return ErrInvalidToken
}
