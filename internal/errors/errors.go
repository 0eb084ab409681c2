package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrCarNotFound is returned when a car is not found.
	ErrCarNotFound = errors.New("car not found")
	// ErrCategoryNotFound is returned when a category is not found.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrCustomerNotFound is returned when a customer is not found.
	ErrCustomerNotFound = errors.New("customer not found")
	// ErrManagerNotFound is returned when a manager is not found.
	ErrManagerNotFound = errors.New("manager not found")
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailExists is returned when the email is already registered.
	ErrEmailExists = errors.New("user already exists with this email")
	// ErrEmployeeIDExists is returned when the employee ID is taken.
	ErrEmployeeIDExists = errors.New("employee ID already exists")
	// ErrCategoryNameExists is returned when the category name is taken.
	ErrCategoryNameExists = errors.New("category name already exists")
	// ErrCategoryInUse is returned when deleting a category that still has cars.
	ErrCategoryInUse = errors.New("cannot delete category with existing cars")
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidRefreshToken is returned when a refresh token is invalid or expired.
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
	// ErrCurrentPasswordRequired is returned when a password change omits the current password.
	ErrCurrentPasswordRequired = errors.New("current password is required to change password")
	// ErrCurrentPasswordInvalid is returned when the supplied current password is wrong.
	ErrCurrentPasswordInvalid = errors.New("current password is incorrect")
	// ErrInvalidCarData is returned when car fields fail semantic validation.
	ErrInvalidCarData = errors.New("invalid car data")
	// ErrInvalidSalary is returned when a manager salary is negative.
	ErrInvalidSalary = errors.New("salary must be non-negative")
)

// HTTPError carries a status code alongside a message for the HTTP layer.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message string) *HTTPError {
	return &HTTPError{StatusCode: statusCode, Message: message}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Unique-key
// conflicts map to 400 per the public API contract.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrCarNotFound),
		errors.Is(err, ErrCategoryNotFound),
		errors.Is(err, ErrCustomerNotFound),
		errors.Is(err, ErrManagerNotFound),
		errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrEmailExists),
		errors.Is(err, ErrEmployeeIDExists),
		errors.Is(err, ErrCategoryNameExists),
		errors.Is(err, ErrCategoryInUse),
		errors.Is(err, ErrCurrentPasswordRequired),
		errors.Is(err, ErrCurrentPasswordInvalid),
		errors.Is(err, ErrInvalidCarData),
		errors.Is(err, ErrInvalidSalary):
		return NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrInvalidRefreshToken):
		return NewHTTPError(http.StatusUnauthorized, err.Error())
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}
