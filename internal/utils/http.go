package utils

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// APIError is the error half of the response envelope
type APIError struct {
	Status    string   `json:"status"`
	Message   string   `json:"message"`
	SubErrors []string `json:"subErrors"`
}

// Response is the uniform envelope returned by every endpoint.
// Clients treat a response as successful only when the HTTP status is 2xx
// and Data is non-null.
type Response struct {
	TimeStamp string      `json:"timeStamp"`
	Data      interface{} `json:"data"`
	Error     *APIError   `json:"error"`
}

// SuccessResponse sends a success envelope with data
func SuccessResponse(c echo.Context, statusCode int, data interface{}) error {
	return c.JSON(statusCode, Response{
		TimeStamp: time.Now().UTC().Format(time.RFC3339),
		Data:      data,
		Error:     nil,
	})
}

// ErrorResponseHandler sends an error envelope
func ErrorResponseHandler(c echo.Context, statusCode int, errorMessage string, subErrors ...string) error {
	return c.JSON(statusCode, Response{
		TimeStamp: time.Now().UTC().Format(time.RFC3339),
		Data:      nil,
		Error: &APIError{
			Status:    http.StatusText(statusCode),
			Message:   errorMessage,
			SubErrors: subErrors,
		},
	})
}

// BadRequestResponse sends a 400 Bad Request envelope
func BadRequestResponse(c echo.Context, errorMessage string, subErrors ...string) error {
	return ErrorResponseHandler(c, http.StatusBadRequest, errorMessage, subErrors...)
}

// UnauthorizedResponse sends a 401 Unauthorized envelope
func UnauthorizedResponse(c echo.Context, errorMessage string) error {
	if errorMessage == "" {
		errorMessage = "Unauthorized"
	}
	return ErrorResponseHandler(c, http.StatusUnauthorized, errorMessage)
}

// ConflictResponse sends a 409 Conflict envelope
func ConflictResponse(c echo.Context, errorMessage string) error {
	if errorMessage == "" {
		errorMessage = "Conflict"
	}
	return ErrorResponseHandler(c, http.StatusConflict, errorMessage)
}

// NotFoundResponse sends a 404 Not Found envelope
func NotFoundResponse(c echo.Context, errorMessage string) error {
	if errorMessage == "" {
		errorMessage = "Resource not found"
	}
	return ErrorResponseHandler(c, http.StatusNotFound, errorMessage)
}

// InternalServerErrorResponse sends a 500 Internal Server Error envelope
func InternalServerErrorResponse(c echo.Context, errorMessage string) error {
	if errorMessage == "" {
		errorMessage = "Internal server error"
	}
	return ErrorResponseHandler(c, http.StatusInternalServerError, errorMessage)
}
