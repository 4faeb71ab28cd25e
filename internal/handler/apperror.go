package handler

import "net/http"

type AppError struct {
	Status  int
	Code    string
	Message string
}

func (e *AppError) Error() string { return e.Message }

var (
	ErrMissingToken       = &AppError{http.StatusUnauthorized, "MISSING_TOKEN", "Authorization header required"}
	ErrInvalidToken       = &AppError{http.StatusUnauthorized, "INVALID_TOKEN", "Token is invalid or expired"}
	ErrInvalidCredentials = &AppError{http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password"}
	ErrInvalidRequest     = &AppError{http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body"}
	ErrValidationFailed   = &AppError{http.StatusBadRequest, "VALIDATION_FAILED", "Validation failed"}
	ErrResourceNotFound   = &AppError{http.StatusNotFound, "RESOURCE_NOT_FOUND", "Resource not found"}
	ErrInternalError      = &AppError{http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred"}

	ErrEmailTaken      = &AppError{http.StatusConflict, "EMAIL_TAKEN", "Email is already registered"}
	ErrCodeTaken       = &AppError{http.StatusConflict, "ACCOUNT_CODE_TAKEN", "Account code already exists"}
	ErrAccountNotFound = &AppError{http.StatusUnprocessableEntity, "ACCOUNT_NOT_FOUND", "Account not found"}
	ErrAccountInUse    = &AppError{http.StatusConflict, "ACCOUNT_IN_USE", "Account has postings and cannot be deleted"}
	ErrSameAccount     = &AppError{http.StatusUnprocessableEntity, "SAME_ACCOUNT", "Debit and credit accounts must differ"}
	ErrInvalidAmount   = &AppError{http.StatusBadRequest, "INVALID_AMOUNT", "Amount must be greater than zero"}
	ErrInvalidDate     = &AppError{http.StatusBadRequest, "INVALID_DATE", "Date must be in YYYY-MM-DD format"}
)
