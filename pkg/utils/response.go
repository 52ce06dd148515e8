package utils

import (
	"encoding/json"
	"net/http"

	"user-org-backend/pkg/models"
)

// SuccessResponse is the envelope for every 2xx response.
type SuccessResponse struct {
	Status     string      `json:"status"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data"`
	StatusCode int         `json:"statusCode"`
}

// ErrorResponse is the envelope for every non-validation error response.
type ErrorResponse struct {
	Status     string `json:"status"`
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
}

// ValidationErrorResponse carries field-level messages at 422.
type ValidationErrorResponse struct {
	Errors []models.FieldError `json:"errors"`
}

// WriteSuccessResponse writes the success envelope.
func WriteSuccessResponse(w http.ResponseWriter, statusCode int, message string, data interface{}) {
	writeJSON(w, statusCode, SuccessResponse{
		Status:     "success",
		Message:    message,
		Data:       data,
		StatusCode: statusCode,
	})
}

// WriteErrorResponse writes the error envelope.
func WriteErrorResponse(w http.ResponseWriter, status, message string, statusCode int) {
	writeJSON(w, statusCode, ErrorResponse{
		Status:     status,
		Message:    message,
		StatusCode: statusCode,
	})
}

// WriteBadRequestResponse writes a 400 error.
func WriteBadRequestResponse(w http.ResponseWriter, message string) {
	WriteErrorResponse(w, "Bad request", message, http.StatusBadRequest)
}

// WriteUnauthorizedResponse writes a 401 error.
func WriteUnauthorizedResponse(w http.ResponseWriter, message string) {
	WriteErrorResponse(w, "Unauthorized", message, http.StatusUnauthorized)
}

// WriteForbiddenResponse writes a 403 error.
func WriteForbiddenResponse(w http.ResponseWriter, message string) {
	WriteErrorResponse(w, "Forbidden", message, http.StatusForbidden)
}

// WriteNotFoundResponse writes a 404 error.
func WriteNotFoundResponse(w http.ResponseWriter, message string) {
	WriteErrorResponse(w, "Not Found", message, http.StatusNotFound)
}

// WriteConflictResponse writes a 409 error.
func WriteConflictResponse(w http.ResponseWriter, message string) {
	WriteErrorResponse(w, "Conflict", message, http.StatusConflict)
}

// WriteInternalServerErrorResponse writes a 500 error. Internal detail is
// logged by callers, never echoed to the client.
func WriteInternalServerErrorResponse(w http.ResponseWriter, message string) {
	WriteErrorResponse(w, "Internal server error", message, http.StatusInternalServerError)
}

// WriteValidationErrorResponse writes the 422 field-error payload.
func WriteValidationErrorResponse(w http.ResponseWriter, errs []models.FieldError) {
	writeJSON(w, http.StatusUnprocessableEntity, ValidationErrorResponse{Errors: errs})
}

func writeJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// ParseJSONBody decodes the request body into v.
func ParseJSONBody(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}
