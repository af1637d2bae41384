package transport

import (
	"errors"
	"net/http"

	"catalog-api/internal/middleware"
	"catalog-api/internal/repository"

	"go.uber.org/zap"
)

// decodeRequest decodes and validates the body into v. On failure it writes the 400
// response and returns false.
func decodeRequest(w http.ResponseWriter, r *http.Request, v interface{}, logger *zap.Logger) bool {
	err := middleware.DecodeAndValidate(r, v)
	if err == nil {
		return true
	}

	logger.Debug("Request validation failed", zap.String("path", r.URL.Path), zap.Error(err))

	if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
		middleware.RespondWithValidationErrors(w, validationErrors)
		return false
	}

	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		middleware.RespondWithError(w, http.StatusRequestEntityTooLarge, "request body too large")
		return false
	}

	middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
	return false
}

// respondServiceError maps an error returned by the service layer onto a response.
// Anything unrecognised is logged and answered with a generic 500.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error, logger *zap.Logger, action string) {
	if middleware.RespondWithDomainError(w, err) {
		logger.Debug(action+" rejected", zap.Error(err))
		return
	}

	switch {
	case errors.Is(err, repository.ErrCategoryNotFound), errors.Is(err, repository.ErrProductNotFound):
		logger.Debug(action+" target not found", zap.String("path", r.URL.Path))
		middleware.RespondWithError(w, http.StatusNotFound, "not found")
	case errors.Is(err, repository.ErrCategoryInUse):
		logger.Debug(action+" conflict", zap.Error(err))
		middleware.RespondWithError(w, http.StatusConflict, "category is referenced by products")
	default:
		logger.Error(action+" failed", zap.String("path", r.URL.Path), zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "internal server error")
	}
}
