package adaptor

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"

	"movie-booking/internal/dto/request"
	"movie-booking/internal/usecase"
	"movie-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxFormBytes = 1 << 20

// bindForm fills req from a JSON body or an urlencoded form, depending on Content-Type.
// It writes a 400 response and returns false when the body cannot be read.
func bindForm(w http.ResponseWriter, r *http.Request, req request.FormBinder) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(req); err != nil {
			utils.ResponseBadRequest(w, "Invalid request body", nil)
			return false
		}
		return true
	}

	if err := r.ParseForm(); err != nil {
		utils.ResponseBadRequest(w, "Invalid form data", nil)
		return false
	}
	if errs := req.FromForm(r.PostForm); len(errs) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", errs)
		return false
	}
	return true
}

// currentUser returns the id set by the auth middleware.
func currentUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return uuid.Nil, false
	}
	return userID, true
}

// handleServiceError maps service errors to responses
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var validationErr *usecase.ValidationError

	switch {
	case errors.As(err, &validationErr):
		log.Debug(operation+" validation failed", zap.Any("errors", validationErr.Fields))
		utils.ResponseBadRequest(w, "Validation failed", validationErr.Fields)

	case errors.Is(err, usecase.ErrNotFound):
		log.Debug(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, usecase.PublicMessage(err, "Not found"))

	case errors.Is(err, usecase.ErrConflict):
		log.Info(operation+" failed - conflict", zap.Error(err))
		utils.ResponseConflict(w, usecase.PublicMessage(err, "Conflict"))

	case errors.Is(err, usecase.ErrInvalidCredentials):
		utils.ResponseUnauthorized(w, usecase.PublicMessage(err, "Invalid credentials"))

	case errors.Is(err, usecase.ErrForbidden):
		log.Warn(operation+" failed - forbidden", zap.Error(err))
		utils.ResponseForbidden(w, usecase.PublicMessage(err, "Forbidden"))

	default:
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
