package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/slimyai/gatehouse/internal/auth/service"
	"github.com/slimyai/gatehouse/pkg/authsdk"
	"github.com/slimyai/gatehouse/pkg/httpx"
	"github.com/slimyai/gatehouse/pkg/slogx"
)

type TOTPEnrollHandler struct {
	TOTPService *service.TOTPService
}

// ServeHTTP godoc
//
//	@Summary		TOTP Enrolment Endpoint
//	@Description	Generate a TOTP secret for the authenticated user. The secret is returned once; TOTP stays inactive until verified.
//	@Tags			TOTP
//	@Produce		json
//	@Success		200	{object}	authsdk.TOTPEnrollResponse	"secret, url"
//	@Failure		401	{object}	authsdk.ErrorResponse		"error, error_description"
//	@Failure		409	{object}	authsdk.ErrorResponse		"error, error_description"
//	@Failure		500	{object}	authsdk.ErrorResponse		"error, error_description"
//	@Router			/v1/auth/totp/enroll [post].
func (h *TOTPEnrollHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	session, ok := SessionUserFromContext(ctx)
	if !ok {
		httpx.WriteJSON(w, http.StatusUnauthorized, authsdk.ErrorResponse{
			Error:            "unauthorized",
			ErrorDescription: "Authentication required",
		})
		return
	}

	enrollment, err := h.TOTPService.Enroll(ctx, session.User.ID)
	if err != nil {
		if errors.Is(err, service.ErrTOTPAlreadyEnabled) {
			httpx.WriteJSON(w, http.StatusConflict, authsdk.ErrorResponse{
				Error:            "already_enabled",
				ErrorDescription: "TOTP is already enabled",
			})
			return
		}
		log.Error("totp enrolment failed", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, authsdk.ErrorResponse{
			Error:            "server_error",
			ErrorDescription: "Failed to enrol TOTP",
		})
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.TOTPEnrollResponse{
		Secret: enrollment.Secret,
		URL:    enrollment.URL,
	})
}

type TOTPVerifyHandler struct {
	TOTPService *service.TOTPService
}

// ServeHTTP godoc
//
//	@Summary		TOTP Verification Endpoint
//	@Description	Activate TOTP by proving the authenticator holds the enrolled secret.
//	@Tags			TOTP
//	@Accept			json
//	@Produce		json
//	@Param			request	body	authsdk.TOTPVerifyRequest	true	"TOTP code"
//	@Success		204		"no content"
//	@Failure		400		{object}	authsdk.ErrorResponse	"error, error_description"
//	@Failure		401		{object}	authsdk.ErrorResponse	"error, error_description"
//	@Failure		500		{object}	authsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/auth/totp/verify [post].
func (h *TOTPVerifyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	session, ok := SessionUserFromContext(ctx)
	if !ok {
		httpx.WriteJSON(w, http.StatusUnauthorized, authsdk.ErrorResponse{
			Error:            "unauthorized",
			ErrorDescription: "Authentication required",
		})
		return
	}

	var req authsdk.TOTPVerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Code == "" {
		httpx.WriteJSON(w, http.StatusBadRequest, authsdk.ErrorResponse{
			Error:            "invalid_request",
			ErrorDescription: "code is required",
		})
		return
	}

	if err := h.TOTPService.VerifyEnrollment(ctx, session.User.ID, req.Code); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidTOTPCode):
			httpx.WriteJSON(w, http.StatusBadRequest, authsdk.ErrorResponse{
				Error:            "invalid_code",
				ErrorDescription: "TOTP code did not match",
			})
		case errors.Is(err, service.ErrTOTPNotEnrolled):
			httpx.WriteJSON(w, http.StatusBadRequest, authsdk.ErrorResponse{
				Error:            "not_enrolled",
				ErrorDescription: "Enrol before verifying",
			})
		case errors.Is(err, service.ErrTOTPAlreadyEnabled):
			httpx.WriteJSON(w, http.StatusConflict, authsdk.ErrorResponse{
				Error:            "already_enabled",
				ErrorDescription: "TOTP is already enabled",
			})
		default:
			log.Error("totp verification failed", "err", err)
			httpx.WriteJSON(w, http.StatusInternalServerError, authsdk.ErrorResponse{
				Error:            "server_error",
				ErrorDescription: "Failed to verify TOTP",
			})
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
