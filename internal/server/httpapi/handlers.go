package httpapi

import (
	"net/http"
	"strings"

	"github.com/dmitrijs2005/mypage/internal/server/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) healthz(w http.ResponseWriter, _ *http.Request) {
	writeMessage(w, http.StatusOK, msgOK)
}

// writeDomainError logs 5xx failures; 4xx outcomes are part of normal use.
func (h *Handler) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	status, code, msg := mapDomainError(err)
	if status >= http.StatusInternalServerError {
		h.log.Error(r.Context(), "request failed",
			"request_id", requestIDFromContext(r.Context()),
			"path", r.URL.Path,
			"error", err,
		)
	}
	writeError(w, status, code, msg)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", msgMalformedBody)
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", msgCredentialsRequired)
		return
	}

	resp, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	h.log.Info(r.Context(), "login succeeded", "user_id", resp.User.ID, "remember_me", req.RememberMe)
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	out, err := h.portal.Dashboard(r.Context(), userFromContext(r.Context()).ID)
	h.respond(w, r, out, err)
}

func (h *Handler) contract(w http.ResponseWriter, r *http.Request) {
	out, err := h.portal.Contract(r.Context(), userFromContext(r.Context()).ID)
	h.respond(w, r, out, err)
}

func (h *Handler) billing(w http.ResponseWriter, r *http.Request) {
	out, err := h.portal.Billing(r.Context(), userFromContext(r.Context()).ID, r.URL.Query().Get("month"))
	h.respond(w, r, out, err)
}

func (h *Handler) dataUsage(w http.ResponseWriter, r *http.Request) {
	out, err := h.portal.DataUsage(r.Context(), userFromContext(r.Context()).ID)
	h.respond(w, r, out, err)
}

func (h *Handler) options(w http.ResponseWriter, r *http.Request) {
	out, err := h.portal.Options(r.Context(), userFromContext(r.Context()).ID)
	h.respond(w, r, out, err)
}

func (h *Handler) subscribeOption(w http.ResponseWriter, r *http.Request) {
	err := h.portal.SubscribeOption(r.Context(), userFromContext(r.Context()).ID, chi.URLParam(r, "optionID"))
	h.respondMessage(w, r, "オプションを申し込みました", err)
}

func (h *Handler) unsubscribeOption(w http.ResponseWriter, r *http.Request) {
	err := h.portal.UnsubscribeOption(r.Context(), userFromContext(r.Context()).ID, chi.URLParam(r, "optionID"))
	h.respondMessage(w, r, "オプションを解約しました", err)
}

func (h *Handler) notifications(w http.ResponseWriter, r *http.Request) {
	out, err := h.portal.Notifications(r.Context(), userFromContext(r.Context()).ID)
	h.respond(w, r, out, err)
}

func (h *Handler) markNotificationRead(w http.ResponseWriter, r *http.Request) {
	err := h.portal.MarkNotificationRead(r.Context(), userFromContext(r.Context()).ID, chi.URLParam(r, "notificationID"))
	h.respondMessage(w, r, "既読にしました", err)
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	var req models.ProfileUpdate
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", msgMalformedBody)
		return
	}
	out, err := h.portal.UpdateProfile(r.Context(), userFromContext(r.Context()).ID, req)
	h.respond(w, r, out, err)
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	var req models.PasswordChange
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", msgMalformedBody)
		return
	}
	err := h.users.ChangePassword(r.Context(), userFromContext(r.Context()).ID, req.CurrentPassword, req.NewPassword)
	h.respondMessage(w, r, "パスワードを変更しました", err)
}

func (h *Handler) updatePreferences(w http.ResponseWriter, r *http.Request) {
	var req models.NotificationPreferences
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", msgMalformedBody)
		return
	}
	out, err := h.portal.UpdateNotificationPreferences(r.Context(), userFromContext(r.Context()).ID, req)
	h.respond(w, r, out, err)
}

func (h *Handler) changePlan(w http.ResponseWriter, r *http.Request) {
	var req models.PlanChange
	if err := decodeBody(r, &req); err != nil || strings.TrimSpace(req.PlanID) == "" {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", msgMalformedBody)
		return
	}
	out, err := h.portal.ChangePlan(r.Context(), userFromContext(r.Context()).ID, req.PlanID)
	h.respond(w, r, out, err)
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, out any, err error) {
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) respondMessage(w http.ResponseWriter, r *http.Request, msg string, err error) {
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, msg)
}
