package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"meetapp/internal/delivery/http/helpers"
	"meetapp/internal/delivery/http/middleware"
	"meetapp/internal/domain"
)

// SubscriptionController handles subscription enrollment endpoints.
type SubscriptionController struct {
	Logger  *slog.Logger
	Service domain.SubscriptionService
}

func NewSubscriptionController(logger *slog.Logger, svc domain.SubscriptionService) *SubscriptionController {
	return &SubscriptionController{
		Logger:  logger,
		Service: svc,
	}
}

// ListSubscriptionsSuccessResponse is the success response envelope for GET /subscriptions (200).
type ListSubscriptionsSuccessResponse struct {
	Data  []*domain.SubscriptionWithMeetup `json:"data"`
	Error *helpers.APIError                `json:"error"`
}

// List godoc
// @Summary List the caller's upcoming subscriptions
// @Description Returns subscriptions to meetups whose date is still in the future, ordered by date ascending.
// @Tags subscriptions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ListSubscriptionsSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /subscriptions [get]
func (c *SubscriptionController) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	subs, err := c.Service.List(r.Context(), userID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, subs)
}

// SubscribeSuccessResponse is the success response envelope for POST /meetups/{meetupID}/subscriptions (201).
type SubscribeSuccessResponse struct {
	Data  *domain.Subscription `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// Subscribe godoc
// @Summary Subscribe to a meetup
// @Description Enrolls the caller in the meetup. Fails for past meetups, the caller's own meetups, duplicate subscriptions, and same-instant conflicts.
// @Tags subscriptions
// @Produce json
// @Security BearerAuth
// @Param meetupID path string true "Meetup ID"
// @Success 201 {object} controllers.SubscribeSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /meetups/{meetupID}/subscriptions [post]
func (c *SubscriptionController) Subscribe(w http.ResponseWriter, r *http.Request) {
	meetupID := r.PathValue("meetupID")
	if meetupID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing meetupID")
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	sub, err := c.Service.Subscribe(r.Context(), userID, meetupID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "meetup not found")
		case errors.Is(err, domain.ErrPastMeetup):
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "cannot subscribe to past meetups")
		case errors.Is(err, domain.ErrSelfSubscription):
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "you cannot subscribe to a meetup organized by you")
		case errors.Is(err, domain.ErrDuplicateSubscription):
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "you are already subscribed to this meetup")
		case errors.Is(err, domain.ErrTimeConflict):
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "can't subscribe to two meetups with the same date and time")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, sub)
}

// Unsubscribe godoc
// @Summary Cancel a subscription
// @Description Deletes the subscription. Only the subscriber may cancel it; no past-date restriction applies.
// @Tags subscriptions
// @Produce json
// @Security BearerAuth
// @Param subscriptionID path string true "Subscription ID"
// @Success 204 "No Content"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /subscriptions/{subscriptionID} [delete]
func (c *SubscriptionController) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	subscriptionID := r.PathValue("subscriptionID")
	if subscriptionID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing subscriptionID")
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.Unsubscribe(r.Context(), subscriptionID, userID); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "subscription not found")
		case errors.Is(err, domain.ErrForbidden):
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "you don't have permission to cancel this subscription")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
