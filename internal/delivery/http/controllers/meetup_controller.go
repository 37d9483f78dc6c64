package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"meetapp/internal/delivery/http/helpers"
	"meetapp/internal/delivery/http/middleware"
	"meetapp/internal/domain"
)

// filterDateLayout is the ISO-8601 date accepted by the list filter.
const filterDateLayout = "2006-01-02"

// MeetupController handles the meetup lifecycle endpoints.
type MeetupController struct {
	Logger  *slog.Logger
	Service domain.MeetupService
}

func NewMeetupController(logger *slog.Logger, svc domain.MeetupService) *MeetupController {
	return &MeetupController{
		Logger:  logger,
		Service: svc,
	}
}

// ListMeetupsSuccessResponse is the success response envelope for GET /meetups (200).
type ListMeetupsSuccessResponse struct {
	Data  []*domain.MeetupWithDetails `json:"data"`
	Error *helpers.APIError           `json:"error"`
}

// List godoc
// @Summary List meetups
// @Description Returns a page of meetups ordered by ascending date, optionally restricted to one calendar day. Page size is 10.
// @Tags meetups
// @Produce json
// @Security BearerAuth
// @Param date query string false "Calendar day filter (YYYY-MM-DD)"
// @Param page query int false "1-based page number (default 1)"
// @Success 200 {object} controllers.ListMeetupsSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /meetups [get]
func (c *MeetupController) List(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.UserIDFromContext(r.Context()); !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var day *time.Time
	if s := r.URL.Query().Get("date"); s != "" {
		parsed, err := time.Parse(filterDateLayout, s)
		if err != nil {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "date must be formatted as YYYY-MM-DD")
			return
		}
		day = &parsed
	}
	params := helpers.ParsePagination(r, domain.BrowsePageSize)
	meetups, err := c.Service.List(r.Context(), day, "", params)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, meetups)
}

// ListOrganizing godoc
// @Summary List meetups organized by the caller
// @Description Returns a page of the caller's own meetups ordered by ascending date. Page size is 20.
// @Tags meetups
// @Produce json
// @Security BearerAuth
// @Param page query int false "1-based page number (default 1)"
// @Success 200 {object} controllers.ListMeetupsSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /organizing [get]
func (c *MeetupController) ListOrganizing(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	params := helpers.ParsePagination(r, domain.OrganizerPageSize)
	meetups, err := c.Service.List(r.Context(), nil, userID, params)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, meetups)
}

// CreateMeetupRequest is the request body for POST /meetups.
type CreateMeetupRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Date        time.Time `json:"date"`
	BannerID    *string   `json:"banner_id"`
}

// Validate implements Validator. Returns error messages for required fields.
func (c CreateMeetupRequest) Validate() []string {
	var errs []string
	if c.Title == "" {
		errs = append(errs, "title is required")
	}
	if c.Description == "" {
		errs = append(errs, "description is required")
	}
	if c.Location == "" {
		errs = append(errs, "location is required")
	}
	if c.Date.IsZero() {
		errs = append(errs, "date is required")
	}
	return errs
}

// CreateMeetupSuccessResponse is the success response envelope for POST /meetups (201).
type CreateMeetupSuccessResponse struct {
	Data  *domain.Meetup    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// Create godoc
// @Summary Create a meetup
// @Description Creates a meetup owned by the authenticated caller. The date must not be in the past (hour granularity).
// @Tags meetups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param meetup body CreateMeetupRequest true "Meetup data"
// @Success 201 {object} controllers.CreateMeetupSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /meetups [post]
func (c *MeetupController) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateMeetupRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	meetup, err := c.Service.Create(r.Context(), userID, domain.CreateMeetupInput{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Date:        req.Date,
		BannerID:    req.BannerID,
	})
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		if errors.Is(err, domain.ErrPastDate) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "past dates are not permitted")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, meetup)
}

// GetMeetupSuccessResponse is the success response envelope for GET /meetups/{meetupID} (200).
type GetMeetupSuccessResponse struct {
	Data  *domain.MeetupWithDetails `json:"data"`
	Error *helpers.APIError         `json:"error"`
}

// Get godoc
// @Summary Get a meetup by ID
// @Description Returns the meetup with its owner and banner projections.
// @Tags meetups
// @Produce json
// @Security BearerAuth
// @Param meetupID path string true "Meetup ID"
// @Success 200 {object} controllers.GetMeetupSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /meetups/{meetupID} [get]
func (c *MeetupController) Get(w http.ResponseWriter, r *http.Request) {
	meetupID := r.PathValue("meetupID")
	if meetupID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing meetupID")
		return
	}
	if _, ok := middleware.UserIDFromContext(r.Context()); !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	details, err := c.Service.Get(r.Context(), meetupID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "meetup not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, details)
}

// UpdateMeetupRequest is the request body for PUT /meetups/{meetupID}. All fields optional; omitted fields are unchanged.
type UpdateMeetupRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Location    *string    `json:"location"`
	Date        *time.Time `json:"date"`
	BannerID    *string    `json:"banner_id"`
}

// UpdateMeetupSuccessResponse is the success response envelope for PUT /meetups/{meetupID} (200).
type UpdateMeetupSuccessResponse struct {
	Data  *domain.Meetup    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// Update godoc
// @Summary Update a meetup
// @Description Applies a partial update. Only the owner may edit, and only while the meetup has not happened yet.
// @Tags meetups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param meetupID path string true "Meetup ID"
// @Param meetup body UpdateMeetupRequest true "Fields to update"
// @Success 200 {object} controllers.UpdateMeetupSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /meetups/{meetupID} [put]
func (c *MeetupController) Update(w http.ResponseWriter, r *http.Request) {
	meetupID := r.PathValue("meetupID")
	if meetupID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing meetupID")
		return
	}
	var req UpdateMeetupRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	meetup, err := c.Service.Update(r.Context(), meetupID, userID, domain.MeetupUpdate{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Date:        req.Date,
		BannerID:    req.BannerID,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "meetup not found")
		case errors.Is(err, domain.ErrForbidden):
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "you don't have permission to edit this meetup")
		case errors.Is(err, domain.ErrPastDate):
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "past dates are not permitted")
		case errors.Is(err, domain.ErrPastMeetup):
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "you cannot edit a meetup that already happened")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, meetup)
}

// Cancel godoc
// @Summary Cancel a meetup
// @Description Deletes the meetup. Only the owner may cancel, and only while the meetup has not happened yet.
// @Tags meetups
// @Produce json
// @Security BearerAuth
// @Param meetupID path string true "Meetup ID"
// @Success 204 "No Content"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /meetups/{meetupID} [delete]
func (c *MeetupController) Cancel(w http.ResponseWriter, r *http.Request) {
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
	if err := c.Service.Cancel(r.Context(), meetupID, userID); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "meetup not found")
		case errors.Is(err, domain.ErrForbidden):
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "you don't have permission to cancel this meetup")
		case errors.Is(err, domain.ErrPastMeetup):
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "you cannot cancel a meetup that already happened")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
