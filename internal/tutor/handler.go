package tutor

import (
	"errors"
	"net/http"

	"tutorslot/internal/auth"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{
		service: service,
	}
}

// FindAvailable godoc
// @Summary      Find available tutors
// @Description  Returns tutors with an open shift for the requested date, time slot, school level and subject.
// @Tags         tutors
// @Security     BearerAuth
// @Produce      json
// @Param        subject      query     string  true  "Subject name"
// @Param        date         query     string  true  "Date (YYYY-MM-DD)"
// @Param        timeSlot     query     string  true  "Time slot"
// @Param        schoolLevel  query     string  true  "School level (elementary|middle|high)"
// @Success      200          {array}   AvailableTutor
// @Failure      400          {object}  gin.H
// @Failure      500          {object}  gin.H
// @Router       /api/tutors/available [get]
func (h *Handler) FindAvailable(c *gin.Context) {
	subject := c.Query("subject")
	date := c.Query("date")
	timeSlot := c.Query("timeSlot")
	schoolLevel := c.Query("schoolLevel")

	matches, err := h.service.FindAvailableTutors(c.Request.Context(), subject, date, timeSlot, schoolLevel)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingSubject),
			errors.Is(err, ErrInvalidDate),
			errors.Is(err, ErrInvalidTimeSlot),
			errors.Is(err, ErrInvalidSchoolLevel):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search tutors"})
		}
		return
	}

	c.JSON(http.StatusOK, matches)
}

// ListShifts godoc
// @Summary      List my shifts
// @Description  Returns the authenticated tutor's shifts from a given date onward.
// @Tags         shifts
// @Security     BearerAuth
// @Produce      json
// @Param        from  query     string  false  "Start date (YYYY-MM-DD), defaults to today"
// @Success      200   {array}   Shift
// @Failure      400   {object}  gin.H
// @Failure      404   {object}  gin.H
// @Router       /api/tutor/shifts [get]
func (h *Handler) ListShifts(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	shifts, err := h.service.ListShifts(c.Request.Context(), userID, c.Query("from"))
	if err != nil {
		h.respondShiftError(c, err)
		return
	}

	if shifts == nil {
		shifts = []Shift{}
	}

	c.JSON(http.StatusOK, shifts)
}

// RegisterShifts godoc
// @Summary      Register shifts
// @Description  Creates or updates the authenticated tutor's shifts for one date.
// @Tags         shifts
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      RegisterShiftsRequest  true  "Shift data"
// @Success      200      {array}   Shift
// @Failure      400      {object}  gin.H
// @Failure      404      {object}  gin.H
// @Router       /api/tutor/shifts [post]
func (h *Handler) RegisterShifts(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req RegisterShiftsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	shifts, err := h.service.RegisterShifts(c.Request.Context(), userID, req)
	if err != nil {
		h.respondShiftError(c, err)
		return
	}

	c.JSON(http.StatusOK, shifts)
}

// ListShiftsByDate godoc
// @Summary      List my shifts for a date
// @Tags         shifts
// @Security     BearerAuth
// @Produce      json
// @Param        date  path      string  true  "Date (YYYY-MM-DD)"
// @Success      200   {array}   Shift
// @Failure      400   {object}  gin.H
// @Failure      404   {object}  gin.H
// @Router       /api/tutor/shifts/{date} [get]
func (h *Handler) ListShiftsByDate(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	shifts, err := h.service.ListShiftsByDate(c.Request.Context(), userID, c.Param("date"))
	if err != nil {
		h.respondShiftError(c, err)
		return
	}

	if shifts == nil {
		shifts = []Shift{}
	}

	c.JSON(http.StatusOK, shifts)
}

// CreateTutor godoc
// @Summary      Create tutor
// @Description  Registers a tutor profile. Admin only.
// @Tags         tutors
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateTutorRequest  true  "Tutor data"
// @Success      201      {object}  Tutor
// @Failure      400      {object}  gin.H
// @Failure      500      {object}  gin.H
// @Router       /admin/tutors [post]
func (h *Handler) CreateTutor(c *gin.Context) {
	var req CreateTutorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tutor, err := h.service.CreateTutor(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create tutor"})
		return
	}

	c.JSON(http.StatusCreated, tutor)
}

// ListTutors godoc
// @Summary      List tutors
// @Tags         tutors
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   Tutor
// @Failure      500  {object}  gin.H
// @Router       /api/tutors [get]
func (h *Handler) ListTutors(c *gin.Context) {
	tutors, err := h.service.GetAllTutors(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tutors"})
		return
	}

	if tutors == nil {
		tutors = []Tutor{}
	}

	c.JSON(http.StatusOK, tutors)
}

func (h *Handler) respondShiftError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrTutorNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrInvalidDate), errors.Is(err, ErrInvalidTimeSlot):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
	}
}
