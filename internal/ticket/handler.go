package ticket

import (
	"errors"
	"net/http"
	"strconv"

	"tutorslot/internal/auth"
	"tutorslot/internal/metrics"
	"tutorslot/internal/student"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Handler struct {
	repo     Repository
	students student.Repository
}

func NewHandler(db *sqlx.DB) *Handler {
	return &Handler{
		repo:     NewRepository(db),
		students: student.NewRepository(db),
	}
}

// GetBalance godoc
// @Summary      Ticket balance
// @Description  Returns the ticket balance for a student, or the account aggregate when no student is given.
// @Tags         tickets
// @Security     BearerAuth
// @Produce      json
// @Param        student_id  query     int  false  "Student ID"
// @Success      200         {object}  BalanceResponse
// @Failure      400         {object}  gin.H
// @Failure      403         {object}  gin.H
// @Router       /api/tickets/balance [get]
func (h *Handler) GetBalance(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	studentIDStr := c.Query("student_id")
	if studentIDStr == "" {
		balance, err := h.repo.BalanceForAccount(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load balance"})
			return
		}
		c.JSON(http.StatusOK, BalanceResponse{Balance: balance})
		return
	}

	studentID, err := strconv.Atoi(studentIDStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid student ID"})
		return
	}

	if !h.ownsStudent(c, userID, studentID) {
		return
	}

	balance, err := h.repo.BalanceForStudent(c.Request.Context(), studentID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load balance"})
		return
	}

	c.JSON(http.StatusOK, BalanceResponse{StudentID: &studentID, Balance: balance})
}

// AddTickets godoc
// @Summary      Add tickets
// @Description  Credits tickets to a student. Admin only.
// @Tags         tickets
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      AddTicketsRequest  true  "Ticket credit"
// @Success      201      {object}  Entry
// @Failure      400      {object}  gin.H
// @Failure      404      {object}  gin.H
// @Router       /admin/tickets/add [post]
func (h *Handler) AddTickets(c *gin.Context) {
	var req AddTicketsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	st, err := h.students.GetByID(c.Request.Context(), req.StudentID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
		return
	}

	entry, err := h.repo.Add(c.Request.Context(), st.ID, st.UserID, req.Quantity, "topup")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add tickets"})
		return
	}

	metrics.RecordTicketEntry("topup")
	c.JSON(http.StatusCreated, entry)
}

// ResetTickets godoc
// @Summary      Reset ticket balance
// @Description  Inserts a compensating entry so the student's balance equals the target. Admin only.
// @Tags         tickets
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      ResetTicketsRequest  true  "Target balance"
// @Success      200      {object}  Entry
// @Failure      400      {object}  gin.H
// @Failure      404      {object}  gin.H
// @Router       /admin/tickets/reset [post]
func (h *Handler) ResetTickets(c *gin.Context) {
	var req ResetTicketsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	st, err := h.students.GetByID(c.Request.Context(), req.StudentID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
		return
	}

	entry, err := h.repo.Reset(c.Request.Context(), st.ID, st.UserID, req.Balance)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset tickets"})
		return
	}

	metrics.RecordTicketEntry("reset")
	c.JSON(http.StatusOK, entry)
}

// Purchase godoc
// @Summary      Purchase tickets
// @Description  Records a captured payment and credits the purchased tickets.
// @Tags         tickets
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      PurchaseRequest  true  "Purchase data"
// @Success      201      {object}  PaymentTransaction
// @Failure      400      {object}  gin.H
// @Failure      403      {object}  gin.H
// @Router       /api/tickets/purchase [post]
func (h *Handler) Purchase(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !h.ownsStudent(c, userID, req.StudentID) {
		return
	}

	payment, err := h.repo.Purchase(c.Request.Context(), PurchaseParams{
		UserID:          userID,
		StudentID:       req.StudentID,
		AmountCents:     req.AmountCents,
		TicketCount:     req.TicketCount,
		ProviderOrderID: req.ProviderOrderID,
	})
	if err != nil {
		if errors.Is(err, ErrStudentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record purchase"})
		return
	}

	metrics.RecordTicketEntry("purchase")
	metrics.RecordTicketPurchase()
	c.JSON(http.StatusCreated, payment)
}

// ListEntries godoc
// @Summary      Ticket ledger history
// @Tags         tickets
// @Security     BearerAuth
// @Produce      json
// @Param        limit   query     int  false  "Page size"
// @Param        offset  query     int  false  "Offset"
// @Success      200     {array}   Entry
// @Failure      500     {object}  gin.H
// @Router       /api/tickets/history [get]
func (h *Handler) ListEntries(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	entries, err := h.repo.GetEntries(c.Request.Context(), userID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load ticket history"})
		return
	}

	if entries == nil {
		entries = []Entry{}
	}

	c.JSON(http.StatusOK, entries)
}

// ownsStudent writes the error response itself when the check fails.
func (h *Handler) ownsStudent(c *gin.Context, userID, studentID int) bool {
	st, err := h.students.GetByID(c.Request.Context(), studentID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
		return false
	}

	if st.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not your student"})
		return false
	}

	return true
}
