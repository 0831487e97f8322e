package student

import (
	"net/http"
	"strconv"

	"tutorslot/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Handler struct {
	repo Repository
}

func NewHandler(db *sqlx.DB) *Handler {
	return &Handler{
		repo: NewRepository(db),
	}
}

// ListStudents godoc
// @Summary      List my students
// @Description  Returns students registered under the authenticated parent account.
// @Tags         students
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   Student
// @Failure      500  {object}  gin.H
// @Router       /api/students [get]
func (h *Handler) ListStudents(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	students, err := h.repo.GetByUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch students"})
		return
	}

	if students == nil {
		students = []Student{}
	}

	c.JSON(http.StatusOK, students)
}

// CreateStudent godoc
// @Summary      Register student
// @Description  Adds a student under the authenticated parent account.
// @Tags         students
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateStudentRequest  true  "Student data"
// @Success      201      {object}  Student
// @Failure      400      {object}  gin.H
// @Failure      500      {object}  gin.H
// @Router       /api/students [post]
func (h *Handler) CreateStudent(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	student, err := h.repo.Create(c.Request.Context(), userID, req.Name, req.SchoolLevel)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create student"})
		return
	}

	c.JSON(http.StatusCreated, student)
}

// GetStudent godoc
// @Summary      Get student
// @Tags         students
// @Security     BearerAuth
// @Produce      json
// @Param        studentID  path      int  true  "Student ID"
// @Success      200        {object}  Student
// @Failure      403        {object}  gin.H
// @Failure      404        {object}  gin.H
// @Router       /api/students/{studentID} [get]
func (h *Handler) GetStudent(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	studentID, err := strconv.Atoi(c.Param("studentID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid student ID"})
		return
	}

	student, err := h.repo.GetByID(c.Request.Context(), studentID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
		return
	}

	if student.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not your student"})
		return
	}

	c.JSON(http.StatusOK, student)
}
