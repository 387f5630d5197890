package handler

import (
	"net/http"

	"github.com/Arslan-Alizahi/smarttales-backend/internal/dto"
	"github.com/Arslan-Alizahi/smarttales-backend/internal/service"
	"github.com/Arslan-Alizahi/smarttales-backend/pkg/response"
	"github.com/Arslan-Alizahi/smarttales-backend/pkg/validator"
	"github.com/gin-gonic/gin"
)

type GradeHandler struct {
	gradeService service.GradeService
}

func NewGradeHandler(gradeService service.GradeService) *GradeHandler {
	return &GradeHandler{gradeService: gradeService}
}

func (h *GradeHandler) Save(c *gin.Context) {
	var input dto.SaveGradeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	grade, err := h.gradeService.Save(c.Request.Context(), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": grade})
}

func (h *GradeHandler) Get(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	grade, err := h.gradeService.Get(c.Request.Context(), id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	if grade == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "grade not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": grade})
}

func (h *GradeHandler) GetByStudent(c *gin.Context) {
	studentID, ok := parseUintParam(c, "studentId")
	if !ok {
		return
	}

	if c.Query("view") == "detail" {
		details, err := h.gradeService.GetDetailsByStudent(c.Request.Context(), studentID)
		if err != nil {
			response.ResponseError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": details})
		return
	}

	grades, err := h.gradeService.GetByStudent(c.Request.Context(), studentID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": grades})
}

func (h *GradeHandler) GetByAssignment(c *gin.Context) {
	assignmentID, ok := parseUintParam(c, "assignmentId")
	if !ok {
		return
	}

	grades, err := h.gradeService.GetByAssignment(c.Request.Context(), assignmentID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": grades})
}

func (h *GradeHandler) GetStudentStats(c *gin.Context) {
	studentID, ok := parseUintParam(c, "studentId")
	if !ok {
		return
	}

	stats, err := h.gradeService.GetStudentStats(c.Request.Context(), studentID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": stats})
}

func (h *GradeHandler) Delete(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	deleted, err := h.gradeService.Delete(c.Request.Context(), id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "grade not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "grade deleted"})
}
