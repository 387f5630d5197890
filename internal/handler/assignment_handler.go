package handler

import (
	"net/http"
	"time"

	"github.com/Arslan-Alizahi/smarttales-backend/internal/dto"
	"github.com/Arslan-Alizahi/smarttales-backend/internal/service"
	"github.com/Arslan-Alizahi/smarttales-backend/pkg/response"
	"github.com/Arslan-Alizahi/smarttales-backend/pkg/storage"
	"github.com/Arslan-Alizahi/smarttales-backend/pkg/validator"
	"github.com/gin-gonic/gin"
)

type AssignmentHandler struct {
	assignmentService service.AssignmentService
	fileStorage       storage.FileStorage
}

func NewAssignmentHandler(assignmentService service.AssignmentService, fileStorage storage.FileStorage) *AssignmentHandler {
	return &AssignmentHandler{
		assignmentService: assignmentService,
		fileStorage:       fileStorage,
	}
}

func (h *AssignmentHandler) Create(c *gin.Context) {
	var input dto.CreateAssignmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	assignment, err := h.assignmentService.Create(c.Request.Context(), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": assignment})
}

func (h *AssignmentHandler) Get(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	assignment, err := h.assignmentService.Get(c.Request.Context(), id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	if assignment == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "assignment not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": assignment})
}

func (h *AssignmentHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	if class := c.Query("class"); class != "" {
		assignments, err := h.assignmentService.GetByClass(ctx, class)
		if err != nil {
			response.ResponseError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": assignments})
		return
	}
	if teacher := c.Query("teacher"); teacher != "" {
		assignments, err := h.assignmentService.GetByTeacher(ctx, teacher)
		if err != nil {
			response.ResponseError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": assignments})
		return
	}
	if t := c.Query("type"); t != "" {
		assignments, err := h.assignmentService.GetByType(ctx, t)
		if err != nil {
			response.ResponseError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": assignments})
		return
	}
	if c.Query("published") == "true" {
		assignments, err := h.assignmentService.GetPublished(ctx)
		if err != nil {
			response.ResponseError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": assignments})
		return
	}
	if c.Query("due") == "soon" {
		assignments, err := h.assignmentService.GetDueSoon(ctx, 7*24*time.Hour)
		if err != nil {
			response.ResponseError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": assignments})
		return
	}

	assignments, err := h.assignmentService.GetAll(ctx)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": assignments})
}

func (h *AssignmentHandler) Update(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var input dto.UpdateAssignmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	assignment, err := h.assignmentService.Update(c.Request.Context(), id, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	if assignment == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "assignment not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": assignment})
}

func (h *AssignmentHandler) Delete(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	deleted, err := h.assignmentService.Delete(c.Request.Context(), id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "assignment not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "assignment deleted"})
}

// Submit accepts a multipart form: student_id, notes, and zero or more
// "files" parts which are stored and recorded by URL on the assignment.
func (h *AssignmentHandler) Submit(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	studentID, ok := parseFormUint(c, "student_id")
	if !ok {
		return
	}

	input := dto.SubmitAssignmentInput{
		StudentID: studentID,
		Notes:     c.PostForm("notes"),
	}

	form, err := c.MultipartForm()
	if err == nil && form != nil && h.fileStorage != nil {
		for _, fileHeader := range form.File["files"] {
			file, err := fileHeader.Open()
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read uploaded file"})
				return
			}

			url, err := h.fileStorage.UploadFile(c.Request.Context(), file, "submissions", fileHeader.Filename)
			file.Close()
			if err != nil {
				response.ResponseError(c, err)
				return
			}
			input.SubmittedFiles = append(input.SubmittedFiles, url)
		}
	}

	assignment, err := h.assignmentService.Submit(c.Request.Context(), id, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	if assignment == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "assignment not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": assignment})
}

func (h *AssignmentHandler) GetSubmissions(c *gin.Context) {
	views, err := h.assignmentService.GetSubmissions(c.Request.Context(), c.Query("class"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": views})
}
