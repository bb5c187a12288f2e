package user

import (
	"net/http"
	"strconv"

	"github.com/Shibo14/ielts-mock/internal/controller"
	"github.com/Shibo14/ielts-mock/internal/dto"
	"github.com/Shibo14/ielts-mock/internal/middleware"
	"github.com/Shibo14/ielts-mock/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type SubmissionController struct {
	submissionService service.SubmissionService
}

func NewSubmissionController(submissionService service.SubmissionService) *SubmissionController {
	return &SubmissionController{submissionService: submissionService}
}

// StartSubmission godoc
// @Summary Start a new submission for a test
// @Description Creates an in-progress submission owned by the authenticated user.
// @Tags submissions
// @Produce json
// @Security BearerAuth
// @Param test_id path int true "Test ID"
// @Success 201 {object} dto.SubmissionDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid Test ID format"
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /tests/{test_id}/submissions [post]
func (ctrl *SubmissionController) StartSubmission(c *gin.Context) {
	testID, err := strconv.ParseUint(c.Param("test_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Test ID format"})
		return
	}

	userID, _ := middleware.ActingUser(c)
	submission, err := ctrl.submissionService.Start(userID, uint(testID))
	if err != nil {
		controller.WriteError(c, err, "Failed to start submission")
		return
	}
	c.JSON(http.StatusCreated, submission)
}

// SubmitAnswer godoc
// @Summary Submit or revise an answer for one question
// @Description Grades the response immediately and upserts exactly one answer per question. Repeat calls overwrite the previous response. The returned correctness is informational; scores commit only at finish.
// @Tags submissions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param submission_id path int true "Submission ID"
// @Param answer body dto.SubmitAnswerRequest true "Question ID and response text"
// @Success 200 {object} dto.SubmitAnswerResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 403 {object} dto.ErrorResponse "Submission owned by another user"
// @Failure 404 {object} dto.ErrorResponse "Submission or question not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /submissions/{submission_id}/answers [post]
func (ctrl *SubmissionController) SubmitAnswer(c *gin.Context) {
	submissionID, err := strconv.ParseUint(c.Param("submission_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Submission ID format"})
		return
	}

	var req dto.SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("SubmitAnswer: failed to bind request")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	userID, _ := middleware.ActingUser(c)
	resp, err := ctrl.submissionService.SubmitAnswer(uint(submissionID), req.QuestionID, req.Response, userID)
	if err != nil {
		controller.WriteError(c, err, "Failed to submit answer")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// FinishSubmission godoc
// @Summary Finalize a submission
// @Description Counts correct answers, converts to a band score and stamps the finish time atomically. A submission can be finished only once.
// @Tags submissions
// @Produce json
// @Security BearerAuth
// @Param submission_id path int true "Submission ID"
// @Success 200 {object} dto.SubmissionDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid Submission ID format"
// @Failure 403 {object} dto.ErrorResponse "Submission owned by another user"
// @Failure 404 {object} dto.ErrorResponse "Submission not found"
// @Failure 409 {object} dto.ErrorResponse "Submission already finished"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /submissions/{submission_id}/finish [post]
func (ctrl *SubmissionController) FinishSubmission(c *gin.Context) {
	submissionID, err := strconv.ParseUint(c.Param("submission_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Submission ID format"})
		return
	}

	userID, _ := middleware.ActingUser(c)
	submission, err := ctrl.submissionService.Finish(uint(submissionID), userID)
	if err != nil {
		controller.WriteError(c, err, "Failed to finish submission")
		return
	}
	c.JSON(http.StatusOK, submission)
}

// GetSubmissionResult godoc
// @Summary Get the result of a submission
// @Description Visible to the owning user or an admin.
// @Tags submissions
// @Produce json
// @Security BearerAuth
// @Param submission_id path int true "Submission ID"
// @Success 200 {object} dto.SubmissionResultDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid Submission ID format"
// @Failure 403 {object} dto.ErrorResponse "Submission owned by another user"
// @Failure 404 {object} dto.ErrorResponse "Submission not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /submissions/{submission_id}/result [get]
func (ctrl *SubmissionController) GetSubmissionResult(c *gin.Context) {
	submissionID, err := strconv.ParseUint(c.Param("submission_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Submission ID format"})
		return
	}

	userID, role := middleware.ActingUser(c)
	result, err := ctrl.submissionService.GetResult(uint(submissionID), userID, role)
	if err != nil {
		controller.WriteError(c, err, "Failed to retrieve result")
		return
	}
	c.JSON(http.StatusOK, result)
}
