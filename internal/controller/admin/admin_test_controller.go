package admin

import (
	"net/http"
	"strconv"

	"github.com/Shibo14/ielts-mock/internal/controller"
	"github.com/Shibo14/ielts-mock/internal/dto"
	"github.com/Shibo14/ielts-mock/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type AdminTestController struct {
	adminTestService service.AdminTestService
	userTestService  service.UserTestService
}

func NewAdminTestController(adminTestService service.AdminTestService, userTestService service.UserTestService) *AdminTestController {
	return &AdminTestController{
		adminTestService: adminTestService,
		userTestService:  userTestService,
	}
}

// CreateTest godoc
// @Summary (Admin) Create a new test
// @Description Creates a test shell with an auto-generated slug. Questions are added via the import endpoint.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param test body dto.TestCreateDTO true "Test metadata"
// @Success 201 {object} dto.TestResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/tests [post]
func (ctrl *AdminTestController) CreateTest(c *gin.Context) {
	var req dto.TestCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("CreateTest: failed to bind request")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	test, err := ctrl.adminTestService.CreateTest(req)
	if err != nil {
		controller.WriteError(c, err, "Failed to create test")
		return
	}
	c.JSON(http.StatusCreated, test)
}

// ListTests godoc
// @Summary (Admin) List all tests
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.TestSummaryDTO
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/tests [get]
func (ctrl *AdminTestController) ListTests(c *gin.Context) {
	tests, err := ctrl.userTestService.GetAllTests()
	if err != nil {
		controller.WriteError(c, err, "Failed to retrieve tests")
		return
	}
	c.JSON(http.StatusOK, tests)
}

// ImportQuestions godoc
// @Summary (Admin) Bulk-import questions from a JSON array
// @Description Appends questions to an existing test. Options are stored only for mcq items.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param test_id path int true "Test ID"
// @Param questions body []dto.QuestionImportDTO true "Questions to import"
// @Success 200 {object} dto.QuestionImportResultDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid request body or Test ID"
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/tests/{test_id}/questions/import [post]
func (ctrl *AdminTestController) ImportQuestions(c *gin.Context) {
	testID, err := strconv.ParseUint(c.Param("test_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Test ID format"})
		return
	}

	var items []dto.QuestionImportDTO
	if err := c.ShouldBindJSON(&items); err != nil {
		log.Warn().Err(err).Msg("ImportQuestions: failed to bind request")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid import payload", Details: []string{err.Error()}})
		return
	}

	result, err := ctrl.adminTestService.ImportQuestions(uint(testID), items)
	if err != nil {
		controller.WriteError(c, err, "Failed to import questions")
		return
	}
	c.JSON(http.StatusOK, result)
}

// ListResults godoc
// @Summary (Admin) List all submissions with taker and test details
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.AdminResultDTO
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/results [get]
func (ctrl *AdminTestController) ListResults(c *gin.Context) {
	results, err := ctrl.adminTestService.ListResults()
	if err != nil {
		controller.WriteError(c, err, "Failed to retrieve results")
		return
	}
	c.JSON(http.StatusOK, results)
}
