package user

import (
	"net/http"
	"path/filepath"

	"github.com/Shibo14/ielts-mock/config"
	"github.com/Shibo14/ielts-mock/internal/controller"
	"github.com/Shibo14/ielts-mock/internal/dto"
	"github.com/Shibo14/ielts-mock/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type UserTestController struct {
	userTestService service.UserTestService
	cfg             *config.Config
}

func NewUserTestController(userTestService service.UserTestService, cfg *config.Config) *UserTestController {
	return &UserTestController{userTestService: userTestService, cfg: cfg}
}

// GetAllTests godoc
// @Summary List all available tests
// @Description Tests ordered by section and title, each with its question count.
// @Tags tests
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.TestSummaryDTO
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /tests [get]
func (ctrl *UserTestController) GetAllTests(c *gin.Context) {
	tests, err := ctrl.userTestService.GetAllTests()
	if err != nil {
		log.Error().Err(err).Msg("GetAllTests: service error")
		controller.WriteError(c, err, "Failed to retrieve tests")
		return
	}
	c.JSON(http.StatusOK, tests)
}

// GetTestDetails godoc
// @Summary Get a test with its ordered questions
// @Description Accepts a numeric test id or a slug. Answer keys are never included.
// @Tags tests
// @Produce json
// @Security BearerAuth
// @Param test_id path string true "Test ID or slug"
// @Success 200 {object} dto.TestResponseDTO
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /tests/{test_id} [get]
func (ctrl *UserTestController) GetTestDetails(c *gin.Context) {
	ref := c.Param("test_id")
	test, err := ctrl.userTestService.GetTestDetails(ref)
	if err != nil {
		controller.WriteError(c, err, "Failed to retrieve test")
		return
	}
	c.JSON(http.StatusOK, test)
}

// ServeAudio godoc
// @Summary Download a test's audio asset
// @Tags tests
// @Produce octet-stream
// @Security BearerAuth
// @Param filename path string true "Audio filename"
// @Success 200 {file} binary
// @Failure 400 {object} dto.ErrorResponse "Invalid filename"
// @Router /audio/{filename} [get]
func (ctrl *UserTestController) ServeAudio(c *gin.Context) {
	filename := filepath.Base(c.Param("filename")) // strip any path components
	if filename == "." || filename == "/" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid filename"})
		return
	}
	c.File(filepath.Join(ctrl.cfg.AudioDir, filename))
}
