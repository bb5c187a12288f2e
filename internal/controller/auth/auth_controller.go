package auth

import (
	"net/http"

	"github.com/Shibo14/ielts-mock/internal/controller"
	"github.com/Shibo14/ielts-mock/internal/dto"
	"github.com/Shibo14/ielts-mock/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type AuthController struct {
	authService service.AuthService
}

func NewAuthController(authService service.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Login godoc
// @Summary Log in with email and password
// @Description Verifies credentials and returns a bearer token for subsequent requests.
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body dto.LoginRequest true "Email and password"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 401 {object} dto.ErrorResponse "Invalid email or password"
// @Router /auth/login [post]
func (ctrl *AuthController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Login: failed to bind request")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := ctrl.authService.Login(req)
	if err != nil {
		controller.WriteError(c, err, "Failed to log in")
		return
	}
	c.JSON(http.StatusOK, resp)
}
