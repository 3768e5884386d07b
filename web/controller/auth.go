package controller

import (
	"net/http"

	"github.com/protorns/tg-miniapp-server/web/entity"
	"github.com/protorns/tg-miniapp-server/web/service"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	BaseController

	userService *service.UserService
}

func NewAuthController(g *gin.RouterGroup, authService *service.TelegramAuthService, userService *service.UserService) *AuthController {
	a := &AuthController{
		userService: userService,
	}
	a.authService = authService
	a.initRouter(g)
	return a
}

func (a *AuthController) initRouter(g *gin.RouterGroup) {
	g.POST("/api/auth/telegram", a.authTelegram)
}

// authTelegram verifies the signed initData from the request body and
// returns the stored profile, registering the user on first contact.
func (a *AuthController) authTelegram(c *gin.Context) {
	var payload entity.AuthPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		jsonDetail(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.InitData == "" {
		jsonDetail(c, http.StatusUnauthorized, "missing initData")
		return
	}

	webAppUser, err := a.authService.Verify(payload.InitData)
	if err != nil {
		jsonError(c, err)
		return
	}

	user, err := a.userService.Authenticate(webAppUser)
	if err != nil {
		jsonError(c, err)
		return
	}

	c.JSON(http.StatusOK, entity.ProfileFromUser(user))
}
