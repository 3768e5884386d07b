package controller

import (
	"net/http"

	"github.com/protorns/tg-miniapp-server/web/entity"
	"github.com/protorns/tg-miniapp-server/web/service"

	"github.com/gin-gonic/gin"
)

type ProfileController struct {
	BaseController

	userService *service.UserService
}

func NewProfileController(g *gin.RouterGroup, authService *service.TelegramAuthService, userService *service.UserService) *ProfileController {
	a := &ProfileController{
		userService: userService,
	}
	a.authService = authService
	a.initRouter(g)
	return a
}

func (a *ProfileController) initRouter(g *gin.RouterGroup) {
	g.GET("/api/profile", a.getProfile)
	g.POST("/api/profile", a.saveProfile)
}

func (a *ProfileController) getProfile(c *gin.Context) {
	webAppUser, ok := a.verifyQueryInitData(c)
	if !ok {
		return
	}

	user, err := a.userService.GetProfile(webAppUser.Id)
	if err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, entity.ProfileFromUser(user))
}

func (a *ProfileController) saveProfile(c *gin.Context) {
	webAppUser, ok := a.verifyQueryInitData(c)
	if !ok {
		return
	}

	var update entity.ProfileUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		jsonDetail(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := update.CheckValid(); err != nil {
		jsonError(c, err)
		return
	}

	user, err := a.userService.SaveProfile(webAppUser.Id, update.FullName, update.Department)
	if err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, entity.ProfileFromUser(user))
}
