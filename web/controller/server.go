package controller

import (
	"net/http"

	"github.com/protorns/tg-miniapp-server/config"
	"github.com/protorns/tg-miniapp-server/database"
	"github.com/protorns/tg-miniapp-server/web/service"

	"github.com/gin-gonic/gin"
)

type ServerController struct {
	BaseController

	serverService *service.ServerService
}

func NewServerController(g *gin.RouterGroup, authService *service.TelegramAuthService, serverService *service.ServerService) *ServerController {
	a := &ServerController{
		serverService: serverService,
	}
	a.authService = authService
	a.initRouter(g)
	return a
}

func (a *ServerController) initRouter(g *gin.RouterGroup) {
	g.GET("/api/health", a.health)
	g.GET("/api/status", a.status)
}

// health is the liveness probe: process up and database reachable.
func (a *ServerController) health(c *gin.Context) {
	if err := database.Ping(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "degraded",
			"version": config.GetVersion(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": config.GetVersion(),
	})
}

// status returns host stats. Admin only: the caller must present initData
// signed for a Telegram ID in the admin list.
func (a *ServerController) status(c *gin.Context) {
	webAppUser, ok := a.verifyQueryInitData(c)
	if !ok {
		return
	}
	if !a.authService.IsAdmin(webAppUser.Id) {
		jsonDetail(c, http.StatusForbidden, "admin only")
		return
	}
	c.JSON(http.StatusOK, a.serverService.GetStatus())
}
