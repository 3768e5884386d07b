package controller

import (
	"net/http"

	"github.com/protorns/tg-miniapp-server/web/service"

	"github.com/gin-gonic/gin"
)

type BaseController struct {
	authService *service.TelegramAuthService
}

// verifyQueryInitData authenticates a request that carries signed initData
// in the query string. On failure the response is already written.
func (a *BaseController) verifyQueryInitData(c *gin.Context) (*service.WebAppUser, bool) {
	initData := c.Query("initData")
	if initData == "" {
		jsonDetail(c, http.StatusUnauthorized, "missing initData")
		return nil, false
	}
	user, err := a.authService.Verify(initData)
	if err != nil {
		jsonError(c, err)
		return nil, false
	}
	return user, true
}
