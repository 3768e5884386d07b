package controller

import (
	"errors"
	"net/http"

	"github.com/protorns/tg-miniapp-server/util/common"

	"github.com/gin-gonic/gin"
)

// The Mini App client predates this server, so error bodies keep its wire
// shape: {"detail": "..."} with a meaningful status code.

func jsonDetail(c *gin.Context, status int, detail string) {
	c.JSON(status, gin.H{"detail": detail})
}

func jsonError(c *gin.Context, err error) {
	jsonDetail(c, httpStatusFromErr(err), detailFromErr(err))
}

func httpStatusFromErr(err error) int {
	switch common.GetErrorCode(err) {
	case common.ErrCodeNotFound:
		return http.StatusNotFound
	case common.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case common.ErrCodeForbidden:
		return http.StatusForbidden
	case common.ErrCodeInvalidInput:
		return http.StatusBadRequest
	case common.ErrCodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// detailFromErr strips the operation prefix so clients see only the
// underlying reason.
func detailFromErr(err error) string {
	var se *common.ServiceError
	if errors.As(err, &se) && se.Err != nil {
		return se.Err.Error()
	}
	return err.Error()
}
