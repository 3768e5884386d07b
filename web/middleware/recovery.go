package middleware

import (
	"net"
	"net/http"
	"os"
	"runtime/debug"
	"strings"

	"github.com/protorns/tg-miniapp-server/config"
	"github.com/protorns/tg-miniapp-server/logger"

	"github.com/gin-gonic/gin"
)

// RecoveryMiddleware catches handler panics so a single bad request cannot
// take the process down.
func RecoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				// A client hanging up mid-response surfaces as a broken
				// pipe panic; that only needs a log line, not a stack.
				var brokenPipe bool
				if ne, ok := err.(*net.OpError); ok {
					if se, ok := ne.Err.(*os.SyscallError); ok {
						if strings.Contains(strings.ToLower(se.Error()), "broken pipe") || strings.Contains(strings.ToLower(se.Error()), "connection reset by peer") {
							brokenPipe = true
						}
					}
				}

				if brokenPipe {
					logger.Errorf("[PANIC RECOVER] Broken pipe: %v", err)
					c.Error(err.(error)) // nolint: errcheck
					c.Abort()
					return
				}

				if config.IsDebug() {
					stack := string(debug.Stack())
					logger.Errorf("[PANIC RECOVER] panic recovered:\nError: %v\nStack: %s", err, stack)
				} else {
					logger.Errorf("[PANIC RECOVER] panic recovered: %v", err)
				}

				c.AbortWithStatus(http.StatusInternalServerError)
			}
		}()
		c.Next()
	}
}
