package web

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/protorns/tg-miniapp-server/config"
	"github.com/protorns/tg-miniapp-server/logger"
	"github.com/protorns/tg-miniapp-server/web/controller"
	"github.com/protorns/tg-miniapp-server/web/job"
	"github.com/protorns/tg-miniapp-server/web/middleware"
	"github.com/protorns/tg-miniapp-server/web/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	cron "github.com/robfig/cron/v3"
)

// keepAliveListener intercepts accepted connections to enable TCP
// Keep-Alive with a short period, so dead clients are noticed quickly.
type keepAliveListener struct {
	*net.TCPListener
	KeepAlivePeriod time.Duration
}

func (l keepAliveListener) Accept() (net.Conn, error) {
	tc, err := l.TCPListener.AcceptTCP()
	if err != nil {
		return nil, err
	}

	if err := tc.SetKeepAlive(true); err != nil {
		logger.Warning("Failed to set KeepAlive:", err)
	}
	if err := tc.SetKeepAlivePeriod(l.KeepAlivePeriod); err != nil {
		logger.Warning("Failed to set KeepAlivePeriod:", err)
	}

	return tc, nil
}

type Server struct {
	httpServer *http.Server
	listener   net.Listener

	auth    *controller.AuthController
	profile *controller.ProfileController
	server  *controller.ServerController

	authService     *service.TelegramAuthService
	userService     *service.UserService
	settingService  *service.SettingService
	serverService   *service.ServerService
	telegramService service.TelegramService

	cron *cron.Cron

	ctx    context.Context
	cancel context.CancelFunc
}

func NewServer(authService *service.TelegramAuthService, userService *service.UserService, settingService *service.SettingService, serverService *service.ServerService) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		ctx:            ctx,
		cancel:         cancel,
		authService:    authService,
		userService:    userService,
		settingService: settingService,
		serverService:  serverService,
	}
}

// SetTelegramService injects the bot once it exists; the server only needs
// it for the stats job.
func (s *Server) SetTelegramService(tg service.TelegramService) {
	s.telegramService = tg
}

func (s *Server) initRouter() (*gin.Engine, error) {
	if config.IsDebug() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.DefaultWriter = io.Discard
		gin.DefaultErrorWriter = io.Discard
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(middleware.RecoveryMiddleware())
	engine.Use(middleware.RequestIDMiddleware())

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	origins := config.GetAllowedOrigins()
	if len(origins) == 1 && origins[0] == "*" {
		corsCfg.AllowOriginFunc = func(origin string) bool { return true }
	} else {
		corsCfg.AllowOrigins = origins
	}
	engine.Use(cors.New(corsCfg))

	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	g := engine.Group("/")

	s.auth = controller.NewAuthController(g, s.authService, s.userService)
	s.profile = controller.NewProfileController(g, s.authService, s.userService)
	s.server = controller.NewServerController(g, s.authService, s.serverService)

	return engine, nil
}

func (s *Server) startTask() {
	spec, err := s.settingService.GetStatsCron()
	if err != nil || spec == "" {
		logger.Warningf("stats cron setting invalid (%v), using @daily", err)
		spec = "@daily"
	}
	_, err = s.cron.AddJob(spec, job.NewStatsNotifyJob(s.userService, s.telegramService))
	if err != nil {
		logger.Warning("schedule stats job failed:", err)
	}
}

func (s *Server) Start() (err error) {
	defer func() {
		if err != nil {
			_ = s.Stop()
		}
	}()

	s.cron = cron.New(cron.WithSeconds())
	s.cron.Start()

	engine, err := s.initRouter()
	if err != nil {
		return err
	}

	if s.telegramService != nil {
		s.startTask()
	}

	// Bind all interfaces: the platform routes external traffic to $PORT.
	listenAddr := net.JoinHostPort("", strconv.Itoa(config.GetPort()))

	baseListener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return err
	}

	var listener net.Listener
	tcpListener, ok := baseListener.(*net.TCPListener)
	if !ok {
		logger.Warning("listener is not a TCPListener, keep-alive not configured")
		listener = baseListener
	} else {
		listener = keepAliveListener{
			TCPListener:     tcpListener,
			KeepAlivePeriod: 30 * time.Second,
		}
	}
	s.listener = listener

	s.httpServer = &http.Server{
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			logger.Error("web server exited:", err)
		}
	}()

	logger.Infof("web server listening on %s", listener.Addr().String())
	return nil
}

func (s *Server) Stop() error {
	s.cancel()

	if s.cron != nil {
		s.cron.Stop()
	}

	var err error
	if s.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		err = s.httpServer.Shutdown(ctx)
	}
	if s.listener != nil {
		if lerr := s.listener.Close(); lerr != nil && err == nil && !errors.Is(lerr, net.ErrClosed) {
			err = lerr
		}
	}
	return err
}

func (s *Server) GetCtx() context.Context {
	return s.ctx
}
