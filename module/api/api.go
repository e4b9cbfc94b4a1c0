package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/rs/cors"

	"github.com/arjun-p/rocket-engine-monitor/config"
	"github.com/arjun-p/rocket-engine-monitor/core"
	"github.com/arjun-p/rocket-engine-monitor/infra/log"
)

// Version 对外暴露的服务版本号
const Version = "1.0.0"

// Server 提供 HTTP 入口：组件查询、依赖关系查询、度中心性、故障分析。
type Server struct {
	cfgManager *config.ConfigManager
	provider   core.AnalysisProvider
	router     *gin.Engine
	httpServer *http.Server
}

func New(cfgManager *config.ConfigManager, provider core.AnalysisProvider) (*Server, error) {
	if cfgManager == nil {
		return nil, errors.New("配置管理器不能为空")
	}
	if provider == nil {
		return nil, errors.New("分析服务不能为空")
	}
	return &Server{
		cfgManager: cfgManager,
		provider:   provider,
	}, nil
}

// buildRouter 注册全部路由。
func (s *Server) buildRouter() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	engine.GET("/", s.root)
	engine.GET("/health", s.health)
	engine.GET("/components", s.components)
	engine.GET("/relationships", s.relationships)
	engine.GET("/degree-centrality", s.degreeCentrality)
	engine.GET("/failure-analysis", s.failureAnalysis)

	return engine
}

// Start 使用 gin 注册接口并启动 HTTP Server。
func (s *Server) Start(ctx context.Context) error {
	engine := s.buildRouter()

	cfg := s.cfgManager.GetConfig()
	addr := fmt.Sprintf(":%d", cfg.API.Port)
	httpSrv := &http.Server{
		Addr:    addr,
		Handler: s.corsHandler(cfg.CORS, engine),
	}

	s.router = engine
	s.httpServer = httpSrv

	log.Infof("HTTP 服务启动，监听 %s", addr)
	errCh := make(chan error, 1)
	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// Stop 优雅关闭 HTTP 服务。
func (s *Server) Stop(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

// corsHandler 按配置包一层跨域中间件。
func (s *Server) corsHandler(cfg config.CORSConfig, handler http.Handler) http.Handler {
	methods := cfg.AllowMethods
	if len(methods) == 0 {
		methods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}
	}
	headers := cfg.AllowHeaders
	if len(headers) == 0 {
		headers = []string{"*"}
	}
	return cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins(),
		AllowedMethods:   methods,
		AllowedHeaders:   headers,
		AllowCredentials: cfg.AllowCredentials,
	}).Handler(handler)
}

func (s *Server) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Rocket Engine Failure Monitor API",
		"version": Version,
		"health":  "/health",
	})
}

func (s *Server) health(c *gin.Context) {
	cfg := s.cfgManager.GetConfig()
	c.JSON(http.StatusOK, gin.H{
		"status":                "healthy",
		"version":               Version,
		"prometheux_configured": cfg.Platform.Token != "",
	})
}

func (s *Server) components(c *gin.Context) {
	components, err := s.provider.Components(c.Request.Context())
	if err != nil {
		s.fail(c, "查询组件列表失败", err)
		return
	}
	c.JSON(http.StatusOK, components)
}

func (s *Server) relationships(c *gin.Context) {
	relationships, err := s.provider.Relationships(c.Request.Context())
	if err != nil {
		s.fail(c, "查询依赖关系失败", err)
		return
	}
	c.JSON(http.StatusOK, relationships)
}

func (s *Server) degreeCentrality(c *gin.Context) {
	report, err := s.provider.DegreeCentrality(c.Request.Context())
	if err != nil {
		s.fail(c, "计算度中心性失败", err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (s *Server) failureAnalysis(c *gin.Context) {
	analysis, err := s.provider.FailureAnalysis(c.Request.Context())
	if err != nil {
		s.fail(c, "故障分析失败", err)
		return
	}
	c.JSON(http.StatusOK, analysis)
}

// fail 统一的错误响应：记日志并返回 500。
func (s *Server) fail(c *gin.Context, msg string, err error) {
	log.Errorf("%s: %v", msg, err)
	c.JSON(http.StatusInternalServerError, gin.H{
		"error": fmt.Sprintf("%s: %v", msg, err),
	})
}
