package server

import (
	"context"
	"embed"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"sanggwon/internal/api/v1"
	"sanggwon/internal/chart"
	"sanggwon/internal/config"
	"sanggwon/internal/dataset"
)

//go:embed all:dist
var staticFiles embed.FS

// Server HTTP 서버
type Server struct {
	router *gin.Engine
	v1     *v1.Handler

	mu   sync.Mutex
	http *http.Server
}

// NewServer 서버 생성
func NewServer(cfg *config.AppConfig, cache *dataset.Cache, charts *chart.Renderer) (*Server, error) {
	devMode := cfg.Server.DevMode
	if !devMode {
		gin.SetMode(gin.ReleaseMode)
	}

	ranking, err := cfg.Ranking.Options()
	if err != nil {
		return nil, err
	}

	s := &Server{
		router: gin.Default(),
		v1:     v1.NewHandler(cache, ranking, charts),
	}

	s.setupRoutes()

	return s, nil
}

// setupRoutes 라우트 설정
func (s *Server) setupRoutes() {
	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		c.Header("Access-Control-Expose-Headers", "Content-Disposition, X-Export-Id")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	// V1 API
	api := s.router.Group("/api")
	{
		s.v1.RegisterRoutes(api)
	}

	// 정적 페이지
	sub, _ := fs.Sub(staticFiles, "dist")
	index := func(c *gin.Context) {
		data, err := fs.ReadFile(sub, "index.html")
		if err != nil {
			c.Status(http.StatusNotFound)
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", data)
	}
	s.router.GET("/", index)
	s.router.NoRoute(func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		index(c)
	})
}

// Handler 라우터 (테스트용)
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run 서버 시작, Shutdown 으로 종료하면 nil
func (s *Server) Run(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.mu.Lock()
	s.http = srv
	s.mu.Unlock()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown 진행 중인 요청을 마치고 종료
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv := s.http
	s.mu.Unlock()
	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}

// SetReloadSchedule 자동 재로딩 상태를 /api/status 에 노출
func (s *Server) SetReloadSchedule(schedule v1.ReloadSchedule) {
	s.v1.SetReloadSchedule(schedule)
}
