package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HandlerFunc func(*Context) error
type MiddlewareFunc func(*Context) error

// HttpServer HTTP 服务器封装
type HttpServer struct {
	engine *gin.Engine
	server *http.Server
	port   int
}

// ServerOption 服务器配置选项
type ServerOption func(*HttpServer)

// WithPort 设置端口
func WithPort(port int) ServerOption {
	return func(s *HttpServer) {
		s.port = port
	}
}

// WithMode 设置运行模式
func WithMode(mode string) ServerOption {
	return func(s *HttpServer) {
		gin.SetMode(mode)
	}
}

// NewHttpServer 创建 HTTP 服务器
func NewHttpServer(opts ...ServerOption) *HttpServer {
	server := &HttpServer{
		engine: gin.New(),
		port:   8080,
	}

	for _, opt := range opts {
		opt(server)
	}

	server.engine.Use(gin.Logger())
	server.engine.Use(gin.Recovery())

	return server
}

// wrapHandler 包装处理函数
func (s *HttpServer) wrapHandler(handler HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := newContext(c)
		if err := handler(ctx); err != nil {
			// 统一错误处理
			ctx.InternalServerError(err.Error())
		}
	}
}

// GET 注册 GET 路由
func (s *HttpServer) GET(path string, handler HandlerFunc) {
	s.engine.GET(path, s.wrapHandler(handler))
}

// POST 注册 POST 路由
func (s *HttpServer) POST(path string, handler HandlerFunc) {
	s.engine.POST(path, s.wrapHandler(handler))
}

// PUT 注册 PUT 路由
func (s *HttpServer) PUT(path string, handler HandlerFunc) {
	s.engine.PUT(path, s.wrapHandler(handler))
}

// Group 创建路由组
func (s *HttpServer) Group(prefix string) *RouterGroup {
	return &RouterGroup{
		group:  s.engine.Group(prefix),
		server: s,
	}
}

// RouterGroup 路由组封装
type RouterGroup struct {
	group  *gin.RouterGroup
	server *HttpServer
}

func (g *RouterGroup) GET(path string, handler HandlerFunc) {
	g.group.GET(path, g.server.wrapHandler(handler))
}

func (g *RouterGroup) POST(path string, handler HandlerFunc) {
	g.group.POST(path, g.server.wrapHandler(handler))
}

func (g *RouterGroup) PUT(path string, handler HandlerFunc) {
	g.group.PUT(path, g.server.wrapHandler(handler))
}

// Start 启动服务器（阻塞）
func (s *HttpServer) Start() error {
	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.port),
		Handler: s.engine,
	}
	return s.server.ListenAndServe()
}

// Shutdown 优雅关闭
func (s *HttpServer) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
