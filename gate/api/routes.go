package api

import (
	"time"

	"uno/common/cache"
	"uno/common/http"
	"uno/core/domain/repository"
)

// Deps 统计接口依赖
type Deps struct {
	Games   repository.GameRecordRepository
	Players repository.PlayerRepository
	Cache   *cache.GeneralCache
}

// RegisterRoutes 注册统计查询接口
func RegisterRoutes(server *http.HttpServer, deps *Deps) {
	server.GET("/ping", PingHandler)

	h := &gameHandlers{deps: deps, cacheTTL: 5 * time.Second}

	// 只读统计接口，契约与线上版本一致
	g := server.Group("/api/game")
	{
		g.GET("/active", h.GetActiveGames)
		g.GET("/stats", h.GetGameStats)
		g.GET("/leaderboard", h.GetLeaderboard)
		g.GET("/player/:username", h.GetPlayerStats)
		g.POST("/player", h.CreatePlayer)
		g.PUT("/player/stats", h.UpdatePlayerStats)
	}
}

// PingHandler 健康检查
func PingHandler(c *http.Context) error {
	c.String(200, "pong")
	return nil
}
