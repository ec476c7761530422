package api

import (
	"context"
	"errors"
	"strings"
	"time"

	"uno/common/http"
	"uno/core/domain/repository"
)

const (
	activeGamesLimit = 20
	leaderboardLimit = 10

	cacheKeyStats       = "stats:games"
	cacheKeyLeaderboard = "stats:leaderboard"
)

type gameHandlers struct {
	deps     *Deps
	cacheTTL time.Duration
}

func (h *gameHandlers) reqCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 5*time.Second)
}

// GetActiveGames 活跃对局列表
func (h *gameHandlers) GetActiveGames(c *http.Context) error {
	ctx, cancel := h.reqCtx()
	defer cancel()

	games, err := h.deps.Games.FindActive(ctx, activeGamesLimit)
	if err != nil {
		c.InternalServerError(err.Error())
		return nil
	}

	c.SuccessWithCount(len(games), games)
	return nil
}

// GetGameStats 按状态聚合的对局数量
func (h *gameHandlers) GetGameStats(c *http.Context) error {
	if cached, ok := h.deps.Cache.Get(cacheKeyStats); ok {
		c.Success(cached)
		return nil
	}

	ctx, cancel := h.reqCtx()
	defer cancel()

	counts, err := h.deps.Games.CountByStatus(ctx)
	if err != nil {
		c.InternalServerError(err.Error())
		return nil
	}

	h.deps.Cache.SetWithTTL(cacheKeyStats, counts, h.cacheTTL)
	c.Success(counts)
	return nil
}

// leaderboardEntry 排行榜条目
type leaderboardEntry struct {
	Rank        int    `json:"rank"`
	Username    string `json:"username"`
	GamesWon    int    `json:"gamesWon"`
	GamesPlayed int    `json:"gamesPlayed"`
	WinRate     string `json:"winRate"`
}

// GetLeaderboard 排行榜：前 10，胜场降序，平手按场次少者靠前
func (h *gameHandlers) GetLeaderboard(c *http.Context) error {
	if cached, ok := h.deps.Cache.Get(cacheKeyLeaderboard); ok {
		c.Success(cached)
		return nil
	}

	ctx, cancel := h.reqCtx()
	defer cancel()

	records, err := h.deps.Players.Leaderboard(ctx, leaderboardLimit)
	if err != nil {
		c.InternalServerError(err.Error())
		return nil
	}

	leaderboard := make([]leaderboardEntry, 0, len(records))
	for i, record := range records {
		leaderboard = append(leaderboard, leaderboardEntry{
			Rank:        i + 1,
			Username:    record.Username,
			GamesWon:    record.GamesWon,
			GamesPlayed: record.GamesPlayed,
			WinRate:     record.WinRate(),
		})
	}

	h.deps.Cache.SetWithTTL(cacheKeyLeaderboard, leaderboard, h.cacheTTL)
	c.Success(leaderboard)
	return nil
}

// playerStatsView 玩家战绩视图
type playerStatsView struct {
	Username    string `json:"username"`
	GamesPlayed int    `json:"gamesPlayed"`
	GamesWon    int    `json:"gamesWon"`
	WinRate     string `json:"winRate"`
}

// GetPlayerStats 单个玩家战绩
func (h *gameHandlers) GetPlayerStats(c *http.Context) error {
	username := c.GetParam("username")

	ctx, cancel := h.reqCtx()
	defer cancel()

	record, err := h.deps.Players.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrPlayerNotFound) {
			c.NotFound("Player not found")
			return nil
		}
		c.InternalServerError(err.Error())
		return nil
	}

	c.Success(&playerStatsView{
		Username:    record.Username,
		GamesPlayed: record.GamesPlayed,
		GamesWon:    record.GamesWon,
		WinRate:     record.WinRate() + "%",
	})
	return nil
}

// CreatePlayer 创建玩家，已存在时返回现有记录
func (h *gameHandlers) CreatePlayer(c *http.Context) error {
	var req struct {
		Username string `json:"username"`
	}
	if err := c.BindJSON(&req); err != nil || strings.TrimSpace(req.Username) == "" {
		c.BadRequest("Username is required")
		return nil
	}

	ctx, cancel := h.reqCtx()
	defer cancel()

	record, err := h.deps.Players.Upsert(ctx, req.Username)
	if err != nil {
		c.InternalServerError(err.Error())
		return nil
	}

	c.Success(record)
	return nil
}

// UpdatePlayerStats 赛后累计玩家战绩
func (h *gameHandlers) UpdatePlayerStats(c *http.Context) error {
	var req struct {
		Username string `json:"username"`
		Won      bool   `json:"won"`
	}
	if err := c.BindJSON(&req); err != nil || req.Username == "" {
		c.BadRequest("Username is required")
		return nil
	}

	ctx, cancel := h.reqCtx()
	defer cancel()

	record, err := h.deps.Players.IncrementStats(ctx, req.Username, req.Won)
	if err != nil {
		if errors.Is(err, repository.ErrPlayerNotFound) {
			c.NotFound("Player not found")
			return nil
		}
		c.InternalServerError(err.Error())
		return nil
	}

	// 战绩变了，聚合缓存作废
	h.deps.Cache.Del(cacheKeyLeaderboard)
	h.deps.Cache.Del(cacheKeyStats)

	c.Success(record)
	return nil
}
