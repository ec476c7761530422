package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"uno/common/cache"
	"uno/common/config"
	"uno/common/database"
	"uno/common/http"
	"uno/common/log"
	"uno/core/infrastructure/persistence"
	"uno/framework/conn"
	"uno/framework/game"
	"uno/gate/api"
)

// Run 组装并启动整个服务：持久层、房间注册表、调度循环、websocket、统计 HTTP
// 阻塞直到 ctx 取消或收到退出信号
func Run(ctx context.Context) error {
	cfg := config.Conf

	mongo := database.NewMongo(cfg.MongoConf)
	defer mongo.Close()
	redis := database.NewRedis(cfg.RedisConf)
	defer redis.Close()

	gameRecords := persistence.NewGameRecordRepository(mongo, redis)
	players := persistence.NewPlayerRepository(mongo)

	initCtx, cancelInit := context.WithTimeout(ctx, 10*time.Second)
	defer cancelInit()
	if err := gameRecords.EnsureIndexes(initCtx, cfg.GameConf.SnapshotRetentionS); err != nil {
		log.Fatal("建立对局快照索引失败: %v", err)
	}
	if err := players.EnsureIndexes(initCtx); err != nil {
		log.Fatal("建立玩家索引失败: %v", err)
	}

	statsCache, err := cache.NewGeneralCache(32<<20, 5*time.Second)
	if err != nil {
		log.Fatal("初始化统计缓存失败: %v", err)
	}
	defer statsCache.Close()

	// 调度循环：连接事件与计时器回调在单协程内串行处理
	registry := game.NewRegistry()
	manager := conn.NewManager()
	dispatcher := game.NewDispatcher(registry, manager, persistence.NewSnapshotSink(gameRecords), game.Options{
		GameTimeLimitMs:     cfg.GameConf.GameTimeLimitMs,
		NormalTurnTimeMs:    cfg.GameConf.NormalTurnTimeMs,
		FastTurnTimeMs:      cfg.GameConf.FastTurnTimeMs,
		FastModeThresholdMs: cfg.GameConf.FastModeThresholdMs,
	})
	go dispatcher.Run(manager.Events())

	go func() {
		if err := manager.Run(cfg.WsAddr); err != nil {
			log.Fatal("websocket 服务启动失败: %v", err)
		}
	}()

	httpServer := http.NewHttpServer(http.WithPort(cfg.HttpPort), http.WithMode("release"))
	api.RegisterRoutes(httpServer, &api.Deps{
		Games:   gameRecords,
		Players: players,
		Cache:   statsCache,
	})
	go func() {
		log.Info("统计 HTTP 服务监听 :%d", cfg.HttpPort)
		if err := httpServer.Start(); err != nil {
			log.Error("统计 HTTP 服务退出: %v", err)
		}
	}()

	stop := func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
		manager.Close()
		dispatcher.Close()
		log.Info("服务已关闭")
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGINT, syscall.SIGHUP)
	for {
		select {
		case <-ctx.Done():
			stop()
			return nil
		case s := <-c:
			switch s {
			case syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGINT:
				stop()
				log.Info("中断信号，服务停止")
				return nil
			case syscall.SIGHUP:
				stop()
				log.Info("挂起信号，服务停止")
				return nil
			default:
				return nil
			}
		}
	}
}
