package database

import (
	"context"
	"time"

	"uno/common/config"
	"uno/common/log"

	"github.com/redis/go-redis/v9"
)

type RedisManager struct {
	Cli *redis.Client
}

func NewRedis(redisConf config.RedisConf) *RedisManager {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if redisConf.Addr == "" {
		panic("redis 配置出错")
	}

	cli := redis.NewClient(&redis.Options{
		Addr:         redisConf.Addr,
		Password:     redisConf.Password, // 没有密码时为空字符串，Redis 会忽略
		PoolSize:     redisConf.PoolSize,
		MinIdleConns: redisConf.MinIdleConns,
	})
	if err := cli.Ping(ctx).Err(); err != nil {
		log.Fatal("redis 连接错误: %v", err)
		return nil
	}

	return &RedisManager{Cli: cli}
}

// Incr 自增计数器，返回自增后的值
func (r *RedisManager) Incr(ctx context.Context, key string) (int64, error) {
	return r.Cli.Incr(ctx, key).Result()
}

func (r *RedisManager) Close() error {
	if r == nil || r.Cli == nil {
		return nil
	}
	return r.Cli.Close()
}
