package config

import (
	"fmt"
	"os"
	"strings"

	"uno/common/log"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Conf 全局配置，Load 成功后可读
var Conf ServerConfiguration

// ServerConfiguration 单进程服务配置
// 游戏核心、websocket、统计 HTTP 接口运行在同一个进程内
type ServerConfiguration struct {
	BaseConfig   `mapstructure:",squash"`
	DatabaseConf `mapstructure:"database"`
	LogConf      `mapstructure:"log"`
	GameConf     `mapstructure:"game"`
	HttpPort     int    `mapstructure:"httpPort"`
	WsAddr       string `mapstructure:"wsAddr"`
}

type BaseConfig struct {
	ID         string `mapstructure:"id"`
	MetricPort int    `mapstructure:"metricPort"`
}

type LogConf struct {
	Level string `mapstructure:"level"`
	Path  string `mapstructure:"path"`
}

type DatabaseConf struct {
	MongoConf MongoConf `mapstructure:"mongo"`
	RedisConf RedisConf `mapstructure:"redis"`
}

type MongoConf struct {
	Url         string `mapstructure:"url"`
	Db          string `mapstructure:"db"`
	Username    string `mapstructure:"username"`
	Password    string `mapstructure:"password"`
	MinPoolSize int    `mapstructure:"minPoolSize"`
	MaxPoolSize int    `mapstructure:"maxPoolSize"`
}

type RedisConf struct {
	Addr         string `mapstructure:"addr"`
	Password     string `mapstructure:"password"`
	PoolSize     int    `mapstructure:"poolSize"`
	MinIdleConns int    `mapstructure:"minIdleConns"`
}

// GameConf 对局相关的时间参数（单位：毫秒，快照保留为秒）
type GameConf struct {
	GameTimeLimitMs     int64 `mapstructure:"gameTimeLimitMs"`
	NormalTurnTimeMs    int64 `mapstructure:"normalTurnTimeMs"`
	FastTurnTimeMs      int64 `mapstructure:"fastTurnTimeMs"`
	FastModeThresholdMs int64 `mapstructure:"fastModeThresholdMs"`
	SnapshotRetentionS  int32 `mapstructure:"snapshotRetentionSeconds"`
}

// Load 读取配置文件并填充全局配置
// 支持环境变量覆盖，NODE_ID 覆盖实例 ID
func Load(configFile string) error {
	v := viper.New()
	v.SetConfigFile(configFile)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setGameDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return err
	}

	var cfg ServerConfiguration
	if err := v.Unmarshal(&cfg); err != nil {
		return err
	}
	if nodeID := os.Getenv("NODE_ID"); nodeID != "" {
		cfg.ID = nodeID
	}
	if cfg.ID == "" {
		return fmt.Errorf("配置缺少实例 ID（id 字段或 NODE_ID 环境变量）")
	}

	Conf = cfg

	// 监听配置文件变化，仅支持日志级别热更新
	v.WatchConfig()
	v.OnConfigChange(func(in fsnotify.Event) {
		if err := v.ReadInConfig(); err != nil {
			log.Warn("配置重载失败: %v", err)
			return
		}
		level := v.GetString("log.level")
		if level != "" && level != Conf.LogConf.Level {
			Conf.LogConf.Level = level
			log.SetLevel(level)
			log.Info("日志级别更新为 %s", level)
		}
	})

	return nil
}

func setGameDefaults(v *viper.Viper) {
	v.SetDefault("game.gameTimeLimitMs", 150000)
	v.SetDefault("game.normalTurnTimeMs", 20000)
	v.SetDefault("game.fastTurnTimeMs", 10000)
	v.SetDefault("game.fastModeThresholdMs", 60000)
	v.SetDefault("game.snapshotRetentionSeconds", 86400)
	v.SetDefault("httpPort", 8080)
	v.SetDefault("wsAddr", ":8082")
	v.SetDefault("metricPort", 5845)
}
