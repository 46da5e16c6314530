package config

import (
	"errors"
	"fmt"

	"undercover-local/internal/service/game"

	"github.com/spf13/viper"
)

type AppConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	LogLevel string `mapstructure:"log_level"`
	// 玩家名、身份名等文案的语言
	Locale string `mapstructure:"locale"`
	// 前端静态文件目录，为空时只提供 API
	StaticDir string `mapstructure:"static_dir"`

	DefaultSettings game.Settings `mapstructure:"default_settings"`
	// 为空时使用内置词库
	WordPairs []game.WordPair `mapstructure:"word_pairs"`
}

func (c *AppConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

var cfg *AppConfig

func GetConfig() *AppConfig {
	if cfg == nil {
		cfg = InitConfig()
	}

	return cfg
}

// InitConfig 读取当前目录下的 app_config.json，文件不存在时全部使用默认值
func InitConfig() *AppConfig {
	v := newViper()

	v.SetConfigName("app_config")
	v.SetConfigType("json")
	v.AddConfigPath(".")

	config, err := load(v, true)
	if err != nil {
		panic(err)
	}

	cfg = config

	return config
}

// LoadConfig 从指定文件读取配置，文件必须存在
func LoadConfig(path string) (*AppConfig, error) {
	v := newViper()
	v.SetConfigFile(path)

	return load(v, false)
}

func newViper() *viper.Viper {
	v := viper.New()

	defaults := game.DefaultSettings()

	v.SetDefault("host", "127.0.0.1")
	v.SetDefault("port", 8080)
	v.SetDefault("log_level", "info")
	v.SetDefault("locale", "zh-CN")
	v.SetDefault("static_dir", "")
	v.SetDefault("default_settings.player_count", defaults.PlayerCount)
	v.SetDefault("default_settings.undercover_count", defaults.UndercoverCount)
	v.SetDefault("default_settings.mr_white_count", defaults.MrWhiteCount)

	return v
}

func load(v *viper.Viper, optional bool) (*AppConfig, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !optional || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("加载配置失败: %w", err)
		}
	}

	var config AppConfig

	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	if config.Port < 1 || config.Port > 65535 {
		return nil, fmt.Errorf("端口号无效（必须在 1-65535 之间）: %d", config.Port)
	}

	// 默认人数配置同样要满足夹取规则
	config.DefaultSettings = config.DefaultSettings.Clamp()

	return &config, nil
}
