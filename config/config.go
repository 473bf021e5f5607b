package config

import (
	"bytes"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config 应用配置
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Dashboard DashboardConfig `mapstructure:"dashboard"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Email     EmailConfig     `mapstructure:"email"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port     string `mapstructure:"port"`
	Mode     string `mapstructure:"mode"`
	BaseURL  string `mapstructure:"base_url"`
	Timezone string `mapstructure:"timezone"`

	location *time.Location
}

// Location 部署时区，"今日"和"本月"统计窗口按此时区计算
func (s *ServerConfig) Location() *time.Location {
	if s.location != nil {
		return s.location
	}
	return time.Local
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	Charset  string `mapstructure:"charset"`
}

// TelegramConfig Telegram 机器人配置
type TelegramConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Token   string `mapstructure:"token"`
	Debug   bool   `mapstructure:"debug"`
}

// DashboardConfig 仪表盘访问配置
type DashboardConfig struct {
	SharedSecret          string        `mapstructure:"shared_secret"`
	AccessTokenTTLMinutes int           `mapstructure:"access_token_ttl_minutes"`
	SessionTTLHours       int           `mapstructure:"session_ttl_hours"`
	AccessTokenTTL        time.Duration `mapstructure:"-"`
	SessionTTL            time.Duration `mapstructure:"-"`
}

// JWTConfig 会话令牌签名配置
type JWTConfig struct {
	Secret string `mapstructure:"secret"`
}

// EmailConfig 邮件配置（预算超支提醒，默认关闭）
type EmailConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
	To       string `mapstructure:"to"`
}

var (
	// GlobalConfig 全局配置实例
	GlobalConfig *Config
)

// LoadConfig 加载配置
// 优先级: 环境变量 > 外部配置文件 > 嵌入的默认配置
// configPath: 可选的外部配置文件路径
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	// 1. 首先加载嵌入的默认配置
	if err := v.ReadConfig(bytes.NewReader(DefaultConfigYAML)); err != nil {
		return nil, fmt.Errorf("读取内置配置失败: %w", err)
	}

	// 2. 尝试加载外部配置文件（可选，用于覆盖默认配置）
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.MergeInConfig(); err != nil {
			log.Printf("警告: 无法读取指定配置文件 %s: %v", configPath, err)
		} else {
			log.Printf("已合并外部配置文件: %s", configPath)
		}
	} else {
		externalViper := viper.New()
		externalViper.SetConfigName("config")
		externalViper.SetConfigType("yaml")
		externalViper.AddConfigPath(".")
		externalViper.AddConfigPath("./config")
		externalViper.AddConfigPath("/etc/spendbot")
		externalViper.AddConfigPath("$HOME/.spendbot")

		if err := externalViper.ReadInConfig(); err == nil {
			if err := v.MergeConfigMap(externalViper.AllSettings()); err != nil {
				log.Printf("警告: 合并外部配置失败: %v", err)
			} else {
				log.Printf("已合并外部配置文件: %s", externalViper.ConfigFileUsed())
			}
		}
	}

	// 3. 支持环境变量覆盖
	v.SetEnvPrefix("SPENDBOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 解析配置
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	// 推导令牌有效期
	if cfg.Dashboard.AccessTokenTTLMinutes <= 0 {
		cfg.Dashboard.AccessTokenTTLMinutes = 30
	}
	if cfg.Dashboard.SessionTTLHours <= 0 {
		cfg.Dashboard.SessionTTLHours = 24
	}
	cfg.Dashboard.AccessTokenTTL = time.Duration(cfg.Dashboard.AccessTokenTTLMinutes) * time.Minute
	cfg.Dashboard.SessionTTL = time.Duration(cfg.Dashboard.SessionTTLHours) * time.Hour

	// 解析部署时区，失败则回退本地时区
	if cfg.Server.Timezone != "" {
		loc, err := time.LoadLocation(cfg.Server.Timezone)
		if err != nil {
			log.Printf("警告: 无法加载时区 %s: %v，使用本地时区", cfg.Server.Timezone, err)
		} else {
			cfg.Server.location = loc
		}
	}

	// 保存到全局变量
	GlobalConfig = &cfg

	return &cfg, nil
}

// MustLoadConfig 加载配置，失败则 panic
func MustLoadConfig(configPath string) *Config {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		panic(fmt.Sprintf("加载配置失败: %v", err))
	}
	return cfg
}

// GetConfig 获取全局配置
func GetConfig() *Config {
	if GlobalConfig == nil {
		panic("配置未初始化，请先调用 LoadConfig")
	}
	return GlobalConfig
}

// PrintConfig 打印当前配置（隐藏敏感信息）
func PrintConfig() {
	if GlobalConfig == nil {
		return
	}
	log.Printf("当前配置:")
	log.Printf("  服务器: %s (模式: %s, 时区: %s)", GlobalConfig.Server.Port, GlobalConfig.Server.Mode, GlobalConfig.Server.Location())
	log.Printf("  数据库: %s@%s:%s/%s",
		GlobalConfig.Database.Username,
		GlobalConfig.Database.Host,
		GlobalConfig.Database.Port,
		GlobalConfig.Database.DBName)
	log.Printf("  Telegram: %v", GlobalConfig.Telegram.Enabled)
	log.Printf("  邮件提醒: %v", GlobalConfig.Email.Enabled)
	log.Printf("  访问令牌有效期: %s, 会话有效期: %s",
		GlobalConfig.Dashboard.AccessTokenTTL,
		GlobalConfig.Dashboard.SessionTTL)
}
