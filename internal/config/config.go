package config

import (
	"github.com/memechain/presale-service/internal/logger"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Presale  PresaleConfig  `mapstructure:"presale"`
	Price    PriceConfig    `mapstructure:"price"`
	Admin    AdminConfig    `mapstructure:"admin"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// PresaleConfig 预售初始参数（仅在presale表为空时写入种子数据）
type PresaleConfig struct {
	Stage        int     `mapstructure:"stage"`         // 初始阶段
	CurrentPrice float64 `mapstructure:"current_price"` // 初始价格（USD/枚）
	HardCap      float64 `mapstructure:"hard_cap"`      // 硬顶（USD）
	IsActive     bool    `mapstructure:"is_active"`     // 初始开关
}

// PriceConfig 行情服务配置
type PriceConfig struct {
	Currencies      []string `mapstructure:"currencies"`       // CoinGecko币种ID列表
	CacheTTL        int      `mapstructure:"cache_ttl"`        // 缓存有效期（秒）
	RefreshInterval int      `mapstructure:"refresh_interval"` // 定时刷新间隔（秒）
}

// AdminConfig 管理后台凭证
type AdminConfig struct {
	Email    string `mapstructure:"email"`
	Password string `mapstructure:"password"`
	Token    string `mapstructure:"token"` // Bearer令牌
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // 日志级别: debug, info, warn, error, fatal
	Output string `mapstructure:"output"` // 输出目标: stdout, stderr, file
	File   string `mapstructure:"file"`   // 日志文件路径（当output为file时使用）
}

func Load() *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/presale")

	// 设置默认值
	viper.SetDefault("server.port", "5000")
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.password", "")
	viper.SetDefault("database.dbname", "presale")
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("presale.stage", 1)
	viper.SetDefault("presale.current_price", 0.00001)
	viper.SetDefault("presale.hard_cap", 1000000)
	viper.SetDefault("presale.is_active", true)
	viper.SetDefault("price.currencies", []string{"tether", "ethereum", "binancecoin", "polygon-ecosystem-token", "arbitrum", "solana"})
	viper.SetDefault("price.cache_ttl", 30)
	viper.SetDefault("price.refresh_interval", 60)
	viper.SetDefault("admin.email", "admin@memechain.io")
	viper.SetDefault("admin.password", "")
	viper.SetDefault("admin.token", "")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.output", "stdout")
	viper.SetDefault("log.file", "logs/app.log")

	// 自动读取环境变量
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logger.Warn("Warning: Could not read config file: %v", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		logger.Fatal("Unable to decode config into struct: %v", err)
	}

	return &config
}
