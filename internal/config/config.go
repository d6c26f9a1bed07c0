package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config 全局配置结构体
type Config struct {
	App           AppConfig           `mapstructure:"app"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Redis         RedisConfig         `mapstructure:"redis"`
	MinIO         MinIOConfig         `mapstructure:"minio"`
	Kafka         KafkaConfig         `mapstructure:"kafka"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	JWT           JWTConfig           `mapstructure:"jwt"`
	Upload        UploadConfig        `mapstructure:"upload"`
	Log           LogConfig           `mapstructure:"log"`
}

// AppConfig 应用配置
type AppConfig struct {
	Name            string `mapstructure:"name"`
	Version         string `mapstructure:"version"`
	Mode            string `mapstructure:"mode"`
	Port            int    `mapstructure:"port"`
	ReadTimeout     int    `mapstructure:"read_timeout"`     // 秒
	WriteTimeout    int    `mapstructure:"write_timeout"`    // 秒
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"` // 秒
	SecureCookies   bool   `mapstructure:"secure_cookies"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"` // postgres | sqlite
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	DBName          string `mapstructure:"dbname"`
	SSLMode         string `mapstructure:"sslmode"`
	SQLitePath      string `mapstructure:"sqlite_path"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"` // 秒
}

// DSN 返回PostgreSQL连接字符串
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// RedisConfig Redis配置
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// Addr 返回Redis地址
func (r *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// MinIOConfig MinIO配置
type MinIOConfig struct {
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	UseSSL        bool   `mapstructure:"use_ssl"`
	Bucket        string `mapstructure:"bucket"`
	PublicBaseURL string `mapstructure:"public_base_url"`
	// 熔断：连续失败次数达到阈值后打开，open_timeout 秒后半开探测
	BreakerFailures    uint32 `mapstructure:"breaker_failures"`
	BreakerOpenTimeout int    `mapstructure:"breaker_open_timeout"`
}

// KafkaConfig Kafka配置
type KafkaConfig struct {
	Enabled     bool     `mapstructure:"enabled"`
	Brokers     []string `mapstructure:"brokers"`
	VideoTopic  string   `mapstructure:"video_topic"`
	WorkerGroup string   `mapstructure:"worker_group"`
}

// ElasticsearchConfig Elasticsearch配置
type ElasticsearchConfig struct {
	Enabled    bool     `mapstructure:"enabled"`
	Hosts      []string `mapstructure:"hosts"`
	VideoIndex string   `mapstructure:"video_index"`
	// 搜索最多返回的候选ID数，分页在数据库侧完成
	MaxCandidates int `mapstructure:"max_candidates"`
}

// JWTConfig JWT配置
type JWTConfig struct {
	Issuer             string `mapstructure:"issuer"`
	AccessSecret       string `mapstructure:"access_secret"`
	AccessExpireHours  int    `mapstructure:"access_expire_hours"`
	RefreshSecret      string `mapstructure:"refresh_secret"`
	RefreshExpireHours int    `mapstructure:"refresh_expire_hours"`
}

// AccessExpireDuration 返回访问令牌过期时间
func (j *JWTConfig) AccessExpireDuration() time.Duration {
	return time.Duration(j.AccessExpireHours) * time.Hour
}

// RefreshExpireDuration 返回刷新令牌过期时间
func (j *JWTConfig) RefreshExpireDuration() time.Duration {
	return time.Duration(j.RefreshExpireHours) * time.Hour
}

// UploadConfig 上传配置
type UploadConfig struct {
	TempDir            string   `mapstructure:"temp_dir"`
	MaxImageSize       int64    `mapstructure:"max_image_size"` // 字节
	MaxVideoSize       int64    `mapstructure:"max_video_size"` // 字节
	ImageExtensions    []string `mapstructure:"image_extensions"`
	VideoExtensions    []string `mapstructure:"video_extensions"`
	ImageContentPrefix string   `mapstructure:"image_content_prefix"`
	VideoContentPrefix string   `mapstructure:"video_content_prefix"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level    string `mapstructure:"level"`
	Format   string `mapstructure:"format"`
	Output   string `mapstructure:"output"`
	FilePath string `mapstructure:"file_path"`
}

// 全局配置实例，仅供 cmd 启动流程使用
var globalConfig *Config

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "vortex-go")
	v.SetDefault("app.mode", "debug")
	v.SetDefault("app.port", 8000)
	v.SetDefault("app.read_timeout", 30)
	v.SetDefault("app.write_timeout", 120)
	v.SetDefault("app.shutdown_timeout", 10)

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.sqlite_path", "vortex.db")
	v.SetDefault("database.max_open_conns", 50)
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.conn_max_lifetime", 3600)

	v.SetDefault("redis.pool_size", 10)

	v.SetDefault("minio.bucket", "vortex-media")
	v.SetDefault("minio.breaker_failures", 5)
	v.SetDefault("minio.breaker_open_timeout", 30)

	v.SetDefault("kafka.video_topic", "video-events")
	v.SetDefault("kafka.worker_group", "vortex-search-sync")

	v.SetDefault("elasticsearch.video_index", "videos")
	v.SetDefault("elasticsearch.max_candidates", 1000)

	v.SetDefault("jwt.issuer", "vortex-go")
	v.SetDefault("jwt.access_expire_hours", 24)
	v.SetDefault("jwt.refresh_expire_hours", 240)

	v.SetDefault("upload.max_image_size", 5<<20)
	v.SetDefault("upload.max_video_size", 500<<20)
	v.SetDefault("upload.image_extensions", []string{".jpeg", ".jpg", ".png", ".gif"})
	v.SetDefault("upload.video_extensions", []string{".mp4", ".webm", ".mov", ".mkv", ".avi"})
	v.SetDefault("upload.image_content_prefix", "image/")
	v.SetDefault("upload.video_content_prefix", "video/")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stdout")
}

// Load 加载配置文件，环境变量 VORTEX_<SECTION>_<KEY> 覆盖文件配置
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	v.SetEnvPrefix("VORTEX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	globalConfig = &cfg

	return &cfg, nil
}

// Validate 校验启动必需的配置项
func (c *Config) Validate() error {
	if c.JWT.AccessSecret == "" || c.JWT.RefreshSecret == "" {
		return fmt.Errorf("jwt.access_secret and jwt.refresh_secret are required")
	}
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers is required when kafka is enabled")
	}
	if c.Elasticsearch.Enabled && len(c.Elasticsearch.Hosts) == 0 {
		return fmt.Errorf("elasticsearch.hosts is required when elasticsearch is enabled")
	}
	return nil
}

// Get 获取全局配置
func Get() *Config {
	if globalConfig == nil {
		panic("config not loaded, please call Load() first")
	}
	return globalConfig
}
