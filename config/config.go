package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"

	"github.com/arjun-p/rocket-engine-monitor/utils/slice"
)

// Config 映射 config.yaml 的 YAML 结构。
// 凭据类字段允许被环境变量覆盖，便于容器化部署时不落盘。
type Config struct {
	API         APIConfig         `yaml:"api"`          // API 服务配置
	CORS        CORSConfig        `yaml:"cors"`         // 跨域配置
	Log         LogConfig         `yaml:"log"`          // 日志配置
	Platform    PlatformConfig    `yaml:"platform"`     // Prometheux 平台配置
	DepServices DepServicesConfig `yaml:"dep_services"` // 依赖数据源配置（由规则引擎侧连接）
}

// ========== API 配置 ==========

// APIConfig API 服务配置
type APIConfig struct {
	Port int `yaml:"port"`
}

// ========== 跨域配置 ==========

// CORSConfig 跨域配置。
// 解析优先级：origins 显式白名单 > 生产环境白名单 > 开发环境放开全部。
type CORSConfig struct {
	Env              string   `yaml:"env"`               // 运行环境 development / production
	Origins          []string `yaml:"origins"`           // 显式允许的来源列表
	ProdOrigins      []string `yaml:"prod_origins"`      // 生产环境默认来源列表
	AllowCredentials bool     `yaml:"allow_credentials"` // 是否允许携带凭据
	AllowMethods     []string `yaml:"allow_methods"`     // 允许的方法，空表示全部
	AllowHeaders     []string `yaml:"allow_headers"`     // 允许的 Header，空表示全部
}

// 生产环境缺省放行的前端地址
var defaultProdOrigins = []string{
	"https://rocket-monitor.vercel.app",
	"https://rocket-engine-monitor.vercel.app",
}

// AllowedOrigins 计算当前环境生效的来源白名单。
func (c CORSConfig) AllowedOrigins() []string {
	if len(c.Origins) > 0 {
		return c.Origins
	}
	if c.Env == "production" {
		if len(c.ProdOrigins) > 0 {
			return c.ProdOrigins
		}
		return defaultProdOrigins
	}
	// 开发环境放开全部来源
	return []string{"*"}
}

// ========== 日志配置 ==========

// LogConfig 日志配置
type LogConfig struct {
	Filepath    string `yaml:"filepath"`    // 日志文件路径
	Level       string `yaml:"level"`       // 日志级别 info warning error
	MaxSize     int    `yaml:"max_size"`    // 每个日志文件最大空间(单位：MB)
	MaxAge      int    `yaml:"max_age"`     // 文件最多保留多少天
	MaxBackups  int    `yaml:"max_backups"` // 文件最多保留多少备份
	Compress    bool   `yaml:"compress"`    // 是否压缩
	Development bool   `yaml:"development"` // 是否开启开发模式
}

// ========== 平台配置 ==========

// PlatformConfig Prometheux 规则引擎配置。
type PlatformConfig struct {
	BaseURL            string        `yaml:"base_url"`             // 引擎服务基础地址
	Token              string        `yaml:"token"`                // Bearer Token
	Timeout            time.Duration `yaml:"timeout"`              // 请求超时时间
	InsecureSkipVerify bool          `yaml:"insecure_skip_verify"` // 是否跳过SSL验证
	ProgramDir         string        `yaml:"program_dir"`          // Vadalog 程序模板目录
}

// ========== 依赖数据源配置 ==========

// DepServicesConfig 依赖数据源配置。
// 这些数据源由规则引擎在求值时连接，本服务只负责把连接串注入查询程序模板。
type DepServicesConfig struct {
	S3       S3Config       `yaml:"s3"`       // 对象存储（组件静态数据）
	Postgres PostgresConfig `yaml:"postgres"` // PostgreSQL（遥测数据）
	MariaDB  MariaDBConfig  `yaml:"mariadb"`  // MariaDB（团队通讯录）
	Neo4j    Neo4jConfig    `yaml:"neo4j"`    // Neo4j（依赖图）
}

// S3Config 对象存储配置
type S3Config struct {
	AccessKey string `yaml:"access_key"` // 访问密钥 ID
	SecretKey string `yaml:"secret_key"` // 访问密钥
	Bucket    string `yaml:"bucket"`     // 桶名
}

// PostgresConfig PostgreSQL 配置
type PostgresConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Database string `yaml:"database"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

// JDBCURL 拼接引擎侧使用的 JDBC 连接串。
func (c PostgresConfig) JDBCURL() string {
	return fmt.Sprintf("jdbc:postgresql://%s:%d/%s", c.Host, c.Port, c.Database)
}

// MariaDBConfig MariaDB 配置
type MariaDBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Database string `yaml:"database"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

// JDBCURL 拼接引擎侧使用的 JDBC 连接串。
func (c MariaDBConfig) JDBCURL() string {
	return fmt.Sprintf("jdbc:mariadb://%s:%d/%s", c.Host, c.Port, c.Database)
}

// Neo4jConfig Neo4j 配置
type Neo4jConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Database string `yaml:"database"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

// BoltURL 拼接引擎侧使用的 Bolt 连接串。
func (c Neo4jConfig) BoltURL() string {
	return fmt.Sprintf("bolt://%s:%d", c.Host, c.Port)
}

// Load 从指定路径读取 YAML 配置，并应用环境变量覆盖与默认值。
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}

	cfg.applyEnvOverrides()
	cfg.applyDefaults()
	return &cfg, nil
}

// applyEnvOverrides 用环境变量覆盖敏感或部署相关的配置项。
func (c *Config) applyEnvOverrides() {
	setString := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setInt := func(dst *int, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = cast.ToInt(v)
		}
	}
	setList := func(dst *[]string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = slice.SplitToStrings(v)
		}
	}

	setString(&c.CORS.Env, "ENV")
	setList(&c.CORS.Origins, "CORS_ORIGINS")
	setList(&c.CORS.ProdOrigins, "CORS_ORIGINS_PROD")
	if v := os.Getenv("CORS_ALLOW_CREDENTIALS"); v != "" {
		c.CORS.AllowCredentials = cast.ToBool(v)
	}
	if v := os.Getenv("CORS_ALLOW_METHODS"); v != "" && v != "*" {
		c.CORS.AllowMethods = slice.SplitToStrings(v)
	}
	if v := os.Getenv("CORS_ALLOW_HEADERS"); v != "" && v != "*" {
		c.CORS.AllowHeaders = slice.SplitToStrings(v)
	}

	setString(&c.Platform.BaseURL, "PROMETHEUX_BASE_URL")
	setString(&c.Platform.Token, "PMTX_TOKEN")

	setString(&c.DepServices.S3.AccessKey, "AWS_ACCESS_KEY_ID")
	setString(&c.DepServices.S3.SecretKey, "AWS_SECRET_ACCESS_KEY")
	setString(&c.DepServices.S3.Bucket, "S3_BUCKET")

	setString(&c.DepServices.Postgres.Host, "POSTGRES_HOST")
	setInt(&c.DepServices.Postgres.Port, "POSTGRES_PORT")
	setString(&c.DepServices.Postgres.Database, "POSTGRES_DB")
	setString(&c.DepServices.Postgres.User, "POSTGRES_USER")
	setString(&c.DepServices.Postgres.Password, "POSTGRES_PASSWORD")

	setString(&c.DepServices.MariaDB.Host, "MARIADB_HOST")
	setInt(&c.DepServices.MariaDB.Port, "MARIADB_PORT")
	setString(&c.DepServices.MariaDB.Database, "MARIADB_DB")
	setString(&c.DepServices.MariaDB.User, "MARIADB_USER")
	setString(&c.DepServices.MariaDB.Password, "MARIADB_PASSWORD")

	setString(&c.DepServices.Neo4j.Host, "NEO4J_HOST")
	setInt(&c.DepServices.Neo4j.Port, "NEO4J_PORT")
	setString(&c.DepServices.Neo4j.Database, "NEO4J_DB")
	setString(&c.DepServices.Neo4j.User, "NEO4J_USER")
	setString(&c.DepServices.Neo4j.Password, "NEO4J_PASSWORD")
}

// applyDefaults 填充未配置项的默认值。
func (c *Config) applyDefaults() {
	if c.CORS.Env == "" {
		c.CORS.Env = "development"
	}
	if c.Platform.BaseURL == "" {
		c.Platform.BaseURL = "https://api.prometheux.ai/jarvispy/solo/arjun-p"
	}
	if c.Platform.Timeout <= 0 {
		// 引擎侧求值超时为 300s，客户端侧预留 30s 余量
		c.Platform.Timeout = 330 * time.Second
	}
	if c.Platform.ProgramDir == "" {
		c.Platform.ProgramDir = "vadalog"
	}
	if c.DepServices.S3.Bucket == "" {
		c.DepServices.S3.Bucket = "prometheux-public-data-bucket"
	}

	applyHostPort := func(host *string, port *int, defHost string, defPort int) {
		if *host == "" {
			*host = defHost
		}
		if *port == 0 {
			*port = defPort
		}
	}
	applyHostPort(&c.DepServices.Postgres.Host, &c.DepServices.Postgres.Port, "localhost", 5432)
	applyHostPort(&c.DepServices.MariaDB.Host, &c.DepServices.MariaDB.Port, "localhost", 3306)
	applyHostPort(&c.DepServices.Neo4j.Host, &c.DepServices.Neo4j.Port, "localhost", 7687)

	if c.DepServices.Postgres.Database == "" {
		c.DepServices.Postgres.Database = "prometheux"
	}
	if c.DepServices.Postgres.User == "" {
		c.DepServices.Postgres.User = "postgres"
	}
	if c.DepServices.MariaDB.Database == "" {
		c.DepServices.MariaDB.Database = "prometheux"
	}
	if c.DepServices.MariaDB.User == "" {
		c.DepServices.MariaDB.User = "root"
	}
	if c.DepServices.Neo4j.Database == "" {
		c.DepServices.Neo4j.Database = "neo4j"
	}
	if c.DepServices.Neo4j.User == "" {
		c.DepServices.Neo4j.User = "neo4j"
	}

	if c.API.Port == 0 {
		c.API.Port = 8000
	}
}
