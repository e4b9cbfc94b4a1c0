package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	Convey("TestLoad", t, func() {
		Convey("读取 YAML 并填充默认值", func() {
			path := writeConfigFile(t, `
api:
  port: 9000
platform:
  token: abc
`)
			cfg, err := Load(path)

			So(err, ShouldBeNil)
			So(cfg.API.Port, ShouldEqual, 9000)
			So(cfg.Platform.Token, ShouldEqual, "abc")
			So(cfg.Platform.BaseURL, ShouldNotBeEmpty)
			So(cfg.Platform.Timeout, ShouldEqual, 330*time.Second)
			So(cfg.Platform.ProgramDir, ShouldEqual, "vadalog")
			So(cfg.CORS.Env, ShouldEqual, "development")
			So(cfg.DepServices.S3.Bucket, ShouldEqual, "prometheux-public-data-bucket")
			So(cfg.DepServices.Postgres.Port, ShouldEqual, 5432)
			So(cfg.DepServices.MariaDB.Port, ShouldEqual, 3306)
			So(cfg.DepServices.Neo4j.Port, ShouldEqual, 7687)
		})

		Convey("未配置端口时默认 8000", func() {
			path := writeConfigFile(t, "{}")
			cfg, err := Load(path)

			So(err, ShouldBeNil)
			So(cfg.API.Port, ShouldEqual, 8000)
		})

		Convey("环境变量覆盖文件配置", func() {
			t.Setenv("PMTX_TOKEN", "env-token")
			t.Setenv("PROMETHEUX_BASE_URL", "https://engine.example.com")
			t.Setenv("AWS_ACCESS_KEY_ID", "env-ak")
			t.Setenv("POSTGRES_PORT", "15432")
			t.Setenv("ENV", "production")

			path := writeConfigFile(t, `
platform:
  token: file-token
`)
			cfg, err := Load(path)

			So(err, ShouldBeNil)
			So(cfg.Platform.Token, ShouldEqual, "env-token")
			So(cfg.Platform.BaseURL, ShouldEqual, "https://engine.example.com")
			So(cfg.DepServices.S3.AccessKey, ShouldEqual, "env-ak")
			So(cfg.DepServices.Postgres.Port, ShouldEqual, 15432)
			So(cfg.CORS.Env, ShouldEqual, "production")
		})

		Convey("CORS_ORIGINS 按逗号拆分并去除空白", func() {
			t.Setenv("CORS_ORIGINS", " https://a.example.com , https://b.example.com ,")

			path := writeConfigFile(t, "{}")
			cfg, err := Load(path)

			So(err, ShouldBeNil)
			So(cfg.CORS.Origins, ShouldResemble, []string{"https://a.example.com", "https://b.example.com"})
		})

		Convey("文件不存在时报错", func() {
			_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))

			So(err, ShouldNotBeNil)
		})

		Convey("非法 YAML 报错", func() {
			path := writeConfigFile(t, "api: [broken")
			_, err := Load(path)

			So(err, ShouldNotBeNil)
		})
	})
}

func TestCORSConfig_AllowedOrigins(t *testing.T) {
	Convey("TestCORSConfig_AllowedOrigins", t, func() {
		Convey("显式白名单优先", func() {
			cfg := CORSConfig{
				Env:     "production",
				Origins: []string{"https://a.example.com"},
			}
			So(cfg.AllowedOrigins(), ShouldResemble, []string{"https://a.example.com"})
		})

		Convey("生产环境用生产白名单", func() {
			cfg := CORSConfig{
				Env:         "production",
				ProdOrigins: []string{"https://app.example.com"},
			}
			So(cfg.AllowedOrigins(), ShouldResemble, []string{"https://app.example.com"})
		})

		Convey("生产环境无配置时用内置默认白名单", func() {
			cfg := CORSConfig{Env: "production"}
			So(cfg.AllowedOrigins(), ShouldResemble, defaultProdOrigins)
		})

		Convey("开发环境放开全部来源", func() {
			cfg := CORSConfig{Env: "development"}
			So(cfg.AllowedOrigins(), ShouldResemble, []string{"*"})
		})
	})
}

func TestConnectionURLs(t *testing.T) {
	Convey("TestConnectionURLs", t, func() {
		Convey("PostgreSQL JDBC 连接串", func() {
			cfg := PostgresConfig{Host: "pg", Port: 5432, Database: "prometheux"}
			So(cfg.JDBCURL(), ShouldEqual, "jdbc:postgresql://pg:5432/prometheux")
		})

		Convey("MariaDB JDBC 连接串", func() {
			cfg := MariaDBConfig{Host: "maria", Port: 3306, Database: "teams"}
			So(cfg.JDBCURL(), ShouldEqual, "jdbc:mariadb://maria:3306/teams")
		})

		Convey("Neo4j Bolt 连接串", func() {
			cfg := Neo4jConfig{Host: "neo", Port: 7687}
			So(cfg.BoltURL(), ShouldEqual, "bolt://neo:7687")
		})
	})
}
