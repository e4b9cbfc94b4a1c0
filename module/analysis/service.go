package analysis

import (
	"context"

	"github.com/pkg/errors"
	"github.com/spf13/cast"

	"github.com/arjun-p/rocket-engine-monitor/config"
	"github.com/arjun-p/rocket-engine-monitor/domain"
	"github.com/arjun-p/rocket-engine-monitor/infra/log"
	"github.com/arjun-p/rocket-engine-monitor/infra/vadalog"
	"github.com/arjun-p/rocket-engine-monitor/utils"
)

// Engine 规则引擎求值能力。
type Engine interface {
	Evaluate(ctx context.Context, program string) (vadalog.ResultSet, error)
}

// Service 分析服务：加载查询程序模板、注入凭据、
// 提交引擎求值并把结果关系集聚合为响应模型。
// 无状态，每次请求重新求值，不缓存任何跨请求数据。
type Service struct {
	cfgManager *config.ConfigManager
	engine     Engine
	programs   *vadalog.ProgramStore
}

// New 创建分析服务实例。
func New(cfgManager *config.ConfigManager, engine Engine, programs *vadalog.ProgramStore) (*Service, error) {
	if cfgManager == nil {
		return nil, errors.New("配置管理器不能为空")
	}
	if engine == nil {
		return nil, errors.New("规则引擎客户端不能为空")
	}
	if programs == nil {
		return nil, errors.New("查询程序加载器不能为空")
	}
	return &Service{
		cfgManager: cfgManager,
		engine:     engine,
		programs:   programs,
	}, nil
}

// Components 查询全部组件快照。
func (s *Service) Components(ctx context.Context) ([]domain.Component, error) {
	resultSet, err := s.evaluate(ctx, vadalog.ProgramComponents, s.storageVars())
	if err != nil {
		return nil, err
	}
	return parseComponents(NewRelationView(resultSet))
}

// Relationships 查询组件依赖关系边。
func (s *Service) Relationships(ctx context.Context) ([]domain.Relationship, error) {
	resultSet, err := s.evaluate(ctx, vadalog.ProgramRelationships, s.storageVars())
	if err != nil {
		return nil, err
	}
	return parseRelationships(NewRelationView(resultSet))
}

// DegreeCentrality 查询依赖图的度中心性及汇总信息。
func (s *Service) DegreeCentrality(ctx context.Context) (*domain.CentralityReport, error) {
	resultSet, err := s.evaluate(ctx, vadalog.ProgramDegreeCentrality, s.storageVars())
	if err != nil {
		return nil, err
	}
	return parseCentralityReport(NewRelationView(resultSet))
}

// FailureAnalysis 执行完整的四阶段故障分析。
func (s *Service) FailureAnalysis(ctx context.Context) (*domain.FailureAnalysis, error) {
	resultSet, err := s.evaluate(ctx, vadalog.ProgramFailureAnalysis, s.analysisVars())
	if err != nil {
		return nil, err
	}

	result := Analyze(resultSet)
	log.Debugf("故障分析完成,失效传感器:%d,热点:%d,根因:%s",
		len(result.Stage1.FailedSensors), len(result.Stage3.Hotspots),
		utils.JsonEncode(result.Stage3.RootCauseMethods))
	return result, nil
}

// evaluate 加载查询程序、校验凭据并提交引擎求值。
func (s *Service) evaluate(ctx context.Context, programName string, vars map[string]string) (vadalog.ResultSet, error) {
	if err := s.checkCredentials(); err != nil {
		return nil, err
	}

	program, err := s.programs.Load(programName, vars)
	if err != nil {
		return nil, err
	}

	log.Debugf("提交查询程序 %s 求值", programName)
	resultSet, err := s.engine.Evaluate(ctx, program)
	if err != nil {
		return nil, errors.Wrapf(err, "查询程序 %s 求值失败", programName)
	}
	return resultSet, nil
}

// checkCredentials 求值前的凭据完整性检查，
// 缺凭据时快速失败，避免向引擎提交注定失败的查询。
func (s *Service) checkCredentials() error {
	cfg := s.cfgManager.GetConfig()
	if cfg.Platform.Token == "" {
		return errors.New("缺少 Prometheux 平台 Token（PMTX_TOKEN）")
	}
	if cfg.DepServices.S3.AccessKey == "" || cfg.DepServices.S3.SecretKey == "" {
		return errors.New("缺少对象存储凭据（AWS_ACCESS_KEY_ID / AWS_SECRET_ACCESS_KEY）")
	}
	return nil
}

// storageVars 只依赖对象存储的查询程序用的占位符变量。
func (s *Service) storageVars() map[string]string {
	cfg := s.cfgManager.GetConfig()
	return map[string]string{
		"s3_access_key": cfg.DepServices.S3.AccessKey,
		"s3_secret_key": cfg.DepServices.S3.SecretKey,
		"s3_bucket":     cfg.DepServices.S3.Bucket,
	}
}

// analysisVars 故障分析程序用的占位符变量：
// 在对象存储之外，补齐遥测库、通讯录库和依赖图库的连接信息。
func (s *Service) analysisVars() map[string]string {
	cfg := s.cfgManager.GetConfig()
	vars := s.storageVars()

	pg := cfg.DepServices.Postgres
	vars["psql_url"] = pg.JDBCURL()
	vars["psql_host"] = pg.Host
	vars["psql_port"] = cast.ToString(pg.Port)
	vars["psql_db"] = pg.Database
	vars["psql_user"] = pg.User
	vars["psql_password"] = pg.Password

	maria := cfg.DepServices.MariaDB
	vars["maria_url"] = maria.JDBCURL()
	vars["maria_host"] = maria.Host
	vars["maria_port"] = cast.ToString(maria.Port)
	vars["maria_db"] = maria.Database
	vars["maria_user"] = maria.User
	vars["maria_password"] = maria.Password

	neo := cfg.DepServices.Neo4j
	vars["neo4j_url"] = neo.BoltURL()
	vars["neo4j_host"] = neo.Host
	vars["neo4j_port"] = cast.ToString(neo.Port)
	vars["neo4j_db"] = neo.Database
	vars["neo4j_user"] = neo.User
	vars["neo4j_password"] = neo.Password

	return vars
}
