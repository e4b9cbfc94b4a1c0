package core

import (
	"context"

	"github.com/arjun-p/rocket-engine-monitor/domain"
)

// AnalysisProvider 是 API 层依赖的分析能力契约。
// 所有方法每次调用都向规则引擎发起一次求值，结果不做任何缓存。
type AnalysisProvider interface {
	// Components 查询全部组件快照。
	Components(ctx context.Context) ([]domain.Component, error)
	// Relationships 查询组件依赖关系边。
	Relationships(ctx context.Context) ([]domain.Relationship, error)
	// DegreeCentrality 查询依赖图的度中心性及汇总信息。
	DegreeCentrality(ctx context.Context) (*domain.CentralityReport, error)
	// FailureAnalysis 执行完整的四阶段故障分析。
	FailureAnalysis(ctx context.Context) (*domain.FailureAnalysis, error)
}
