package analysis

import (
	"github.com/spf13/cast"

	"github.com/arjun-p/rocket-engine-monitor/domain"
	"github.com/arjun-p/rocket-engine-monitor/infra/vadalog"
)

// Analyze 把故障分析程序的结果集聚合为四阶段报告。
// 纯函数：任何关系缺失或行畸形只影响对应阶段，其余阶段照常产出。
func Analyze(resultSet vadalog.ResultSet) *domain.FailureAnalysis {
	view := NewRelationView(resultSet)

	failed := collectFailedSensors(view)
	idx := detectHotspots(view, failed)

	rootCauseDefault := selectRootCause(MethodDefault, view, idx)
	rootCauseCombined := selectRootCause(MethodCombined, view, idx)

	return &domain.FailureAnalysis{
		Stage1: domain.StageFailedSensors{
			FailedSensors: sortedFailedSensors(failed),
		},
		Stage2: domain.StageFailureChains{
			FailureChains: assembleChains(view),
		},
		Stage3: domain.StageHotspots{
			Hotspots: idx.convergencePoints(),
			// rootCause 为兼容保留的旧字段，恒等于默认策略的结果
			RootCause: rootCauseDefault,
			RootCauseMethods: domain.RootCauseMethods{
				Default:  rootCauseDefault,
				Combined: rootCauseCombined,
			},
			DegreeCentrality: parseDegreeCentrality(view),
		},
		Stage4: domain.StageAlerts{
			Alerts: composeAlerts(view),
		},
	}
}

// parseDegreeCentrality 故障分析结果集里的入度表：组件 -> 入度。
// 同名组件重复时后行覆盖前行。
func parseDegreeCentrality(view *RelationView) map[string]float64 {
	rows := view.rowsOrEmpty(RelationDegreeCentrality)
	centrality := make(map[string]float64, len(rows))
	for _, row := range rows {
		centrality[cast.ToString(row[0])] = cast.ToFloat64(row[1])
	}
	return centrality
}
