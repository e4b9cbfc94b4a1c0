package analysis

import (
	"sort"

	"github.com/spf13/cast"

	"github.com/arjun-p/rocket-engine-monitor/domain"
)

// collectFailedSensors 收集失效传感器集合。
// failed_observable 每行的首字段是传感器 ID，重复出现自动合并。
func collectFailedSensors(view *RelationView) map[string]struct{} {
	failed := make(map[string]struct{})
	for _, row := range view.rowsOrEmpty(RelationFailedObservable) {
		failed[cast.ToString(row[0])] = struct{}{}
	}
	return failed
}

// sortedFailedSensors 阶段一的输出形式：排序去重后的传感器列表。
func sortedFailedSensors(failed map[string]struct{}) []string {
	result := make([]string, 0, len(failed))
	for id := range failed {
		result = append(result, id)
	}
	sort.Strings(result)
	return result
}

// assembleChains 组装故障传播链。
// 每行直接映射为 (parent, child) 边，上游顺序对展示有意义，原样保留，不去重。
func assembleChains(view *RelationView) []domain.FailureChainEdge {
	rows := view.rowsOrEmpty(RelationFailureChain)
	chains := make([]domain.FailureChainEdge, 0, len(rows))
	for _, row := range rows {
		chains = append(chains, domain.FailureChainEdge{
			Parent: cast.ToString(row[0]),
			Child:  cast.ToString(row[1]),
		})
	}
	return chains
}
