package analysis

import "fmt"

// ========== 关系名常量 ==========

// 上游规则程序输出的关系名。除 component / relationship 外，
// 其余关系只出现在故障分析程序的结果集中。
const (
	RelationComponent         = "component"
	RelationRelationship      = "relationship"
	RelationFailedObservable  = "failed_observable"
	RelationFailureChain      = "failure_chain"
	RelationPropagatesTo      = "propagates_to"
	RelationHotspot           = "hotspot"
	RelationDegreeCentrality  = "degree_centrality"
	RelationRootCauseDefault  = "rootcause_default"
	RelationRootCauseCombined = "rootcause_combined"
	RelationAlert             = "alert"
)

// relationMinArity 各关系的最小字段数。
// 低于最小字段数的行按畸形行跳过，多出的字段忽略
// （alert 的第 6 个字段就依赖这一点）。
var relationMinArity = map[string]int{
	RelationComponent:         6,
	RelationRelationship:      2,
	RelationFailedObservable:  1,
	RelationFailureChain:      2,
	RelationPropagatesTo:      2,
	RelationHotspot:           2,
	RelationDegreeCentrality:  2,
	RelationRootCauseDefault:  1,
	RelationRootCauseCombined: 3,
	RelationAlert:             5,
}

// alert 行中 sensorCount 字段的位置（可选字段）
const alertSensorCountIndex = 5

// ========== 根因排序策略 ==========

// Method 根因排序策略标签。
type Method string

const (
	// MethodDefault 默认策略：上游按"无父节点"规则选出的根因
	MethodDefault Method = "default"
	// MethodCombined 组合策略：上游按"汇聚度 + 入度"选出的根因
	MethodCombined Method = "combined"
)

// ========== 错误类型 ==========

// MissingRelationError 结果集中缺少期望的关系。
// 可恢复：调用方把该关系按空处理，对应阶段降级为空结果。
type MissingRelationError struct {
	Relation string
}

func (e *MissingRelationError) Error() string {
	return fmt.Sprintf("结果集中缺少关系 %s", e.Relation)
}

// MalformedTupleError 某一行的字段数低于关系的最小字段数。
// 只影响该行：跳过后继续处理，绝不中断整个分析。
type MalformedTupleError struct {
	Relation string
	Index    int // 行号（从 0 开始）
	Got      int // 实际字段数
	Want     int // 最小字段数
}

func (e *MalformedTupleError) Error() string {
	return fmt.Sprintf("关系 %s 第 %d 行字段数不足: 期望至少 %d 个，实际 %d 个", e.Relation, e.Index, e.Want, e.Got)
}
