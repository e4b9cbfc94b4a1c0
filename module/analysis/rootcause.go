package analysis

import (
	"github.com/spf13/cast"

	"github.com/arjun-p/rocket-engine-monitor/domain"
)

// rootCauseSelectors 策略表：新增排序策略时在此注册。
var rootCauseSelectors = map[Method]func(view *RelationView, idx *hotspotIndex) *domain.RootCause{
	MethodDefault:  selectRootCauseDefault,
	MethodCombined: selectRootCauseCombined,
}

// selectRootCause 按指定策略选取根因，未注册的策略返回 nil。
// 两种策略互不影响，每次分析都各自求值一次。
func selectRootCause(method Method, view *RelationView, idx *hotspotIndex) *domain.RootCause {
	selector, ok := rootCauseSelectors[method]
	if !ok {
		return nil
	}
	return selector(view, idx)
}

// selectRootCauseDefault 默认策略。
// 取 rootcause_default 首行（上游保证至多一行有意义，多余行忽略），
// 在完整热点表中解析。上游的选取规则与最大影响分排序并不等价，
// 根因可以是非汇聚点的热点，这里不做交叉校验。
func selectRootCauseDefault(view *RelationView, idx *hotspotIndex) *domain.RootCause {
	rows := view.rowsOrEmpty(RelationRootCauseDefault)
	if len(rows) == 0 {
		return nil
	}

	component := cast.ToString(rows[0][0])
	h, ok := idx.lookup(component)
	if !ok {
		// 上游命名的组件不在热点表中：按无根因处理，不凭空构造热点
		return nil
	}
	return newRootCauseFromHotspot(h, nil, "")
}

// selectRootCauseCombined 组合策略。
// rootcause_combined 首行为 (组件, 传感器数, 入度)，
// 解析出的副本用入度覆盖中心性字段并打上 combined 标签。
func selectRootCauseCombined(view *RelationView, idx *hotspotIndex) *domain.RootCause {
	rows := view.rowsOrEmpty(RelationRootCauseCombined)
	if len(rows) == 0 {
		return nil
	}

	row := rows[0]
	component := cast.ToString(row[0])
	h, ok := idx.lookup(component)
	if !ok {
		return nil
	}

	indegree := cast.ToFloat64(row[2])
	return newRootCauseFromHotspot(h, &indegree, string(MethodCombined))
}

// newRootCauseFromHotspot 复制热点生成根因，
// 复制受影响传感器列表，避免与热点表共享底层数组。
func newRootCauseFromHotspot(h *domain.Hotspot, centrality *float64, method string) *domain.RootCause {
	sensors := make([]string, len(h.AffectedSensors))
	copy(sensors, h.AffectedSensors)

	return &domain.RootCause{
		Component:       h.Component,
		AffectedSensors: sensors,
		ImpactScore:     h.ImpactScore,
		Centrality:      centrality,
		Method:          method,
	}
}
