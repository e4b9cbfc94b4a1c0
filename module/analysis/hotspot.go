package analysis

import (
	"github.com/spf13/cast"

	"github.com/arjun-p/rocket-engine-monitor/domain"
	"github.com/arjun-p/rocket-engine-monitor/utils/slice"
)

// hotspotIndex 按插入顺序组织的热点表。
// map 提供 O(1) 查找，order 记录 hotspot 关系的首次出现顺序，
// 保证汇聚点输出和并列时的先后顺序是确定的。
type hotspotIndex struct {
	byComponent map[string]*domain.Hotspot
	order       []string
}

func newHotspotIndex() *hotspotIndex {
	return &hotspotIndex{
		byComponent: make(map[string]*domain.Hotspot),
	}
}

// detectHotspots 构建热点表并回填造成影响的失效传感器。
// 影响分以 hotspot 关系给出的计数为准，不按回填出的传感器数重算。
func detectHotspots(view *RelationView, failed map[string]struct{}) *hotspotIndex {
	idx := newHotspotIndex()

	for _, row := range view.rowsOrEmpty(RelationHotspot) {
		component := cast.ToString(row[0])
		h, ok := idx.byComponent[component]
		if !ok {
			h = &domain.Hotspot{Component: component}
			idx.byComponent[component] = h
			idx.order = append(idx.order, component)
		}
		// 同名组件重复出现时后行覆盖前行，位置保持首次出现处
		h.ImpactScore = cast.ToInt(row[1])
		h.AffectedSensors = []string{}
	}

	// 从传播边反向回填：源是失效传感器且目标是热点时，
	// 记入该热点的受影响传感器列表（首次出现顺序，去重）
	for _, row := range view.rowsOrEmpty(RelationPropagatesTo) {
		source := cast.ToString(row[0])
		target := cast.ToString(row[1])

		if _, isFailed := failed[source]; !isFailed {
			continue
		}
		h, ok := idx.byComponent[target]
		if !ok {
			continue
		}
		h.AffectedSensors = slice.AppendUniqueString(h.AffectedSensors, source)
	}

	return idx
}

// lookup 在完整热点表中查找组件（根因解析用的是全表，不是汇聚点子集）。
func (idx *hotspotIndex) lookup(component string) (*domain.Hotspot, bool) {
	h, ok := idx.byComponent[component]
	return h, ok
}

// maxImpact 热点表中的最大影响分，空表为 0。
func (idx *hotspotIndex) maxImpact() int {
	maxScore := 0
	for _, component := range idx.order {
		if score := idx.byComponent[component].ImpactScore; score > maxScore {
			maxScore = score
		}
	}
	return maxScore
}

// convergencePoints 汇聚点：影响分等于最大值的全部热点。
// 并列的热点按 hotspot 关系中的首次出现顺序输出。
func (idx *hotspotIndex) convergencePoints() []domain.Hotspot {
	points := make([]domain.Hotspot, 0)
	if len(idx.order) == 0 {
		return points
	}

	maxScore := idx.maxImpact()
	for _, component := range idx.order {
		h := idx.byComponent[component]
		if h.ImpactScore == maxScore {
			points = append(points, *h)
		}
	}
	return points
}
