package analysis

import (
	"github.com/pkg/errors"
	"github.com/spf13/cast"

	"github.com/arjun-p/rocket-engine-monitor/domain"
)

// parseComponents 把 component 关系映射为组件快照列表。
// 与故障分析不同，这里关系缺失是硬错误：组件查询没有降级语义。
func parseComponents(view *RelationView) ([]domain.Component, error) {
	rows, err := view.Rows(RelationComponent)
	if err != nil {
		return nil, errors.Wrap(err, "解析组件列表失败")
	}

	components := make([]domain.Component, 0, len(rows))
	for _, row := range rows {
		components = append(components, domain.Component{
			ID:             cast.ToString(row[0]),
			SymptomCode:    optionalString(row[1]),
			IsObservable:   cast.ToBool(row[2]),
			Status:         cast.ToString(row[3]),
			RelatedSymptom: optionalString(row[4]),
			Team:           cast.ToString(row[5]),
		})
	}
	return components, nil
}

// parseRelationships 把 relationship 关系映射为依赖边列表。
func parseRelationships(view *RelationView) ([]domain.Relationship, error) {
	rows, err := view.Rows(RelationRelationship)
	if err != nil {
		return nil, errors.Wrap(err, "解析依赖关系失败")
	}

	relationships := make([]domain.Relationship, 0, len(rows))
	for _, row := range rows {
		relationships = append(relationships, domain.Relationship{
			Source: cast.ToString(row[0]),
			Target: cast.ToString(row[1]),
		})
	}
	return relationships, nil
}

// optionalString 空字符串按 null 处理（上游用空串表示字段缺失）。
func optionalString(v interface{}) *string {
	s := cast.ToString(v)
	if s == "" {
		return nil
	}
	return &s
}
