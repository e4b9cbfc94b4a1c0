package analysis

import (
	"github.com/pkg/errors"

	"github.com/arjun-p/rocket-engine-monitor/infra/log"
	"github.com/arjun-p/rocket-engine-monitor/infra/vadalog"
)

// RelationView 引擎结果集的只读类型化视图。
// 所有位置索引和字段数检查都收敛在这一层，
// 业务逻辑不直接对元组做位置取值。
type RelationView struct {
	resultSet vadalog.ResultSet
}

// NewRelationView 创建结果集视图。
func NewRelationView(resultSet vadalog.ResultSet) *RelationView {
	return &RelationView{resultSet: resultSet}
}

// Rows 返回指定关系的有效行。
// 关系缺失返回 MissingRelationError；字段数不足的行记一条
// 告警后跳过，剩余行正常返回。
func (v *RelationView) Rows(name string) ([]vadalog.Tuple, error) {
	rows, ok := v.resultSet[name]
	if !ok {
		return nil, &MissingRelationError{Relation: name}
	}

	minArity, ok := relationMinArity[name]
	if !ok {
		return rows, nil
	}

	valid := make([]vadalog.Tuple, 0, len(rows))
	for i, row := range rows {
		if len(row) < minArity {
			log.Warnf("跳过畸形行: %v", &MalformedTupleError{
				Relation: name,
				Index:    i,
				Got:      len(row),
				Want:     minArity,
			})
			continue
		}
		valid = append(valid, row)
	}
	return valid, nil
}

// rowsOrEmpty 返回指定关系的有效行，关系缺失按空处理。
// 故障分析各阶段用这个入口实现独立降级。
func (v *RelationView) rowsOrEmpty(name string) []vadalog.Tuple {
	rows, err := v.Rows(name)
	if err != nil {
		var missing *MissingRelationError
		if errors.As(err, &missing) {
			log.Debugf("关系 %s 缺失，按空处理", name)
		}
		return nil
	}
	return rows
}
