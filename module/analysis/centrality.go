package analysis

import (
	"math"

	"github.com/pkg/errors"
	"github.com/spf13/cast"

	"github.com/arjun-p/rocket-engine-monitor/domain"
	"github.com/arjun-p/rocket-engine-monitor/infra/log"
)

// 独立度中心性程序输出 3 列：(组件, 度数, 归一化中心性)。
// 故障分析结果集里的 degree_centrality 是 2 列入度表，两者口径不同。
const centralityRowArity = 3

// parseCentralityReport 把 degree_centrality 关系聚合为完整的中心性报告。
// 行顺序即排名顺序，上游已按中心性降序排好。
func parseCentralityReport(view *RelationView) (*domain.CentralityReport, error) {
	rows, err := view.Rows(RelationDegreeCentrality)
	if err != nil {
		return nil, errors.Wrap(err, "解析度中心性失败")
	}

	nodes := make([]domain.CentralityNode, 0, len(rows))
	for i, row := range rows {
		if len(row) < centralityRowArity {
			log.Warnf("跳过畸形行: %v", &MalformedTupleError{
				Relation: RelationDegreeCentrality,
				Index:    i,
				Got:      len(row),
				Want:     centralityRowArity,
			})
			continue
		}
		centrality := cast.ToFloat64(row[2])
		nodes = append(nodes, domain.CentralityNode{
			ComponentID:       cast.ToString(row[0]),
			Degree:            cast.ToInt(row[1]),
			Centrality:        roundTo(centrality, 4),
			CentralityPercent: roundTo(centrality*100, 2),
			Rank:              len(nodes) + 1,
		})
	}

	return &domain.CentralityReport{
		Nodes:    nodes,
		Metadata: buildCentralityMetadata(nodes),
	}, nil
}

// buildCentralityMetadata 汇总信息。无向图的边数是度数之和的一半。
func buildCentralityMetadata(nodes []domain.CentralityNode) domain.CentralityMetadata {
	meta := domain.CentralityMetadata{TotalNodes: len(nodes)}
	if len(nodes) == 0 {
		return meta
	}

	sumDegree := 0
	sumCentrality := 0.0
	for _, node := range nodes {
		sumDegree += node.Degree
		sumCentrality += node.Centrality
		if node.Degree > meta.MaxDegree {
			meta.MaxDegree = node.Degree
		}
		// 严格大于：并列时取首个，行顺序即排名顺序
		if meta.MostCentralComponent == nil || node.Centrality > meta.MaxCentrality {
			id := node.ComponentID
			meta.MostCentralComponent = &id
			meta.MaxCentrality = node.Centrality
		}
	}

	meta.TotalEdges = sumDegree / 2
	meta.AverageDegree = roundTo(float64(sumDegree)/float64(len(nodes)), 2)
	meta.AverageCentrality = roundTo(sumCentrality/float64(len(nodes)), 4)
	return meta
}

func roundTo(x float64, digits int) float64 {
	scale := math.Pow(10, float64(digits))
	return math.Round(x*scale) / scale
}
