package analysis

import (
	"github.com/spf13/cast"

	"github.com/arjun-p/rocket-engine-monitor/domain"
)

// composeAlerts 把 alert 关系逐行映射为告警对象，保持引擎输出顺序。
// 前五列固定为组件、团队、负责人工号、名、姓；
// 第六列传感器数可缺省，缺省时记 0。
func composeAlerts(view *RelationView) []domain.Alert {
	rows := view.rowsOrEmpty(RelationAlert)
	alerts := make([]domain.Alert, 0, len(rows))
	for _, row := range rows {
		alert := domain.Alert{
			Component:    cast.ToString(row[0]),
			Team:         cast.ToString(row[1]),
			TeamLeaderID: cast.ToString(row[2]),
			FirstName:    cast.ToString(row[3]),
			LastName:     cast.ToString(row[4]),
		}
		if len(row) > alertSensorCountIndex {
			alert.SensorCount = cast.ToInt(row[alertSensorCountIndex])
		}
		alerts = append(alerts, alert)
	}
	return alerts
}
