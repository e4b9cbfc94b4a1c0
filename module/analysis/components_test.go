package analysis

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/arjun-p/rocket-engine-monitor/infra/vadalog"
)

func TestParseComponents(t *testing.T) {
	Convey("TestParseComponents", t, func() {
		Convey("正常解析组件行", func() {
			rs := vadalog.ResultSet{
				"component": {
					{"HPOTP", "SYM-042", false, "nominal", "overheat", "Propulsion"},
					{"Sensor_T1", "", true, "failed", "", "Telemetry"},
				},
			}
			components, err := parseComponents(NewRelationView(rs))

			So(err, ShouldBeNil)
			So(components, ShouldHaveLength, 2)
			So(components[0].ID, ShouldEqual, "HPOTP")
			So(*components[0].SymptomCode, ShouldEqual, "SYM-042")
			So(components[0].IsObservable, ShouldBeFalse)
			So(components[0].Team, ShouldEqual, "Propulsion")
		})

		Convey("空字符串字段映射为 null", func() {
			rs := vadalog.ResultSet{
				"component": {
					{"Sensor_T1", "", true, "failed", "", "Telemetry"},
				},
			}
			components, err := parseComponents(NewRelationView(rs))

			So(err, ShouldBeNil)
			So(components[0].SymptomCode, ShouldBeNil)
			So(components[0].RelatedSymptom, ShouldBeNil)
			So(components[0].IsObservable, ShouldBeTrue)
		})

		Convey("关系缺失是硬错误", func() {
			components, err := parseComponents(NewRelationView(vadalog.ResultSet{}))

			So(err, ShouldNotBeNil)
			So(components, ShouldBeNil)
		})

		Convey("空关系返回空列表而不是 null", func() {
			rs := vadalog.ResultSet{"component": {}}
			components, err := parseComponents(NewRelationView(rs))

			So(err, ShouldBeNil)
			So(components, ShouldNotBeNil)
			So(components, ShouldBeEmpty)
		})
	})
}

func TestParseRelationships(t *testing.T) {
	Convey("TestParseRelationships", t, func() {
		Convey("正常解析依赖边", func() {
			rs := vadalog.ResultSet{
				"relationship": {
					{"HPOTP", "Main_Combustion_Chamber"},
					{"LPOTP", "HPOTP"},
				},
			}
			relationships, err := parseRelationships(NewRelationView(rs))

			So(err, ShouldBeNil)
			So(relationships, ShouldHaveLength, 2)
			So(relationships[0].Source, ShouldEqual, "HPOTP")
			So(relationships[0].Target, ShouldEqual, "Main_Combustion_Chamber")
		})

		Convey("关系缺失是硬错误", func() {
			_, err := parseRelationships(NewRelationView(vadalog.ResultSet{}))

			So(err, ShouldNotBeNil)
		})
	})
}

func TestRelationView(t *testing.T) {
	Convey("TestRelationView", t, func() {
		Convey("Rows 过滤字段数不足的行", func() {
			rs := vadalog.ResultSet{
				"hotspot": {
					{"X", 1},
					{"short"},
					{"Y", 2, "extra"}, // 多出的字段忽略
				},
			}
			rows, err := NewRelationView(rs).Rows("hotspot")

			So(err, ShouldBeNil)
			So(rows, ShouldHaveLength, 2)
		})

		Convey("Rows 对缺失关系返回 MissingRelationError", func() {
			_, err := NewRelationView(vadalog.ResultSet{}).Rows("hotspot")

			So(err, ShouldNotBeNil)
			missing, ok := err.(*MissingRelationError)
			So(ok, ShouldBeTrue)
			So(missing.Relation, ShouldEqual, "hotspot")
		})

		Convey("rowsOrEmpty 对缺失关系按空处理", func() {
			rows := NewRelationView(vadalog.ResultSet{}).rowsOrEmpty("hotspot")

			So(rows, ShouldBeEmpty)
		})

		Convey("未知关系不做字段数检查", func() {
			rs := vadalog.ResultSet{
				"custom": {{"only-one"}},
			}
			rows, err := NewRelationView(rs).Rows("custom")

			So(err, ShouldBeNil)
			So(rows, ShouldHaveLength, 1)
		})
	})
}
