package utils

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestJsonEncode(t *testing.T) {
	Convey("TestJsonEncode", t, func() {
		Convey("正常序列化", func() {
			data := map[string]int{"impact": 3}
			So(JsonEncode(data), ShouldEqual, `{"impact":3}`)
		})

		Convey("不可序列化时返回空字符串", func() {
			So(JsonEncode(make(chan int)), ShouldEqual, "")
		})
	})
}
