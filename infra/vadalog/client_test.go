package vadalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pkg/errors"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/arjun-p/rocket-engine-monitor/config"
)

func newTestClient(baseURL string) *Client {
	return NewClient(config.PlatformConfig{
		BaseURL: baseURL,
		Timeout: 5 * time.Second,
	}, func() string { return "test-token" })
}

func TestClient_Evaluate(t *testing.T) {
	Convey("TestClient_Evaluate", t, func() {
		Convey("成功求值并解包 resultSet 信封", func() {
			var gotAuth string
			var gotBody map[string]interface{}
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotAuth = r.Header.Get("Authorization")
				_ = json.NewDecoder(r.Body).Decode(&gotBody)
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"data":{"resultSet":{"hotspot":[["HPOTP",3]]}}}`))
			}))
			defer server.Close()

			resultSet, err := newTestClient(server.URL).Evaluate(context.Background(), "program text")

			So(err, ShouldBeNil)
			So(resultSet["hotspot"], ShouldHaveLength, 1)
			So(resultSet["hotspot"][0][0], ShouldEqual, "HPOTP")

			So(gotAuth, ShouldEqual, "Bearer test-token")
			So(gotBody["program"], ShouldEqual, "program text")
			So(gotBody["timeout"], ShouldEqual, float64(evaluateTimeoutSeconds))

			opts, ok := gotBody["execution_options"].(map[string]interface{})
			So(ok, ShouldBeTrue)
			So(opts["materialize_intermediate"], ShouldEqual, true)
			So(opts["debug_mode"], ShouldEqual, false)
			So(opts["max_iterations"], ShouldEqual, float64(evaluateMaxIterations))
		})

		Convey("非 2xx 状态码返回错误", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
				_, _ = w.Write([]byte("upstream error"))
			}))
			defer server.Close()

			_, err := newTestClient(server.URL).Evaluate(context.Background(), "p")

			So(err, ShouldNotBeNil)
		})

		Convey("响应不是合法 JSON 时报信封错误", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("not json"))
			}))
			defer server.Close()

			_, err := newTestClient(server.URL).Evaluate(context.Background(), "p")

			So(err, ShouldNotBeNil)
			So(errors.Is(err, ErrMalformedEnvelope), ShouldBeTrue)
		})

		Convey("缺少 data 信封时报错", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"message":"ok"}`))
			}))
			defer server.Close()

			_, err := newTestClient(server.URL).Evaluate(context.Background(), "p")

			So(err, ShouldNotBeNil)
			So(errors.Is(err, ErrMalformedEnvelope), ShouldBeTrue)
		})

		Convey("缺少 resultSet 时报错", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"data":{"other":1}}`))
			}))
			defer server.Close()

			_, err := newTestClient(server.URL).Evaluate(context.Background(), "p")

			So(err, ShouldNotBeNil)
			So(errors.Is(err, ErrMalformedEnvelope), ShouldBeTrue)
		})

		Convey("引擎不可达时返回错误", func() {
			_, err := newTestClient("http://127.0.0.1:1").Evaluate(context.Background(), "p")

			So(err, ShouldNotBeNil)
		})
	})
}
