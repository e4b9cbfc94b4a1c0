package vadalog

import (
	"context"

	"github.com/pkg/errors"

	"github.com/arjun-p/rocket-engine-monitor/config"
	httputil "github.com/arjun-p/rocket-engine-monitor/infra/http"
	"github.com/arjun-p/rocket-engine-monitor/infra/log"
)

// Tuple 关系中的一行，字段为位置相关的异构标量。
type Tuple []interface{}

// ResultSet 引擎求值结果：关系名 -> 元组序列。
type ResultSet map[string][]Tuple

// ErrMalformedEnvelope 上游响应缺少 data.resultSet 信封。
// 信封级错误对整个请求是致命的，没有可聚合的数据。
var ErrMalformedEnvelope = errors.New("引擎响应缺少 data.resultSet 信封")

const evaluatePath = "/api/v1/vadalog/evaluate"

// 引擎侧的求值执行参数，与前端约定保持一致
const (
	evaluateTimeoutSeconds = 300
	evaluateMaxIterations  = 1000
)

// Client Vadalog 引擎客户端
type Client struct {
	httpClient *httputil.Client
}

// NewClient 创建引擎客户端实例。
// getToken: 动态获取 Bearer Token（配置热加载后立即生效）
func NewClient(cfg config.PlatformConfig, getToken func() string) *Client {
	headers := map[string]string{
		"User-Agent": "rocket-engine-monitor",
	}
	httpClient := httputil.NewClient(httputil.Config{
		BaseURL:            cfg.BaseURL,
		Timeout:            cfg.Timeout,
		InsecureSkipVerify: cfg.InsecureSkipVerify,
		Headers:            headers,
	}, getToken).WithLogger(log.Logger)

	return &Client{
		httpClient: httpClient,
	}
}

// evaluateRequest Vadalog 求值请求体。
type evaluateRequest struct {
	Program          string                 `json:"program"`
	Parameters       map[string]interface{} `json:"parameters"`
	ExecutionOptions executionOptions       `json:"execution_options"`
	Timeout          int                    `json:"timeout"`
}

type executionOptions struct {
	MaterializeIntermediate bool `json:"materialize_intermediate"`
	DebugMode               bool `json:"debug_mode"`
	MaxIterations           int  `json:"max_iterations"`
}

// evaluateEnvelope 求值响应信封。
type evaluateEnvelope struct {
	Data *struct {
		ResultSet ResultSet `json:"resultSet"`
	} `json:"data"`
}

// Evaluate 提交查询程序求值并返回结果关系集。
func (c *Client) Evaluate(ctx context.Context, program string) (ResultSet, error) {
	req := evaluateRequest{
		Program:    program,
		Parameters: map[string]interface{}{},
		ExecutionOptions: executionOptions{
			MaterializeIntermediate: true,
			DebugMode:               false,
			MaxIterations:           evaluateMaxIterations,
		},
		Timeout: evaluateTimeoutSeconds,
	}

	resp, err := c.httpClient.Post(ctx, evaluatePath, req)
	if err != nil {
		return nil, errors.Wrap(err, "调用 Vadalog 引擎失败")
	}

	if err := resp.Error(); err != nil {
		return nil, err
	}

	var envelope evaluateEnvelope
	if err := resp.DecodeJSON(&envelope); err != nil {
		return nil, errors.Wrapf(ErrMalformedEnvelope, "解析引擎响应失败: %v", err)
	}

	if envelope.Data == nil || envelope.Data.ResultSet == nil {
		return nil, ErrMalformedEnvelope
	}

	return envelope.Data.ResultSet, nil
}
