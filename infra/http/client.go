package http

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"github.com/arjun-p/rocket-engine-monitor/infra/log"
)

// Client 通用 HTTP 客户端封装。
type Client struct {
	baseURL    string
	httpClient *http.Client
	headers    map[string]string
	logger     *log.Log
	getToken   func() string // 动态获取 Bearer Token
}

// Config HTTP 客户端配置。
type Config struct {
	BaseURL            string            // 基础 URL
	Timeout            time.Duration     // 请求超时时间
	Headers            map[string]string // 默认 Header
	InsecureSkipVerify bool              // 是否跳过SSL验证
}

// NewClient 创建 HTTP 客户端实例。
// getToken 每次请求时调用，保证配置热加载后使用最新 Token。
func NewClient(cfg Config, getToken func() string) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	transport := &http.Transport{}
	if cfg.InsecureSkipVerify {
		transport.TLSClientConfig = &tls.Config{
			InsecureSkipVerify: true,
		}
	}

	return &Client{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
		},
		headers:  cfg.Headers,
		getToken: getToken,
	}
}

func (c *Client) WithLogger(logger *log.Log) *Client {
	c.logger = logger
	return c
}

// Response 通用响应结构。
type Response struct {
	StatusCode int
	Body       []byte
	Headers    http.Header
}

// Post 执行 POST 请求，请求体自动序列化为 JSON。
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	url := c.baseURL + path

	var bodyReader io.Reader
	var requestBodyBytes []byte
	if body != nil {
		var err error
		requestBodyBytes, err = json.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(err, "序列化请求体失败")
		}
		bodyReader = bytes.NewReader(requestBodyBytes)
	}

	// Debug 日志：在 defer 中统一记录请求/响应/耗时
	var statusCode int
	var respBody []byte
	defer func(start time.Time) {
		if c.logger == nil {
			return
		}

		c.logger.Debugw("HTTP",
			"method", http.MethodPost,
			"url", url,
			"status_code", statusCode,
			"response_bytes", len(respBody),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}(time.Now())

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bodyReader)
	if err != nil {
		return nil, errors.Wrap(err, "创建请求失败")
	}

	for key, value := range c.headers {
		httpReq.Header.Set(key, value)
	}
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	// 动态获取最新的 Token
	if c.getToken != nil {
		if token := c.getToken(); token != "" {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, errors.Wrap(err, "请求失败")
	}
	defer func() {
		_ = httpResp.Body.Close()
	}()

	respBody, err = io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "读取响应失败")
	}
	statusCode = httpResp.StatusCode

	return &Response{
		StatusCode: httpResp.StatusCode,
		Body:       respBody,
		Headers:    httpResp.Header,
	}, nil
}

// DecodeJSON 将响应体解析为 JSON。
func (r *Response) DecodeJSON(v interface{}) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return errors.Wrap(err, "解析 JSON 失败")
	}
	return nil
}

// IsSuccess 检查响应是否成功（2xx）。
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Error 返回错误响应信息。
func (r *Response) Error() error {
	if r.IsSuccess() {
		return nil
	}
	return errors.Errorf("请求失败，状态码: %d, 响应: %s", r.StatusCode, string(r.Body))
}
