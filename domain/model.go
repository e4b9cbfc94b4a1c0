package domain

// ========== 组件与依赖关系 ==========

// Component 被监控系统依赖图中的物理/功能单元快照。
// 每次请求从上游数据重新计算，本服务不持久化。
type Component struct {
	ID             string  `json:"id"`
	SymptomCode    *string `json:"symptomCode"`    // 症状编码，可为 null
	IsObservable   bool    `json:"isObservable"`   // 是否可观测（传感器）
	Status         string  `json:"status"`         // 当前状态
	RelatedSymptom *string `json:"relatedSymptom"` // 关联症状，可为 null
	Team           string  `json:"team"`           // 归属团队
}

// Relationship 组件依赖关系（parent -> child）。
type Relationship struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// ========== 度中心性 ==========

// CentralityNode 单个组件的度中心性。
type CentralityNode struct {
	ComponentID       string  `json:"component_id"`
	Degree            int     `json:"degree"`             // 原始连接数
	Centrality        float64 `json:"centrality"`         // 归一化中心性 0-1
	CentralityPercent float64 `json:"centrality_percent"` // 百分比形式
	Rank              int     `json:"rank"`               // 排序位置（从 1 开始）
}

// CentralityMetadata 度中心性的汇总信息。
type CentralityMetadata struct {
	TotalNodes           int     `json:"total_nodes"`
	TotalEdges           int     `json:"total_edges"` // 无向图：度数之和 / 2
	AverageDegree        float64 `json:"average_degree"`
	AverageCentrality    float64 `json:"average_centrality"`
	MostCentralComponent *string `json:"most_central_component"`
	MaxDegree            int     `json:"max_degree"`
	MaxCentrality        float64 `json:"max_centrality"`
}

// CentralityReport 度中心性完整响应。
type CentralityReport struct {
	Nodes    []CentralityNode   `json:"nodes"`
	Metadata CentralityMetadata `json:"metadata"`
}

// ========== 故障分析 ==========

// FailureChainEdge 故障传播链中的一条有向边。
type FailureChainEdge struct {
	Parent string `json:"parent"`
	Child  string `json:"child"`
}

// Hotspot 多条故障传播路径汇聚的组件。
// ImpactScore 以上游给出的计数为准，不按 AffectedSensors 长度重算，
// 上游的计数口径可能与传播边推导出的集合不同。
type Hotspot struct {
	Component       string   `json:"component"`
	AffectedSensors []string `json:"affectedSensors"` // 首次出现顺序，去重
	ImpactScore     int      `json:"impactScore"`
}

// RootCause 按某种排序策略选出的最可能根因组件。
// 非 null 的根因一定是热点表成员的副本，绝不凭空构造。
type RootCause struct {
	Component       string   `json:"component"`
	AffectedSensors []string `json:"affectedSensors"`
	ImpactScore     int      `json:"impactScore"`
	Centrality      *float64 `json:"centrality,omitempty"` // combined 方法用入度覆盖
	Method          string   `json:"method,omitempty"`     // 排序策略标签
}

// RootCauseMethods 两种独立策略的选取结果。
type RootCauseMethods struct {
	Default  *RootCause `json:"default"`
	Combined *RootCause `json:"combined"`
}

// Alert 需要通知的团队告警记录。
type Alert struct {
	Component    string `json:"component"`
	Team         string `json:"team"`
	TeamLeaderID string `json:"teamLeaderId"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	SensorCount  int    `json:"sensorCount"` // 上游缺省时为 0
}

// ========== 四阶段分析结果 ==========

// StageFailedSensors 阶段一：失效传感器集合（排序去重后输出）。
type StageFailedSensors struct {
	FailedSensors []string `json:"failedSensors"`
}

// StageFailureChains 阶段二：故障传播链。
type StageFailureChains struct {
	FailureChains []FailureChainEdge `json:"failureChains"`
}

// StageHotspots 阶段三：热点、根因与中心性。
type StageHotspots struct {
	Hotspots         []Hotspot          `json:"hotspots"`  // 汇聚点（最大影响分）
	RootCause        *RootCause         `json:"rootCause"` // 兼容旧版消费方的单根因字段
	RootCauseMethods RootCauseMethods   `json:"rootCauseMethods"`
	DegreeCentrality map[string]float64 `json:"degreeCentrality"`
}

// StageAlerts 阶段四：团队告警。
type StageAlerts struct {
	Alerts []Alert `json:"alerts"`
}

// FailureAnalysis 故障分析聚合结果，每次请求重新计算，不缓存。
type FailureAnalysis struct {
	Stage1 StageFailedSensors `json:"stage1"`
	Stage2 StageFailureChains `json:"stage2"`
	Stage3 StageHotspots      `json:"stage3"`
	Stage4 StageAlerts        `json:"stage4"`
}
