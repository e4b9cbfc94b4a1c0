package vadalog

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// 查询程序模板文件名
const (
	ProgramComponents       = "get_components.vada"
	ProgramRelationships    = "get_relationships.vada"
	ProgramDegreeCentrality = "degree_centrality.vada"
	ProgramFailureAnalysis  = "failure_analysis.vada"
)

// ProgramStore 从模板目录加载 Vadalog 查询程序。
// 模板中的 {name} 占位符在加载时用调用方提供的变量替换，
// 主要用于注入 S3 凭据与各数据库连接串。
type ProgramStore struct {
	dir string
}

// NewProgramStore 创建程序模板加载器。
func NewProgramStore(dir string) *ProgramStore {
	return &ProgramStore{dir: dir}
}

// Load 读取模板文件并替换占位符。
// 每次请求都重新读取文件，模板更新无需重启服务。
func (s *ProgramStore) Load(name string, vars map[string]string) (string, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return "", errors.Wrapf(err, "读取查询程序模板 %s 失败", name)
	}

	if len(vars) == 0 {
		return string(data), nil
	}

	pairs := make([]string, 0, len(vars)*2)
	for key, value := range vars {
		pairs = append(pairs, "{"+key+"}", value)
	}
	return strings.NewReplacer(pairs...).Replace(string(data)), nil
}
