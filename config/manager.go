package config

import (
	"context"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"

	"github.com/arjun-p/rocket-engine-monitor/infra/log"
)

// ConfigManager 配置管理器。
// 监听配置文件变动并热加载，读取端通过 GetConfig 拿到当前生效配置。
type ConfigManager struct {
	mu         sync.RWMutex
	config     *Config
	configPath string

	watcher *fsnotify.Watcher
	stopCh  chan struct{}
}

// NewConfigManager 创建配置管理器
func NewConfigManager(configPath string) (*ConfigManager, error) {
	cfg, err := Load(configPath)
	if err != nil {
		return nil, errors.Wrap(err, "初始加载配置失败")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "创建文件 watcher 失败")
	}

	if err := watcher.Add(configPath); err != nil {
		watcher.Close()
		return nil, errors.Wrap(err, "添加配置文件到 watch 列表失败")
	}

	return &ConfigManager{
		config:     cfg,
		configPath: configPath,
		watcher:    watcher,
		stopCh:     make(chan struct{}),
	}, nil
}

// NewTestConfigManager 用给定配置构造管理器，仅用于测试。
func NewTestConfigManager(cfg *Config) *ConfigManager {
	return &ConfigManager{
		config: cfg,
		stopCh: make(chan struct{}),
	}
}

// Start 启动配置文件 watch，阻塞到上下文取消。
func (m *ConfigManager) Start(ctx context.Context) error {
	go m.watchConfigFile(ctx)

	<-ctx.Done()
	return ctx.Err()
}

// Stop 停止配置管理
func (m *ConfigManager) Stop() {
	close(m.stopCh)
	if m.watcher != nil {
		m.watcher.Close()
	}
}

// GetConfig 获取当前配置（线程安全）
func (m *ConfigManager) GetConfig() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

// watchConfigFile 监控配置文件变动
func (m *ConfigManager) watchConfigFile(ctx context.Context) {
	if m.watcher == nil {
		return
	}
	log.Info("启动配置文件 watch 协程")

	for {
		select {
		case <-ctx.Done():
			log.Info("配置文件 watch 协程收到停止信号")
			return
		case <-m.stopCh:
			log.Info("配置文件 watch 协程收到停止信号")
			return
		case event, ok := <-m.watcher.Events:
			if !ok {
				return
			}
			// 只处理写入和创建事件
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				log.Infof("检测到配置文件变动: %s", event.Name)
				// 延迟一下，确保文件写入完成
				time.Sleep(100 * time.Millisecond)
				if err := m.reload(); err != nil {
					log.Errorf("重新加载配置失败: %v", err)
				} else {
					log.Info("配置重新加载成功")
				}
			}
		case err, ok := <-m.watcher.Errors:
			if !ok {
				return
			}
			log.Errorf("配置文件 watch 错误: %v", err)
		}
	}
}

// reload 重新加载配置
func (m *ConfigManager) reload() error {
	cfg, err := Load(m.configPath)
	if err != nil {
		return errors.Wrap(err, "加载配置失败")
	}

	m.mu.Lock()
	m.config = cfg
	m.mu.Unlock()

	return nil
}
