package app

import (
	"context"
	stderr "errors"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/arjun-p/rocket-engine-monitor/config"
	"github.com/arjun-p/rocket-engine-monitor/infra/log"
	"github.com/arjun-p/rocket-engine-monitor/infra/vadalog"
	"github.com/arjun-p/rocket-engine-monitor/module/analysis"
	"github.com/arjun-p/rocket-engine-monitor/module/api"
)

// App 负责模块装配。
type App struct {
	API      *api.Server
	Analysis *analysis.Service
}

func New(cfgManager *config.ConfigManager) (*App, error) {
	cfg := cfgManager.GetConfig()

	// 初始化 Vadalog 引擎客户端（动态获取 Token，配置热加载后立即生效）
	engineClient := vadalog.NewClient(cfg.Platform,
		func() string { return cfgManager.GetConfig().Platform.Token },
	)

	programs := vadalog.NewProgramStore(cfg.Platform.ProgramDir)

	analysisSvc, err := analysis.New(cfgManager, engineClient, programs)
	if err != nil {
		return nil, errors.Wrap(err, "初始化 AnalysisService 失败")
	}

	apiServer, err := api.New(cfgManager, analysisSvc)
	if err != nil {
		return nil, errors.Wrap(err, "初始化 Api 失败")
	}

	return &App{
		API:      apiServer,
		Analysis: analysisSvc,
	}, nil
}

func (a *App) Start(ctx context.Context) error {
	if ctx == nil {
		return errors.New("context 不能为空")
	}

	eg, egCtx := errgroup.WithContext(ctx)

	if a.API != nil {
		eg.Go(func() error {
			if err := a.API.Start(egCtx); err != nil && !errors.Is(err, context.Canceled) {
				return errors.Wrap(err, "api 启动失败")
			}
			return nil
		})
	}

	log.Info("应用已启动，等待退出信号")
	return eg.Wait()
}

// Close 统一关闭持有的资源，需由上层在取消上下文后调用。
func (a *App) Close(ctx context.Context) error {
	var errs []error

	if a.API != nil {
		if err := a.API.Stop(ctx); err != nil && !errors.Is(err, context.Canceled) {
			errs = append(errs, errors.Wrap(err, "stop api"))
		}
	}

	return stderr.Join(errs...)
}
