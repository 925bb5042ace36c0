package gas

import (
	"fmt"
	"os"
	"strings"
	"sync/atomic"

	"gasmethod/infra/observe/log/staticLog"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Optimizer struct {
		Tol     float64 `yaml:"tol"`
		MaxIter int     `yaml:"maxiter"`
		Strict  bool    `yaml:"strict"`
	} `yaml:"optimizer"`
	Baseline struct {
		Loc0   float64 `yaml:"loc0"`
		Scale0 float64 `yaml:"scale0"`
	} `yaml:"baseline"`
	Recursion struct {
		Scaling string `yaml:"scaling"` // asymmetric / consistent
		Density string `yaml:"density"` // baseline / updated
	} `yaml:"recursion"`
	Diagnostics struct {
		Lags int `yaml:"lags"`
		Bins int `yaml:"bins"`
	} `yaml:"diagnostics"`
	Log staticLog.LogConfig `yaml:"log"`
}

// 用 atomic.Value 存当前配置，支持热更新时无锁读取
var cfgValue atomic.Value // stores *Config

func DefaultConfig() *Config {
	var c Config
	c.Optimizer.Tol = DEFAULT_TOL
	c.Baseline.Loc0 = BASE_LOC0
	c.Baseline.Scale0 = BASE_SCALE0
	c.Recursion.Scaling = SCALING_ASYMMETRIC.String()
	c.Recursion.Density = BASELINE_DENSITY.String()
	c.Diagnostics.Lags = DEFAULT_ACF_LAGS
	c.Diagnostics.Bins = DEFAULT_HIST_BINS
	c.Log.Level = "info"
	return &c
}

// Load 读取 yaml, 未给出的字段保持默认值
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read yaml: %w", err)
	}

	c := DefaultConfig()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("unmarshal yaml: %w", err)
	}

	// 规范化：小写、去空格
	c.Recursion.Scaling = strings.ToLower(strings.TrimSpace(c.Recursion.Scaling))
	c.Recursion.Density = strings.ToLower(strings.TrimSpace(c.Recursion.Density))

	if c.Optimizer.Tol <= 0 {
		return nil, fmt.Errorf("invalid optimizer tol: %v", c.Optimizer.Tol)
	}
	if c.Optimizer.MaxIter < 0 {
		return nil, fmt.Errorf("invalid optimizer maxiter: %d", c.Optimizer.MaxIter)
	}
	if GetScalingMode(c.Recursion.Scaling) == SCALING_ERROR {
		return nil, fmt.Errorf("invalid recursion scaling: %q", c.Recursion.Scaling)
	}
	if GetDensityMode(c.Recursion.Density) == DENSITY_ERROR {
		return nil, fmt.Errorf("invalid recursion density: %q", c.Recursion.Density)
	}
	if c.Diagnostics.Lags < 0 || c.Diagnostics.Bins < 0 {
		return nil, fmt.Errorf("invalid diagnostics lags=%d bins=%d", c.Diagnostics.Lags, c.Diagnostics.Bins)
	}
	return c, nil
}

func Init(path string) error {
	c, err := Load(path)
	if err != nil {
		return err
	}
	cfgValue.Store(c)
	return nil
}

// Current 返回已加载的配置, 未加载时返回默认配置
func Current() *Config {
	cAny := cfgValue.Load()
	if cAny == nil {
		return DefaultConfig()
	}
	return cAny.(*Config)
}

// Options 转为流水线参数
func (c *Config) Options() []Option {
	return []Option{
		WithTolerance(c.Optimizer.Tol),
		WithMaxIter(c.Optimizer.MaxIter),
		WithStrictConvergence(c.Optimizer.Strict),
		WithBaselineSeed(Params{Loc: c.Baseline.Loc0, Scale: c.Baseline.Scale0}),
		WithScaling(GetScalingMode(c.Recursion.Scaling)),
		WithDensityMode(GetDensityMode(c.Recursion.Density)),
		WithDiagnostics(c.Diagnostics.Lags, c.Diagnostics.Bins),
	}
}
