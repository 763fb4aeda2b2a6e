// =============================================================================
// AgentCanvas 配置加载器
// =============================================================================
// 统一配置加载，支持 YAML 文件 + 环境变量覆盖
//
// 使用方法:
//
//	cfg, err := config.NewLoader().
//	    WithConfigPath("canvas.yaml").
//	    WithEnvPrefix("AGENTCANVAS").
//	    Load()
//
// 配置优先级: 默认值 → YAML 文件 → 环境变量
// =============================================================================
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config 是 AgentCanvas 的完整配置结构
type Config struct {
	// Canvas 画布与布局配置
	Canvas CanvasConfig `yaml:"canvas"`

	// Log 日志配置
	Log LogConfig `yaml:"log"`
}

// CanvasConfig 画布布局配置
type CanvasConfig struct {
	// 布局策略: hybrid | layered
	Strategy string `yaml:"strategy"`
	// 布局方向: vertical | horizontal（仅 layered 策略）
	Direction string `yaml:"direction"`
	// 同层节点间距
	NodeSpacing float64 `yaml:"node_spacing"`
	// 层间距
	RankSpacing float64 `yaml:"rank_spacing"`
	// 条件分支横向偏移
	BranchOffset float64 `yaml:"branch_offset"`
	// 加载无坐标定义时自动布局
	AutoLayoutOnLoad bool `yaml:"auto_layout_on_load"`
}

// LogConfig 日志配置
type LogConfig struct {
	// 级别: debug | info | warn | error
	Level string `yaml:"level"`
	// 格式: json | console
	Format string `yaml:"format"`
}

// Default returns the built-in defaults.
func Default() *Config {
	return &Config{
		Canvas: CanvasConfig{
			Strategy:         "hybrid",
			Direction:        "vertical",
			NodeSpacing:      200,
			RankSpacing:      120,
			BranchOffset:     200,
			AutoLayoutOnLoad: true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Loader loads configuration with defaults -> YAML file -> env precedence.
type Loader struct {
	configPath string
	envPrefix  string
}

// NewLoader creates a config loader.
func NewLoader() *Loader {
	return &Loader{envPrefix: "AGENTCANVAS"}
}

// WithConfigPath sets the YAML file to load. Optional.
func (l *Loader) WithConfigPath(path string) *Loader {
	l.configPath = path
	return l
}

// WithEnvPrefix sets the prefix for environment overrides.
func (l *Loader) WithEnvPrefix(prefix string) *Loader {
	l.envPrefix = prefix
	return l
}

// Load resolves the final configuration.
func (l *Loader) Load() (*Config, error) {
	cfg := Default()

	if l.configPath != "" {
		data, err := os.ReadFile(l.configPath)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	if err := l.applyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overrides fields from {PREFIX}_{SECTION}_{KEY} variables.
func (l *Loader) applyEnv(cfg *Config) error {
	l.envString("CANVAS_STRATEGY", &cfg.Canvas.Strategy)
	l.envString("CANVAS_DIRECTION", &cfg.Canvas.Direction)
	l.envString("LOG_LEVEL", &cfg.Log.Level)
	l.envString("LOG_FORMAT", &cfg.Log.Format)

	for key, target := range map[string]*float64{
		"CANVAS_NODE_SPACING":  &cfg.Canvas.NodeSpacing,
		"CANVAS_RANK_SPACING":  &cfg.Canvas.RankSpacing,
		"CANVAS_BRANCH_OFFSET": &cfg.Canvas.BranchOffset,
	} {
		if err := l.envFloat(key, target); err != nil {
			return err
		}
	}

	if v, ok := os.LookupEnv(l.envPrefix + "_CANVAS_AUTO_LAYOUT_ON_LOAD"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("env CANVAS_AUTO_LAYOUT_ON_LOAD: %w", err)
		}
		cfg.Canvas.AutoLayoutOnLoad = b
	}
	return nil
}

func (l *Loader) envString(key string, target *string) {
	if v, ok := os.LookupEnv(l.envPrefix + "_" + key); ok {
		*target = v
	}
}

func (l *Loader) envFloat(key string, target *float64) error {
	v, ok := os.LookupEnv(l.envPrefix + "_" + key)
	if !ok {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("env %s: %w", key, err)
	}
	*target = f
	return nil
}
