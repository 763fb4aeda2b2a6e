// =============================================================================
// AgentCanvas 主入口
// =============================================================================
// 工作流画布命令行工具：校验、自动布局、格式转换
//
// 使用方法:
//
//	agentcanvas validate workflow.json           # 校验定义与步骤完整性
//	agentcanvas layout workflow.json             # 自动布局并写回坐标
//	agentcanvas layout -force -strategy layered  # 覆盖已有坐标
//	agentcanvas convert workflow.json out.yaml   # JSON ↔ YAML 转换
//	agentcanvas version                          # 显示版本信息
// =============================================================================
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/BaSui01/agentcanvas/config"
	"github.com/BaSui01/agentcanvas/workflow"
	"github.com/BaSui01/agentcanvas/workflow/layout"
)

// 版本信息（构建时注入）
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "validate":
		runValidate(os.Args[2:])
	case "layout":
		runLayout(os.Args[2:])
	case "convert":
		runConvert(os.Args[2:])
	case "version":
		printVersion()
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

// =============================================================================
// validate 命令
// =============================================================================

func runValidate(args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to config file")
	fs.Parse(args)

	_, logger := setup(*configPath)
	defer logger.Sync()

	if fs.NArg() < 1 {
		logger.Fatal("validate requires a workflow definition file")
	}

	def, err := workflow.LoadDefinitionFile(fs.Arg(0))
	if err != nil {
		logger.Fatal("Definition is invalid", zap.Error(err))
	}

	incomplete := 0
	for _, step := range def.Steps {
		if !workflow.IsStepComplete(step) {
			incomplete++
			logger.Warn("Step is incomplete",
				zap.String("step", step.ID),
				zap.String("type", string(step.Type)),
			)
		}
	}
	for _, id := range workflow.UnreachableSteps(def.Steps) {
		logger.Warn("Step is unreachable from the workflow head", zap.String("step", id))
	}

	if incomplete > 0 {
		logger.Error("Workflow has incomplete steps",
			zap.String("workflow", def.Name),
			zap.Int("incomplete", incomplete),
		)
		os.Exit(1)
	}

	logger.Info("Workflow definition is valid",
		zap.String("workflow", def.Name),
		zap.Int("steps", len(def.Steps)),
	)
}

// =============================================================================
// layout 命令
// =============================================================================

func runLayout(args []string) {
	fs := flag.NewFlagSet("layout", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to config file")
	strategy := fs.String("strategy", "", "Layout strategy: hybrid | layered")
	direction := fs.String("direction", "", "Layered direction: vertical | horizontal")
	output := fs.String("o", "", "Output file (defaults to in-place)")
	force := fs.Bool("force", false, "Re-layout even when the definition already has saved positions")
	fs.Parse(args)

	cfg, logger := setup(*configPath)
	defer logger.Sync()

	if fs.NArg() < 1 {
		logger.Fatal("layout requires a workflow definition file")
	}

	def, err := workflow.LoadDefinitionFile(fs.Arg(0))
	if err != nil {
		logger.Fatal("Failed to load definition", zap.Error(err))
	}

	// 已有坐标表示人工摆放或先前布局的结果，默认不覆盖
	if len(def.Layout) > 0 && !*force {
		logger.Info("Definition already has a saved layout, skipping (use -force to override)",
			zap.String("workflow", def.Name),
		)
		return
	}

	g, err := workflow.BuildGraph(def.Steps, def.Layout)
	if err != nil {
		logger.Fatal("Failed to build graph", zap.Error(err))
	}

	if *strategy == "" {
		*strategy = cfg.Canvas.Strategy
	}
	if *direction == "" {
		*direction = cfg.Canvas.Direction
	}
	opts := layout.Options{
		Direction:    layout.Direction(*direction),
		NodeSpacing:  cfg.Canvas.NodeSpacing,
		RankSpacing:  cfg.Canvas.RankSpacing,
		BranchOffset: cfg.Canvas.BranchOffset,
	}

	def.Layout = layout.Compute(g, layout.Strategy(*strategy), opts)

	target := *output
	if target == "" {
		target = fs.Arg(0)
	}
	if err := def.SaveFile(target); err != nil {
		logger.Fatal("Failed to save definition", zap.Error(err))
	}

	logger.Info("Layout written",
		zap.String("workflow", def.Name),
		zap.String("strategy", *strategy),
		zap.Int("nodes", len(def.Layout)),
		zap.String("file", target),
	)
}

// =============================================================================
// convert 命令
// =============================================================================

func runConvert(args []string) {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to config file")
	fs.Parse(args)

	_, logger := setup(*configPath)
	defer logger.Sync()

	if fs.NArg() < 2 {
		logger.Fatal("convert requires an input and an output file")
	}

	def, err := workflow.LoadDefinitionFile(fs.Arg(0))
	if err != nil {
		logger.Fatal("Failed to load definition", zap.Error(err))
	}
	if err := def.SaveFile(fs.Arg(1)); err != nil {
		logger.Fatal("Failed to save definition", zap.Error(err))
	}

	logger.Info("Definition converted",
		zap.String("from", fs.Arg(0)),
		zap.String("to", fs.Arg(1)),
	)
}

// =============================================================================
// 公共初始化
// =============================================================================

func setup(configPath string) (*config.Config, *zap.Logger) {
	loader := config.NewLoader()
	if configPath != "" {
		loader = loader.WithConfigPath(configPath)
	}
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	return cfg, initLogger(cfg.Log)
}

func initLogger(cfg config.LogConfig) *zap.Logger {
	var level zapcore.Level
	switch cfg.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	var encoderConfig zapcore.EncoderConfig
	encoding := "json"
	if cfg.Format == "console" {
		encoderConfig = zap.NewDevelopmentEncoderConfig()
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoding = "console"
	} else {
		encoderConfig = zap.NewProductionEncoderConfig()
		encoderConfig.TimeKey = "timestamp"
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	zapConfig := zap.Config{
		Level:            zap.NewAtomicLevelAt(level),
		Development:      encoding == "console",
		Encoding:         encoding,
		EncoderConfig:    encoderConfig,
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}

	logger, err := zapConfig.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build logger: %v\n", err)
		os.Exit(1)
	}
	return logger.With(zap.String("component", "agentcanvas"))
}

func printVersion() {
	fmt.Printf("AgentCanvas %s (built %s, commit %s)\n", Version, BuildTime, GitCommit)
}

func printUsage() {
	fmt.Println(`AgentCanvas - workflow canvas toolbox

Usage:
  agentcanvas validate [-config file] <workflow.json|yaml>
  agentcanvas layout   [-config file] [-strategy hybrid|layered] [-direction vertical|horizontal] [-o out] [-force] <workflow.json|yaml>
  agentcanvas convert  [-config file] <in> <out>
  agentcanvas version`)
}
