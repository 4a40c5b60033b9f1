// 排班求解引擎命令行入口
// 从 JSON 文件读取排班问题，执行求解并输出结果与统计分析

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/wilson323/IOE-DREAMfornew-sub058/internal/config"
	"github.com/wilson323/IOE-DREAMfornew-sub058/pkg/logger"
	"github.com/wilson323/IOE-DREAMfornew-sub058/pkg/scheduler/optimizer"
	"github.com/wilson323/IOE-DREAMfornew-sub058/pkg/scheduler/solver"
	"github.com/wilson323/IOE-DREAMfornew-sub058/pkg/stats"
	"github.com/wilson323/IOE-DREAMfornew-sub058/pkg/validator"
)

// 构建信息（通过 ldflags 注入）
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// output 命令行输出结构
type output struct {
	Result   *solver.Result         `json:"result"`
	Fairness *stats.FairnessMetrics `json:"fairness,omitempty"`
	Coverage *stats.CoverageMetrics `json:"coverage,omitempty"`
	Issues   []validator.Issue      `json:"issues,omitempty"`
}

func main() {
	var (
		inputPath   = flag.String("input", "", "排班问题 JSON 文件路径，- 表示标准输入")
		outputPath  = flag.String("output", "", "结果输出路径，默认标准输出")
		withStats   = flag.Bool("stats", true, "输出公平性与覆盖率分析")
		showVersion = flag.Bool("version", false, "打印版本信息并退出")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("scheduler v%s\nBuild: %s (%s)\n", Version, BuildTime, GitCommit)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "配置加载失败: %v\n", err)
		os.Exit(1)
	}
	logger.Init(cfg.LoggerConfig())

	if *inputPath == "" {
		fmt.Fprintln(os.Stderr, "缺少 -input 参数")
		flag.Usage()
		os.Exit(2)
	}

	req, err := readRequest(*inputPath)
	if err != nil {
		logger.WithError(err).Msg("读取排班问题失败")
		os.Exit(1)
	}

	// SIGINT/SIGTERM 取消求解，返回当前最优解
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	solverCfg := cfg.SolverEngineConfig()
	solverCfg.OnProgress = func(p optimizer.Progress) {
		logger.Debug().
			Int("iteration", p.Iteration).
			Int("hard", p.Best.Hard).
			Int("soft", p.Best.Soft).
			Dur("elapsed", p.Elapsed).
			Msg("找到更优解")
	}

	engine := solver.New(solverCfg, nil)
	result, err := engine.Solve(ctx, req)
	if err != nil {
		logger.WithError(err).Msg("求解失败")
		os.Exit(1)
	}

	out := &output{Result: result}
	if *withStats {
		out.Fairness = stats.NewFairnessAnalyzer().Analyze(req.Employees, req.Shifts, result.Assignments)
		out.Coverage = stats.NewCoverageAnalyzer().Analyze(req.Shifts, result.Assignments)
		out.Issues = validator.NewStructuralValidator().
			Validate(req.Employees, req.Shifts, result.Assignments, nil)
	}

	if err := writeOutput(*outputPath, out); err != nil {
		logger.WithError(err).Msg("写出结果失败")
		os.Exit(1)
	}

	if !result.Feasible {
		// 不可行解照常输出，但以非零码退出供脚本判断
		os.Exit(3)
	}
}

// readRequest 从文件或标准输入读取求解请求
func readRequest(path string) (*solver.Request, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}

	req := &solver.Request{}
	if err := json.Unmarshal(data, req); err != nil {
		return nil, err
	}
	return req, nil
}

// writeOutput 输出求解结果
func writeOutput(path string, out *output) error {
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if path == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
