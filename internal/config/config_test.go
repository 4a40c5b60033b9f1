package config

import (
	"testing"
	"time"

	"github.com/wilson323/IOE-DREAMfornew-sub058/pkg/errors"
	"github.com/wilson323/IOE-DREAMfornew-sub058/pkg/scheduler/solver"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() 错误: %v", err)
	}

	if cfg.App.Name != "scheduler" {
		t.Errorf("App.Name = %s, want scheduler", cfg.App.Name)
	}
	if cfg.App.LogLevel != "info" {
		t.Errorf("App.LogLevel = %s, want info", cfg.App.LogLevel)
	}
	if cfg.Solver.MaxIterations != 10000 {
		t.Errorf("Solver.MaxIterations = %d, want 10000", cfg.Solver.MaxIterations)
	}
	if cfg.Solver.MaxTime != 30*time.Second {
		t.Errorf("Solver.MaxTime = %s, want 30s", cfg.Solver.MaxTime)
	}
	if cfg.Solver.CoolingRate != 0.995 {
		t.Errorf("Solver.CoolingRate = %f, want 0.995", cfg.Solver.CoolingRate)
	}
	if cfg.Solver.Strategy != "greedy" {
		t.Errorf("Solver.Strategy = %s, want greedy", cfg.Solver.Strategy)
	}
	if cfg.Solver.Restarts != 1 {
		t.Errorf("Solver.Restarts = %d, want 1", cfg.Solver.Restarts)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_LOG_LEVEL", "debug")
	t.Setenv("SOLVER_MAX_ITERATIONS", "500")
	t.Setenv("SOLVER_MAX_TIME", "5s")
	t.Setenv("SOLVER_FEASIBLE_ONLY", "true")
	t.Setenv("SOLVER_STRATEGY", "random")
	t.Setenv("SOLVER_RESTARTS", "4")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() 错误: %v", err)
	}

	if cfg.App.LogLevel != "debug" {
		t.Errorf("App.LogLevel = %s, want debug", cfg.App.LogLevel)
	}
	if cfg.Solver.MaxIterations != 500 {
		t.Errorf("Solver.MaxIterations = %d, want 500", cfg.Solver.MaxIterations)
	}
	if cfg.Solver.MaxTime != 5*time.Second {
		t.Errorf("Solver.MaxTime = %s, want 5s", cfg.Solver.MaxTime)
	}
	if !cfg.Solver.FeasibleOnly {
		t.Error("Solver.FeasibleOnly 应为 true")
	}

	engineCfg := cfg.SolverEngineConfig()
	if engineCfg.Strategy != solver.InitialRandom {
		t.Errorf("Strategy = %s, want random", engineCfg.Strategy)
	}
	if engineCfg.Restarts != 4 {
		t.Errorf("Restarts = %d, want 4", engineCfg.Restarts)
	}
	if !engineCfg.Annealing.FeasibleOnly {
		t.Error("退火配置未携带仅可行模式")
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "迭代数为零", key: "SOLVER_MAX_ITERATIONS", value: "0"},
		{name: "初始温度为负", key: "SOLVER_INITIAL_TEMP", value: "-1"},
		{name: "冷却速率越界", key: "SOLVER_COOLING_RATE", value: "1.5"},
		{name: "温度下限高于初始温度", key: "SOLVER_TEMP_FLOOR", value: "200"},
		{name: "重加热次数为负", key: "SOLVER_MAX_REHEATS", value: "-1"},
		{name: "交换概率越界", key: "SOLVER_SWAP_PROBABILITY", value: "1.2"},
		{name: "起点数为零", key: "SOLVER_RESTARTS", value: "0"},
		{name: "未知初始解策略", key: "SOLVER_STRATEGY", value: "magic"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			if err == nil {
				t.Fatal("应返回配置错误")
			}
			if got := errors.GetCode(err); got != errors.CodeInvalidInput {
				t.Errorf("错误码 = %s, want %s", got, errors.CodeInvalidInput)
			}
		})
	}
}

func TestLoggerConfig(t *testing.T) {
	t.Setenv("APP_LOG_LEVEL", "warn")
	t.Setenv("APP_LOG_FORMAT", "json")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() 错误: %v", err)
	}

	logCfg := cfg.LoggerConfig()
	if logCfg.Level != "warn" {
		t.Errorf("Level = %s, want warn", logCfg.Level)
	}
	if logCfg.Format != "json" {
		t.Errorf("Format = %s, want json", logCfg.Format)
	}
}
