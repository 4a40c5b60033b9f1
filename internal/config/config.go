// Package config 提供引擎配置管理
package config

import (
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/wilson323/IOE-DREAMfornew-sub058/pkg/errors"
	"github.com/wilson323/IOE-DREAMfornew-sub058/pkg/logger"
	"github.com/wilson323/IOE-DREAMfornew-sub058/pkg/scheduler/optimizer"
	"github.com/wilson323/IOE-DREAMfornew-sub058/pkg/scheduler/solver"
)

// Config 应用配置，全部来自环境变量
type Config struct {
	App    AppConfig    `envPrefix:"APP_"`
	Solver SolverConfig `envPrefix:"SOLVER_"`
}

// AppConfig 应用基础配置
type AppConfig struct {
	Name      string `env:"NAME" envDefault:"scheduler"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"console"`
}

// SolverConfig 求解引擎配置
type SolverConfig struct {
	MaxIterations   int           `env:"MAX_ITERATIONS" envDefault:"10000"`
	MaxTime         time.Duration `env:"MAX_TIME" envDefault:"30s"`
	InitialTemp     float64       `env:"INITIAL_TEMP" envDefault:"100.0"`
	CoolingRate     float64       `env:"COOLING_RATE" envDefault:"0.995"`
	TempFloor       float64       `env:"TEMP_FLOOR" envDefault:"0.01"`
	MaxReheats      int           `env:"MAX_REHEATS" envDefault:"3"`
	SwapProbability float64       `env:"SWAP_PROBABILITY" envDefault:"0.4"`
	FeasibleOnly    bool          `env:"FEASIBLE_ONLY" envDefault:"false"`
	Seed            int64         `env:"SEED" envDefault:"0"`
	Strategy        string        `env:"STRATEGY" envDefault:"greedy"`
	Restarts        int           `env:"RESTARTS" envDefault:"1"`
}

// Load 从环境变量加载并校验配置
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.Wrap(err, errors.CodeInvalidInput, "解析环境变量配置失败")
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate 校验配置取值范围
func (c *Config) validate() error {
	s := c.Solver
	if s.MaxIterations < 1 {
		return errors.InvalidInput("SOLVER_MAX_ITERATIONS", "必须不小于 1")
	}
	if s.InitialTemp <= 0 {
		return errors.InvalidInput("SOLVER_INITIAL_TEMP", "必须为正数")
	}
	if s.CoolingRate <= 0 || s.CoolingRate >= 1 {
		return errors.InvalidInput("SOLVER_COOLING_RATE", "必须在 (0, 1) 区间内")
	}
	if s.TempFloor <= 0 || s.TempFloor >= s.InitialTemp {
		return errors.InvalidInput("SOLVER_TEMP_FLOOR", "必须为正数且小于初始温度")
	}
	if s.MaxReheats < 0 {
		return errors.InvalidInput("SOLVER_MAX_REHEATS", "不可为负数")
	}
	if s.SwapProbability < 0 || s.SwapProbability > 1 {
		return errors.InvalidInput("SOLVER_SWAP_PROBABILITY", "必须在 [0, 1] 区间内")
	}
	if s.Restarts < 1 {
		return errors.InvalidInput("SOLVER_RESTARTS", "必须不小于 1")
	}
	switch solver.InitialStrategy(s.Strategy) {
	case solver.InitialUnassigned, solver.InitialRandom, solver.InitialGreedy:
	default:
		return errors.InvalidInput("SOLVER_STRATEGY", "取值必须为 unassigned/random/greedy")
	}
	return nil
}

// LoggerConfig 转换为日志配置
func (c *Config) LoggerConfig() logger.Config {
	cfg := logger.DefaultConfig()
	cfg.Level = c.App.LogLevel
	cfg.Format = c.App.LogFormat
	return cfg
}

// SolverEngineConfig 转换为求解引擎配置
func (c *Config) SolverEngineConfig() *solver.Config {
	return &solver.Config{
		Annealing: &optimizer.Config{
			MaxIterations:   c.Solver.MaxIterations,
			MaxTime:         c.Solver.MaxTime,
			InitialTemp:     c.Solver.InitialTemp,
			CoolingRate:     c.Solver.CoolingRate,
			TempFloor:       c.Solver.TempFloor,
			MaxReheats:      c.Solver.MaxReheats,
			SwapProbability: c.Solver.SwapProbability,
			FeasibleOnly:    c.Solver.FeasibleOnly,
			Seed:            c.Solver.Seed,
		},
		Strategy: solver.InitialStrategy(c.Solver.Strategy),
		Restarts: c.Solver.Restarts,
	}
}
