// Package optimizer 提供基于模拟退火的排班优化算法
package optimizer

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/wilson323/IOE-DREAMfornew-sub058/pkg/logger"
	"github.com/wilson323/IOE-DREAMfornew-sub058/pkg/scheduler/constraint"
	"github.com/wilson323/IOE-DREAMfornew-sub058/pkg/scheduler/score"
)

// State 优化器状态
type State string

const (
	StateInitialized State = "initialized" // 已创建，未开始搜索
	StateRunning     State = "running"     // 搜索进行中
	StateConverged   State = "converged"   // 正常收敛结束
	StateCancelled   State = "cancelled"   // 被上层取消
)

// Config 退火配置
type Config struct {
	MaxIterations   int           `json:"max_iterations"`   // 最大迭代次数
	MaxTime         time.Duration `json:"max_time"`         // 最大运行时间
	InitialTemp     float64       `json:"initial_temp"`     // 初始温度
	CoolingRate     float64       `json:"cooling_rate"`     // 冷却速率
	TempFloor       float64       `json:"temp_floor"`       // 温度下限，低于此值触发重加热
	MaxReheats      int           `json:"max_reheats"`      // 最大重加热次数
	SwapProbability float64       `json:"swap_probability"` // 交换移动的选取概率
	FeasibleOnly    bool          `json:"feasible_only"`    // 拒绝恶化硬约束的移动
	Seed            int64         `json:"seed"`             // 随机种子，0 表示按时间播种
	ProgressEvery   int           `json:"progress_every"`   // 周期性进度回调间隔（迭代数），0 表示只在刷新最优时回调
}

// DefaultConfig 默认退火配置
func DefaultConfig() *Config {
	return &Config{
		MaxIterations:   10000,
		MaxTime:         30 * time.Second,
		InitialTemp:     100.0,
		CoolingRate:     0.995,
		TempFloor:       0.01,
		MaxReheats:      3,
		SwapProbability: 0.4,
		FeasibleOnly:    false,
		Seed:            0,
		ProgressEvery:   0,
	}
}

// Progress 搜索进度快照
type Progress struct {
	Iteration   int
	Temperature float64
	Current     score.Score
	Best        score.Score
	Elapsed     time.Duration
}

// Result 单次退火结果，分配向量以最优快照形式留在上下文中
type Result struct {
	Initial    score.Score   `json:"initial"`
	Best       score.Score   `json:"best"`
	Iterations int           `json:"iterations"`
	Accepted   int           `json:"accepted"`
	Improved   int           `json:"improved"`
	Reheats    int           `json:"reheats"`
	Elapsed    time.Duration `json:"elapsed"`
	State      State         `json:"state"`
}

// Annealer 模拟退火优化器
// 在共享的排班上下文上做原位移动，依赖评分器的增量重算。
// 不可并发使用，多起点并行见 MultiStart。
type Annealer struct {
	config     *Config
	ctx        *constraint.Context
	scorer     *constraint.Scorer
	gen        *MoveGenerator
	rng        *rand.Rand
	state      State
	onProgress func(Progress)
	slog       *logger.SolverLogger
}

// NewAnnealer 创建退火优化器
func NewAnnealer(config *Config, ctx *constraint.Context, scorer *constraint.Scorer) *Annealer {
	if config == nil {
		config = DefaultConfig()
	}
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	return &Annealer{
		config: config,
		ctx:    ctx,
		scorer: scorer,
		gen:    NewMoveGenerator(ctx, rng, config.SwapProbability),
		rng:    rng,
		state:  StateInitialized,
		slog:   logger.NewSolverLogger(),
	}
}

// OnProgress 注册进度回调
// 每次刷新最优解时触发；ProgressEvery > 0 时额外按迭代间隔触发。
// 回调只用于外部展示与日志，不参与搜索本身。
func (a *Annealer) OnProgress(fn func(Progress)) {
	a.onProgress = fn
}

// State 返回优化器状态
func (a *Annealer) State() State {
	return a.state
}

// Run 执行退火搜索
// 搜索结束时上下文被恢复到最优快照。取消时返回截至当前的最优解，
// 不返回错误，是否算失败由调用方根据状态判断。
func (a *Annealer) Run(ctx context.Context) *Result {
	start := time.Now()
	a.state = StateRunning

	initial := a.scorer.Current()
	current := initial
	best := initial
	bestSnap := a.ctx.Snapshot()

	temperature := a.config.InitialTemp
	result := &Result{Initial: initial}

	i := 0
	for ; i < a.config.MaxIterations; i++ {
		select {
		case <-ctx.Done():
			a.state = StateCancelled
			logger.Warn().Int("iteration", i).Msg("优化被取消，返回当前最优解")
			return a.finish(result, i, best, bestSnap, start)
		default:
		}

		if a.config.MaxTime > 0 && time.Since(start) > a.config.MaxTime {
			break
		}

		move := a.gen.Generate()
		if move == nil {
			// 无可移动槽位或候选员工，搜索空间退化
			break
		}

		move.Apply(a.ctx)
		a.scorer.Refresh(move.Touched()...)
		next := a.scorer.Current()

		if a.accept(current, next, temperature) {
			current = next
			result.Accepted++

			if current.Better(best) {
				best = current
				bestSnap = a.ctx.Snapshot()
				result.Improved++
				a.slog.NewBest(i, best.Hard, best.Soft)
				a.emitProgress(i, temperature, current, best, start)
			}
		} else {
			move.Undo(a.ctx)
			a.scorer.Refresh(move.Touched()...)
		}

		if a.config.ProgressEvery > 0 && i%a.config.ProgressEvery == 0 {
			a.emitProgress(i, temperature, current, best, start)
		}

		temperature *= a.config.CoolingRate
		if temperature < a.config.TempFloor {
			if result.Reheats >= a.config.MaxReheats {
				break
			}
			temperature = a.config.InitialTemp
			result.Reheats++
			logger.Debug().
				Int("iteration", i).
				Int("reheat", result.Reheats).
				Msg("温度达到下限，重新加热")
		}
	}

	a.state = StateConverged
	return a.finish(result, i, best, bestSnap, start)
}

// emitProgress 触发进度回调
func (a *Annealer) emitProgress(iteration int, temperature float64, current, best score.Score, start time.Time) {
	if a.onProgress == nil {
		return
	}
	a.onProgress(Progress{
		Iteration:   iteration,
		Temperature: temperature,
		Current:     current,
		Best:        best,
		Elapsed:     time.Since(start),
	})
}

// finish 恢复最优快照并补齐结果字段
func (a *Annealer) finish(result *Result, iterations int, best score.Score, bestSnap []uuid.UUID, start time.Time) *Result {
	a.ctx.Restore(bestSnap)
	a.scorer.Full()

	result.Best = best
	result.Iterations = iterations
	result.Elapsed = time.Since(start)
	result.State = a.state
	return result
}

// accept 模拟退火接受准则
// 不劣化总分的移动总是接受，劣化移动按玻尔兹曼概率接受。
// 仅可行模式下恶化硬约束的移动无条件拒绝。
func (a *Annealer) accept(current, next score.Score, temperature float64) bool {
	if a.config.FeasibleOnly && next.Hard < current.Hard {
		return false
	}

	delta := next.Collapse() - current.Collapse()
	if delta >= 0 {
		return true
	}
	if temperature <= 0 {
		return false
	}
	return a.rng.Float64() < math.Exp(delta/temperature)
}
