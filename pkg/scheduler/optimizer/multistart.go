// Package optimizer 提供基于模拟退火的排班优化算法
package optimizer

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/wilson323/IOE-DREAMfornew-sub058/pkg/logger"
	"github.com/wilson323/IOE-DREAMfornew-sub058/pkg/model"
	"github.com/wilson323/IOE-DREAMfornew-sub058/pkg/scheduler/constraint"
)

// MultiStart 多起点并行退火
// 多个互不通信的退火实例从同一初始解出发、以不同种子并行搜索，
// 取全局最优。每个实例持有独立的分配副本与评分器。
type MultiStart struct {
	config     *Config
	catalog    *constraint.Catalog
	runs       int
	onProgress func(Progress)
}

// NewMultiStart 创建多起点优化器
func NewMultiStart(config *Config, catalog *constraint.Catalog, runs int) *MultiStart {
	if config == nil {
		config = DefaultConfig()
	}
	if runs < 1 {
		runs = 1
	}
	return &MultiStart{
		config:  config,
		catalog: catalog,
		runs:    runs,
	}
}

// OnProgress 注册进度回调，透传给每个退火实例
// 各起点并发触发同一个回调，回调自身需保证并发安全。
func (m *MultiStart) OnProgress(fn func(Progress)) {
	m.onProgress = fn
}

// RunOutcome 单个起点的搜索结果
type RunOutcome struct {
	Index       int
	Assignments []uuid.UUID // 最优解的员工引用向量，与输入分配向量对齐
	Result      *Result
}

// Optimize 并行执行全部起点并返回最优结果
// 输入分配向量不被修改。
func (m *MultiStart) Optimize(ctx context.Context, employees []*model.Employee, shifts []*model.Shift, assignments []*model.Assignment) *RunOutcome {
	logger.Info().
		Int("runs", m.runs).
		Int("slots", len(assignments)).
		Msg("开始多起点并行优化")

	outcomes := make([]*RunOutcome, m.runs)

	var wg sync.WaitGroup
	for i := 0; i < m.runs; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			outcomes[idx] = m.runOne(ctx, idx, employees, shifts, assignments)
		}(i)
	}
	wg.Wait()

	best := outcomes[0]
	for _, o := range outcomes[1:] {
		if o.Result.Best.Better(best.Result.Best) {
			best = o
		}
	}

	logger.Info().
		Int("best_run", best.Index).
		Int("hard", best.Result.Best.Hard).
		Int("soft", best.Result.Best.Soft).
		Msg("多起点并行优化完成")

	return best
}

// runOne 在独立的分配副本上执行一个起点
func (m *MultiStart) runOne(ctx context.Context, idx int, employees []*model.Employee, shifts []*model.Shift, assignments []*model.Assignment) *RunOutcome {
	local := make([]*model.Assignment, len(assignments))
	for i, a := range assignments {
		local[i] = a.Clone()
	}

	cfg := *m.config
	if cfg.Seed != 0 {
		// 保持可复现的同时让各起点走不同轨迹
		cfg.Seed += int64(idx + 1)
	}

	schedCtx := constraint.NewContext(employees, shifts, local)
	scorer := constraint.NewScorer(m.catalog, schedCtx)
	annealer := NewAnnealer(&cfg, schedCtx, scorer)
	if m.onProgress != nil {
		annealer.OnProgress(m.onProgress)
	}

	result := annealer.Run(ctx)
	return &RunOutcome{
		Index:       idx,
		Assignments: schedCtx.Snapshot(),
		Result:      result,
	}
}
