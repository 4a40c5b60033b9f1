package optimizer

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/wilson323/IOE-DREAMfornew-sub058/pkg/model"
	"github.com/wilson323/IOE-DREAMfornew-sub058/pkg/scheduler/constraint"
	"github.com/wilson323/IOE-DREAMfornew-sub058/pkg/scheduler/constraint/builtin"
)

func newAnnealConfig() *Config {
	cfg := DefaultConfig()
	cfg.MaxIterations = 2000
	cfg.MaxTime = 10 * time.Second
	cfg.Seed = 1
	return cfg
}

// runOnce 在同一份员工与班次上新建分配并跑一轮退火
func runOnce(t *testing.T, emps []*model.Employee, shifts []*model.Shift, cfg *Config) (*Result, []uuid.UUID) {
	t.Helper()
	ctx := newMoveContext(emps, shifts, make([]uuid.UUID, len(shifts)))
	scorer := constraint.NewScorer(builtin.DefaultCatalog(), ctx)
	annealer := NewAnnealer(cfg, ctx, scorer)
	result := annealer.Run(context.Background())
	return result, ctx.Snapshot()
}

func TestAnnealerDeterministicWithSeed(t *testing.T) {
	emps, shifts := newMoveProblem()
	cfg := newAnnealConfig()

	first, firstSnap := runOnce(t, emps, shifts, cfg)
	second, secondSnap := runOnce(t, emps, shifts, cfg)

	if first.Best != second.Best {
		t.Errorf("同种子两次最优分不同：%+v vs %+v", first.Best, second.Best)
	}
	if first.Iterations != second.Iterations || first.Accepted != second.Accepted {
		t.Errorf("同种子两次轨迹不同：迭代 %d/%d 接受 %d/%d",
			first.Iterations, second.Iterations, first.Accepted, second.Accepted)
	}
	for i := range firstSnap {
		if firstSnap[i] != secondSnap[i] {
			t.Fatalf("同种子两次最优分配在槽位 %d 不同", i)
		}
	}
}

func TestAnnealerBestNotWorseThanInitial(t *testing.T) {
	emps, shifts := newMoveProblem()

	result, _ := runOnce(t, emps, shifts, newAnnealConfig())

	if result.State != StateConverged {
		t.Errorf("状态 = %s, want converged", result.State)
	}
	if result.Initial.Better(result.Best) {
		t.Errorf("最优分 %+v 劣于初始分 %+v", result.Best, result.Initial)
	}
	// 四个不冲突班次、三名员工，足够迭代后应当全部排满且无硬违反
	if result.Best.Hard != 0 {
		t.Errorf("最优硬约束分 = %d, want 0", result.Best.Hard)
	}
}

func TestAnnealerRestoresBestSnapshot(t *testing.T) {
	emps, shifts := newMoveProblem()
	ctx := newMoveContext(emps, shifts, make([]uuid.UUID, len(shifts)))
	scorer := constraint.NewScorer(builtin.DefaultCatalog(), ctx)

	result := NewAnnealer(newAnnealConfig(), ctx, scorer).Run(context.Background())

	// 结束后上下文必须停在最优快照上，评分器与之同步
	if got := scorer.Current(); got != result.Best {
		t.Errorf("结束后评分 %+v 与最优分 %+v 不一致", got, result.Best)
	}
}

func TestAnnealerCancelledContext(t *testing.T) {
	emps, shifts := newMoveProblem()
	ctx := newMoveContext(emps, shifts, make([]uuid.UUID, len(shifts)))
	scorer := constraint.NewScorer(builtin.DefaultCatalog(), ctx)
	annealer := NewAnnealer(newAnnealConfig(), ctx, scorer)

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	result := annealer.Run(cancelled)
	if result.State != StateCancelled {
		t.Errorf("状态 = %s, want cancelled", result.State)
	}
	if annealer.State() != StateCancelled {
		t.Errorf("优化器状态 = %s, want cancelled", annealer.State())
	}
	// 取消也要返回截至当前的最优解
	if result.Best.Better(result.Initial) || result.Initial.Better(result.Best) {
		t.Errorf("立即取消时最优分 %+v 应等于初始分 %+v", result.Best, result.Initial)
	}
}

func TestAnnealerFeasibleOnlyPreservesHardScore(t *testing.T) {
	emps, shifts := newMoveProblem()
	// 无冲突的初始排班，硬约束分为 0
	initial := []uuid.UUID{emps[0].ID, emps[1].ID, emps[2].ID, emps[0].ID}
	ctx := newMoveContext(emps, shifts, initial)
	scorer := constraint.NewScorer(builtin.DefaultCatalog(), ctx)
	if got := scorer.Current().Hard; got != 0 {
		t.Fatalf("初始硬约束分 = %d, want 0", got)
	}

	cfg := newAnnealConfig()
	cfg.FeasibleOnly = true
	cfg.MaxIterations = 500

	result := NewAnnealer(cfg, ctx, scorer).Run(context.Background())
	if result.Best.Hard != 0 {
		t.Errorf("仅可行模式下最优硬约束分 = %d, want 0", result.Best.Hard)
	}
	if got := scorer.Full().Hard; got != 0 {
		t.Errorf("仅可行模式下结束硬约束分 = %d, want 0", got)
	}
}

func TestAnnealerReheatBudget(t *testing.T) {
	emps, shifts := newMoveProblem()
	ctx := newMoveContext(emps, shifts, make([]uuid.UUID, len(shifts)))
	scorer := constraint.NewScorer(builtin.DefaultCatalog(), ctx)

	cfg := newAnnealConfig()
	cfg.InitialTemp = 1.0
	cfg.CoolingRate = 0.5
	cfg.TempFloor = 0.1
	cfg.MaxReheats = 2

	result := NewAnnealer(cfg, ctx, scorer).Run(context.Background())
	if result.Reheats != cfg.MaxReheats {
		t.Errorf("重加热次数 = %d, want %d", result.Reheats, cfg.MaxReheats)
	}
	// 重加热额度用完后应提前结束
	if result.Iterations >= cfg.MaxIterations {
		t.Errorf("迭代数 = %d，重加热耗尽后应早停", result.Iterations)
	}
}

// 不设周期间隔时，进度回调仍要在每次刷新最优解时触发
func TestAnnealerProgressOnNewBest(t *testing.T) {
	emps, shifts := newMoveProblem()
	ctx := newMoveContext(emps, shifts, make([]uuid.UUID, len(shifts)))
	scorer := constraint.NewScorer(builtin.DefaultCatalog(), ctx)

	cfg := newAnnealConfig()
	cfg.ProgressEvery = 0

	annealer := NewAnnealer(cfg, ctx, scorer)
	var progresses []Progress
	annealer.OnProgress(func(p Progress) {
		progresses = append(progresses, p)
	})

	result := annealer.Run(context.Background())

	// 从全空解出发必然出现最优刷新
	if len(progresses) == 0 {
		t.Fatal("刷新最优解时进度回调未被触发")
	}
	if len(progresses) != result.Improved {
		t.Errorf("回调次数 = %d, want 改进次数 %d", len(progresses), result.Improved)
	}
	for i, p := range progresses {
		if p.Elapsed < 0 {
			t.Errorf("第 %d 次回调的已耗时为负: %v", i, p.Elapsed)
		}
		if i > 0 && progresses[i-1].Best.Better(p.Best) {
			t.Errorf("最优分序列在第 %d 次回调处回退", i)
		}
	}
	if last := progresses[len(progresses)-1]; last.Best != result.Best {
		t.Errorf("末次回调最优分 %+v 与结果最优分 %+v 不一致", last.Best, result.Best)
	}
}

func TestAnnealerProgressCallback(t *testing.T) {
	emps, shifts := newMoveProblem()
	ctx := newMoveContext(emps, shifts, make([]uuid.UUID, len(shifts)))
	scorer := constraint.NewScorer(builtin.DefaultCatalog(), ctx)

	cfg := newAnnealConfig()
	cfg.MaxIterations = 100
	cfg.ProgressEvery = 10

	annealer := NewAnnealer(cfg, ctx, scorer)
	var calls int
	annealer.OnProgress(func(p Progress) {
		calls++
		if p.Current.Better(p.Best) {
			t.Errorf("进度快照中当前分 %+v 优于最优分 %+v", p.Current, p.Best)
		}
	})

	annealer.Run(context.Background())
	if calls == 0 {
		t.Error("进度回调未被触发")
	}
}
