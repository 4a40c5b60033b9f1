// Package solver 提供排班求解引擎
package solver

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/wilson323/IOE-DREAMfornew-sub058/pkg/errors"
	"github.com/wilson323/IOE-DREAMfornew-sub058/pkg/logger"
	"github.com/wilson323/IOE-DREAMfornew-sub058/pkg/model"
	"github.com/wilson323/IOE-DREAMfornew-sub058/pkg/scheduler/constraint"
	"github.com/wilson323/IOE-DREAMfornew-sub058/pkg/scheduler/constraint/builtin"
	"github.com/wilson323/IOE-DREAMfornew-sub058/pkg/scheduler/optimizer"
	"github.com/wilson323/IOE-DREAMfornew-sub058/pkg/scheduler/score"
)

// Request 求解请求
// 员工与班次为问题事实，求解过程中不被修改；
// Initial 为预置分配，锁定状态的预置分配搜索不可改动。
type Request struct {
	Employees []*model.Employee   `json:"employees"`
	Shifts    []*model.Shift      `json:"shifts"`
	Initial   []*model.Assignment `json:"initial,omitempty"`
}

// Config 求解配置
type Config struct {
	Annealing *optimizer.Config `json:"annealing"`
	Strategy  InitialStrategy   `json:"strategy"`
	Restarts  int               `json:"restarts"` // 多起点数，>1 时并行搜索

	// OnProgress 进度回调，每次刷新最优解时携带
	// （硬分、软分、迭代数、已耗时）触发；多起点时并发触发。
	OnProgress func(optimizer.Progress) `json:"-"`
}

// DefaultSolverConfig 默认求解配置
func DefaultSolverConfig() *Config {
	return &Config{
		Annealing: optimizer.DefaultConfig(),
		Strategy:  InitialGreedy,
		Restarts:  1,
	}
}

// Statistics 求解统计
type Statistics struct {
	TotalSlots          int     `json:"total_slots"`
	AssignedSlots       int     `json:"assigned_slots"`
	UnassignedSlots     int     `json:"unassigned_slots"`
	FillRate            float64 `json:"fill_rate"` // 百分比
	TotalHours          float64 `json:"total_hours"`
	AvgHoursPerEmployee float64 `json:"avg_hours_per_employee"`
	EmployeesUsed       int     `json:"employees_used"`
	Iterations          int     `json:"iterations"`
	Restarts            int     `json:"restarts"`
	Reheats             int     `json:"reheats"`
}

// Result 求解结果
type Result struct {
	Assignments []*model.Assignment    `json:"assignments"`
	Score       score.Score            `json:"score"`
	Feasible    bool                   `json:"feasible"`
	Violations  []constraint.Violation `json:"violations,omitempty"`
	Warnings    []string               `json:"warnings,omitempty"`
	Statistics  *Statistics            `json:"statistics"`
	Duration    time.Duration          `json:"duration"`
	State       optimizer.State        `json:"state"`
}

// Engine 排班求解引擎
// 将班次按需求人数展开为分配槽位，构造初始解后交由
// 模拟退火搜索，最终回写派生得分并汇总统计。
type Engine struct {
	config  *Config
	catalog *constraint.Catalog
	slog    *logger.SolverLogger
}

// New 创建求解引擎，catalog 为 nil 时使用全部内置约束
func New(config *Config, catalog *constraint.Catalog) *Engine {
	if config == nil {
		config = DefaultSolverConfig()
	}
	if config.Annealing == nil {
		config.Annealing = optimizer.DefaultConfig()
	}
	if config.Restarts < 1 {
		config.Restarts = 1
	}
	if catalog == nil {
		catalog = builtin.DefaultCatalog()
	}
	return &Engine{
		config:  config,
		catalog: catalog,
		slog:    logger.NewSolverLogger(),
	}
}

// Solve 执行排班求解
// 输入校验失败返回 INVALID_INPUT；上下文在首次完整评分前被取消
// 返回 CANCELLED；此后取消返回截至当前的最优解而不是错误。
func (e *Engine) Solve(ctx context.Context, req *Request) (*Result, error) {
	start := time.Now()

	if err := validate(req); err != nil {
		return nil, err
	}

	warnings := coverageWarnings(req)
	for _, w := range warnings {
		logger.Warn().Msg(w)
	}

	assignments := expandSlots(req)
	e.slog.StartSolve(len(req.Employees), len(req.Shifts), len(assignments))

	// 首次完整评分之前取消才算求解失败
	if err := ctx.Err(); err != nil {
		return nil, errors.Cancelled(err)
	}

	schedCtx := constraint.NewContext(req.Employees, req.Shifts, assignments)

	seed := e.config.Annealing.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	buildInitial(e.config.Strategy, schedCtx, rand.New(rand.NewSource(seed)))

	scorer := constraint.NewScorer(e.catalog, schedCtx)

	var (
		result *optimizer.Result
		reheat int
	)
	if e.config.Restarts > 1 {
		ms := optimizer.NewMultiStart(e.config.Annealing, e.catalog, e.config.Restarts)
		if e.config.OnProgress != nil {
			ms.OnProgress(e.config.OnProgress)
		}
		outcome := ms.Optimize(ctx, req.Employees, req.Shifts, assignments)
		schedCtx.Restore(outcome.Assignments)
		scorer.Full()
		result = outcome.Result
		reheat = outcome.Result.Reheats
	} else {
		annealer := optimizer.NewAnnealer(e.config.Annealing, schedCtx, scorer)
		if e.config.OnProgress != nil {
			annealer.OnProgress(e.config.OnProgress)
		}
		result = annealer.Run(ctx)
		reheat = result.Reheats
	}

	final := scorer.Current()
	writeDerivedScores(schedCtx)

	res := &Result{
		Assignments: assignments,
		Score:       final,
		Feasible:    final.Feasible(),
		Warnings:    warnings,
		Statistics:  buildStatistics(schedCtx, result, e.config.Restarts, reheat),
		Duration:    time.Since(start),
		State:       result.State,
	}

	if !res.Feasible {
		res.Violations = hardViolations(scorer)
		for _, v := range res.Violations {
			e.slog.ConstraintViolation(v.ConstraintName, v.Message)
		}
	}

	e.slog.SolveComplete(res.Duration, result.Iterations, final.Hard, final.Soft)
	return res, nil
}

// validate 校验求解请求
func validate(req *Request) error {
	if req == nil {
		return errors.New(errors.CodeInvalidInput, "求解请求为空")
	}
	if len(req.Employees) == 0 {
		return errors.InvalidInput("employees", "至少需要一名员工")
	}
	if len(req.Shifts) == 0 {
		return errors.InvalidInput("shifts", "至少需要一个班次")
	}

	seenEmp := make(map[uuid.UUID]bool, len(req.Employees))
	for _, emp := range req.Employees {
		if emp == nil || emp.ID == uuid.Nil {
			return errors.InvalidInput("employees", "员工 ID 不可为空")
		}
		if seenEmp[emp.ID] {
			return errors.InvalidInput("employees", fmt.Sprintf("员工 ID 重复: %s", emp.ID))
		}
		seenEmp[emp.ID] = true
		if emp.MaxShiftsPerDay < 1 {
			return errors.InvalidInput("max_shifts_per_day",
				fmt.Sprintf("员工 %s 的每日班次上限必须不小于 1", emp.Name))
		}
		if emp.MaxConsecutiveDays < 1 {
			return errors.InvalidInput("max_consecutive_days",
				fmt.Sprintf("员工 %s 的连续工作天数上限必须不小于 1", emp.Name))
		}
		if emp.MinRestHours < 0 {
			return errors.InvalidInput("min_rest_hours",
				fmt.Sprintf("员工 %s 的最小休息小时数不可为负", emp.Name))
		}
	}

	seenShift := make(map[uuid.UUID]bool, len(req.Shifts))
	for _, shift := range req.Shifts {
		if shift == nil || shift.ID == uuid.Nil {
			return errors.InvalidInput("shifts", "班次 ID 不可为空")
		}
		if seenShift[shift.ID] {
			return errors.InvalidInput("shifts", fmt.Sprintf("班次 ID 重复: %s", shift.ID))
		}
		seenShift[shift.ID] = true
		if shift.RequiredEmployees < 1 {
			return errors.InvalidInput("required_employees",
				fmt.Sprintf("班次 %s 的需求人数必须不小于 1", shift.Name))
		}
	}

	for _, a := range req.Initial {
		if a == nil {
			continue
		}
		if !seenShift[a.ShiftID] {
			return errors.InvalidInput("initial",
				fmt.Sprintf("预置分配引用了不存在的班次: %s", a.ShiftID))
		}
		if a.EmployeeID != uuid.Nil && !seenEmp[a.EmployeeID] {
			return errors.InvalidInput("initial",
				fmt.Sprintf("预置分配引用了不存在的员工: %s", a.EmployeeID))
		}
	}

	return nil
}

// coverageWarnings 求解前的覆盖性检查
// 无人具备的必需技能和无法解析的班次时间都不阻止求解，只产生告警；
// 坏时间的班次按零时长参与评分，最多损失未分配软分。
func coverageWarnings(req *Request) []string {
	var warnings []string
	reported := make(map[string]bool)

	for _, shift := range req.Shifts {
		if _, ok := shift.Interval(); !ok {
			warnings = append(warnings,
				fmt.Sprintf("班次 %s 的日期或时间无法解析，按零时长处理", shift.Name))
		}
		for _, skill := range shift.RequiredSkills {
			if reported[skill] {
				continue
			}
			covered := false
			for _, emp := range req.Employees {
				if emp.Available && emp.HasSkill(skill) {
					covered = true
					break
				}
			}
			if !covered {
				reported[skill] = true
				warnings = append(warnings,
					fmt.Sprintf("没有可用员工具备技能 '%s'，相关班次无法硬可行", skill))
			}
		}
	}
	return warnings
}

// expandSlots 将班次按需求人数展开为分配槽位并套用预置分配
// 每个班次的预置分配最多占用其需求人数个槽位，多余的忽略。
// 输入的预置分配被拷贝，调用方数据不被修改。
func expandSlots(req *Request) []*model.Assignment {
	initialByShift := make(map[uuid.UUID][]*model.Assignment)
	for _, a := range req.Initial {
		if a == nil {
			continue
		}
		initialByShift[a.ShiftID] = append(initialByShift[a.ShiftID], a)
	}

	var slots []*model.Assignment
	for _, shift := range req.Shifts {
		preset := initialByShift[shift.ID]
		for i := 0; i < shift.RequiredEmployees; i++ {
			if i < len(preset) {
				slot := preset[i].Clone()
				if slot.ID == uuid.Nil {
					slot.ID = uuid.New()
				}
				if slot.Status != model.StatusPinned {
					if slot.Assigned() {
						slot.Status = model.StatusAssigned
					} else {
						slot.Status = model.StatusUnassigned
					}
				}
				slots = append(slots, slot)
				continue
			}
			slots = append(slots, &model.Assignment{
				ID:      uuid.New(),
				ShiftID: shift.ID,
				Status:  model.StatusUnassigned,
			})
		}
	}
	return slots
}

// writeDerivedScores 回写每个分配的派生得分
func writeDerivedScores(schedCtx *constraint.Context) {
	mean := schedCtx.MeanAssignedMinutes()

	for i, a := range schedCtx.Assignments {
		a.PreferenceScore = 0
		a.FairnessScore = 0
		if !a.Assigned() {
			continue
		}
		emp := schedCtx.Employee(a.EmployeeID)
		if emp == nil {
			continue
		}
		if emp.PrefersCategory(schedCtx.SlotCategory(i)) {
			a.PreferenceScore = builtin.WeightPreference
		}
		dev := schedCtx.EmployeeMinutes(a.EmployeeID) - mean
		if dev < 0 {
			dev = -dev
		}
		a.FairnessScore = -(dev / 60)
	}
}

// buildStatistics 汇总求解统计
func buildStatistics(schedCtx *constraint.Context, opt *optimizer.Result, restarts, reheats int) *Statistics {
	stats := &Statistics{
		TotalSlots:      schedCtx.SlotCount(),
		UnassignedSlots: schedCtx.UnassignedCount(),
		Iterations:      opt.Iterations,
		Restarts:        restarts,
		Reheats:         reheats,
	}
	stats.AssignedSlots = stats.TotalSlots - stats.UnassignedSlots
	if stats.TotalSlots > 0 {
		stats.FillRate = float64(stats.AssignedSlots) / float64(stats.TotalSlots) * 100
	}

	totalMinutes := 0
	used := 0
	for _, emp := range schedCtx.Employees {
		m := schedCtx.EmployeeMinutes(emp.ID)
		if m > 0 || len(schedCtx.EmployeeSlots(emp.ID)) > 0 {
			used++
		}
		totalMinutes += m
	}
	stats.TotalHours = float64(totalMinutes) / 60.0
	stats.EmployeesUsed = used
	if used > 0 {
		stats.AvgHoursPerEmployee = stats.TotalHours / float64(used)
	}
	return stats
}

// hardViolations 收集硬约束违反详情
func hardViolations(scorer *constraint.Scorer) []constraint.Violation {
	var hard []constraint.Violation
	for _, v := range scorer.Violations() {
		if v.Category == constraint.CategoryHard {
			hard = append(hard, v)
		}
	}
	return hard
}
