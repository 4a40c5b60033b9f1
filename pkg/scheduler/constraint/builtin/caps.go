// Package builtin 提供内置约束实现
package builtin

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/wilson323/IOE-DREAMfornew-sub058/pkg/model"
	"github.com/wilson323/IOE-DREAMfornew-sub058/pkg/scheduler/constraint"
)

// DailyShiftCapConstraint 每日班次上限约束（硬约束）
// 员工同一天的分配数超过 MaxShiftsPerDay 时，每个超出班次扣 100 分。
type DailyShiftCapConstraint struct {
	*BaseConstraint
}

// NewDailyShiftCapConstraint 创建每日班次上限约束
func NewDailyShiftCapConstraint() *DailyShiftCapConstraint {
	return &DailyShiftCapConstraint{
		BaseConstraint: NewBaseConstraint(
			"每日班次上限",
			constraint.CategoryHard,
			constraint.ScopeEmployee,
		),
	}
}

// Evaluate 全量评估
func (c *DailyShiftCapConstraint) Evaluate(ctx *constraint.Context) int {
	return sumEmployees(ctx, func(empID uuid.UUID) int {
		return c.EvaluateEmployee(ctx, empID)
	})
}

// EvaluateEmployee 评估单个员工
func (c *DailyShiftCapConstraint) EvaluateEmployee(ctx *constraint.Context, empID uuid.UUID) int {
	emp := ctx.Employee(empID)
	if emp == nil || emp.MaxShiftsPerDay <= 0 {
		return 0
	}

	counts := make(map[string]int)
	for _, slot := range ctx.EmployeeSlots(empID) {
		counts[ctx.SlotDate(slot)]++
	}

	penalty := 0
	for _, n := range counts {
		if n > emp.MaxShiftsPerDay {
			penalty -= WeightDailyCap * (n - emp.MaxShiftsPerDay)
		}
	}
	return penalty
}

// Violations 返回违反详情
func (c *DailyShiftCapConstraint) Violations(ctx *constraint.Context) []constraint.Violation {
	var violations []constraint.Violation

	for _, emp := range ctx.Employees {
		if emp.MaxShiftsPerDay <= 0 {
			continue
		}
		counts := make(map[string]int)
		for _, slot := range ctx.EmployeeSlots(emp.ID) {
			counts[ctx.SlotDate(slot)]++
		}
		dates := make([]string, 0, len(counts))
		for date := range counts {
			dates = append(dates, date)
		}
		sort.Strings(dates)

		for _, date := range dates {
			n := counts[date]
			if n <= emp.MaxShiftsPerDay {
				continue
			}
			violations = append(violations, constraint.Violation{
				ConstraintName: c.Name(),
				Category:       c.Category(),
				EmployeeID:     emp.ID,
				Date:           date,
				Message: fmt.Sprintf(
					"员工 %s 在 %s 有 %d 个班次，超过上限 %d",
					emp.Name, date, n, emp.MaxShiftsPerDay,
				),
				Penalty: -WeightDailyCap * (n - emp.MaxShiftsPerDay),
			})
		}
	}
	return violations
}

// ConsecutiveDaysConstraint 最大连续工作天数约束（硬约束）
// 员工最长连续工作天数超过 MaxConsecutiveDays 时，每个超出天数扣 100 分。
// 连续段计算：对去重后的工作日期排序后单趟扫描，日期间隔大于 1 天即中断。
type ConsecutiveDaysConstraint struct {
	*BaseConstraint
}

// NewConsecutiveDaysConstraint 创建最大连续工作天数约束
func NewConsecutiveDaysConstraint() *ConsecutiveDaysConstraint {
	return &ConsecutiveDaysConstraint{
		BaseConstraint: NewBaseConstraint(
			"最大连续工作天数",
			constraint.CategoryHard,
			constraint.ScopeEmployee,
		),
	}
}

// Evaluate 全量评估
func (c *ConsecutiveDaysConstraint) Evaluate(ctx *constraint.Context) int {
	return sumEmployees(ctx, func(empID uuid.UUID) int {
		return c.EvaluateEmployee(ctx, empID)
	})
}

// EvaluateEmployee 评估单个员工
func (c *ConsecutiveDaysConstraint) EvaluateEmployee(ctx *constraint.Context, empID uuid.UUID) int {
	emp := ctx.Employee(empID)
	if emp == nil || emp.MaxConsecutiveDays <= 0 {
		return 0
	}

	maxRun := longestRun(ctx, empID)
	if maxRun > emp.MaxConsecutiveDays {
		return -WeightConsecutiveDays * (maxRun - emp.MaxConsecutiveDays)
	}
	return 0
}

// Violations 返回违反详情
func (c *ConsecutiveDaysConstraint) Violations(ctx *constraint.Context) []constraint.Violation {
	var violations []constraint.Violation

	for _, emp := range ctx.Employees {
		if emp.MaxConsecutiveDays <= 0 {
			continue
		}
		maxRun := longestRun(ctx, emp.ID)
		if maxRun <= emp.MaxConsecutiveDays {
			continue
		}
		violations = append(violations, constraint.Violation{
			ConstraintName: c.Name(),
			Category:       c.Category(),
			EmployeeID:     emp.ID,
			Message: fmt.Sprintf(
				"员工 %s 连续工作 %d 天，超过限制 %d 天",
				emp.Name, maxRun, emp.MaxConsecutiveDays,
			),
			Penalty: -WeightConsecutiveDays * (maxRun - emp.MaxConsecutiveDays),
		})
	}
	return violations
}

// longestRun 计算员工最长连续工作天数
func longestRun(ctx *constraint.Context, empID uuid.UUID) int {
	slots := ctx.EmployeeSlots(empID)
	if len(slots) == 0 {
		return 0
	}

	seen := make(map[string]bool, len(slots))
	for _, slot := range slots {
		if date := ctx.SlotDate(slot); date != "" {
			seen[date] = true
		}
	}
	if len(seen) == 0 {
		return 0
	}

	dates := make([]string, 0, len(seen))
	for date := range seen {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	run, maxRun := 1, 1
	for i := 1; i < len(dates); i++ {
		if model.DaysBetween(dates[i-1], dates[i]) == 1 {
			run++
		} else {
			run = 1
		}
		if run > maxRun {
			maxRun = run
		}
	}
	return maxRun
}
