// Package builtin 提供内置约束实现
package builtin

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/wilson323/IOE-DREAMfornew-sub058/pkg/model"
	"github.com/wilson323/IOE-DREAMfornew-sub058/pkg/scheduler/constraint"
)

// MinRestConstraint 班次间最小休息约束（硬约束）
// 同一员工按时间相邻的两个分配，前班结束到后班开始的间隔小于
// MinRestHours 时，每小时缺口（不足一小时按一小时计）扣 100 分。
// 重叠班次的间隔按 0 计，重叠本身由时间冲突约束计价。
type MinRestConstraint struct {
	*BaseConstraint
}

// NewMinRestConstraint 创建班次间最小休息约束
func NewMinRestConstraint() *MinRestConstraint {
	return &MinRestConstraint{
		BaseConstraint: NewBaseConstraint(
			"班次间最小休息",
			constraint.CategoryHard,
			constraint.ScopeEmployee,
		),
	}
}

// Evaluate 全量评估
func (c *MinRestConstraint) Evaluate(ctx *constraint.Context) int {
	return sumEmployees(ctx, func(empID uuid.UUID) int {
		return c.EvaluateEmployee(ctx, empID)
	})
}

// EvaluateEmployee 评估单个员工
func (c *MinRestConstraint) EvaluateEmployee(ctx *constraint.Context, empID uuid.UUID) int {
	emp := ctx.Employee(empID)
	if emp == nil || emp.MinRestHours <= 0 {
		return 0
	}

	intervals := sortedIntervals(ctx, empID)
	if len(intervals) < 2 {
		return 0
	}

	penalty := 0
	requiredMin := emp.MinRestHours * 60
	for i := 0; i < len(intervals)-1; i++ {
		deficit := restDeficitHours(intervals[i], intervals[i+1], requiredMin)
		penalty -= WeightMinRest * deficit
	}
	return penalty
}

// Violations 返回违反详情
func (c *MinRestConstraint) Violations(ctx *constraint.Context) []constraint.Violation {
	var violations []constraint.Violation

	for _, emp := range ctx.Employees {
		if emp.MinRestHours <= 0 {
			continue
		}
		intervals := sortedIntervals(ctx, emp.ID)
		requiredMin := emp.MinRestHours * 60
		for i := 0; i < len(intervals)-1; i++ {
			deficit := restDeficitHours(intervals[i], intervals[i+1], requiredMin)
			if deficit == 0 {
				continue
			}
			gap := intervals[i+1].Start.Sub(intervals[i].End)
			violations = append(violations, constraint.Violation{
				ConstraintName: c.Name(),
				Category:       c.Category(),
				EmployeeID:     emp.ID,
				Message: fmt.Sprintf(
					"员工 %s 班次间隔仅 %.1f 小时，少于要求的 %d 小时",
					emp.Name, gap.Hours(), emp.MinRestHours,
				),
				Penalty: -WeightMinRest * deficit,
			})
		}
	}
	return violations
}

// sortedIntervals 返回员工全部可解析分配区间，按开始时间排序
func sortedIntervals(ctx *constraint.Context, empID uuid.UUID) []model.TimeRange {
	slots := ctx.EmployeeSlots(empID)
	intervals := make([]model.TimeRange, 0, len(slots))
	for _, slot := range slots {
		if tr, ok := ctx.SlotInterval(slot); ok {
			intervals = append(intervals, tr)
		}
	}
	sort.Slice(intervals, func(i, j int) bool {
		if !intervals[i].Start.Equal(intervals[j].Start) {
			return intervals[i].Start.Before(intervals[j].Start)
		}
		return intervals[i].End.Before(intervals[j].End)
	})
	return intervals
}

// restDeficitHours 计算相邻两个区间的休息缺口（小时，向上取整）
func restDeficitHours(prev, next model.TimeRange, requiredMin int) int {
	gapMin := int(next.Start.Sub(prev.End) / time.Minute)
	if gapMin < 0 {
		gapMin = 0
	}
	if gapMin >= requiredMin {
		return 0
	}
	return (requiredMin - gapMin + 59) / 60
}
