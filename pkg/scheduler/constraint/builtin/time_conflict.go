// Package builtin 提供内置约束实现
package builtin

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/wilson323/IOE-DREAMfornew-sub058/pkg/scheduler/constraint"
)

// TimeConflictConstraint 时间冲突约束（硬约束）
// 同一员工的任意两个时间区间重叠的分配，每对扣 1000 分。
// 区间判定为起点含、终点不含，跨日班次顺延至次日后参与比较。
type TimeConflictConstraint struct {
	*BaseConstraint
}

// NewTimeConflictConstraint 创建时间冲突约束
func NewTimeConflictConstraint() *TimeConflictConstraint {
	return &TimeConflictConstraint{
		BaseConstraint: NewBaseConstraint(
			"时间冲突",
			constraint.CategoryHard,
			constraint.ScopeEmployee,
		),
	}
}

// Evaluate 全量评估
func (c *TimeConflictConstraint) Evaluate(ctx *constraint.Context) int {
	return sumEmployees(ctx, func(empID uuid.UUID) int {
		return c.EvaluateEmployee(ctx, empID)
	})
}

// EvaluateEmployee 评估单个员工
func (c *TimeConflictConstraint) EvaluateEmployee(ctx *constraint.Context, empID uuid.UUID) int {
	slots := ctx.EmployeeSlots(empID)
	if len(slots) < 2 {
		return 0
	}

	penalty := 0
	for i := 0; i < len(slots); i++ {
		ti, ok := ctx.SlotInterval(slots[i])
		if !ok {
			continue
		}
		for j := i + 1; j < len(slots); j++ {
			tj, ok := ctx.SlotInterval(slots[j])
			if !ok {
				continue
			}
			if ti.Overlaps(tj) {
				penalty -= WeightTimeConflict
			}
		}
	}
	return penalty
}

// Violations 返回违反详情
func (c *TimeConflictConstraint) Violations(ctx *constraint.Context) []constraint.Violation {
	var violations []constraint.Violation

	for _, emp := range ctx.Employees {
		slots := ctx.EmployeeSlots(emp.ID)
		for i := 0; i < len(slots); i++ {
			ti, ok := ctx.SlotInterval(slots[i])
			if !ok {
				continue
			}
			for j := i + 1; j < len(slots); j++ {
				tj, ok := ctx.SlotInterval(slots[j])
				if !ok {
					continue
				}
				if !ti.Overlaps(tj) {
					continue
				}
				si := ctx.SlotShift(slots[i])
				sj := ctx.SlotShift(slots[j])
				violations = append(violations, constraint.Violation{
					ConstraintName: c.Name(),
					Category:       c.Category(),
					EmployeeID:     emp.ID,
					ShiftID:        si.ID,
					Date:           si.Date,
					Message: fmt.Sprintf(
						"员工 %s 的班次 %s 与 %s 时间重叠",
						emp.Name, si.Name, sj.Name,
					),
					Penalty: -WeightTimeConflict,
				})
			}
		}
	}
	return violations
}
