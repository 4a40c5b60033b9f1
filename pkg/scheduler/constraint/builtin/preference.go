// Package builtin 提供内置约束实现
package builtin

import (
	"github.com/google/uuid"

	"github.com/wilson323/IOE-DREAMfornew-sub058/pkg/scheduler/constraint"
)

// PreferenceConstraint 员工偏好约束（软约束）
// 班次类别在员工偏好表中权重为正时，每次命中奖励 10 分。
type PreferenceConstraint struct {
	*BaseConstraint
}

// NewPreferenceConstraint 创建员工偏好约束
func NewPreferenceConstraint() *PreferenceConstraint {
	return &PreferenceConstraint{
		BaseConstraint: NewBaseConstraint(
			"员工偏好",
			constraint.CategorySoft,
			constraint.ScopeEmployee,
		),
	}
}

// Evaluate 全量评估
func (c *PreferenceConstraint) Evaluate(ctx *constraint.Context) int {
	return sumEmployees(ctx, func(empID uuid.UUID) int {
		return c.EvaluateEmployee(ctx, empID)
	})
}

// EvaluateEmployee 评估单个员工
func (c *PreferenceConstraint) EvaluateEmployee(ctx *constraint.Context, empID uuid.UUID) int {
	return preferencePoints(ctx, empID)
}

// preferencePoints 计算员工的偏好得分，满意度约束复用
func preferencePoints(ctx *constraint.Context, empID uuid.UUID) int {
	emp := ctx.Employee(empID)
	if emp == nil {
		return 0
	}

	points := 0
	for _, slot := range ctx.EmployeeSlots(empID) {
		if emp.PrefersCategory(ctx.SlotCategory(slot)) {
			points += WeightPreference
		}
	}
	return points
}
