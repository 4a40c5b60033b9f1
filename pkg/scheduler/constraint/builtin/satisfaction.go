// Package builtin 提供内置约束实现
package builtin

import (
	"github.com/wilson323/IOE-DREAMfornew-sub058/pkg/scheduler/constraint"
)

// SatisfactionConstraint 满意度约束（软约束，全局）
// 对每个有分配的员工给予有界复合奖励：
// max(0, (偏好得分 + 公平性得分 + 100) / 2)。
// 依赖全局平均工时，与公平性约束一样整体重算。
type SatisfactionConstraint struct {
	*BaseConstraint
}

// NewSatisfactionConstraint 创建满意度约束
func NewSatisfactionConstraint() *SatisfactionConstraint {
	return &SatisfactionConstraint{
		BaseConstraint: NewBaseConstraint(
			"员工满意度",
			constraint.CategorySoft,
			constraint.ScopeGlobal,
		),
	}
}

// Evaluate 全量评估
func (c *SatisfactionConstraint) Evaluate(ctx *constraint.Context) int {
	total := 0
	for _, emp := range ctx.Employees {
		if len(ctx.EmployeeSlots(emp.ID)) == 0 {
			continue
		}
		reward := (preferencePoints(ctx, emp.ID) + fairnessPoints(ctx, emp.ID) + 100) / 2
		if reward > 0 {
			total += reward
		}
	}
	return total
}
