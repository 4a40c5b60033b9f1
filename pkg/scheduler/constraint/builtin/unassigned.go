// Package builtin 提供内置约束实现
package builtin

import (
	"fmt"

	"github.com/wilson323/IOE-DREAMfornew-sub058/pkg/scheduler/constraint"
)

// UnassignedConstraint 未分配惩罚约束（软约束，全局）
// 每个未分配槽位扣 1000 软分。保持为软约束使搜索仍可
// 经过硬可行但人手不足的中间状态。
type UnassignedConstraint struct {
	*BaseConstraint
}

// NewUnassignedConstraint 创建未分配惩罚约束
func NewUnassignedConstraint() *UnassignedConstraint {
	return &UnassignedConstraint{
		BaseConstraint: NewBaseConstraint(
			"未分配惩罚",
			constraint.CategorySoft,
			constraint.ScopeGlobal,
		),
	}
}

// Evaluate 全量评估
func (c *UnassignedConstraint) Evaluate(ctx *constraint.Context) int {
	return -WeightUnassigned * ctx.UnassignedCount()
}

// Violations 返回违反详情
func (c *UnassignedConstraint) Violations(ctx *constraint.Context) []constraint.Violation {
	var violations []constraint.Violation

	for i, a := range ctx.Assignments {
		if a.Assigned() {
			continue
		}
		shift := ctx.SlotShift(i)
		v := constraint.Violation{
			ConstraintName: c.Name(),
			Category:       c.Category(),
			Penalty:        -WeightUnassigned,
		}
		if shift != nil {
			v.ShiftID = shift.ID
			v.Date = shift.Date
			v.Message = fmt.Sprintf("班次 %s (%s) 存在未分配槽位", shift.Name, shift.Date)
		} else {
			v.Message = "存在未分配槽位"
		}
		violations = append(violations, v)
	}
	return violations
}
