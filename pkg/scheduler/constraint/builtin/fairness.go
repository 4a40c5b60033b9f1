// Package builtin 提供内置约束实现
package builtin

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/wilson323/IOE-DREAMfornew-sub058/pkg/scheduler/constraint"
)

// FairnessConstraint 工作量公平性约束（软约束，全局）
// 有分配员工的总工时偏离全体有分配员工的平均工时，每小时偏差扣 1 分。
// 平均工时来自当前员工池的实际分配，而非固定的标准周工时。
type FairnessConstraint struct {
	*BaseConstraint
}

// NewFairnessConstraint 创建工作量公平性约束
func NewFairnessConstraint() *FairnessConstraint {
	return &FairnessConstraint{
		BaseConstraint: NewBaseConstraint(
			"工作量公平性",
			constraint.CategorySoft,
			constraint.ScopeGlobal,
		),
	}
}

// Evaluate 全量评估
func (c *FairnessConstraint) Evaluate(ctx *constraint.Context) int {
	total := 0
	for _, emp := range ctx.Employees {
		if len(ctx.EmployeeSlots(emp.ID)) == 0 {
			continue
		}
		total += fairnessPoints(ctx, emp.ID)
	}
	return total
}

// Violations 返回违反详情
func (c *FairnessConstraint) Violations(ctx *constraint.Context) []constraint.Violation {
	var violations []constraint.Violation

	mean := ctx.MeanAssignedMinutes()
	for _, emp := range ctx.Employees {
		if len(ctx.EmployeeSlots(emp.ID)) == 0 {
			continue
		}
		points := fairnessPoints(ctx, emp.ID)
		if points == 0 {
			continue
		}
		violations = append(violations, constraint.Violation{
			ConstraintName: c.Name(),
			Category:       c.Category(),
			EmployeeID:     emp.ID,
			Message: fmt.Sprintf(
				"员工 %s 工时 %.1f 小时，偏离平均 %.1f 小时",
				emp.Name,
				float64(ctx.EmployeeMinutes(emp.ID))/60,
				float64(ctx.EmployeeMinutes(emp.ID)-mean)/60,
			),
			Penalty: points,
		})
	}
	return violations
}

// fairnessPoints 计算员工的公平性得分（偏差每小时 -1 分），满意度约束复用
func fairnessPoints(ctx *constraint.Context, empID uuid.UUID) int {
	dev := ctx.EmployeeMinutes(empID) - ctx.MeanAssignedMinutes()
	if dev < 0 {
		dev = -dev
	}
	return -(dev / 60)
}
