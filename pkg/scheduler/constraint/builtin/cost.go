// Package builtin 提供内置约束实现
package builtin

import (
	"github.com/google/uuid"

	"github.com/wilson323/IOE-DREAMfornew-sub058/pkg/scheduler/constraint"
)

// CostConstraint 用工成本约束（软约束）
// 每个分配按 成本等级 × 班次小时数 计入惩罚，其它条件相同时
// 倾向选择成本等级低的员工。
type CostConstraint struct {
	*BaseConstraint
}

// NewCostConstraint 创建用工成本约束
func NewCostConstraint() *CostConstraint {
	return &CostConstraint{
		BaseConstraint: NewBaseConstraint(
			"用工成本",
			constraint.CategorySoft,
			constraint.ScopeEmployee,
		),
	}
}

// Evaluate 全量评估
func (c *CostConstraint) Evaluate(ctx *constraint.Context) int {
	return sumEmployees(ctx, func(empID uuid.UUID) int {
		return c.EvaluateEmployee(ctx, empID)
	})
}

// EvaluateEmployee 评估单个员工
func (c *CostConstraint) EvaluateEmployee(ctx *constraint.Context, empID uuid.UUID) int {
	emp := ctx.Employee(empID)
	if emp == nil {
		return 0
	}

	penalty := 0
	for _, slot := range ctx.EmployeeSlots(empID) {
		penalty -= emp.CostLevel * ctx.SlotMinutes(slot) / 60
	}
	return penalty
}
