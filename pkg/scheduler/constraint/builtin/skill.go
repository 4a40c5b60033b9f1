// Package builtin 提供内置约束实现
package builtin

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/wilson323/IOE-DREAMfornew-sub058/pkg/scheduler/constraint"
)

// SkillMatchConstraint 技能匹配约束（硬约束）
// 员工必须具备班次要求的全部技能，每项缺失技能扣 1000 分。
type SkillMatchConstraint struct {
	*BaseConstraint
}

// NewSkillMatchConstraint 创建技能匹配约束
func NewSkillMatchConstraint() *SkillMatchConstraint {
	return &SkillMatchConstraint{
		BaseConstraint: NewBaseConstraint(
			"技能匹配",
			constraint.CategoryHard,
			constraint.ScopeEmployee,
		),
	}
}

// Evaluate 全量评估
func (c *SkillMatchConstraint) Evaluate(ctx *constraint.Context) int {
	return sumEmployees(ctx, func(empID uuid.UUID) int {
		return c.EvaluateEmployee(ctx, empID)
	})
}

// EvaluateEmployee 评估单个员工
func (c *SkillMatchConstraint) EvaluateEmployee(ctx *constraint.Context, empID uuid.UUID) int {
	emp := ctx.Employee(empID)
	if emp == nil {
		return 0
	}

	penalty := 0
	for _, slot := range ctx.EmployeeSlots(empID) {
		shift := ctx.SlotShift(slot)
		if shift == nil {
			continue
		}
		penalty -= WeightSkillMismatch * emp.MissingSkills(shift.RequiredSkills)
	}
	return penalty
}

// Violations 返回违反详情
func (c *SkillMatchConstraint) Violations(ctx *constraint.Context) []constraint.Violation {
	var violations []constraint.Violation

	for _, emp := range ctx.Employees {
		for _, slot := range ctx.EmployeeSlots(emp.ID) {
			shift := ctx.SlotShift(slot)
			if shift == nil {
				continue
			}
			for _, skill := range shift.RequiredSkills {
				if emp.HasSkill(skill) {
					continue
				}
				violations = append(violations, constraint.Violation{
					ConstraintName: c.Name(),
					Category:       c.Category(),
					EmployeeID:     emp.ID,
					ShiftID:        shift.ID,
					Date:           shift.Date,
					Message:        fmt.Sprintf("员工 %s 缺少班次 %s 的必需技能: %s", emp.Name, shift.Name, skill),
					Penalty:        -WeightSkillMismatch,
				})
			}
		}
	}
	return violations
}
