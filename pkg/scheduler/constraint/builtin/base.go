// Package builtin 提供内置约束实现
package builtin

import (
	"github.com/google/uuid"

	"github.com/wilson323/IOE-DREAMfornew-sub058/pkg/scheduler/constraint"
)

// 约束权重（每单位违反的惩罚点数）
const (
	WeightTimeConflict    = 1000 // 每对时间冲突
	WeightSkillMismatch   = 1000 // 每项缺失技能
	WeightDailyCap        = 100  // 每个超出的同日班次
	WeightMinRest         = 100  // 每小时休息缺口
	WeightConsecutiveDays = 100  // 每个超出的连续工作日
	WeightPreference      = 10   // 每次偏好命中（奖励）
	WeightUnassigned      = 1000 // 每个未分配槽位（软惩罚）
)

// BaseConstraint 约束基类
type BaseConstraint struct {
	name     string
	category constraint.Category
	scope    constraint.Scope
}

// NewBaseConstraint 创建基础约束
func NewBaseConstraint(name string, cat constraint.Category, scope constraint.Scope) *BaseConstraint {
	return &BaseConstraint{
		name:     name,
		category: cat,
		scope:    scope,
	}
}

// Name 返回约束名称
func (c *BaseConstraint) Name() string { return c.name }

// Category 返回约束类别
func (c *BaseConstraint) Category() constraint.Category { return c.category }

// Scope 返回约束作用域
func (c *BaseConstraint) Scope() constraint.Scope { return c.scope }

// EvaluateEmployee 默认实现（全局约束无员工级分解）
func (c *BaseConstraint) EvaluateEmployee(ctx *constraint.Context, empID uuid.UUID) int {
	return 0
}

// Violations 默认实现
func (c *BaseConstraint) Violations(ctx *constraint.Context) []constraint.Violation {
	return nil
}

// sumEmployees 对全部员工求和，员工作用域约束的 Evaluate 通用实现
func sumEmployees(ctx *constraint.Context, f func(empID uuid.UUID) int) int {
	total := 0
	for _, emp := range ctx.Employees {
		total += f(emp.ID)
	}
	return total
}
