// Package builtin 提供内置约束实现
package builtin

import (
	"github.com/wilson323/IOE-DREAMfornew-sub058/pkg/scheduler/constraint"
)

// Register 向目录注册全部内置约束
func Register(cat *constraint.Catalog) {
	// 硬约束
	cat.Register(NewTimeConflictConstraint())
	cat.Register(NewSkillMatchConstraint())
	cat.Register(NewDailyShiftCapConstraint())
	cat.Register(NewMinRestConstraint())
	cat.Register(NewConsecutiveDaysConstraint())

	// 软约束
	cat.Register(NewPreferenceConstraint())
	cat.Register(NewFairnessConstraint())
	cat.Register(NewCostConstraint())
	cat.Register(NewSatisfactionConstraint())
	cat.Register(NewUnassignedConstraint())
}

// DefaultCatalog 创建带全部内置约束的目录
func DefaultCatalog() *constraint.Catalog {
	cat := constraint.NewCatalog()
	Register(cat)
	return cat
}
