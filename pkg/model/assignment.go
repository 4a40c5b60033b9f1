// Package model 定义排班引擎的核心数据模型
package model

import (
	"github.com/google/uuid"
)

// AssignmentStatus 分配状态
type AssignmentStatus string

const (
	StatusUnassigned AssignmentStatus = "unassigned" // 未分配
	StatusAssigned   AssignmentStatus = "assigned"   // 已分配
	StatusPinned     AssignmentStatus = "pinned"     // 锁定，搜索不可改动
)

// Assignment 排班分配（决策变量）
// 每个班次按需求人数展开为若干分配槽位，搜索过程只改动 EmployeeID
type Assignment struct {
	ID         uuid.UUID        `json:"id"`
	ShiftID    uuid.UUID        `json:"shift_id"`
	EmployeeID uuid.UUID        `json:"employee_id"` // uuid.Nil 表示未分配
	Status     AssignmentStatus `json:"status"`

	// 派生得分，仅由评分器回写
	PreferenceScore int `json:"preference_score"`
	FairnessScore   int `json:"fairness_score"`
}

// Assigned 检查是否已分配员工
func (a *Assignment) Assigned() bool {
	return a.EmployeeID != uuid.Nil
}

// Pinned 检查是否为锁定分配
func (a *Assignment) Pinned() bool {
	return a.Status == StatusPinned
}

// Clone 深拷贝分配
func (a *Assignment) Clone() *Assignment {
	clone := *a
	return &clone
}
