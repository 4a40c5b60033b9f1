// Package model 定义排班引擎的核心数据模型
package model

import (
	"github.com/google/uuid"
)

// Employee 员工（问题事实，求解过程中只读）
type Employee struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Code string    `json:"code,omitempty"`

	// 技能标签
	Skills []string `json:"skills"`

	// 排班约束参数
	MaxShiftsPerDay    int `json:"max_shifts_per_day"`   // 每日最多班次数（≥1）
	MaxConsecutiveDays int `json:"max_consecutive_days"` // 最大连续工作天数（≥1）
	MinRestHours       int `json:"min_rest_hours"`       // 班次间最小休息小时数（≥0）

	// 成本等级 1-5，越低越便宜
	CostLevel int `json:"cost_level"`

	// 班次类别偏好，key 为班次类别，value 为偏好权重
	Preferences map[string]int `json:"preferences,omitempty"`

	// 可用性标记，不可用员工不参与分配
	Available bool `json:"available"`
}

// HasSkill 检查员工是否具备某技能
func (e *Employee) HasSkill(skill string) bool {
	for _, s := range e.Skills {
		if s == skill {
			return true
		}
	}
	return false
}

// MissingSkills 返回员工缺少的必需技能数量
func (e *Employee) MissingSkills(required []string) int {
	missing := 0
	for _, skill := range required {
		if !e.HasSkill(skill) {
			missing++
		}
	}
	return missing
}

// PrefersCategory 检查员工是否偏好某班次类别（权重为正）
func (e *Employee) PrefersCategory(category string) bool {
	if e.Preferences == nil {
		return false
	}
	return e.Preferences[category] > 0
}
