// Package model 定义排班引擎的核心数据模型
package model

import (
	"time"

	"github.com/google/uuid"
)

// Shift 班次（问题事实，求解过程中只读）
type Shift struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Code string    `json:"code,omitempty"`

	Date      string `json:"date"`       // YYYY-MM-DD
	StartTime string `json:"start_time"` // HH:MM
	EndTime   string `json:"end_time"`   // HH:MM，不晚于开始时刻表示跨日班次

	// 班次类别，对应员工偏好的 key
	Category string `json:"category"`

	// 必需技能集合
	RequiredSkills []string `json:"required_skills,omitempty"`

	// 需求人数（≥1），每个班次展开为同等数量的分配槽位
	RequiredEmployees int `json:"required_employees"`

	// 区域/地点引用，引擎不解释其含义
	AreaID string `json:"area_id,omitempty"`
}

// Interval 返回班次在其日期上的绝对时间区间
// 跨日班次的结束时刻顺延至次日；时间无法解析时 ok 为 false
func (s *Shift) Interval() (tr TimeRange, ok bool) {
	date, err := time.Parse(DateLayout, s.Date)
	if err != nil {
		return TimeRange{}, false
	}
	start, err := parseTimeOnDate(date, s.StartTime)
	if err != nil {
		return TimeRange{}, false
	}
	end, err := parseTimeOnDate(date, s.EndTime)
	if err != nil {
		return TimeRange{}, false
	}
	// 跨日班次：结束时刻不晚于开始时刻时按次日计算
	if !end.After(start) {
		end = end.Add(24 * time.Hour)
	}
	return TimeRange{Start: start, End: end}, true
}

// DurationMinutes 返回班次时长（分钟，按 24 小时取模处理跨日班次）
// 时间无法解析时返回 0
func (s *Shift) DurationMinutes() int {
	tr, ok := s.Interval()
	if !ok {
		return 0
	}
	return tr.Minutes()
}

// DurationHours 返回班次时长（小时）
func (s *Shift) DurationHours() float64 {
	return float64(s.DurationMinutes()) / 60.0
}

// parseTimeOnDate 在指定日期解析 HH:MM 时刻
func parseTimeOnDate(date time.Time, timeStr string) (time.Time, error) {
	t, err := time.Parse(TimeLayout, timeStr)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, date.Location()), nil
}
