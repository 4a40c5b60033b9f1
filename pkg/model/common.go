// Package model 定义排班引擎的核心数据模型
package model

import (
	"time"
)

// DateLayout 日期格式
const DateLayout = "2006-01-02"

// TimeLayout 时刻格式
const TimeLayout = "15:04"

// TimeRange 时间范围（左闭右开）
type TimeRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Duration 返回时间范围的持续时间
func (tr TimeRange) Duration() time.Duration {
	return tr.End.Sub(tr.Start)
}

// Minutes 返回时间范围的分钟数
func (tr TimeRange) Minutes() int {
	return int(tr.End.Sub(tr.Start) / time.Minute)
}

// Overlaps 检查两个时间范围是否重叠（起点含、终点不含）
func (tr TimeRange) Overlaps(other TimeRange) bool {
	return tr.Start.Before(other.End) && other.Start.Before(tr.End)
}

// Contains 检查时间范围是否包含某个时间点
func (tr TimeRange) Contains(t time.Time) bool {
	return !t.Before(tr.Start) && t.Before(tr.End)
}

// ParseDate 解析 YYYY-MM-DD 日期
func ParseDate(date string) (time.Time, error) {
	return time.Parse(DateLayout, date)
}

// DaysBetween 计算两个日期之间的天数差（date2 - date1）
// 任一日期非法时返回 0
func DaysBetween(date1, date2 string) int {
	t1, err1 := time.Parse(DateLayout, date1)
	t2, err2 := time.Parse(DateLayout, date2)
	if err1 != nil || err2 != nil {
		return 0
	}
	return int(t2.Sub(t1).Hours() / 24)
}
