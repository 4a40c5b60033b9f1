// Package stats 提供排班结果的统计分析
package stats

import (
	"sort"

	"github.com/wilson323/IOE-DREAMfornew-sub058/pkg/model"
)

// CoverageMetrics 覆盖率指标
type CoverageMetrics struct {
	TotalSlots      int     `json:"total_slots"`
	AssignedSlots   int     `json:"assigned_slots"`
	OverallCoverage float64 `json:"overall_coverage"` // 百分比

	// 每日覆盖情况，key 为日期
	DailyCoverage map[string]DayCoverage `json:"daily_coverage"`

	// 各班次类别覆盖率（百分比）
	CategoryCoverage map[string]float64 `json:"category_coverage"`

	// 各必需技能覆盖率（百分比）
	SkillCoverage map[string]float64 `json:"skill_coverage"`

	// 未覆盖槽位
	UncoveredSlots []UncoveredSlot `json:"uncovered_slots,omitempty"`
}

// DayCoverage 每日覆盖情况
type DayCoverage struct {
	Date         string  `json:"date"`
	TotalSlots   int     `json:"total_slots"`
	Assigned     int     `json:"assigned"`
	CoverageRate float64 `json:"coverage_rate"`
	TotalHours   float64 `json:"total_hours"`
}

// UncoveredSlot 未覆盖槽位
type UncoveredSlot struct {
	ShiftID   string `json:"shift_id"`
	ShiftName string `json:"shift_name"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Category  string `json:"category"`
}

// CoverageAnalyzer 覆盖率分析器
type CoverageAnalyzer struct{}

// NewCoverageAnalyzer 创建覆盖率分析器
func NewCoverageAnalyzer() *CoverageAnalyzer {
	return &CoverageAnalyzer{}
}

// Analyze 分析排班结果的覆盖率
func (c *CoverageAnalyzer) Analyze(shifts []*model.Shift, assignments []*model.Assignment) *CoverageMetrics {
	metrics := &CoverageMetrics{
		DailyCoverage:    make(map[string]DayCoverage),
		CategoryCoverage: make(map[string]float64),
		SkillCoverage:    make(map[string]float64),
	}
	if len(assignments) == 0 {
		metrics.OverallCoverage = 100
		return metrics
	}

	shiftMap := make(map[string]*model.Shift, len(shifts))
	for _, s := range shifts {
		shiftMap[s.ID.String()] = s
	}

	dailyStats := make(map[string]*DayCoverage)
	categoryTotals := make(map[string]int)
	categoryAssigned := make(map[string]int)
	skillTotals := make(map[string]int)
	skillAssigned := make(map[string]int)

	for _, a := range assignments {
		shift := shiftMap[a.ShiftID.String()]
		if shift == nil {
			continue
		}

		metrics.TotalSlots++
		assigned := a.Assigned()
		if assigned {
			metrics.AssignedSlots++
		} else {
			metrics.UncoveredSlots = append(metrics.UncoveredSlots, UncoveredSlot{
				ShiftID:   shift.ID.String(),
				ShiftName: shift.Name,
				Date:      shift.Date,
				StartTime: shift.StartTime,
				EndTime:   shift.EndTime,
				Category:  shift.Category,
			})
		}

		day, exists := dailyStats[shift.Date]
		if !exists {
			day = &DayCoverage{Date: shift.Date}
			dailyStats[shift.Date] = day
		}
		day.TotalSlots++
		if assigned {
			day.Assigned++
			day.TotalHours += shift.DurationHours()
		}

		categoryTotals[shift.Category]++
		if assigned {
			categoryAssigned[shift.Category]++
		}

		for _, skill := range shift.RequiredSkills {
			skillTotals[skill]++
			if assigned {
				skillAssigned[skill]++
			}
		}
	}

	if metrics.TotalSlots > 0 {
		metrics.OverallCoverage = float64(metrics.AssignedSlots) / float64(metrics.TotalSlots) * 100
	}

	for date, day := range dailyStats {
		if day.TotalSlots > 0 {
			day.CoverageRate = float64(day.Assigned) / float64(day.TotalSlots) * 100
		}
		metrics.DailyCoverage[date] = *day
	}

	for category, total := range categoryTotals {
		metrics.CategoryCoverage[category] = float64(categoryAssigned[category]) / float64(total) * 100
	}
	for skill, total := range skillTotals {
		metrics.SkillCoverage[skill] = float64(skillAssigned[skill]) / float64(total) * 100
	}

	sort.Slice(metrics.UncoveredSlots, func(i, j int) bool {
		if metrics.UncoveredSlots[i].Date != metrics.UncoveredSlots[j].Date {
			return metrics.UncoveredSlots[i].Date < metrics.UncoveredSlots[j].Date
		}
		return metrics.UncoveredSlots[i].ShiftID < metrics.UncoveredSlots[j].ShiftID
	})

	return metrics
}
