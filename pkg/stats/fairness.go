// Package stats 提供排班结果的统计分析
package stats

import (
	"math"
	"sort"

	"github.com/wilson323/IOE-DREAMfornew-sub058/pkg/model"
)

// FairnessMetrics 公平性指标
type FairnessMetrics struct {
	WorkloadGini        float64 `json:"workload_gini"` // 工时基尼系数 (0=完全公平)
	WorkloadVariance    float64 `json:"workload_variance"`
	WorkloadStdDev      float64 `json:"workload_std_dev"`
	AvgHoursPerEmployee float64 `json:"avg_hours_per_employee"`
	MaxHours            float64 `json:"max_hours"`
	MinHours            float64 `json:"min_hours"`
	HoursRange          float64 `json:"hours_range"`

	// 各班次类别的分配占比（百分比）
	CategoryDistribution map[string]float64 `json:"category_distribution"`

	EmployeeStats []EmployeeStat `json:"employee_stats"`

	// 综合公平性评分 0-100
	OverallScore float64 `json:"overall_score"`
}

// EmployeeStat 员工级统计
type EmployeeStat struct {
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name"`
	TotalHours   float64 `json:"total_hours"`
	ShiftCount   int     `json:"shift_count"`
	Deviation    float64 `json:"deviation"` // 与平均工时的偏差百分比
}

// FairnessAnalyzer 公平性分析器
type FairnessAnalyzer struct{}

// NewFairnessAnalyzer 创建公平性分析器
func NewFairnessAnalyzer() *FairnessAnalyzer {
	return &FairnessAnalyzer{}
}

// Analyze 分析排班结果的工作量公平性
// 只统计已分配槽位，未分配槽位由覆盖率分析负责。
func (f *FairnessAnalyzer) Analyze(employees []*model.Employee, shifts []*model.Shift, assignments []*model.Assignment) *FairnessMetrics {
	metrics := &FairnessMetrics{
		CategoryDistribution: make(map[string]float64),
	}
	if len(employees) == 0 || len(assignments) == 0 {
		metrics.OverallScore = 100
		return metrics
	}

	shiftMap := make(map[string]*model.Shift, len(shifts))
	for _, s := range shifts {
		shiftMap[s.ID.String()] = s
	}
	empMap := make(map[string]*model.Employee, len(employees))
	for _, e := range employees {
		empMap[e.ID.String()] = e
	}

	statMap := make(map[string]*EmployeeStat)
	categoryCounts := make(map[string]int)
	assignedTotal := 0

	for _, a := range assignments {
		if !a.Assigned() {
			continue
		}
		shift := shiftMap[a.ShiftID.String()]
		if shift == nil {
			continue
		}
		assignedTotal++
		categoryCounts[shift.Category]++

		key := a.EmployeeID.String()
		stat, exists := statMap[key]
		if !exists {
			name := key
			if emp := empMap[key]; emp != nil {
				name = emp.Name
			}
			stat = &EmployeeStat{EmployeeID: key, EmployeeName: name}
			statMap[key] = stat
		}
		stat.TotalHours += shift.DurationHours()
		stat.ShiftCount++
	}

	if len(statMap) == 0 {
		metrics.OverallScore = 100
		return metrics
	}

	stats := make([]EmployeeStat, 0, len(statMap))
	hours := make([]float64, 0, len(statMap))
	for _, stat := range statMap {
		stats = append(stats, *stat)
		hours = append(hours, stat.TotalHours)
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].TotalHours != stats[j].TotalHours {
			return stats[i].TotalHours > stats[j].TotalHours
		}
		return stats[i].EmployeeID < stats[j].EmployeeID
	})

	avg := mean(hours)
	variance := varianceOf(hours, avg)
	maxH, minH := rangeOf(hours)

	for i := range stats {
		if avg > 0 {
			stats[i].Deviation = (stats[i].TotalHours - avg) / avg * 100
		}
	}

	for category, count := range categoryCounts {
		metrics.CategoryDistribution[category] = float64(count) / float64(assignedTotal) * 100
	}

	metrics.WorkloadGini = gini(hours)
	metrics.WorkloadVariance = variance
	metrics.WorkloadStdDev = math.Sqrt(variance)
	metrics.AvgHoursPerEmployee = avg
	metrics.MaxHours = maxH
	metrics.MinHours = minH
	metrics.HoursRange = maxH - minH
	metrics.EmployeeStats = stats
	metrics.OverallScore = overallScore(metrics.WorkloadGini, metrics.WorkloadStdDev, avg)

	return metrics
}

// mean 计算平均值
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// varianceOf 计算方差
func varianceOf(values []float64, avg float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sumSquares := 0.0
	for _, v := range values {
		diff := v - avg
		sumSquares += diff * diff
	}
	return sumSquares / float64(len(values))
}

// rangeOf 计算极值
func rangeOf(values []float64) (max, min float64) {
	if len(values) == 0 {
		return 0, 0
	}
	max, min = values[0], values[0]
	for _, v := range values[1:] {
		if v > max {
			max = v
		}
		if v < min {
			min = v
		}
	}
	return
}

// gini 计算基尼系数
func gini(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	sum := 0.0
	for _, v := range sorted {
		sum += v
	}
	if sum == 0 {
		return 0
	}

	g := 0.0
	for i, v := range sorted {
		g += (2*float64(i+1) - float64(n) - 1) * v
	}
	g = g / (float64(n) * sum)
	return math.Max(0, math.Min(1, g))
}

// overallScore 综合公平性评分
// 基尼系数与变异系数加权，越均衡分数越高。
func overallScore(g, stdDev, avg float64) float64 {
	const (
		giniWeight = 0.7
		cvWeight   = 0.3
	)

	giniScore := (1 - g) * 100
	cvScore := 100.0
	if avg > 0 {
		cv := stdDev / avg
		cvScore = math.Max(0, 100-cv*200)
	}

	s := giniWeight*giniScore + cvWeight*cvScore
	return math.Max(0, math.Min(100, s))
}
