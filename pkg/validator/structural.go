// Package validator 提供排班结果的结构校验
package validator

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/wilson323/IOE-DREAMfornew-sub058/pkg/model"
)

// IssueType 结构问题类型
type IssueType string

const (
	IssueHeadcount    IssueType = "headcount"     // 槽位数与需求人数不一致
	IssueUnknownRef   IssueType = "unknown_ref"   // 引用了不存在的员工或班次
	IssueStatus       IssueType = "status"        // 分配状态与员工引用不一致
	IssuePinned       IssueType = "pinned"        // 锁定分配被改动
	IssueOverlap      IssueType = "overlap"       // 残留的时间重叠
	IssueUnavailable  IssueType = "unavailable"   // 分配给了不可用员工
)

// Issue 结构问题详情
type Issue struct {
	Type       IssueType `json:"type"`
	EmployeeID uuid.UUID `json:"employee_id,omitempty"`
	ShiftID    uuid.UUID `json:"shift_id,omitempty"`
	Message    string    `json:"message"`
}

// StructuralValidator 结构校验器
// 校验求解结果的自身一致性，与约束评分正交：
// 评分器度量方案质量，这里检查结果是否良构。
type StructuralValidator struct{}

// NewStructuralValidator 创建结构校验器
func NewStructuralValidator() *StructuralValidator {
	return &StructuralValidator{}
}

// Validate 校验排班结果
// pinned 为求解前锁定的槽位快照（槽位 ID → 员工 ID），为 nil 时跳过锁定检查。
func (v *StructuralValidator) Validate(
	employees []*model.Employee,
	shifts []*model.Shift,
	assignments []*model.Assignment,
	pinned map[uuid.UUID]uuid.UUID,
) []Issue {
	var issues []Issue

	empMap := make(map[uuid.UUID]*model.Employee, len(employees))
	for _, e := range employees {
		empMap[e.ID] = e
	}
	shiftMap := make(map[uuid.UUID]*model.Shift, len(shifts))
	for _, s := range shifts {
		shiftMap[s.ID] = s
	}

	issues = append(issues, v.checkHeadcount(shifts, assignments)...)
	issues = append(issues, v.checkReferences(empMap, shiftMap, assignments)...)
	issues = append(issues, v.checkStatus(assignments)...)
	issues = append(issues, v.checkPinned(assignments, pinned)...)
	issues = append(issues, v.checkOverlaps(empMap, shiftMap, assignments)...)

	return issues
}

// checkHeadcount 校验每个班次的槽位数等于需求人数
func (v *StructuralValidator) checkHeadcount(shifts []*model.Shift, assignments []*model.Assignment) []Issue {
	var issues []Issue

	slotCount := make(map[uuid.UUID]int)
	for _, a := range assignments {
		slotCount[a.ShiftID]++
	}

	for _, shift := range shifts {
		if slotCount[shift.ID] != shift.RequiredEmployees {
			issues = append(issues, Issue{
				Type:    IssueHeadcount,
				ShiftID: shift.ID,
				Message: fmt.Sprintf("班次 %s 需要 %d 个槽位，实际 %d 个",
					shift.Name, shift.RequiredEmployees, slotCount[shift.ID]),
			})
		}
	}
	return issues
}

// checkReferences 校验分配引用的员工与班次存在，且员工可用
func (v *StructuralValidator) checkReferences(
	empMap map[uuid.UUID]*model.Employee,
	shiftMap map[uuid.UUID]*model.Shift,
	assignments []*model.Assignment,
) []Issue {
	var issues []Issue

	for _, a := range assignments {
		if shiftMap[a.ShiftID] == nil {
			issues = append(issues, Issue{
				Type:    IssueUnknownRef,
				ShiftID: a.ShiftID,
				Message: fmt.Sprintf("分配引用了不存在的班次: %s", a.ShiftID),
			})
		}
		if !a.Assigned() {
			continue
		}
		emp := empMap[a.EmployeeID]
		if emp == nil {
			issues = append(issues, Issue{
				Type:       IssueUnknownRef,
				EmployeeID: a.EmployeeID,
				ShiftID:    a.ShiftID,
				Message:    fmt.Sprintf("分配引用了不存在的员工: %s", a.EmployeeID),
			})
			continue
		}
		// 锁定分配允许指向不可用员工（上游决定），其余不允许
		if !emp.Available && !a.Pinned() {
			issues = append(issues, Issue{
				Type:       IssueUnavailable,
				EmployeeID: emp.ID,
				ShiftID:    a.ShiftID,
				Message:    fmt.Sprintf("不可用员工 %s 被分配了班次", emp.Name),
			})
		}
	}
	return issues
}

// checkStatus 校验分配状态与员工引用一致
func (v *StructuralValidator) checkStatus(assignments []*model.Assignment) []Issue {
	var issues []Issue

	for _, a := range assignments {
		switch a.Status {
		case model.StatusUnassigned:
			if a.Assigned() {
				issues = append(issues, Issue{
					Type:       IssueStatus,
					EmployeeID: a.EmployeeID,
					ShiftID:    a.ShiftID,
					Message:    "未分配状态的槽位持有员工引用",
				})
			}
		case model.StatusAssigned:
			if !a.Assigned() {
				issues = append(issues, Issue{
					Type:    IssueStatus,
					ShiftID: a.ShiftID,
					Message: "已分配状态的槽位没有员工引用",
				})
			}
		case model.StatusPinned:
			// 锁定槽位可以为空（锁定空槽位表示强制留空）
		default:
			issues = append(issues, Issue{
				Type:    IssueStatus,
				ShiftID: a.ShiftID,
				Message: fmt.Sprintf("未知的分配状态: %s", a.Status),
			})
		}
	}
	return issues
}

// checkPinned 校验锁定分配未被搜索改动
func (v *StructuralValidator) checkPinned(assignments []*model.Assignment, pinned map[uuid.UUID]uuid.UUID) []Issue {
	if pinned == nil {
		return nil
	}
	var issues []Issue

	for _, a := range assignments {
		want, ok := pinned[a.ID]
		if !ok {
			continue
		}
		if a.EmployeeID != want {
			issues = append(issues, Issue{
				Type:       IssuePinned,
				EmployeeID: a.EmployeeID,
				ShiftID:    a.ShiftID,
				Message:    fmt.Sprintf("锁定分配被改动: 期望员工 %s，实际 %s", want, a.EmployeeID),
			})
		}
	}
	return issues
}

// checkOverlaps 校验残留的时间重叠
func (v *StructuralValidator) checkOverlaps(
	empMap map[uuid.UUID]*model.Employee,
	shiftMap map[uuid.UUID]*model.Shift,
	assignments []*model.Assignment,
) []Issue {
	var issues []Issue

	type slot struct {
		shiftID  uuid.UUID
		interval model.TimeRange
	}
	byEmp := make(map[uuid.UUID][]slot)
	for _, a := range assignments {
		if !a.Assigned() {
			continue
		}
		shift := shiftMap[a.ShiftID]
		if shift == nil {
			continue
		}
		tr, ok := shift.Interval()
		if !ok {
			continue
		}
		byEmp[a.EmployeeID] = append(byEmp[a.EmployeeID], slot{shiftID: a.ShiftID, interval: tr})
	}

	for empID, slots := range byEmp {
		for i := 0; i < len(slots); i++ {
			for j := i + 1; j < len(slots); j++ {
				if !slots[i].interval.Overlaps(slots[j].interval) {
					continue
				}
				name := empID.String()
				if emp := empMap[empID]; emp != nil {
					name = emp.Name
				}
				issues = append(issues, Issue{
					Type:       IssueOverlap,
					EmployeeID: empID,
					ShiftID:    slots[i].shiftID,
					Message:    fmt.Sprintf("员工 %s 存在时间重叠的分配", name),
				})
			}
		}
	}
	return issues
}
