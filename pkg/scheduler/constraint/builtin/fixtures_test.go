package builtin

import (
	"github.com/google/uuid"

	"github.com/wilson323/IOE-DREAMfornew-sub058/pkg/model"
	"github.com/wilson323/IOE-DREAMfornew-sub058/pkg/scheduler/constraint"
)

// 测试辅助函数

func newEmployee(name string) *model.Employee {
	return &model.Employee{
		ID:                 uuid.New(),
		Name:               name,
		MaxShiftsPerDay:    2,
		MaxConsecutiveDays: 6,
		MinRestHours:       0,
		CostLevel:          1,
		Available:          true,
	}
}

func newShift(name, date, start, end string) *model.Shift {
	return &model.Shift{
		ID:                uuid.New(),
		Name:              name,
		Date:              date,
		StartTime:         start,
		EndTime:           end,
		Category:          "day",
		RequiredEmployees: 1,
	}
}

// newContext 每个班次展开一个槽位，assigned[i] 指定槽位 i 的员工
func newContext(emps []*model.Employee, shifts []*model.Shift, assigned []uuid.UUID) *constraint.Context {
	assignments := make([]*model.Assignment, len(shifts))
	for i, s := range shifts {
		a := &model.Assignment{ID: uuid.New(), ShiftID: s.ID, Status: model.StatusUnassigned}
		if i < len(assigned) && assigned[i] != uuid.Nil {
			a.EmployeeID = assigned[i]
			a.Status = model.StatusAssigned
		}
		assignments[i] = a
	}
	return constraint.NewContext(emps, shifts, assignments)
}
