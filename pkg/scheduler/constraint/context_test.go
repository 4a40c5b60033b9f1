package constraint

import (
	"testing"

	"github.com/google/uuid"

	"github.com/wilson323/IOE-DREAMfornew-sub058/pkg/model"
)

func newTestProblem() ([]*model.Employee, []*model.Shift, []*model.Assignment) {
	emps := []*model.Employee{
		{ID: uuid.New(), Name: "张三", MaxShiftsPerDay: 2, MaxConsecutiveDays: 5, Available: true},
		{ID: uuid.New(), Name: "李四", MaxShiftsPerDay: 2, MaxConsecutiveDays: 5, Available: true},
	}
	shifts := []*model.Shift{
		{ID: uuid.New(), Name: "早班", Date: "2025-06-01", StartTime: "08:00", EndTime: "16:00", Category: "day", RequiredEmployees: 1},
		{ID: uuid.New(), Name: "晚班", Date: "2025-06-01", StartTime: "16:00", EndTime: "22:00", Category: "evening", RequiredEmployees: 1},
		{ID: uuid.New(), Name: "夜班", Date: "2025-06-02", StartTime: "22:00", EndTime: "06:00", Category: "night", RequiredEmployees: 1},
	}
	assignments := make([]*model.Assignment, len(shifts))
	for i, s := range shifts {
		assignments[i] = &model.Assignment{ID: uuid.New(), ShiftID: s.ID, Status: model.StatusUnassigned}
	}
	return emps, shifts, assignments
}

func TestContextAssignMaintainsIndexes(t *testing.T) {
	emps, shifts, assignments := newTestProblem()
	ctx := NewContext(emps, shifts, assignments)

	if ctx.UnassignedCount() != 3 {
		t.Fatalf("初始未分配数 = %d, want 3", ctx.UnassignedCount())
	}
	if ctx.AssignedEmployeeCount() != 0 {
		t.Fatalf("初始有分配员工数 = %d, want 0", ctx.AssignedEmployeeCount())
	}

	ctx.Assign(0, emps[0].ID)
	ctx.Assign(1, emps[0].ID)

	if ctx.UnassignedCount() != 1 {
		t.Errorf("未分配数 = %d, want 1", ctx.UnassignedCount())
	}
	if ctx.AssignedEmployeeCount() != 1 {
		t.Errorf("有分配员工数 = %d, want 1", ctx.AssignedEmployeeCount())
	}
	if got := len(ctx.EmployeeSlots(emps[0].ID)); got != 2 {
		t.Errorf("员工槽位数 = %d, want 2", got)
	}
	// 早班 480 分钟 + 晚班 360 分钟
	if got := ctx.EmployeeMinutes(emps[0].ID); got != 840 {
		t.Errorf("员工工时 = %d 分钟, want 840", got)
	}

	// 改派到另一员工
	ctx.Assign(1, emps[1].ID)
	if got := ctx.EmployeeMinutes(emps[0].ID); got != 480 {
		t.Errorf("改派后原员工工时 = %d, want 480", got)
	}
	if got := ctx.EmployeeMinutes(emps[1].ID); got != 360 {
		t.Errorf("改派后新员工工时 = %d, want 360", got)
	}
	if ctx.AssignedEmployeeCount() != 2 {
		t.Errorf("有分配员工数 = %d, want 2", ctx.AssignedEmployeeCount())
	}

	// 取消分配
	ctx.Assign(0, uuid.Nil)
	if ctx.UnassignedCount() != 2 {
		t.Errorf("取消后未分配数 = %d, want 2", ctx.UnassignedCount())
	}
	if ctx.AssignedEmployeeCount() != 1 {
		t.Errorf("取消后有分配员工数 = %d, want 1", ctx.AssignedEmployeeCount())
	}
	if assignments[0].Status != model.StatusUnassigned {
		t.Errorf("取消后状态 = %s, want unassigned", assignments[0].Status)
	}
}

func TestContextMeanAssignedMinutes(t *testing.T) {
	emps, shifts, assignments := newTestProblem()
	ctx := NewContext(emps, shifts, assignments)

	if got := ctx.MeanAssignedMinutes(); got != 0 {
		t.Errorf("空分配的平均工时 = %d, want 0", got)
	}

	ctx.Assign(0, emps[0].ID) // 480 分钟
	ctx.Assign(1, emps[1].ID) // 360 分钟

	// (480+360)/2 = 420，整数除法
	if got := ctx.MeanAssignedMinutes(); got != 420 {
		t.Errorf("平均工时 = %d, want 420", got)
	}

	// 未分配员工不计入均值分母
	ctx.Assign(1, emps[0].ID)
	if got := ctx.MeanAssignedMinutes(); got != 840 {
		t.Errorf("单员工平均工时 = %d, want 840", got)
	}
}

func TestContextSnapshotRestore(t *testing.T) {
	emps, shifts, assignments := newTestProblem()
	ctx := NewContext(emps, shifts, assignments)

	ctx.Assign(0, emps[0].ID)
	ctx.Assign(2, emps[1].ID)
	snap := ctx.Snapshot()

	ctx.Assign(0, uuid.Nil)
	ctx.Assign(1, emps[0].ID)
	ctx.Assign(2, emps[0].ID)

	ctx.Restore(snap)

	if assignments[0].EmployeeID != emps[0].ID {
		t.Error("恢复后槽位 0 员工不符")
	}
	if assignments[1].EmployeeID != uuid.Nil {
		t.Error("恢复后槽位 1 应未分配")
	}
	if assignments[2].EmployeeID != emps[1].ID {
		t.Error("恢复后槽位 2 员工不符")
	}
	if ctx.UnassignedCount() != 1 {
		t.Errorf("恢复后未分配数 = %d, want 1", ctx.UnassignedCount())
	}
	// 夜班 480 分钟
	if got := ctx.EmployeeMinutes(emps[1].ID); got != 480 {
		t.Errorf("恢复后员工工时 = %d, want 480", got)
	}
}

func TestContextAssignKeepsPinnedStatus(t *testing.T) {
	emps, shifts, assignments := newTestProblem()
	assignments[0].Status = model.StatusPinned
	assignments[0].EmployeeID = emps[0].ID
	ctx := NewContext(emps, shifts, assignments)

	// Restore 会经过锁定槽位，状态不能被冲掉
	snap := ctx.Snapshot()
	ctx.Restore(snap)
	if assignments[0].Status != model.StatusPinned {
		t.Errorf("锁定状态被改写为 %s", assignments[0].Status)
	}
}
