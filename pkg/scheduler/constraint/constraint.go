// Package constraint 定义约束接口、排班上下文与评分器
package constraint

import (
	"github.com/google/uuid"

	"github.com/wilson323/IOE-DREAMfornew-sub058/pkg/model"
)

// Category 约束类别
type Category string

const (
	CategoryHard Category = "hard" // 硬约束（必须满足）
	CategorySoft Category = "soft" // 软约束（尽量满足）
)

// Scope 约束作用域
type Scope string

const (
	// ScopeEmployee 员工作用域：得分可按员工分解，移动后仅需重算受影响员工
	ScopeEmployee Scope = "employee"
	// ScopeGlobal 全局作用域：得分依赖全体分配（如均值），每次评分整体重算
	ScopeGlobal Scope = "global"
)

// Violation 约束违反详情
type Violation struct {
	ConstraintName string    `json:"constraint_name"`
	Category       Category  `json:"category"`
	EmployeeID     uuid.UUID `json:"employee_id,omitempty"`
	ShiftID        uuid.UUID `json:"shift_id,omitempty"`
	Date           string    `json:"date,omitempty"`
	Message        string    `json:"message"`
	Penalty        int       `json:"penalty"` // 负数
}

// Constraint 约束接口
// 所有实现对良构输入必须是全函数：时间无法解析等内部异常
// 视为零贡献跳过，绝不中止整个求解。
type Constraint interface {
	// Name 返回约束名称
	Name() string

	// Category 返回约束类别
	Category() Category

	// Scope 返回约束作用域
	Scope() Scope

	// Evaluate 全量评估，返回总得分贡献（惩罚为负、奖励为正）
	Evaluate(ctx *Context) int

	// EvaluateEmployee 评估单个员工的得分贡献
	// 仅员工作用域约束有意义，全局约束返回 0
	EvaluateEmployee(ctx *Context, empID uuid.UUID) int

	// Violations 返回违反详情，仅用于最终结果报告
	Violations(ctx *Context) []Violation
}

// slotInfo 槽位的预计算班次信息，与分配向量对齐
type slotInfo struct {
	shift    *model.Shift
	interval model.TimeRange
	valid    bool // 班次时间可解析
	minutes  int
	date     string
	category string
}

// Context 排班上下文
// 持有问题事实（只读）、分配向量（决策变量）与增量维护的索引。
// 单次求解内不可并发使用。
type Context struct {
	Employees   []*model.Employee
	Shifts      []*model.Shift
	Assignments []*model.Assignment

	employeeMap map[uuid.UUID]*model.Employee
	shiftMap    map[uuid.UUID]*model.Shift
	slots       []slotInfo

	// 增量索引
	slotsByEmp   map[uuid.UUID][]int
	minutesByEmp map[uuid.UUID]int
	totalMinutes int
	assignedEmps int // 至少有一个分配的员工数
	unassigned   int // 未分配槽位数
}

// NewContext 创建排班上下文并构建索引
func NewContext(employees []*model.Employee, shifts []*model.Shift, assignments []*model.Assignment) *Context {
	c := &Context{
		Employees:   employees,
		Shifts:      shifts,
		Assignments: assignments,
		employeeMap: make(map[uuid.UUID]*model.Employee, len(employees)),
		shiftMap:    make(map[uuid.UUID]*model.Shift, len(shifts)),
	}
	for _, e := range employees {
		c.employeeMap[e.ID] = e
	}
	for _, s := range shifts {
		c.shiftMap[s.ID] = s
	}

	c.slots = make([]slotInfo, len(assignments))
	for i, a := range assignments {
		shift := c.shiftMap[a.ShiftID]
		info := slotInfo{shift: shift}
		if shift != nil {
			info.date = shift.Date
			info.category = shift.Category
			if tr, ok := shift.Interval(); ok {
				info.interval = tr
				info.valid = true
				info.minutes = tr.Minutes()
			}
		}
		c.slots[i] = info
	}

	c.rebuildIndexes()
	return c
}

// rebuildIndexes 从分配向量重建全部增量索引
func (c *Context) rebuildIndexes() {
	c.slotsByEmp = make(map[uuid.UUID][]int)
	c.minutesByEmp = make(map[uuid.UUID]int)
	c.totalMinutes = 0
	c.assignedEmps = 0
	c.unassigned = 0

	for i, a := range c.Assignments {
		if !a.Assigned() {
			c.unassigned++
			continue
		}
		if len(c.slotsByEmp[a.EmployeeID]) == 0 {
			c.assignedEmps++
		}
		c.slotsByEmp[a.EmployeeID] = append(c.slotsByEmp[a.EmployeeID], i)
		c.minutesByEmp[a.EmployeeID] += c.slots[i].minutes
		c.totalMinutes += c.slots[i].minutes
	}
}

// Employee 获取员工事实
func (c *Context) Employee(id uuid.UUID) *model.Employee {
	return c.employeeMap[id]
}

// Shift 获取班次事实
func (c *Context) Shift(id uuid.UUID) *model.Shift {
	return c.shiftMap[id]
}

// SlotCount 返回槽位总数
func (c *Context) SlotCount() int {
	return len(c.Assignments)
}

// SlotShift 返回槽位对应的班次
func (c *Context) SlotShift(i int) *model.Shift {
	return c.slots[i].shift
}

// SlotInterval 返回槽位的绝对时间区间
func (c *Context) SlotInterval(i int) (model.TimeRange, bool) {
	return c.slots[i].interval, c.slots[i].valid
}

// SlotMinutes 返回槽位时长（分钟）
func (c *Context) SlotMinutes(i int) int {
	return c.slots[i].minutes
}

// SlotDate 返回槽位日期
func (c *Context) SlotDate(i int) string {
	return c.slots[i].date
}

// SlotCategory 返回槽位班次类别
func (c *Context) SlotCategory(i int) string {
	return c.slots[i].category
}

// EmployeeSlots 返回员工当前持有的槽位下标
func (c *Context) EmployeeSlots(empID uuid.UUID) []int {
	return c.slotsByEmp[empID]
}

// EmployeeMinutes 返回员工当前总分配时长（分钟）
func (c *Context) EmployeeMinutes(empID uuid.UUID) int {
	return c.minutesByEmp[empID]
}

// AssignedEmployeeCount 返回至少有一个分配的员工数
func (c *Context) AssignedEmployeeCount() int {
	return c.assignedEmps
}

// UnassignedCount 返回未分配槽位数
func (c *Context) UnassignedCount() int {
	return c.unassigned
}

// MeanAssignedMinutes 返回有分配员工的平均工时（分钟，整除）
func (c *Context) MeanAssignedMinutes() int {
	if c.assignedEmps == 0 {
		return 0
	}
	return c.totalMinutes / c.assignedEmps
}

// Assign 将槽位改派给指定员工（uuid.Nil 表示取消分配）并维护索引
// 调用方负责保证不改动锁定槽位
func (c *Context) Assign(i int, empID uuid.UUID) {
	a := c.Assignments[i]
	old := a.EmployeeID
	if old == empID {
		return
	}
	minutes := c.slots[i].minutes

	if old != uuid.Nil {
		c.removeSlot(old, i)
		c.minutesByEmp[old] -= minutes
		c.totalMinutes -= minutes
		if len(c.slotsByEmp[old]) == 0 {
			c.assignedEmps--
		}
	} else {
		c.unassigned--
	}

	a.EmployeeID = empID

	if empID != uuid.Nil {
		if len(c.slotsByEmp[empID]) == 0 {
			c.assignedEmps++
		}
		c.slotsByEmp[empID] = append(c.slotsByEmp[empID], i)
		c.minutesByEmp[empID] += minutes
		c.totalMinutes += minutes
		if a.Status != model.StatusPinned {
			a.Status = model.StatusAssigned
		}
	} else {
		c.unassigned++
		if a.Status != model.StatusPinned {
			a.Status = model.StatusUnassigned
		}
	}
}

// removeSlot 从员工的槽位列表中移除指定下标
func (c *Context) removeSlot(empID uuid.UUID, slot int) {
	slots := c.slotsByEmp[empID]
	for j, s := range slots {
		if s == slot {
			slots[j] = slots[len(slots)-1]
			c.slotsByEmp[empID] = slots[:len(slots)-1]
			return
		}
	}
}

// Snapshot 拷贝当前的员工引用向量（仅决策变量，不含事实）
func (c *Context) Snapshot() []uuid.UUID {
	snap := make([]uuid.UUID, len(c.Assignments))
	for i, a := range c.Assignments {
		snap[i] = a.EmployeeID
	}
	return snap
}

// Restore 按快照恢复员工引用向量
func (c *Context) Restore(snap []uuid.UUID) {
	for i, empID := range snap {
		c.Assign(i, empID)
	}
}
