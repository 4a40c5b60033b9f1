// Package optimizer 提供基于模拟退火的排班优化算法
package optimizer

import (
	"math/rand"

	"github.com/google/uuid"

	"github.com/wilson323/IOE-DREAMfornew-sub058/pkg/scheduler/constraint"
)

// MoveType 邻域移动类型
type MoveType int

const (
	MoveReassign MoveType = iota // 将槽位改派给另一名员工（或置空）
	MoveSwap                     // 交换两个槽位上的员工
)

// Move 邻域移动操作
// Apply 与 Undo 均为 O(1)，Undo 在 Apply 之后调用时精确恢复原状态。
type Move interface {
	// Type 返回移动类型
	Type() MoveType

	// Apply 在上下文上执行移动
	Apply(ctx *constraint.Context)

	// Undo 撤销移动
	Undo(ctx *constraint.Context)

	// Touched 返回受移动影响的员工（不含空员工）
	Touched() []uuid.UUID
}

// reassignMove 改派移动
type reassignMove struct {
	slot int
	from uuid.UUID
	to   uuid.UUID
}

func (m *reassignMove) Type() MoveType { return MoveReassign }

func (m *reassignMove) Apply(ctx *constraint.Context) {
	ctx.Assign(m.slot, m.to)
}

func (m *reassignMove) Undo(ctx *constraint.Context) {
	ctx.Assign(m.slot, m.from)
}

func (m *reassignMove) Touched() []uuid.UUID {
	touched := make([]uuid.UUID, 0, 2)
	if m.from != uuid.Nil {
		touched = append(touched, m.from)
	}
	if m.to != uuid.Nil {
		touched = append(touched, m.to)
	}
	return touched
}

// swapMove 交换移动，互换两个槽位的员工引用
// 两侧引用必须不同，其中一侧可以为空（相当于把分配挪到空槽）。
type swapMove struct {
	slotA int
	slotB int
	empA  uuid.UUID
	empB  uuid.UUID
}

func (m *swapMove) Type() MoveType { return MoveSwap }

func (m *swapMove) Apply(ctx *constraint.Context) {
	ctx.Assign(m.slotA, m.empB)
	ctx.Assign(m.slotB, m.empA)
}

func (m *swapMove) Undo(ctx *constraint.Context) {
	ctx.Assign(m.slotA, m.empA)
	ctx.Assign(m.slotB, m.empB)
}

func (m *swapMove) Touched() []uuid.UUID {
	touched := make([]uuid.UUID, 0, 2)
	if m.empA != uuid.Nil {
		touched = append(touched, m.empA)
	}
	if m.empB != uuid.Nil {
		touched = append(touched, m.empB)
	}
	return touched
}

// maxGenerateRetries 随机选取失败时的重试上限
const maxGenerateRetries = 10

// MoveGenerator 邻域移动生成器
// 只在未锁定槽位上生成移动，改派目标限于可用员工与空员工。
type MoveGenerator struct {
	ctx        *constraint.Context
	rng        *rand.Rand
	movable    []int       // 未锁定槽位下标
	candidates []uuid.UUID // 可用员工
	swapProb   float64
}

// NewMoveGenerator 创建移动生成器
func NewMoveGenerator(ctx *constraint.Context, rng *rand.Rand, swapProb float64) *MoveGenerator {
	g := &MoveGenerator{
		ctx:      ctx,
		rng:      rng,
		swapProb: swapProb,
	}
	for i, a := range ctx.Assignments {
		if !a.Pinned() {
			g.movable = append(g.movable, i)
		}
	}
	for _, e := range ctx.Employees {
		if e.Available {
			g.candidates = append(g.candidates, e.ID)
		}
	}
	return g
}

// MovableCount 返回可移动槽位数
func (g *MoveGenerator) MovableCount() int {
	return len(g.movable)
}

// Generate 生成一个随机移动，无法生成时返回 nil
func (g *MoveGenerator) Generate() Move {
	if len(g.movable) == 0 || len(g.candidates) == 0 {
		return nil
	}

	if g.rng.Float64() < g.swapProb {
		if m := g.generateSwap(); m != nil {
			return m
		}
	}
	return g.generateReassign()
}

// generateReassign 生成改派移动
// 目标在可用员工与空员工中均匀选取，与当前持有者相同时重试。
func (g *MoveGenerator) generateReassign() Move {
	for attempt := 0; attempt < maxGenerateRetries; attempt++ {
		slot := g.movable[g.rng.Intn(len(g.movable))]
		from := g.ctx.Assignments[slot].EmployeeID

		to := uuid.Nil
		if idx := g.rng.Intn(len(g.candidates) + 1); idx < len(g.candidates) {
			to = g.candidates[idx]
		}
		if to == from {
			continue
		}
		return &reassignMove{slot: slot, from: from, to: to}
	}
	return nil
}

// generateSwap 生成交换移动，要求两个槽位的员工引用不同
// 空槽也参与交换：已分配槽与空槽交换等价于移动该分配。
func (g *MoveGenerator) generateSwap() Move {
	if len(g.movable) < 2 {
		return nil
	}

	for attempt := 0; attempt < maxGenerateRetries; attempt++ {
		i := g.movable[g.rng.Intn(len(g.movable))]
		j := g.movable[g.rng.Intn(len(g.movable))]
		if i == j {
			continue
		}
		empA := g.ctx.Assignments[i].EmployeeID
		empB := g.ctx.Assignments[j].EmployeeID
		if empA == empB {
			continue
		}
		return &swapMove{slotA: i, slotB: j, empA: empA, empB: empB}
	}
	return nil
}
