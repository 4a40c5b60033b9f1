// Package solver 提供排班求解引擎
package solver

import (
	"math/rand"
	"sort"

	"github.com/google/uuid"

	"github.com/wilson323/IOE-DREAMfornew-sub058/pkg/model"
	"github.com/wilson323/IOE-DREAMfornew-sub058/pkg/scheduler/constraint"
)

// InitialStrategy 初始解策略
type InitialStrategy string

const (
	// InitialUnassigned 全部槽位保持未分配，完全交给搜索
	InitialUnassigned InitialStrategy = "unassigned"
	// InitialRandom 每个槽位随机分配一名可用员工
	InitialRandom InitialStrategy = "random"
	// InitialGreedy 贪心构造：技能匹配的候选中取当前工时最少者
	InitialGreedy InitialStrategy = "greedy"
)

// buildInitial 在上下文上应用初始解策略
// 只触碰未分配且未锁定的槽位，预置分配原样保留。
func buildInitial(strategy InitialStrategy, schedCtx *constraint.Context, rng *rand.Rand) {
	switch strategy {
	case InitialRandom:
		buildRandom(schedCtx, rng)
	case InitialGreedy:
		buildGreedy(schedCtx)
	default:
		// 未分配策略无事可做
	}
}

// buildRandom 随机初始解
func buildRandom(schedCtx *constraint.Context, rng *rand.Rand) {
	candidates := availableEmployees(schedCtx)
	if len(candidates) == 0 {
		return
	}

	for i, a := range schedCtx.Assignments {
		if a.Assigned() || a.Pinned() {
			continue
		}
		emp := candidates[rng.Intn(len(candidates))]
		schedCtx.Assign(i, emp.ID)
	}
}

// buildGreedy 贪心初始解
// 按槽位顺序填充，候选为具备全部必需技能的可用员工，
// 取当前分配工时最少者，并列时按员工 ID 保证确定性。
func buildGreedy(schedCtx *constraint.Context) {
	candidates := availableEmployees(schedCtx)
	if len(candidates) == 0 {
		return
	}

	for i, a := range schedCtx.Assignments {
		if a.Assigned() || a.Pinned() {
			continue
		}
		shift := schedCtx.SlotShift(i)
		if shift == nil {
			continue
		}

		var matched []*model.Employee
		for _, emp := range candidates {
			if emp.MissingSkills(shift.RequiredSkills) == 0 {
				matched = append(matched, emp)
			}
		}
		if len(matched) == 0 {
			continue
		}

		sort.Slice(matched, func(x, y int) bool {
			mx := schedCtx.EmployeeMinutes(matched[x].ID)
			my := schedCtx.EmployeeMinutes(matched[y].ID)
			if mx != my {
				return mx < my
			}
			return lessUUID(matched[x].ID, matched[y].ID)
		})

		schedCtx.Assign(i, matched[0].ID)
	}
}

// availableEmployees 返回可用员工列表
func availableEmployees(schedCtx *constraint.Context) []*model.Employee {
	var out []*model.Employee
	for _, emp := range schedCtx.Employees {
		if emp.Available {
			out = append(out, emp)
		}
	}
	return out
}

// lessUUID 按字节序比较两个 UUID
func lessUUID(a, b uuid.UUID) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}
