// Package constraint 定义约束接口、排班上下文与评分器
package constraint

import (
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/wilson323/IOE-DREAMfornew-sub058/pkg/scheduler/score"
)

// Catalog 约束目录
type Catalog struct {
	constraints []Constraint
	mu          sync.RWMutex
}

// NewCatalog 创建约束目录
func NewCatalog() *Catalog {
	return &Catalog{
		constraints: make([]Constraint, 0),
	}
}

// Register 注册约束，同名约束被替换
func (c *Catalog) Register(con Constraint) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, existing := range c.constraints {
		if existing.Name() == con.Name() {
			c.constraints[i] = con
			return
		}
	}
	c.constraints = append(c.constraints, con)

	// 硬约束在前，保持稳定顺序便于复现
	sort.SliceStable(c.constraints, func(i, j int) bool {
		ci, cj := c.constraints[i], c.constraints[j]
		if ci.Category() != cj.Category() {
			return ci.Category() == CategoryHard
		}
		return false
	})
}

// Unregister 注销约束
func (c *Catalog) Unregister(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, con := range c.constraints {
		if con.Name() == name {
			c.constraints = append(c.constraints[:i], c.constraints[i+1:]...)
			return
		}
	}
}

// All 获取所有约束
func (c *Catalog) All() []Constraint {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]Constraint, len(c.constraints))
	copy(result, c.constraints)
	return result
}

// ByScope 按作用域获取约束
func (c *Catalog) ByScope(s Scope) []Constraint {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var result []Constraint
	for _, con := range c.constraints {
		if con.Scope() == s {
			result = append(result, con)
		}
	}
	return result
}

// Count 返回约束数量
func (c *Catalog) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.constraints)
}

// Scorer 增量评分器
// 员工作用域约束的得分按员工缓存，移动后仅重算受影响员工；
// 全局约束（公平性、满意度、未分配惩罚）每次评分基于上下文
// 维护的整数聚合量整体重算。全量重建与增量维护的结果严格相等。
type Scorer struct {
	ctx       *Context
	empScoped []Constraint
	global    []Constraint

	empScores  map[uuid.UUID]score.Score
	localTotal score.Score
}

// NewScorer 创建评分器并完成首次全量评分
func NewScorer(catalog *Catalog, ctx *Context) *Scorer {
	s := &Scorer{
		ctx:       ctx,
		empScoped: catalog.ByScope(ScopeEmployee),
		global:    catalog.ByScope(ScopeGlobal),
		empScores: make(map[uuid.UUID]score.Score, len(ctx.Employees)),
	}
	s.Full()
	return s
}

// Full 全量重建员工缓存并返回总分
func (s *Scorer) Full() score.Score {
	s.empScores = make(map[uuid.UUID]score.Score, len(s.ctx.Employees))
	s.localTotal = score.Zero()
	for _, emp := range s.ctx.Employees {
		sc := s.evaluateEmployee(emp.ID)
		s.empScores[emp.ID] = sc
		s.localTotal = s.localTotal.Add(sc)
	}
	return s.Current()
}

// Current 返回当前总分（缓存的员工局部分 + 全局项）
func (s *Scorer) Current() score.Score {
	return s.localTotal.Add(s.globalScore())
}

// Refresh 重算受移动影响员工的缓存得分
func (s *Scorer) Refresh(empIDs ...uuid.UUID) {
	for _, empID := range empIDs {
		if empID == uuid.Nil {
			continue
		}
		old := s.empScores[empID]
		fresh := s.evaluateEmployee(empID)
		s.empScores[empID] = fresh
		s.localTotal = s.localTotal.Add(fresh.Sub(old))
	}
}

// evaluateEmployee 计算单个员工在所有员工作用域约束下的得分
func (s *Scorer) evaluateEmployee(empID uuid.UUID) score.Score {
	var sc score.Score
	for _, con := range s.empScoped {
		points := con.EvaluateEmployee(s.ctx, empID)
		if con.Category() == CategoryHard {
			sc.Hard += points
		} else {
			sc.Soft += points
		}
	}
	return sc
}

// globalScore 计算全局约束得分
func (s *Scorer) globalScore() score.Score {
	var sc score.Score
	for _, con := range s.global {
		points := con.Evaluate(s.ctx)
		if con.Category() == CategoryHard {
			sc.Hard += points
		} else {
			sc.Soft += points
		}
	}
	return sc
}

// Violations 收集全部约束的违反详情（最终报告用）
func (s *Scorer) Violations() []Violation {
	var all []Violation
	for _, con := range s.empScoped {
		all = append(all, con.Violations(s.ctx)...)
	}
	for _, con := range s.global {
		all = append(all, con.Violations(s.ctx)...)
	}
	return all
}
