// Package swap 提供排班结果的替班推荐
package swap

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/wilson323/IOE-DREAMfornew-sub058/pkg/errors"
	"github.com/wilson323/IOE-DREAMfornew-sub058/pkg/model"
	"github.com/wilson323/IOE-DREAMfornew-sub058/pkg/scheduler/constraint"
	"github.com/wilson323/IOE-DREAMfornew-sub058/pkg/scheduler/constraint/builtin"
	"github.com/wilson323/IOE-DREAMfornew-sub058/pkg/scheduler/score"
)

// Recommender 替班推荐器
// 针对已求解的排班，为某个槽位评估所有候选接替者：
// 逐个试派、增量评分、还原，按总分变化排序。
type Recommender struct {
	catalog *constraint.Catalog
}

// NewRecommender 创建替班推荐器，catalog 为 nil 时使用全部内置约束
func NewRecommender(catalog *constraint.Catalog) *Recommender {
	if catalog == nil {
		catalog = builtin.DefaultCatalog()
	}
	return &Recommender{catalog: catalog}
}

// Options 推荐选项
type Options struct {
	MaxResults   int         // 最大推荐数量，0 表示不限制
	Exclude      []uuid.UUID // 排除的员工
	FeasibleOnly bool        // 只推荐不恶化硬约束的接替
}

// DefaultOptions 默认推荐选项
func DefaultOptions() *Options {
	return &Options{
		MaxResults:   5,
		FeasibleOnly: true,
	}
}

// Recommendation 替班推荐
type Recommendation struct {
	Employee *model.Employee `json:"employee"`
	Delta    score.Score     `json:"delta"`    // 接替后相对当前方案的得分变化
	Feasible bool            `json:"feasible"` // 接替不恶化硬约束
	Rank     int             `json:"rank"`
	Reason   string          `json:"reason"`
}

// RecommendReplacements 为指定槽位推荐接替员工
// 上下文在调用结束时保持原状。
func (r *Recommender) RecommendReplacements(schedCtx *constraint.Context, slot int, opts *Options) ([]Recommendation, error) {
	if schedCtx == nil {
		return nil, errors.InvalidInput("context", "排班上下文为空")
	}
	if slot < 0 || slot >= schedCtx.SlotCount() {
		return nil, errors.InvalidInput("slot", fmt.Sprintf("槽位下标越界: %d", slot))
	}
	if opts == nil {
		opts = DefaultOptions()
	}

	excluded := make(map[uuid.UUID]bool, len(opts.Exclude)+1)
	for _, id := range opts.Exclude {
		excluded[id] = true
	}
	current := schedCtx.Assignments[slot].EmployeeID
	excluded[current] = true

	scorer := constraint.NewScorer(r.catalog, schedCtx)
	base := scorer.Current()

	var recs []Recommendation
	for _, emp := range schedCtx.Employees {
		if !emp.Available || excluded[emp.ID] {
			continue
		}

		schedCtx.Assign(slot, emp.ID)
		scorer.Refresh(current, emp.ID)
		next := scorer.Current()
		schedCtx.Assign(slot, current)
		scorer.Refresh(current, emp.ID)

		feasible := next.Hard >= base.Hard
		if opts.FeasibleOnly && !feasible {
			continue
		}

		delta := next.Sub(base)
		recs = append(recs, Recommendation{
			Employee: emp,
			Delta:    delta,
			Feasible: feasible,
			Reason:   reason(delta, feasible),
		})
	}

	sort.Slice(recs, func(i, j int) bool {
		if recs[i].Delta != recs[j].Delta {
			return recs[i].Delta.Better(recs[j].Delta)
		}
		return recs[i].Employee.Name < recs[j].Employee.Name
	})
	if opts.MaxResults > 0 && len(recs) > opts.MaxResults {
		recs = recs[:opts.MaxResults]
	}
	for i := range recs {
		recs[i].Rank = i + 1
	}
	return recs, nil
}

// FindBestReplacement 为某员工在某日的班次找最佳接替者
// 员工当日没有分配或没有可行接替者时返回 nil。
func (r *Recommender) FindBestReplacement(schedCtx *constraint.Context, empID uuid.UUID, date string) (*Recommendation, error) {
	slot := -1
	for _, s := range schedCtx.EmployeeSlots(empID) {
		if schedCtx.SlotDate(s) == date {
			slot = s
			break
		}
	}
	if slot < 0 {
		return nil, nil
	}

	recs, err := r.RecommendReplacements(schedCtx, slot, &Options{
		MaxResults:   1,
		Exclude:      []uuid.UUID{empID},
		FeasibleOnly: true,
	})
	if err != nil || len(recs) == 0 {
		return nil, err
	}
	return &recs[0], nil
}

// reason 生成推荐原因
func reason(delta score.Score, feasible bool) string {
	switch {
	case delta.Hard > 0:
		return "消除硬约束违反"
	case !feasible:
		return "会引入硬约束违反"
	case delta.Soft > 0:
		return "软约束得分提升"
	default:
		return "可接替且不引入冲突"
	}
}
