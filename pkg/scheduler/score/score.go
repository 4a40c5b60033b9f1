// Package score 定义排班方案的字典序双层得分
package score

import (
	"fmt"
)

// BigM 硬得分在折算时的放大系数
// 足够大以保证任何硬得分变化都支配软得分变化
const BigM = 1_000_000

// Score 字典序 (硬, 软) 得分
// 硬得分衡量不可违反规则，可行解的硬得分为 0；
// 软得分衡量偏好与公平，仅在硬得分相等时参与比较。
// 所有贡献均为整数点数，保证增量评分与全量评分严格一致。
type Score struct {
	Hard int `json:"hard"`
	Soft int `json:"soft"`
}

// Zero 返回零分
func Zero() Score {
	return Score{}
}

// Add 得分相加
func (s Score) Add(o Score) Score {
	return Score{Hard: s.Hard + o.Hard, Soft: s.Soft + o.Soft}
}

// Sub 得分相减
func (s Score) Sub(o Score) Score {
	return Score{Hard: s.Hard - o.Hard, Soft: s.Soft - o.Soft}
}

// Compare 字典序比较，s > o 返回 1，s < o 返回 -1，相等返回 0
func (s Score) Compare(o Score) int {
	if s.Hard != o.Hard {
		if s.Hard > o.Hard {
			return 1
		}
		return -1
	}
	if s.Soft != o.Soft {
		if s.Soft > o.Soft {
			return 1
		}
		return -1
	}
	return 0
}

// Better 检查 s 是否严格优于 o
func (s Score) Better(o Score) bool {
	return s.Compare(o) > 0
}

// Feasible 检查硬约束是否全部满足
func (s Score) Feasible() bool {
	return s.Hard == 0
}

// Collapse 折算为单一实数，用于模拟退火的接受判定
func (s Score) Collapse() float64 {
	return float64(s.Hard)*BigM + float64(s.Soft)
}

// String 格式化为 "硬/软" 形式
func (s Score) String() string {
	return fmt.Sprintf("%dhard/%dsoft", s.Hard, s.Soft)
}
