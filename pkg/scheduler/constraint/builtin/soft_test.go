package builtin

import (
	"testing"

	"github.com/google/uuid"

	"github.com/wilson323/IOE-DREAMfornew-sub058/pkg/model"
)

func TestPreferenceConstraint(t *testing.T) {
	c := NewPreferenceConstraint()

	tests := []struct {
		name        string
		preferences map[string]int
		category    string
		want        int
	}{
		{name: "偏好命中", preferences: map[string]int{"night": 5}, category: "night", want: 10},
		{name: "类别不匹配", preferences: map[string]int{"night": 5}, category: "day", want: 0},
		{name: "负权重不算偏好", preferences: map[string]int{"night": -3}, category: "night", want: 0},
		{name: "无偏好配置", preferences: nil, category: "night", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			emp := newEmployee("张三")
			emp.Preferences = tt.preferences
			shift := newShift("班次", "2025-06-01", "22:00", "06:00")
			shift.Category = tt.category

			ctx := newContext([]*model.Employee{emp}, []*model.Shift{shift}, []uuid.UUID{emp.ID})
			if got := c.Evaluate(ctx); got != tt.want {
				t.Errorf("Evaluate() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFairnessConstraint(t *testing.T) {
	c := NewFairnessConstraint()

	t.Run("单员工无偏差", func(t *testing.T) {
		emp := newEmployee("张三")
		shift := newShift("早班", "2025-06-01", "08:00", "16:00")
		ctx := newContext([]*model.Employee{emp}, []*model.Shift{shift}, []uuid.UUID{emp.ID})
		if got := c.Evaluate(ctx); got != 0 {
			t.Errorf("Evaluate() = %d, want 0", got)
		}
	})

	t.Run("工时不均各按小时偏差扣分", func(t *testing.T) {
		empA := newEmployee("张三")
		empB := newEmployee("李四")
		shifts := []*model.Shift{
			newShift("长班", "2025-06-01", "08:00", "16:00"), // 480 分钟
			newShift("短班", "2025-06-01", "10:00", "14:00"), // 240 分钟
		}
		ctx := newContext([]*model.Employee{empA, empB}, shifts, []uuid.UUID{empA.ID, empB.ID})

		// 均值 360 分钟，各偏差 120 分钟 = 2 小时，各扣 2 分
		if got := c.Evaluate(ctx); got != -4 {
			t.Errorf("Evaluate() = %d, want -4", got)
		}
		if got := len(c.Violations(ctx)); got != 2 {
			t.Errorf("违反详情数 = %d, want 2", got)
		}
	})

	t.Run("无分配员工不计入均值", func(t *testing.T) {
		empA := newEmployee("张三")
		empB := newEmployee("闲人")
		shift := newShift("早班", "2025-06-01", "08:00", "16:00")
		ctx := newContext([]*model.Employee{empA, empB}, []*model.Shift{shift}, []uuid.UUID{empA.ID})
		if got := c.Evaluate(ctx); got != 0 {
			t.Errorf("Evaluate() = %d, want 0", got)
		}
	})
}

func TestCostConstraint(t *testing.T) {
	c := NewCostConstraint()

	tests := []struct {
		name      string
		costLevel int
		want      int
	}{
		{name: "低成本员工", costLevel: 1, want: -8},
		{name: "高成本员工", costLevel: 5, want: -40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			emp := newEmployee("张三")
			emp.CostLevel = tt.costLevel
			shift := newShift("早班", "2025-06-01", "08:00", "16:00") // 8 小时

			ctx := newContext([]*model.Employee{emp}, []*model.Shift{shift}, []uuid.UUID{emp.ID})
			if got := c.Evaluate(ctx); got != tt.want {
				t.Errorf("Evaluate() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSatisfactionConstraint(t *testing.T) {
	c := NewSatisfactionConstraint()

	t.Run("基准奖励五十", func(t *testing.T) {
		emp := newEmployee("张三")
		shift := newShift("早班", "2025-06-01", "08:00", "16:00")
		ctx := newContext([]*model.Employee{emp}, []*model.Shift{shift}, []uuid.UUID{emp.ID})

		// 偏好 0 + 公平 0 + 100 再除 2
		if got := c.Evaluate(ctx); got != 50 {
			t.Errorf("Evaluate() = %d, want 50", got)
		}
	})

	t.Run("偏好命中提升满意度", func(t *testing.T) {
		emp := newEmployee("张三")
		emp.Preferences = map[string]int{"day": 3}
		shift := newShift("早班", "2025-06-01", "08:00", "16:00")
		ctx := newContext([]*model.Employee{emp}, []*model.Shift{shift}, []uuid.UUID{emp.ID})

		if got := c.Evaluate(ctx); got != 55 {
			t.Errorf("Evaluate() = %d, want 55", got)
		}
	})

	t.Run("无分配员工不产生奖励", func(t *testing.T) {
		emp := newEmployee("张三")
		shift := newShift("早班", "2025-06-01", "08:00", "16:00")
		ctx := newContext([]*model.Employee{emp}, []*model.Shift{shift}, []uuid.UUID{uuid.Nil})

		if got := c.Evaluate(ctx); got != 0 {
			t.Errorf("Evaluate() = %d, want 0", got)
		}
	})
}

func TestUnassignedConstraint(t *testing.T) {
	c := NewUnassignedConstraint()

	emp := newEmployee("张三")
	shifts := []*model.Shift{
		newShift("早班", "2025-06-01", "08:00", "16:00"),
		newShift("晚班", "2025-06-01", "16:00", "22:00"),
		newShift("夜班", "2025-06-01", "22:00", "06:00"),
	}
	ctx := newContext([]*model.Employee{emp}, shifts, []uuid.UUID{emp.ID, uuid.Nil, uuid.Nil})

	if got := c.Evaluate(ctx); got != -2000 {
		t.Errorf("Evaluate() = %d, want -2000", got)
	}
	if got := len(c.Violations(ctx)); got != 2 {
		t.Errorf("违反详情数 = %d, want 2", got)
	}
}

func TestDefaultCatalog(t *testing.T) {
	cat := DefaultCatalog()
	if got := cat.Count(); got != 10 {
		t.Fatalf("内置约束数 = %d, want 10", got)
	}

	all := cat.All()
	// 硬约束排在前面
	for i, con := range all {
		if i < 5 && con.Category() != "hard" {
			t.Errorf("第 %d 个约束应为硬约束，实际 %s", i, con.Category())
		}
		if i >= 5 && con.Category() != "soft" {
			t.Errorf("第 %d 个约束应为软约束，实际 %s", i, con.Category())
		}
	}
}
