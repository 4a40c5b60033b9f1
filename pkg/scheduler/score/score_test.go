package score

import (
	"testing"
)

func TestScoreCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b Score
		want int
	}{
		{name: "硬分优先", a: Score{Hard: 0, Soft: -500}, b: Score{Hard: -1000, Soft: 100}, want: 1},
		{name: "硬分相同比软分", a: Score{Hard: -100, Soft: 50}, b: Score{Hard: -100, Soft: 20}, want: 1},
		{name: "完全相等", a: Score{Hard: -100, Soft: 50}, b: Score{Hard: -100, Soft: 50}, want: 0},
		{name: "硬分更差", a: Score{Hard: -2000, Soft: 0}, b: Score{Hard: -1000, Soft: -999}, want: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Compare(tt.b); got != tt.want {
				t.Errorf("Compare() = %d, want %d", got, tt.want)
			}
			if got := tt.a.Better(tt.b); got != (tt.want > 0) {
				t.Errorf("Better() = %v, want %v", got, tt.want > 0)
			}
		})
	}
}

func TestScoreCollapse(t *testing.T) {
	s := Score{Hard: -2, Soft: 150}
	want := -2.0*BigM + 150
	if got := s.Collapse(); got != want {
		t.Errorf("Collapse() = %f, want %f", got, want)
	}

	// 任何硬约束违反都压过软分优势
	worse := Score{Hard: -1, Soft: 999999}
	better := Score{Hard: 0, Soft: -999999}
	if worse.Collapse() >= better.Collapse() {
		t.Error("硬约束违反的折叠分应低于硬可行解")
	}
}

func TestScoreArithmetic(t *testing.T) {
	a := Score{Hard: -100, Soft: 30}
	b := Score{Hard: -50, Soft: -10}

	sum := a.Add(b)
	if sum.Hard != -150 || sum.Soft != 20 {
		t.Errorf("Add() = %+v, want {-150 20}", sum)
	}

	diff := a.Sub(b)
	if diff.Hard != -50 || diff.Soft != 40 {
		t.Errorf("Sub() = %+v, want {-50 40}", diff)
	}
}

func TestScoreFeasible(t *testing.T) {
	if (Score{Hard: -1, Soft: 0}).Feasible() {
		t.Error("硬分非零不应可行")
	}
	if !(Score{Hard: 0, Soft: -99999}).Feasible() {
		t.Error("硬分为零应可行，软分不影响可行性")
	}
}
