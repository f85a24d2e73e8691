package grading

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Ai ", "ai"},
		{"ÉTÉ", "été"},
		{"e\u0301te\u0301", "été"},
		{"", ""},
	}
	for _, tc := range tests {
		if got := Normalize(tc.in); got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestIsCorrect(t *testing.T) {
	tests := []struct {
		input, expected string
		want            bool
	}{
		{"ai", "ai", true},
		{" AI ", "ai", true},
		{"e\u0301te\u0301", "été", true},
		{"as", "ai", false},
		{"", "", false},
		{"  ", "", false},
		{"ai", "", false},
		{"", "ai", false},
	}
	for _, tc := range tests {
		if got := IsCorrect(tc.input, tc.expected); got != tc.want {
			t.Errorf("IsCorrect(%q, %q) = %v, want %v", tc.input, tc.expected, got, tc.want)
		}
	}
}

func TestMatchChoice(t *testing.T) {
	opts := []string{"allait", "ira", "va", "irait"}
	tests := []struct {
		input string
		want  bool
	}{
		{"ira", true},
		{"2", true},
		{" IRA ", true},
		{"1", false},
		{"5", false},
		{"va", false},
	}
	for _, tc := range tests {
		if got := MatchChoice(tc.input, opts, "ira"); got != tc.want {
			t.Errorf("MatchChoice(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestGradeSlots(t *testing.T) {
	expected := []string{"ai", "as", "a", "avons", "avez", "ont"}
	res := GradeSlots([]string{"ai", "AS", "x", "avons"}, expected)

	if res.Total != 6 {
		t.Errorf("Total = %d, want 6", res.Total)
	}
	if res.Count != 3 {
		t.Errorf("Count = %d, want 3", res.Count)
	}
	want := []bool{true, true, false, true, false, false}
	for i, w := range want {
		if res.Correct[i] != w {
			t.Errorf("slot %d = %v, want %v", i, res.Correct[i], w)
		}
	}
	if res.AllCorrect() {
		t.Error("AllCorrect() = true for partial result")
	}
	if !GradeSlots(expected, expected).AllCorrect() {
		t.Error("AllCorrect() = false for full match")
	}
}

func TestStepScore(t *testing.T) {
	tests := []struct {
		name    string
		scoring Scoring
		res     SlotResult
		want    int
	}{
		{"per step correct", PerStep, SlotResult{Count: 1, Total: 1}, 100},
		{"per step wrong", PerStep, SlotResult{Count: 0, Total: 1}, 0},
		{"per step partial", PerStep, SlotResult{Count: 2, Total: 3}, 0},
		{"percent 4 of 6", Percent, SlotResult{Count: 4, Total: 6}, 66},
		{"percent 5 of 6", Percent, SlotResult{Count: 5, Total: 6}, 83},
		{"percent full", Percent, SlotResult{Count: 6, Total: 6}, 100},
		{"percent empty", Percent, SlotResult{}, 0},
		{"per slot", PerSlot, SlotResult{Count: 4, Total: 6}, 400},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := StepScore(tc.scoring, tc.res); got != tc.want {
				t.Errorf("StepScore = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestMaxStepScore(t *testing.T) {
	if got := MaxStepScore(PerSlot, 6); got != 600 {
		t.Errorf("MaxStepScore(PerSlot, 6) = %d", got)
	}
	if got := MaxStepScore(Percent, 6); got != 100 {
		t.Errorf("MaxStepScore(Percent, 6) = %d", got)
	}
}
