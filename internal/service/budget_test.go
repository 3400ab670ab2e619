package service

import "testing"

func TestExtractBudget(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantMin int
		wantMax int
		wantOK  bool
	}{
		{"range with unit", "500万到800万", 500, 800, true},
		{"range with prefix", "预算500万到800万", 500, 800, true},
		{"range with w unit", "500w-800w之间", 500, 800, true},
		{"range tilde connector", "750万~850万", 750, 850, true},
		{"range in raw yuan", "5000000到8000000", 500, 800, true},
		{"reversed range normalizes", "800万到500万", 500, 800, true},
		{"single value expands ten percent", "预算600万左右", 540, 660, true},
		{"single small value expands by floor", "300万以内", 250, 350, true},
		{"single large value raw yuan", "预算8000000", 720, 880, true},
		{"four digit value", "总价1000万", 900, 1100, true},
		{"no digits", "浦东的三房", 0, 0, false},
		{"empty", "", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			min, max, ok := ExtractBudget(tt.text)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if min != tt.wantMin || max != tt.wantMax {
				t.Errorf("budget = [%d, %d], want [%d, %d]", min, max, tt.wantMin, tt.wantMax)
			}
		})
	}
}

func TestExpandBudget(t *testing.T) {
	tests := []struct {
		value   int
		wantMin int
		wantMax int
	}{
		{600, 540, 660},   // 10% above the floor
		{300, 250, 350},   // floor of 50 kicks in
		{500, 450, 550},   // exactly at the boundary
		{1000, 900, 1100}, // large values scale
	}

	for _, tt := range tests {
		min, max := ExpandBudget(tt.value)
		if min != tt.wantMin || max != tt.wantMax {
			t.Errorf("ExpandBudget(%d) = [%d, %d], want [%d, %d]",
				tt.value, min, max, tt.wantMin, tt.wantMax)
		}
	}
}
