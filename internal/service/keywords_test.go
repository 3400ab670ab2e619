package service

import (
	"reflect"
	"testing"
)

func TestExtractBedroomCount(t *testing.T) {
	tests := []struct {
		text   string
		want   int
		wantOK bool
	}{
		{"想买个三房", 3, true},
		{"两室一厅", 2, true},
		{"四居室", 4, true},
		{"3房2卫", 3, true},
		{"2室", 2, true},
		{"大户型", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := ExtractBedroomCount(tt.text)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("ExtractBedroomCount(%q) = (%d, %v), want (%d, %v)",
					tt.text, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestMatchClasses(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		classes []keywordClass
		want    []string
	}{
		{
			name:    "purpose single hit",
			text:    "刚需自住，不考虑投资",
			classes: purposeClasses,
			want:    []string{"自住优先", "投资升值"},
		},
		{
			name:    "family multiple hits in class order",
			text:    "夫妻带着孩子和老人一起住",
			classes: familyStatusClasses,
			want:    []string{"已婚", "有子女", "有老人"},
		},
		{
			name:    "preferences",
			text:    "要安静，最好靠近公园",
			classes: preferenceClasses,
			want:    []string{"靠近公园", "环境安静"},
		},
		{
			name:    "no hits",
			text:    "随便看看",
			classes: purposeClasses,
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := matchClasses(tt.text, tt.classes)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("matchClasses = %v, want %v", got, tt.want)
			}
		})
	}
}
