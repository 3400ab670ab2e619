package service

import (
	"reflect"
	"testing"
)

func TestGazetteerExtract(t *testing.T) {
	g := DefaultGazetteer()

	tests := []struct {
		name          string
		text          string
		wantDistricts []string
		wantCircles   []string
	}{
		{
			name:          "plain names",
			text:          "我想在浦东的陆家嘴买房",
			wantDistricts: []string{"浦东"},
			wantCircles:   []string{"陆家嘴"},
		},
		{
			name:          "suffix variants canonicalize",
			text:          "浦东新区的张江板块怎么样",
			wantDistricts: []string{"浦东"},
			wantCircles:   []string{"张江"},
		},
		{
			name:          "repeated mentions dedupe",
			text:          "浦东新区的陆家嘴很棒，浦东新区的发展很快，陆家嘴的房价很高",
			wantDistricts: []string{"浦东"},
			wantCircles:   []string{"陆家嘴"},
		},
		{
			name:          "first seen order preserved",
			text:          "徐汇和静安都可以，徐家汇或者南京西路",
			wantDistricts: []string{"徐汇", "静安"},
			wantCircles:   []string{"徐家汇", "南京西路"},
		},
		{
			name:          "partial name does not match",
			text:          "浦东的陆家",
			wantDistricts: []string{"浦东"},
			wantCircles:   []string{},
		},
		{
			name:          "no locations",
			text:          "预算500万买个三房",
			wantDistricts: []string{},
			wantCircles:   []string{},
		},
		{
			name:          "empty text",
			text:          "",
			wantDistricts: []string{},
			wantCircles:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			districts, circles := g.Extract(tt.text)
			if !reflect.DeepEqual(districts, tt.wantDistricts) {
				t.Errorf("districts = %v, want %v", districts, tt.wantDistricts)
			}
			if !reflect.DeepEqual(circles, tt.wantCircles) {
				t.Errorf("circles = %v, want %v", circles, tt.wantCircles)
			}
		})
	}
}

func TestGazetteerCaseInsensitive(t *testing.T) {
	g := NewGazetteer(
		map[string]string{"Downtown": "D1"},
		map[string]string{},
	)

	districts, _ := g.Extract("looking at DOWNTOWN area")
	if !reflect.DeepEqual(districts, []string{"Downtown"}) {
		t.Errorf("districts = %v, want canonical casing preserved", districts)
	}
}

func TestGazetteerResolve(t *testing.T) {
	g := DefaultGazetteer()

	codes := g.ResolveDistricts([]string{"浦东", "不存在的区"})
	if !reflect.DeepEqual(codes, []string{"310115"}) {
		t.Errorf("district codes = %v", codes)
	}

	codes = g.ResolveCircles([]string{"张江", "陆家嘴"})
	if !reflect.DeepEqual(codes, []string{"613000136", "613000101"}) {
		t.Errorf("circle codes = %v", codes)
	}
}
