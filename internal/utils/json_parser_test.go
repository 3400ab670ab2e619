package utils

import "testing"

func TestParseAIJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantKey string
		wantErr bool
	}{
		{
			name:    "pure json",
			input:   `{"traffic": 0.4}`,
			wantKey: "traffic",
		},
		{
			name:    "markdown json block",
			input:   "```json\n{\"traffic\": 0.4}\n```",
			wantKey: "traffic",
		},
		{
			name:    "bare markdown block",
			input:   "```\n{\"traffic\": 0.4}\n```",
			wantKey: "traffic",
		},
		{
			name:    "json with surrounding prose",
			input:   "根据分析，结果如下：{\"traffic\": 0.4} 以上是我的建议。",
			wantKey: "traffic",
		},
		{
			name:    "nested braces",
			input:   `前缀 {"outer": {"traffic": 0.4}} 后缀`,
			wantKey: "outer",
		},
		{
			name:    "brace inside string literal",
			input:   `{"note": "a { b } c", "traffic": 0.4}`,
			wantKey: "note",
		},
		{
			name:    "no json at all",
			input:   "抱歉，我无法回答这个问题。",
			wantErr: true,
		},
		{
			name:    "empty input",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got map[string]interface{}
			err := ParseAIJSON(tt.input, &got)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr = %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if _, ok := got[tt.wantKey]; !ok {
				t.Errorf("parsed object %v missing key %q", got, tt.wantKey)
			}
		})
	}
}

func TestTryParseJSONObject(t *testing.T) {
	obj, err := TryParseJSONObject(`回复：{"base": 0.15}`)
	if err != nil {
		t.Fatalf("TryParseJSONObject failed: %v", err)
	}
	if obj["base"] != 0.15 {
		t.Errorf("base = %v, want 0.15", obj["base"])
	}
}
