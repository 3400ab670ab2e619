package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"realtorai/internal/config"
)

func oracleFor(t *testing.T, handler http.HandlerFunc) *OracleClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewOracleClient(&config.OracleConfig{
		APIKey:  "test-key",
		APIURL:  server.URL,
		Model:   "deepseek-chat",
		Timeout: 5,
		Enabled: true,
	})
}

func TestCompleteParsesJSONReply(t *testing.T) {
	client := oracleFor(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("authorization header = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices": [{"message": {"role": "assistant",
			"content": "结果如下：{\"traffic\": 0.4, \"school\": 0.3}"}}]}`))
	})

	obj, err := client.Complete(context.Background(), "prompt", false)
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if obj["traffic"] != 0.4 {
		t.Errorf("traffic = %v, want 0.4", obj["traffic"])
	}
}

func TestCompleteNon2xxIsUnavailable(t *testing.T) {
	client := oracleFor(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	})

	if _, err := client.Complete(context.Background(), "prompt", false); !errors.Is(err, ErrOracleUnavailable) {
		t.Errorf("error = %v, want ErrOracleUnavailable", err)
	}
}

func TestCompleteUnparseableReplyIsMalformed(t *testing.T) {
	client := oracleFor(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices": [{"message": {"role": "assistant", "content": "抱歉，无法回答"}}]}`))
	})

	if _, err := client.Complete(context.Background(), "prompt", false); !errors.Is(err, ErrMalformedResponse) {
		t.Errorf("error = %v, want ErrMalformedResponse", err)
	}
}

func TestCompleteDisabledClient(t *testing.T) {
	client := NewOracleClient(&config.OracleConfig{Enabled: false, Timeout: 1})

	if _, err := client.Complete(context.Background(), "prompt", false); !errors.Is(err, ErrOracleUnavailable) {
		t.Errorf("error = %v, want ErrOracleUnavailable", err)
	}
}
