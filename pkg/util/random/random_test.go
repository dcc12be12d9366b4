package random

import (
	"strings"
	"testing"
	"time"
)

func TestGetNowAndLenRandomString(t *testing.T) {
	s := GetNowAndLenRandomString(11)
	// 6 位日期前缀 + 11 位随机
	if len(s) != 17 {
		t.Fatalf("length = %d, want 17", len(s))
	}
	if !strings.HasPrefix(s, time.Now().Format("060102")) {
		t.Errorf("string %q missing date prefix", s)
	}
}

func TestGetRoomCode(t *testing.T) {
	const safe = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	for i := 0; i < 100; i++ {
		code := GetRoomCode(6)
		if len(code) != 6 {
			t.Fatalf("code %q length = %d, want 6", code, len(code))
		}
		// 只含大写且不含易混淆字符 O/0/I/1
		for _, c := range code {
			if !strings.ContainsRune(safe, c) {
				t.Fatalf("code %q contains invalid char %q", code, c)
			}
		}
		if code != strings.ToUpper(code) {
			t.Fatalf("code %q is not uppercase", code)
		}
	}
}

func TestGetRoomCodeVariety(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		seen[GetRoomCode(6)] = true
	}
	if len(seen) < 45 {
		t.Errorf("only %d distinct codes out of 50", len(seen))
	}
}
