package errorx

import (
	"errors"
	"fmt"
	"testing"
)

func TestWrapAndUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(cause, CodeDBError, "查询失败")

	if got := err.Error(); got != "查询失败: connection refused" {
		t.Errorf("Error() = %q", got)
	}
	if !errors.Is(err, cause) {
		t.Error("wrapped cause not reachable via errors.Is")
	}
	if GetCode(err) != CodeDBError {
		t.Errorf("GetCode = %d, want CodeDBError", GetCode(err))
	}
}

func TestGetCodeDefault(t *testing.T) {
	if GetCode(errors.New("plain")) != CodeServerBusy {
		t.Error("plain error should map to CodeServerBusy")
	}
	// 深层包装也能取到码
	deep := fmt.Errorf("outer: %w", New(CodeRoomFull, "房间人数已满"))
	if GetCode(deep) != CodeRoomFull {
		t.Errorf("GetCode through fmt wrap = %d, want CodeRoomFull", GetCode(deep))
	}
}

func TestIsNotFound(t *testing.T) {
	if !IsNotFound(New(CodeNotFound, "不存在")) {
		t.Error("CodeNotFound should be not found")
	}
	if !IsNotFound(errors.New("record not found")) {
		t.Error("gorm record not found message should be not found")
	}
	if IsNotFound(New(CodeDBError, "x")) || IsNotFound(nil) {
		t.Error("false positives in IsNotFound")
	}
}

func TestIsAlreadyExists(t *testing.T) {
	if !IsAlreadyExists(Newf(CodeAlreadyExists, "用户 %s 已在房间中", "U_1")) {
		t.Error("CodeAlreadyExists should match")
	}
	if IsAlreadyExists(New(CodeNotFound, "x")) || IsAlreadyExists(nil) {
		t.Error("false positives in IsAlreadyExists")
	}
}
