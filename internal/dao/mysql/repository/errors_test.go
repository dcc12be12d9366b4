package repository

import (
	"errors"
	"fmt"
	"testing"

	gomysql "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"echoverse_server/pkg/errorx"
)

func TestWrapDBErrorDuplicatedKey(t *testing.T) {
	// 经 TranslateError 翻译后的统一错误
	err := wrapDBError(gorm.ErrDuplicatedKey, "新增房间成员")
	if errorx.GetCode(err) != errorx.CodeAlreadyExists {
		t.Errorf("wrapDBError(gorm.ErrDuplicatedKey) code = %d, want CodeAlreadyExists(%d)",
			errorx.GetCode(err), errorx.CodeAlreadyExists)
	}

	// 未经翻译的裸驱动错误，按 1062 错误号识别
	raw := &gomysql.MySQLError{Number: 1062, Message: "Duplicate entry 'R_X-U_1' for key 'idx_room_user'"}
	err = wrapDBError(raw, "新增房间成员")
	if errorx.GetCode(err) != errorx.CodeAlreadyExists {
		t.Errorf("wrapDBError(raw 1062) code = %d, want CodeAlreadyExists(%d)",
			errorx.GetCode(err), errorx.CodeAlreadyExists)
	}
	if !errorx.IsAlreadyExists(err) {
		t.Error("IsAlreadyExists(raw 1062) = false, want true")
	}

	// 包装一层后依然可识别
	wrapped := fmt.Errorf("create participant: %w", raw)
	if errorx.GetCode(wrapDBError(wrapped, "新增房间成员")) != errorx.CodeAlreadyExists {
		t.Error("wrapDBError(wrapped 1062) did not map to CodeAlreadyExists")
	}
}

func TestWrapDBErrorNotFound(t *testing.T) {
	err := wrapDBError(gorm.ErrRecordNotFound, "查询房间")
	if errorx.GetCode(err) != errorx.CodeNotFound {
		t.Errorf("wrapDBError(ErrRecordNotFound) code = %d, want CodeNotFound(%d)",
			errorx.GetCode(err), errorx.CodeNotFound)
	}
}

func TestWrapDBErrorDefault(t *testing.T) {
	// 其他驱动错误一律映射为数据库错误
	raw := &gomysql.MySQLError{Number: 1213, Message: "Deadlock found"}
	if errorx.GetCode(wrapDBError(raw, "新增房间成员")) != errorx.CodeDBError {
		t.Error("wrapDBError(deadlock) did not map to CodeDBError")
	}
	if errorx.GetCode(wrapDBErrorf(errors.New("connection refused"), "查询用户%s", "U_1")) != errorx.CodeDBError {
		t.Error("wrapDBErrorf(plain error) did not map to CodeDBError")
	}
	if wrapDBError(nil, "noop") != nil {
		t.Error("wrapDBError(nil) != nil")
	}
}
