package config

import (
	"testing"

	"echoverse_server/pkg/constants"
)

func TestRoomConfigDefaults(t *testing.T) {
	// 配置缺失时各项回落到内置默认值
	var conf RoomConfig
	if got := conf.GetCodeLength(); got != constants.ROOM_CODE_LENGTH {
		t.Errorf("GetCodeLength() = %d, want default %d", got, constants.ROOM_CODE_LENGTH)
	}
	if got := conf.GetDefaultMaxMembers(); got != constants.DEFAULT_MAX_PARTICIPANTS {
		t.Errorf("GetDefaultMaxMembers() = %d, want default %d", got, constants.DEFAULT_MAX_PARTICIPANTS)
	}
	if got := conf.GetHistoryPageLimit(); got != constants.MESSAGE_HISTORY_PAGE_LIMIT {
		t.Errorf("GetHistoryPageLimit() = %d, want default %d", got, constants.MESSAGE_HISTORY_PAGE_LIMIT)
	}

	// 非法取值同样回落
	conf = RoomConfig{CodeLength: -1, DefaultMaxMembers: -5, HistoryPageLimit: 0}
	if got := conf.GetCodeLength(); got != constants.ROOM_CODE_LENGTH {
		t.Errorf("GetCodeLength() with negative value = %d, want default %d", got, constants.ROOM_CODE_LENGTH)
	}
}

func TestRoomConfigExplicitValues(t *testing.T) {
	conf := RoomConfig{CodeLength: 8, DefaultMaxMembers: 50, HistoryPageLimit: 100}
	if got := conf.GetCodeLength(); got != 8 {
		t.Errorf("GetCodeLength() = %d, want 8", got)
	}
	if got := conf.GetDefaultMaxMembers(); got != 50 {
		t.Errorf("GetDefaultMaxMembers() = %d, want 50", got)
	}
	if got := conf.GetHistoryPageLimit(); got != 100 {
		t.Errorf("GetHistoryPageLimit() = %d, want 100", got)
	}
}
