package message

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"testing"
	"time"

	"echoverse_server/internal/dao/mysql/repository/repositorytest"
	"echoverse_server/internal/dto/request"
	"echoverse_server/internal/dto/respond"
	"echoverse_server/internal/model"
	"echoverse_server/pkg/constants"
	"echoverse_server/pkg/enum/message/message_type_enum"
	"echoverse_server/pkg/errorx"
)

const (
	testRoom   = "R_TEST_ROOM"
	testMember = "U_MEMBER"
)

func newTestService(t *testing.T, msgCount int) *messageService {
	t.Helper()
	repos := repositorytest.NewStore().Repositories()
	if err := repos.Participant.Create(&model.RoomParticipant{
		RoomUuid: testRoom, UserUuid: testMember, JoinedAt: time.Now(),
	}); err != nil {
		t.Fatalf("seed participant: %v", err)
	}
	// 雪花 ID 用 1..n 代替，排序语义相同
	for i := 1; i <= msgCount; i++ {
		if err := repos.Message.Create(&model.Message{
			Uuid:     int64(i),
			RoomUuid: testRoom,
			Type:     message_type_enum.Text,
			Content:  fmt.Sprintf("msg %d", i),
			SendId:   testMember,
			SendName: "member",
		}); err != nil {
			t.Fatalf("seed message %d: %v", i, err)
		}
	}
	return NewMessageService(repos, nil)
}

func TestGetHistoryRequiresMembership(t *testing.T) {
	svc := newTestService(t, 3)

	_, err := svc.GetHistory("U_STRANGER", request.MessageHistoryRequest{RoomUuid: testRoom})
	if errorx.GetCode(err) != errorx.CodeUnauthorized {
		t.Fatalf("history for non-member err = %v, want CodeUnauthorized", err)
	}
}

func TestGetHistoryNewestFirst(t *testing.T) {
	svc := newTestService(t, 5)

	list, err := svc.GetHistory(testMember, request.MessageHistoryRequest{RoomUuid: testRoom, Limit: 10})
	if err != nil {
		t.Fatalf("GetHistory: %v", err)
	}
	if len(list) != 5 {
		t.Fatalf("history length = %d, want 5", len(list))
	}
	for i, msg := range list {
		want := strconv.Itoa(5 - i)
		if msg.Uuid != want {
			t.Errorf("list[%d].Uuid = %s, want %s", i, msg.Uuid, want)
		}
	}
}

func TestGetHistoryLimitClamp(t *testing.T) {
	svc := newTestService(t, constants.MESSAGE_HISTORY_PAGE_LIMIT+10)

	// Limit 超过上限被压到默认页大小
	list, err := svc.GetHistory(testMember, request.MessageHistoryRequest{RoomUuid: testRoom, Limit: 9999})
	if err != nil {
		t.Fatalf("GetHistory: %v", err)
	}
	if len(list) != constants.MESSAGE_HISTORY_PAGE_LIMIT {
		t.Errorf("history length = %d, want %d", len(list), constants.MESSAGE_HISTORY_PAGE_LIMIT)
	}

	// 未填 Limit 同样用默认页大小
	list, err = svc.GetHistory(testMember, request.MessageHistoryRequest{RoomUuid: testRoom})
	if err != nil {
		t.Fatalf("GetHistory: %v", err)
	}
	if len(list) != constants.MESSAGE_HISTORY_PAGE_LIMIT {
		t.Errorf("history length = %d, want %d", len(list), constants.MESSAGE_HISTORY_PAGE_LIMIT)
	}
}

func TestGetHistoryBeforeCursor(t *testing.T) {
	svc := newTestService(t, 10)

	// Before 为排他游标，取 uuid 严格小于 6 的消息
	list, err := svc.GetHistory(testMember, request.MessageHistoryRequest{
		RoomUuid: testRoom, Before: 6, Limit: 3,
	})
	if err != nil {
		t.Fatalf("GetHistory: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("page length = %d, want 3", len(list))
	}
	for i, want := range []string{"5", "4", "3"} {
		if list[i].Uuid != want {
			t.Errorf("list[%d].Uuid = %s, want %s", i, list[i].Uuid, want)
		}
	}

	// 游标翻到底返回空页
	list, err = svc.GetHistory(testMember, request.MessageHistoryRequest{
		RoomUuid: testRoom, Before: 1, Limit: 3,
	})
	if err != nil {
		t.Fatalf("GetHistory past the end: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("page past the end length = %d, want 0", len(list))
	}
}

// memCache 内存缓存替身，任务同步执行
// 只实现 String 操作，Set 集合操作本包用不到
type memCache struct {
	kv map[string]string
}

func newMemCache() *memCache { return &memCache{kv: make(map[string]string)} }

func (m *memCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	m.kv[key] = value
	return nil
}

func (m *memCache) Get(_ context.Context, key string) (string, error) {
	return m.kv[key], nil
}

func (m *memCache) GetOrError(_ context.Context, key string) (string, error) {
	value, ok := m.kv[key]
	if !ok {
		return "", errors.New("cache miss")
	}
	return value, nil
}

func (m *memCache) Delete(_ context.Context, key string) error {
	delete(m.kv, key)
	return nil
}

func (m *memCache) DeleteByPattern(ctx context.Context, pattern string) error {
	return m.Delete(ctx, pattern)
}

func (m *memCache) AddToSet(_ context.Context, _ string, _ ...interface{}) error { return nil }

func (m *memCache) GetSetMembers(_ context.Context, _ string) ([]string, error) { return nil, nil }

func (m *memCache) IsSetMember(_ context.Context, _ string, _ interface{}) (bool, error) {
	return false, nil
}

func (m *memCache) RemoveFromSet(_ context.Context, _ string, _ ...interface{}) error { return nil }

func (m *memCache) SubmitTask(action func()) { action() }

func TestGetHistoryFirstPageServedFromCache(t *testing.T) {
	svc := newTestService(t, 5)
	cache := newMemCache()
	svc.cache = cache

	// 缓存内容与库里不同，命中时以缓存为准
	cached := []respond.MessageRespond{
		{Uuid: "99", RoomUuid: testRoom, Content: "cached newest"},
		{Uuid: "98", RoomUuid: testRoom, Content: "cached older"},
	}
	raw, err := json.Marshal(cached)
	if err != nil {
		t.Fatalf("marshal cache seed: %v", err)
	}
	if err := cache.Set(context.Background(), "room_messages_"+testRoom, string(raw), time.Minute); err != nil {
		t.Fatalf("seed cache: %v", err)
	}

	list, err := svc.GetHistory(testMember, request.MessageHistoryRequest{RoomUuid: testRoom})
	if err != nil {
		t.Fatalf("GetHistory: %v", err)
	}
	if len(list) != 2 || list[0].Uuid != "99" || list[1].Uuid != "98" {
		t.Fatalf("first page = %+v, want the 2 cached entries newest first", list)
	}

	// Limit 小于缓存长度时截取头部
	list, err = svc.GetHistory(testMember, request.MessageHistoryRequest{RoomUuid: testRoom, Limit: 1})
	if err != nil {
		t.Fatalf("GetHistory with limit: %v", err)
	}
	if len(list) != 1 || list[0].Uuid != "99" {
		t.Fatalf("limited page = %+v, want only the newest cached entry", list)
	}
}

func TestGetHistoryCursorPageBypassesCache(t *testing.T) {
	svc := newTestService(t, 5)
	cache := newMemCache()
	svc.cache = cache

	poison := []respond.MessageRespond{{Uuid: "99", RoomUuid: testRoom, Content: "cached"}}
	raw, _ := json.Marshal(poison)
	_ = cache.Set(context.Background(), "room_messages_"+testRoom, string(raw), time.Minute)

	// 翻页请求必须走库，缓存只服务首页
	list, err := svc.GetHistory(testMember, request.MessageHistoryRequest{
		RoomUuid: testRoom, Before: 4, Limit: 2,
	})
	if err != nil {
		t.Fatalf("GetHistory with cursor: %v", err)
	}
	if len(list) != 2 || list[0].Uuid != "3" || list[1].Uuid != "2" {
		t.Fatalf("cursor page = %+v, want uuids 3,2 from the store", list)
	}
}

func TestGetHistoryBackfillsCache(t *testing.T) {
	svc := newTestService(t, 3)
	cache := newMemCache()
	svc.cache = cache

	// 首页整页查询后回填缓存，最新在前
	if _, err := svc.GetHistory(testMember, request.MessageHistoryRequest{RoomUuid: testRoom}); err != nil {
		t.Fatalf("GetHistory: %v", err)
	}
	raw, err := cache.GetOrError(context.Background(), "room_messages_"+testRoom)
	if err != nil {
		t.Fatalf("cache not backfilled: %v", err)
	}
	var cached []respond.MessageRespond
	if err := json.Unmarshal([]byte(raw), &cached); err != nil {
		t.Fatalf("unmarshal backfill: %v", err)
	}
	if len(cached) != 3 || cached[0].Uuid != "3" {
		t.Fatalf("backfill = %+v, want 3 entries newest first", cached)
	}

	// 非整页查询不回填，避免缓存只装半页
	cache2 := newMemCache()
	svc2 := newTestService(t, 3)
	svc2.cache = cache2
	if _, err := svc2.GetHistory(testMember, request.MessageHistoryRequest{RoomUuid: testRoom, Limit: 2}); err != nil {
		t.Fatalf("GetHistory partial: %v", err)
	}
	if _, err := cache2.GetOrError(context.Background(), "room_messages_"+testRoom); err == nil {
		t.Error("partial page query backfilled the cache")
	}
}

