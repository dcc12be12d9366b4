package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"echoverse_server/internal/dao/mysql/repository"
	"echoverse_server/internal/dao/mysql/repository/repositorytest"
	"echoverse_server/internal/dto/request"
	"echoverse_server/internal/dto/respond"
	"echoverse_server/internal/model"
	"echoverse_server/pkg/enum/message/message_type_enum"
	"echoverse_server/pkg/util/snowflake"
)

const (
	dispatchRoom = "R_DISPATCH_ROOM"
	memberAlice  = "U_ALICE"
	memberBob    = "U_BOB"
	outsiderCara = "U_CARA"
)

// fakeCache 内存缓存替身，任务同步执行
type fakeCache struct {
	mu   sync.Mutex
	kv   map[string]string
	sets map[string]map[string]struct{}
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		kv:   make(map[string]string),
		sets: make(map[string]map[string]struct{}),
	}
}

func (f *fakeCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.kv[key] = value
	return nil
}

func (f *fakeCache) Get(_ context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.kv[key], nil
}

func (f *fakeCache) GetOrError(_ context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	value, ok := f.kv[key]
	if !ok {
		return "", errors.New("cache miss")
	}
	return value, nil
}

func (f *fakeCache) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.kv, key)
	return nil
}

func (f *fakeCache) DeleteByPattern(ctx context.Context, pattern string) error {
	return f.Delete(ctx, pattern)
}

func (f *fakeCache) AddToSet(_ context.Context, key string, members ...interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sets[key] == nil {
		f.sets[key] = make(map[string]struct{})
	}
	for _, m := range members {
		f.sets[key][fmt.Sprint(m)] = struct{}{}
	}
	return nil
}

func (f *fakeCache) GetSetMembers(_ context.Context, key string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	members := make([]string, 0, len(f.sets[key]))
	for m := range f.sets[key] {
		members = append(members, m)
	}
	return members, nil
}

func (f *fakeCache) IsSetMember(_ context.Context, key string, member interface{}) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.sets[key][fmt.Sprint(member)]
	return ok, nil
}

func (f *fakeCache) RemoveFromSet(_ context.Context, key string, members ...interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range members {
		delete(f.sets[key], fmt.Sprint(m))
	}
	return nil
}

func (f *fakeCache) SubmitTask(action func()) {
	action()
}

// newTestDispatcher 构建分发器，预置两个房间成员和一个房间外用户
func newTestDispatcher(t *testing.T) (*eventDispatcher, *repository.Repositories, *fakeCache) {
	t.Helper()
	snowflake.Init(1)
	repos := repositorytest.NewStore().Repositories()
	for uuid, name := range map[string]string{
		memberAlice:  "alice",
		memberBob:    "bob",
		outsiderCara: "cara",
	} {
		if err := repos.User.Create(&model.UserInfo{
			Uuid: uuid, Username: name, DisplayName: name, RawPassword: "secret123",
		}); err != nil {
			t.Fatalf("seed user %s: %v", name, err)
		}
	}
	for _, uuid := range []string{memberAlice, memberBob} {
		if err := repos.Participant.Create(&model.RoomParticipant{
			RoomUuid: dispatchRoom, UserUuid: uuid, JoinedAt: time.Now(),
		}); err != nil {
			t.Fatalf("seed participant %s: %v", uuid, err)
		}
	}
	cache := newFakeCache()
	return &eventDispatcher{
		messageRepo:     repos.Message,
		participantRepo: repos.Participant,
		userRepo:        repos.User,
		cacheService:    cache,
	}, repos, cache
}

// dispatchChat 构造入站聊天事件并交给分发器
func dispatchChat(t *testing.T, d *eventDispatcher, clients *sync.Map, sendId, content string) {
	t.Helper()
	event, err := NewEvent(ChannelChat, ActionMessage, dispatchRoom, sendId, request.ChatMessageRequest{
		RoomUuid: dispatchRoom,
		Type:     message_type_enum.Text,
		Content:  content,
	})
	if err != nil {
		t.Fatalf("NewEvent: %v", err)
	}
	data, err := event.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	d.handleEvent(data, clients)
}

func onlineConn(clients *sync.Map, uuid string) *UserConn {
	conn := &UserConn{Uuid: uuid, SendBack: make(chan *MessageBack, 8)}
	clients.Store(uuid, conn)
	return conn
}

func TestDispatcherPersistsAndFansOut(t *testing.T) {
	d, repos, _ := newTestDispatcher(t)

	var clients sync.Map
	alice := onlineConn(&clients, memberAlice)
	bob := onlineConn(&clients, memberBob)
	cara := onlineConn(&clients, outsiderCara)

	dispatchChat(t, d, &clients, memberAlice, "今晚看什么")

	// 消息落库，发送者资料由服务端补全
	rows, err := repos.Message.FindByRoomUuid(dispatchRoom, 50, 0)
	if err != nil {
		t.Fatalf("FindByRoomUuid: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("message rows = %d, want 1", len(rows))
	}
	if rows[0].SendName != "alice" {
		t.Errorf("SendName = %q, want server-resolved %q", rows[0].SendName, "alice")
	}

	// 发送者和另一名成员都收到回显，房间外用户收不到
	for _, conn := range []*UserConn{alice, bob} {
		select {
		case back := <-conn.SendBack:
			var event Event
			if err := json.Unmarshal(back.Message, &event); err != nil {
				t.Fatalf("unmarshal fan-out event: %v", err)
			}
			if event.Channel != ChannelChat || event.Action != ActionMessage {
				t.Errorf("event = %s/%s, want chat/message", event.Channel, event.Action)
			}
			var rsp respond.MessageRespond
			if err := json.Unmarshal(event.Payload, &rsp); err != nil {
				t.Fatalf("unmarshal payload: %v", err)
			}
			if rsp.Content != "今晚看什么" || rsp.SendId != memberAlice {
				t.Errorf("payload = %q from %s, want 今晚看什么 from %s", rsp.Content, rsp.SendId, memberAlice)
			}
		default:
			t.Errorf("member %s received nothing", conn.Uuid)
		}
	}
	select {
	case <-cara.SendBack:
		t.Error("non-member connection received a room message")
	default:
	}
}

func TestDispatcherDropsBlankMessage(t *testing.T) {
	d, repos, _ := newTestDispatcher(t)

	var clients sync.Map
	alice := onlineConn(&clients, memberAlice)

	dispatchChat(t, d, &clients, memberAlice, "   \t\n  ")

	rows, err := repos.Message.FindByRoomUuid(dispatchRoom, 50, 0)
	if err != nil {
		t.Fatalf("FindByRoomUuid: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("blank message produced %d rows, want 0", len(rows))
	}
	select {
	case <-alice.SendBack:
		t.Error("blank message was fanned out")
	default:
	}
}

func TestDispatcherDropsNonMemberMessage(t *testing.T) {
	d, repos, _ := newTestDispatcher(t)

	var clients sync.Map
	alice := onlineConn(&clients, memberAlice)

	dispatchChat(t, d, &clients, outsiderCara, "让我进来")

	rows, err := repos.Message.FindByRoomUuid(dispatchRoom, 50, 0)
	if err != nil {
		t.Fatalf("FindByRoomUuid: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("non-member message produced %d rows, want 0", len(rows))
	}
	select {
	case <-alice.SendBack:
		t.Error("non-member message was fanned out")
	default:
	}
}

func TestDispatcherCacheKeepsNewestFirst(t *testing.T) {
	d, _, cache := newTestDispatcher(t)

	// 预置缓存：最新在前的两条旧消息
	seeded := []respond.MessageRespond{
		{Uuid: "2", RoomUuid: dispatchRoom, Content: "second"},
		{Uuid: "1", RoomUuid: dispatchRoom, Content: "first"},
	}
	raw, err := json.Marshal(seeded)
	if err != nil {
		t.Fatalf("marshal seed: %v", err)
	}
	if err := cache.Set(context.Background(), roomMessagesKey(dispatchRoom), string(raw), time.Minute); err != nil {
		t.Fatalf("seed cache: %v", err)
	}

	var clients sync.Map
	dispatchChat(t, d, &clients, memberAlice, "third")

	cachedRaw, err := cache.GetOrError(context.Background(), roomMessagesKey(dispatchRoom))
	if err != nil {
		t.Fatalf("cache read: %v", err)
	}
	var cached []respond.MessageRespond
	if err := json.Unmarshal([]byte(cachedRaw), &cached); err != nil {
		t.Fatalf("unmarshal cache: %v", err)
	}
	if len(cached) != 3 {
		t.Fatalf("cache length = %d, want 3", len(cached))
	}
	// 新消息插在头部，原有顺序不变
	if cached[0].Content != "third" {
		t.Errorf("cached[0].Content = %q, want %q", cached[0].Content, "third")
	}
	if cached[1].Uuid != "2" || cached[2].Uuid != "1" {
		t.Errorf("cache tail order = %s,%s, want 2,1", cached[1].Uuid, cached[2].Uuid)
	}
}
