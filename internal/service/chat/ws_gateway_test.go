package chat

import (
	"context"
	"testing"
	"time"

	myredis "echoverse_server/internal/dao/redis"
	"echoverse_server/pkg/enum/user/presence_enum"
)

// waitFor 轮询直到条件满足或超时
func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal(msg)
}

func TestStandaloneServerLogoutClosesSendBack(t *testing.T) {
	s := NewStandaloneServer(nil, nil, nil, nil)
	go s.Start()
	defer s.Close()

	client := &UserConn{Uuid: "U_WS_1", SendBack: make(chan *MessageBack, 4)}
	s.RegisterClient(client)
	waitFor(t, func() bool { return s.GetClient("U_WS_1") != nil }, "client never registered")

	s.UnregisterClient(client)
	waitFor(t, func() bool { return s.GetClient("U_WS_1") == nil }, "client never unregistered")

	// 登出后 SendBack 由主循环关闭，不会再向其扇出
	select {
	case _, ok := <-client.SendBack:
		if ok {
			t.Error("SendBack delivered a value after logout")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("SendBack not closed after logout")
	}

	// 重复登出（读协程和 HTTP 登出可能各来一次）不触发二次 close
	s.UnregisterClient(client)
	time.Sleep(20 * time.Millisecond)
}

func TestStandaloneServerStaleLogoutKeepsReplacement(t *testing.T) {
	s := NewStandaloneServer(nil, nil, nil, nil)
	go s.Start()
	defer s.Close()

	old := &UserConn{Uuid: "U_WS_2", SendBack: make(chan *MessageBack, 4)}
	s.RegisterClient(old)
	waitFor(t, func() bool { return s.GetClient("U_WS_2") == old }, "old client never registered")

	// 同一用户重连，新连接顶替旧连接
	next := &UserConn{Uuid: "U_WS_2", SendBack: make(chan *MessageBack, 4)}
	s.RegisterClient(next)
	waitFor(t, func() bool { return s.GetClient("U_WS_2") == next }, "replacement never registered")

	// 旧连接晚到的登出不影响新连接
	s.UnregisterClient(old)
	time.Sleep(20 * time.Millisecond)
	if s.GetClient("U_WS_2") != next {
		t.Fatal("stale logout removed the replacement connection")
	}
	select {
	case _, ok := <-next.SendBack:
		if !ok {
			t.Error("stale logout closed the replacement SendBack")
		}
	default:
	}
}

func TestMarkClientPresence(t *testing.T) {
	cache := newFakeCache()
	prev := presenceCache
	presenceCache = cache
	defer func() { presenceCache = prev }()

	markClientOnline("U_WS_3")
	status, _ := cache.Get(context.Background(), myredis.UserStatusKey("U_WS_3"))
	if status != presence_enum.ONLINE {
		t.Errorf("status after connect = %q, want %q", status, presence_enum.ONLINE)
	}
	if ok, _ := cache.IsSetMember(context.Background(), myredis.OnlineUsersKey, "U_WS_3"); !ok {
		t.Error("user not in online set after connect")
	}

	markClientOffline("U_WS_3")
	status, _ = cache.Get(context.Background(), myredis.UserStatusKey("U_WS_3"))
	if status != presence_enum.OFFLINE {
		t.Errorf("status after disconnect = %q, want %q", status, presence_enum.OFFLINE)
	}
	if ok, _ := cache.IsSetMember(context.Background(), myredis.OnlineUsersKey, "U_WS_3"); ok {
		t.Error("user still in online set after disconnect")
	}
}
