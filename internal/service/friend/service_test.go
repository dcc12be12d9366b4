package friend

import (
	"testing"

	"echoverse_server/internal/dao/mysql/repository"
	"echoverse_server/internal/dao/mysql/repository/repositorytest"
	"echoverse_server/internal/dto/request"
	"echoverse_server/internal/model"
	"echoverse_server/pkg/errorx"
)

func newTestService(t *testing.T) *friendService {
	t.Helper()
	repos := repositorytest.NewStore().Repositories()
	seedUser(t, repos, "U_1", "alice")
	seedUser(t, repos, "U_2", "bob")
	seedUser(t, repos, "U_3", "carol")
	return NewFriendService(repos, nil)
}

func seedUser(t *testing.T, repos *repository.Repositories, uuid, username string) {
	t.Helper()
	if err := repos.User.Create(&model.UserInfo{
		Uuid: uuid, Username: username, DisplayName: username, RawPassword: "secret123",
	}); err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
}

func pendingUuid(t *testing.T, svc *friendService, userUuid string) string {
	t.Helper()
	list, err := svc.ListPendingRequests(userUuid)
	if err != nil {
		t.Fatalf("ListPendingRequests: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("pending requests = %d, want 1", len(list))
	}
	return list[0].RequestUuid
}

func TestSendRequest(t *testing.T) {
	svc := newTestService(t)

	if err := svc.SendRequest("U_1", request.ApplyFriendRequest{FriendUsername: "bob", Message: "一起听歌吗"}); err != nil {
		t.Fatalf("SendRequest: %v", err)
	}

	list, err := svc.ListPendingRequests("U_2")
	if err != nil {
		t.Fatalf("ListPendingRequests: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("pending requests = %d, want 1", len(list))
	}
	if list[0].FromUuid != "U_1" || list[0].FromName != "alice" {
		t.Errorf("request from = %s/%s, want U_1/alice", list[0].FromUuid, list[0].FromName)
	}
	if list[0].Message != "一起听歌吗" {
		t.Errorf("message = %s", list[0].Message)
	}

	// 发起方看不到这条申请
	mine, _ := svc.ListPendingRequests("U_1")
	if len(mine) != 0 {
		t.Errorf("sender pending requests = %d, want 0", len(mine))
	}
}

func TestSendRequestGuards(t *testing.T) {
	svc := newTestService(t)

	// 不能加自己
	if err := svc.SendRequest("U_1", request.ApplyFriendRequest{FriendUsername: "alice"}); err == nil {
		t.Fatal("expected error when adding self")
	}
	// 目标用户不存在
	if err := svc.SendRequest("U_1", request.ApplyFriendRequest{FriendUsername: "nobody"}); err == nil {
		t.Fatal("expected error for unknown username")
	}

	// 重复申请
	_ = svc.SendRequest("U_1", request.ApplyFriendRequest{FriendUsername: "bob"})
	if err := svc.SendRequest("U_1", request.ApplyFriendRequest{FriendUsername: "bob"}); err == nil {
		t.Fatal("expected error for duplicate request")
	}
	// 对方已向自己发起申请
	if err := svc.SendRequest("U_2", request.ApplyFriendRequest{FriendUsername: "alice"}); err == nil {
		t.Fatal("expected error when reverse request is pending")
	}
}

func TestAcceptRequest(t *testing.T) {
	svc := newTestService(t)
	_ = svc.SendRequest("U_1", request.ApplyFriendRequest{FriendUsername: "bob"})
	reqUuid := pendingUuid(t, svc, "U_2")

	// 只有接收方能处理申请
	if err := svc.AcceptRequest("U_3", reqUuid); errorx.GetCode(err) != errorx.CodeUnauthorized {
		t.Fatalf("accept by stranger err = %v, want CodeUnauthorized", err)
	}

	if err := svc.AcceptRequest("U_2", reqUuid); err != nil {
		t.Fatalf("AcceptRequest: %v", err)
	}

	// 双向边都已写入，两边的好友列表互相可见
	for _, tc := range []struct{ owner, friend string }{{"U_1", "U_2"}, {"U_2", "U_1"}} {
		friends, err := svc.ListFriends(tc.owner)
		if err != nil {
			t.Fatalf("ListFriends(%s): %v", tc.owner, err)
		}
		if len(friends) != 1 || friends[0].UserUuid != tc.friend {
			t.Errorf("friends of %s = %+v, want [%s]", tc.owner, friends, tc.friend)
		}
	}

	// 已处理的申请不能再次接受
	if err := svc.AcceptRequest("U_2", reqUuid); err == nil {
		t.Error("expected error when accepting an already handled request")
	}
	// 待处理列表已清空
	left, _ := svc.ListPendingRequests("U_2")
	if len(left) != 0 {
		t.Errorf("pending after accept = %d, want 0", len(left))
	}
}

func TestDeclineRequest(t *testing.T) {
	svc := newTestService(t)
	_ = svc.SendRequest("U_1", request.ApplyFriendRequest{FriendUsername: "bob"})
	reqUuid := pendingUuid(t, svc, "U_2")

	if err := svc.DeclineRequest("U_3", reqUuid); errorx.GetCode(err) != errorx.CodeUnauthorized {
		t.Fatalf("decline by stranger err = %v, want CodeUnauthorized", err)
	}
	if err := svc.DeclineRequest("U_2", reqUuid); err != nil {
		t.Fatalf("DeclineRequest: %v", err)
	}

	friends, _ := svc.ListFriends("U_1")
	if len(friends) != 0 {
		t.Errorf("friends after decline = %d, want 0", len(friends))
	}

	// 拒绝后可以再次发起申请
	if err := svc.SendRequest("U_1", request.ApplyFriendRequest{FriendUsername: "bob"}); err != nil {
		t.Fatalf("re-request after decline: %v", err)
	}
}
