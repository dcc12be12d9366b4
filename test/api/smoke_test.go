package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"echoverse_server/internal/dto/request"
	"echoverse_server/internal/dto/respond"
	"echoverse_server/internal/handler"
	"echoverse_server/internal/https_server"
	"echoverse_server/internal/service"
	chat "echoverse_server/internal/service/chat"
	"echoverse_server/pkg/util/jwt"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type stubUserService struct{}

type stubRoomService struct{}

type stubActivityService struct{}

type stubMessageService struct{}

type stubFriendService struct{}

func (s stubUserService) Register(req request.RegisterRequest) (*respond.RegisterRespond, error) {
	return &respond.RegisterRespond{}, nil
}
func (s stubUserService) Login(req request.LoginRequest) (*respond.LoginRespond, error) {
	return &respond.LoginRespond{}, nil
}
func (s stubUserService) RefreshToken(refreshToken string) (*respond.RefreshTokenRespond, error) {
	return &respond.RefreshTokenRespond{}, nil
}
func (s stubUserService) GetUserInfo(uuid string) (*respond.GetUserInfoRespond, error) {
	return &respond.GetUserInfoRespond{}, nil
}
func (s stubUserService) UpdateUserInfo(uuid string, req request.UpdateUserInfoRequest) error {
	return nil
}
func (s stubUserService) SetStatus(uuid string, status string) error { return nil }

func (s stubRoomService) CreateRoom(creatorId string, req request.CreateRoomRequest) (*respond.RoomInfoRespond, error) {
	return &respond.RoomInfoRespond{}, nil
}
func (s stubRoomService) ListPublicRooms() ([]respond.RoomInfoRespond, error) {
	return []respond.RoomInfoRespond{}, nil
}
func (s stubRoomService) GetRoomInfo(roomUuid string) (*respond.RoomInfoRespond, error) {
	return &respond.RoomInfoRespond{}, nil
}
func (s stubRoomService) JoinRoom(userUuid, roomUuid string) (*respond.RoomInfoRespond, error) {
	return &respond.RoomInfoRespond{}, nil
}
func (s stubRoomService) JoinByCode(userUuid, roomCode string) (*respond.RoomInfoRespond, error) {
	return &respond.RoomInfoRespond{}, nil
}
func (s stubRoomService) LeaveRoom(userUuid, roomUuid string) error      { return nil }
func (s stubRoomService) DismissRoom(ownerUuid, roomUuid string) error   { return nil }
func (s stubRoomService) GetParticipants(roomUuid string) ([]respond.ParticipantRespond, error) {
	return []respond.ParticipantRespond{}, nil
}

func (s stubActivityService) GetState(roomUuid string) (*respond.ActivityStateRespond, error) {
	return &respond.ActivityStateRespond{}, nil
}
func (s stubActivityService) SelectItem(userUuid string, req request.ActivitySelectRequest) (*respond.ActivityStateRespond, error) {
	return &respond.ActivityStateRespond{}, nil
}
func (s stubActivityService) Play(userUuid string, req request.ActivityPlayRequest) (*respond.ActivityStateRespond, error) {
	return &respond.ActivityStateRespond{}, nil
}
func (s stubActivityService) Pause(userUuid string, req request.ActivityPauseRequest) (*respond.ActivityStateRespond, error) {
	return &respond.ActivityStateRespond{}, nil
}
func (s stubActivityService) Seek(userUuid string, req request.ActivitySeekRequest) (*respond.ActivityStateRespond, error) {
	return &respond.ActivityStateRespond{}, nil
}

func (s stubMessageService) GetHistory(userUuid string, req request.MessageHistoryRequest) ([]respond.MessageRespond, error) {
	return []respond.MessageRespond{}, nil
}

func (s stubFriendService) SendRequest(userUuid string, req request.ApplyFriendRequest) error {
	return nil
}
func (s stubFriendService) AcceptRequest(userUuid, requestUuid string) error  { return nil }
func (s stubFriendService) DeclineRequest(userUuid, requestUuid string) error { return nil }
func (s stubFriendService) ListFriends(userUuid string) ([]respond.FriendRespond, error) {
	return []respond.FriendRespond{}, nil
}
func (s stubFriendService) ListPendingRequests(userUuid string) ([]respond.FriendRequestRespond, error) {
	return []respond.FriendRequestRespond{}, nil
}

type stubBroker struct {
	clients sync.Map
}

func (b *stubBroker) Publish(ctx context.Context, msg []byte) error { return nil }
func (b *stubBroker) RegisterClient(client *chat.UserConn)          { b.clients.Store(client.Uuid, client) }
func (b *stubBroker) UnregisterClient(client *chat.UserConn)        { b.clients.Delete(client.Uuid) }
func (b *stubBroker) GetClient(userId string) *chat.UserConn {
	if v, ok := b.clients.Load(userId); ok {
		return v.(*chat.UserConn)
	}
	return nil
}
func (b *stubBroker) Start() {}
func (b *stubBroker) Close() {}

func mustJSON(t *testing.T, v any) io.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("json marshal: %v", err)
	}
	return bytes.NewReader(b)
}

func doReq(t *testing.T, client *http.Client, method, url string, body io.Reader, authHeader string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("do request %s %s: %v", method, url, err)
	}
	return resp
}

func requireNot5xxOr404(t *testing.T, path string, resp *http.Response) {
	t.Helper()
	if resp.StatusCode == http.StatusNotFound || resp.StatusCode >= 500 {
		t.Fatalf("%s status=%d", path, resp.StatusCode)
	}
}

func TestAllHTTPAndWebSocketEndpoints_Smoke(t *testing.T) {
	gin.SetMode(gin.TestMode)
	jwt.Init("test-secret", 15, 168)
	if err := handler.InitTrans("zh"); err != nil {
		t.Fatalf("init trans: %v", err)
	}

	broker := &stubBroker{}
	oldBroker := chat.GlobalBroker
	chat.GlobalBroker = broker
	defer func() { chat.GlobalBroker = oldBroker }()

	svcs := &service.Services{
		User:     stubUserService{},
		Room:     stubRoomService{},
		Activity: stubActivityService{},
		Message:  stubMessageService{},
		Friend:   stubFriendService{},
	}

	engine := https_server.Init(handler.NewHandlers(svcs))
	server := httptest.NewServer(engine)
	defer server.Close()

	client := &http.Client{Timeout: 5 * time.Second}

	accessToken, err := jwt.GenerateAccessToken("U_TEST")
	if err != nil {
		t.Fatalf("generate access token: %v", err)
	}
	authHeader := "Bearer " + accessToken

	refreshToken, _, err := jwt.GenerateRefreshToken("U_TEST")
	if err != nil {
		t.Fatalf("generate refresh token: %v", err)
	}

	// ===== 公共接口（无需鉴权） =====
	resp := doReq(t, client, http.MethodPost, server.URL+"/register", mustJSON(t, map[string]any{
		"username": "alice",
		"password": "secret123",
	}), "")
	requireNot5xxOr404(t, "/register", resp)
	_ = resp.Body.Close()

	resp = doReq(t, client, http.MethodPost, server.URL+"/login", mustJSON(t, map[string]any{
		"username": "alice",
		"password": "secret123",
	}), "")
	requireNot5xxOr404(t, "/login", resp)
	_ = resp.Body.Close()

	resp = doReq(t, client, http.MethodPost, server.URL+"/auth/refresh", mustJSON(t, map[string]any{
		"refresh_token": refreshToken,
	}), "")
	requireNot5xxOr404(t, "/auth/refresh", resp)
	_ = resp.Body.Close()

	// ===== 鉴权保护 =====
	resp = doReq(t, client, http.MethodGet, server.URL+"/user/info", nil, "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("/user/info without token status=%d, want 401", resp.StatusCode)
	}
	_ = resp.Body.Close()

	// Refresh Token 不能访问业务接口
	resp = doReq(t, client, http.MethodGet, server.URL+"/user/info", nil, "Bearer "+refreshToken)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("/user/info with refresh token status=%d, want 401", resp.StatusCode)
	}
	_ = resp.Body.Close()

	// ===== 用户接口 =====
	resp = doReq(t, client, http.MethodGet, server.URL+"/user/info?uuid=U_TEST", nil, authHeader)
	requireNot5xxOr404(t, "/user/info", resp)
	_ = resp.Body.Close()

	resp = doReq(t, client, http.MethodPost, server.URL+"/user/updateProfile", mustJSON(t, map[string]any{
		"display_name": "Alice",
	}), authHeader)
	requireNot5xxOr404(t, "/user/updateProfile", resp)
	_ = resp.Body.Close()

	resp = doReq(t, client, http.MethodPost, server.URL+"/user/status", mustJSON(t, map[string]any{
		"status": "online",
	}), authHeader)
	requireNot5xxOr404(t, "/user/status", resp)
	_ = resp.Body.Close()

	// ===== 房间接口 =====
	resp = doReq(t, client, http.MethodPost, server.URL+"/room/create", mustJSON(t, map[string]any{
		"name": "r",
		"type": "music",
	}), authHeader)
	requireNot5xxOr404(t, "/room/create", resp)
	_ = resp.Body.Close()

	resp = doReq(t, client, http.MethodGet, server.URL+"/room/list", nil, authHeader)
	requireNot5xxOr404(t, "/room/list", resp)
	_ = resp.Body.Close()

	resp = doReq(t, client, http.MethodGet, server.URL+"/room/info?room_uuid=R_1", nil, authHeader)
	requireNot5xxOr404(t, "/room/info", resp)
	_ = resp.Body.Close()

	for _, path := range []string{"/room/join", "/room/leave", "/room/dismiss"} {
		resp = doReq(t, client, http.MethodPost, server.URL+path, mustJSON(t, map[string]any{
			"room_uuid": "R_1",
		}), authHeader)
		requireNot5xxOr404(t, path, resp)
		_ = resp.Body.Close()
	}

	resp = doReq(t, client, http.MethodPost, server.URL+"/room/joinByCode", mustJSON(t, map[string]any{
		"room_code": "ABC234",
	}), authHeader)
	requireNot5xxOr404(t, "/room/joinByCode", resp)
	_ = resp.Body.Close()

	resp = doReq(t, client, http.MethodGet, server.URL+"/room/participants?room_uuid=R_1", nil, authHeader)
	requireNot5xxOr404(t, "/room/participants", resp)
	_ = resp.Body.Close()

	// ===== 活动接口 =====
	resp = doReq(t, client, http.MethodGet, server.URL+"/room/activity?room_uuid=R_1", nil, authHeader)
	requireNot5xxOr404(t, "/room/activity", resp)
	_ = resp.Body.Close()

	resp = doReq(t, client, http.MethodPost, server.URL+"/room/activity/select", mustJSON(t, map[string]any{
		"room_uuid": "R_1",
		"item_ref":  "track:1",
	}), authHeader)
	requireNot5xxOr404(t, "/room/activity/select", resp)
	_ = resp.Body.Close()

	for _, path := range []string{"/room/activity/play", "/room/activity/pause", "/room/activity/seek"} {
		resp = doReq(t, client, http.MethodPost, server.URL+path, mustJSON(t, map[string]any{
			"room_uuid":   "R_1",
			"position_ms": 1000,
		}), authHeader)
		requireNot5xxOr404(t, path, resp)
		_ = resp.Body.Close()
	}

	// ===== 消息接口 =====
	resp = doReq(t, client, http.MethodGet, server.URL+"/message/history?room_uuid=R_1&limit=20", nil, authHeader)
	requireNot5xxOr404(t, "/message/history", resp)
	_ = resp.Body.Close()

	// ===== 好友接口 =====
	resp = doReq(t, client, http.MethodPost, server.URL+"/friend/request", mustJSON(t, map[string]any{
		"friend_username": "bob",
	}), authHeader)
	requireNot5xxOr404(t, "/friend/request", resp)
	_ = resp.Body.Close()

	for _, path := range []string{"/friend/accept", "/friend/decline"} {
		resp = doReq(t, client, http.MethodPost, server.URL+path, mustJSON(t, map[string]any{
			"request_uuid": "F_1",
		}), authHeader)
		requireNot5xxOr404(t, path, resp)
		_ = resp.Body.Close()
	}

	resp = doReq(t, client, http.MethodGet, server.URL+"/friend/list", nil, authHeader)
	requireNot5xxOr404(t, "/friend/list", resp)
	_ = resp.Body.Close()

	resp = doReq(t, client, http.MethodGet, server.URL+"/friend/requests", nil, authHeader)
	requireNot5xxOr404(t, "/friend/requests", resp)
	_ = resp.Body.Close()

	// ===== WebSocket =====
	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/wss?token=" + accessToken
	conn, wsResp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("websocket dial: %v", err)
	}
	if wsResp != nil {
		_ = wsResp.Body.Close()
	}
	// 连接注册到 Broker 后客户端身份以令牌为准
	deadline := time.Now().Add(time.Second)
	for broker.GetClient("U_TEST") == nil {
		if time.Now().After(deadline) {
			t.Fatal("client not registered after websocket connect")
		}
		time.Sleep(10 * time.Millisecond)
	}
	_ = conn.Close()

	// 无令牌时不升级连接
	resp = doReq(t, client, http.MethodGet, server.URL+"/wss", nil, "")
	requireNot5xxOr404(t, "/wss", resp)
	_ = resp.Body.Close()

	// Refresh Token 不能用来建立连接，与 JWT 中间件的令牌类型校验一致
	badURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/wss?token=" + refreshToken
	badConn, badResp, err := websocket.DefaultDialer.Dial(badURL, nil)
	if err == nil {
		_ = badConn.Close()
		t.Fatal("websocket upgraded with a refresh token")
	}
	if badResp != nil {
		_ = badResp.Body.Close()
	}
}
