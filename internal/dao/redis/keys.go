// Package redis 缓存键名定义
// 键名集中管理，避免各 Service 拼接不一致
package redis

// OnlineUsersKey 在线用户集合键
const OnlineUsersKey = "online_users"

// UserStatusKey 用户状态键，值为 online/away/busy/offline
func UserStatusKey(userUuid string) string {
	return "user_status_" + userUuid
}

// AuthTokenKey 已签发 Refresh Token 键，单会话登录用
// 新登录覆盖旧值，旧会话的刷新请求随之失效
func AuthTokenKey(userUuid string) string {
	return "auth_token_" + userUuid
}
