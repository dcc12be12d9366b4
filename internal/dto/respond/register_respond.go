package respond

// RegisterRespond 用户注册响应
// 注册成功即视为登录，直接下发令牌
// 使用位置:
//   - internal/service/user/service.go: Register
type RegisterRespond struct {
	Uuid         string `json:"uuid"`
	Username     string `json:"username"`
	DisplayName  string `json:"display_name"`
	Avatar       string `json:"avatar"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
