package respond

// LoginRespond 用户登录响应
// 使用位置:
//   - internal/service/user/service.go: Login
type LoginRespond struct {
	Uuid         string `json:"uuid"`
	Username     string `json:"username"`
	DisplayName  string `json:"display_name"`
	Email        string `json:"email"`
	Avatar       string `json:"avatar"`
	Bio          string `json:"bio"`
	Status       string `json:"status"`
	CreatedAt    string `json:"created_at"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
