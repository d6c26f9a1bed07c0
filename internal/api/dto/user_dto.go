package dto

// RegisterRequest 注册请求（multipart/form-data，头像与封面图作为文件字段）
type RegisterRequest struct {
	UserName string `form:"userName" binding:"required,username"`
	Email    string `form:"email" binding:"required,email,max=255"`
	FullName string `form:"fullName" binding:"required,min=1,max=255"`
	Password string `form:"password" binding:"required,min=6,max=128"`
}

// LoginRequest 登录请求，用户名与邮箱任填其一
type LoginRequest struct {
	UserName string `json:"userName" binding:"required_without=Email"`
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest 刷新令牌请求，cookie 中没有时从请求体读取
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6,max=128"`
}

// UpdateAccountRequest 更新账户信息
type UpdateAccountRequest struct {
	FullName string `json:"fullName" binding:"required,min=1,max=255"`
	Email    string `json:"email" binding:"required,email,max=255"`
}
