package dto

import "vortex-go/internal/model"

// LoginData 登录/刷新令牌返回的数据
type LoginData struct {
	User         *model.User `json:"user,omitempty"`
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
}
