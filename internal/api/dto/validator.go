package dto

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var userNamePattern = regexp.MustCompile(`^[a-zA-Z0-9_.]{3,32}$`)

// validateUserName 用户名：3-32 位字母、数字、下划线或点
func validateUserName(fl validator.FieldLevel) bool {
	return userNamePattern.MatchString(fl.Field().String())
}

// RegisterValidators 在 gin 的校验引擎上注册自定义规则
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("username", validateUserName)
}
