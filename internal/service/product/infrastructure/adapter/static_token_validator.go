// internal/service/product/infrastructure/adapter/static_token_validator.go
package adapter

import (
	"strings"

	"catalog/internal/service/product/domain"
)

// StaticTokenValidator 用配置中的共享密钥校验 Bearer token。
// token 对本服务是不透明的，这里只做等值比对；
// 接入真正的签发方时替换这个实现即可。
type StaticTokenValidator struct {
	apiSecret string
}

func NewStaticTokenValidator(apiSecret string) *StaticTokenValidator {
	return &StaticTokenValidator{apiSecret: apiSecret}
}

func (v *StaticTokenValidator) ValidateAuthorization(token string) error {
	if token == "" {
		return domain.NewValidationError("The access token was not informed.")
	}
	token = strings.TrimPrefix(token, "Bearer ")
	if token != v.apiSecret {
		return domain.NewValidationError("The provided token is not valid.")
	}
	return nil
}
