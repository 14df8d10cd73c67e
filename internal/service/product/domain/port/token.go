// internal/service/product/domain/port/token.go
package port

// TokenValidator 校验入站请求的 Authorization 头。
// 对本核心而言 token 是不透明的，具体校验方式由外部协作方决定。
type TokenValidator interface {
	ValidateAuthorization(token string) error
}
