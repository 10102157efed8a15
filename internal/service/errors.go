package service

import (
	"errors"
	"fmt"
)

// 服务层错误分类，处理器通过 errors.Is 映射到响应码。
var (
	// ErrNotFound 记录不存在
	ErrNotFound = errors.New("记录不存在")
	// ErrValidation 输入校验失败
	ErrValidation = errors.New("输入校验失败")
	// ErrInvalidCredentials 用户名或密码错误（不区分具体原因）
	ErrInvalidCredentials = errors.New("用户名或密码错误")
	// ErrAuthRequired 未登录或会话已过期
	ErrAuthRequired = errors.New("请先登录")
	// ErrNotAdmin 非管理员账号
	ErrNotAdmin = errors.New("该账号不是管理员")
	// ErrPermissionDenied 已登录但权限不足
	ErrPermissionDenied = errors.New("没有权限执行此操作")
)

// validationError 返回携带用户可见消息的校验错误
func validationError(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}
