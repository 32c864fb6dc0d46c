package state

import "fmt"

// LoginForm 菜单中的名字输入框
// 图形界面和终端界面共用：按键转成 Type/Backspace/Submit/PlayAsGuest 调用
type LoginForm struct {
	profiles *SaveManager
	name     []rune

	// Message 最近一次操作的提示（欢迎语或错误）
	Message string
	// IsError Message 是否为错误提示
	IsError bool
}

// NewLoginForm 创建输入框，用上次登录的用户名预填
func NewLoginForm(profiles *SaveManager) *LoginForm {
	return &LoginForm{
		profiles: profiles,
		name:     []rune(profiles.LastUser()),
	}
}

// Name 返回当前输入的内容
func (f *LoginForm) Name() string {
	return string(f.name)
}

// Type 追加一个字符；不允许的字符或超长时忽略
func (f *LoginForm) Type(r rune) bool {
	if !IsUsernameRune(r) || len(f.name) >= maxUsernameLength {
		return false
	}
	f.name = append(f.name, r)
	return true
}

// Backspace 删除最后一个字符
func (f *LoginForm) Backspace() {
	if len(f.name) > 0 {
		f.name = f.name[:len(f.name)-1]
	}
}

// Submit 以输入的名字登录（不存在时创建）
// 返回 false 时 Message 为错误原因
func (f *LoginForm) Submit() bool {
	created, err := f.profiles.Login(f.Name())
	if err != nil {
		f.Message, f.IsError = err.Error(), true
		return false
	}

	f.IsError = false
	if created {
		f.Message = fmt.Sprintf("Welcome, %s!", f.profiles.DisplayName())
	} else {
		f.Message = fmt.Sprintf("Welcome back, %s!", f.profiles.DisplayName())
	}
	return true
}

// PlayAsGuest 以游客身份开始，得分不写入任何档案
func (f *LoginForm) PlayAsGuest() {
	f.profiles.PlayAsGuest()
	f.Message, f.IsError = "Playing as guest", false
}

// Profiles 返回底层的档案管理器
func (f *LoginForm) Profiles() *SaveManager {
	return f.profiles
}
