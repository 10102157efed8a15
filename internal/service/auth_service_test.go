package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aozora-fansite/internal/config"
	"github.com/aozora-fansite/internal/data"
	"github.com/aozora-fansite/internal/models"
	"github.com/aozora-fansite/internal/store"
)

func newTestAuthService(t *testing.T) (*AuthService, *data.Manager) {
	t.Helper()
	cfg := &config.Config{}
	cfg.JWT.SecretKey = "unit-test-secret-key-0123456789abcdef"
	cfg.Session.ExpireDays = 7
	m := data.NewManager(store.NewMemoryStore())
	return NewAuthService(cfg, m, nil), m
}

func TestRegisterAndLogin(t *testing.T) {
	s, _ := newTestAuthService(t)
	ctx := context.Background()

	user, token, err := s.Register(ctx, "sakura", "secret123", "secret123")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if token == "" {
		t.Fatalf("register should open a session and return a token")
	}
	if user.Role != models.RoleUser {
		t.Fatalf("new user role want user got %s", user.Role)
	}

	// 注册即登录
	current, err := s.CurrentUser(ctx)
	if err != nil {
		t.Fatalf("current user failed: %v", err)
	}
	if current == nil || current.Username != "sakura" {
		t.Fatalf("unexpected current user: %+v", current)
	}

	if _, _, err := s.Login(ctx, "sakura", "wrong-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password want ErrInvalidCredentials got %v", err)
	}
	if _, _, err := s.Login(ctx, "nobody", "secret123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown user want ErrInvalidCredentials got %v", err)
	}

	logged, token, err := s.Login(ctx, "sakura", "secret123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" || logged.LastLogin == "" {
		t.Fatalf("login should issue token and stamp last login")
	}
}

func TestRegisterValidation(t *testing.T) {
	s, _ := newTestAuthService(t)
	ctx := context.Background()

	cases := []struct {
		name     string
		username string
		password string
		confirm  string
	}{
		{name: "empty_fields", username: "", password: "", confirm: ""},
		{name: "password_mismatch", username: "sakura", password: "secret123", confirm: "secret124"},
		{name: "short_username", username: "ab", password: "secret123", confirm: "secret123"},
		{name: "short_password", username: "sakura", password: "12345", confirm: "12345"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, _, err := s.Register(ctx, tc.username, tc.password, tc.confirm); !errors.Is(err, ErrValidation) {
				t.Fatalf("want ErrValidation got %v", err)
			}
		})
	}

	// 中文用户名按字符数而非字节数校验
	if _, _, err := s.Register(ctx, "美咲酱", "secret123", "secret123"); err != nil {
		t.Fatalf("3-rune username should pass: %v", err)
	}

	if _, _, err := s.Register(ctx, "美咲酱", "secret123", "secret123"); !errors.Is(err, ErrValidation) {
		t.Fatalf("duplicate username want ErrValidation got %v", err)
	}
}

func TestLogoutClearsSession(t *testing.T) {
	s, _ := newTestAuthService(t)
	ctx := context.Background()

	user, _, err := s.Register(ctx, "sakura", "secret123", "secret123")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if err := s.Logout(ctx, user.ID); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	current, err := s.CurrentUser(ctx)
	if err != nil {
		t.Fatalf("current user failed: %v", err)
	}
	if current != nil {
		t.Fatalf("session should be cleared after logout")
	}
}

func TestLogoutRequiresSessionOwner(t *testing.T) {
	s, _ := newTestAuthService(t)
	ctx := context.Background()

	// 没有会话时登出是幂等的，游客也不报错
	if err := s.Logout(ctx, ""); err != nil {
		t.Fatalf("logout without session should be a no-op: %v", err)
	}

	user, _, err := s.Register(ctx, "sakura", "secret123", "secret123")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if err := s.Logout(ctx, ""); !errors.Is(err, ErrAuthRequired) {
		t.Fatalf("anonymous logout want ErrAuthRequired got %v", err)
	}
	if err := s.Logout(ctx, "someone-else"); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("non-owner logout want ErrPermissionDenied got %v", err)
	}
	if current, err := s.CurrentUser(ctx); err != nil || current == nil {
		t.Fatalf("session should survive rejected logout: %+v err=%v", current, err)
	}

	if err := s.Logout(ctx, user.ID); err != nil {
		t.Fatalf("owner logout failed: %v", err)
	}
}

func TestExpiredSessionLazilyCleared(t *testing.T) {
	s, m := newTestAuthService(t)
	ctx := context.Background()

	user, _, err := s.Register(ctx, "sakura", "secret123", "secret123")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	// 回拨会话过期时间
	expired := models.Session{
		UserID:    user.ID,
		Username:  user.Username,
		Role:      user.Role,
		LoginTime: time.Now().Add(-8 * 24 * time.Hour).Format(time.RFC3339),
		ExpiresAt: time.Now().Add(-time.Hour).Format(time.RFC3339),
	}
	if err := m.Put(ctx, data.CollectionSession, expired); err != nil {
		t.Fatalf("seed expired session failed: %v", err)
	}

	current, err := s.CurrentUser(ctx)
	if err != nil {
		t.Fatalf("current user failed: %v", err)
	}
	if current != nil {
		t.Fatalf("expired session should report logged out")
	}

	// 读取时惰性清除
	session := models.Session{}
	found, err := m.Load(ctx, data.CollectionSession, &session)
	if err != nil {
		t.Fatalf("load session failed: %v", err)
	}
	if found && session.UserID != "" {
		t.Fatalf("expired session should be removed, got %+v", session)
	}
}

func TestSweepExpiredSession(t *testing.T) {
	s, m := newTestAuthService(t)
	ctx := context.Background()

	user, _, err := s.Register(ctx, "sakura", "secret123", "secret123")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	// 未到期会话不动
	if err := s.SweepExpiredSession(ctx, user.ID); err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if current, _ := s.CurrentUser(ctx); current == nil {
		t.Fatalf("active session must survive sweep")
	}

	// 会话归属其它用户时不动
	if err := s.SweepExpiredSession(ctx, "someone-else"); err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if current, _ := s.CurrentUser(ctx); current == nil {
		t.Fatalf("sweep for another user must not clear session")
	}

	// 到期会话被清除
	expired := models.Session{
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(-time.Minute).Format(time.RFC3339),
	}
	if err := m.Put(ctx, data.CollectionSession, expired); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if err := s.SweepExpiredSession(ctx, user.ID); err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	session := models.Session{}
	found, _ := m.Load(ctx, data.CollectionSession, &session)
	if found && session.UserID != "" {
		t.Fatalf("expired session should be swept")
	}
}

func TestAdminLoginRejectsRegularUser(t *testing.T) {
	s, _ := newTestAuthService(t)
	ctx := context.Background()

	if _, _, err := s.Register(ctx, "sakura", "secret123", "secret123"); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, _, err := s.AdminLogin(ctx, "sakura", "secret123"); !errors.Is(err, ErrNotAdmin) {
		t.Fatalf("want ErrNotAdmin got %v", err)
	}
	// 拒绝的同时会话被回收
	if current, _ := s.CurrentUser(ctx); current != nil {
		t.Fatalf("rejected admin login must not leave a session")
	}
}

func TestEnsureAdminExists(t *testing.T) {
	s, _ := newTestAuthService(t)
	ctx := context.Background()

	if err := s.EnsureAdminExists(ctx); err != nil {
		t.Fatalf("ensure admin failed: %v", err)
	}
	admin, token, err := s.AdminLogin(ctx, "admin", "admin123")
	if err != nil {
		t.Fatalf("default admin login failed: %v", err)
	}
	if admin.Role != models.RoleAdmin || token == "" {
		t.Fatalf("unexpected admin login result: %+v", admin)
	}

	// 已有管理员时不重复创建
	if err := s.EnsureAdminExists(ctx); err != nil {
		t.Fatalf("second ensure failed: %v", err)
	}
	users, err := s.AllUsers(ctx, admin.ID)
	if err != nil {
		t.Fatalf("list users failed: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("users want 1 got %d", len(users))
	}
}

func TestEnsureAdminExistsEnvOverride(t *testing.T) {
	s, _ := newTestAuthService(t)
	ctx := context.Background()

	t.Setenv("AOZORA_DEFAULT_ADMIN_USERNAME", "root")
	t.Setenv("AOZORA_DEFAULT_ADMIN_PASSWORD", "super-secret-1")

	if err := s.EnsureAdminExists(ctx); err != nil {
		t.Fatalf("ensure admin failed: %v", err)
	}
	if _, _, err := s.AdminLogin(ctx, "root", "super-secret-1"); err != nil {
		t.Fatalf("env admin login failed: %v", err)
	}
}

func TestChangePassword(t *testing.T) {
	s, _ := newTestAuthService(t)
	ctx := context.Background()

	user, _, err := s.Register(ctx, "sakura", "secret123", "secret123")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if err := s.ChangePassword(ctx, user.ID, "wrong", "newsecret1", "newsecret1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong old password want ErrInvalidCredentials got %v", err)
	}
	if err := s.ChangePassword(ctx, user.ID, "secret123", "short", "short"); !errors.Is(err, ErrValidation) {
		t.Fatalf("short new password want ErrValidation got %v", err)
	}
	if err := s.ChangePassword(ctx, user.ID, "secret123", "newsecret1", "newsecret1"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}
	if _, _, err := s.Login(ctx, "sakura", "newsecret1"); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}
}

func TestChangeUserRoleRules(t *testing.T) {
	s, _ := newTestAuthService(t)
	ctx := context.Background()

	if err := s.EnsureAdminExists(ctx); err != nil {
		t.Fatalf("ensure admin failed: %v", err)
	}
	user, _, err := s.Register(ctx, "sakura", "secret123", "secret123")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	// 普通用户会话无权操作
	if _, err := s.ChangeUserRole(ctx, user.ID, user.ID, models.RoleAdmin); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("regular user want ErrPermissionDenied got %v", err)
	}

	admin, _, err := s.AdminLogin(ctx, "admin", "admin123")
	if err != nil {
		t.Fatalf("admin login failed: %v", err)
	}

	if _, err := s.ChangeUserRole(ctx, admin.ID, user.ID, "owner"); !errors.Is(err, ErrValidation) {
		t.Fatalf("unknown role want ErrValidation got %v", err)
	}
	if _, err := s.ChangeUserRole(ctx, admin.ID, admin.ID, models.RoleUser); !errors.Is(err, ErrValidation) {
		t.Fatalf("self role change want ErrValidation got %v", err)
	}

	updated, err := s.ChangeUserRole(ctx, admin.ID, user.ID, models.RoleAdmin)
	if err != nil {
		t.Fatalf("role change failed: %v", err)
	}
	if updated.Role != models.RoleAdmin {
		t.Fatalf("role want admin got %s", updated.Role)
	}
}

func TestDeleteUserRules(t *testing.T) {
	s, _ := newTestAuthService(t)
	ctx := context.Background()

	if err := s.EnsureAdminExists(ctx); err != nil {
		t.Fatalf("ensure admin failed: %v", err)
	}
	user, _, err := s.Register(ctx, "sakura", "secret123", "secret123")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	admin, _, err := s.AdminLogin(ctx, "admin", "admin123")
	if err != nil {
		t.Fatalf("admin login failed: %v", err)
	}

	if err := s.DeleteUser(ctx, admin.ID, admin.ID); !errors.Is(err, ErrValidation) {
		t.Fatalf("self delete want ErrValidation got %v", err)
	}
	if err := s.DeleteUser(ctx, admin.ID, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing user want ErrNotFound got %v", err)
	}
	if err := s.DeleteUser(ctx, admin.ID, user.ID); err != nil {
		t.Fatalf("delete user failed: %v", err)
	}
	if _, _, err := s.Login(ctx, "sakura", "secret123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("deleted user login want ErrInvalidCredentials got %v", err)
	}
}
