package service

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/aozora-fansite/internal/config"
	"github.com/aozora-fansite/internal/data"
	"github.com/aozora-fansite/internal/logger"
	"github.com/aozora-fansite/internal/models"
	"github.com/aozora-fansite/internal/queue"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	defaultSessionExpireDays = 7
	defaultAdminUsername     = "admin"
	defaultAdminPassword     = "admin123"
)

// AuthService 用户认证与会话服务
type AuthService struct {
	cfg         *config.Config
	manager     *data.Manager
	queueClient *queue.Client
}

// NewAuthService 创建认证服务
func NewAuthService(cfg *config.Config, m *data.Manager, queueClient *queue.Client) *AuthService {
	return &AuthService{
		cfg:         cfg,
		manager:     m,
		queueClient: queueClient,
	}
}

// JWTClaims 用户 JWT 声明
type JWTClaims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

func (s *AuthService) sessionTTL() time.Duration {
	days := s.cfg.Session.ExpireDays
	if days <= 0 {
		days = defaultSessionExpireDays
	}
	return time.Duration(days) * 24 * time.Hour
}

// GenerateJWT 签发与会话同寿命的 JWT Token
func (s *AuthService) GenerateJWT(user *models.User) (string, time.Time, error) {
	expiresAt := time.Now().Add(s.sessionTTL())
	claims := JWTClaims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.JWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

func (s *AuthService) loadUsers(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	if _, err := s.manager.Load(ctx, data.CollectionUsers, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *AuthService) saveUsers(ctx context.Context, users []models.User) error {
	return s.manager.Put(ctx, data.CollectionUsers, users)
}

func (s *AuthService) findUser(users []models.User, id string) *models.User {
	for i := range users {
		if users[i].ID == id {
			return &users[i]
		}
	}
	return nil
}

// Register 用户注册，成功后立即登录
func (s *AuthService) Register(ctx context.Context, username, password, confirm string) (*models.PublicUser, string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" || confirm == "" {
		return nil, "", validationError("请填写完整的注册信息")
	}
	if password != confirm {
		return nil, "", validationError("两次输入的密码不一致")
	}
	if len([]rune(username)) < 3 {
		return nil, "", validationError("用户名至少需要3个字符")
	}
	if len(password) < 6 {
		return nil, "", validationError("密码至少需要6个字符")
	}

	users, err := s.loadUsers(ctx)
	if err != nil {
		return nil, "", err
	}
	for i := range users {
		if users[i].Username == username {
			return nil, "", validationError("用户名已被注册")
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := models.User{
		ID:           data.GenerateID(),
		Username:     username,
		Password:     string(hash),
		Role:         models.RoleUser,
		RegisterDate: time.Now().Format(time.RFC3339),
	}
	users = append(users, user)
	if err := s.saveUsers(ctx, users); err != nil {
		return nil, "", err
	}
	logger.Infow("user_registered", "user_id", user.ID, "username", user.Username)

	token, err := s.openSession(ctx, &user)
	if err != nil {
		return nil, "", err
	}
	return user.Sanitize(), token, nil
}

// Login 用户登录。用户不存在与密码错误返回同一错误，不泄露具体原因。
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.PublicUser, string, error) {
	username = strings.TrimSpace(username)
	users, err := s.loadUsers(ctx)
	if err != nil {
		return nil, "", err
	}

	var user *models.User
	for i := range users {
		if users[i].Username == username {
			user = &users[i]
			break
		}
	}
	if user == nil {
		return nil, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	user.LastLogin = time.Now().Format(time.RFC3339)
	if err := s.saveUsers(ctx, users); err != nil {
		return nil, "", err
	}

	token, err := s.openSession(ctx, user)
	if err != nil {
		return nil, "", err
	}
	logger.Infow("user_login", "user_id", user.ID, "username", user.Username)
	return user.Sanitize(), token, nil
}

// AdminLogin 管理员登录，非管理员账号登录后立即登出并拒绝
func (s *AuthService) AdminLogin(ctx context.Context, username, password string) (*models.PublicUser, string, error) {
	user, token, err := s.Login(ctx, username, password)
	if err != nil {
		return nil, "", err
	}
	if user.Role != models.RoleAdmin {
		if err := s.clearSession(ctx); err != nil {
			logger.Warnw("admin_login_rollback_failed", "user_id", user.ID, "error", err)
		}
		return nil, "", ErrNotAdmin
	}
	return user, token, nil
}

func (s *AuthService) openSession(ctx context.Context, user *models.User) (string, error) {
	now := time.Now()
	session := models.Session{
		UserID:    user.ID,
		Username:  user.Username,
		Role:      user.Role,
		LoginTime: now.Format(time.RFC3339),
		ExpiresAt: now.Add(s.sessionTTL()).Format(time.RFC3339),
	}
	if err := s.manager.Put(ctx, data.CollectionSession, session); err != nil {
		return "", err
	}

	if err := s.queueClient.EnqueueSessionSweep(queue.SessionSweepPayload{UserID: user.ID}, s.sessionTTL()); err != nil {
		logger.Warnw("session_sweep_enqueue_failed", "user_id", user.ID, "error", err)
	}

	token, _, err := s.GenerateJWT(user)
	if err != nil {
		return "", err
	}
	return token, nil
}

// Logout 清除调用者本人的会话。
// 会话不存在时视为已登出；存在但不属于调用者时拒绝。
func (s *AuthService) Logout(ctx context.Context, callerID string) error {
	session := models.Session{}
	found, err := s.manager.Load(ctx, data.CollectionSession, &session)
	if err != nil {
		return err
	}
	if !found || session.UserID == "" {
		return nil
	}
	if callerID == "" {
		return ErrAuthRequired
	}
	if session.UserID != callerID {
		return ErrPermissionDenied
	}
	return s.clearSession(ctx)
}

func (s *AuthService) clearSession(ctx context.Context) error {
	return s.manager.Remove(ctx, data.CollectionSession)
}

// CurrentUser 返回当前会话对应的用户视图。
// 无会话、会话过期或用户已不存在时返回 nil，并顺带清除失效会话。
func (s *AuthService) CurrentUser(ctx context.Context) (*models.PublicUser, error) {
	user, err := s.sessionUser(ctx, "")
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	return user.Sanitize(), nil
}

// SessionUser 校验会话归属并返回完整用户记录，供鉴权中间件使用
func (s *AuthService) SessionUser(ctx context.Context, userID string) (*models.User, error) {
	return s.sessionUser(ctx, userID)
}

func (s *AuthService) sessionUser(ctx context.Context, expectUserID string) (*models.User, error) {
	session := models.Session{}
	found, err := s.manager.Load(ctx, data.CollectionSession, &session)
	if err != nil {
		return nil, err
	}
	if !found || session.UserID == "" {
		return nil, nil
	}

	expiresAt, err := time.Parse(time.RFC3339, session.ExpiresAt)
	if err != nil || !expiresAt.After(time.Now()) {
		// 过期会话在读取时惰性清除
		if removeErr := s.manager.Remove(ctx, data.CollectionSession); removeErr != nil {
			logger.Warnw("session_clear_failed", "error", removeErr)
		}
		return nil, nil
	}
	if expectUserID != "" && session.UserID != expectUserID {
		return nil, nil
	}

	users, err := s.loadUsers(ctx)
	if err != nil {
		return nil, err
	}
	user := s.findUser(users, session.UserID)
	if user == nil {
		if removeErr := s.manager.Remove(ctx, data.CollectionSession); removeErr != nil {
			logger.Warnw("session_clear_failed", "error", removeErr)
		}
		return nil, nil
	}
	return user, nil
}

// SweepExpiredSession 清除已到期的会话，未到期时不动作。供队列 worker 调用。
func (s *AuthService) SweepExpiredSession(ctx context.Context, userID string) error {
	session := models.Session{}
	found, err := s.manager.Load(ctx, data.CollectionSession, &session)
	if err != nil {
		return err
	}
	if !found || session.UserID != userID {
		return nil
	}
	expiresAt, err := time.Parse(time.RFC3339, session.ExpiresAt)
	if err == nil && expiresAt.After(time.Now()) {
		return nil
	}
	logger.Infow("session_swept", "user_id", userID)
	return s.manager.Remove(ctx, data.CollectionSession)
}

// ChangePassword 修改密码
func (s *AuthService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword, confirm string) error {
	if oldPassword == "" || newPassword == "" || confirm == "" {
		return validationError("请填写完整的密码信息")
	}
	if newPassword != confirm {
		return validationError("两次输入的新密码不一致")
	}
	if len(newPassword) < 6 {
		return validationError("新密码至少需要6个字符")
	}

	users, err := s.loadUsers(ctx)
	if err != nil {
		return err
	}
	user := s.findUser(users, userID)
	if user == nil {
		return ErrNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hash)
	return s.saveUsers(ctx, users)
}

func (s *AuthService) requireAdmin(ctx context.Context, actingUserID string) (*models.User, error) {
	acting, err := s.sessionUser(ctx, actingUserID)
	if err != nil {
		return nil, err
	}
	if acting == nil {
		return nil, ErrAuthRequired
	}
	if !acting.IsAdmin() {
		return nil, ErrPermissionDenied
	}
	return acting, nil
}

// AllUsers 获取全部用户（仅管理员）
func (s *AuthService) AllUsers(ctx context.Context, actingUserID string) ([]*models.PublicUser, error) {
	if _, err := s.requireAdmin(ctx, actingUserID); err != nil {
		return nil, err
	}
	users, err := s.loadUsers(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]*models.PublicUser, 0, len(users))
	for i := range users {
		views = append(views, users[i].Sanitize())
	}
	return views, nil
}

// ChangeUserRole 调整用户角色（仅管理员，不允许调整自己的角色）
func (s *AuthService) ChangeUserRole(ctx context.Context, actingUserID, targetUserID, role string) (*models.PublicUser, error) {
	acting, err := s.requireAdmin(ctx, actingUserID)
	if err != nil {
		return nil, err
	}
	if role != models.RoleUser && role != models.RoleAdmin {
		return nil, validationError("未知的用户角色")
	}
	if targetUserID == acting.ID {
		return nil, validationError("不能修改自己的角色")
	}

	users, err := s.loadUsers(ctx)
	if err != nil {
		return nil, err
	}
	target := s.findUser(users, targetUserID)
	if target == nil {
		return nil, ErrNotFound
	}
	target.Role = role
	if err := s.saveUsers(ctx, users); err != nil {
		return nil, err
	}
	logger.Infow("user_role_changed", "user_id", target.ID, "role", role, "operator_id", acting.ID)
	return target.Sanitize(), nil
}

// DeleteUser 删除用户（仅管理员，不允许删除自己）。
// 不级联清理该用户的评论与点赞，孤儿引用被容忍。
func (s *AuthService) DeleteUser(ctx context.Context, actingUserID, targetUserID string) error {
	acting, err := s.requireAdmin(ctx, actingUserID)
	if err != nil {
		return err
	}
	if targetUserID == acting.ID {
		return validationError("不能删除自己的账号")
	}

	users, err := s.loadUsers(ctx)
	if err != nil {
		return err
	}
	kept := users[:0]
	removed := false
	for _, user := range users {
		if user.ID == targetUserID {
			removed = true
			continue
		}
		kept = append(kept, user)
	}
	if !removed {
		return ErrNotFound
	}
	if err := s.saveUsers(ctx, kept); err != nil {
		return err
	}
	logger.Infow("user_deleted", "user_id", targetUserID, "operator_id", acting.ID)
	return nil
}

// EnsureAdminExists 启动时保证至少存在一个管理员账号。
// 默认凭据可通过 AOZORA_DEFAULT_ADMIN_USERNAME / AOZORA_DEFAULT_ADMIN_PASSWORD 覆盖。
func (s *AuthService) EnsureAdminExists(ctx context.Context) error {
	users, err := s.loadUsers(ctx)
	if err != nil {
		return err
	}
	for i := range users {
		if users[i].IsAdmin() {
			return nil
		}
	}

	username := strings.TrimSpace(os.Getenv("AOZORA_DEFAULT_ADMIN_USERNAME"))
	if username == "" {
		username = defaultAdminUsername
	}
	password := os.Getenv("AOZORA_DEFAULT_ADMIN_PASSWORD")
	if password == "" {
		password = defaultAdminPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := models.User{
		ID:           data.GenerateID(),
		Username:     username,
		Password:     string(hash),
		Role:         models.RoleAdmin,
		RegisterDate: time.Now().Format(time.RFC3339),
	}
	users = append(users, admin)
	if err := s.saveUsers(ctx, users); err != nil {
		return err
	}

	if password == defaultAdminPassword {
		logger.Warnw("default_admin_created_with_default_password", "username", username)
		logger.Warnw("default_admin_password_change_required", "username", username)
	} else {
		logger.Warnw("default_admin_created", "username", username, "password_hidden", true)
	}
	return nil
}
