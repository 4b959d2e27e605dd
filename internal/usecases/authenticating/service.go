package authenticating

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/vfg2006/opsboard-api/infrastructure/repository"
	"github.com/vfg2006/opsboard-api/internal/config"
	"github.com/vfg2006/opsboard-api/internal/domain"
	"github.com/vfg2006/opsboard-api/pkg/apiErrors"
	"github.com/vfg2006/opsboard-api/pkg/log"
	"github.com/vfg2006/opsboard-api/pkg/utils"
	"golang.org/x/crypto/bcrypt"
)

const (
	tokenTTL               = 24 * time.Hour
	minPasswordLength      = 8
	generatedPasswordChars = 12
)

const (
	lowerChars   = "abcdefghijklmnopqrstuvwxyz"
	upperChars   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	numberChars  = "0123456789"
	specialChars = "!@#$%^&*()-_=+[]{}|;:,.<>?"
)

type Authenticator interface {
	CreateUser(ctx context.Context, req *domain.CreateUserRequest) (*domain.User, error)
	LoginUser(ctx context.Context, email, password string) (string, error)
	Logout(tokenString string) error
	ValidateToken(tokenString string) (*domain.Claims, error)
	GetUserProfile(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, req *domain.UpdateProfileRequest) (*domain.User, error)
	GenerateStrongPassword(ctx context.Context, requestUserID, targetUserID string) (string, error)
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
	ValidatePasswordStrength(password string) error
}

type Service struct {
	userRepo repository.UserRepository
	cfg      *config.Config
	revoked  *revocationList
	now      func() time.Time
}

func NewService(userRepo repository.UserRepository, cfg *config.Config) Authenticator {
	return &Service{
		userRepo: userRepo,
		cfg:      cfg,
		revoked:  newRevocationList(),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) CreateUser(ctx context.Context, req *domain.CreateUserRequest) (*domain.User, error) {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return nil, NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "Nome, email e senha são obrigatórios")
	}

	role := req.Role
	if role == "" {
		role = domain.UserRoleMember
	}
	if !role.IsValid() {
		return nil, NewAuthError(ErrInvalidRole, apiErrors.ErrInvalidValue, fmt.Sprintf("perfil desconhecido: %s", role))
	}

	if err := s.ValidatePasswordStrength(req.Password); err != nil {
		return nil, err
	}

	email := handleEmail(req.Email)

	existing, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("Erro ao consultar usuário por email")
		return nil, NewAuthError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao consultar usuário")
	}
	if existing != nil {
		return nil, NewAuthError(ErrUserAlreadyExists, apiErrors.ErrUserAlreadyExists, "Email já cadastrado")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, NewAuthError(err, apiErrors.ErrInternalServer, "Erro ao gerar hash da senha")
	}

	now := s.now()
	user := &domain.User{
		ID:           utils.GenerateID(),
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         role,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		log.ForContext(ctx).WithError(err).Error("Erro ao criar usuário")
		return nil, NewAuthError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao criar usuário")
	}

	user.PasswordHash = ""
	return user, nil
}

func handleEmail(s string) string {
	email := strings.ToLower(s)
	email = strings.TrimSpace(email)
	email = strings.ReplaceAll(email, " ", "")
	return email
}

func (s *Service) LoginUser(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "Email e senha são obrigatórios")
	}

	email = handleEmail(email)

	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("Erro ao consultar usuário no login")
		return "", NewAuthError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao consultar usuário no banco de dados")
	}

	if user == nil {
		return "", NewAuthError(ErrUserNotFound, apiErrors.ErrUserNotFound, "Usuário não encontrado")
	}

	if !user.Active {
		return "", NewUserAuthError(ErrUserDisabled, apiErrors.ErrUserDisabled, user.ID, "Conta desativada")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", NewUserAuthError(ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, user.ID, "Senha incorreta")
	}

	token, err := s.generateJWT(user)
	if err != nil {
		return "", NewAuthError(err, apiErrors.ErrInternalServer, "Erro ao gerar token de autenticação")
	}

	log.ForContext(ctx).WithField("user_id", user.ID).Info("Login realizado")
	return token, nil
}

// Logout invalida o token até a expiração original dele
func (s *Service) Logout(tokenString string) error {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return err
	}

	expiresAt := s.now().Add(tokenTTL)
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}

	s.revoked.Add(tokenString, expiresAt, s.now())
	return nil
}

func (s *Service) GetUserProfile(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *Service) UpdateProfile(ctx context.Context, req *domain.UpdateProfileRequest) (*domain.User, error) {
	user, err := s.getUser(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, NewUserAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, user.ID, "Nome não pode ser vazio")
		}
		user.Name = name
	}

	if req.AvatarURL != nil {
		user.AvatarURL = utils.NullIfBlank(req.AvatarURL)
	}

	user.UpdatedAt = s.now()

	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		log.ForContext(ctx).WithError(err).WithField("user_id", user.ID).Error("Erro ao atualizar perfil")
		return nil, NewUserAuthError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, user.ID, "Erro ao atualizar perfil")
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *Service) getUser(ctx context.Context, userID string) (*domain.User, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "ID do usuário é obrigatório")
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		log.ForContext(ctx).WithError(err).WithField("user_id", userID).Error("Erro ao buscar usuário")
		return nil, NewUserAuthError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, userID, "Erro ao buscar usuário")
	}
	if user == nil {
		return nil, NewUserAuthError(ErrUserNotFound, apiErrors.ErrUserNotFound, userID, "Usuário não encontrado")
	}

	return user, nil
}

func (s *Service) generateJWT(user *domain.User) (string, error) {
	now := s.now()
	claims := domain.Claims{
		UserID:    user.ID,
		UserName:  user.Name,
		UserEmail: user.Email,
		UserRole:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.SecretKey))
}

func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	if s.revoked.Contains(tokenString, s.now()) {
		return nil, NewAuthError(ErrRevokedToken, apiErrors.ErrInvalidToken, "Token revogado por logout")
	}

	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.SecretKey), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, NewAuthError(ErrExpiredToken, apiErrors.ErrExpiredToken, "Token expirado")
		}
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, err.Error())
	}

	claims, ok := token.Claims.(*domain.Claims)
	if !ok || !token.Valid {
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, "Token inválido")
	}

	return claims, nil
}

// GenerateStrongPassword gera uma nova senha para o usuário alvo.
// Só administradores podem redefinir a senha de outra pessoa.
func (s *Service) GenerateStrongPassword(ctx context.Context, requestUserID, targetUserID string) (string, error) {
	requestUser, err := s.getUser(ctx, requestUserID)
	if err != nil {
		return "", err
	}
	if requestUser.Role != domain.UserRoleAdmin {
		return "", NewUserAuthError(ErrInsufficientPrivilege, apiErrors.ErrInsufficientPrivilege, requestUserID, "Apenas administradores podem gerar novas senhas")
	}

	targetUser, err := s.getUser(ctx, targetUserID)
	if err != nil {
		return "", err
	}

	newPassword, err := GeneratePassword(generatedPasswordChars)
	if err != nil {
		return "", NewAuthError(err, apiErrors.ErrInternalServer, "Erro ao gerar senha")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return "", NewAuthError(err, apiErrors.ErrInternalServer, "Erro ao gerar hash da senha")
	}

	targetUser.PasswordHash = string(hashedPassword)
	targetUser.UpdatedAt = s.now()
	if err := s.userRepo.UpdateUser(ctx, targetUser); err != nil {
		log.ForContext(ctx).WithError(err).WithField("user_id", targetUserID).Error("Erro ao salvar nova senha")
		return "", NewUserAuthError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, targetUserID, "Erro ao salvar nova senha")
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"user_id":        requestUserID,
		"user_target_id": targetUserID,
	}).Info("Senha redefinida por administrador")

	return newPassword, nil
}

// GeneratePassword gera uma senha forte com o comprimento especificado,
// com pelo menos uma letra maiúscula, uma minúscula, um número e um caractere especial
func GeneratePassword(length int) (string, error) {
	if length < minPasswordLength {
		length = minPasswordLength
	}

	password := make([]byte, length)

	for i, charset := range []string{lowerChars, upperChars, numberChars, specialChars} {
		randomChar, err := getRandomChar(charset)
		if err != nil {
			return "", err
		}
		password[i] = randomChar
	}

	allChars := lowerChars + upperChars + numberChars + specialChars
	for i := 4; i < length; i++ {
		randomChar, err := getRandomChar(allChars)
		if err != nil {
			return "", err
		}
		password[i] = randomChar
	}

	// embaralha para não deixar os quatro primeiros previsíveis
	for i := range password {
		j, err := randomInt(int64(len(password)))
		if err != nil {
			return "", err
		}
		password[i], password[j] = password[j], password[i]
	}

	return string(password), nil
}

func getRandomChar(charset string) (byte, error) {
	n, err := randomInt(int64(len(charset)))
	if err != nil {
		return 0, err
	}
	return charset[n], nil
}

func randomInt(max int64) (int, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(max))
	if err != nil {
		return 0, err
	}
	return int(n.Int64()), nil
}

// ValidatePasswordStrength exige pelo menos 8 caracteres com maiúsculas,
// minúsculas, números e caracteres especiais
func (s *Service) ValidatePasswordStrength(password string) error {
	weak := func(details string) error {
		return NewAuthError(ErrWeakPassword, apiErrors.ErrInvalidValue, details)
	}

	if len(password) < minPasswordLength {
		return weak("a senha deve conter pelo menos 8 caracteres")
	}

	var hasUpper, hasLower, hasNumber, hasSpecial bool

	for _, char := range password {
		switch {
		case strings.ContainsRune(lowerChars, char):
			hasLower = true
		case strings.ContainsRune(upperChars, char):
			hasUpper = true
		case strings.ContainsRune(numberChars, char):
			hasNumber = true
		case strings.ContainsRune(specialChars, char):
			hasSpecial = true
		}
	}

	if !hasUpper {
		return weak("a senha deve conter pelo menos uma letra maiúscula")
	}
	if !hasLower {
		return weak("a senha deve conter pelo menos uma letra minúscula")
	}
	if !hasNumber {
		return weak("a senha deve conter pelo menos um número")
	}
	if !hasSpecial {
		return weak("a senha deve conter pelo menos um caractere especial")
	}

	return nil
}

// ChangePassword permite que um usuário altere a própria senha
func (s *Service) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	if currentPassword == "" || newPassword == "" {
		return NewUserAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, userID, "Senha atual e nova senha são obrigatórias")
	}

	user, err := s.getUser(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return NewUserAuthError(ErrWrongPassword, apiErrors.ErrInvalidCredentials, userID, "Senha atual incorreta")
	}

	if currentPassword == newPassword {
		return NewUserAuthError(ErrSamePassword, apiErrors.ErrInvalidValue, userID, "A nova senha deve ser diferente da atual")
	}

	if err := s.ValidatePasswordStrength(newPassword); err != nil {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return NewAuthError(err, apiErrors.ErrInternalServer, "Erro ao gerar hash da senha")
	}

	user.PasswordHash = string(hashedPassword)
	user.UpdatedAt = s.now()
	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		log.ForContext(ctx).WithError(err).WithField("user_id", userID).Error("Erro ao atualizar senha")
		return NewUserAuthError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, userID, "Erro ao atualizar senha")
	}

	return nil
}
