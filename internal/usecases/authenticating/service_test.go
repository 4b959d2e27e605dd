package authenticating

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/opsboard-api/infrastructure/repository/mocks"
	"github.com/vfg2006/opsboard-api/internal/config"
	"github.com/vfg2006/opsboard-api/internal/domain"
	"github.com/vfg2006/opsboard-api/pkg/apiErrors"
	"github.com/vfg2006/opsboard-api/pkg/log"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

const testPassword = "Segura#2024"

var fixedNow = time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)

func newTestService(t *testing.T) (*Service, *mocks.MockUserRepository) {
	t.Helper()
	log.SetupTestLogger()
	repo := mocks.NewMockUserRepository(gomock.NewController(t))

	service := NewService(repo, &config.Config{SecretKey: "test-secret"}).(*Service)
	service.now = func() time.Time { return fixedNow }
	return service, repo
}

func newUser(t *testing.T, role domain.UserRole, active bool) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	return &domain.User{
		ID:           "user-1",
		Name:         "Alex Morgan",
		Email:        "alex@opsboard.local",
		PasswordHash: string(hash),
		Role:         role,
		Active:       active,
	}
}

func TestLoginUser(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		setup    func(t *testing.T, repo *mocks.MockUserRepository)
		validate func(t *testing.T, service *Service, token string, err error)
	}{
		{
			name:     "campos obrigatórios",
			email:    "",
			password: "x",
			setup:    func(t *testing.T, repo *mocks.MockUserRepository) {},
			validate: func(t *testing.T, service *Service, token string, err error) {
				assert.ErrorIs(t, err, ErrMissingRequiredData)
			},
		},
		{
			name:     "usuário inexistente",
			email:    "ninguem@opsboard.local",
			password: testPassword,
			setup: func(t *testing.T, repo *mocks.MockUserRepository) {
				repo.EXPECT().GetUserByEmail(gomock.Any(), "ninguem@opsboard.local").Return(nil, nil)
			},
			validate: func(t *testing.T, service *Service, token string, err error) {
				assert.ErrorIs(t, err, ErrUserNotFound)
			},
		},
		{
			name:     "usuário desativado",
			email:    "alex@opsboard.local",
			password: testPassword,
			setup: func(t *testing.T, repo *mocks.MockUserRepository) {
				repo.EXPECT().GetUserByEmail(gomock.Any(), "alex@opsboard.local").Return(newUser(t, domain.UserRoleMember, false), nil)
			},
			validate: func(t *testing.T, service *Service, token string, err error) {
				assert.ErrorIs(t, err, ErrUserDisabled)
			},
		},
		{
			name:     "senha incorreta",
			email:    "alex@opsboard.local",
			password: "errada",
			setup: func(t *testing.T, repo *mocks.MockUserRepository) {
				repo.EXPECT().GetUserByEmail(gomock.Any(), "alex@opsboard.local").Return(newUser(t, domain.UserRoleMember, true), nil)
			},
			validate: func(t *testing.T, service *Service, token string, err error) {
				assert.ErrorIs(t, err, ErrInvalidCredentials)

				var authErr *AuthError
				require.ErrorAs(t, err, &authErr)
				assert.Equal(t, apiErrors.ErrInvalidCredentials, authErr.Code)
				assert.Equal(t, "user-1", authErr.UserID)
			},
		},
		{
			name:     "login normaliza o email e emite token",
			email:    "  Alex@OpsBoard.local ",
			password: testPassword,
			setup: func(t *testing.T, repo *mocks.MockUserRepository) {
				repo.EXPECT().GetUserByEmail(gomock.Any(), "alex@opsboard.local").Return(newUser(t, domain.UserRoleAdmin, true), nil)
			},
			validate: func(t *testing.T, service *Service, token string, err error) {
				require.NoError(t, err)
				require.NotEmpty(t, token)

				claims, err := service.ValidateToken(token)
				require.NoError(t, err)
				assert.Equal(t, "user-1", claims.UserID)
				assert.Equal(t, "Alex Morgan", claims.UserName)
				assert.Equal(t, domain.UserRoleAdmin, claims.UserRole)
				assert.True(t, claims.ExpiresAt.Time.Equal(fixedNow.Add(24*time.Hour)), "expiração em %s", claims.ExpiresAt.Time)
			},
		},
		{
			name:     "erro do banco",
			email:    "alex@opsboard.local",
			password: testPassword,
			setup: func(t *testing.T, repo *mocks.MockUserRepository) {
				repo.EXPECT().GetUserByEmail(gomock.Any(), gomock.Any()).Return(nil, errors.New("boom"))
			},
			validate: func(t *testing.T, service *Service, token string, err error) {
				assert.ErrorIs(t, err, ErrDatabaseOperation)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo := newTestService(t)
			tt.setup(t, repo)

			token, err := service.LoginUser(context.Background(), tt.email, tt.password)
			tt.validate(t, service, token, err)
		})
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	service, repo := newTestService(t)
	repo.EXPECT().GetUserByEmail(gomock.Any(), gomock.Any()).Return(newUser(t, domain.UserRoleMember, true), nil)

	token, err := service.LoginUser(context.Background(), "alex@opsboard.local", testPassword)
	require.NoError(t, err)

	require.NoError(t, service.Logout(token))

	_, err = service.ValidateToken(token)
	assert.ErrorIs(t, err, ErrRevokedToken)
	assert.True(t, IsAuthorizationError(err))

	// um segundo logout com o mesmo token já falha na validação
	assert.ErrorIs(t, service.Logout(token), ErrRevokedToken)

	// passada a expiração o token sai da lista
	service.now = func() time.Time { return fixedNow.Add(25 * time.Hour) }
	_, err = service.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateToken(t *testing.T) {
	service, _ := newTestService(t)

	_, err := service.ValidateToken("nao-e-um-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)

	other := NewService(nil, &config.Config{SecretKey: "outra-chave"}).(*Service)
	other.now = service.now
	token, err := other.generateJWT(&domain.User{ID: "u"})
	require.NoError(t, err)

	_, err = service.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRevocationListPrunesExpired(t *testing.T) {
	list := newRevocationList()

	list.Add("a", fixedNow.Add(time.Hour), fixedNow)
	list.Add("b", fixedNow.Add(-time.Hour), fixedNow)
	assert.Equal(t, 1, list.Len())

	list.Add("c", fixedNow.Add(3*time.Hour), fixedNow.Add(2*time.Hour))
	assert.Equal(t, 1, list.Len())
	assert.False(t, list.Contains("a", fixedNow.Add(2*time.Hour)))
	assert.True(t, list.Contains("c", fixedNow.Add(2*time.Hour)))
}

func TestCreateUser(t *testing.T) {
	tests := []struct {
		name     string
		req      domain.CreateUserRequest
		setup    func(repo *mocks.MockUserRepository)
		validate func(t *testing.T, user *domain.User, err error)
	}{
		{
			name:  "campos obrigatórios",
			req:   domain.CreateUserRequest{Email: "a@b.c", Password: testPassword},
			setup: func(repo *mocks.MockUserRepository) {},
			validate: func(t *testing.T, user *domain.User, err error) {
				assert.ErrorIs(t, err, ErrMissingRequiredData)
			},
		},
		{
			name:  "perfil desconhecido",
			req:   domain.CreateUserRequest{Name: "A", Email: "a@b.c", Password: testPassword, Role: "owner"},
			setup: func(repo *mocks.MockUserRepository) {},
			validate: func(t *testing.T, user *domain.User, err error) {
				assert.ErrorIs(t, err, ErrInvalidRole)
			},
		},
		{
			name:  "senha fraca",
			req:   domain.CreateUserRequest{Name: "A", Email: "a@b.c", Password: "abc"},
			setup: func(repo *mocks.MockUserRepository) {},
			validate: func(t *testing.T, user *domain.User, err error) {
				assert.ErrorIs(t, err, ErrWeakPassword)
			},
		},
		{
			name: "email já cadastrado",
			req:  domain.CreateUserRequest{Name: "A", Email: "A@B.C", Password: testPassword},
			setup: func(repo *mocks.MockUserRepository) {
				repo.EXPECT().GetUserByEmail(gomock.Any(), "a@b.c").Return(&domain.User{ID: "x"}, nil)
			},
			validate: func(t *testing.T, user *domain.User, err error) {
				assert.ErrorIs(t, err, ErrUserAlreadyExists)

				var authErr *AuthError
				require.ErrorAs(t, err, &authErr)
				assert.Equal(t, apiErrors.ErrUserAlreadyExists, authErr.Code)
			},
		},
		{
			name: "cria membro ativo com senha em hash",
			req:  domain.CreateUserRequest{Name: " Sam ", Email: "sam@opsboard.local", Password: testPassword},
			setup: func(repo *mocks.MockUserRepository) {
				repo.EXPECT().GetUserByEmail(gomock.Any(), "sam@opsboard.local").Return(nil, nil)
				repo.EXPECT().CreateUser(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, user *domain.User) error {
					assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(testPassword)))
					return nil
				})
			},
			validate: func(t *testing.T, user *domain.User, err error) {
				require.NoError(t, err)
				assert.Equal(t, "Sam", user.Name)
				assert.Equal(t, domain.UserRoleMember, user.Role)
				assert.True(t, user.Active)
				assert.Empty(t, user.PasswordHash)
				assert.Equal(t, fixedNow, user.CreatedAt)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo := newTestService(t)
			tt.setup(repo)

			req := tt.req
			user, err := service.CreateUser(context.Background(), &req)
			tt.validate(t, user, err)
		})
	}
}

func TestUpdateProfile(t *testing.T) {
	service, repo := newTestService(t)

	name := " Alex M. "
	avatar := " "
	repo.EXPECT().GetUserByID(gomock.Any(), "user-1").Return(&domain.User{ID: "user-1", Name: "Alex", AvatarURL: &name}, nil)
	repo.EXPECT().UpdateUser(gomock.Any(), gomock.Any()).Return(nil)

	user, err := service.UpdateProfile(context.Background(), &domain.UpdateProfileRequest{ID: "user-1", Name: &name, AvatarURL: &avatar})
	require.NoError(t, err)
	assert.Equal(t, "Alex M.", user.Name)
	assert.Nil(t, user.AvatarURL)
	assert.Equal(t, fixedNow, user.UpdatedAt)

	repo.EXPECT().GetUserByID(gomock.Any(), "missing").Return(nil, nil)
	_, err = service.UpdateProfile(context.Background(), &domain.UpdateProfileRequest{ID: "missing"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestChangePassword(t *testing.T) {
	tests := []struct {
		name     string
		current  string
		next     string
		setup    func(t *testing.T, repo *mocks.MockUserRepository)
		validate func(t *testing.T, err error)
	}{
		{
			name:    "senha atual incorreta",
			current: "errada",
			next:    "Nova#Senha1",
			setup: func(t *testing.T, repo *mocks.MockUserRepository) {
				repo.EXPECT().GetUserByID(gomock.Any(), "user-1").Return(newUser(t, domain.UserRoleMember, true), nil)
			},
			validate: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrWrongPassword)
			},
		},
		{
			name:    "nova senha igual à atual",
			current: testPassword,
			next:    testPassword,
			setup: func(t *testing.T, repo *mocks.MockUserRepository) {
				repo.EXPECT().GetUserByID(gomock.Any(), "user-1").Return(newUser(t, domain.UserRoleMember, true), nil)
			},
			validate: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrSamePassword)
			},
		},
		{
			name:    "nova senha fraca",
			current: testPassword,
			next:    "semsimbolo1A",
			setup: func(t *testing.T, repo *mocks.MockUserRepository) {
				repo.EXPECT().GetUserByID(gomock.Any(), "user-1").Return(newUser(t, domain.UserRoleMember, true), nil)
			},
			validate: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrWeakPassword)
			},
		},
		{
			name:    "troca a senha",
			current: testPassword,
			next:    "Nova#Senha1",
			setup: func(t *testing.T, repo *mocks.MockUserRepository) {
				repo.EXPECT().GetUserByID(gomock.Any(), "user-1").Return(newUser(t, domain.UserRoleMember, true), nil)
				repo.EXPECT().UpdateUser(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, user *domain.User) error {
					assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("Nova#Senha1")))
					return nil
				})
			},
			validate: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo := newTestService(t)
			tt.setup(t, repo)

			tt.validate(t, service.ChangePassword(context.Background(), "user-1", tt.current, tt.next))
		})
	}
}

func TestGenerateStrongPassword(t *testing.T) {
	t.Run("apenas administradores", func(t *testing.T) {
		service, repo := newTestService(t)
		repo.EXPECT().GetUserByID(gomock.Any(), "user-1").Return(newUser(t, domain.UserRoleMember, true), nil)

		_, err := service.GenerateStrongPassword(context.Background(), "user-1", "user-2")
		assert.ErrorIs(t, err, ErrInsufficientPrivilege)
	})

	t.Run("gera senha forte para o alvo", func(t *testing.T) {
		service, repo := newTestService(t)
		repo.EXPECT().GetUserByID(gomock.Any(), "user-1").Return(newUser(t, domain.UserRoleAdmin, true), nil)
		repo.EXPECT().GetUserByID(gomock.Any(), "user-2").Return(&domain.User{ID: "user-2"}, nil)
		repo.EXPECT().UpdateUser(gomock.Any(), gomock.Any()).Return(nil)

		password, err := service.GenerateStrongPassword(context.Background(), "user-1", "user-2")
		require.NoError(t, err)
		assert.Len(t, password, 12)
		assert.NoError(t, service.ValidatePasswordStrength(password))
	})
}

func TestGeneratePassword(t *testing.T) {
	service, _ := newTestService(t)

	for i := 0; i < 20; i++ {
		password, err := GeneratePassword(4)
		require.NoError(t, err)
		assert.Len(t, password, 8)
		assert.NoError(t, service.ValidatePasswordStrength(password))
	}
}

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		name              string
		err               error
		wantCredentials   bool
		wantAuthorization bool
	}{
		{name: "senha errada", err: NewAuthError(ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, ""), wantCredentials: true},
		{name: "usuário desativado", err: NewUserAuthError(ErrUserDisabled, apiErrors.ErrUserDisabled, "user-1", ""), wantCredentials: true},
		{name: "token expirado", err: NewAuthError(ErrExpiredToken, apiErrors.ErrExpiredToken, ""), wantAuthorization: true},
		{name: "sem privilégio", err: ErrInsufficientPrivilege, wantAuthorization: true},
		{name: "falha no banco", err: NewAuthError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCredentials, IsCredentialsError(tt.err))
			assert.Equal(t, tt.wantAuthorization, IsAuthorizationError(tt.err))
		})
	}
}
