package auth

import (
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/cobranza-api/internal/application/dto"
	"github.com/tu-usuario/cobranza-api/internal/domain"
	"github.com/tu-usuario/cobranza-api/internal/domain/entity"
	"github.com/tu-usuario/cobranza-api/internal/domain/repository"
	"github.com/tu-usuario/cobranza-api/pkg/config"
	"github.com/tu-usuario/cobranza-api/pkg/jwt"
	"github.com/tu-usuario/cobranza-api/pkg/logger"
)

// UseCase autenticación y alta de usuarios. El login es por username: los
// cobradores entran desde el celular y no siempre tienen correo.
type UseCase struct {
	userRepo repository.UserRepository
	clock    domain.Clock
	jwtCfg   config.JWTConfig
	log      *logger.Logger
}

// NewUseCase construye el módulo de autenticación.
func NewUseCase(userRepo repository.UserRepository, clock domain.Clock, jwtCfg config.JWTConfig, log *logger.Logger) *UseCase {
	return &UseCase{
		userRepo: userRepo,
		clock:    clock,
		jwtCfg:   jwtCfg,
		log:      log.WithComponent("auth"),
	}
}

// Login valida credenciales y emite el JWT con empresa y rol. Las fallas
// de usuario inexistente y contraseña incorrecta se reportan igual para
// no filtrar qué usernames existen.
func (uc *UseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	if in.Username == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}

	user, err := uc.userRepo.FindByUsername(in.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		uc.log.Warn().Str("username", in.Username).Msg("intento de login con contraseña incorrecta")
		return nil, domain.ErrUnauthorized
	}
	if !user.Status {
		return nil, domain.ErrForbidden
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.CompanyID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.Expiration)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Token: token,
		User:  toUserResponse(user),
	}, nil
}

// Register da de alta un usuario dentro de la empresa del admin que lo crea.
func (uc *UseCase) Register(companyID string, in dto.RegisterUserRequest) (*dto.UserResponse, error) {
	if in.Username == "" || in.Password == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Role != entity.RoleAdmin && in.Role != entity.RoleCobrador {
		return nil, domain.ErrInvalidInput
	}

	existing, err := uc.userRepo.FindByUsername(in.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		Username:     in.Username,
		PasswordHash: string(hash),
		Name:         in.Name,
		Role:         in.Role,
		Status:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}

	uc.log.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("usuario registrado")
	resp := toUserResponse(user)
	return &resp, nil
}

// ListCollectors devuelve los cobradores de la empresa (para asignar rutas
// y revisar liquidaciones).
func (uc *UseCase) ListCollectors(companyID string) ([]*dto.UserResponse, error) {
	users, err := uc.userRepo.ListCollectors(companyID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.UserResponse, 0, len(users))
	for _, u := range users {
		r := toUserResponse(u)
		out = append(out, &r)
	}
	return out, nil
}

func toUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		CompanyID: u.CompanyID,
		Username:  u.Username,
		Name:      u.Name,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
	}
}
