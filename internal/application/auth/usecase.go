package auth

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
	"github.com/jhoicas/Taller-api/pkg/jwt"
)

// UseCase registro y login. El registro inicial crea el taller y su usuario
// admin en un paso; el login es pre-tenant (email global) y el token emitido
// lleva el shop del usuario, de donde sale el contexto de taller de toda
// petición posterior.
type UseCase struct {
	shopRepo      repository.ShopRepository
	userRepo      repository.UserRepository
	jwtSecret     string
	jwtIssuer     string
	jwtExpMinutes int
}

// NewUseCase construye el caso de uso de autenticación.
func NewUseCase(shopRepo repository.ShopRepository, userRepo repository.UserRepository, secret, issuer string, expMinutes int) *UseCase {
	return &UseCase{
		shopRepo:      shopRepo,
		userRepo:      userRepo,
		jwtSecret:     secret,
		jwtIssuer:     issuer,
		jwtExpMinutes: expMinutes,
	}
}

// RegisterInput alta de taller + usuario admin.
type RegisterInput struct {
	ShopName  string
	ShopPhone string
	Email     string
	Password  string
	UserName  string
}

// Register crea el taller y su primer usuario (admin). Devuelve token listo
// para usar.
func (uc *UseCase) Register(ctx context.Context, in RegisterInput) (*entity.User, string, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if strings.TrimSpace(in.ShopName) == "" || in.Email == "" || len(in.Password) < 8 {
		return nil, "", domain.ErrInvalidInput
	}
	existing, err := uc.userRepo.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	now := time.Now()
	shop := &entity.Shop{
		Name:      in.ShopName,
		Phone:     in.ShopPhone,
		Email:     in.Email,
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.shopRepo.Create(ctx, shop); err != nil {
		return nil, "", err
	}
	user := &entity.User{
		ShopID:       shop.ID,
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         in.UserName,
		Role:         entity.RoleAdmin,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := jwt.Generate(uc.jwtSecret, user.ID, user.ShopID, user.Role, uc.jwtIssuer, uc.jwtExpMinutes)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login valida credenciales y emite un token. Credenciales malas y usuarios
// inexistentes responden igual (ErrUnauthorized): no se filtra cuál falló.
func (uc *UseCase) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if user == nil || user.Status != "active" {
		return nil, "", domain.ErrUnauthorized
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtSecret, user.ID, user.ShopID, user.Role, uc.jwtIssuer, uc.jwtExpMinutes)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// CreateUserInput alta de un usuario adicional dentro del taller del admin.
type CreateUserInput struct {
	ShopID   string
	Email    string
	Password string
	Name     string
	Role     string
}

// CreateUser da de alta un usuario en un taller existente (solo admin).
func (uc *UseCase) CreateUser(ctx context.Context, in CreateUserInput) (*entity.User, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Email == "" || len(in.Password) < 8 {
		return nil, domain.ErrInvalidInput
	}
	switch in.Role {
	case entity.RoleAdmin, entity.RoleMecanico, entity.RoleRecepcion:
	default:
		return nil, domain.ErrInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ShopID:       in.ShopID,
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         in.Name,
		Role:         in.Role,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
