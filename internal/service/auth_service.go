package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"pastelpos/internal/config"
	"pastelpos/internal/dto"
	"pastelpos/internal/infra"
	"pastelpos/internal/model"
	"pastelpos/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error)
	GenerarCaptcha() (*dto.CaptchaResponse, error)

	// Staff management (Admin only at the routing layer)
	CrearUsuario(ctx context.Context, req dto.CrearUsuarioRequest) (*dto.UsuarioResponse, error)
	ListarUsuarios(ctx context.Context) ([]dto.UsuarioResponse, error)
	ActualizarUsuario(ctx context.Context, id uuid.UUID, req dto.ActualizarUsuarioRequest) (*dto.UsuarioResponse, error)
	DesactivarUsuario(ctx context.Context, id uuid.UUID) error
	ReactivarUsuario(ctx context.Context, id uuid.UUID) error
	PagarUsuario(ctx context.Context, id uuid.UUID) (*dto.UsuarioResponse, error)
}

type authService struct {
	repo    repository.UsuarioRepository
	captcha *infra.Captcha
	cfg     *config.Config
}

func NewAuthService(repo repository.UsuarioRepository, captcha *infra.Captcha, cfg *config.Config) AuthService {
	return &authService{repo: repo, captcha: captcha, cfg: cfg}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	// A supplied captcha id must verify; the entry is consumed either way.
	if req.CaptchaID != "" && s.captcha != nil {
		if !s.captcha.Verify(req.CaptchaID, req.CaptchaValue) {
			return nil, ErrCaptchaInvalido
		}
	}

	user, err := s.repo.FindByCorreo(ctx, req.Correo)
	if err != nil {
		return nil, ErrCredenciales
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrCredenciales
	}

	accessToken, err := s.generateToken(user, time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.generateToken(user, time.Duration(s.cfg.JWTRefreshHours)*time.Hour)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresIn:    s.cfg.JWTExpirationHours * 3600,
		User:         usuarioToResponse(user),
	}, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("refresh token inválido o expirado")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("claims inválidos")
	}
	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return nil, fmt.Errorf("token mal formado")
	}
	uid, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, fmt.Errorf("token mal formado")
	}

	user, err := s.repo.FindByID(ctx, uid)
	if err != nil || !user.Activo {
		return nil, fmt.Errorf("usuario no encontrado o inactivo")
	}

	accessToken, err := s.generateToken(user, time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	newRefresh, err := s.generateToken(user, time.Duration(s.cfg.JWTRefreshHours)*time.Hour)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: newRefresh,
		TokenType:    "bearer",
		ExpiresIn:    s.cfg.JWTExpirationHours * 3600,
		User:         usuarioToResponse(user),
	}, nil
}

func (s *authService) GenerarCaptcha() (*dto.CaptchaResponse, error) {
	id, b64, err := s.captcha.Generate()
	if err != nil {
		return nil, err
	}
	return &dto.CaptchaResponse{CaptchaID: id, Imagen: b64}, nil
}

func (s *authService) CrearUsuario(ctx context.Context, req dto.CrearUsuarioRequest) (*dto.UsuarioResponse, error) {
	if fuerza := EvaluarPassword(req.Password); fuerza.Strength == "debil" {
		return nil, fmt.Errorf("%w: %s", ErrPasswordDebil, fuerza.Message)
	}
	if _, err := s.repo.FindByCorreo(ctx, req.Correo); err == nil {
		return nil, ErrCorreoRegistrado
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, err
	}

	rol := req.Rol
	if rol == "" {
		rol = "Employee"
	}
	horario := req.Horario
	if horario == "" {
		horario = "9:00-18:00"
	}
	sueldo := decimal.NewFromInt(2500)
	if req.Sueldo != nil {
		sueldo = *req.Sueldo
	}

	user := &model.Usuario{
		Nombre:       req.Nombre,
		Apellidos:    req.Apellidos,
		Correo:       strings.ToLower(req.Correo),
		PasswordHash: string(hash),
		Edad:         req.Edad,
		Rol:          rol,
		Horario:      horario,
		Contacto:     req.Contacto,
		Sueldo:       sueldo,
		Activo:       true,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	resp := usuarioToResponse(user)
	return &resp, nil
}

func (s *authService) ListarUsuarios(ctx context.Context) ([]dto.UsuarioResponse, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.UsuarioResponse, len(users))
	for i := range users {
		resp[i] = usuarioToResponse(&users[i])
	}
	return resp, nil
}

func (s *authService) ActualizarUsuario(ctx context.Context, id uuid.UUID, req dto.ActualizarUsuarioRequest) (*dto.UsuarioResponse, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("usuario no encontrado")
	}
	if req.Nombre != nil {
		user.Nombre = *req.Nombre
	}
	if req.Apellidos != nil {
		user.Apellidos = *req.Apellidos
	}
	if req.Correo != nil {
		user.Correo = strings.ToLower(*req.Correo)
	}
	if req.Edad != nil {
		user.Edad = *req.Edad
	}
	if req.Rol != nil {
		user.Rol = *req.Rol
	}
	if req.Horario != nil {
		user.Horario = *req.Horario
	}
	if req.Contacto != nil {
		user.Contacto = *req.Contacto
	}
	if req.Sueldo != nil {
		user.Sueldo = *req.Sueldo
	}
	if req.UltimoPago != nil {
		user.UltimoPago = req.UltimoPago
	}
	if req.Password != nil && *req.Password != "" {
		if fuerza := EvaluarPassword(*req.Password); fuerza.Strength == "debil" {
			return nil, fmt.Errorf("%w: %s", ErrPasswordDebil, fuerza.Message)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), 12)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	resp := usuarioToResponse(user)
	return &resp, nil
}

func (s *authService) DesactivarUsuario(ctx context.Context, id uuid.UUID) error {
	return s.repo.SoftDelete(ctx, id)
}

func (s *authService) ReactivarUsuario(ctx context.Context, id uuid.UUID) error {
	return s.repo.Reactivar(ctx, id)
}

// PagarUsuario stamps the salary-payment date on the staff member.
func (s *authService) PagarUsuario(ctx context.Context, id uuid.UUID) (*dto.UsuarioResponse, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("usuario no encontrado: %w", err)
	}
	ahora := time.Now()
	user.UltimoPago = &ahora
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	resp := usuarioToResponse(user)
	return &resp, nil
}

func (s *authService) generateToken(user *model.Usuario, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID.String(),
		"correo":  user.Correo,
		"nombre":  user.Nombre,
		"rol":     user.Rol,
		"exp":     time.Now().Add(duration).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func usuarioToResponse(u *model.Usuario) dto.UsuarioResponse {
	return dto.UsuarioResponse{
		ID:         u.ID.String(),
		Nombre:     u.Nombre,
		Apellidos:  u.Apellidos,
		Correo:     u.Correo,
		Edad:       u.Edad,
		Rol:        u.Rol,
		Horario:    u.Horario,
		Contacto:   u.Contacto,
		Sueldo:     u.Sueldo,
		UltimoPago: u.UltimoPago,
		Activo:     u.Activo,
	}
}

// ── Password policy ───────────────────────────────────────────────────────────

var (
	reMinuscula = regexp.MustCompile(`[a-z]`)
	reMayuscula = regexp.MustCompile(`[A-Z]`)
	reDigito    = regexp.MustCompile(`\d`)
	reEspecial  = regexp.MustCompile(`[!@#$%^&*()_+\-=\[\]{};':"\\|,.<>\/?]`)
)

// EvaluarPassword scores a candidate password 0–5 (length, lower, upper,
// digit, special). Score ≤2 is "debil" and rejected on account creation;
// ≤3 is "normal"; anything above is "segura".
func EvaluarPassword(password string) dto.PasswordStrength {
	if password == "" {
		return dto.PasswordStrength{Strength: "debil", Score: 0, Message: "La contraseña es obligatoria"}
	}

	score := 0
	var feedback []string

	if len(password) >= 8 {
		score++
	} else {
		feedback = append(feedback, "Debe tener al menos 8 caracteres")
	}
	if reMinuscula.MatchString(password) {
		score++
	} else {
		feedback = append(feedback, "Debe contener letras minúsculas")
	}
	if reMayuscula.MatchString(password) {
		score++
	} else {
		feedback = append(feedback, "Debe contener letras mayúsculas")
	}
	if reDigito.MatchString(password) {
		score++
	} else {
		feedback = append(feedback, "Debe contener números")
	}
	if reEspecial.MatchString(password) {
		score++
	} else {
		feedback = append(feedback, "Debe contener caracteres especiales")
	}

	strength := "segura"
	switch {
	case score <= 2:
		strength = "debil"
	case score <= 3:
		strength = "normal"
	}

	message := "Contraseña segura"
	if len(feedback) > 0 {
		message = strings.Join(feedback, ", ")
	}
	return dto.PasswordStrength{Strength: strength, Score: score, Message: message}
}
