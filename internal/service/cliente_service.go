package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"pastelpos/internal/config"
	"pastelpos/internal/dto"
	"pastelpos/internal/model"
	"pastelpos/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type ClienteService interface {
	Registrar(ctx context.Context, req dto.RegistrarClienteRequest) (*dto.ClienteResponse, error)
	Login(ctx context.Context, req dto.LoginClienteRequest) (*dto.LoginClienteResponse, error)
	Perfil(ctx context.Context, id uuid.UUID) (*dto.ClienteResponse, error)
	ActualizarPerfil(ctx context.Context, id uuid.UUID, req dto.ActualizarClienteRequest) (*dto.ClienteResponse, error)
}

type clienteService struct {
	repo repository.ClienteRepository
	cfg  *config.Config
}

func NewClienteService(repo repository.ClienteRepository, cfg *config.Config) ClienteService {
	return &clienteService{repo: repo, cfg: cfg}
}

func (s *clienteService) Registrar(ctx context.Context, req dto.RegistrarClienteRequest) (*dto.ClienteResponse, error) {
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

	cliente := &model.Cliente{
		Nombre:       req.Nombre,
		Apellidos:    req.Apellidos,
		Correo:       strings.ToLower(req.Correo),
		PasswordHash: string(hash),
		Direccion:    req.Direccion,
		Celular:      req.Celular,
	}
	if err := s.repo.Create(ctx, cliente); err != nil {
		return nil, err
	}
	resp := clienteToResponse(cliente)
	return &resp, nil
}

func (s *clienteService) Login(ctx context.Context, req dto.LoginClienteRequest) (*dto.LoginClienteResponse, error) {
	cliente, err := s.repo.FindByCorreo(ctx, req.Correo)
	if err != nil {
		return nil, ErrCredenciales
	}
	if err := bcrypt.CompareHashAndPassword([]byte(cliente.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrCredenciales
	}

	// Customer tokens carry type=customer so the staff middleware can
	// reject them on back-office routes.
	claims := jwt.MapClaims{
		"user_id": cliente.ID.String(),
		"correo":  cliente.Correo,
		"nombre":  cliente.Nombre,
		"type":    "customer",
		"exp":     time.Now().Add(time.Duration(s.cfg.JWTClienteHours) * time.Hour).Unix(),
		"iat":     time.Now().Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, err
	}

	return &dto.LoginClienteResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   s.cfg.JWTClienteHours * 3600,
		Cliente:     clienteToResponse(cliente),
	}, nil
}

func (s *clienteService) Perfil(ctx context.Context, id uuid.UUID) (*dto.ClienteResponse, error) {
	cliente, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("cliente no encontrado: %w", err)
	}
	resp := clienteToResponse(cliente)
	return &resp, nil
}

func (s *clienteService) ActualizarPerfil(ctx context.Context, id uuid.UUID, req dto.ActualizarClienteRequest) (*dto.ClienteResponse, error) {
	cliente, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("cliente no encontrado: %w", err)
	}

	if req.Nombre != nil {
		cliente.Nombre = *req.Nombre
	}
	if req.Apellidos != nil {
		cliente.Apellidos = *req.Apellidos
	}
	if req.Correo != nil && !strings.EqualFold(*req.Correo, cliente.Correo) {
		if _, err := s.repo.FindByCorreo(ctx, *req.Correo); err == nil {
			return nil, ErrCorreoRegistrado
		}
		cliente.Correo = strings.ToLower(*req.Correo)
	}
	if req.Direccion != nil {
		cliente.Direccion = *req.Direccion
	}
	if req.Celular != nil {
		cliente.Celular = *req.Celular
	}
	if req.Password != nil && *req.Password != "" {
		if fuerza := EvaluarPassword(*req.Password); fuerza.Strength == "debil" {
			return nil, fmt.Errorf("%w: %s", ErrPasswordDebil, fuerza.Message)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), 12)
		if err != nil {
			return nil, err
		}
		cliente.PasswordHash = string(hash)
	}

	if err := s.repo.Update(ctx, cliente); err != nil {
		return nil, err
	}
	resp := clienteToResponse(cliente)
	return &resp, nil
}

func clienteToResponse(c *model.Cliente) dto.ClienteResponse {
	return dto.ClienteResponse{
		ID:        c.ID.String(),
		Nombre:    c.Nombre,
		Apellidos: c.Apellidos,
		Correo:    c.Correo,
		Direccion: c.Direccion,
		Celular:   c.Celular,
	}
}
