package handler

import (
	"errors"
	"net/http"

	"pastelpos/internal/apierror"
	"pastelpos/internal/dto"
	"pastelpos/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct{ svc service.AuthService }

func NewAuthHandler(svc service.AuthService) *AuthHandler { return &AuthHandler{svc: svc} }

// Login godoc
// @Summary      Iniciar sesión de personal
// @Description  Valida credenciales (y captcha cuando se envía) y retorna tokens JWT de acceso y refresco.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body body dto.LoginRequest true "Credenciales"
// @Success      200  {object} dto.LoginResponse
// @Failure      401  {object} apierror.APIError
// @Router       /v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCaptchaInvalido):
			c.JSON(http.StatusBadRequest, apierror.New("Captcha incorrecto o expirado"))
		case errors.Is(err, service.ErrCredenciales):
			c.JSON(http.StatusUnauthorized, apierror.New("Correo o contraseña incorrectos"))
		default:
			c.Error(err) //nolint:errcheck
		}
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Refresh godoc
// @Summary      Refrescar tokens
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body body dto.RefreshRequest true "Refresh token vigente"
// @Success      200  {object} dto.LoginResponse
// @Failure      401  {object} apierror.APIError
// @Router       /v1/auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Refresh token inválido o expirado"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Captcha godoc
// @Summary      Generar captcha de login
// @Description  Retorna un id y una imagen base64 para el formulario de login.
// @Tags         auth
// @Produce      json
// @Success      200 {object} dto.CaptchaResponse
// @Router       /v1/auth/captcha [get]
func (h *AuthHandler) Captcha(c *gin.Context) {
	resp, err := h.svc.GenerarCaptcha()
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("No se pudo generar el captcha"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// PasswordStrength godoc
// @Summary      Evaluar fortaleza de contraseña
// @Description  Scoring en vivo para el formulario de alta de personal.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body body object{password=string} true "Contraseña candidata"
// @Success      200 {object} dto.PasswordStrength
// @Router       /v1/auth/password-strength [post]
func (h *AuthHandler) PasswordStrength(c *gin.Context) {
	var req struct {
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON inválido"))
		return
	}
	c.JSON(http.StatusOK, service.EvaluarPassword(req.Password))
}
