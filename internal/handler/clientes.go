package handler

import (
	"errors"
	"net/http"

	"pastelpos/internal/apierror"
	"pastelpos/internal/dto"
	"pastelpos/internal/middleware"
	"pastelpos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ClientesHandler covers online-store accounts: registration and login.
type ClientesHandler struct{ svc service.ClienteService }

func NewClientesHandler(svc service.ClienteService) *ClientesHandler {
	return &ClientesHandler{svc: svc}
}

// Registrar godoc
// @Summary      Registrar cuenta de cliente
// @Tags         tienda
// @Accept       json
// @Produce      json
// @Param        body body dto.RegistrarClienteRequest true "Datos del cliente"
// @Success      201  {object} dto.ClienteResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/tienda/registro [post]
func (h *ClientesHandler) Registrar(c *gin.Context) {
	var req dto.RegistrarClienteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Registrar(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPasswordDebil), errors.Is(err, service.ErrCorreoRegistrado):
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		default:
			c.Error(err) //nolint:errcheck
		}
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Login godoc
// @Summary      Iniciar sesión de cliente
// @Tags         tienda
// @Accept       json
// @Produce      json
// @Param        body body dto.LoginClienteRequest true "Credenciales"
// @Success      200  {object} dto.LoginClienteResponse
// @Failure      401  {object} apierror.APIError
// @Router       /v1/tienda/login [post]
func (h *ClientesHandler) Login(c *gin.Context) {
	var req dto.LoginClienteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Correo o contraseña incorrectos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Perfil godoc
// @Summary      Perfil del cliente autenticado
// @Tags         tienda
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object} dto.ClienteResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/tienda/perfil [get]
func (h *ClientesHandler) Perfil(c *gin.Context) {
	claims := middleware.GetClaims(c)
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Token inválido o expirado"))
		return
	}
	resp, err := h.svc.Perfil(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Cliente no encontrado"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ActualizarPerfil godoc
// @Summary      Actualizar perfil del cliente autenticado
// @Tags         tienda
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.ActualizarClienteRequest true "Campos a actualizar"
// @Success      200  {object} dto.ClienteResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/tienda/perfil [put]
func (h *ClientesHandler) ActualizarPerfil(c *gin.Context) {
	claims := middleware.GetClaims(c)
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Token inválido o expirado"))
		return
	}
	var req dto.ActualizarClienteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarPerfil(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPasswordDebil), errors.Is(err, service.ErrCorreoRegistrado):
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		default:
			c.JSON(http.StatusNotFound, apierror.New("Cliente no encontrado"))
		}
		return
	}
	c.JSON(http.StatusOK, resp)
}
