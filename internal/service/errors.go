package service

import "errors"

// Sentinel errors for the sale processor taxonomy. Handlers map these with
// errors.Is: ErrProductoNoEncontrado → 404, the other client errors → 400.
// Anything not wrapping one of these is an internal error and is reported
// generically (the cause is only logged).
var (
	ErrProductoNoEncontrado = errors.New("producto no encontrado")
	ErrCantidadInvalida     = errors.New("cantidad inválida")
	ErrStockInsuficiente    = errors.New("stock insuficiente")
	ErrDatosCliente         = errors.New("los datos del cliente son obligatorios")

	ErrCredenciales    = errors.New("credenciales inválidas")
	ErrCaptchaInvalido = errors.New("captcha incorrecto o expirado")
	ErrPasswordDebil   = errors.New("la contraseña no cumple la política de seguridad")
	ErrCorreoRegistrado = errors.New("el correo ya está registrado")
)
