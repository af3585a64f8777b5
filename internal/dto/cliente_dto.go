package dto

type RegistrarClienteRequest struct {
	Nombre    string `json:"nombre"    validate:"required"`
	Apellidos string `json:"apellidos" validate:"required"`
	Correo    string `json:"correo"    validate:"required,email"`
	Password  string `json:"password"  validate:"required"`
	Direccion string `json:"direccion" validate:"required"`
	Celular   string `json:"celular"   validate:"required"`
}

type ActualizarClienteRequest struct {
	Nombre    *string `json:"nombre"`
	Apellidos *string `json:"apellidos"`
	Correo    *string `json:"correo"    validate:"omitempty,email"`
	Password  *string `json:"password"`
	Direccion *string `json:"direccion"`
	Celular   *string `json:"celular"`
}

type LoginClienteRequest struct {
	Correo   string `json:"correo"   validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ClienteResponse struct {
	ID        string `json:"id"`
	Nombre    string `json:"nombre"`
	Apellidos string `json:"apellidos"`
	Correo    string `json:"correo"`
	Direccion string `json:"direccion"`
	Celular   string `json:"celular"`
}

type LoginClienteResponse struct {
	AccessToken string          `json:"access_token"`
	TokenType   string          `json:"token_type"`
	ExpiresIn   int             `json:"expires_in"`
	Cliente     ClienteResponse `json:"cliente"`
}
