package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"pastelpos/internal/dto"
	"pastelpos/internal/model"
	"pastelpos/internal/repository"
	"pastelpos/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClienteRepo struct {
	clientes map[uuid.UUID]*model.Cliente
}

func newStubClienteRepo() *stubClienteRepo {
	return &stubClienteRepo{clientes: make(map[uuid.UUID]*model.Cliente)}
}

func (r *stubClienteRepo) Create(_ context.Context, c *model.Cliente) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.clientes[c.ID] = c
	return nil
}

func (r *stubClienteRepo) FindByCorreo(_ context.Context, correo string) (*model.Cliente, error) {
	for _, c := range r.clientes {
		if strings.EqualFold(c.Correo, correo) {
			return c, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubClienteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Cliente, error) {
	c, ok := r.clientes[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return c, nil
}

func (r *stubClienteRepo) Update(_ context.Context, c *model.Cliente) error {
	if _, ok := r.clientes[c.ID]; !ok {
		return errors.New("not found")
	}
	r.clientes[c.ID] = c
	return nil
}

var _ repository.ClienteRepository = (*stubClienteRepo)(nil)

func registroValido() dto.RegistrarClienteRequest {
	return dto.RegistrarClienteRequest{
		Nombre:    "Lucia",
		Apellidos: "Rojas",
		Correo:    "Lucia@Test.com",
		Password:  "Cliente#99",
		Direccion: "Av. Siempre Viva 123",
		Celular:   "70000000",
	}
}

func TestRegistrarCliente(t *testing.T) {
	svc := service.NewClienteService(newStubClienteRepo(), testConfig())

	resp, err := svc.Registrar(context.Background(), registroValido())
	require.NoError(t, err)
	assert.Equal(t, "lucia@test.com", resp.Correo, "correo stored lowercase")
	assert.Equal(t, "Lucia", resp.Nombre)
}

func TestRegistrarClientePasswordDebil(t *testing.T) {
	svc := service.NewClienteService(newStubClienteRepo(), testConfig())

	req := registroValido()
	req.Password = "1234"
	_, err := svc.Registrar(context.Background(), req)
	assert.ErrorIs(t, err, service.ErrPasswordDebil)
}

func TestRegistrarClienteCorreoDuplicado(t *testing.T) {
	svc := service.NewClienteService(newStubClienteRepo(), testConfig())

	_, err := svc.Registrar(context.Background(), registroValido())
	require.NoError(t, err)
	_, err = svc.Registrar(context.Background(), registroValido())
	assert.ErrorIs(t, err, service.ErrCorreoRegistrado)
}

func TestLoginCliente(t *testing.T) {
	repo := newStubClienteRepo()
	svc := service.NewClienteService(repo, testConfig())

	_, err := svc.Registrar(context.Background(), registroValido())
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), dto.LoginClienteRequest{
		Correo:   "lucia@test.com",
		Password: "Cliente#99",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "bearer", resp.TokenType)

	_, err = svc.Login(context.Background(), dto.LoginClienteRequest{
		Correo:   "lucia@test.com",
		Password: "otra",
	})
	assert.ErrorIs(t, err, service.ErrCredenciales)
}

func TestPerfilCliente(t *testing.T) {
	svc := service.NewClienteService(newStubClienteRepo(), testConfig())

	creado, err := svc.Registrar(context.Background(), registroValido())
	require.NoError(t, err)
	id := uuid.MustParse(creado.ID)

	perfil, err := svc.Perfil(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "lucia@test.com", perfil.Correo)
	assert.Equal(t, "Av. Siempre Viva 123", perfil.Direccion)

	_, err = svc.Perfil(context.Background(), uuid.New())
	assert.Error(t, err)
}

func TestActualizarPerfilCliente(t *testing.T) {
	svc := service.NewClienteService(newStubClienteRepo(), testConfig())

	creado, err := svc.Registrar(context.Background(), registroValido())
	require.NoError(t, err)
	id := uuid.MustParse(creado.ID)

	direccion := "Calle Nueva 456"
	nuevoPass := "Cliente#2026"
	resp, err := svc.ActualizarPerfil(context.Background(), id, dto.ActualizarClienteRequest{
		Direccion: &direccion,
		Password:  &nuevoPass,
	})
	require.NoError(t, err)
	assert.Equal(t, "Calle Nueva 456", resp.Direccion)
	assert.Equal(t, "Lucia", resp.Nombre, "unset fields keep their value")

	// The new password opens the account, the old one no longer does.
	_, err = svc.Login(context.Background(), dto.LoginClienteRequest{
		Correo: "lucia@test.com", Password: nuevoPass,
	})
	require.NoError(t, err)
	_, err = svc.Login(context.Background(), dto.LoginClienteRequest{
		Correo: "lucia@test.com", Password: "Cliente#99",
	})
	assert.ErrorIs(t, err, service.ErrCredenciales)
}

func TestActualizarPerfilClientePasswordDebil(t *testing.T) {
	svc := service.NewClienteService(newStubClienteRepo(), testConfig())

	creado, err := svc.Registrar(context.Background(), registroValido())
	require.NoError(t, err)

	debil := "1234"
	_, err = svc.ActualizarPerfil(context.Background(), uuid.MustParse(creado.ID),
		dto.ActualizarClienteRequest{Password: &debil})
	assert.ErrorIs(t, err, service.ErrPasswordDebil)
}

func TestActualizarPerfilClienteCorreoDuplicado(t *testing.T) {
	svc := service.NewClienteService(newStubClienteRepo(), testConfig())

	creado, err := svc.Registrar(context.Background(), registroValido())
	require.NoError(t, err)

	otro := registroValido()
	otro.Correo = "otro@test.com"
	_, err = svc.Registrar(context.Background(), otro)
	require.NoError(t, err)

	ocupado := "otro@test.com"
	_, err = svc.ActualizarPerfil(context.Background(), uuid.MustParse(creado.ID),
		dto.ActualizarClienteRequest{Correo: &ocupado})
	assert.ErrorIs(t, err, service.ErrCorreoRegistrado)
}
