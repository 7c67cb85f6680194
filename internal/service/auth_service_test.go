package service

import (
	"context"
	"testing"

	"autopartes/internal/config"
	"autopartes/internal/dto"
	"autopartes/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nuevoAuthPrueba(t *testing.T) (AuthService, *config.Config) {
	t.Helper()
	cfg := &config.Config{
		DataDir:            t.TempDir(),
		DBFile:             "inventario.db",
		BusyTimeoutMS:      5000,
		JWTSecret:          "secreto-de-prueba",
		JWTExpirationHours: 8,
	}
	db := nuevaDBPruebaCfg(t, cfg)
	return NewAuthService(repository.NewUsuarioRepository(db), cfg), cfg
}

func TestCrearUsuarioYLogin(t *testing.T) {
	svc, cfg := nuevoAuthPrueba(t)
	ctx := context.Background()

	creado, err := svc.CrearUsuario(ctx, dto.CrearUsuarioRequest{
		Username: "maria",
		Nombre:   "Maria Lopez",
		Password: "clave1234",
		Rol:      "admin",
	})
	require.NoError(t, err)
	assert.Greater(t, creado.ID, int64(0))
	assert.Equal(t, "maria", creado.Username)

	resp, err := svc.Login(ctx, dto.LoginRequest{Username: "maria", Password: "clave1234"})
	require.NoError(t, err)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 8*3600, resp.ExpiresIn)
	assert.Equal(t, "admin", resp.User.Rol)

	// El token firma con el secreto configurado y lleva las claims del usuario
	token, err := jwt.Parse(resp.AccessToken, func(tok *jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTSecret), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)
	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, "maria", claims["username"])
	assert.Equal(t, "admin", claims["rol"])
}

func TestLoginPasswordIncorrecta(t *testing.T) {
	svc, _ := nuevoAuthPrueba(t)
	ctx := context.Background()

	_, err := svc.CrearUsuario(ctx, dto.CrearUsuarioRequest{
		Username: "maria",
		Nombre:   "Maria Lopez",
		Password: "clave1234",
		Rol:      "vendedor",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, dto.LoginRequest{Username: "maria", Password: "otra"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "credenciales invalidas")
}

func TestLoginUsuarioInexistente(t *testing.T) {
	svc, _ := nuevoAuthPrueba(t)

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "nadie", Password: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "credenciales invalidas")
}

func TestCrearUsuarioDuplicado(t *testing.T) {
	svc, _ := nuevoAuthPrueba(t)
	ctx := context.Background()

	req := dto.CrearUsuarioRequest{
		Username: "maria",
		Nombre:   "Maria Lopez",
		Password: "clave1234",
		Rol:      "vendedor",
	}
	_, err := svc.CrearUsuario(ctx, req)
	require.NoError(t, err)

	_, err = svc.CrearUsuario(ctx, req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ya existe")
}
