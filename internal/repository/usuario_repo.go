package repository

import (
	"context"
	"errors"
	"fmt"

	"autopartes/internal/infra"
	"autopartes/internal/model"

	"gorm.io/gorm"
)

type UsuarioRepository interface {
	Crear(ctx context.Context, u *model.Usuario) error
	ObtenerPorUsername(ctx context.Context, username string) (*model.Usuario, error)
}

type usuarioRepo struct{ db *infra.DB }

func NewUsuarioRepository(db *infra.DB) UsuarioRepository { return &usuarioRepo{db: db} }

func (r *usuarioRepo) Crear(ctx context.Context, u *model.Usuario) error {
	h, err := r.db.Acquire()
	if err != nil {
		return err
	}
	defer r.db.Release(h)

	if err := h.WithContext(ctx).Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("el usuario %q ya existe", u.Username)
		}
		return fmt.Errorf("crear usuario: %w", err)
	}
	return nil
}

// ObtenerPorUsername returns nil when no active user matches.
func (r *usuarioRepo) ObtenerPorUsername(ctx context.Context, username string) (*model.Usuario, error) {
	h, err := r.db.Acquire()
	if err != nil {
		return nil, err
	}
	defer r.db.Release(h)

	var u model.Usuario
	res := h.WithContext(ctx).Where("username = ? AND activo = ?", username, true).First(&u)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("buscar usuario %q: %w", username, res.Error)
	}
	return &u, nil
}
