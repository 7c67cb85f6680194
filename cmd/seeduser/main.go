// cmd/seeduser — crea/actualiza el usuario administrador inicial.
// Uso: go run ./cmd/seeduser
package main

import (
	"fmt"
	"log"

	"autopartes/internal/config"
	"autopartes/internal/infra"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	username := "admin"
	password := "1234"
	nombre := "Administrador"
	rol := "admin"

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		log.Fatalf("bcrypt error: %v", err)
	}

	db, err := infra.NewDB(cfg)
	if err != nil {
		log.Fatalf("db error: %v", err)
	}
	h, err := db.Acquire()
	if err != nil {
		log.Fatalf("db error: %v", err)
	}
	defer db.Release(h)

	result := h.Exec(`
		INSERT INTO usuarios (username, nombre, password_hash, rol, activo)
		VALUES (?, ?, ?, ?, 1)
		ON CONFLICT (username) DO UPDATE
		SET password_hash = excluded.password_hash,
		    nombre = excluded.nombre,
		    rol = excluded.rol,
		    activo = 1
	`, username, nombre, string(hash), rol)
	if result.Error != nil {
		log.Fatalf("insert error: %v", result.Error)
	}

	fmt.Printf("Usuario %q creado/actualizado con password %q\n", username, password)
}
