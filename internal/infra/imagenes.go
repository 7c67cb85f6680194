package infra

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// GuardarImagenProducto copies the selected image into dirImagenes, renamed
// after the product code. It returns only the bare destination filename —
// never a path — which is what gets persisted on the product row.
func GuardarImagenProducto(dirImagenes, rutaOrigen, codigo string) (string, error) {
	if strings.TrimSpace(rutaOrigen) == "" || strings.TrimSpace(codigo) == "" {
		return "", fmt.Errorf("imagenes: origen y codigo son obligatorios")
	}
	if err := os.MkdirAll(dirImagenes, 0o755); err != nil {
		return "", fmt.Errorf("imagenes: crear directorio: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(rutaOrigen))
	nombreDestino := codigo + ext
	rutaDestino := filepath.Join(dirImagenes, nombreDestino)

	src, err := os.Open(rutaOrigen)
	if err != nil {
		return "", fmt.Errorf("imagenes: abrir origen: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(rutaDestino)
	if err != nil {
		return "", fmt.Errorf("imagenes: crear destino: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("imagenes: copiar: %w", err)
	}
	return nombreDestino, nil
}
