package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/h2non/filetype"
)

// Formatos de currículum aceptados, por tipo MIME real.
var allowedCVTypes = map[string]string{
	"application/pdf": ".pdf",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": ".docx",
	"application/msword": ".doc",
}

// CVStorage es el almacenamiento en disco de los currículums de los
// postulantes, organizado por RUT.
type CVStorage struct {
	rootPath       string
	maxUploadBytes int64
}

// NewCVStorage crea el almacenamiento de currículums.
func NewCVStorage(rootPath string, maxUploadMB int64) (*CVStorage, error) {
	if err := os.MkdirAll(rootPath, 0o755); err != nil {
		return nil, fmt.Errorf("storage: no se pudo crear el directorio %s: %w", rootPath, err)
	}

	return &CVStorage{
		rootPath:       rootPath,
		maxUploadBytes: maxUploadMB * 1024 * 1024,
	}, nil
}

// Save valida y guarda el CV de un candidato, retornando la ruta relativa.
// El tipo se verifica con los bytes mágicos del archivo, no con la
// extensión declarada.
func (s *CVStorage) Save(ctx context.Context, rut, originalName string, r io.Reader) (string, int64, error) {
	if err := ctx.Err(); err != nil {
		return "", 0, err
	}

	head := make([]byte, 512)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", 0, fmt.Errorf("storage: no se pudo leer el archivo: %w", err)
	}
	head = head[:n]

	kind, err := filetype.Match(head)
	if err != nil || kind == filetype.Unknown {
		return "", 0, fmt.Errorf("storage: no se pudo determinar el tipo del archivo")
	}
	ext, ok := allowedCVTypes[kind.MIME.Value]
	if !ok {
		return "", 0, fmt.Errorf("storage: tipo de archivo no permitido (%s); se aceptan PDF y Word", kind.MIME.Value)
	}

	dir := filepath.Join(s.rootPath, sanitizeFilename(rut))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", 0, fmt.Errorf("storage: no se pudo crear el directorio del candidato: %w", err)
	}

	fileName := fmt.Sprintf("cv_%d%s", time.Now().UnixNano(), ext)
	targetPath := filepath.Join(dir, fileName)
	tempPath := targetPath + ".tmp"

	f, err := os.Create(tempPath)
	if err != nil {
		return "", 0, fmt.Errorf("storage: no se pudo crear el archivo: %w", err)
	}
	defer f.Close()

	limited := io.LimitedReader{R: io.MultiReader(bytes.NewReader(head), r), N: s.maxUploadBytes + 1}
	written, err := io.Copy(f, &limited)
	if err != nil {
		_ = os.Remove(tempPath)
		return "", 0, fmt.Errorf("storage: error al escribir el archivo: %w", err)
	}

	if written > s.maxUploadBytes {
		_ = os.Remove(tempPath)
		return "", 0, fmt.Errorf("storage: el archivo supera el límite de %d bytes", s.maxUploadBytes)
	}

	if err := f.Close(); err != nil {
		return "", 0, fmt.Errorf("storage: error al cerrar el archivo: %w", err)
	}

	if err := os.Rename(tempPath, targetPath); err != nil {
		return "", 0, fmt.Errorf("storage: no se pudo renombrar el archivo: %w", err)
	}

	relative := filepath.Join(sanitizeFilename(rut), fileName)
	return relative, written, nil
}

// Path retorna la ruta absoluta de un CV guardado, verificando que no
// escape del directorio raíz.
func (s *CVStorage) Path(relativePath string) (string, error) {
	target := filepath.Join(s.rootPath, relativePath)
	clean, err := filepath.Abs(target)
	if err != nil {
		return "", fmt.Errorf("storage: ruta inválida: %w", err)
	}
	root, err := filepath.Abs(s.rootPath)
	if err != nil {
		return "", fmt.Errorf("storage: ruta inválida: %w", err)
	}
	if !strings.HasPrefix(clean, root+string(os.PathSeparator)) {
		return "", fmt.Errorf("storage: la ruta escapa del directorio de currículums")
	}
	if _, err := os.Stat(clean); err != nil {
		return "", fmt.Errorf("storage: el archivo no existe: %w", err)
	}
	return clean, nil
}

// Delete elimina un CV del almacenamiento.
func (s *CVStorage) Delete(ctx context.Context, relativePath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	target := filepath.Join(s.rootPath, relativePath)
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage: no se pudo eliminar el archivo: %w", err)
	}
	return nil
}

// sanitizeFilename elimina caracteres peligrosos de un nombre.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "..", "")
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	if name == "" {
		name = "cv"
	}
	return name
}
