package storage

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// pdfBytes arma un PDF mínimo con los bytes mágicos correctos.
func pdfBytes(size int) []byte {
	out := make([]byte, size)
	copy(out, "%PDF-1.4\n")
	return out
}

func newTestStorage(t *testing.T) *CVStorage {
	t.Helper()
	s, err := NewCVStorage(t.TempDir(), 1)
	if err != nil {
		t.Fatalf("NewCVStorage: %v", err)
	}
	return s
}

func TestCVStorageSaveAndPath(t *testing.T) {
	s := newTestStorage(t)
	content := pdfBytes(1024)

	rel, written, err := s.Save(context.Background(), "12345678-5", "cv.pdf", bytes.NewReader(content))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if written != int64(len(content)) {
		t.Errorf("written = %d, se esperaba %d", written, len(content))
	}
	if !strings.HasPrefix(rel, "12345678-5"+string(os.PathSeparator)) {
		t.Errorf("la ruta relativa debió quedar bajo el RUT, fue %q", rel)
	}
	if filepath.Ext(rel) != ".pdf" {
		t.Errorf("extensión = %q, se esperaba .pdf", filepath.Ext(rel))
	}

	abs, err := s.Path(rel)
	if err != nil {
		t.Fatalf("Path: %v", err)
	}
	got, err := os.ReadFile(abs)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !bytes.Equal(got, content) {
		t.Error("el contenido guardado no coincide con el original")
	}
}

func TestCVStorageSaveRejectsUnknownType(t *testing.T) {
	s := newTestStorage(t)

	_, _, err := s.Save(context.Background(), "12345678-5", "cv.pdf", strings.NewReader("esto no es un pdf"))
	if err == nil {
		t.Fatal("un archivo de texto plano debió rechazarse")
	}
}

func TestCVStorageSaveRejectsDisallowedType(t *testing.T) {
	s := newTestStorage(t)

	// PNG válido pero fuera de la lista de formatos de CV.
	png := append([]byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}, make([]byte, 64)...)
	_, _, err := s.Save(context.Background(), "12345678-5", "cv.png", bytes.NewReader(png))
	if err == nil {
		t.Fatal("una imagen debió rechazarse")
	}
}

func TestCVStorageSaveEnforcesSizeLimit(t *testing.T) {
	s := &CVStorage{rootPath: t.TempDir(), maxUploadBytes: 600}

	_, _, err := s.Save(context.Background(), "12345678-5", "cv.pdf", bytes.NewReader(pdfBytes(1024)))
	if err == nil {
		t.Fatal("un archivo sobre el límite debió rechazarse")
	}

	// Sin archivos a medio escribir.
	entries, err := os.ReadDir(filepath.Join(s.rootPath, "12345678-5"))
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("quedaron %d archivos temporales", len(entries))
	}
}

func TestCVStoragePathRejectsTraversal(t *testing.T) {
	s := newTestStorage(t)

	if _, err := s.Path("../fuera.pdf"); err == nil {
		t.Fatal("una ruta que escapa de la raíz debió rechazarse")
	}
}

func TestCVStorageDelete(t *testing.T) {
	s := newTestStorage(t)

	rel, _, err := s.Save(context.Background(), "12345678-5", "cv.pdf", bytes.NewReader(pdfBytes(600)))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	if err := s.Delete(context.Background(), rel); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Path(rel); err == nil {
		t.Error("el archivo eliminado no debió resolverse")
	}
}
