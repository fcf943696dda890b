package service

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Erros de obtenção dos bytes da planilha
var (
	ErrWorkbookNotFound   = errors.New("planilha não encontrada")
	ErrWorkbookUnreadable = errors.New("planilha não pôde ser lida")
	ErrFileTooLarge       = errors.New("arquivo excede limite de 10MB")
	ErrUnsupportedType    = errors.New("formato de arquivo não suportado (use XLSX ou XLSM)")
	ErrEmptyFile          = errors.New("arquivo está vazio")
)

// MaxFileSize is the maximum allowed file size (10MB)
const MaxFileSize = 10 * 1024 * 1024

var supportedExtensions = map[string]bool{
	".xlsx": true,
	".xlsm": true,
}

// CheckExtension valida a extensão do arquivo
func CheckExtension(filename string) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if !supportedExtensions[ext] {
		return fmt.Errorf("%w: %q", ErrUnsupportedType, ext)
	}
	return nil
}

// ReadWorkbookFile lê a planilha configurada do disco
func ReadWorkbookFile(path string) ([]byte, error) {
	if err := CheckExtension(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrWorkbookNotFound, path)
		}
		return nil, fmt.Errorf("%w: %v", ErrWorkbookUnreadable, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWorkbookUnreadable, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s é um diretório", ErrWorkbookUnreadable, path)
	}
	return ReadWorkbook(path, f, info.Size())
}

// ReadWorkbook lê bytes de um upload ou arquivo aplicando os limites de
// tamanho. size < 0 significa desconhecido; o limite é verificado na leitura.
func ReadWorkbook(filename string, r io.Reader, size int64) ([]byte, error) {
	if err := CheckExtension(filename); err != nil {
		return nil, err
	}
	if size > MaxFileSize {
		return nil, ErrFileTooLarge
	}
	if size == 0 {
		return nil, ErrEmptyFile
	}

	data, err := io.ReadAll(io.LimitReader(r, MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWorkbookUnreadable, err)
	}
	if len(data) > MaxFileSize {
		return nil, ErrFileTooLarge
	}
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}
	return data, nil
}
