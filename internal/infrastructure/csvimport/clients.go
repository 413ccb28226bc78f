// Package csvimport lee exportaciones CSV de clientes (hojas de cálculo, otros CRM).
package csvimport

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/taxdesk/clientdesk-api/internal/application/dto"
)

// Charsets soportados para el archivo de entrada.
const (
	CharsetUTF8   = "utf-8"
	CharsetLatin1 = "iso-8859-1"
)

// RowError fila descartada y su causa. Line es 1-based, incluyendo el encabezado.
type RowError struct {
	Line int
	Err  error
}

func (e RowError) Error() string { return fmt.Sprintf("línea %d: %v", e.Line, e.Err) }

// ReadClients lee un CSV con encabezado que contenga al menos las columnas name y email
// (phone es opcional, el orden es libre). Las filas inválidas se devuelven en rowErrs
// sin abortar la lectura.
func ReadClients(r io.Reader, charset string) (clients []dto.CreateClientRequest, rowErrs []RowError, err error) {
	switch strings.ToLower(charset) {
	case "", CharsetUTF8, "utf8":
	case CharsetLatin1, "iso8859-1", "latin1":
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	default:
		return nil, nil, fmt.Errorf("charset %q no soportado", charset)
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, errors.New("archivo vacío")
		}
		return nil, nil, fmt.Errorf("leer encabezado: %w", err)
	}
	cols := columnIndex(header)
	nameCol, okName := cols["name"]
	emailCol, okEmail := cols["email"]
	if !okName || !okEmail {
		return nil, nil, errors.New("el encabezado debe incluir las columnas name y email")
	}
	phoneCol, hasPhone := cols["phone"]

	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			rowErrs = append(rowErrs, RowError{Line: line, Err: err})
			continue
		}
		in := dto.CreateClientRequest{Name: field(rec, nameCol), Email: field(rec, emailCol)}
		if hasPhone {
			phone := field(rec, phoneCol)
			in.Phone = &phone
		}
		if err := in.Validate(); err != nil {
			rowErrs = append(rowErrs, RowError{Line: line, Err: err})
			continue
		}
		in.Phone = dto.NormalizeOptional(in.Phone)
		clients = append(clients, in)
	}
	return clients, rowErrs, nil
}

func columnIndex(header []string) map[string]int {
	out := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := out[key]; !dup {
			out[key] = i
		}
	}
	return out
}

func field(rec []string, i int) string {
	if i >= len(rec) {
		return ""
	}
	return rec[i]
}
