// Package seed carga datos de referencia desde archivos a través de los mismos casos de uso
// que la API, de modo que la carga obedece la normalización y la unicidad.
package seed

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/masterdata-api/internal/application/dto"
	"github.com/jhoicas/masterdata-api/internal/domain"
)

// CountryCreator alta de países (CountryUseCase).
type CountryCreator interface {
	Create(ctx context.Context, actor string, in dto.CountryRequest) (*dto.CountryResponse, error)
}

// Skip fila del CSV que no se cargó.
type Skip struct {
	Line   int
	Reason string
}

// Report resultado de una carga.
type Report struct {
	Created int
	Skipped []Skip
}

var countryColumns = []string{"code", "name", "year", "cctld"}

// Countries lee un CSV con encabezado (code,name[,year,cctld], en cualquier orden) y crea
// cada fila. Las filas duplicadas o inválidas se omiten y se informan; un error inesperado
// aborta la carga. charset admite "utf-8" (por defecto) e "iso-8859-1"/"latin1".
func Countries(ctx context.Context, r io.Reader, charset string, uc CountryCreator, actor string) (Report, error) {
	var rep Report
	src, err := decode(r, charset)
	if err != nil {
		return rep, err
	}
	cr := csv.NewReader(src)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return rep, fmt.Errorf("seed: leer encabezado: %w", err)
	}
	idx, err := columnIndex(header)
	if err != nil {
		return rep, err
	}

	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return rep, nil
		}
		line++
		if err != nil {
			return rep, fmt.Errorf("seed: línea %d: %w", line, err)
		}
		_, err = uc.Create(ctx, actor, dto.CountryRequest{
			Code:  column(rec, idx, "code"),
			Name:  column(rec, idx, "name"),
			Year:  column(rec, idx, "year"),
			CCTLD: column(rec, idx, "cctld"),
		})
		if err == nil {
			rep.Created++
			continue
		}
		if _, ok := domain.AsError(err); ok {
			rep.Skipped = append(rep.Skipped, Skip{Line: line, Reason: err.Error()})
			continue
		}
		return rep, fmt.Errorf("seed: línea %d: %w", line, err)
	}
}

func decode(r io.Reader, charset string) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(charset)) {
	case "", "utf-8", "utf8":
		return skipBOM(r)
	case "iso-8859-1", "latin1":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	case "windows-1252", "cp1252":
		return transform.NewReader(r, charmap.Windows1252.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("seed: charset no soportado %q", charset)
	}
}

func skipBOM(r io.Reader) (io.Reader, error) {
	head := make([]byte, 3)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, err
	}
	head = head[:n]
	head = bytes.TrimPrefix(head, []byte{0xEF, 0xBB, 0xBF})
	return io.MultiReader(bytes.NewReader(head), r), nil
}

func columnIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		for _, c := range countryColumns {
			if name == c {
				idx[c] = i
			}
		}
	}
	for _, required := range []string{"code", "name"} {
		if _, ok := idx[required]; !ok {
			return nil, fmt.Errorf("seed: falta la columna %q", required)
		}
	}
	return idx, nil
}

// column devuelve nil si la columna no existe; el pipeline trata el vacío como ausente.
func column(rec []string, idx map[string]int, name string) *string {
	i, ok := idx[name]
	if !ok || i >= len(rec) {
		return nil
	}
	v := rec[i]
	return &v
}
