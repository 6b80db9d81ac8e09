package core

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"github.com/marcmoiagese/SeparaNoms/core/noms"
)

// Capçaleres que substitueixen la columna del nom complet.
var outputColumns = []string{"Given Name", "First Surname", "Second Surname"}

// Columnes que es proven, en ordre, quan no se'n indica cap.
var nameColumnCandidates = []string{"name", "nombre", "nom", "nom complet", "nombre completo", "full name"}

type ImportOptions struct {
	// Column és la capçalera de la columna amb el nom complet. Buida: autodetecció.
	Column string
	// Encoding: "utf-8" (per defecte) o "latin1".
	Encoding string
	// Persist desa cada nom separat a la BD.
	Persist bool
	Origen  string
}

type ImportResult struct {
	Rows    int
	Parsed  int
	Skipped int
}

// ImportCSV llegeix un CSV, substitueix la columna del nom complet per tres
// columnes (nom, primer cognom, segon cognom) i l'escriu a w amb el mateix
// separador. Les files amb el nom buit es deixen amb les tres columnes buides.
func (a *App) ImportCSV(r io.Reader, w io.Writer, opts ImportOptions) (ImportResult, error) {
	var res ImportResult
	if opts.Persist && a.DB == nil {
		return res, fmt.Errorf("s'ha demanat desar a la BD però no n'hi ha cap")
	}

	var encoded io.Closer
	switch strings.ToLower(strings.TrimSpace(opts.Encoding)) {
	case "", "utf-8", "utf8":
	case "latin1", "latin-1", "iso-8859-1":
		r = charmap.ISO8859_1.NewDecoder().Reader(r)
		w = encoding.ReplaceUnsupported(charmap.ISO8859_1.NewEncoder()).Writer(w)
		encoded, _ = w.(io.Closer)
	default:
		return res, fmt.Errorf("codificació no suportada: %q", opts.Encoding)
	}

	br := bufio.NewReader(r)
	headerLine, err := br.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return res, fmt.Errorf("error llegint la capçalera: %w", err)
	}
	if strings.TrimSpace(headerLine) == "" {
		return res, fmt.Errorf("el CSV és buit")
	}
	sep := detectCSVSeparator(headerLine)

	reader := csv.NewReader(io.MultiReader(strings.NewReader(headerLine), br))
	reader.Comma = sep
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return res, fmt.Errorf("error llegint la capçalera: %w", err)
	}
	header[0] = strings.TrimPrefix(header[0], "\ufeff")
	idx, err := findNameColumn(header, opts.Column)
	if err != nil {
		return res, err
	}

	writer := csv.NewWriter(w)
	writer.Comma = sep
	if err := writer.Write(replaceColumn(header, idx, outputColumns)); err != nil {
		return res, err
	}

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return res, fmt.Errorf("error llegint la fila %d: %w", res.Rows+2, err)
		}
		res.Rows++

		var full string
		if idx < len(row) {
			full = row[idx]
		}
		parts := []string{"", "", ""}
		p, err := a.Splitter.Split(full)
		switch {
		case errors.Is(err, noms.ErrEmptyInput):
			res.Skipped++
			Debugf("fila %d sense nom", res.Rows+1)
		case err != nil:
			return res, err
		default:
			res.Parsed++
			parts = []string{p.GivenName, p.FirstSurname, p.SecondSurname}
			if opts.Persist {
				if _, err := a.DB.SaveParsedName(toRecord(p, opts.Origen)); err != nil {
					return res, fmt.Errorf("desant la fila %d: %w", res.Rows+1, err)
				}
			}
		}
		for len(row) <= idx {
			row = append(row, "")
		}
		if err := writer.Write(replaceColumn(row, idx, parts)); err != nil {
			return res, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return res, err
	}
	if encoded != nil {
		if err := encoded.Close(); err != nil {
			return res, err
		}
	}
	Infof("CSV processat: %d files, %d separades, %d sense nom", res.Rows, res.Parsed, res.Skipped)
	return res, nil
}

func detectCSVSeparator(line string) rune {
	best, bestCount := ',', 0
	for _, c := range []rune{',', ';', '\t'} {
		if n := strings.Count(line, string(c)); n > bestCount {
			best, bestCount = c, n
		}
	}
	return best
}

func findNameColumn(header []string, column string) (int, error) {
	norm := func(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
	if column != "" {
		for i, h := range header {
			if norm(h) == norm(column) {
				return i, nil
			}
		}
		return -1, fmt.Errorf("la columna %q no existeix", column)
	}
	for _, cand := range nameColumnCandidates {
		for i, h := range header {
			if norm(h) == cand {
				return i, nil
			}
		}
	}
	return -1, fmt.Errorf("no es troba cap columna amb noms (%s)", strings.Join(nameColumnCandidates, ", "))
}

func replaceColumn(row []string, idx int, with []string) []string {
	out := make([]string, 0, len(row)+len(with)-1)
	out = append(out, row[:idx]...)
	out = append(out, with...)
	return append(out, row[idx+1:]...)
}
