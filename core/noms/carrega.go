package noms

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	sectionGivenNames = "given name tokens"
	sectionMarkers    = "surname tokens"
)

// Noms de secció acceptats, en minúscules.
var sectionAliases = map[string]string{
	"given name tokens": sectionGivenNames,
	"noms compostos":    sectionGivenNames,
	"surname tokens":    sectionMarkers,
	"particules":        sectionMarkers,
	"partícules":        sectionMarkers,
}

type dictLine struct {
	num  int
	text string
}

// LoadDictionary llegeix un diccionari en format text.
//
// Si el fitxer té capçaleres de secció ([given name tokens], [surname
// tokens]) les entrades van a la secció on són; si no en té cap, cada línia
// és un nom de pila compost. Els comentaris comencen amb '#'. Qualsevol
// entrada incorrecta fa fallar la càrrega sencera.
func LoadDictionary(r io.Reader) (*Dictionary, error) {
	var lines []dictLine
	sectioned := false
	scanner := bufio.NewScanner(r)
	num := 0
	for scanner.Scan() {
		num++
		text, _, _ := strings.Cut(scanner.Text(), "#")
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		if strings.HasPrefix(text, "[") {
			sectioned = true
		}
		lines = append(lines, dictLine{num: num, text: text})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error llegint el diccionari: %w", err)
	}

	if !sectioned {
		given := make([]string, 0, len(lines))
		for _, l := range lines {
			if err := validateGivenName(l.text); err != nil {
				return nil, withLine(err, l.num)
			}
			given = append(given, l.text)
		}
		return NewDictionary(given, nil)
	}

	var given, markers []string
	section := ""
	for _, l := range lines {
		if strings.HasPrefix(l.text, "[") {
			if !strings.HasSuffix(l.text, "]") {
				return nil, &DictionaryError{Line: l.num, Entry: l.text, Reason: "capçalera de secció sense tancar"}
			}
			name := strings.ToLower(strings.TrimSpace(l.text[1 : len(l.text)-1]))
			canonical, ok := sectionAliases[name]
			if !ok {
				return nil, &DictionaryError{Line: l.num, Entry: l.text, Reason: "secció desconeguda"}
			}
			section = canonical
			if section == sectionMarkers && markers == nil {
				markers = []string{}
			}
			continue
		}
		switch section {
		case sectionGivenNames:
			if err := validateGivenName(l.text); err != nil {
				return nil, withLine(err, l.num)
			}
			given = append(given, l.text)
		case sectionMarkers:
			if err := validateMarker(l.text); err != nil {
				return nil, withLine(err, l.num)
			}
			markers = append(markers, l.text)
		default:
			return nil, &DictionaryError{Line: l.num, Entry: l.text, Reason: "entrada fora de cap secció"}
		}
	}
	return NewDictionary(given, markers)
}

func withLine(err error, line int) error {
	var de *DictionaryError
	if errors.As(err, &de) {
		de.Line = line
	}
	return err
}

type yamlDictionary struct {
	GivenNames     []string `yaml:"given_names"`
	SurnameMarkers []string `yaml:"surname_markers"`
}

// LoadDictionaryYAML llegeix un diccionari YAML amb les claus given_names i
// surname_markers. Si surname_markers no hi és es fan servir les partícules
// per defecte.
func LoadDictionaryYAML(r io.Reader) (*Dictionary, error) {
	var doc yamlDictionary
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDictionary, err)
	}
	return NewDictionary(doc.GivenNames, doc.SurnameMarkers)
}

// LoadDictionaryFile obre path i el llegeix segons l'extensió (.yaml/.yml o
// text).
func LoadDictionaryFile(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("no s'ha pogut obrir el diccionari: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return LoadDictionaryYAML(f)
	default:
		return LoadDictionary(f)
	}
}
