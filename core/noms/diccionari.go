package noms

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

// ErrMalformedDictionary agrupa tots els errors de format del diccionari.
var ErrMalformedDictionary = errors.New("diccionari mal format")

// DictionaryError descriu una entrada de diccionari rebutjada.
type DictionaryError struct {
	Line   int
	Entry  string
	Reason string
}

func (e *DictionaryError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("diccionari, línia %d: %s (%q)", e.Line, e.Reason, e.Entry)
	}
	return fmt.Sprintf("diccionari: %s (%q)", e.Reason, e.Entry)
}

func (e *DictionaryError) Unwrap() error {
	return ErrMalformedDictionary
}

var defaultMarkers = [...]string{
	"de", "del", "dels", "la", "las", "los", "el", "els", "les",
	"y", "i",
	"da", "das", "do", "dos", "du", "di", "della",
	"van", "von",
}

// DefaultMarkers retorna les partícules que s'enganxen al mot següent quan
// no se'n configuren d'altres. Qualsevol mot acabat en apòstrof (d', l')
// també ho és.
func DefaultMarkers() []string {
	return append([]string(nil), defaultMarkers[:]...)
}

type trieNode struct {
	children map[string]*trieNode
	terminal bool
}

// Dictionary conté els noms de pila compostos i les partícules de cognom.
// No es modifica mai després de NewDictionary.
type Dictionary struct {
	root       *trieNode
	givenNames []string
	markers    map[string]struct{}
}

// NewDictionary construeix un diccionari. Cada nom compost ha de tenir com
// a mínim dos mots i cada partícula exactament un. Si markers és nil es fan
// servir DefaultMarkers(); un slice buit desactiva les partícules.
func NewDictionary(givenNames, markers []string) (*Dictionary, error) {
	d := &Dictionary{
		root:    &trieNode{},
		markers: map[string]struct{}{},
	}
	seen := map[string]bool{}
	for _, entry := range givenNames {
		if err := validateGivenName(entry); err != nil {
			return nil, err
		}
		words := strings.Fields(entry)
		key := fold(strings.Join(words, " "))
		if seen[key] {
			continue
		}
		seen[key] = true
		d.insert(words)
		d.givenNames = append(d.givenNames, strings.Join(words, " "))
	}
	if markers == nil {
		markers = defaultMarkers[:]
	}
	for _, m := range markers {
		if err := validateMarker(m); err != nil {
			return nil, err
		}
		d.markers[fold(strings.TrimSpace(m))] = struct{}{}
	}
	return d, nil
}

func validateGivenName(entry string) error {
	if len(strings.Fields(entry)) < 2 {
		return &DictionaryError{Entry: entry, Reason: "un nom compost necessita almenys dos mots"}
	}
	return nil
}

func validateMarker(entry string) error {
	if len(strings.Fields(entry)) != 1 {
		return &DictionaryError{Entry: entry, Reason: "una partícula ha de ser un sol mot"}
	}
	return nil
}

func (d *Dictionary) insert(words []string) {
	node := d.root
	for _, w := range words {
		key := fold(w)
		if node.children == nil {
			node.children = map[string]*trieNode{}
		}
		next, ok := node.children[key]
		if !ok {
			next = &trieNode{}
			node.children[key] = next
		}
		node = next
	}
	node.terminal = true
}

// longestGivenName retorna quants mots inicials de tokens formen el nom
// compost més llarg del diccionari, o 0 si no n'hi ha cap.
func (d *Dictionary) longestGivenName(tokens []string) int {
	best := 0
	node := d.root
	for i, tok := range tokens {
		next, ok := node.children[fold(tok)]
		if !ok {
			break
		}
		node = next
		if node.terminal {
			best = i + 1
		}
	}
	return best
}

// surnameUnits agrupa els mots de cognom en unitats: cada partícula
// s'enganxa al mot que la segueix. Es recorre de darrere cap endavant
// perquè "de la Cruz" quedi en una sola unitat. El segon valor indica si
// s'ha enganxat alguna partícula.
func (d *Dictionary) surnameUnits(tokens []string) ([][]string, bool) {
	var units [][]string
	marked := false
	for i := len(tokens) - 1; i >= 0; i-- {
		tok := tokens[i]
		if len(units) > 0 && d.IsMarker(tok) {
			units[0] = append([]string{tok}, units[0]...)
			marked = true
			continue
		}
		units = append([][]string{{tok}}, units...)
	}
	return units, marked
}

// IsMarker indica si tok és una partícula de cognom.
func (d *Dictionary) IsMarker(tok string) bool {
	if strings.HasSuffix(tok, "'") || strings.HasSuffix(tok, "’") {
		return true
	}
	_, ok := d.markers[fold(tok)]
	return ok
}

// GivenNames retorna els noms compostos, ordenats.
func (d *Dictionary) GivenNames() []string {
	out := append([]string(nil), d.givenNames...)
	sort.Strings(out)
	return out
}

// Markers retorna les partícules (en minúscules plegades), ordenades.
func (d *Dictionary) Markers() []string {
	out := make([]string, 0, len(d.markers))
	for m := range d.markers {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

// Len retorna el nombre de noms compostos.
func (d *Dictionary) Len() int {
	return len(d.givenNames)
}

// fold normalitza la caixa per comparar. Un Caser no es pot compartir entre
// goroutines, per això se'n crea un a cada crida.
func fold(s string) string {
	return cases.Fold().String(s)
}
