// Package noms separa un nom complet castellà en nom de pila, primer cognom
// i segon cognom.
//
// La separació és heurística: es basa en un diccionari de noms de pila
// compostos (prefix més llarg guanya) i en les partícules que enllacen
// cognoms compostos ("de", "del", "de la", "y"...). Un nom compost que en
// realitat és un primer cognom (p.ex. "Ramon") es classificarà malament; és
// una limitació coneguda, no s'intenta corregir.
package noms

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyInput es retorna quan el nom complet és buit o només té espais.
var ErrEmptyInput = errors.New("nom complet buit")

// ParsedName és el resultat de separar un nom complet.
type ParsedName struct {
	GivenName     string `json:"nom"`
	FirstSurname  string `json:"cognom1"`
	SecondSurname string `json:"cognom2"`
}

// Tokens retorna els mots de les tres parts, en ordre.
func (p ParsedName) Tokens() []string {
	out := strings.Fields(p.GivenName)
	out = append(out, strings.Fields(p.FirstSurname)...)
	return append(out, strings.Fields(p.SecondSurname)...)
}

// FullName reconstrueix el nom complet amb un sol espai entre mots.
func (p ParsedName) FullName() string {
	return strings.Join(p.Tokens(), " ")
}

// Incomplete indica que no s'ha trobat cap cognom.
func (p ParsedName) Incomplete() bool {
	return p.FirstSurname == ""
}

// SurnamePolicy decideix com es reparteixen més de dues unitats de cognom.
type SurnamePolicy int

const (
	// PolicyAuto: si hi ha partícules, la primera unitat és el primer cognom
	// i la resta el segon; si no n'hi ha, repartiment equilibrat.
	PolicyAuto SurnamePolicy = iota
	// PolicyFirstUnit: sempre la primera unitat i la resta.
	PolicyFirstUnit
	// PolicyBalanced: meitat i meitat, la unitat sobrant va al primer cognom.
	PolicyBalanced
)

func (p SurnamePolicy) String() string {
	switch p {
	case PolicyFirstUnit:
		return "first-unit"
	case PolicyBalanced:
		return "balanced"
	default:
		return "auto"
	}
}

// ParseSurnamePolicy interpreta el valor de configuració SURNAME_POLICY.
func ParseSurnamePolicy(val string) (SurnamePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "", "auto":
		return PolicyAuto, nil
	case "first-unit", "primera":
		return PolicyFirstUnit, nil
	case "balanced", "equilibrat":
		return PolicyBalanced, nil
	default:
		return PolicyAuto, fmt.Errorf("política de cognoms desconeguda: %q", val)
	}
}

// Options ajusta el comportament del Splitter.
type Options struct {
	// GivenNameTokens és el nombre mínim de mots que sempre formen el nom
	// de pila. Per defecte 1.
	GivenNameTokens int
	Policy          SurnamePolicy
}

// Splitter separa noms complets. És immutable i es pot fer servir des de
// diverses goroutines alhora.
type Splitter struct {
	dict *Dictionary
	opts Options
}

// NewSplitter crea un Splitter. Un diccionari nil equival a un diccionari
// buit amb les partícules per defecte.
func NewSplitter(dict *Dictionary, opts Options) *Splitter {
	if dict == nil {
		dict, _ = NewDictionary(nil, nil)
	}
	if opts.GivenNameTokens < 1 {
		opts.GivenNameTokens = 1
	}
	return &Splitter{dict: dict, opts: opts}
}

// Dictionary retorna el diccionari amb què treballa el Splitter.
func (s *Splitter) Dictionary() *Dictionary {
	return s.dict
}

// Split separa fullName en nom, primer cognom i segon cognom.
func (s *Splitter) Split(fullName string) (ParsedName, error) {
	tokens := strings.Fields(fullName)
	if len(tokens) == 0 {
		return ParsedName{}, ErrEmptyInput
	}
	given := s.givenNameSpan(tokens)
	first, second := s.splitSurnames(tokens[given:])
	return ParsedName{
		GivenName:     strings.Join(tokens[:given], " "),
		FirstSurname:  strings.Join(first, " "),
		SecondSurname: strings.Join(second, " "),
	}, nil
}

// Split separa fullName amb les opcions per defecte.
func Split(fullName string, dict *Dictionary) (ParsedName, error) {
	return NewSplitter(dict, Options{}).Split(fullName)
}

func (s *Splitter) givenNameSpan(tokens []string) int {
	span := s.opts.GivenNameTokens
	if m := s.dict.longestGivenName(tokens); m > span {
		span = m
	}
	if span > len(tokens) {
		span = len(tokens)
	}
	return span
}

func (s *Splitter) splitSurnames(tokens []string) ([]string, []string) {
	units, marked := s.dict.surnameUnits(tokens)
	switch len(units) {
	case 0:
		return nil, nil
	case 1:
		return units[0], nil
	case 2:
		return units[0], units[1]
	}

	policy := s.opts.Policy
	if policy == PolicyAuto {
		// Sense partícules cada unitat és un sol mot, així que repartir
		// unitats és repartir mots.
		policy = PolicyBalanced
		if marked {
			policy = PolicyFirstUnit
		}
	}
	cut := 1
	if policy == PolicyBalanced {
		cut = (len(units) + 1) / 2
	}
	return flatten(units[:cut]), flatten(units[cut:])
}

func flatten(units [][]string) []string {
	var out []string
	for _, u := range units {
		out = append(out, u...)
	}
	return out
}
