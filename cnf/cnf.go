package cnf

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/marcmoiagese/SeparaNoms/core/noms"
)

// EnvPrefix marca les variables d'entorn que sobreescriuen el fitxer.
const EnvPrefix = "SEPARANOMS_"

// AppConfig – Configuració tipada per facilitar l'ús
type AppConfig struct {
	DictSource      string
	DictPath        string
	GivenNameTokens int
	SurnamePolicy   noms.SurnamePolicy
	LogLevel        string
	Env             string
	DBEngine        string
	DBPath          string
	DBHost          string
	DBUser          string
	DBPass          string
	DBPort          string
	DBName          string
	HTTPAddr        string
	HTTPRate        time.Duration
	Workers         int
}

// LoadConfig carrega el fitxer en format clau=valor, ignorant línies buides o comentaris.
// Abans llegeix el .env del mateix directori (si n'hi ha) i després aplica
// les variables d'entorn amb prefix SEPARANOMS_.
func LoadConfig(path string) (map[string]string, error) {
	if err := loadDotEnv(path); err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("no s'ha pogut obrir el fitxer de configuració: %w", err)
	}
	defer file.Close()

	config := make(map[string]string)
	scanner := bufio.NewScanner(file)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if value != "" {
			commentIdx := -1
			for _, marker := range []string{" #", "\t#", " ;", "\t;"} {
				if idx := strings.Index(value, marker); idx >= 0 && (commentIdx == -1 || idx < commentIdx) {
					commentIdx = idx
				}
			}
			if commentIdx >= 0 {
				value = strings.TrimSpace(value[:commentIdx])
			}
		}
		config[key] = value
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error llegint config: %w", err)
	}

	applyEnvOverrides(config)
	return config, nil
}

// Load tria el format segons l'extensió: YAML per .yaml/.yml, clau=valor per la resta.
func Load(path string) (map[string]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return LoadYAMLConfig(path)
	default:
		return LoadConfig(path)
	}
}

func loadDotEnv(path string) error {
	envPath := filepath.Join(filepath.Dir(path), ".env")
	if err := godotenv.Load(envPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("error llegint %s: %w", envPath, err)
	}
	return nil
}

// FromEnv retorna la configuració definida només per variables d'entorn
// (i el .env del directori actual), per quan no hi ha fitxer.
func FromEnv() (map[string]string, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}
	config := make(map[string]string)
	applyEnvOverrides(config)
	return config, nil
}

func applyEnvOverrides(config map[string]string) {
	for _, kv := range os.Environ() {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(key, EnvPrefix) {
			continue
		}
		config[strings.TrimPrefix(key, EnvPrefix)] = strings.TrimSpace(value)
	}
}

// ParseConfig converteix map[string]string en AppConfig amb valors per defecte.
func ParseConfig(cfg map[string]string) (AppConfig, error) {
	ac := AppConfig{
		DictSource: strings.ToLower(strings.TrimSpace(cfg["DICT_SOURCE"])),
		DictPath:   strings.TrimSpace(cfg["DICT_PATH"]),
		LogLevel:   strings.TrimSpace(cfg["LOG_LEVEL"]),
		Env:        strings.TrimSpace(cfg["ENVIRONMENT"]),
		DBEngine:   strings.TrimSpace(cfg["DB_ENGINE"]),
		DBPath:     cfg["DB_PATH"],
		DBHost:     cfg["DB_HOST"],
		DBUser:     cfg["DB_USR"],
		DBPass:     cfg["DB_PASS"],
		DBPort:     cfg["DB_PORT"],
		DBName:     cfg["DB_NAME"],
		HTTPAddr:   strings.TrimSpace(cfg["HTTP_ADDR"]),
	}

	switch ac.DictSource {
	case "":
		ac.DictSource = "file"
	case "file", "db":
	default:
		return ac, fmt.Errorf("DICT_SOURCE desconegut: %q (file|db)", ac.DictSource)
	}
	if ac.DictPath == "" {
		ac.DictPath = "cnf/tokens.cfg"
	}
	if ac.DBEngine == "" {
		ac.DBEngine = "sqlite"
	}
	if ac.DBPath == "" {
		ac.DBPath = "./separanoms.db"
	}
	if ac.LogLevel == "" {
		ac.LogLevel = "info"
	}
	if ac.Env == "" {
		ac.Env = os.Getenv("ENVIRONMENT")
		if ac.Env == "" {
			ac.Env = "development"
		}
	}
	if ac.HTTPAddr == "" {
		ac.HTTPAddr = ":8080"
	}

	var err error
	if ac.GivenNameTokens, err = positiveInt(cfg, "GIVEN_NAME_TOKENS", 1); err != nil {
		return ac, err
	}
	if ac.Workers, err = positiveInt(cfg, "WORKERS", 4); err != nil {
		return ac, err
	}
	if ac.SurnamePolicy, err = noms.ParseSurnamePolicy(cfg["SURNAME_POLICY"]); err != nil {
		return ac, err
	}
	if v := strings.TrimSpace(cfg["HTTP_RATE_MS"]); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil || ms < 0 {
			return ac, fmt.Errorf("HTTP_RATE_MS ha de ser un enter no negatiu, tinc %q", v)
		}
		ac.HTTPRate = time.Duration(ms) * time.Millisecond
	}

	return ac, nil
}

func positiveInt(cfg map[string]string, key string, def int) (int, error) {
	v := strings.TrimSpace(cfg[key])
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%s ha de ser un enter positiu, tinc %q", key, v)
	}
	return n, nil
}

// DBConfig retorna la configuració en el format que espera db.NewDB.
func (ac AppConfig) DBConfig() map[string]string {
	return map[string]string{
		"DB_ENGINE": ac.DBEngine,
		"DB_PATH":   ac.DBPath,
		"DB_HOST":   ac.DBHost,
		"DB_PORT":   ac.DBPort,
		"DB_USR":    ac.DBUser,
		"DB_PASS":   ac.DBPass,
		"DB_NAME":   ac.DBName,
	}
}

// SplitterOptions retorna les opcions del separador de noms.
func (ac AppConfig) SplitterOptions() noms.Options {
	return noms.Options{GivenNameTokens: ac.GivenNameTokens, Policy: ac.SurnamePolicy}
}
