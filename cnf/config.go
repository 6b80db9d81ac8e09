package cnf

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadYAMLConfig llegeix les mateixes claus que LoadConfig des d'un mapa YAML.
// Les claus es passen a majúscules (dict_path → DICT_PATH).
func LoadYAMLConfig(path string) (map[string]string, error) {
	if err := loadDotEnv(path); err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error obrint fitxer de configuració: %w", err)
	}
	defer file.Close()

	raw := map[string]interface{}{}
	if err := yaml.NewDecoder(file).Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("error decodificant YAML: %w", err)
	}

	config := make(map[string]string, len(raw))
	for k, v := range raw {
		switch v.(type) {
		case map[string]interface{}, []interface{}:
			return nil, fmt.Errorf("la clau %q ha de ser un valor simple", k)
		case nil:
			config[strings.ToUpper(k)] = ""
		default:
			config[strings.ToUpper(k)] = fmt.Sprint(v)
		}
	}

	applyEnvOverrides(config)
	return config, nil
}
