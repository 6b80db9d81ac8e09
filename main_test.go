package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cliTokens = `[given name tokens]
Jose Maria
[surname tokens]
de
la
y
`

// writeCLIConfig crea un config.cfg i un tokens.cfg en un directori temporal.
func writeCLIConfig(t *testing.T, extra string) (dir, cfgPath string) {
	t.Helper()
	dir = t.TempDir()
	dictPath := filepath.Join(dir, "tokens.cfg")
	require.NoError(t, os.WriteFile(dictPath, []byte(cliTokens), 0o600))
	cfg := "DICT_PATH=" + dictPath + "\n" +
		"DB_PATH=" + filepath.Join(dir, "cli.db") + "\n" +
		"LOG_LEVEL=silent\n" + extra
	cfgPath = filepath.Join(dir, "config.cfg")
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o600))
	return dir, cfgPath
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestSeparaJSON(t *testing.T) {
	_, cfg := writeCLIConfig(t, "")
	out, err := runCLI(t, "--config", cfg, "--color", "off", "separa", "--format", "json",
		"Jose Maria Hernandez Almodovar", "Juan Perez de la Cruz")
	require.NoError(t, err)

	var got []map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "Jose Maria", got[0]["nom"])
	assert.Equal(t, "Almodovar", got[0]["cognom2"])
	assert.Equal(t, "de la Cruz", got[1]["cognom2"])
}

func TestSeparaPretty(t *testing.T) {
	_, cfg := writeCLIConfig(t, "")
	out, err := runCLI(t, "--config", cfg, "--color", "off", "separa", "Jose Hernandez")
	require.NoError(t, err)
	assert.Contains(t, out, "nom:            Jose\n")
	assert.Contains(t, out, "primer cognom:  Hernandez\n")
}

func TestSeparaNomBuit(t *testing.T) {
	_, cfg := writeCLIConfig(t, "")
	_, err := runCLI(t, "--config", cfg, "--color", "off", "separa", "Jose", "  ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 de 2")
}

func TestSeparaFlagsInvalids(t *testing.T) {
	_, cfg := writeCLIConfig(t, "")
	_, err := runCLI(t, "--config", cfg, "--color", "sempre", "separa", "Jose")
	assert.Error(t, err)
	_, err = runCLI(t, "--config", cfg, "separa", "--format", "xml", "Jose")
	assert.Error(t, err)
	_, err = runCLI(t, "--config", filepath.Join(t.TempDir(), "no.cfg"), "separa", "Jose")
	assert.Error(t, err, "un --config explícit que no existeix ha de fallar")
}

func TestCSVSortidaPerDefecte(t *testing.T) {
	dir, cfg := writeCLIConfig(t, "")
	input := filepath.Join(dir, "padro.csv")
	require.NoError(t, os.WriteFile(input, []byte("Nom;Any\nJose Maria Hernandez Almodovar;1890\n"), 0o600))

	out, err := runCLI(t, "--config", cfg, "--color", "off", "csv", input)
	require.NoError(t, err)
	assert.Contains(t, out, "separades: 1")

	got, err := os.ReadFile(filepath.Join(dir, "padro - noms separats.csv"))
	require.NoError(t, err)
	assert.Equal(t, "Given Name;First Surname;Second Surname;Any\nJose Maria;Hernandez;Almodovar;1890\n", string(got))
}

func TestCSVErrorEsborraSortida(t *testing.T) {
	dir, cfg := writeCLIConfig(t, "")
	input := filepath.Join(dir, "llista.csv")
	output := filepath.Join(dir, "sortida.csv")
	require.NoError(t, os.WriteFile(input, []byte("Id,Ciutat\n1,Reus\n"), 0o600))

	_, err := runCLI(t, "--config", cfg, "csv", input, output)
	require.Error(t, err)
	_, statErr := os.Stat(output)
	assert.True(t, os.IsNotExist(statErr))

	_, err = runCLI(t, "--config", cfg, "csv", input, input)
	assert.Error(t, err)
}

func TestDiccionariImportaIMostra(t *testing.T) {
	dir, cfg := writeCLIConfig(t, "")
	yamlDict := filepath.Join(dir, "noms.yaml")
	require.NoError(t, os.WriteFile(yamlDict, []byte("given_names:\n  - Maria del Carmen\nsurname_markers:\n  - de\n  - del\n"), 0o600))

	out, err := runCLI(t, "--config", cfg, "--color", "off", "diccionari", "importa", yamlDict)
	require.NoError(t, err)
	assert.Contains(t, out, "3 entrades importades")

	cfgDB := filepath.Join(dir, "config-db.cfg")
	base, err := os.ReadFile(cfg)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(cfgDB, append(base, []byte("DICT_SOURCE=db\n")...), 0o600))

	out, err = runCLI(t, "--config", cfgDB, "--color", "off", "diccionari", "mostra")
	require.NoError(t, err)
	assert.Equal(t, "[given name tokens]\nMaria del Carmen\n[surname tokens]\nde\ndel\n", out)

	out, err = runCLI(t, "--config", cfgDB, "--color", "off", "separa", "--format", "json", "Maria del Carmen Ruiz de Olivos")
	require.NoError(t, err)
	assert.True(t, strings.Contains(out, `"cognom2": "de Olivos"`), out)
}

func TestDefaultOutputPath(t *testing.T) {
	cases := map[string]string{
		"noms.csv":        "noms - noms separats.csv",
		"dades/padro.txt": "dades/padro - noms separats.txt",
		"sense_extensio":  "sense_extensio - noms separats",
	}
	for in, want := range cases {
		assert.Equal(t, want, defaultOutputPath(in), in)
	}
}
