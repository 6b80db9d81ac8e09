package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/marcmoiagese/SeparaNoms/core"
)

func newCSVCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "csv [flags] <entrada> [sortida]",
		Short: "Separa la columna de noms d'un fitxer CSV",
		Long: `Llegeix un CSV separat per comes, punts i comes o tabuladors i substitueix la
columna del nom complet per "Given Name", "First Surname" i "Second Surname".
Sense sortida, s'escriu "<entrada> - noms separats.<ext>".`,
		Args: cobra.RangeArgs(1, 2),
		RunE: runCSV,
	}
	cmd.Flags().String("columna", "", "capçalera de la columna amb el nom complet (per defecte s'autodetecta)")
	cmd.Flags().String("codificacio", "utf-8", "codificació del fitxer (utf-8|latin1)")
	cmd.Flags().Bool("desa", false, "desa cada nom separat a la BD")
	return cmd
}

func defaultOutputPath(input string) string {
	ext := filepath.Ext(input)
	return strings.TrimSuffix(input, ext) + " - noms separats" + ext
}

func runCSV(cmd *cobra.Command, args []string) error {
	input := args[0]
	output := defaultOutputPath(input)
	if len(args) == 2 {
		output = args[1]
	}
	if filepath.Clean(output) == filepath.Clean(input) {
		return fmt.Errorf("la sortida no pot ser el mateix fitxer que l'entrada")
	}

	column, _ := cmd.Flags().GetString("columna")
	encoding, _ := cmd.Flags().GetString("codificacio")
	desa, _ := cmd.Flags().GetBool("desa")

	app, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer app.Close()
	if desa {
		if err := app.OpenDB(); err != nil {
			return err
		}
	}

	in, err := os.Open(input)
	if err != nil {
		return fmt.Errorf("no s'ha pogut obrir %s: %w", input, err)
	}
	defer in.Close()

	out, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("no s'ha pogut crear %s: %w", output, err)
	}

	res, err := app.ImportCSV(in, out, core.ImportOptions{
		Column:   column,
		Encoding: encoding,
		Persist:  desa,
		Origen:   filepath.Base(input),
	})
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(output)
		return err
	}

	w := cmd.OutOrStdout()
	color.New(color.FgGreen).Fprintf(w, "Fitxer desat: %s\n", output)
	fmt.Fprintf(w, "  files: %d, separades: %d, sense nom: %d\n", res.Rows, res.Parsed, res.Skipped)
	return nil
}
