package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/marcmoiagese/SeparaNoms/core"
)

var (
	givenNameColor = color.New(color.FgGreen, color.Bold)
	surnameColor   = color.New(color.FgCyan)
	failColor      = color.New(color.FgRed)
)

func newSeparaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "separa [flags] \"<nom complet>\"...",
		Short: "Separa un o més noms complets",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runSepara,
	}
	cmd.Flags().String("format", "pretty", "format de sortida (pretty|json)")
	cmd.Flags().Bool("desa", false, "desa els resultats a la BD")
	return cmd
}

func runSepara(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("no s'ha pogut llegir --format: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("format desconegut: %s", format)
	}
	desa, _ := cmd.Flags().GetBool("desa")

	app, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	results, err := app.SplitBatch(cmd.Context(), args)
	if err != nil {
		return err
	}
	if desa {
		if err := app.OpenDB(); err != nil {
			return err
		}
		if _, err := app.SaveResults(results, "cli"); err != nil {
			return fmt.Errorf("no s'han pogut desar els resultats: %w", err)
		}
	}

	out := cmd.OutOrStdout()
	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return err
		}
	default:
		printPretty(out, results)
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d de %d noms no s'han pogut separar", failed, len(results))
	}
	return nil
}

func printPretty(w io.Writer, results []core.BatchResult) {
	for _, r := range results {
		if r.Err != nil {
			failColor.Fprintf(w, "%q: %v\n", r.Input, r.Err)
			continue
		}
		fmt.Fprintln(w, r.Input)
		fmt.Fprintf(w, "  nom:            %s\n", givenNameColor.Sprint(r.GivenName))
		fmt.Fprintf(w, "  primer cognom:  %s\n", surnameColor.Sprint(r.FirstSurname))
		fmt.Fprintf(w, "  segon cognom:   %s\n", surnameColor.Sprint(r.SecondSurname))
	}
}
