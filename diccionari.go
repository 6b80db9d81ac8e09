package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/marcmoiagese/SeparaNoms/core"
	"github.com/marcmoiagese/SeparaNoms/core/noms"
	"github.com/marcmoiagese/SeparaNoms/db"
)

func newDiccionariCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diccionari",
		Short: "Gestiona el diccionari de noms compostos i partícules",
	}

	importa := &cobra.Command{
		Use:   "importa <fitxer>",
		Short: "Copia un diccionari (text o YAML) a la BD",
		Args:  cobra.ExactArgs(1),
		RunE:  runDiccionariImporta,
	}
	mostra := &cobra.Command{
		Use:   "mostra",
		Short: "Mostra el diccionari configurat",
		Args:  cobra.NoArgs,
		RunE:  runDiccionariMostra,
	}
	cmd.AddCommand(importa, mostra)
	return cmd
}

func runDiccionariImporta(cmd *cobra.Command, args []string) error {
	cfg, err := loadAppConfig(cmd)
	if err != nil {
		return err
	}
	core.AttachLoggerOutput(cmd.ErrOrStderr())
	core.SetLogLevel(cfg.LogLevel)
	db.SetLogLevel(cfg.LogLevel)

	dict, err := noms.LoadDictionaryFile(args[0])
	if err != nil {
		return err
	}
	store, err := db.NewDB(cfg.DBConfig())
	if err != nil {
		return err
	}
	defer store.Close()

	n, err := core.ImportDictionary(store, dict)
	if err != nil {
		return err
	}
	color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "%d entrades importades (%s)\n", n, cfg.DBEngine)
	return nil
}

func runDiccionariMostra(cmd *cobra.Command, args []string) error {
	app, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	dict := app.Splitter.Dictionary()
	w := cmd.OutOrStdout()
	header := color.New(color.Bold)
	header.Fprintln(w, "[given name tokens]")
	for _, n := range dict.GivenNames() {
		fmt.Fprintln(w, n)
	}
	header.Fprintln(w, "[surname tokens]")
	for _, m := range dict.Markers() {
		fmt.Fprintln(w, m)
	}
	return nil
}
