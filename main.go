package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/marcmoiagese/SeparaNoms/cnf"
	"github.com/marcmoiagese/SeparaNoms/core"
)

const defaultConfigPath = "cnf/config.cfg"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "separanoms",
		Short:         "Separa noms complets en nom, primer cognom i segon cognom",
		Long:          `SeparaNoms separa noms complets hispànics i catalans fent servir un diccionari de noms compostos i partícules de cognom.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return applyColorFlag(cmd)
		},
	}

	// Flags globals
	root.PersistentFlags().String("config", defaultConfigPath, "fitxer de configuració (.cfg o .yaml)")
	root.PersistentFlags().String("color", "auto", "color a la sortida (auto|on|off)")

	root.AddCommand(newSeparaCmd())
	root.AddCommand(newCSVCmd())
	root.AddCommand(newServeixCmd())
	root.AddCommand(newDiccionariCmd())
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func applyColorFlag(cmd *cobra.Command) error {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return err
	}
	switch mode {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	case "auto":
	default:
		return fmt.Errorf("valor de --color desconegut: %s (auto|on|off)", mode)
	}
	return nil
}

// loadAppConfig llegeix --config. Si és el fitxer per defecte i no existeix,
// es fan servir els valors per defecte i les variables d'entorn.
func loadAppConfig(cmd *cobra.Command) (cnf.AppConfig, error) {
	flags := cmd.Root().PersistentFlags()
	path, err := flags.GetString("config")
	if err != nil {
		return cnf.AppConfig{}, err
	}

	m, err := cnf.Load(path)
	if errors.Is(err, os.ErrNotExist) && !flags.Changed("config") {
		m, err = cnf.FromEnv()
	}
	if err != nil {
		return cnf.AppConfig{}, err
	}
	return cnf.ParseConfig(m)
}

func newApp(cmd *cobra.Command) (*core.App, error) {
	cfg, err := loadAppConfig(cmd)
	if err != nil {
		return nil, err
	}
	core.AttachLoggerOutput(cmd.ErrOrStderr())
	return core.NewApp(cfg, nil)
}
