package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/marcmoiagese/SeparaNoms/core"
	"github.com/marcmoiagese/SeparaNoms/web/handlers"
)

func newServeixCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serveix",
		Short: "Arrenca l'API HTTP",
		Args:  cobra.NoArgs,
		RunE:  runServeix,
	}
	cmd.Flags().String("addr", "", "adreça d'escolta (per defecte HTTP_ADDR)")
	cmd.Flags().Bool("bd", false, "obre la BD per desar resultats i servir /api/noms")
	return cmd
}

func runServeix(cmd *cobra.Command, args []string) error {
	app, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	if useDB, _ := cmd.Flags().GetBool("bd"); useDB {
		if err := app.OpenDB(); err != nil {
			return err
		}
	}
	addr, _ := cmd.Flags().GetString("addr")
	if addr == "" {
		addr = app.Config.HTTPAddr
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           handlers.Routes(app, app.DB, app.Config.HTTPRate),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(cmd.Context())
	g.Go(func() error {
		core.Infof("Servidor corrent a %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		core.Infof("Aturant el servidor")
		return srv.Shutdown(ctx)
	})
	return g.Wait()
}
