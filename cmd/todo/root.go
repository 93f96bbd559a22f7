package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/diasKarataev/todo-client/domain"
	"github.com/diasKarataev/todo-client/internal/config"
	"github.com/diasKarataev/todo-client/pkg/logger"
	"github.com/diasKarataev/todo-client/repository/boltstore"
	"github.com/diasKarataev/todo-client/repository/httpapi"
	"github.com/diasKarataev/todo-client/usecase/account"
	"github.com/diasKarataev/todo-client/usecase/collection"
)

// app wires the client together once per invocation: config, logger, the
// durable session store, the restored session and the API client. The
// session object is shared: the account use case writes it, everything else
// only reads it.
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	store    *boltstore.Store
	session  *domain.Session
	api      *httpapi.Client
	accounts *account.UseCase
}

func (a *app) init(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	a.cfg = cfg

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		return err
	}
	a.logger = zapLogger

	store, err := boltstore.Open(cfg.Store.Path)
	if err != nil {
		return err
	}
	a.store = store

	a.session = account.Restore(store, zapLogger)
	a.api = httpapi.New(httpapi.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
	}, a.session, zapLogger)
	a.accounts = account.New(a.api, store, a.session, zapLogger)
	return nil
}

func (a *app) shutdown(cmd *cobra.Command, args []string) {
	if a.store != nil {
		a.store.Close()
	}
	if a.logger != nil {
		a.logger.Sync()
	}
}

func (a *app) controller() *collection.Controller {
	return collection.New(a.api, a.session, a.cfg.List.PageSize, a.logger)
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:               "todo",
		Short:             "Command-line client for the todo-app task service",
		SilenceUsage:      true,
		PersistentPreRunE: a.init,
		PersistentPostRun: a.shutdown,
	}

	root.AddCommand(
		newLoginCmd(a),
		newRegisterCmd(a),
		newLogoutCmd(a),
		newWhoamiCmd(a),
		newResendActivationCmd(a),
		newListCmd(a),
		newAddCmd(a),
		newShowCmd(a),
		newEditCmd(a),
		newRemoveCmd(a),
		newStarCmd(a),
	)
	return root
}
