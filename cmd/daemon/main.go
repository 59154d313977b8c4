package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	maplegw "github.com/maplegw/go-maplegw"
	"github.com/maplegw/go-maplegw/credentials"
	"github.com/maplegw/go-maplegw/gateway"
	"github.com/maplegw/go-maplegw/normalize"
	"github.com/maplegw/go-maplegw/nxopen"
)

type App struct {
	log maplegw.Logger
	cfg *Config

	store   *credentials.Store
	gateway *gateway.Gateway

	server *ApiServer
}

func NewApp(log maplegw.Logger, cfg *Config) (app *App, err error) {
	app = &App{log: log, cfg: cfg}

	app.store = credentials.NewStore(&credentials.Options{
		Log:         log.WithField("module", "credentials"),
		ApiKey:      cfg.ApiKey,
		IdentityTTL: cfg.IdentityTTL,
	})

	client, err := nxopen.NewClient(&nxopen.Options{
		Log:           log.WithField("module", "nxopen"),
		BaseUrl:       cfg.Upstream.BaseUrl,
		Keys:          app.store,
		Timeout:       cfg.Upstream.Timeout,
		Retries:       cfg.Upstream.Retries,
		RetryInterval: cfg.Upstream.RetryInterval,
	})
	if err != nil {
		return nil, fmt.Errorf("failed creating nxopen client: %w", err)
	}

	app.gateway = gateway.New(log.WithField("module", "gateway"), app.store, client, normalize.New())
	return app, nil
}

func (app *App) handleApiRequest(req ApiRequest) (any, error) {
	ctx := req.Context()

	switch req.Type {
	case ApiRequestTypeHealth:
		return &ApiResponseHealth{
			Status:     "ok",
			Version:    maplegw.VersionNumberString(),
			Identities: app.store.Len(),
		}, nil
	case ApiRequestTypeOcid:
		data := req.Data.(ApiRequestDataOcid)

		ocid, err := app.gateway.ResolveIdentity(ctx, req.Token, data.NickName)
		if err != nil {
			return nil, err
		}

		app.server.Emit(&ApiEvent{
			Type: ApiEventTypeIdentityResolved,
			Data: ApiEventDataIdentity{Token: maplegw.ObfuscateToken(req.Token)},
		})

		return &ApiResponseOcid{Ocid: ocid.String()}, nil
	case ApiRequestTypeForget:
		if app.gateway.Forget(req.Token) {
			app.server.Emit(&ApiEvent{
				Type: ApiEventTypeIdentityForgotten,
				Data: ApiEventDataIdentity{Token: maplegw.ObfuscateToken(req.Token)},
			})
		}

		return nil, nil
	case ApiRequestTypeCharacter:
		data := req.Data.(ApiRequestDataCharacter)

		val, err := app.gateway.Fetch(ctx, req.Token, data.Category, gateway.Params{
			NickName: data.NickName,
			Level:    data.Level,
		})
		if err != nil {
			app.log.WithError(err).Debugf("failed fetching %s for %s", data.Category, maplegw.ObfuscateToken(req.Token))

			app.server.Emit(&ApiEvent{
				Type: ApiEventTypeFetchFailed,
				Data: ApiEventDataFetchFailed{
					Token:    maplegw.ObfuscateToken(req.Token),
					Category: data.Category.String(),
					Reason:   classifyError(err).code,
				},
			})
			return nil, err
		}

		return val, nil
	default:
		return nil, fmt.Errorf("unknown request type: %s", req.Type)
	}
}

// Run dispatches every api request on its own goroutine until ctx is done.
func (app *App) Run(ctx context.Context) {
	if app.cfg.IdentityTTL > 0 {
		go app.store.RunJanitor(ctx, app.cfg.JanitorInterval)
	}

	for {
		select {
		case <-ctx.Done():
			app.server.Close()
			return
		case req := <-app.server.Receive():
			go func() {
				data, err := app.handleApiRequest(req)
				req.Reply(data, err)
			}()
		}
	}
}

func main() {
	cfg, err := loadConfig(os.Args[1:])
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	log, err := newLogger(cfg.LogLevel)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "invalid log level %s: %v\n", cfg.LogLevel, err)
		os.Exit(2)
	}

	log.Infof("running %s", maplegw.SystemInfoString())

	if err := errors.Join(checkReadable(cfg.Server.CertFile), checkReadable(cfg.Server.KeyFile)); err != nil {
		log.WithError(err).Errorf("invalid tls configuration")
		os.Exit(1)
	}

	app, err := NewApp(log, cfg)
	if err != nil {
		log.WithError(err).Errorf("failed creating app")
		os.Exit(1)
	}

	app.server, err = NewApiServer(log.WithField("module", "api"), cfg.Server.Address, cfg.Server.Port, cfg.Server.AllowOrigin, cfg.Server.CertFile, cfg.Server.KeyFile)
	if err != nil {
		log.WithError(err).Errorf("failed creating api server")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	app.Run(ctx)
	log.Infof("api server stopped")
}
