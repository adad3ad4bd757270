//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/samdev/lexibase/internal/bootstrap"
	"github.com/samdev/lexibase/internal/domain/account"
	"github.com/samdev/lexibase/internal/domain/session"
	"github.com/samdev/lexibase/internal/infra/config"
	httpiface "github.com/samdev/lexibase/internal/interface/http"
	"github.com/samdev/lexibase/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideSessionConfig,
		session.NewCodec,
		provideAccountConfig,
		providePool,
		provideRepository,
		provideTokenStore,
		provideMailSender,
		account.NewService,
		provideCookiePolicy,
		provideAccountHandler,
		httpiface.NewCrashReporter,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
