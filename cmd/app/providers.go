package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/samdev/lexibase/internal/domain/account"
	"github.com/samdev/lexibase/internal/domain/session"
	"github.com/samdev/lexibase/internal/infra/config"
	"github.com/samdev/lexibase/internal/infra/mail"
	"github.com/samdev/lexibase/internal/infra/tokenstore"
	"github.com/samdev/lexibase/internal/infra/userrepo"
	httpiface "github.com/samdev/lexibase/internal/interface/http"
)

func provideSessionConfig(cfg *config.Config) session.Config {
	return session.Config{Secret: cfg.Auth.Secret}
}

func provideAccountConfig(cfg *config.Config) account.Config {
	return account.Config{
		Host:            cfg.Auth.Host,
		SessionTTL:      cfg.Auth.SessionTTL,
		VerificationTTL: cfg.Auth.VerificationTTL,
		ResetTTL:        cfg.Auth.ResetTTL,
		Google: account.GoogleConfig{
			ClientID:     cfg.Google.ClientID,
			ClientSecret: cfg.Google.ClientSecret,
			RedirectURL:  cfg.Google.RedirectURL,
		},
	}
}

// providePool connects to Postgres. A nil pool tells the repository and
// token store providers to fall back to their in-memory stand-ins,
// which keeps local development runnable without a database.
func providePool(cfg *config.Config, logger *slog.Logger) *pgxpool.Pool {
	poolConfig, err := pgxpool.ParseConfig(cfg.Database.DSN)
	if err != nil {
		logger.Error("invalid postgres dsn, using memory storage", "error", err)
		return nil
	}
	if cfg.Database.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Database.MaxConns
	}
	if cfg.Database.MinConns > 0 {
		poolConfig.MinConns = cfg.Database.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using memory storage", "error", err)
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, using memory storage", "error", err)
		pool.Close()
		return nil
	}
	logger.Info("postgres storage enabled")
	return pool
}

func provideRepository(pool *pgxpool.Pool, logger *slog.Logger) account.Repository {
	if pool == nil {
		logger.Warn("account repository running in memory; data will not survive restarts")
		return userrepo.NewMemoryRepository()
	}
	return userrepo.NewPostgresRepository(pool)
}

func provideTokenStore(cfg *config.Config, pool *pgxpool.Pool, logger *slog.Logger) account.TokenStore {
	if addr := strings.TrimSpace(cfg.Tokens.Addr); addr != "" {
		opt, err := buildValkeyOptions(addr)
		if err != nil {
			logger.Error("invalid valkey configuration, falling back", "error", err)
		} else if client, err := valkey.NewClient(opt); err != nil {
			logger.Error("failed to create valkey client, falling back", "error", err)
		} else {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
				logger.Error("valkey ping failed, falling back", "error", err)
			} else {
				logger.Info("valkey token store enabled", "addr", addr)
				return tokenstore.NewValkeyStore(client, "reset")
			}
		}
	}
	if pool != nil {
		return tokenstore.NewPostgresStore(pool)
	}
	logger.Warn("token store running in memory; tokens will not survive restarts")
	return tokenstore.NewMemoryStore()
}

func buildValkeyOptions(addr string) (valkey.ClientOption, error) {
	if strings.Contains(addr, "://") {
		return valkey.ParseURL(addr)
	}
	return valkey.ClientOption{InitAddress: []string{addr}}, nil
}

func provideMailSender(cfg *config.Config, logger *slog.Logger) account.MailSender {
	if cfg.Mail.Dev {
		logger.Warn("mail sender running in dev mode; messages are logged, not delivered")
		return mail.NewLogSender(logger)
	}
	return mail.NewSMTPSender(mail.Config{
		Host:     cfg.Mail.Host,
		Port:     cfg.Mail.Port,
		Username: cfg.Mail.Sender,
		Password: cfg.Mail.Password,
		From:     cfg.Mail.Sender,
	})
}

func provideCookiePolicy(cfg *config.Config) session.CookiePolicy {
	return session.CookiePolicy{SameSite: cfg.HTTP.SameSite()}
}

func provideAccountHandler(svc account.Service, cfg *config.Config, policy session.CookiePolicy, logger *slog.Logger) *httpiface.AccountHandler {
	return httpiface.NewAccountHandler(svc, int(cfg.Auth.SessionTTL.Seconds()), policy, logger)
}
