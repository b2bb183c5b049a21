package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/dtroode/sessiongate/internal/config"
	"github.com/dtroode/sessiongate/internal/logger"
	"github.com/dtroode/sessiongate/internal/model"
	"github.com/dtroode/sessiongate/internal/repository/memory"
	"github.com/dtroode/sessiongate/internal/repository/postgres"
	redisrepo "github.com/dtroode/sessiongate/internal/repository/redis"
	"github.com/dtroode/sessiongate/internal/repository/timeout"
	"github.com/dtroode/sessiongate/internal/service"
)

// stores holds the engines selected by configuration, each wrapped with the
// per-call timeout.
type stores struct {
	users    model.UserStore
	sessions model.SessionStore
	pruner   service.ExpiredSessionPruner
	closers  []func() error
}

func openStores(ctx context.Context, cfg *config.Config, log *logger.Logger) (_ *stores, err error) {
	s := &stores{}
	defer func() {
		if err != nil {
			_ = s.Close()
		}
	}()

	var pg *postgres.Connection
	if cfg.Storage.Users == config.BackendPostgres || cfg.Storage.Sessions == config.BackendPostgres {
		pg, err = postgres.NewConnection(ctx, cfg.Database.DSN)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, pg.Close)
	}

	var users model.UserStore
	switch cfg.Storage.Users {
	case config.BackendPostgres:
		users = postgres.NewUserRepository(pg)
	case config.BackendMemory:
		users = memory.NewUserRepository()
	default:
		return nil, fmt.Errorf("unknown users backend %q", cfg.Storage.Users)
	}

	var sessions model.SessionStore
	switch cfg.Storage.Sessions {
	case config.BackendPostgres:
		repo := postgres.NewSessionRepository(pg)
		sessions, s.pruner = repo, repo
	case config.BackendRedis:
		client, err := redisrepo.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, client.Close)
		sessions = redisrepo.NewSessionRepository(client)
	case config.BackendMemory:
		repo, err := memory.NewSessionRepository(cfg.Session.TTL)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, repo.Close)
		sessions = repo
	default:
		return nil, fmt.Errorf("unknown sessions backend %q", cfg.Storage.Sessions)
	}

	log.Info("storage initialized",
		"users", cfg.Storage.Users,
		"sessions", cfg.Storage.Sessions,
		"timeout", cfg.Storage.Timeout)

	s.users = timeout.NewUsers(users, cfg.Storage.Timeout)
	s.sessions = timeout.NewSessions(sessions, cfg.Storage.Timeout)
	return s, nil
}

// Close releases backends in reverse order of opening.
func (s *stores) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	return errors.Join(errs...)
}
