package srvenv

import (
	"context"

	"github.com/go-sod/kdst/internal/database"
	"github.com/go-sod/kdst/internal/registry"
)

type Option func(*SrvEnv) *SrvEnv

func New(opts ...Option) *SrvEnv {
	env := &SrvEnv{}
	for _, f := range opts {
		env = f(env)
	}

	return env
}

type SrvEnv struct {
	database *database.DB
	registry registry.ProvideFn
}

func (s *SrvEnv) ProvideRegistry() registry.ProvideFn {
	return s.registry
}

func (s *SrvEnv) Database() *database.DB {
	return s.database
}

func WithRegistry(fn registry.ProvideFn) Option {
	return func(s *SrvEnv) *SrvEnv {
		s.registry = fn
		return s
	}
}

func WithDatabase(db *database.DB) Option {
	return func(s *SrvEnv) *SrvEnv {
		s.database = db
		return s
	}
}

func (s *SrvEnv) Close(ctx context.Context) error {
	if s == nil {
		return nil
	}

	if s.database != nil {
		return s.database.Close(ctx)
	}
	return nil
}
