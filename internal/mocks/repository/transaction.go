package repository

import (
	"context"

	"storefront/internal/domain/repository"
)

// StubRepositoryFactory hands out the mocks it was built with, so a test
// controls exactly what a transactional callback sees.
type StubRepositoryFactory struct {
	UserRepo    *MockUserRepository
	AuthRepo    *MockAuthRepository
	RefreshRepo *MockRefreshTokenRepository
	CartRepo    *MockCartRepository
	ReviewRepo  *MockReviewRepository
}

func (f *StubRepositoryFactory) NewUserRepository() repository.UserRepository {
	return f.UserRepo
}

func (f *StubRepositoryFactory) NewAuthRepository() repository.AuthRepository {
	return f.AuthRepo
}

func (f *StubRepositoryFactory) NewRefreshTokenRepository() repository.RefreshTokenRepository {
	return f.RefreshRepo
}

func (f *StubRepositoryFactory) NewCartRepository() repository.CartRepository {
	return f.CartRepo
}

func (f *StubRepositoryFactory) NewReviewRepository() repository.ReviewRepository {
	return f.ReviewRepo
}

// StubTransactionManager runs callbacks inline against the stub factory.
// There is no real transaction; rollback behavior is simply the callback's
// error bubbling up.
type StubTransactionManager struct {
	Factory *StubRepositoryFactory
}

func (m *StubTransactionManager) Execute(_ context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	return fn(m.Factory)
}
