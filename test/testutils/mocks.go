package testutils

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/jonmartinstorm/repokontekst/internal/fetcher"
	"github.com/jonmartinstorm/repokontekst/internal/models"
)

// MockDeps er en testify-mock av runner.Deps.
type MockDeps struct {
	mock.Mock
}

func (m *MockDeps) FetchRepository(ctx context.Context, id models.RepoIdentity, cred fetcher.Credential) (models.RawRepoData, error) {
	args := m.Called(ctx, id, cred)
	return args.Get(0).(models.RawRepoData), args.Error(1)
}

func (m *MockDeps) Aggregate(raw models.RawRepoData) models.AnalysisResult {
	args := m.Called(raw)
	return args.Get(0).(models.AnalysisResult)
}

func (m *MockDeps) ResolveTemplate(id string) (models.Template, error) {
	args := m.Called(id)
	return args.Get(0).(models.Template), args.Error(1)
}

func (m *MockDeps) Generate(result models.AnalysisResult, tpl models.Template) string {
	args := m.Called(result, tpl)
	return args.String(0)
}

func (m *MockDeps) WriteDocument(dir, filename, doc string) (string, error) {
	args := m.Called(dir, filename, doc)
	return args.String(0), args.Error(1)
}
