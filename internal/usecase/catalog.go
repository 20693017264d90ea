package usecase

import (
	"hr-timesheet-backend/config"
	"hr-timesheet-backend/internal/apperror"
	"hr-timesheet-backend/internal/hierarchy"
	"hr-timesheet-backend/internal/repository"
)

// ScopeQuery is the raw filter a report screen sends. DepartmentIDs wins,
// then FactoryID+Tokens through the resolver, then KipIDs alone.
type ScopeQuery struct {
	DepartmentIDs []uint
	FactoryID     *uint
	Tokens        []string
	KipIDs        []uint
}

// CatalogLoader builds a fresh hierarchy.Catalog from the department and
// kip tables on every call.
type CatalogLoader struct {
	deptRepo repository.DepartmentRepository
	kipRepo  repository.KipRepository
	policy   config.Policy
}

func NewCatalogLoader(deptRepo repository.DepartmentRepository, kipRepo repository.KipRepository, policy config.Policy) *CatalogLoader {
	return &CatalogLoader{deptRepo: deptRepo, kipRepo: kipRepo, policy: policy}
}

func (l *CatalogLoader) Load() (*hierarchy.Catalog, error) {
	depts, err := l.deptRepo.GetAll(nil)
	if err != nil {
		return nil, apperror.Internal("Không tải được danh sách bộ phận", err)
	}
	kips, err := l.kipRepo.GetAll(nil)
	if err != nil {
		return nil, apperror.Internal("Không tải được danh sách kíp", err)
	}
	return hierarchy.NewCatalog(depts, kips, l.policy.MatrixFactoryIDs), nil
}

func (l *CatalogLoader) Options(factoryID uint) ([]hierarchy.Option, error) {
	catalog, err := l.Load()
	if err != nil {
		return nil, err
	}
	return catalog.Options(factoryID), nil
}

// ResolveScope turns a ScopeQuery into the Scope repositories filter on.
func (l *CatalogLoader) ResolveScope(q ScopeQuery) (repository.Scope, error) {
	if len(q.DepartmentIDs) > 0 {
		return repository.Scope{DepartmentIDs: q.DepartmentIDs}, nil
	}
	if len(q.Tokens) > 0 {
		catalog, err := l.Load()
		if err != nil {
			return repository.Scope{}, err
		}
		return repository.Scope{DepartmentIDs: catalog.Resolve(q.FactoryID, q.Tokens, q.KipIDs)}, nil
	}
	return repository.Scope{KipIDs: q.KipIDs}, nil
}
