package mocks

//go:generate mockery --name Source --srcpkg github.com/aevon-lab/catalog-sync/internal/feed --output ./feed --outpkg feedmocks --with-expecter
//go:generate mockery --name SummaryReader --srcpkg github.com/aevon-lab/catalog-sync/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
