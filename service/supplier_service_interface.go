package service

import (
	"context"

	"github.com/Shooukoo/yesmos.com/models"
)

// SupplierServiceInterface defines the contract for catalog ingestion
type SupplierServiceInterface interface {
	FetchProducts(ctx context.Context) ([]models.RawProduct, error)
}
