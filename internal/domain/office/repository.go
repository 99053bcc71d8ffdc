package office

import "context"

type OfficeLocationRepository interface {
	Create(ctx context.Context, loc OfficeLocation) (OfficeLocation, error)
	GetByID(ctx context.Context, id string) (OfficeLocation, error)
	List(ctx context.Context) ([]OfficeLocation, error)
	Update(ctx context.Context, loc OfficeLocation) error
}
