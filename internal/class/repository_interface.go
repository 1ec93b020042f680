package class

import "context"

type Repository interface {
	ListByGym(ctx context.Context, gymID string) ([]Class, error)
	GetByID(ctx context.Context, gymID, classID string) (*Class, error)
	Create(ctx context.Context, gymID string, req CreateClassRequest, patterns []PatternInput) (*ClassDetail, error)
	Update(ctx context.Context, gymID, classID string, req UpdateClassRequest) (*Class, error)
	ListPatterns(ctx context.Context, classIDs ...string) ([]Pattern, error)
	ReplacePatterns(ctx context.Context, classID string, patterns []PatternInput) ([]Pattern, error)
	ListExpandable(ctx context.Context) ([]Class, error)
}
