package member

import "context"

type Repository interface {
	ListMembers(ctx context.Context, gymID string) ([]Member, error)
	GetMember(ctx context.Context, gymID, userID string) (*Member, error)
}
