package database

import (
	"context"

	"github.com/lysyi3m/microbrands/app/gallery"
)

type PostRepository interface {
	// SyncPosts replaces the stored snapshot with posts, keeping their order.
	SyncPosts(ctx context.Context, posts []gallery.BrandPost) error
	// GetAllPosts returns the stored snapshot in catalog order.
	GetAllPosts(ctx context.Context) ([]gallery.BrandPost, error)
	GetPostCount(ctx context.Context) (int, error)
}

var _ PostRepository = (*SQLPostRepository)(nil)
