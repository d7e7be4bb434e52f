package database

import (
	"context"
	"fmt"

	"github.com/lysyi3m/microbrands/app/gallery"
)

type SQLPostRepository struct {
	db *DB
}

func NewPostRepository(db *DB) *SQLPostRepository {
	return &SQLPostRepository{db: db}
}

func (r *SQLPostRepository) SyncPosts(ctx context.Context, posts []gallery.BrandPost) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM post_tags`); err != nil {
		return fmt.Errorf("failed to clear post tags: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM brand_posts`); err != nil {
		return fmt.Errorf("failed to clear posts: %w", err)
	}

	postStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO brand_posts (id, position, brand_name, industry, post_type, description, image_url, social_url)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare post insert: %w", err)
	}
	defer postStmt.Close()

	tagStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO post_tags (post_id, position, tag)
		VALUES (?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare tag insert: %w", err)
	}
	defer tagStmt.Close()

	for i, post := range posts {
		_, err := postStmt.ExecContext(ctx, post.ID, i, post.BrandName, post.Industry,
			string(post.PostType), post.Description, post.ImageURL, post.SocialURL)
		if err != nil {
			return fmt.Errorf("failed to insert post '%s': %w", post.ID, err)
		}

		for j, tag := range post.CreativeTags {
			if _, err := tagStmt.ExecContext(ctx, post.ID, j, tag); err != nil {
				return fmt.Errorf("failed to insert tag '%s' for post '%s': %w", tag, post.ID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit catalog sync: %w", err)
	}

	return nil
}

func (r *SQLPostRepository) GetAllPosts(ctx context.Context) ([]gallery.BrandPost, error) {
	tags, err := r.getAllTags(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, brand_name, industry, post_type, description, image_url, social_url
		FROM brand_posts
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get posts: %w", err)
	}
	defer rows.Close()

	posts := make([]gallery.BrandPost, 0)
	for rows.Next() {
		var post gallery.BrandPost
		var postType string
		err := rows.Scan(&post.ID, &post.BrandName, &post.Industry, &postType,
			&post.Description, &post.ImageURL, &post.SocialURL)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post row: %w", err)
		}
		post.PostType = gallery.PostType(postType)
		post.CreativeTags = tags[post.ID]
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating post rows: %w", err)
	}

	return posts, nil
}

func (r *SQLPostRepository) getAllTags(ctx context.Context) (map[string][]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT post_id, tag
		FROM post_tags
		ORDER BY post_id, position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get post tags: %w", err)
	}
	defer rows.Close()

	tags := make(map[string][]string)
	for rows.Next() {
		var postID, tag string
		if err := rows.Scan(&postID, &tag); err != nil {
			return nil, fmt.Errorf("failed to scan tag row: %w", err)
		}
		tags[postID] = append(tags[postID], tag)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tag rows: %w", err)
	}

	return tags, nil
}

func (r *SQLPostRepository) GetPostCount(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM brand_posts`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get post count: %w", err)
	}
	return count, nil
}
