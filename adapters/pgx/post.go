package pgx

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/okondo/bulletin/core"
)

func (a *Adapter) CreatePost(ctx context.Context, post *core.Post) error {
	query := `INSERT INTO public.posts (id, title, description, user_id) VALUES ($1, $2, $3, $4) RETURNING created_at, updated_at`

	return a.pool.QueryRow(ctx, query, post.ID, post.Title, post.Description, post.UserID).
		Scan(&post.CreatedAt, &post.UpdatedAt)
}

func (a *Adapter) GetPostByID(ctx context.Context, id string) (*core.Post, error) {
	q := `SELECT p.id, p.title, p.description, p.user_id, u.email, p.created_at, p.updated_at
		FROM public.posts p
		JOIN public.users u ON u.id = p.user_id
		WHERE p.id = $1`

	post := &core.Post{}
	err := a.pool.QueryRow(ctx, q, id).Scan(
		&post.ID, &post.Title, &post.Description, &post.UserID,
		&post.AuthorEmail, &post.CreatedAt, &post.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, core.ErrPostNotFound
		}
		return nil, err
	}
	return post, nil
}

func (a *Adapter) ListPosts(ctx context.Context, page, perPage int) ([]*core.Post, int, error) {
	q := `SELECT p.id, p.title, p.description, p.user_id, u.email, p.created_at, p.updated_at
		FROM public.posts p
		JOIN public.users u ON u.id = p.user_id
		ORDER BY p.created_at DESC
		OFFSET $1 LIMIT $2`

	rows, err := a.pool.Query(ctx, q, (page-1)*perPage, perPage)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	posts := []*core.Post{}
	for rows.Next() {
		post := &core.Post{}
		if err := rows.Scan(
			&post.ID, &post.Title, &post.Description, &post.UserID,
			&post.AuthorEmail, &post.CreatedAt, &post.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int
	if err := a.pool.QueryRow(ctx, `SELECT count(*) FROM public.posts`).Scan(&total); err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}

func (a *Adapter) UpdatePost(ctx context.Context, post *core.Post) error {
	q := `UPDATE public.posts SET title = $1, description = $2, updated_at = now() WHERE id = $3 RETURNING updated_at`

	err := a.pool.QueryRow(ctx, q, post.Title, post.Description, post.ID).Scan(&post.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return core.ErrPostNotFound
		}
		return err
	}
	return nil
}

func (a *Adapter) DeletePost(ctx context.Context, id string) error {
	ct, err := a.pool.Exec(ctx, `DELETE FROM public.posts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return core.ErrPostNotFound
	}
	return nil
}
