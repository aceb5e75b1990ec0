package core

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// PostsPerPage is the fixed page size of the public listing.
const PostsPerPage = 10

// PostService implements the public post listing and owner-scoped CRUD.
type PostService struct {
	posts PostStorage
	log   *slog.Logger
}

func NewPostService(posts PostStorage, log *slog.Logger) *PostService {
	if log == nil {
		log = slog.Default()
	}
	return &PostService{posts: posts, log: log}
}

// List returns one newest-first page. Pages are 1-indexed; anything at or
// below 1 is treated as the first page.
func (s *PostService) List(ctx context.Context, page int) (*PostPage, error) {
	if page <= 1 {
		page = 1
	}

	posts, total, err := s.posts.ListPosts(ctx, page, PostsPerPage)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	return &PostPage{
		Posts:      posts,
		TotalPosts: total,
		TotalPages: (total + PostsPerPage - 1) / PostsPerPage,
	}, nil
}

// Get returns a single post by id.
func (s *PostService) Get(ctx context.Context, id string) (*Post, error) {
	if id == "" {
		return nil, ErrPostNotFound
	}
	return s.posts.GetPostByID(ctx, id)
}

// Create stores a new post owned by userID.
func (s *PostService) Create(ctx context.Context, userID, title, description string) (*Post, error) {
	title, description, err := ValidatePost(title, description)
	if err != nil {
		return nil, err
	}

	post := &Post{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		UserID:      userID,
	}
	if err := s.posts.CreatePost(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	s.log.InfoContext(ctx, "post created",
		slog.String("post_id", post.ID), slog.String("user_id", userID))
	return post, nil
}

// Update replaces a post's title and description. Existence is checked
// before ownership so a missing post reports not-found rather than
// leaking whether it belongs to someone else.
func (s *PostService) Update(ctx context.Context, callerID, id, title, description string) (*Post, error) {
	title, description, err := ValidatePost(title, description)
	if err != nil {
		return nil, err
	}

	post, err := s.posts.GetPostByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorizeMutation(post, callerID); err != nil {
		return nil, err
	}

	post.Title = title
	post.Description = description
	if err := s.posts.UpdatePost(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}
	return post, nil
}

// Delete removes a post permanently. There is no soft-delete.
func (s *PostService) Delete(ctx context.Context, callerID, id string) error {
	post, err := s.posts.GetPostByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authorizeMutation(post, callerID); err != nil {
		return err
	}

	if err := s.posts.DeletePost(ctx, post.ID); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	s.log.InfoContext(ctx, "post deleted",
		slog.String("post_id", post.ID), slog.String("user_id", callerID))
	return nil
}

// authorizeMutation permits a mutation iff the caller owns the post.
func authorizeMutation(post *Post, callerID string) error {
	if post.UserID != callerID {
		return ErrNotPostOwner
	}
	return nil
}
