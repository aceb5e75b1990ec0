package core

import (
	"context"
	"time"
)

// Ports define interfaces for external dependencies

// UserStorage defines user-related database operations.
//
// Every mutation touches a single user row in a single statement, so a
// concurrent reader of the same row never observes a partial write.
type UserStorage interface {
	// CreateUser persists a new user. A duplicate email yields ErrUserExists.
	CreateUser(ctx context.Context, u *User) error

	// Query methods. Both return the secret columns; callers rely on the
	// model's json tags to keep them out of responses.
	GetUserByID(ctx context.Context, id string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)

	// UpdatePassword replaces the stored hash, leaving verification state
	// and outstanding codes untouched.
	UpdatePassword(ctx context.Context, id, hash string) error

	// SetVerificationCode stores a new commitment, superseding any
	// outstanding one (last writer wins).
	SetVerificationCode(ctx context.Context, id, commitment string, issuedAt time.Time) error

	// MarkVerified flips the verified flag and clears both verification
	// code fields in one statement.
	MarkVerified(ctx context.Context, id string) error

	// SetForgotPasswordCode stores a new reset commitment, superseding any
	// outstanding one.
	SetForgotPasswordCode(ctx context.Context, id, commitment string, issuedAt time.Time) error

	// ResetPassword replaces the stored hash and clears both reset code
	// fields in one statement.
	ResetPassword(ctx context.Context, id, hash string) error
}

// PostStorage defines post-related database operations.
type PostStorage interface {
	CreatePost(ctx context.Context, p *Post) error

	// GetPostByID returns the post with its author email populated, or
	// ErrPostNotFound.
	GetPostByID(ctx context.Context, id string) (*Post, error)

	// ListPosts returns one newest-first page (1-indexed) plus the total
	// number of posts.
	ListPosts(ctx context.Context, page, perPage int) ([]*Post, int, error)

	UpdatePost(ctx context.Context, p *Post) error
	DeletePost(ctx context.Context, id string) error
}

type Storage interface {
	UserStorage
	PostStorage
}
