package core

import "time"

// User represents a registered account.
//
// Secret fields carry `json:"-"` so a User can be returned from a
// handler as-is without leaking the password hash or code commitments.
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Password string `json:"-"` // bcrypt hash, never exposed
	Verified bool   `json:"verified"`

	// Pending email-verification code: HMAC commitment plus issuance time.
	// Nil when no code is outstanding.
	VerificationCode         *string    `json:"-"`
	VerificationCodeIssuedAt *time.Time `json:"-"`

	// Parallel fields for the forgot-password flow. Kept in a separate
	// namespace so the two code flows cannot be cross-used.
	ForgotPasswordCode         *string    `json:"-"`
	ForgotPasswordCodeIssuedAt *time.Time `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Post is a user-owned content item. UserID is immutable after creation.
type Post struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	UserID      string    `json:"userId"`
	AuthorEmail string    `json:"authorEmail,omitempty"` // populated on reads
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// PostPage is one page of the public post listing, newest first.
type PostPage struct {
	Posts      []*Post `json:"data"`
	TotalPosts int     `json:"totalPosts"`
	TotalPages int     `json:"totalPages"`
}
