package core

import (
	"context"
	"sort"
	"sync"
	"time"
)

// FakeUserStorage is a test-only fake implementing UserStorage. It stores
// users in a map and exposes error fields for behavior injection.
type FakeUserStorage struct {
	mu    sync.Mutex
	users map[string]*User // keyed by id

	CreateErr error
	GetErr    error
	WriteErr  error
}

var _ UserStorage = (*FakeUserStorage)(nil)

func NewFakeUserStorage() *FakeUserStorage {
	return &FakeUserStorage{users: make(map[string]*User)}
}

func (f *FakeUserStorage) CreateUser(ctx context.Context, u *User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.CreateErr != nil {
		return f.CreateErr
	}
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return ErrUserExists
		}
	}
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
	clone := *u
	f.users[u.ID] = &clone
	return nil
}

func (f *FakeUserStorage) GetUserByID(ctx context.Context, id string) (*User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.GetErr != nil {
		return nil, f.GetErr
	}
	u, ok := f.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (f *FakeUserStorage) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.GetErr != nil {
		return nil, f.GetErr
	}
	for _, u := range f.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, ErrUserNotFound
}

func (f *FakeUserStorage) UpdatePassword(ctx context.Context, id, hash string) error {
	return f.mutate(id, func(u *User) {
		u.Password = hash
	})
}

func (f *FakeUserStorage) SetVerificationCode(ctx context.Context, id, commitment string, issuedAt time.Time) error {
	return f.mutate(id, func(u *User) {
		u.VerificationCode = &commitment
		u.VerificationCodeIssuedAt = &issuedAt
	})
}

func (f *FakeUserStorage) MarkVerified(ctx context.Context, id string) error {
	return f.mutate(id, func(u *User) {
		u.Verified = true
		u.VerificationCode = nil
		u.VerificationCodeIssuedAt = nil
	})
}

func (f *FakeUserStorage) SetForgotPasswordCode(ctx context.Context, id, commitment string, issuedAt time.Time) error {
	return f.mutate(id, func(u *User) {
		u.ForgotPasswordCode = &commitment
		u.ForgotPasswordCodeIssuedAt = &issuedAt
	})
}

func (f *FakeUserStorage) ResetPassword(ctx context.Context, id, hash string) error {
	return f.mutate(id, func(u *User) {
		u.Password = hash
		u.ForgotPasswordCode = nil
		u.ForgotPasswordCodeIssuedAt = nil
	})
}

func (f *FakeUserStorage) mutate(id string, apply func(*User)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.WriteErr != nil {
		return f.WriteErr
	}
	u, ok := f.users[id]
	if !ok {
		return ErrUserNotFound
	}
	apply(u)
	u.UpdatedAt = time.Now()
	return nil
}

// FakePostStorage is a test-only fake implementing PostStorage.
type FakePostStorage struct {
	mu    sync.Mutex
	posts map[string]*Post

	CreateErr error
	GetErr    error
	WriteErr  error
}

var _ PostStorage = (*FakePostStorage)(nil)

func NewFakePostStorage() *FakePostStorage {
	return &FakePostStorage{posts: make(map[string]*Post)}
}

func (f *FakePostStorage) CreatePost(ctx context.Context, p *Post) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.CreateErr != nil {
		return f.CreateErr
	}
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	clone := *p
	f.posts[p.ID] = &clone
	return nil
}

func (f *FakePostStorage) GetPostByID(ctx context.Context, id string) (*Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.GetErr != nil {
		return nil, f.GetErr
	}
	p, ok := f.posts[id]
	if !ok {
		return nil, ErrPostNotFound
	}
	clone := *p
	return &clone, nil
}

func (f *FakePostStorage) ListPosts(ctx context.Context, page, perPage int) ([]*Post, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.GetErr != nil {
		return nil, 0, f.GetErr
	}

	all := make([]*Post, 0, len(f.posts))
	for _, p := range f.posts {
		clone := *p
		all = append(all, &clone)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	start := (page - 1) * perPage
	if start >= len(all) {
		return []*Post{}, len(all), nil
	}
	end := start + perPage
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], len(all), nil
}

func (f *FakePostStorage) UpdatePost(ctx context.Context, p *Post) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.WriteErr != nil {
		return f.WriteErr
	}
	stored, ok := f.posts[p.ID]
	if !ok {
		return ErrPostNotFound
	}
	stored.Title = p.Title
	stored.Description = p.Description
	stored.UpdatedAt = time.Now()
	return nil
}

func (f *FakePostStorage) DeletePost(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.WriteErr != nil {
		return f.WriteErr
	}
	if _, ok := f.posts[id]; !ok {
		return ErrPostNotFound
	}
	delete(f.posts, id)
	return nil
}

// FakeMailer is a test-only fake implementing Mailer. It records sent
// messages and can be told to reject the recipient.
type FakeMailer struct {
	mu   sync.Mutex
	Sent []FakeMail

	SendErr error
}

type FakeMail struct {
	To      string
	Subject string
	Body    string
}

var _ Mailer = (*FakeMailer)(nil)

func (f *FakeMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.SendErr != nil {
		return f.SendErr
	}
	f.Sent = append(f.Sent, FakeMail{To: to, Subject: subject, Body: htmlBody})
	return nil
}
