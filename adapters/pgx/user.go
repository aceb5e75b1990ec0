package pgx

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/okondo/bulletin/core"
)

const userColumns = `id, email, password, verified,
	verification_code, verification_code_issued_at,
	forgot_password_code, forgot_password_code_issued_at,
	created_at, updated_at`

func scanUser(row pgx.Row) (*core.User, error) {
	user := &core.User{}
	err := row.Scan(
		&user.ID, &user.Email, &user.Password, &user.Verified,
		&user.VerificationCode, &user.VerificationCodeIssuedAt,
		&user.ForgotPasswordCode, &user.ForgotPasswordCodeIssuedAt,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, core.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (a *Adapter) CreateUser(ctx context.Context, user *core.User) error {
	query := `INSERT INTO public.users (id, email, password, verified) VALUES ($1, $2, $3, $4) RETURNING created_at, updated_at`

	err := a.pool.QueryRow(ctx, query, user.ID, user.Email, user.Password, user.Verified).
		Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return core.ErrUserExists
		}
		return err
	}
	return nil
}

func (a *Adapter) GetUserByID(ctx context.Context, id string) (*core.User, error) {
	q := `SELECT ` + userColumns + ` FROM public.users WHERE id = $1`
	return scanUser(a.pool.QueryRow(ctx, q, id))
}

func (a *Adapter) GetUserByEmail(ctx context.Context, email string) (*core.User, error) {
	q := `SELECT ` + userColumns + ` FROM public.users WHERE email = $1`
	return scanUser(a.pool.QueryRow(ctx, q, email))
}

func (a *Adapter) UpdatePassword(ctx context.Context, id, hash string) error {
	q := `UPDATE public.users SET password = $1, updated_at = now() WHERE id = $2`
	return a.execOnUser(ctx, q, hash, id)
}

func (a *Adapter) SetVerificationCode(ctx context.Context, id, commitment string, issuedAt time.Time) error {
	q := `UPDATE public.users SET verification_code = $1, verification_code_issued_at = $2, updated_at = now() WHERE id = $3`
	return a.execOnUser(ctx, q, commitment, issuedAt, id)
}

func (a *Adapter) MarkVerified(ctx context.Context, id string) error {
	q := `UPDATE public.users SET verified = true, verification_code = NULL, verification_code_issued_at = NULL, updated_at = now() WHERE id = $1`
	return a.execOnUser(ctx, q, id)
}

func (a *Adapter) SetForgotPasswordCode(ctx context.Context, id, commitment string, issuedAt time.Time) error {
	q := `UPDATE public.users SET forgot_password_code = $1, forgot_password_code_issued_at = $2, updated_at = now() WHERE id = $3`
	return a.execOnUser(ctx, q, commitment, issuedAt, id)
}

func (a *Adapter) ResetPassword(ctx context.Context, id, hash string) error {
	q := `UPDATE public.users SET password = $1, forgot_password_code = NULL, forgot_password_code_issued_at = NULL, updated_at = now() WHERE id = $2`
	return a.execOnUser(ctx, q, hash, id)
}

// execOnUser runs a single-row UPDATE and maps a zero row count to
// core.ErrUserNotFound.
func (a *Adapter) execOnUser(ctx context.Context, query string, args ...any) error {
	ct, err := a.pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return core.ErrUserNotFound
	}
	return nil
}
