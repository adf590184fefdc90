package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"live-interpreter-service/internal/auth"
	"live-interpreter-service/internal/models"
)

// GetAccount fetches an account by its external identity id.
func (s *Store) GetAccount(ctx context.Context, id string) (models.Account, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, email, COALESCE(full_name, ''), is_active, is_verified, role, created_at
		FROM users WHERE id = $1`, id)

	var a models.Account
	err := row.Scan(&a.ID, &a.Email, &a.FullName, &a.IsActive, &a.IsVerified, &a.Role, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Account{}, ErrNotFound
	}
	if err != nil {
		return models.Account{}, fmt.Errorf("get account: %w", err)
	}
	return a, nil
}

// FindOrCreateAccount resolves a verified identity to an account row,
// provisioning a minimal one on first contact. Idempotent: concurrent
// first contacts race on the insert, and the loser reads the winner's
// row.
func (s *Store) FindOrCreateAccount(ctx context.Context, ident auth.Identity) (models.Account, error) {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO users (id, email, full_name, is_active, is_verified, role)
		VALUES ($1, $2, NULLIF($3, ''), TRUE, $4, 'user')
		ON CONFLICT (id) DO NOTHING`,
		ident.ID, ident.Email, ident.FullName, ident.EmailVerified)
	if err != nil {
		return models.Account{}, fmt.Errorf("provision account: %w", err)
	}

	return s.GetAccount(ctx, ident.ID)
}
