package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"
	"github.com/reamslin/messagely/auth"
)

type (
	// Profile is the client-facing projection of an account. It never
	// carries the password digest.
	Profile struct {
		Username  string `json:"username"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Phone     string `json:"phone"`
	}
)

// FindByUsername loads the full credential record for username.
func (s *Store) FindByUsername(ctx context.Context, username string) (auth.Account, error) {
	var acct auth.Account
	err := s.db.QueryRowContext(ctx,
		`select username, password, first_name, last_name, phone, join_at, last_login_at
		from users where username = ?`, username).
		Scan(&acct.Username, &acct.PasswordHash, &acct.FirstName, &acct.LastName,
			&acct.Phone, &acct.JoinAt, &acct.LastLoginAt)
	if errors.Is(err, sql.ErrNoRows) {
		return auth.Account{}, auth.NotFound{Username: username}
	} else if err != nil {
		return auth.Account{}, fmt.Errorf("unable to load user %v, cause %w", username, err)
	}
	return acct, nil
}

// Insert persists a new account. A duplicate username surfaces as
// auth.Conflict, taken from sqlite's uniqueness constraint.
func (s *Store) Insert(ctx context.Context, acct auth.Account) (auth.Account, error) {
	_, err := s.db.ExecContext(ctx,
		`insert into users (username, password, first_name, last_name, phone, join_at, last_login_at)
		values (?, ?, ?, ?, ?, ?, ?)`,
		acct.Username, acct.PasswordHash, acct.FirstName, acct.LastName,
		acct.Phone, acct.JoinAt, acct.LastLoginAt)
	var serr sqlite3.Error
	if errors.As(err, &serr) &&
		(serr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey || serr.ExtendedCode == sqlite3.ErrConstraintUnique) {
		return auth.Account{}, auth.Conflict{Username: acct.Username}
	} else if err != nil {
		return auth.Account{}, fmt.Errorf("unable to insert user %v, cause %w", acct.Username, err)
	}
	return acct, nil
}

// TouchLastLogin advances last_login_at for username and returns the
// updated record. Concurrent touches race benignly, last write wins.
func (s *Store) TouchLastLogin(ctx context.Context, username string) (auth.Account, error) {
	res, err := s.db.ExecContext(ctx,
		`update users set last_login_at = ? where username = ?`,
		time.Now().UTC(), username)
	if err != nil {
		return auth.Account{}, fmt.Errorf("unable to update last login of %v, cause %w", username, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return auth.Account{}, fmt.Errorf("unable to update last login of %v, cause %w", username, err)
	}
	if n == 0 {
		return auth.Account{}, auth.NotFound{Username: username}
	}
	return s.FindByUsername(ctx, username)
}

// ListUsers returns the profile of every account, ordered by username.
func (s *Store) ListUsers(ctx context.Context) ([]Profile, error) {
	rows, err := s.db.QueryContext(ctx,
		`select username, first_name, last_name, phone from users order by username asc`)
	if err != nil {
		return nil, fmt.Errorf("unable to list users, cause %w", err)
	}
	defer rows.Close()
	out := []Profile{}
	for rows.Next() {
		var p Profile
		err = rows.Scan(&p.Username, &p.FirstName, &p.LastName, &p.Phone)
		if err != nil {
			return nil, fmt.Errorf("unable to scan user row, cause %v", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
