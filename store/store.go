// Package store persists messagely accounts and messages in a sqlite
// database. Account reads always hit the database so a login timestamp
// write is visible to the next read; only the message feeds, which
// change through CreateMessage alone, go through an in-process cache.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
)

type (
	Store struct {
		db    *sql.DB
		feeds *feedCache
	}
)

func openDatabase(ctx context.Context, dir string) (*sql.DB, error) {
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return nil, fmt.Errorf("unable to create directory %v to hold the store, cause %w", dir, err)
	}
	dbfile := filepath.Join(dir, "messagely.db")
	conn, err := sql.Open("sqlite3", fmt.Sprintf("file:%v?_journal=wal&_fk=true&mode=rwc", dbfile))
	if err != nil {
		return nil, fmt.Errorf("unable to open %v, cause %v", dbfile, err)
	}
	err = conn.PingContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to ping store %v, cause %v", dbfile, err)
	}
	return conn, nil
}

// Open loads (creating if needed) the store kept under dir.
func Open(ctx context.Context, dir string) (*Store, error) {
	conn, err := openDatabase(ctx, dir)
	if err != nil {
		return nil, err
	}
	s := &Store{db: conn, feeds: newFeedCache()}
	err = s.init(ctx)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("unable to init store at %v, cause %v", dir, err)
	}
	return s, nil
}

func (s *Store) init(ctx context.Context) error {
	stmts := []string{
		`create table if not exists users (
			username text primary key,
			password text not null,
			first_name text not null,
			last_name text not null,
			phone text not null,
			join_at timestamp not null,
			last_login_at timestamp not null
		)`,
		`create table if not exists messages (
			id integer primary key autoincrement,
			from_username text not null references users(username),
			to_username text not null references users(username),
			body text not null,
			sent_at timestamp not null,
			read_at timestamp
		)`,
		`create index if not exists messages_from_idx on messages(from_username)`,
		`create index if not exists messages_to_idx on messages(to_username)`,
	}
	for _, stmt := range stmts {
		_, err := s.db.ExecContext(ctx, stmt)
		if err != nil {
			return fmt.Errorf("unable to prepare schema, cause %w", err)
		}
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
