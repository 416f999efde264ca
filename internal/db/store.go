package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

// Dialect определяет активный бэкенд базы данных.
type Dialect int

const (
	DialectSQLite Dialect = iota
	DialectPostgres
)

func (d Dialect) String() string {
	if d == DialectPostgres {
		return "postgres"
	}
	return "sqlite"
}

// Store — адаптер над *sql.DB для двух взаимозаменяемых бэкендов.
// Все запросы пишутся с плейсхолдерами `?`; для PostgreSQL они
// переписываются в `$1..$n`, для SQLite уходят как есть.
type Store struct {
	db      *sql.DB
	dialect Dialect
}

// OpenSQLite открывает локальный файл SQLite (embedded-режим).
func OpenSQLite(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" && path != ":memory:" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	conn, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, err
	}
	if err = conn.Ping(); err != nil {
		return nil, err
	}
	return &Store{db: conn, dialect: DialectSQLite}, nil
}

// OpenPostgres подключается к сетевому PostgreSQL по строке подключения.
func OpenPostgres(url string) (*Store, error) {
	conn, err := sql.Open("postgres", url)
	if err != nil {
		return nil, err
	}
	if err = conn.Ping(); err != nil {
		return nil, err
	}
	return &Store{db: conn, dialect: DialectPostgres}, nil
}

// Open выбирает бэкенд на этапе композиции: DATABASE_URL → PostgreSQL,
// иначе локальный SQLite.
func Open(databaseURL, sqlitePath string) (*Store, error) {
	if databaseURL != "" {
		log.Println("🔌 Connecting to PostgreSQL...")
		return OpenPostgres(databaseURL)
	}
	log.Printf("🔌 Using local SQLite database: %s", sqlitePath)
	return OpenSQLite(sqlitePath)
}

func (s *Store) Dialect() Dialect { return s.dialect }

func (s *Store) Close() error { return s.db.Close() }

// rebind переписывает `?` в `$1..$n` для PostgreSQL.
func (s *Store) rebind(query string) string {
	if s.dialect != DialectPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

func (s *Store) Query(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return s.db.QueryContext(ctx, s.rebind(query), args...)
}

func (s *Store) QueryRow(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return s.db.QueryRowContext(ctx, s.rebind(query), args...)
}

// Exec выполняет мутирующий запрос и возвращает число затронутых строк.
func (s *Store) Exec(ctx context.Context, query string, args ...interface{}) (int64, error) {
	res, err := s.db.ExecContext(ctx, s.rebind(query), args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Insert выполняет INSERT и возвращает сгенерированный id.
// SQLite отдает его через LastInsertId, PostgreSQL — через RETURNING.
func (s *Store) Insert(ctx context.Context, query string, args ...interface{}) (int64, error) {
	return insert(ctx, s.db, s.dialect, s.rebind(query), args...)
}

// WithTx выполняет fn внутри транзакции. Любая ошибка откатывает её целиком.
func (s *Store) WithTx(ctx context.Context, fn func(tx *Tx) error) error {
	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	tx := &Tx{tx: sqlTx, store: s}
	if err := fn(tx); err != nil {
		if rbErr := sqlTx.Rollback(); rbErr != nil {
			log.Printf("tx rollback error: %v", rbErr)
		}
		return err
	}
	return sqlTx.Commit()
}

// Tx — те же операции, что у Store, но в рамках одной транзакции.
type Tx struct {
	tx    *sql.Tx
	store *Store
}

func (t *Tx) Query(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return t.tx.QueryContext(ctx, t.store.rebind(query), args...)
}

func (t *Tx) QueryRow(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return t.tx.QueryRowContext(ctx, t.store.rebind(query), args...)
}

func (t *Tx) Exec(ctx context.Context, query string, args ...interface{}) (int64, error) {
	res, err := t.tx.ExecContext(ctx, t.store.rebind(query), args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (t *Tx) Insert(ctx context.Context, query string, args ...interface{}) (int64, error) {
	return insert(ctx, t.tx, t.store.dialect, t.store.rebind(query), args...)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

func insert(ctx context.Context, db execer, dialect Dialect, query string, args ...interface{}) (int64, error) {
	if dialect == DialectPostgres {
		q := strings.TrimSuffix(strings.TrimSpace(query), ";") + " RETURNING id"
		var id int64
		if err := db.QueryRowContext(ctx, q, args...).Scan(&id); err != nil {
			return 0, err
		}
		return id, nil
	}
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// IsUniqueViolation сообщает, нарушил ли запрос уникальный индекс.
func IsUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}

// IsDuplicateColumn используется миграциями: колонка уже существует.
func IsDuplicateColumn(err error) bool {
	if err == nil {
		return false
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "42701"
	}
	return strings.Contains(err.Error(), "duplicate column name")
}
