package authserver

import (
	"database/sql"
	"errors"
	"fmt"
)

// ErrUserExists is returned when registering an email that is taken.
var ErrUserExists = errors.New("user already exists")

// ErrUserNotFound is returned when no user matches the email.
var ErrUserNotFound = errors.New("user not found")

// User is a stored account. PasswordHash is a bcrypt hash, never the
// plaintext.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
}

// Store persists user accounts in SQLite.
type Store struct {
	db *sql.DB
}

// NewStore creates a store over db, ensuring the users table exists.
func NewStore(db *sql.DB) (*Store, error) {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return nil, fmt.Errorf("creating users table: %w", err)
	}
	return &Store{db: db}, nil
}

// Create inserts a new user. Returns ErrUserExists when the email is taken.
func (s *Store) Create(name, email, passwordHash string) error {
	var existing int
	err := s.db.QueryRow("SELECT COUNT(*) FROM users WHERE email = ?", email).Scan(&existing)
	if err != nil {
		return fmt.Errorf("checking existing user: %w", err)
	}
	if existing > 0 {
		return ErrUserExists
	}

	_, err = s.db.Exec(
		"INSERT INTO users (name, email, password_hash) VALUES (?, ?, ?)",
		name, email, passwordHash,
	)
	if err != nil {
		return fmt.Errorf("inserting user: %w", err)
	}
	return nil
}

// GetByEmail retrieves a user by email.
func (s *Store) GetByEmail(email string) (*User, error) {
	var u User
	err := s.db.QueryRow(
		"SELECT id, name, email, password_hash FROM users WHERE email = ?",
		email,
	).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash)

	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying user: %w", err)
	}
	return &u, nil
}

// Update applies the non-empty fields to the user identified by email and
// returns the updated record. The email key may itself change.
func (s *Store) Update(email string, name, newEmail, passwordHash string) (*User, error) {
	u, err := s.GetByEmail(email)
	if err != nil {
		return nil, err
	}

	if name != "" {
		u.Name = name
	}
	if newEmail != "" {
		u.Email = newEmail
	}
	if passwordHash != "" {
		u.PasswordHash = passwordHash
	}

	_, err = s.db.Exec(
		"UPDATE users SET name = ?, email = ?, password_hash = ? WHERE id = ?",
		u.Name, u.Email, u.PasswordHash, u.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("updating user: %w", err)
	}
	return u, nil
}

// Delete removes the user identified by email.
func (s *Store) Delete(email string) error {
	res, err := s.db.Exec("DELETE FROM users WHERE email = ?", email)
	if err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrUserNotFound
	}
	return nil
}
