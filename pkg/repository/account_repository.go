package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/lib/pq"

	"healthapp/pkg/apperr"
	"healthapp/pkg/models"
)

// AccountRepository provides durable access to identity records. The
// database's unique indexes are the final authority on username/phone
// uniqueness; violations surface as conflict errors even when two inserts
// race past the pre-checks.
type AccountRepository interface {
	Create(ctx context.Context, a *models.Account) error
	GetByID(ctx context.Context, id string) (models.Account, error)
	GetByUsername(ctx context.Context, username string) (models.Account, error)
	Update(ctx context.Context, a *models.Account) error
	UsernameTaken(ctx context.Context, username string) (bool, error)
	PhoneTaken(ctx context.Context, phone string) (bool, error)
	PhoneTakenByOther(ctx context.Context, phone, accountID string) (bool, error)
}

type accountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) AccountRepository {
	return &accountRepository{db: db}
}

const accountColumns = `id, username, name, age, gender, phone, password_hash, COALESCE(photo_url, ''), created_at, updated_at`

func (r *accountRepository) Create(ctx context.Context, a *models.Account) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO accounts (id, username, name, age, gender, phone, password_hash, photo_url, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), $9, $10)`,
		a.ID, strings.ToLower(a.Username), a.Name, a.Age, a.Gender, a.Phone,
		a.PasswordHash, a.PhotoURL, a.CreatedAt, a.UpdatedAt,
	)
	if field, ok := uniqueViolation(err); ok {
		return apperr.Conflict(field)
	}
	return err
}

func (r *accountRepository) GetByID(ctx context.Context, id string) (models.Account, error) {
	return r.scanOne(r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id))
}

func (r *accountRepository) GetByUsername(ctx context.Context, username string) (models.Account, error) {
	return r.scanOne(r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE username = $1`,
		strings.ToLower(username)))
}

func (r *accountRepository) Update(ctx context.Context, a *models.Account) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE accounts
		 SET name = $2, age = $3, phone = $4, photo_url = NULLIF($5, ''), updated_at = $6
		 WHERE id = $1`,
		a.ID, a.Name, a.Age, a.Phone, a.PhotoURL, a.UpdatedAt,
	)
	if field, ok := uniqueViolation(err); ok {
		return apperr.Conflict(field)
	}
	return err
}

func (r *accountRepository) UsernameTaken(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx,
		`SELECT EXISTS(SELECT 1 FROM accounts WHERE username = $1)`,
		strings.ToLower(username))
}

func (r *accountRepository) PhoneTaken(ctx context.Context, phone string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS(SELECT 1 FROM accounts WHERE phone = $1)`, phone)
}

func (r *accountRepository) PhoneTakenByOther(ctx context.Context, phone, accountID string) (bool, error) {
	return r.exists(ctx,
		`SELECT EXISTS(SELECT 1 FROM accounts WHERE phone = $1 AND id <> $2)`,
		phone, accountID)
}

func (r *accountRepository) exists(ctx context.Context, query string, args ...interface{}) (bool, error) {
	var taken bool
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&taken)
	return taken, err
}

func (r *accountRepository) scanOne(row *sql.Row) (models.Account, error) {
	var a models.Account
	err := row.Scan(&a.ID, &a.Username, &a.Name, &a.Age, &a.Gender, &a.Phone,
		&a.PasswordHash, &a.PhotoURL, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Account{}, apperr.ErrNotFound
	}
	return a, err
}

// uniqueViolation identifies Postgres unique-index errors (23505) and which
// uniqueness constraint they hit.
func uniqueViolation(err error) (string, bool) {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != "23505" {
		return "", false
	}
	if strings.Contains(pqErr.Constraint, "phone") {
		return "phone", true
	}
	return "username", true
}
