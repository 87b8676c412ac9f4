package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-bank-accounts/internal/domain/entity"
	"github.com/oksasatya/go-bank-accounts/internal/domain/repository"
	"github.com/oksasatya/go-bank-accounts/pkg/helpers"
)

type BankAccountRepository struct {
	pool   *pgxpool.Pool
	cipher *helpers.Cipher
}

func NewBankAccountRepository(pool *pgxpool.Pool, cipher *helpers.Cipher) *BankAccountRepository {
	return &BankAccountRepository{pool: pool, cipher: cipher}
}

const bankAccountColumns = `id, user_id, country, bank_number, account_number_encrypted, created_at, updated_at`

func (r *BankAccountRepository) Create(ctx context.Context, b *entity.BankAccount) error {
	sealed, err := r.cipher.Encrypt(b.AccountNumberDecrypted())
	if err != nil {
		return fmt.Errorf("encrypt account number: %w", err)
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO bank_accounts (user_id, country, bank_number, account_number_encrypted)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, b.UserID, b.Country, b.BankNumber, sealed)

	return row.Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

// ids are UUIDs; anything else cannot exist and must not reach Postgres as a cast error
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func (r *BankAccountRepository) GetByID(ctx context.Context, id string) (*entity.BankAccount, error) {
	if !validID(id) {
		return nil, repository.ErrNotFound
	}
	row := r.pool.QueryRow(ctx, `
		SELECT `+bankAccountColumns+`
		FROM bank_accounts
		WHERE id = $1 AND deleted_at IS NULL
	`, id)

	b, err := r.scan(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	return b, err
}

func (r *BankAccountRepository) ListByUser(ctx context.Context, userID string) ([]*entity.BankAccount, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+bankAccountColumns+`
		FROM bank_accounts
		WHERE user_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.BankAccount
	for rows.Next() {
		b, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// Delete soft-deletes the record and drops the ciphertext.
func (r *BankAccountRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return repository.ErrNotFound
	}
	res, err := r.pool.Exec(ctx, `
		UPDATE bank_accounts
		SET deleted_at = now(), updated_at = now(), account_number_encrypted = NULL
		WHERE id = $1 AND deleted_at IS NULL
	`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *BankAccountRepository) scan(row pgx.Row) (*entity.BankAccount, error) {
	b := &entity.BankAccount{}
	var sealed []byte
	if err := row.Scan(&b.ID, &b.UserID, &b.Country, &b.BankNumber, &sealed, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	plain, err := r.cipher.Decrypt(sealed)
	if err != nil {
		return nil, fmt.Errorf("decrypt account number for %s: %w", b.ID, err)
	}
	b.SetAccountNumber(plain)
	return b, nil
}

var _ repository.BankAccountRepository = (*BankAccountRepository)(nil)
