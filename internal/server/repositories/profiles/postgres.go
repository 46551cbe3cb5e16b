package profiles

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrijs2005/profilekeeper/internal/common"
	"github.com/dmitrijs2005/profilekeeper/internal/dbx"
	"github.com/dmitrijs2005/profilekeeper/internal/server/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// writable are the columns Update may touch.
var writable = map[string]bool{
	models.ColumnPasswordHash: true,
	models.FieldFirstName:     true,
	models.FieldLastName:      true,
	models.FieldPhone:         true,
	models.FieldAddress:       true,
	models.FieldApartment:     true,
	models.FieldCity:          true,
	models.FieldState:         true,
	models.FieldCountry:       true,
	models.FieldZip:           true,
}

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, p *models.Profile) (*models.Profile, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	query :=
		`INSERT INTO profiles (id, email, password_hash, first_name, last_name, phone,
		   address, apartment, city, state, country, zip)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		p.ID, p.Email, p.PasswordHash, p.FirstName, p.LastName, p.Phone,
		p.Address, p.Apartment, p.City, p.State, p.Country, p.Zip,
	).Scan(&p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return p, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	query :=
		`SELECT id, email, password_hash, first_name, last_name, phone,
		   address, apartment, city, state, country, zip, created_at, updated_at
		 FROM profiles
		 WHERE email = $1
		 `

	p := &models.Profile{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&p.ID, &p.Email, &p.PasswordHash, &p.FirstName, &p.LastName, &p.Phone,
		&p.Address, &p.Apartment, &p.City, &p.State, &p.Country, &p.Zip,
		&p.CreatedAt, &p.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return p, nil
}

// Update sets the given columns in name order so the statement text is
// stable. A column outside the writable set fails with common.ErrorValidation.
func (r *PostgresRepository) Update(ctx context.Context, email string, columns map[string]string) error {
	if len(columns) == 0 {
		return fmt.Errorf("%w: nothing to update", common.ErrorValidation)
	}

	names := make([]string, 0, len(columns))
	for name := range columns {
		if !writable[name] {
			return fmt.Errorf("%w: column %q is not writable", common.ErrorValidation, name)
		}
		names = append(names, name)
	}
	slices.Sort(names)

	sets := make([]string, 0, len(names)+1)
	args := make([]any, 0, len(names)+1)
	for i, name := range names {
		sets = append(sets, fmt.Sprintf("%s = $%d", name, i+1))
		args = append(args, columns[name])
	}
	sets = append(sets, "updated_at = now()")
	args = append(args, email)

	query := fmt.Sprintf("UPDATE profiles SET %s WHERE email = $%d", strings.Join(sets, ", "), len(args))

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}

	return nil
}
