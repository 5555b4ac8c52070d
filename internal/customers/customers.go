// Package customers is the advertiser directory parsed orders are matched
// against before booking.
package customers

import (
	"context"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	"github.com/example/order-ingest/internal/db"
)

type Customer struct {
	ID             uuid.UUID
	Name           string
	NormalizedName string
	Market         string
	Agency         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type Repo struct{ db *db.DB }

func NewRepo(d *db.DB) *Repo { return &Repo{db: d} }

func (r *Repo) Create(ctx context.Context, c Customer) (Customer, error) {
	c.ID = uuid.New()
	c.NormalizedName = Normalize(c.Name)
	err := r.db.QueryRow(ctx, `
INSERT INTO customers(id,name,normalized_name,market,agency)
VALUES ($1,$2,$3,$4,$5)
RETURNING created_at,updated_at`,
		c.ID, c.Name, c.NormalizedName, c.Market, c.Agency,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return Customer{}, db.WrapNotFound(err)
	}
	return c, nil
}

func (r *Repo) List(ctx context.Context) ([]Customer, error) {
	rows, err := r.db.Query(ctx, `
SELECT id,name,normalized_name,market,agency,created_at,updated_at
FROM customers
ORDER BY normalized_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Customer
	for rows.Next() {
		var c Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.NormalizedName, &c.Market, &c.Agency, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// FindExact looks a customer up by its exact stored name.
func (r *Repo) FindExact(ctx context.Context, name string) (Customer, error) {
	return r.scanOne(ctx, `
SELECT id,name,normalized_name,market,agency,created_at,updated_at
FROM customers
WHERE name=$1`, name)
}

// FindNormalized looks a customer up by normalized name, which is how
// extracted advertiser names are matched: punctuation, case and corporate
// suffixes do not survive PDF extraction reliably.
func (r *Repo) FindNormalized(ctx context.Context, name string) (Customer, error) {
	return r.scanOne(ctx, `
SELECT id,name,normalized_name,market,agency,created_at,updated_at
FROM customers
WHERE normalized_name=$1`, Normalize(name))
}

func (r *Repo) scanOne(ctx context.Context, sql string, args ...any) (Customer, error) {
	var c Customer
	err := r.db.QueryRow(ctx, sql, args...).
		Scan(&c.ID, &c.Name, &c.NormalizedName, &c.Market, &c.Agency, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return Customer{}, db.WrapNotFound(err)
	}
	return c, nil
}

// corporate suffixes dropped during normalization
var nameSuffixes = map[string]bool{
	"inc": true, "llc": true, "corp": true, "co": true, "ltd": true,
	"company": true, "incorporated": true,
}

// Normalize folds a customer name for lookup: lowercase, punctuation
// stripped, whitespace collapsed, trailing corporate suffixes dropped.
func Normalize(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r) || r == '-' || r == '/':
			b.WriteByte(' ')
		}
	}
	fields := strings.Fields(b.String())
	for len(fields) > 1 && nameSuffixes[fields[len(fields)-1]] {
		fields = fields[:len(fields)-1]
	}
	return strings.Join(fields, " ")
}
