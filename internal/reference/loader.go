package reference

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"

	"qr-engine/internal/common/config"
	"qr-engine/internal/common/errors"

	"github.com/lib/pq"
)

// Loader produces the reference tables. It is invoked once at startup.
type Loader interface {
	Load(ctx context.Context) (*Tables, error)
	Source() string
}

// NewLoader picks a loader for the configured source. db is only consulted
// for the postgres source.
func NewLoader(cfg config.ReferenceConfig, db *sql.DB) (Loader, error) {
	switch cfg.Source {
	case "", config.ReferenceSourceStatic:
		return StaticLoader{}, nil
	case config.ReferenceSourceFile:
		return FileLoader{Path: cfg.FilePath}, nil
	case config.ReferenceSourcePostgres:
		if db == nil {
			return nil, fmt.Errorf("postgres reference source needs a database handle")
		}
		return &PostgresLoader{DB: db}, nil
	default:
		return nil, fmt.Errorf("unknown reference source %q", cfg.Source)
	}
}

// StaticLoader serves the built-in defaults.
type StaticLoader struct{}

func (StaticLoader) Source() string { return config.ReferenceSourceStatic }

func (l StaticLoader) Load(ctx context.Context) (*Tables, error) {
	return build(l.Source(), DefaultData())
}

// FileLoader reads a JSON document shaped like Data. Sections absent from
// the file fall back to the defaults.
type FileLoader struct {
	Path string
}

func (FileLoader) Source() string { return config.ReferenceSourceFile }

func (l FileLoader) Load(ctx context.Context) (*Tables, error) {
	raw, err := os.ReadFile(l.Path)
	if err != nil {
		return nil, errors.NewReferenceLoadFailedError(l.Source(), err.Error())
	}

	var data Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, errors.NewReferenceLoadFailedError(l.Source(), fmt.Sprintf("decode %s: %v", l.Path, err))
	}

	return build(l.Source(), fillDefaults(data))
}

const (
	selectBanksQuery      = `SELECT code, name, short_name, bin, aliases FROM vietqr_banks WHERE active = true ORDER BY code`
	selectCurrenciesQuery = `SELECT code, max_amount, decimals, locale FROM payment_currency_limits ORDER BY code`
)

// PostgresLoader reads banks and currency limits from the operational
// database. Mobile prefixes and platforms always come from the defaults.
type PostgresLoader struct {
	DB *sql.DB
}

func (*PostgresLoader) Source() string { return config.ReferenceSourcePostgres }

func (l *PostgresLoader) Load(ctx context.Context) (*Tables, error) {
	banks, err := l.loadBanks(ctx)
	if err != nil {
		return nil, errors.NewReferenceLoadFailedError(l.Source(), err.Error())
	}

	currencies, err := l.loadCurrencies(ctx)
	if err != nil {
		return nil, errors.NewReferenceLoadFailedError(l.Source(), err.Error())
	}

	return build(l.Source(), fillDefaults(Data{
		Banks:      banks,
		Currencies: currencies,
	}))
}

func (l *PostgresLoader) loadBanks(ctx context.Context) ([]Bank, error) {
	rows, err := l.DB.QueryContext(ctx, selectBanksQuery)
	if err != nil {
		return nil, fmt.Errorf("query banks: %w", err)
	}
	defer rows.Close()

	var banks []Bank
	for rows.Next() {
		var (
			b         Bank
			shortName sql.NullString
			aliases   pq.StringArray
		)
		if err := rows.Scan(&b.Code, &b.Name, &shortName, &b.BIN, &aliases); err != nil {
			return nil, fmt.Errorf("scan bank: %w", err)
		}
		b.ShortName = shortName.String
		b.Aliases = []string(aliases)
		banks = append(banks, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate banks: %w", err)
	}
	return banks, nil
}

func (l *PostgresLoader) loadCurrencies(ctx context.Context) ([]Currency, error) {
	rows, err := l.DB.QueryContext(ctx, selectCurrenciesQuery)
	if err != nil {
		return nil, fmt.Errorf("query currency limits: %w", err)
	}
	defer rows.Close()

	var currencies []Currency
	for rows.Next() {
		var c Currency
		if err := rows.Scan(&c.Code, &c.MaxAmount, &c.Decimals, &c.Locale); err != nil {
			return nil, fmt.Errorf("scan currency limit: %w", err)
		}
		currencies = append(currencies, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate currency limits: %w", err)
	}
	return currencies, nil
}

func build(source string, data Data) (*Tables, error) {
	t, err := NewTables(data)
	if err != nil {
		return nil, errors.NewReferenceLoadFailedError(source, err.Error())
	}
	return t, nil
}

// MustDefault returns the default tables. It panics only if the built-in data
// is inconsistent, which the package tests rule out.
func MustDefault() *Tables {
	t, err := NewTables(DefaultData())
	if err != nil {
		panic(err)
	}
	return t
}
