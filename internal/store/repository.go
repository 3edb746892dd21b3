package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/amishk599/vacancydb/internal/model"
)

var (
	_ model.VacancyWriter = (*Repository)(nil)
	_ model.VacancyReader = (*Repository)(nil)
)

// ErrNotFound is returned by lookups that match no row.
var ErrNotFound = errors.New("not found")

// Config holds the connection parameters for the repository.
type Config struct {
	Driver   string // "postgres" (default) or "sqlite"
	Host     string
	Port     int
	Database string
	User     string
	Password string
	SSLMode  string // postgres sslmode, omitted when empty
	Path     string // sqlite database file
}

// DSN returns the data source name handed to the database/sql driver.
func (c Config) DSN() string {
	if c.Driver == DriverSQLite {
		return "file:" + c.Path + "?_pragma=foreign_keys(1)"
	}

	host := c.Host
	if c.Port > 0 {
		host = net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Password),
		Host:   host,
		Path:   "/" + c.Database,
	}
	if c.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": {c.SSLMode}}.Encode()
	}
	return u.String()
}

// ConnectionError reports that the database could not be reached at startup.
type ConnectionError struct {
	Driver string
	Err    error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connecting to %s database: %v", e.Driver, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// Repository stores companies and vacancies over a single database connection.
// Every operation is one statement committed on its own.
type Repository struct {
	db      *sql.DB
	dialect dialect
}

// Open connects to the database described by cfg and verifies the connection.
// Any failure is returned as a *ConnectionError.
func Open(ctx context.Context, cfg Config) (*Repository, error) {
	d, err := dialectFor(cfg.Driver)
	if err != nil {
		return nil, err
	}
	driver := cfg.Driver
	if driver == "" {
		driver = DriverPostgres
	}
	if driver == DriverSQLite {
		if err := registerSQLiteFuncs(); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open(d.sqlDriver, cfg.DSN())
	if err != nil {
		return nil, &ConnectionError{Driver: driver, Err: err}
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, &ConnectionError{Driver: driver, Err: err}
	}

	return &Repository{db: db, dialect: d}, nil
}

// CreateTables creates the companies and vacancies tables if they are absent.
func (r *Repository) CreateTables(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, r.dialect.createCompanies); err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, r.dialect.createVacancies); err != nil {
		return err
	}
	return nil
}

// InsertCompany adds a company and returns its generated id. A duplicate name
// fails with the store's unique-constraint error.
func (r *Repository) InsertCompany(ctx context.Context, name string) (int64, error) {
	var id int64
	if err := r.db.QueryRowContext(ctx, r.dialect.insertCompany, name).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// InsertVacancy adds a vacancy and returns its generated id. employerID, salaryFrom
// and salaryTo may be nil.
func (r *Repository) InsertVacancy(ctx context.Context, employerID *int64, title string, salaryFrom, salaryTo *float64, url string) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, r.dialect.insertVacancy, employerID, title, salaryFrom, salaryTo, url).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// GetCompanyID looks a company up by exact name.
func (r *Repository) GetCompanyID(ctx context.Context, name string) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, r.dialect.companyID, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	return id, nil
}

// Close releases the connection. It is safe to call more than once and on a
// repository whose Open never completed.
func (r *Repository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	err := r.db.Close()
	r.db = nil
	return err
}
