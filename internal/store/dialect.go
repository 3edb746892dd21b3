package store

import "fmt"

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

const vacancyRowsSelect = `SELECT c.name, v.title, v.salary_from, v.salary_to, v.url
	FROM vacancies v
	INNER JOIN companies c ON v.employer_id = c.id`

const countsQuery = `SELECT c.id, c.name, COUNT(v.id) AS vacancies_count
	FROM companies c
	LEFT JOIN vacancies v ON c.id = v.employer_id
	GROUP BY c.id, c.name
	ORDER BY c.id`

const allVacanciesQuery = vacancyRowsSelect + `
	ORDER BY v.id`

// Midpoints with a null bound stay null and AVG skips them.
const avgSalaryQuery = `SELECT AVG((v.salary_from + v.salary_to) / 2) FROM vacancies v`

// dialect holds the statements that differ between database engines:
// DDL column types and placeholder syntax.
type dialect struct {
	sqlDriver       string // name registered with database/sql
	createCompanies string
	createVacancies string
	insertCompany   string
	insertVacancy   string
	higherSalary    string
	keyword         string
	companyID       string
}

var postgresDialect = dialect{
	sqlDriver: "pgx",
	createCompanies: `CREATE TABLE IF NOT EXISTS companies (
		id   SERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL UNIQUE
	)`,
	createVacancies: `CREATE TABLE IF NOT EXISTS vacancies (
		id          SERIAL PRIMARY KEY,
		employer_id INTEGER REFERENCES companies(id),
		title       VARCHAR(255) NOT NULL,
		salary_from FLOAT DEFAULT NULL,
		salary_to   FLOAT DEFAULT NULL,
		url         TEXT NOT NULL
	)`,
	insertCompany: `INSERT INTO companies (name) VALUES ($1) RETURNING id`,
	insertVacancy: `INSERT INTO vacancies (employer_id, title, salary_from, salary_to, url)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`,
	higherSalary: vacancyRowsSelect + `
		WHERE (v.salary_from + v.salary_to) / 2 > $1
		ORDER BY v.id`,
	keyword: vacancyRowsSelect + `
		WHERE LOWER(v.title) LIKE LOWER($1)
		ORDER BY v.id`,
	companyID: `SELECT id FROM companies WHERE name = $1`,
}

var sqliteDialect = dialect{
	sqlDriver: "sqlite",
	createCompanies: `CREATE TABLE IF NOT EXISTS companies (
		id   INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE
	)`,
	createVacancies: `CREATE TABLE IF NOT EXISTS vacancies (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		employer_id INTEGER REFERENCES companies(id),
		title       TEXT NOT NULL,
		salary_from REAL DEFAULT NULL,
		salary_to   REAL DEFAULT NULL,
		url         TEXT NOT NULL
	)`,
	insertCompany: `INSERT INTO companies (name) VALUES (?) RETURNING id`,
	insertVacancy: `INSERT INTO vacancies (employer_id, title, salary_from, salary_to, url)
		VALUES (?, ?, ?, ?, ?) RETURNING id`,
	higherSalary: vacancyRowsSelect + `
		WHERE (v.salary_from + v.salary_to) / 2 > ?
		ORDER BY v.id`,
	keyword: vacancyRowsSelect + `
		WHERE unicode_lower(v.title) LIKE unicode_lower(?)
		ORDER BY v.id`,
	companyID: `SELECT id FROM companies WHERE name = ?`,
}

func dialectFor(driver string) (dialect, error) {
	switch driver {
	case DriverPostgres, "":
		return postgresDialect, nil
	case DriverSQLite:
		return sqliteDialect, nil
	default:
		return dialect{}, fmt.Errorf("unsupported database driver %q", driver)
	}
}
