package postgres

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"job-tracker-api/internal/models"
	"job-tracker-api/internal/storage"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is satisfied by *pgxpool.Pool and pgx.Tx.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

//go:embed schema.sql
var schemaSQL string

// Migrate creates the tables and indexes if they do not exist yet.
func Migrate(ctx context.Context, db Querier) error {
	if _, err := db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

const applicationsTable = "applications"

// applicationColumns must list every db-tagged field of models.Application.
var applicationColumns = []string{
	"id", "user_id",
	"full_name", "email", "phone", "address", "linkedin", "github", "portfolio",
	"highest_qualification", "university_name", "graduation_year", "gpa",
	"work_experience", "skills", "certifications",
	"resume_url", "resume_file_name", "cover_letter",
	"desired_role", "expected_salary", "location_preferences",
	"job_title", "company_name", "job_location", "job_posting_link", "job_type",
	"source", "status", "admin_notes",
	"submitted_at", "updated_at",
}

// immutableColumns are never written by an update.
var immutableColumns = map[string]bool{
	"id":           true,
	"user_id":      true,
	"submitted_at": true,
}

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.Postgres)
}

// applicationValues returns the column values of app in applicationColumns order.
func applicationValues(app *models.Application) ([]any, error) {
	entries := app.WorkExperience
	if entries == nil {
		entries = []models.WorkExperience{}
	}
	workExperience, err := json.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("failed to encode work experience: %w", err)
	}
	return []any{
		app.ID, app.UserID,
		app.FullName, app.Email, app.Phone, app.Address, app.LinkedIn, app.GitHub, app.Portfolio,
		string(app.HighestQualification), app.UniversityName, app.GraduationYear, app.GPA,
		workExperience, app.Skills, app.Certifications,
		app.ResumeURL, app.ResumeFileName, app.CoverLetter,
		app.DesiredRole, app.ExpectedSalary, app.LocationPreferences,
		app.JobTitle, app.CompanyName, app.JobLocation, app.JobPostingLink, app.JobType,
		string(app.Source), app.Status, app.AdminNotes,
		app.SubmittedAt, app.UpdatedAt,
	}, nil
}

// buildApplicationListQuery translates the filter into a SELECT ordered by
// submission time, newest first.
func buildApplicationListQuery(filter storage.ApplicationFilter) (string, []any) {
	selector := builder().Select(applicationColumns...).From(entsql.Table(applicationsTable))

	if filter.OwnerID != nil {
		selector.Where(entsql.EQ("user_id", *filter.OwnerID))
	}
	if filter.Status != nil {
		selector.Where(entsql.EQ("status", string(*filter.Status)))
	}
	if filter.DesiredRole != "" {
		selector.Where(entsql.ContainsFold("desired_role", filter.DesiredRole))
	}
	if filter.Search != "" {
		selector.Where(entsql.Or(
			entsql.ContainsFold("full_name", filter.Search),
			entsql.ContainsFold("email", filter.Search),
		))
	}
	if filter.Skill != "" {
		selector.Where(skillMember(filter.Skill))
	}

	selector.OrderBy(entsql.Desc("submitted_at"))
	return selector.Query()
}

// skillMember matches rows whose skills array contains skill.
func skillMember(skill string) *entsql.Predicate {
	return entsql.P(func(b *entsql.Builder) {
		b.Arg(skill).WriteString(" = ANY(").Ident("skills").WriteString(")")
	})
}

func buildApplicationInsert(app *models.Application) (string, []any, error) {
	values, err := applicationValues(app)
	if err != nil {
		return "", nil, err
	}
	query, args := builder().Insert(applicationsTable).
		Columns(applicationColumns...).
		Values(values...).
		Returning(applicationColumns...).
		Query()
	return query, args, nil
}

func buildApplicationUpdate(app *models.Application) (string, []any, error) {
	values, err := applicationValues(app)
	if err != nil {
		return "", nil, err
	}
	update := builder().Update(applicationsTable)
	for i, column := range applicationColumns {
		if immutableColumns[column] {
			continue
		}
		update.Set(column, values[i])
	}
	query, args := update.
		Where(entsql.EQ("id", app.ID)).
		Returning(applicationColumns...).
		Query()
	return query, args, nil
}
