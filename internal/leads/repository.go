package leads

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/lib/pq"

	"adastra/internal/database"
	"adastra/internal/domain"
)

// ErrDuplicate is returned when a record violates a unique constraint, e.g.
// an email that is already subscribed to the newsletter.
var ErrDuplicate = errors.New("duplicate record")

// Repository persists the website's lead-capture forms.
type Repository interface {
	SaveNewsletter(ctx context.Context, n domain.NewsletterSubscription) error
	SaveContact(ctx context.Context, c domain.ContactSubmission) error
	SaveCV(ctx context.Context, c domain.CVSubmission) error
	SaveConsultation(ctx context.Context, c domain.ConsultationRequest) error
}

// SQLRepository is a Repository backed by Postgres or SQLite.
type SQLRepository struct {
	db *database.DB
}

// NewSQLRepository creates a repository on an open database.
func NewSQLRepository(db *database.DB) *SQLRepository {
	return &SQLRepository{db: db}
}

func (r *SQLRepository) SaveNewsletter(ctx context.Context, n domain.NewsletterSubscription) error {
	if err := r.insert(ctx, "newsletter_subscriptions",
		[]string{"email", "source"},
		n.Email, n.Source,
	); err != nil {
		return err
	}
	log.Printf("LEADS: newsletter subscription saved for %s (source=%s)", n.Email, n.Source)
	return nil
}

func (r *SQLRepository) SaveContact(ctx context.Context, c domain.ContactSubmission) error {
	if err := r.insert(ctx, "contact_submissions",
		[]string{"full_name", "email", "company", "phone", "inquiry_type", "message"},
		c.FullName, c.Email, nullable(c.Company), nullable(c.Phone), nullable(c.InquiryType), nullable(c.Message),
	); err != nil {
		return err
	}
	log.Printf("LEADS: contact submission saved for %s (inquiry=%s)", c.Email, c.InquiryType)
	return nil
}

func (r *SQLRepository) SaveCV(ctx context.Context, c domain.CVSubmission) error {
	if err := r.insert(ctx, "cv_submissions",
		[]string{"full_name", "email", "phone", "linkedin_url", "job_role", "experience_years", "preferred_industry", "message"},
		c.FullName, c.Email, nullable(c.Phone), nullable(c.LinkedInURL), nullable(c.JobRole),
		nullable(c.ExperienceYears), nullable(c.PreferredIndustry), nullable(c.Message),
	); err != nil {
		return err
	}
	log.Printf("LEADS: CV submission saved for %s (role=%s)", c.Email, c.JobRole)
	return nil
}

func (r *SQLRepository) SaveConsultation(ctx context.Context, c domain.ConsultationRequest) error {
	if err := r.insert(ctx, "consultation_requests",
		[]string{"full_name", "email", "company", "phone", "service_interest", "preferred_date", "message"},
		c.FullName, c.Email, nullable(c.Company), nullable(c.Phone), nullable(c.ServiceInterest),
		nullable(c.PreferredDate), nullable(c.Message),
	); err != nil {
		return err
	}
	log.Printf("LEADS: consultation request saved for %s (service=%s)", c.Email, c.ServiceInterest)
	return nil
}

func (r *SQLRepository) insert(ctx context.Context, table string, columns []string, args ...any) error {
	marks := make([]string, len(columns))
	for i := range columns {
		marks[i] = r.db.Dialect.Placeholder(i + 1)
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(columns, ", "), strings.Join(marks, ", "))

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert into %s: %w", table, ErrDuplicate)
		}
		return fmt.Errorf("failed to insert into %s: %w", table, err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint failed") || strings.Contains(msg, "duplicate")
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
