package app

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/yuyingcwynn/ThoughtLeaderAI-sub000/app/models"

	"github.com/rs/zerolog/log"
)

// PostgresStorage persists the ledger in Postgres via lib/pq. Balance columns
// are only ever touched with relative-delta UPDATEs so concurrent purchases
// cannot lose writes.
type PostgresStorage struct {
	db *sql.DB
}

func NewPostgresStorage(db *sql.DB) *PostgresStorage {
	return &PostgresStorage{db: db}
}

func (p *PostgresStorage) CreateConsultation(ctx context.Context, c *models.Consultation) error {
	const q = `
		INSERT INTO consultations (
			user_id, name, email, company, session_type,
			package_hours, package_type, amount, status, notes
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at;
	`
	c.Status = models.ConsultationPending
	c.StripePaymentIntentID = ""
	return p.db.QueryRowContext(ctx, q,
		nullIfEmpty(c.UserID),
		c.Name,
		c.Email,
		nullIfEmpty(c.Company),
		c.SessionType,
		c.PackageHours,
		c.PackageType,
		c.Amount,
		c.Status,
		nullIfEmpty(c.Notes),
	).Scan(&c.ID, &c.CreatedAt)
}

func (p *PostgresStorage) GetConsultation(ctx context.Context, id string) (models.Consultation, error) {
	const q = `
		SELECT id, user_id, name, email, company, session_type,
		       package_hours, package_type, amount, stripe_payment_intent_id,
		       status, notes, created_at
		FROM consultations
		WHERE id = $1;
	`
	var (
		c               models.Consultation
		userID, company sql.NullString
		intentID, notes sql.NullString
	)
	err := p.db.QueryRowContext(ctx, q, id).Scan(
		&c.ID, &userID, &c.Name, &c.Email, &company, &c.SessionType,
		&c.PackageHours, &c.PackageType, &c.Amount, &intentID,
		&c.Status, &notes, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Consultation{}, ErrNotFound
		}
		return models.Consultation{}, err
	}
	c.UserID = userID.String
	c.Company = company.String
	c.StripePaymentIntentID = intentID.String
	c.Notes = notes.String
	return c, nil
}

func (p *PostgresStorage) AttachPaymentIntent(ctx context.Context, id, intentID string) error {
	const q = `
		UPDATE consultations
		SET stripe_payment_intent_id = $1
		WHERE id = $2;
	`
	res, err := p.db.ExecContext(ctx, q, intentID, id)
	if err != nil {
		return err
	}
	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		log.Printf("AttachPaymentIntent: no consultation row for id=%s", id)
	}
	return nil
}

func (p *PostgresStorage) SetConsultationStatus(ctx context.Context, id string, status models.ConsultationStatus) error {
	tx, err := p.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var current models.ConsultationStatus
	err = tx.QueryRowContext(ctx, `
		SELECT status
		FROM consultations
		WHERE id = $1
		FOR UPDATE;
	`, id).Scan(&current)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	if current == status {
		// Redelivered webhook or repeated operator action.
		return nil
	}
	if !models.CanTransition(current, status) {
		return transitionError{From: current, To: status}
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE consultations
		SET status = $1
		WHERE id = $2;
	`, status, id); err != nil {
		return err
	}

	return tx.Commit()
}

func (p *PostgresStorage) MarkPaid(ctx context.Context, id string) (bool, error) {
	tx, err := p.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	var (
		status models.ConsultationStatus
		userID sql.NullString
		hours  float64
	)
	err = tx.QueryRowContext(ctx, `
		SELECT status, user_id, package_hours
		FROM consultations
		WHERE id = $1
		FOR UPDATE;
	`, id).Scan(&status, &userID, &hours)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, ErrNotFound
		}
		return false, err
	}

	switch status {
	case models.ConsultationPaid:
		// Redelivered webhook; already applied.
		return false, nil
	case models.ConsultationPending:
	default:
		return false, transitionError{From: status, To: models.ConsultationPaid}
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE consultations
		SET status = $1
		WHERE id = $2;
	`, models.ConsultationPaid, id); err != nil {
		return false, err
	}

	if userID.Valid {
		if _, err := tx.ExecContext(ctx, `
			UPDATE users
			SET total_hours_balance = total_hours_balance + $1
			WHERE id = $2;
		`, hours, userID.String); err != nil {
			return false, err
		}
	}

	return true, tx.Commit()
}

func (p *PostgresStorage) UpsertUserByEmail(ctx context.Context, email, username string) (models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	const q = `
		INSERT INTO users (email, username, total_hours_balance, used_hours)
		VALUES ($1, $2, 0, 0)
		ON CONFLICT (email) DO NOTHING;
	`
	if _, err := p.db.ExecContext(ctx, q, email, nullIfEmpty(username)); err != nil {
		return models.User{}, err
	}

	return p.getUserBy(ctx, "email", email)
}

func (p *PostgresStorage) GetUser(ctx context.Context, id string) (models.User, error) {
	return p.getUserBy(ctx, "id", id)
}

func (p *PostgresStorage) getUserBy(ctx context.Context, column, value string) (models.User, error) {
	q := `
		SELECT id, email, username, total_hours_balance, used_hours, created_at
		FROM users
		WHERE ` + column + ` = $1;
	`
	var (
		u        models.User
		username sql.NullString
	)
	err := p.db.QueryRowContext(ctx, q, value).Scan(
		&u.ID, &u.Email, &username, &u.TotalHoursBalance, &u.UsedHours, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}
	u.Username = username.String
	return u, nil
}

func (p *PostgresStorage) AddHours(ctx context.Context, userID string, hours float64) error {
	const q = `
		UPDATE users
		SET total_hours_balance = total_hours_balance + $1
		WHERE id = $2;
	`
	res, err := p.db.ExecContext(ctx, q, hours, userID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (p *PostgresStorage) DeductHours(ctx context.Context, userID string, hours float64) error {
	res, err := p.db.ExecContext(ctx, deductHoursQuery, hours, userID)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		if _, err := p.GetUser(ctx, userID); err != nil {
			return err
		}
		return ErrInsufficientHours
	}
	return nil
}

// The guard lives in the UPDATE predicate so the check and the write are one
// atomic statement.
const deductHoursQuery = `
	UPDATE users
	SET used_hours = used_hours + $1
	WHERE id = $2
	  AND used_hours + $1 <= total_hours_balance;
`

func (p *PostgresStorage) RecordSession(ctx context.Context, s *models.UserSession) error {
	tx, err := p.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var status models.ConsultationStatus
	err = tx.QueryRowContext(ctx, `
		SELECT status
		FROM consultations
		WHERE id = $1
		FOR UPDATE;
	`, s.ConsultationID).Scan(&status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if status != models.ConsultationPaid {
		return ErrConsultationNotPaid
	}

	res, err := tx.ExecContext(ctx, deductHoursQuery, s.HoursUsed, s.UserID)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		var exists bool
		if err := tx.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM users WHERE id = $1);`, s.UserID,
		).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return ErrNotFound
		}
		return ErrInsufficientHours
	}

	s.Status = models.SessionScheduled
	err = tx.QueryRowContext(ctx, `
		INSERT INTO user_sessions (
			user_id, consultation_id, hours_used, session_date,
			calendar_event_id, status
		)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at;
	`,
		s.UserID,
		s.ConsultationID,
		s.HoursUsed,
		s.SessionDate,
		nullIfEmpty(s.CalendarEventID),
		s.Status,
	).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (p *PostgresStorage) SetSessionStatus(ctx context.Context, id string, status models.SessionStatus) error {
	const q = `
		UPDATE user_sessions
		SET status = $1
		WHERE id = $2;
	`
	res, err := p.db.ExecContext(ctx, q, status, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (p *PostgresStorage) ListSessions(ctx context.Context, userID string) ([]models.UserSession, error) {
	const q = `
		SELECT id, user_id, consultation_id, hours_used, session_date,
		       calendar_event_id, status, created_at
		FROM user_sessions
		WHERE user_id = $1
		ORDER BY session_date ASC;
	`
	rows, err := p.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.UserSession{}
	for rows.Next() {
		var (
			s       models.UserSession
			eventID sql.NullString
		)
		if err := rows.Scan(
			&s.ID, &s.UserID, &s.ConsultationID, &s.HoursUsed, &s.SessionDate,
			&eventID, &s.Status, &s.CreatedAt,
		); err != nil {
			return nil, err
		}
		s.CalendarEventID = eventID.String
		out = append(out, s)
	}
	return out, rows.Err()
}

func (p *PostgresStorage) CreateInquiry(ctx context.Context, in *models.ContactInquiry) error {
	const q = `
		INSERT INTO contact_inquiries (
			first_name, last_name, email, company, service_interest, message, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at;
	`
	in.Status = models.InquiryNew
	return p.db.QueryRowContext(ctx, q,
		in.FirstName,
		in.LastName,
		in.Email,
		nullIfEmpty(in.Company),
		in.ServiceInterest,
		in.Message,
		in.Status,
	).Scan(&in.ID, &in.CreatedAt)
}

func (p *PostgresStorage) ListInquiries(ctx context.Context) ([]models.ContactInquiry, error) {
	const q = `
		SELECT id, first_name, last_name, email, company, service_interest,
		       message, status, created_at
		FROM contact_inquiries
		ORDER BY created_at DESC;
	`
	rows, err := p.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.ContactInquiry{}
	for rows.Next() {
		var (
			in      models.ContactInquiry
			company sql.NullString
		)
		if err := rows.Scan(
			&in.ID, &in.FirstName, &in.LastName, &in.Email, &company,
			&in.ServiceInterest, &in.Message, &in.Status, &in.CreatedAt,
		); err != nil {
			return nil, err
		}
		in.Company = company.String
		out = append(out, in)
	}
	return out, rows.Err()
}

func (p *PostgresStorage) SetInquiryStatus(ctx context.Context, id string, status models.InquiryStatus) error {
	const q = `
		UPDATE contact_inquiries
		SET status = $1
		WHERE id = $2;
	`
	res, err := p.db.ExecContext(ctx, q, status, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func requireRow(res sql.Result) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func nullIfEmpty(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
