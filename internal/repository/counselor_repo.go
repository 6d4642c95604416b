package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/lordbinary11/e-career-mobile/internal/models"
)

type CounselorRepository struct {
	db DBTX
}

func NewCounselorRepository(db DBTX) *CounselorRepository {
	return &CounselorRepository{db: db}
}

type CreateCounselorInput struct {
	Email          string
	PasswordHash   string
	Name           string
	Phone          *string
	Specialization string
	Experience     int
	Bio            *string
}

const counselorColumns = `id, email, password_hash, name, phone, specialization, experience, bio, rating, created_at, updated_at`

func (r *CounselorRepository) scanCounselor(row pgx.Row) (*models.Counselor, error) {
	var counselor models.Counselor
	err := row.Scan(
		&counselor.ID,
		&counselor.Email,
		&counselor.PasswordHash,
		&counselor.Name,
		&counselor.Phone,
		&counselor.Specialization,
		&counselor.Experience,
		&counselor.Bio,
		&counselor.Rating,
		&counselor.CreatedAt,
		&counselor.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &counselor, nil
}

func (r *CounselorRepository) Create(ctx context.Context, input CreateCounselorInput) (*models.Counselor, error) {
	query := fmt.Sprintf(`
		INSERT INTO counselors (email, password_hash, name, phone, specialization, experience, bio)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING %s
	`, counselorColumns)
	return r.scanCounselor(r.db.QueryRow(ctx, query,
		input.Email,
		input.PasswordHash,
		input.Name,
		input.Phone,
		input.Specialization,
		input.Experience,
		input.Bio,
	))
}

func (r *CounselorRepository) GetByEmail(ctx context.Context, email string) (*models.Counselor, error) {
	query := fmt.Sprintf(`SELECT %s FROM counselors WHERE email = $1`, counselorColumns)
	return r.scanCounselor(r.db.QueryRow(ctx, query, email))
}

func (r *CounselorRepository) GetByID(ctx context.Context, id int64) (*models.Counselor, error) {
	query := fmt.Sprintf(`SELECT %s FROM counselors WHERE id = $1`, counselorColumns)
	return r.scanCounselor(r.db.QueryRow(ctx, query, id))
}

type CounselorListFilter struct {
	Search    string
	Specialty string
}

func (r *CounselorRepository) List(ctx context.Context, filter CounselorListFilter) ([]models.Counselor, error) {
	args := []any{}
	whereParts := []string{}

	if search := strings.TrimSpace(filter.Search); search != "" {
		args = append(args, "%"+search+"%")
		whereParts = append(whereParts, fmt.Sprintf(
			"(name ILIKE $%d OR specialization ILIKE $%d)", len(args), len(args),
		))
	}
	if specialty := strings.TrimSpace(filter.Specialty); specialty != "" && !strings.EqualFold(specialty, "All") {
		args = append(args, specialty)
		whereParts = append(whereParts, fmt.Sprintf("specialization = $%d", len(args)))
	}

	where := ""
	if len(whereParts) > 0 {
		where = "WHERE " + strings.Join(whereParts, " AND ")
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM counselors
		%s
		ORDER BY name ASC, id ASC
	`, counselorColumns, where)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counselors := make([]models.Counselor, 0)
	for rows.Next() {
		counselor, err := r.scanCounselor(rows)
		if err != nil {
			return nil, err
		}
		counselors = append(counselors, *counselor)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return counselors, nil
}

type UpdateCounselorProfileInput struct {
	Name           *string
	Phone          *string
	Specialization *string
	Experience     *int
	Bio            *string
}

func (r *CounselorRepository) UpdateProfile(
	ctx context.Context,
	counselorID int64,
	input UpdateCounselorProfileInput,
) (*models.Counselor, error) {
	query := fmt.Sprintf(`
		UPDATE counselors
		SET name = COALESCE($1, name),
			phone = COALESCE($2, phone),
			specialization = COALESCE($3, specialization),
			experience = COALESCE($4, experience),
			bio = COALESCE($5, bio),
			updated_at = NOW()
		WHERE id = $6
		RETURNING %s
	`, counselorColumns)
	return r.scanCounselor(r.db.QueryRow(ctx, query,
		input.Name,
		input.Phone,
		input.Specialization,
		input.Experience,
		input.Bio,
		counselorID,
	))
}

func (r *CounselorRepository) ListAvailability(ctx context.Context, counselorID int64) ([]models.AvailabilitySlot, error) {
	query := `
		SELECT id, counselor_id, day, start_time, end_time, position
		FROM counselor_availability
		WHERE counselor_id = $1
		ORDER BY position ASC, id ASC
	`
	rows, err := r.db.Query(ctx, query, counselorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	slots := make([]models.AvailabilitySlot, 0)
	for rows.Next() {
		var slot models.AvailabilitySlot
		if err := rows.Scan(
			&slot.ID,
			&slot.CounselorID,
			&slot.Day,
			&slot.StartTime,
			&slot.EndTime,
			&slot.Position,
		); err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return slots, nil
}

type AvailabilitySlotInput struct {
	Day       string
	StartTime string
	EndTime   string
}

// ReplaceAvailability swaps the counselor's slot list wholesale. Slots are
// stored in submission order with no overlap or range validation.
func (r *CounselorRepository) ReplaceAvailability(
	ctx context.Context,
	counselorID int64,
	slots []AvailabilitySlotInput,
) error {
	if _, err := r.db.Exec(ctx,
		`DELETE FROM counselor_availability WHERE counselor_id = $1`, counselorID,
	); err != nil {
		return err
	}
	for i, slot := range slots {
		if _, err := r.db.Exec(ctx, `
			INSERT INTO counselor_availability (counselor_id, day, start_time, end_time, position)
			VALUES ($1, $2, $3, $4, $5)
		`, counselorID, slot.Day, slot.StartTime, slot.EndTime, i); err != nil {
			return err
		}
	}
	return nil
}
