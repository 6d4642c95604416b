package repository

import (
	"context"

	"github.com/lordbinary11/e-career-mobile/internal/models"
)

type NotificationRepository struct {
	db DBTX
}

func NewNotificationRepository(db DBTX) *NotificationRepository {
	return &NotificationRepository{db: db}
}

type CreateNotificationInput struct {
	UserID    int64
	SenderID  int64
	Type      string
	Message   string
	RelatedID *int64
}

func (r *NotificationRepository) Create(ctx context.Context, input CreateNotificationInput) (*models.Notification, error) {
	query := `
		INSERT INTO notifications (user_id, sender_id, type, message, related_id, is_read)
		VALUES ($1, $2, $3, $4, $5, FALSE)
		RETURNING id, user_id, sender_id, type, message, related_id, is_read, created_at
	`
	var notification models.Notification
	err := r.db.QueryRow(ctx, query,
		input.UserID,
		input.SenderID,
		input.Type,
		input.Message,
		input.RelatedID,
	).Scan(
		&notification.ID,
		&notification.UserID,
		&notification.SenderID,
		&notification.Type,
		&notification.Message,
		&notification.RelatedID,
		&notification.IsRead,
		&notification.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &notification, nil
}

func (r *NotificationRepository) ListForUser(
	ctx context.Context,
	userID int64,
	limit int,
	offset int,
) ([]models.Notification, error) {
	query := `
		SELECT id, user_id, sender_id, type, message, related_id, is_read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notifications := make([]models.Notification, 0)
	for rows.Next() {
		var notification models.Notification
		if err := rows.Scan(
			&notification.ID,
			&notification.UserID,
			&notification.SenderID,
			&notification.Type,
			&notification.Message,
			&notification.RelatedID,
			&notification.IsRead,
			&notification.CreatedAt,
		); err != nil {
			return nil, err
		}
		notifications = append(notifications, notification)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *NotificationRepository) CountForUser(ctx context.Context, userID int64) (int, error) {
	var total int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id = $1`, userID,
	).Scan(&total)
	return total, err
}

// MarkRead only touches rows owned by the reader, so marking a foreign
// notification reports no rows.
func (r *NotificationRepository) MarkRead(ctx context.Context, notificationID int64, userID int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE notifications
		SET is_read = TRUE
		WHERE id = $1 AND user_id = $2
	`, notificationID, userID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
