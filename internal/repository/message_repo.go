package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/lordbinary11/e-career-mobile/internal/models"
)

type MessageRepository struct {
	db DBTX
}

func NewMessageRepository(db DBTX) *MessageRepository {
	return &MessageRepository{db: db}
}

const messageColumns = `id, user_id, counselor_id, message, reply, status, created_at, replied_at`

func scanMessage(row pgx.Row) (*models.Message, error) {
	var message models.Message
	err := row.Scan(
		&message.ID,
		&message.UserID,
		&message.CounselorID,
		&message.Message,
		&message.Reply,
		&message.Status,
		&message.CreatedAt,
		&message.RepliedAt,
	)
	if err != nil {
		return nil, err
	}
	return &message, nil
}

func (r *MessageRepository) Create(
	ctx context.Context,
	userID int64,
	counselorID int64,
	text string,
) (*models.Message, error) {
	query := `
		INSERT INTO messages (user_id, counselor_id, message, status)
		VALUES ($1, $2, $3, 'sent')
		RETURNING ` + messageColumns
	return scanMessage(r.db.QueryRow(ctx, query, userID, counselorID, text))
}

func (r *MessageRepository) GetLatestForPair(
	ctx context.Context,
	userID int64,
	counselorID int64,
) (*models.Message, error) {
	query := `
		SELECT ` + messageColumns + `
		FROM messages
		WHERE user_id = $1 AND counselor_id = $2
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`
	return scanMessage(r.db.QueryRow(ctx, query, userID, counselorID))
}

// SetReply overwrites any previous reply on the row. The schema stores the
// student message and the counselor reply in the same row, so a second
// reply before a new student message replaces the first.
func (r *MessageRepository) SetReply(ctx context.Context, messageID int64, reply string) (*models.Message, error) {
	query := `
		UPDATE messages
		SET reply = $2, status = 'replied', replied_at = NOW()
		WHERE id = $1
		RETURNING ` + messageColumns
	return scanMessage(r.db.QueryRow(ctx, query, messageID, reply))
}

func (r *MessageRepository) ListForPair(
	ctx context.Context,
	userID int64,
	counselorID int64,
) ([]models.Message, error) {
	query := `
		SELECT ` + messageColumns + `
		FROM messages
		WHERE user_id = $1 AND counselor_id = $2
		ORDER BY created_at ASC, id ASC
	`
	rows, err := r.db.Query(ctx, query, userID, counselorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := make([]models.Message, 0)
	for rows.Next() {
		message, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, *message)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return messages, nil
}
