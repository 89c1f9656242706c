package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"

	"github.com/grvbrk/vidshelf/internal/models"
)

var ErrVideoNotFound = errors.New("video not found")

type VideoStore interface {
	ListVideos(ctx context.Context) ([]models.VideoRecord, error)
	GetVideoByID(ctx context.Context, id int64) (*models.VideoRecord, error)
	CreateVideo(ctx context.Context, v models.NewVideo) (int64, error)
	DeleteVideo(ctx context.Context, id int64) error
	Ping(ctx context.Context) error
}

type SQLiteVideoStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLiteVideoStore(db *sql.DB) *SQLiteVideoStore {
	if db == nil {
		panic("db cannot be nil for SQLiteVideoStore")
	}
	return &SQLiteVideoStore{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// WithClock replaces the creation timestamp source.
func (s *SQLiteVideoStore) WithClock(now func() time.Time) *SQLiteVideoStore {
	s.now = now
	return s
}

// created_at is stored as fixed width UTC text so that ordering by the
// column matches insertion time.
const timestampLayout = "2006-01-02 15:04:05.000000000"

var timestampLayouts = []string{timestampLayout, "2006-01-02 15:04:05", time.RFC3339Nano}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.Errorf("unrecognized timestamp %q", s)
}

const videoColumns = `id, title, thumbnail, source_url, video_url, embed_html, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVideo(row rowScanner) (*models.VideoRecord, error) {
	var (
		v         models.VideoRecord
		thumbnail sql.NullString
		createdAt string
	)
	if err := row.Scan(&v.ID, &v.Title, &thumbnail, &v.SourceURL, &v.VideoURL, &v.EmbedHTML, &createdAt); err != nil {
		return nil, err
	}
	t, err := parseTimestamp(createdAt)
	if err != nil {
		return nil, err
	}
	v.Thumbnail = thumbnail.String
	v.CreatedAt = t
	return &v, nil
}

// ListVideos returns every saved video, newest first.
func (s *SQLiteVideoStore) ListVideos(ctx context.Context) ([]models.VideoRecord, error) {
	query := `
		SELECT ` + videoColumns + `
		FROM videos
		ORDER BY created_at DESC, id DESC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "failed to select videos")
	}
	defer rows.Close()

	videos := []models.VideoRecord{}
	for rows.Next() {
		v, err := scanVideo(rows)
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan video")
		}
		videos = append(videos, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate videos")
	}
	return videos, nil
}

func (s *SQLiteVideoStore) GetVideoByID(ctx context.Context, id int64) (*models.VideoRecord, error) {
	query := `
		SELECT ` + videoColumns + `
		FROM videos
		WHERE id = ?
	`

	v, err := scanVideo(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrVideoNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to select video %d", id)
	}
	return v, nil
}

// CreateVideo validates v and inserts it, returning the new id.
func (s *SQLiteVideoStore) CreateVideo(ctx context.Context, v models.NewVideo) (int64, error) {
	if err := v.Validate(); err != nil {
		return 0, err
	}

	query := `
		INSERT INTO videos (title, thumbnail, source_url, video_url, embed_html, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	res, err := s.db.ExecContext(ctx, query, v.Title, v.Thumbnail, v.SourceURL, v.VideoURL, v.EmbedHTML, formatTimestamp(s.now()))
	if err != nil {
		return 0, errors.Wrap(err, "failed to insert video")
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, errors.Wrap(err, "failed to read inserted video id")
	}
	return id, nil
}

func (s *SQLiteVideoStore) DeleteVideo(ctx context.Context, id int64) error {
	query := `
		DELETE FROM videos
		WHERE id = ?
	`

	res, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return errors.Wrapf(err, "failed to delete video %d", id)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "failed to read affected rows")
	}
	if affected == 0 {
		return ErrVideoNotFound
	}
	return nil
}

func (s *SQLiteVideoStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
