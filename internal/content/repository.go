// internal/content/repository.go
package content

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mpeltier/thumbfix/internal/database"
)

const metaThumbnailKey = "_thumbnail_id"

type Record struct {
	ID        int64
	Type      string
	ParentID  int64
	Title     string
	Slug      string
	Content   string
	MediaType string
	SourceURL string
	CreatedAt time.Time
}

type Repository struct {
	db *database.DB
}

func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Add(rec Record) (*Record, error) {
	if rec.Type == "" {
		rec.Type = "post"
	}
	if rec.Slug == "" {
		rec.Slug = Slugify(rec.Title)
	}

	result, err := r.db.Exec(
		`INSERT INTO records (record_type, parent_id, title, slug, content, media_type, source_url) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.Type, rec.ParentID, rec.Title, rec.Slug, rec.Content, rec.MediaType, rec.SourceURL,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert record: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	rec.ID = id
	return &rec, nil
}

func (r *Repository) Get(id int64) (*Record, error) {
	var rec Record
	err := r.db.QueryRow(`
		SELECT id, record_type, parent_id, title, slug, COALESCE(content, ''), media_type, source_url, created_at
		FROM records
		WHERE id = ?
	`, id).Scan(&rec.ID, &rec.Type, &rec.ParentID, &rec.Title, &rec.Slug, &rec.Content,
		&rec.MediaType, &rec.SourceURL, &rec.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *Repository) Exists(sourceURL string) (bool, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM records WHERE source_url = ?`, sourceURL).Scan(&count)
	return count > 0, err
}

// RecordsLackingMeta returns ids of records of the given type that carry
// none of the given meta keys, plus the total match count before the
// limit is applied. An empty recordType matches all types.
func (r *Repository) RecordsLackingMeta(recordType string, absent []string, limit int) ([]int64, int, error) {
	where := "1=1"
	var args []any
	if recordType != "" {
		where = "record_type = ?"
		args = append(args, recordType)
	}
	for _, key := range absent {
		where += " AND NOT EXISTS (SELECT 1 FROM record_meta m WHERE m.record_id = records.id AND m.meta_key = ?)"
		args = append(args, key)
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM records WHERE %s`, where)
	if err := r.db.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count records: %w", err)
	}

	query := fmt.Sprintf(`SELECT id FROM records WHERE %s ORDER BY id ASC`, where)
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, 0, err
		}
		ids = append(ids, id)
	}
	return ids, total, rows.Err()
}

// RecordsWithMeta returns ids of records of the given type carrying at
// least one of the given meta keys. An empty recordType matches all types.
func (r *Repository) RecordsWithMeta(recordType string, keys []string) ([]int64, error) {
	if len(keys) == 0 {
		return nil, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(keys)), ",")
	query := fmt.Sprintf(`
		SELECT DISTINCT r.id
		FROM records r
		JOIN record_meta m ON m.record_id = r.id
		WHERE m.meta_key IN (%s)
	`, placeholders)

	args := make([]any, 0, len(keys)+1)
	for _, key := range keys {
		args = append(args, key)
	}
	if recordType != "" {
		query += " AND r.record_type = ?"
		args = append(args, recordType)
	}
	query += " ORDER BY r.id ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// AttachedImages returns ids of image attachments parented to the given
// record, oldest first.
func (r *Repository) AttachedImages(parentID int64, limit int) ([]int64, error) {
	query := `
		SELECT id FROM records
		WHERE record_type = 'attachment' AND parent_id = ? AND media_type LIKE 'image/%'
		ORDER BY id ASC
	`
	args := []any{parentID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *Repository) Attachments(parentID int64) ([]Record, error) {
	rows, err := r.db.Query(`
		SELECT id, record_type, parent_id, title, slug, COALESCE(content, ''), media_type, source_url, created_at
		FROM records
		WHERE record_type = 'attachment' AND parent_id = ?
		ORDER BY id ASC
	`, parentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.Type, &rec.ParentID, &rec.Title, &rec.Slug, &rec.Content,
			&rec.MediaType, &rec.SourceURL, &rec.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *Repository) Meta(recordID int64) (map[string]string, error) {
	rows, err := r.db.Query(`SELECT meta_key, meta_value FROM record_meta WHERE record_id = ? ORDER BY meta_key`, recordID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	meta := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		meta[key] = value
	}
	return meta, rows.Err()
}

// SetMeta stores a key/value pair for a record, replacing any existing
// value. The mysql driver reports zero affected rows for same-value
// updates, so the upsert goes through an existence check.
func (r *Repository) SetMeta(recordID int64, key, value string) error {
	var count int
	err := r.db.QueryRow(
		`SELECT COUNT(*) FROM record_meta WHERE record_id = ? AND meta_key = ?`,
		recordID, key,
	).Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to check meta: %w", err)
	}

	if count > 0 {
		_, err = r.db.Exec(
			`UPDATE record_meta SET meta_value = ? WHERE record_id = ? AND meta_key = ?`,
			value, recordID, key,
		)
	} else {
		_, err = r.db.Exec(
			`INSERT INTO record_meta (record_id, meta_key, meta_value) VALUES (?, ?, ?)`,
			recordID, key, value,
		)
	}
	if err != nil {
		return fmt.Errorf("failed to set meta: %w", err)
	}
	return nil
}

func (r *Repository) DeleteMeta(recordID int64, key string) error {
	_, err := r.db.Exec(`DELETE FROM record_meta WHERE record_id = ? AND meta_key = ?`, recordID, key)
	if err != nil {
		return fmt.Errorf("failed to delete meta: %w", err)
	}
	return nil
}

// SetFeaturedImage points a record's featured image at the given
// attachment. It returns the attachment id, or 0 when the target is not
// an existing image attachment.
func (r *Repository) SetFeaturedImage(recordID, imageID int64) (int64, error) {
	var count int
	err := r.db.QueryRow(
		`SELECT COUNT(*) FROM records WHERE id = ? AND record_type = 'attachment' AND media_type LIKE 'image/%'`,
		imageID,
	).Scan(&count)
	if err != nil {
		return 0, err
	}
	if count == 0 {
		return 0, nil
	}

	if err := r.SetMeta(recordID, metaThumbnailKey, strconv.FormatInt(imageID, 10)); err != nil {
		return 0, err
	}
	return imageID, nil
}
