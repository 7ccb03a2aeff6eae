package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/tastebuds/internal/platform/storage/sqlitemigrate"
	menustorage "github.com/louisbranch/tastebuds/internal/services/menu/storage"
	"github.com/louisbranch/tastebuds/internal/services/menu/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// Store provides SQLite-backed persistence for menu data.
type Store struct {
	sqlDB *sql.DB
}

// Open opens and migrates a menu SQLite store.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &Store{sqlDB: sqlDB}
	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return store, nil
}

// Close releases the underlying SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// GetMenuBySlug loads the public menu graph for a slug.
func (s *Store) GetMenuBySlug(ctx context.Context, slug string) (menustorage.Menu, error) {
	if s == nil || s.sqlDB == nil {
		return menustorage.Menu{}, fmt.Errorf("storage is not configured")
	}
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return menustorage.Menu{}, fmt.Errorf("slug is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, slug, title, description, is_public
		 FROM menus
		 WHERE slug = ? AND is_public = 1`,
		slug,
	)
	return s.scanMenu(ctx, row)
}

// GetMenuByID loads a menu graph regardless of visibility.
func (s *Store) GetMenuByID(ctx context.Context, id string) (menustorage.Menu, error) {
	if s == nil || s.sqlDB == nil {
		return menustorage.Menu{}, fmt.Errorf("storage is not configured")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return menustorage.Menu{}, fmt.Errorf("menu id is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, slug, title, description, is_public
		 FROM menus
		 WHERE id = ?`,
		id,
	)
	return s.scanMenu(ctx, row)
}

func (s *Store) scanMenu(ctx context.Context, row *sql.Row) (menustorage.Menu, error) {
	var menu menustorage.Menu
	var isPublic int64
	if err := row.Scan(&menu.ID, &menu.Slug, &menu.Title, &menu.Description, &isPublic); err != nil {
		if err == sql.ErrNoRows {
			return menustorage.Menu{}, menustorage.ErrNotFound
		}
		return menustorage.Menu{}, fmt.Errorf("get menu: %w", err)
	}
	menu.IsPublic = isPublic != 0

	courses, err := s.loadCourses(ctx, menu.ID)
	if err != nil {
		return menustorage.Menu{}, err
	}
	menu.Courses = courses

	pairings, err := s.loadPairings(ctx, menu.ID)
	if err != nil {
		return menustorage.Menu{}, err
	}
	menu.Pairings = pairings

	return menu, nil
}

// loadCourses returns courses with their items in position order. Iteration
// order is what downstream aggregation relies on; position values are not
// assumed contiguous.
func (s *Store) loadCourses(ctx context.Context, menuID string) ([]menustorage.Course, error) {
	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, menu_id, position, title, description
		 FROM courses
		 WHERE menu_id = ?
		 ORDER BY position, id`,
		menuID,
	)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	courses := make([]menustorage.Course, 0)
	for rows.Next() {
		var course menustorage.Course
		if err := rows.Scan(&course.ID, &course.MenuID, &course.Position, &course.Title, &course.Description); err != nil {
			return nil, fmt.Errorf("scan course: %w", err)
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate courses: %w", err)
	}

	for idx := range courses {
		items, err := s.loadCourseItems(ctx, courses[idx].ID)
		if err != nil {
			return nil, err
		}
		courses[idx].Items = items
	}
	return courses, nil
}

func (s *Store) loadCourseItems(ctx context.Context, courseID string) ([]menustorage.CourseItem, error) {
	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT ci.id, ci.course_id, ci.position, ci.media_item_id, ci.notes,
		        m.id, m.title, m.subtitle, m.cover_url, m.release_date, m.canonical_url, m.media_type
		 FROM course_items ci
		 LEFT JOIN media_items m ON m.id = ci.media_item_id
		 WHERE ci.course_id = ?
		 ORDER BY ci.position, ci.id`,
		courseID,
	)
	if err != nil {
		return nil, fmt.Errorf("list course items: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	items := make([]menustorage.CourseItem, 0)
	for rows.Next() {
		var item menustorage.CourseItem
		var mediaID sql.NullString
		var mediaTitle sql.NullString
		var mediaSubtitle sql.NullString
		var mediaCover sql.NullString
		var mediaRelease sql.NullInt64
		var mediaCanonical sql.NullString
		var mediaType sql.NullString
		if err := rows.Scan(
			&item.ID,
			&item.CourseID,
			&item.Position,
			&item.MediaItemID,
			&item.Notes,
			&mediaID,
			&mediaTitle,
			&mediaSubtitle,
			&mediaCover,
			&mediaRelease,
			&mediaCanonical,
			&mediaType,
		); err != nil {
			return nil, fmt.Errorf("scan course item: %w", err)
		}
		if mediaID.Valid {
			item.Media = &menustorage.MediaItem{
				ID:           mediaID.String,
				Title:        mediaTitle.String,
				Subtitle:     mediaSubtitle.String,
				CoverURL:     mediaCover.String,
				ReleaseDate:  unixMillisToTime(mediaRelease.Int64),
				CanonicalURL: mediaCanonical.String,
				MediaType:    mediaType.String,
			}
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate course items: %w", err)
	}
	return items, nil
}

func (s *Store) loadPairings(ctx context.Context, menuID string) ([]menustorage.Pairing, error) {
	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, menu_id, first_item_id, second_item_id, relationship, note
		 FROM pairings
		 WHERE menu_id = ?
		 ORDER BY id`,
		menuID,
	)
	if err != nil {
		return nil, fmt.Errorf("list pairings: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	pairings := make([]menustorage.Pairing, 0)
	for rows.Next() {
		var pairing menustorage.Pairing
		if err := rows.Scan(
			&pairing.ID,
			&pairing.MenuID,
			&pairing.FirstItemID,
			&pairing.SecondItemID,
			&pairing.Relationship,
			&pairing.Note,
		); err != nil {
			return nil, fmt.Errorf("scan pairing: %w", err)
		}
		pairings = append(pairings, pairing)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pairings: %w", err)
	}
	return pairings, nil
}

// GetDraftShareToken loads a draft share token record.
func (s *Store) GetDraftShareToken(ctx context.Context, token string) (menustorage.DraftShareToken, error) {
	if s == nil || s.sqlDB == nil {
		return menustorage.DraftShareToken{}, fmt.Errorf("storage is not configured")
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return menustorage.DraftShareToken{}, fmt.Errorf("token is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT token, menu_id, expires_at
		 FROM draft_share_tokens
		 WHERE token = ?`,
		token,
	)

	var record menustorage.DraftShareToken
	var expiresAt int64
	if err := row.Scan(&record.Token, &record.MenuID, &expiresAt); err != nil {
		if err == sql.ErrNoRows {
			return menustorage.DraftShareToken{}, menustorage.ErrNotFound
		}
		return menustorage.DraftShareToken{}, fmt.Errorf("get draft share token: %w", err)
	}
	record.ExpiresAt = unixMillisToTime(expiresAt)
	return record, nil
}

// GetMenuLineage loads one hop of fork ancestry for a public menu.
func (s *Store) GetMenuLineage(ctx context.Context, slug string) (menustorage.MenuLineage, error) {
	if s == nil || s.sqlDB == nil {
		return menustorage.MenuLineage{}, fmt.Errorf("storage is not configured")
	}
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return menustorage.MenuLineage{}, fmt.Errorf("slug is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, source_menu_id, fork_note
		 FROM menus
		 WHERE slug = ? AND is_public = 1`,
		slug,
	)

	var menuID string
	var sourceMenuID string
	var forkNote string
	if err := row.Scan(&menuID, &sourceMenuID, &forkNote); err != nil {
		if err == sql.ErrNoRows {
			return menustorage.MenuLineage{}, menustorage.ErrNotFound
		}
		return menustorage.MenuLineage{}, fmt.Errorf("get menu lineage: %w", err)
	}

	var lineage menustorage.MenuLineage
	if sourceMenuID != "" {
		source, err := s.loadMenuRef(ctx, sourceMenuID)
		if err != nil {
			return menustorage.MenuLineage{}, err
		}
		if source != nil {
			lineage.Source = source
			lineage.SourceNote = forkNote
		}
	}

	forks, count, err := s.loadForks(ctx, menuID)
	if err != nil {
		return menustorage.MenuLineage{}, err
	}
	lineage.Forks = forks
	lineage.ForkCount = count
	return lineage, nil
}

// loadMenuRef returns a lineage summary for a menu id, or nil when the menu
// no longer exists.
func (s *Store) loadMenuRef(ctx context.Context, menuID string) (*menustorage.MenuRef, error) {
	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, slug, title, is_public FROM menus WHERE id = ?`,
		menuID,
	)

	var ref menustorage.MenuRef
	var isPublic int64
	if err := row.Scan(&ref.MenuID, &ref.Slug, &ref.Title, &isPublic); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get menu ref: %w", err)
	}
	ref.IsPublic = isPublic != 0
	return &ref, nil
}

func (s *Store) loadForks(ctx context.Context, menuID string) ([]menustorage.MenuRef, int, error) {
	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, slug, title, is_public
		 FROM menus
		 WHERE source_menu_id = ?
		 ORDER BY created_at, id`,
		menuID,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list forks: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	forks := make([]menustorage.MenuRef, 0)
	for rows.Next() {
		var ref menustorage.MenuRef
		var isPublic int64
		if err := rows.Scan(&ref.MenuID, &ref.Slug, &ref.Title, &isPublic); err != nil {
			return nil, 0, fmt.Errorf("scan fork: %w", err)
		}
		ref.IsPublic = isPublic != 0
		forks = append(forks, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate forks: %w", err)
	}
	return forks, len(forks), nil
}

// CreateMenu inserts a menu graph. It is used by seed tooling and tests; the
// resolution engine itself never writes.
func (s *Store) CreateMenu(ctx context.Context, menu menustorage.Menu) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	menu.ID = strings.TrimSpace(menu.ID)
	if menu.ID == "" {
		return fmt.Errorf("menu id is required")
	}
	menu.Slug = strings.TrimSpace(menu.Slug)
	if menu.Slug == "" {
		return fmt.Errorf("menu slug is required")
	}
	if strings.TrimSpace(menu.Title) == "" {
		return fmt.Errorf("menu title is required")
	}

	now := time.Now().UTC().UnixMilli()
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create menu: %w", err)
	}

	if _, err := tx.ExecContext(
		ctx,
		`INSERT INTO menus (id, slug, title, description, is_public, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		menu.ID,
		menu.Slug,
		menu.Title,
		menu.Description,
		boolToInt(menu.IsPublic),
		now,
		now,
	); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("insert menu: %w", err)
	}

	for _, course := range menu.Courses {
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO courses (id, menu_id, position, title, description)
			 VALUES (?, ?, ?, ?, ?)`,
			course.ID,
			menu.ID,
			course.Position,
			course.Title,
			course.Description,
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert course: %w", err)
		}
		for _, item := range course.Items {
			if _, err := tx.ExecContext(
				ctx,
				`INSERT INTO course_items (id, course_id, position, media_item_id, notes)
				 VALUES (?, ?, ?, ?, ?)`,
				item.ID,
				course.ID,
				item.Position,
				item.MediaItemID,
				item.Notes,
			); err != nil {
				_ = tx.Rollback()
				return fmt.Errorf("insert course item: %w", err)
			}
		}
	}

	for _, pairing := range menu.Pairings {
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO pairings (id, menu_id, first_item_id, second_item_id, relationship, note)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			pairing.ID,
			menu.ID,
			pairing.FirstItemID,
			pairing.SecondItemID,
			pairing.Relationship,
			pairing.Note,
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert pairing: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create menu: %w", err)
	}
	return nil
}

// CreateMediaItem inserts one media catalog record.
func (s *Store) CreateMediaItem(ctx context.Context, media menustorage.MediaItem) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	media.ID = strings.TrimSpace(media.ID)
	if media.ID == "" {
		return fmt.Errorf("media item id is required")
	}
	if strings.TrimSpace(media.Title) == "" {
		return fmt.Errorf("media item title is required")
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO media_items (id, title, subtitle, cover_url, release_date, canonical_url, media_type)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		media.ID,
		media.Title,
		media.Subtitle,
		media.CoverURL,
		timeToUnixMillis(media.ReleaseDate),
		media.CanonicalURL,
		media.MediaType,
	)
	if err != nil {
		return fmt.Errorf("insert media item: %w", err)
	}
	return nil
}

// CreateDraftShareToken inserts one draft share token.
func (s *Store) CreateDraftShareToken(ctx context.Context, record menustorage.DraftShareToken) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	record.Token = strings.TrimSpace(record.Token)
	if record.Token == "" {
		return fmt.Errorf("token is required")
	}
	record.MenuID = strings.TrimSpace(record.MenuID)
	if record.MenuID == "" {
		return fmt.Errorf("menu id is required")
	}
	if record.ExpiresAt.IsZero() {
		return fmt.Errorf("expiry is required")
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO draft_share_tokens (token, menu_id, expires_at) VALUES (?, ?, ?)`,
		record.Token,
		record.MenuID,
		timeToUnixMillis(record.ExpiresAt),
	)
	if err != nil {
		return fmt.Errorf("insert draft share token: %w", err)
	}
	return nil
}

// SetMenuSource records a fork relationship from menuID back to sourceMenuID.
func (s *Store) SetMenuSource(ctx context.Context, menuID, sourceMenuID, forkNote string) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	menuID = strings.TrimSpace(menuID)
	if menuID == "" {
		return fmt.Errorf("menu id is required")
	}
	sourceMenuID = strings.TrimSpace(sourceMenuID)
	if sourceMenuID == "" {
		return fmt.Errorf("source menu id is required")
	}

	result, err := s.sqlDB.ExecContext(
		ctx,
		`UPDATE menus SET source_menu_id = ?, fork_note = ? WHERE id = ?`,
		sourceMenuID,
		forkNote,
		menuID,
	)
	if err != nil {
		return fmt.Errorf("set menu source: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("set menu source rows: %w", err)
	}
	if affected == 0 {
		return menustorage.ErrNotFound
	}
	return nil
}

func boolToInt(value bool) int64 {
	if value {
		return 1
	}
	return 0
}

func timeToUnixMillis(value time.Time) int64 {
	if value.IsZero() {
		return 0
	}
	return value.UTC().UnixMilli()
}

func unixMillisToTime(value int64) time.Time {
	if value <= 0 {
		return time.Time{}
	}
	return time.UnixMilli(value).UTC()
}

var _ menustorage.MenuStore = (*Store)(nil)
