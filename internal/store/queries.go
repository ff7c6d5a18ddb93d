package store

import (
	"fmt"
	"time"
)

// InsertRequest records a snapshot request and its path set, returning the
// new request ID.
func (s *Store) InsertRequest(req *Request, paths []string) (int64, error) {
	query := `
		INSERT INTO requests (created_at, target, suffix, utc, tier, status, path_count)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	res, err := s.db.Exec(query,
		req.CreatedAt.Format(time.RFC3339),
		req.Target,
		req.Suffix,
		req.UTC,
		req.Tier,
		req.Status,
		len(paths),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert request: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get request ID: %w", err)
	}

	for i, path := range paths {
		if _, err := s.db.Exec(
			`INSERT INTO request_paths (request_id, position, path) VALUES (?, ?, ?)`,
			id, i, path,
		); err != nil {
			return 0, fmt.Errorf("failed to insert request path %s: %w", path, err)
		}
	}

	return id, nil
}

// ListRequests returns recorded requests, newest first, at most limit rows.
// A non-positive limit returns everything.
func (s *Store) ListRequests(limit int) ([]*Request, error) {
	query := `
		SELECT id, created_at, target, suffix, utc, tier, status, path_count
		FROM requests
		ORDER BY created_at DESC, id DESC
	`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}
	defer rows.Close()

	var requests []*Request
	for rows.Next() {
		var req Request
		var createdAt string

		if err := rows.Scan(
			&req.ID,
			&createdAt,
			&req.Target,
			&req.Suffix,
			&req.UTC,
			&req.Tier,
			&req.Status,
			&req.PathCount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan request: %w", err)
		}

		req.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at for request %d: %w", req.ID, err)
		}

		requests = append(requests, &req)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate requests: %w", err)
	}

	return requests, nil
}

// GetRequestPaths returns the path set recorded for a request, in the order
// the paths were scanned.
func (s *Store) GetRequestPaths(requestID int64) ([]string, error) {
	rows, err := s.db.Query(
		`SELECT path FROM request_paths WHERE request_id = ? ORDER BY position`,
		requestID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get paths for request %d: %w", requestID, err)
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return nil, fmt.Errorf("failed to scan path: %w", err)
		}
		paths = append(paths, path)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate paths: %w", err)
	}

	return paths, nil
}
