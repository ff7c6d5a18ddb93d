package store

const schema = `
CREATE TABLE IF NOT EXISTS requests (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    created_at TIMESTAMP NOT NULL,
    target TEXT NOT NULL,
    suffix TEXT NOT NULL,
    utc BOOLEAN NOT NULL,
    tier TEXT NOT NULL,
    status TEXT NOT NULL,
    path_count INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS request_paths (
    request_id INTEGER NOT NULL,
    position INTEGER NOT NULL,
    path TEXT NOT NULL,
    PRIMARY KEY (request_id, position),
    FOREIGN KEY (request_id) REFERENCES requests(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_requests_created ON requests(created_at);
CREATE INDEX IF NOT EXISTS idx_request_paths ON request_paths(request_id);
`
