package storage

const schemaV1 = `
CREATE TABLE IF NOT EXISTS export_runs (
    run_id          INTEGER PRIMARY KEY AUTOINCREMENT,
    run_uuid        TEXT UNIQUE NOT NULL,
    account_id      TEXT NOT NULL,
    region          TEXT NOT NULL,
    profile         TEXT,
    run_timestamp   DATETIME DEFAULT CURRENT_TIMESTAMP,
    duration_ms     INTEGER DEFAULT 0,
    filters         TEXT NOT NULL,
    total_findings  INTEGER DEFAULT 0,
    page_count      INTEGER DEFAULT 0,
    output_path     TEXT,
    cli_version     TEXT
);

CREATE INDEX IF NOT EXISTS idx_export_runs_account_timestamp
    ON export_runs(account_id, run_timestamp);
CREATE INDEX IF NOT EXISTS idx_export_runs_timestamp
    ON export_runs(run_timestamp DESC);

CREATE TABLE IF NOT EXISTS export_pages (
    id             INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id         INTEGER NOT NULL,
    page_index     INTEGER NOT NULL,
    item_count     INTEGER NOT NULL,
    running_total  INTEGER NOT NULL,
    FOREIGN KEY(run_id) REFERENCES export_runs(run_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_export_pages_run ON export_pages(run_id);
`
