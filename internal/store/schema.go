package store

// Money columns are stored as exact decimal strings, never floats, so the
// ledger's cent-precision survives the round trip.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS categories (
    id           INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id      INTEGER NOT NULL,
    scope        TEXT NOT NULL CHECK (scope IN ('default', 'custom')),
    name         TEXT NOT NULL,
    icon         TEXT NOT NULL DEFAULT '',
    color        TEXT NOT NULL DEFAULT '',
    daily_budget TEXT NOT NULL DEFAULT '0'
);

CREATE TABLE IF NOT EXISTS expenses (
    id           INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id      INTEGER NOT NULL,
    amount       TEXT NOT NULL,
    description  TEXT NOT NULL DEFAULT '',
    category_ref TEXT NOT NULL DEFAULT '',
    timestamp    TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS user_preferences (
    user_id            INTEGER PRIMARY KEY,
    daily_limit        TEXT NOT NULL,
    require_categories INTEGER NOT NULL DEFAULT 1,
    rollover_enabled   INTEGER NOT NULL DEFAULT 0,
    simulated_date     TEXT
);

CREATE TABLE IF NOT EXISTS daily_rollovers (
    user_id          INTEGER NOT NULL,
    date             TEXT NOT NULL,
    base_daily_limit TEXT NOT NULL,
    amount_spent     TEXT NOT NULL,
    rollover_amount  TEXT NOT NULL,
    updated_at       TEXT NOT NULL,
    PRIMARY KEY (user_id, date)
);

CREATE INDEX IF NOT EXISTS idx_expenses_user_time ON expenses(user_id, timestamp);
CREATE INDEX IF NOT EXISTS idx_categories_user ON categories(user_id);
`
