package database

// Steps is the schema history. Append new versions; never edit applied ones.
var Steps = []Step{
	{
		Version: 1,
		Name:    "create_core_tables",
		Statements: map[Dialect][]string{
			DialectSQLite:   sqliteCoreTables,
			DialectPostgres: postgresCoreTables,
		},
	},
	{
		Version: 2,
		Name:    "create_book_author",
		Statements: map[Dialect][]string{
			DialectSQLite:   sqliteBookAuthor,
			DialectPostgres: postgresBookAuthor,
		},
	},
}

var sqliteCoreTables = []string{
	`CREATE TABLE IF NOT EXISTS author (
		id INTEGER PRIMARY KEY AUTOINCREMENT CHECK (id >= 1),
		name TEXT NOT NULL CHECK (name <> ''),
		description TEXT,
		birth DATE,
		date_added DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		date_last_updated DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS publisher (
		id INTEGER PRIMARY KEY AUTOINCREMENT CHECK (id BETWEEN 1 AND 65535),
		name TEXT NOT NULL CHECK (name <> ''),
		description TEXT NOT NULL,
		city TEXT,
		date_added DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		date_last_updated DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS book (
		id INTEGER PRIMARY KEY AUTOINCREMENT CHECK (id >= 1),
		isbn TEXT,
		name TEXT NOT NULL CHECK (name <> ''),
		description TEXT,
		language TEXT,
		nsfw BOOLEAN NOT NULL DEFAULT 0,
		page_count INTEGER NOT NULL DEFAULT 0 CHECK (page_count BETWEEN 0 AND 65535),
		image_formatted BOOLEAN NOT NULL DEFAULT 0,
		publisher_id INTEGER REFERENCES publisher (id) ON DELETE SET NULL,
		date_published DATE,
		date_added DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		date_last_updated DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_book_publisher ON book (publisher_id)`,
	`CREATE TABLE IF NOT EXISTS "user" (
		id INTEGER PRIMARY KEY AUTOINCREMENT CHECK (id BETWEEN 1 AND 255),
		name TEXT NOT NULL CHECK (name <> ''),
		date_added DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		date_last_updated DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS progress (
		id INTEGER PRIMARY KEY AUTOINCREMENT CHECK (id >= 1),
		user_id INTEGER NOT NULL REFERENCES "user" (id) ON DELETE RESTRICT,
		book_id INTEGER NOT NULL REFERENCES book (id) ON DELETE RESTRICT,
		current_page INTEGER NOT NULL DEFAULT 0 CHECK (current_page BETWEEN 0 AND 65535),
		date_added DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		date_last_updated DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (user_id, book_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_progress_book ON progress (book_id)`,
	sqliteTouchTrigger("author"),
	sqliteTouchTrigger("publisher"),
	sqliteTouchTrigger("book"),
	sqliteTouchTrigger("user"),
	sqliteTouchTrigger("progress"),
}

var sqliteBookAuthor = []string{
	`CREATE TABLE IF NOT EXISTS book_author (
		book_id INTEGER NOT NULL REFERENCES book (id) ON DELETE CASCADE,
		author_id INTEGER NOT NULL REFERENCES author (id) ON DELETE CASCADE,
		date_added DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (book_id, author_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_book_author_author ON book_author (author_id)`,
}

// SQLite leaves recursive triggers off, so the inner UPDATE does not fire the
// trigger again.
func sqliteTouchTrigger(table string) string {
	return `CREATE TRIGGER IF NOT EXISTS ` + table + `_touch AFTER UPDATE ON "` + table + `"
	FOR EACH ROW BEGIN
		UPDATE "` + table + `" SET date_last_updated = CURRENT_TIMESTAMP WHERE id = NEW.id;
	END`
}

var postgresCoreTables = append(postgresTables, postgresTouchTriggers("author", "publisher", "book", "user", "progress")...)

var postgresTables = []string{
	`CREATE OR REPLACE FUNCTION touch_date_last_updated() RETURNS TRIGGER AS $$
	BEGIN
		NEW.date_last_updated = NOW();
		RETURN NEW;
	END;
	$$ LANGUAGE plpgsql`,
	`CREATE TABLE IF NOT EXISTS author (
		id BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY CHECK (id >= 1),
		name TEXT NOT NULL CHECK (name <> ''),
		description TEXT,
		birth DATE,
		date_added TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		date_last_updated TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS publisher (
		id INTEGER GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY CHECK (id BETWEEN 1 AND 65535),
		name TEXT NOT NULL CHECK (name <> ''),
		description TEXT NOT NULL,
		city TEXT,
		date_added TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		date_last_updated TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS book (
		id BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY CHECK (id >= 1),
		isbn TEXT,
		name TEXT NOT NULL CHECK (name <> ''),
		description TEXT,
		language TEXT,
		nsfw BOOLEAN NOT NULL DEFAULT FALSE,
		page_count INTEGER NOT NULL DEFAULT 0 CHECK (page_count BETWEEN 0 AND 65535),
		image_formatted BOOLEAN NOT NULL DEFAULT FALSE,
		publisher_id INTEGER REFERENCES publisher (id) ON DELETE SET NULL,
		date_published DATE,
		date_added TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		date_last_updated TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_book_publisher ON book (publisher_id)`,
	`CREATE TABLE IF NOT EXISTS "user" (
		id SMALLINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY CHECK (id BETWEEN 1 AND 255),
		name TEXT NOT NULL CHECK (name <> ''),
		date_added TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		date_last_updated TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS progress (
		id BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY CHECK (id >= 1),
		user_id SMALLINT NOT NULL REFERENCES "user" (id) ON DELETE RESTRICT,
		book_id BIGINT NOT NULL REFERENCES book (id) ON DELETE RESTRICT,
		current_page INTEGER NOT NULL DEFAULT 0 CHECK (current_page BETWEEN 0 AND 65535),
		date_added TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		date_last_updated TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (user_id, book_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_progress_book ON progress (book_id)`,
}

func postgresTouchTriggers(tables ...string) []string {
	var stmts []string
	for _, table := range tables {
		stmts = append(stmts,
			`DROP TRIGGER IF EXISTS `+table+`_touch ON "`+table+`"`,
			`CREATE TRIGGER `+table+`_touch BEFORE UPDATE ON "`+table+`"
			FOR EACH ROW EXECUTE FUNCTION touch_date_last_updated()`,
		)
	}
	return stmts
}

var postgresBookAuthor = []string{
	`CREATE TABLE IF NOT EXISTS book_author (
		book_id BIGINT NOT NULL REFERENCES book (id) ON DELETE CASCADE,
		author_id BIGINT NOT NULL REFERENCES author (id) ON DELETE CASCADE,
		date_added TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (book_id, author_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_book_author_author ON book_author (author_id)`,
}
