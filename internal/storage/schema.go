package storage

const schemaSQL = `
-- Documents table stores one row per crawl, keyed by the crawl's
-- start URL. The content column holds every page's title and body
-- concatenated in BFS completion order with the page separator.
CREATE TABLE IF NOT EXISTS documents (
    start_url TEXT PRIMARY KEY,
    content TEXT NOT NULL,
    page_count INTEGER NOT NULL,
    crawled_at DATETIME NOT NULL
);

-- Pages table keeps the individual records of the latest crawl of
-- each start URL for inspection and reporting.
CREATE TABLE IF NOT EXISTS pages (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    start_url TEXT NOT NULL,
    position INTEGER NOT NULL,
    url TEXT NOT NULL,
    title TEXT,
    content TEXT,
    crawled_at DATETIME NOT NULL,
    UNIQUE(start_url, position)
);

CREATE INDEX IF NOT EXISTS idx_pages_start_url ON pages(start_url);
CREATE INDEX IF NOT EXISTS idx_pages_url ON pages(url);
`
