package database

var schema = []string{
	`CREATE TABLE IF NOT EXISTS accounts (
    id VARCHAR(64) PRIMARY KEY,
    email VARCHAR(255) NOT NULL UNIQUE,
    display_name VARCHAR(255) NOT NULL,
    plan VARCHAR(16) NOT NULL DEFAULT 'FREE',
    credits INT NOT NULL DEFAULT 0,
    is_admin TINYINT(1) NOT NULL DEFAULT 0,
    avatar_url VARCHAR(1024),
    password_hash VARCHAR(255) NOT NULL DEFAULT '',
    created_at DATETIME(6) NOT NULL,
    CHECK (credits >= 0)
)`,
	`CREATE TABLE IF NOT EXISTS generations (
    seq BIGINT AUTO_INCREMENT PRIMARY KEY,
    id VARCHAR(64) NOT NULL UNIQUE,
    owner_id VARCHAR(64) NOT NULL,
    kind VARCHAR(16) NOT NULL,
    prompt TEXT NOT NULL,
    status VARCHAR(16) NOT NULL,
    media_url VARCHAR(2048),
    thumbnail_url VARCHAR(2048),
    created_at DATETIME(6) NOT NULL,
    settings JSON NOT NULL,
    seo JSON,
    INDEX idx_generations_owner (owner_id, seq),
    FOREIGN KEY (owner_id) REFERENCES accounts(id)
)`,
	`CREATE TABLE IF NOT EXISTS payment_methods (
    position BIGINT AUTO_INCREMENT PRIMARY KEY,
    id VARCHAR(64) NOT NULL UNIQUE,
    name VARCHAR(255) NOT NULL,
    detail VARCHAR(255) NOT NULL,
    icon VARCHAR(32) NOT NULL,
    is_active TINYINT(1) NOT NULL DEFAULT 1,
    bank_name VARCHAR(255),
    account_number VARCHAR(255),
    beneficiary VARCHAR(255)
)`,
}
