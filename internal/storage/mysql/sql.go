package mysql

const createInvocationsSQL = `
CREATE TABLE IF NOT EXISTS ai_invocations (
  id          BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
  operation   VARCHAR(64)  NOT NULL,
  mode        VARCHAR(8)   NOT NULL,
  ok          BOOLEAN      NOT NULL,
  duration_ms BIGINT       NOT NULL,
  error       TEXT         NULL,
  created_at  DATETIME(3)  NOT NULL,
  PRIMARY KEY (id),
  KEY idx_ai_invocations_created (created_at)
)`

const insertInvocationSQL = `
INSERT INTO ai_invocations
  (operation, mode, ok, duration_ms, error, created_at)
VALUES
  (?, ?, ?, ?, ?, ?)
`

const recentInvocationsSQL = `
SELECT operation, mode, ok, duration_ms, error, created_at
FROM ai_invocations
ORDER BY created_at DESC, id DESC
LIMIT ?
`
