package repository

const schemaGenerationRuns = `
CREATE TABLE IF NOT EXISTS generation_runs (
    run_id TEXT PRIMARY KEY,
    loaded_at TIMESTAMP NOT NULL,
    data_source TEXT NOT NULL,
    score_model TEXT NOT NULL
);
`

const schemaCreditScores = `
CREATE TABLE IF NOT EXISTS credit_scores (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id TEXT NOT NULL REFERENCES generation_runs(run_id),
    seq INTEGER NOT NULL,
    customer_id TEXT NOT NULL,
    bureau_name TEXT NOT NULL,
    credit_score INTEGER NOT NULL,
    score_date TEXT NOT NULL,
    risk_category TEXT NOT NULL,
    score_type TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_credit_scores_run ON credit_scores(run_id, seq);
CREATE INDEX IF NOT EXISTS idx_credit_scores_customer ON credit_scores(run_id, customer_id);
`

const schemaCreditEvents = `
CREATE TABLE IF NOT EXISTS credit_events (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id TEXT NOT NULL REFERENCES generation_runs(run_id),
    seq INTEGER NOT NULL,
    customer_id TEXT NOT NULL,
    event_type TEXT NOT NULL,
    event_date TEXT NOT NULL,
    impact_score INTEGER NOT NULL,
    description TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_credit_events_run ON credit_events(run_id, seq);
`

func allSchemas() []string {
	return []string{
		schemaGenerationRuns,
		schemaCreditScores,
		schemaCreditEvents,
	}
}
