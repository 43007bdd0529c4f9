package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"cpusched/domain"
	"cpusched/helpers"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const createRunsTable = `CREATE TABLE IF NOT EXISTS schedule_runs (
						run_id text PRIMARY KEY,
						algorithm text NOT NULL,
						quantum integer NOT NULL DEFAULT 0,
						nr_processes integer NOT NULL,
						avg_waiting_time double precision NOT NULL,
						avg_turnaround_time double precision NOT NULL,
						completed jsonb NOT NULL,
						timeline jsonb NOT NULL,
						summary jsonb NOT NULL,
						created_timestamp timestamptz NOT NULL)`

const selectRunColumns = `SELECT run_id, algorithm, quantum, completed, timeline, summary, created_timestamp FROM schedule_runs`

// PostgreSqlRepo represents info about PostgreSql
type PostgreSqlRepo struct {
	ctx        context.Context
	conn       *pgxpool.Pool
	psqlLogger *zap.Logger
}

// NewPostgreSqlRepo returns a new PostgreSql repo with the runs table created
func NewPostgreSqlRepo(ctx context.Context, username, password, host, databaseName string, port int, logger *zap.Logger) (*PostgreSqlRepo, error) {
	url := fmt.Sprintf("postgres://%s:%s@%s:%d/%s", username, password, host, port, databaseName)

	dbPool, err := pgxpool.New(ctx, url)
	if err != nil {
		logger.Error("could not connect to database", zap.Error(err))
		return nil, err
	}

	// check connection
	err = dbPool.Ping(ctx)
	if err != nil {
		logger.Error("could not ping", zap.Error(err))
		dbPool.Close()
		return nil, err
	}

	_, err = dbPool.Exec(ctx, createRunsTable)
	if err != nil {
		logger.Error("could not create schedule_runs table", zap.Error(err))
		dbPool.Close()
		return nil, err
	}

	return &PostgreSqlRepo{
		ctx:        ctx,
		conn:       dbPool,
		psqlLogger: logger,
	}, nil
}

// Close releases the connection pool
func (p *PostgreSqlRepo) Close() {
	p.conn.Close()
}

// InsertRun inserts a schedule run in PostgreSql table
func (p *PostgreSqlRepo) InsertRun(run *domain.ScheduleRun) error {
	completed, err := json.Marshal(run.Completed)
	if err != nil {
		return err
	}
	timeline, err := json.Marshal(run.Timeline)
	if err != nil {
		return err
	}
	summary, err := json.Marshal(run.Summary)
	if err != nil {
		return err
	}

	insertStatement := `INSERT INTO schedule_runs (run_id, algorithm, quantum, nr_processes, avg_waiting_time,
						avg_turnaround_time, completed, timeline, summary, created_timestamp)
						VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING run_id`

	var runID string
	row := p.conn.QueryRow(p.ctx, insertStatement, run.RunID, run.Algorithm, run.Quantum, len(run.Completed),
		run.Summary.AverageWaitingTime, run.Summary.AverageTurnaroundTime, completed, timeline, summary, run.CreatedTimestamp)
	err = row.Scan(&runID)
	if err != nil {
		p.psqlLogger.Error("could not insert run", zap.Error(err))
		return err
	}
	p.psqlLogger.Debug("Successfuly inserted run", zap.String("run_id", runID))
	return nil
}

// GetRun retrieves a schedule run from PostgreSql table
func (p *PostgreSqlRepo) GetRun(runID string) (*domain.ScheduleRun, error) {
	row := p.conn.QueryRow(p.ctx, selectRunColumns+" WHERE run_id=$1", runID)
	run, err := scanRun(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrRunNotFound, runID)
	}
	if err != nil {
		p.psqlLogger.Error("could not retrieve run", zap.Error(err), zap.String("run_id", runID))
		return nil, err
	}
	return run, nil
}

// ListRuns retrieves schedule runs matching an fql filter, newest first
func (p *PostgreSqlRepo) ListRuns(filter string) ([]*domain.ScheduleRun, error) {
	condition, arguments, err := helpers.ParseRunFilter(filter, p.psqlLogger)
	if err != nil {
		return nil, err
	}
	selectStatement := selectRunColumns
	if condition != "" {
		selectStatement += " WHERE " + condition
	}
	selectStatement += " ORDER BY created_timestamp DESC"

	rows, err := p.conn.Query(p.ctx, selectStatement, pgx.NamedArgs(arguments))
	if err != nil {
		p.psqlLogger.Error("could not retrieve runs", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	runs := make([]*domain.ScheduleRun, 0)
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			p.psqlLogger.Error("could not scan run", zap.Error(err))
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		p.psqlLogger.Error("could not iterate runs", zap.Error(err))
		return nil, err
	}
	return runs, nil
}

// DeleteRun deletes a schedule run from PostgreSql table
func (p *PostgreSqlRepo) DeleteRun(runID string) error {
	row, err := p.conn.Exec(p.ctx, "DELETE FROM schedule_runs WHERE run_id=$1", runID)
	if err != nil {
		p.psqlLogger.Error("could not delete run", zap.Error(err))
		return err
	}
	if row.RowsAffected() != 1 {
		return fmt.Errorf("%w: %s", domain.ErrRunNotFound, runID)
	}
	p.psqlLogger.Debug("Successfuly deleted run", zap.String("run_id", runID))
	return nil
}

func scanRun(row pgx.Row) (*domain.ScheduleRun, error) {
	run := &domain.ScheduleRun{}
	var completed, timeline, summary []byte
	err := row.Scan(&run.RunID, &run.Algorithm, &run.Quantum, &completed, &timeline, &summary, &run.CreatedTimestamp)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(completed, &run.Completed); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(timeline, &run.Timeline); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(summary, &run.Summary); err != nil {
		return nil, err
	}
	return run, nil
}
