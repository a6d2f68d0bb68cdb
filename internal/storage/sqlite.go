package storage

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/Ruth-Huang6012/REBOUND-2planets/internal/dynamo"
)

// SQLite trajectory storage, grounded on the same bodies-per-frame
// layout used to dump N-body trajectories elsewhere in the retrieval
// pack: one row per (step, particle) pair, indexed for random access by
// step or by particle hash. It is meant for runs with enough steps and
// particles that the CSV long format becomes unwieldy to query.

const trajectorySchema = `
CREATE TABLE IF NOT EXISTS trajectory (
	step   INTEGER,
	hash   INTEGER,
	name   TEXT,
	mass   REAL,
	x      REAL,
	y      REAL,
	z      REAL,
	vx     REAL,
	vy     REAL,
	vz     REAL
);
`

const trajectoryIndices = `
CREATE INDEX IF NOT EXISTS idx_trajectory_step ON trajectory (step);
CREATE INDEX IF NOT EXISTS idx_trajectory_hash ON trajectory (hash);
`

const insertParticle = `INSERT INTO trajectory VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`

const queryStep = `SELECT hash, name, mass, x, y, z, vx, vy, vz FROM trajectory WHERE step = ? ORDER BY hash ASC;`

// SQLiteTrajectory is an append-only sink for particle states, opened
// against a single file and written one step at a time.
type SQLiteTrajectory struct {
	db   *sql.DB
	stmt *sql.Stmt
}

// OpenSQLiteTrajectory creates (or reuses) filename and prepares the
// insert statement used by AppendStep.
func OpenSQLiteTrajectory(filename string) (*SQLiteTrajectory, error) {
	db, err := sql.Open("sqlite3", "file:"+filename+"?_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(trajectorySchema); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.Exec(trajectoryIndices); err != nil {
		db.Close()
		return nil, err
	}
	stmt, err := db.Prepare(insertParticle)
	if err != nil {
		db.Close()
		return nil, err
	}
	return &SQLiteTrajectory{db: db, stmt: stmt}, nil
}

// AppendStep writes every particle's state for a single step inside one
// transaction: sqlite only ever allows a single writer, so batching per
// step avoids serializing on a transaction per particle.
func (s *SQLiteTrajectory) AppendStep(step int, particles []dynamo.Particle) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	stmt := tx.Stmt(s.stmt)
	for _, p := range particles {
		if _, err := stmt.Exec(step, p.Hash, p.Name, p.Mass, p.Pos[0], p.Pos[1], p.Pos[2], p.Vel[0], p.Vel[1], p.Vel[2]); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// Step reads back every particle recorded at the given step.
func (s *SQLiteTrajectory) Step(step int) ([]dynamo.Particle, error) {
	rows, err := s.db.Query(queryStep, step)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var particles []dynamo.Particle
	for rows.Next() {
		var p dynamo.Particle
		var x, y, z, vx, vy, vz float64
		if err := rows.Scan(&p.Hash, &p.Name, &p.Mass, &x, &y, &z, &vx, &vy, &vz); err != nil {
			return nil, err
		}
		p.Pos = [3]float64{x, y, z}
		p.Vel = [3]float64{vx, vy, vz}
		particles = append(particles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(particles) == 0 {
		return nil, fmt.Errorf("storage: no rows recorded for step %d", step)
	}
	return particles, nil
}

func (s *SQLiteTrajectory) Close() error {
	s.stmt.Close()
	return s.db.Close()
}
