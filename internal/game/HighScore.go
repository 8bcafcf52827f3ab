package game

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	_ "github.com/mattn/go-sqlite3"
)

type HighScoreService struct {
	db *sql.DB
}

const tableName = "high_scores"

type Score struct {
	ID         int
	RunID      string
	PlayerName string
	Score      int
	Length     int
	Mode       string
	CreatedAt  time.Time
}

func NewHighScoreService(dbPath string) (*HighScoreService, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}
	// SQLite only supports one writer
	db.SetMaxOpenConns(1)

	service := &HighScoreService{db: db}
	if err := service.createTable(); err != nil {
		db.Close()
		return nil, fmt.Errorf("error creating high scores table: %w", err)
	}

	return service, nil
}

// createTable creates the high_scores table if it does not exist.
func (serviceImpl *HighScoreService) createTable() error {
	const createTableSQL = `
	CREATE TABLE IF NOT EXISTS ` + tableName + ` (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		player_name TEXT NOT NULL,
		score INTEGER NOT NULL,
		length INTEGER NOT NULL,
		mode TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`

	_, err := serviceImpl.db.Exec(createTableSQL)
	if err != nil {
		return fmt.Errorf("failed to execute CREATE TABLE: %w", err)
	}
	log.Debug("High scores table ensured.")
	return nil
}

// SaveScore stores a finished run and reports whether it beat every earlier score.
func (serviceImpl *HighScoreService) SaveScore(entry Score) (bool, error) {
	best, err := serviceImpl.GetBestScore()
	if err != nil {
		return false, err
	}

	const insertSQL = `
	INSERT INTO ` + tableName + ` (run_id, player_name, score, length, mode)
	VALUES (?, ?, ?, ?, ?);`

	_, err = serviceImpl.db.Exec(insertSQL, entry.RunID, entry.PlayerName, entry.Score, entry.Length, entry.Mode)
	if err != nil {
		return false, fmt.Errorf("failed to insert high score for %s: %w", entry.PlayerName, err)
	}

	return entry.Score > best, nil
}

// GetHighScores retrieves a paginated list of scores, best first.
func (serviceImpl *HighScoreService) GetHighScores(limit, offset int) ([]Score, error) {
	const selectSQL = `
	SELECT id, run_id, player_name, score, length, mode, created_at
	FROM ` + tableName + `
	ORDER BY score DESC, length DESC, id ASC
	LIMIT ? OFFSET ?;`

	rows, err := serviceImpl.db.Query(selectSQL, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query high scores: %w", err)
	}
	defer rows.Close()

	scores := []Score{}
	for rows.Next() {
		var score Score
		err := rows.Scan(&score.ID, &score.RunID, &score.PlayerName, &score.Score, &score.Length, &score.Mode, &score.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		scores = append(scores, score)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating rows: %w", err)
	}

	return scores, nil
}

func (serviceImpl *HighScoreService) GetBestScore() (int, error) {
	const bestSQL = `SELECT COALESCE(MAX(score), 0) FROM ` + tableName + `;`
	var best int
	if err := serviceImpl.db.QueryRow(bestSQL).Scan(&best); err != nil {
		return 0, fmt.Errorf("failed to get best score: %w", err)
	}
	return best, nil
}

func (serviceImpl *HighScoreService) GetTotalScoreCount() (int, error) {
	const countSQL = `SELECT COUNT(*) FROM ` + tableName + `;`
	var count int
	err := serviceImpl.db.QueryRow(countSQL).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get total score count: %w", err)
	}
	return count, nil
}

func (serviceImpl *HighScoreService) Close() error {
	return serviceImpl.db.Close()
}

// RecordResult stores the single-player result of a finished match. Other modes
// are not ranked.
func (serviceImpl *HighScoreService) RecordResult(result MatchResult) (bool, error) {
	if result.Mode != ModeSinglePlayer || len(result.Players) == 0 {
		return false, nil
	}
	player := result.Players[0]
	isBest, err := serviceImpl.SaveScore(Score{
		RunID:      result.RunID,
		PlayerName: player.Name,
		Score:      player.Score,
		Length:     player.Length,
		Mode:       result.Mode.String(),
	})
	if err != nil {
		return false, err
	}
	log.Info("High score saved", "run_id", result.RunID, "player", player.Name, "score", player.Score, "best", isBest)
	return isBest, nil
}
