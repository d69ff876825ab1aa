package logs

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // repository assumes sqlite

	"github.com/gametree/tictac/notation"
	"github.com/gametree/tictac/ttt"
)

type Repository struct {
	db *sqlx.DB

	insert *sqlx.NamedStmt
}

type Game struct {
	ID        int64     `db:"id"`
	Timestamp time.Time `db:"time"`
	PlayerX   string    `db:"player_x"`
	PlayerO   string    `db:"player_o"`
	First     string    `db:"first"`
	// Winner is "X", "O", or "" for a tie.
	Winner string `db:"winner"`
	Moves  string `db:"moves"`
	Plies  int    `db:"plies"`
	// Nodes is the total search nodes spent by computer players.
	Nodes int64 `db:"nodes"`
}

type PlayerRecord struct {
	Player string `db:"player"`
	Wins   int    `db:"wins"`
	Losses int    `db:"losses"`
	Ties   int    `db:"ties"`
}

// NewGame builds a log entry for a finished game.
func NewGame(playerX, playerO string, final ttt.Position, moves []ttt.Move, nodes uint64) *Game {
	_, winner := final.GameOver()
	g := &Game{
		Timestamp: time.Now().UTC(),
		PlayerX:   playerX,
		PlayerO:   playerO,
		First:     final.First().String(),
		Moves:     notation.FormatMoves(moves),
		Plies:     len(moves),
		Nodes:     int64(nodes),
	}
	if winner != ttt.Empty {
		g.Winner = winner.String()
	}
	return g
}

func Open(path string) (*Repository, error) {
	db, err := sqlx.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	// sqlite serializes writers; one connection also keeps
	// ":memory:" databases from splitting across connections.
	db.SetMaxOpenConns(1)
	if _, err = db.Exec(createGameTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("create games table: %w", err)
	}
	if _, err = db.Exec(createPlayerView); err != nil {
		db.Close()
		return nil, fmt.Errorf("create player_games view: %w", err)
	}

	repo := &Repository{db: db}
	repo.insert, err = db.PrepareNamed(insertStmt)
	if err != nil {
		repo.Close()
		return nil, fmt.Errorf("prepare: %w", err)
	}
	return repo, nil
}

func (r *Repository) InsertGame(ctx context.Context, g *Game) error {
	res, err := r.insert.ExecContext(ctx, g)
	if err != nil {
		return err
	}
	g.ID, err = res.LastInsertId()
	return err
}

func (r *Repository) InsertGames(ctx context.Context, gs []*Game) error {
	txn, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer txn.Rollback()
	stmt := txn.NamedStmtContext(ctx, r.insert)
	for _, g := range gs {
		if _, e := stmt.ExecContext(ctx, g); e != nil {
			return e
		}
	}
	return txn.Commit()
}

// RecentGames returns up to limit games, newest first.
func (r *Repository) RecentGames(ctx context.Context, limit int) ([]Game, error) {
	var out []Game
	if err := r.db.SelectContext(ctx, &out, selectGames, limit); err != nil {
		return nil, err
	}
	return out, nil
}

// Players summarizes results per player name across logged games.
func (r *Repository) Players(ctx context.Context) ([]PlayerRecord, error) {
	var out []PlayerRecord
	if err := r.db.SelectContext(ctx, &out, selectPlayers); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repository) Close() {
	if r.insert != nil {
		r.insert.Close()
	}
	r.db.Close()
}
