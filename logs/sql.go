package logs

const createGameTable = `
CREATE TABLE IF NOT EXISTS games (
  id integer primary key autoincrement,
  time datetime not null,
  player_x varchar not null,
  player_o varchar not null,
  first varchar not null,
  winner varchar not null,
  moves varchar not null,
  plies int not null,
  nodes int not null
)`

const createPlayerView = `
CREATE VIEW IF NOT EXISTS player_games (
  id, player, opponent, mark, result, plies
) AS
SELECT id, player_x, player_o, 'X',
       CASE winner WHEN 'X' THEN 'win' WHEN 'O' THEN 'lose' ELSE 'tie' END,
       plies
 FROM games
UNION ALL
SELECT id, player_o, player_x, 'O',
       CASE winner WHEN 'O' THEN 'win' WHEN 'X' THEN 'lose' ELSE 'tie' END,
       plies
 FROM games
`

const insertStmt = `
INSERT INTO games (time, player_x, player_o, first, winner, moves, plies, nodes)
VALUES (:time, :player_x, :player_o, :first, :winner, :moves, :plies, :nodes)
`

const selectGames = `
SELECT id, time, player_x, player_o, first, winner, moves, plies, nodes
FROM games
ORDER BY id DESC
LIMIT ?
`

const selectPlayers = `
SELECT player,
       SUM(result = 'win') AS wins,
       SUM(result = 'lose') AS losses,
       SUM(result = 'tie') AS ties
FROM player_games
GROUP BY player
ORDER BY player
`
