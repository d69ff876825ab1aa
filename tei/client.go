package tei

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/gametree/tictac/ai"
	"github.com/gametree/tictac/game"
	"github.com/gametree/tictac/notation"
	"github.com/gametree/tictac/ttt"
)

// Client drives an engine that speaks the protocol served by Engine.
type Client struct {
	cmd *exec.Cmd

	closers []io.Closer

	read  *bufio.Reader
	write io.Writer

	gameid int
}

// NewClient starts cmdline as a subprocess and talks to it over its
// standard input and output.
func NewClient(cmdline []string) (*Client, error) {
	if len(cmdline) == 0 {
		return nil, errors.New("empty engine command line")
	}
	cmd := &exec.Cmd{
		Args: cmdline,
	}
	if path, err := exec.LookPath(cmdline[0]); err != nil {
		return nil, err
	} else {
		cmd.Path = path
	}

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		stdin.Close()
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		stdin.Close()
		stdout.Close()
		return nil, err
	}
	cl := &Client{
		cmd:     cmd,
		closers: []io.Closer{stdin, stdout},
		read:    bufio.NewReader(stdout),
		write:   stdin,
	}
	if err := cl.handshake(); err != nil {
		cl.Close()
		return nil, err
	}
	return cl, nil
}

// NewConn talks to an engine over an existing connection, such as a
// pipe to an in-process Engine.
func NewConn(r io.Reader, w io.WriteCloser) (*Client, error) {
	cl := &Client{
		closers: []io.Closer{w},
		read:    bufio.NewReader(r),
		write:   w,
	}
	if err := cl.handshake(); err != nil {
		cl.Close()
		return nil, err
	}
	return cl, nil
}

func (c *Client) handshake() error {
	_, err := c.sendCommand("tei", "teiok")
	return err
}

// NewGame starts a game with first moving first. Players from earlier
// games stop working.
func (c *Client) NewGame(first ttt.Mark) (ai.Player[ttt.Position, ttt.Move], error) {
	c.gameid += 1
	if _, err := c.sendCommand("teinewgame "+strings.ToLower(first.String()), ""); err != nil {
		return nil, err
	}
	return &player{
		client: c,
		gameid: c.gameid,
	}, nil
}

func (c *Client) Close() {
	c.sendCommand("quit", "")
	for _, cl := range c.closers {
		cl.Close()
	}
	if c.cmd != nil {
		c.cmd.Wait()
	}
}

func (c *Client) sendCommand(cmd string, expect string) ([]string, error) {
	if _, err := fmt.Fprintln(c.write, cmd); err != nil {
		return nil, err
	}
	if expect == "" {
		return nil, nil
	}

	for {
		line, err := c.read.ReadString('\n')
		if err != nil {
			return nil, err
		}
		words := strings.Fields(line)
		if len(words) > 0 && words[0] == expect {
			return words, nil
		}
	}
}

type player struct {
	client *Client
	gameid int
}

func (p *player) GetMove(ctx context.Context, pos ttt.Position) (ttt.Move, error) {
	if p.gameid != p.client.gameid {
		return ttt.NoMove, errors.New("GetMove called on a player from a finished game")
	}
	if err := ctx.Err(); err != nil {
		return ttt.NoMove, err
	}
	if _, err := p.client.sendCommand("position pos "+notation.FormatPosition(pos), ""); err != nil {
		return ttt.NoMove, fmt.Errorf("send position: %w", err)
	}
	bestmove, err := p.client.sendCommand("go", "bestmove")
	if err != nil {
		return ttt.NoMove, fmt.Errorf("go: %w", err)
	}
	if len(bestmove) != 2 {
		return ttt.NoMove, fmt.Errorf("bad bestmove: %q", strings.Join(bestmove, " "))
	}
	if bestmove[1] == NoMove {
		return ttt.NoMove, game.ErrGameOver
	}
	return notation.ParseMove(bestmove[1])
}
