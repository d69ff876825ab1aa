package notation

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/gametree/tictac/ttt"
)

type Tag struct {
	Name  string
	Value string
}

type Op interface {
	op()

	Source() string
}

type opCommon struct {
	src string
}

func (o opCommon) Source() string {
	return o.src
}

func (o opCommon) op() {}

type MoveNumber struct {
	opCommon
	Number int
}

type Move struct {
	opCommon
	Move ttt.Move
}

type Comment struct {
	opCommon
	Comment string
}

type Result struct {
	opCommon
	Winner ttt.Mark
}

// Record is a game record: a header of tags followed by numbered
// moves and an optional result.
//
//	[Player1 "human"]
//	[Player2 "alphabeta"]
//
//	1. 5 1
//	2. 9 3 {forced}
//	1/2-1/2
type Record struct {
	Tags []Tag
	Ops  []Op
}

const (
	resultX    = "1-0"
	resultO    = "0-1"
	resultDraw = "1/2-1/2"
)

func ParseRecord(r io.Reader) (*Record, error) {
	buf := bufio.NewReader(r)
	var rec Record
	if err := readTags(buf, &rec); err != nil && err != io.EOF {
		return nil, err
	}
	if err := readOps(buf, &rec); err != nil && err != io.EOF {
		return nil, err
	}
	return &rec, nil
}

func ParseFile(path string) (*Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseRecord(f)
}

func (r *Record) FindTag(name string) string {
	for _, t := range r.Tags {
		if t.Name == name {
			return t.Value
		}
	}
	return ""
}

// InitialPosition honors the Position and First tags.
func (r *Record) InitialPosition() (ttt.Position, error) {
	if pos := r.FindTag("Position"); pos != "" {
		p, err := ParsePosition(pos)
		if err != nil {
			return ttt.Position{}, fmt.Errorf("bad Position tag: %w", err)
		}
		return p, nil
	}
	cfg := ttt.Config{First: ttt.X}
	if first := r.FindTag("First"); first != "" {
		m, ok := ttt.ParseMark(first)
		if !ok {
			return ttt.Position{}, fmt.Errorf("bad First tag: %q", first)
		}
		cfg.First = m
	}
	return ttt.New(cfg), nil
}

// Moves returns the moves of the record in order.
func (r *Record) Moves() []ttt.Move {
	var out []ttt.Move
	for _, o := range r.Ops {
		if m, ok := o.(*Move); ok {
			out = append(out, m.Move)
		}
	}
	return out
}

// PositionAtMove returns the position after the first n moves. n == 0
// is the initial position; n < 0 means after every move.
func (r *Record) PositionAtMove(n int) (ttt.Position, error) {
	p, err := r.InitialPosition()
	if err != nil {
		return p, err
	}
	for i, m := range r.Moves() {
		if n >= 0 && i == n {
			return p, nil
		}
		p, err = p.Move(m)
		if err != nil {
			return p, fmt.Errorf("move %d (%s): %w", i+1, FormatMove(m), err)
		}
	}
	if n > len(r.Moves()) {
		return p, fmt.Errorf("record has only %d moves", len(r.Moves()))
	}
	return p, nil
}

// AddMoves appends ms, numbering each pair of moves.
func (r *Record) AddMoves(ms []ttt.Move) {
	played := len(r.Moves())
	for i, m := range ms {
		if (played+i)%2 == 0 {
			r.Ops = append(r.Ops, &MoveNumber{Number: (played+i)/2 + 1})
		}
		r.Ops = append(r.Ops, &Move{Move: m})
	}
}

// AddResult appends the outcome of p if the game is over.
func (r *Record) AddResult(p ttt.Position) {
	if over, winner := p.GameOver(); over {
		r.Ops = append(r.Ops, &Result{Winner: winner})
	}
}

func readTags(r *bufio.Reader, rec *Record) error {
	for {
		if e := skipWS(r); e != nil {
			return e
		}
		c, e := r.ReadByte()
		if e != nil {
			return e
		}
		if c != '[' {
			return r.UnreadByte()
		}
		line, e := r.ReadString(']')
		if e != nil {
			return e
		}
		line = line[:len(line)-1]
		bits := strings.SplitN(line, " ", 2)
		if len(bits) != 2 {
			return errors.New("bad tag")
		}
		rec.Tags = append(rec.Tags, Tag{
			Name:  bits[0],
			Value: strings.Trim(bits[1], "\""),
		})
	}
}

func readOps(r *bufio.Reader, rec *Record) error {
	s := bufio.NewScanner(r)
	s.Split(splitOps)
	for s.Scan() {
		tok := s.Text()
		common := opCommon{tok}
		switch {
		case tok[0] == '{':
			rec.Ops = append(rec.Ops, &Comment{common, tok[1 : len(tok)-1]})
		case tok == resultX:
			rec.Ops = append(rec.Ops, &Result{common, ttt.X})
		case tok == resultO:
			rec.Ops = append(rec.Ops, &Result{common, ttt.O})
		case tok == resultDraw:
			rec.Ops = append(rec.Ops, &Result{common, ttt.Empty})
		case tok[len(tok)-1] == '.':
			n, e := strconv.Atoi(tok[:len(tok)-1])
			if e != nil {
				return e
			}
			rec.Ops = append(rec.Ops, &MoveNumber{common, n})
		default:
			m, e := ParseMove(tok)
			if e != nil {
				return e
			}
			rec.Ops = append(rec.Ops, &Move{common, m})
		}
	}
	return s.Err()
}

func splitOps(buf []byte, atEOF bool) (int, []byte, error) {
	start := 0
	for start < len(buf) && unicode.IsSpace(rune(buf[start])) {
		start++
	}
	if start == len(buf) {
		return start, nil, nil
	}
	if buf[start] == '{' {
		for i := start; i < len(buf); i++ {
			if buf[i] == '}' {
				return i + 1, buf[start : i+1], nil
			}
		}
	} else {
		for i := start; i < len(buf); i++ {
			if unicode.IsSpace(rune(buf[i])) {
				return i + 1, buf[start:i], nil
			}
		}
	}
	if atEOF {
		return len(buf), buf[start:], nil
	}
	return start, nil, nil
}

func skipWS(r *bufio.Reader) error {
	for {
		c, e := r.ReadByte()
		if e != nil {
			return e
		}
		if !unicode.IsSpace(rune(c)) {
			return r.UnreadByte()
		}
	}
}

func (r *Record) Render() string {
	var out bytes.Buffer
	for _, tag := range r.Tags {
		fmt.Fprintf(&out, "[%s \"%s\"]\n",
			tag.Name, strings.Replace(tag.Value, "\"", "", -1),
		)
	}
	out.WriteString("\n")

	for i, op := range r.Ops {
		switch o := op.(type) {
		case *MoveNumber:
			if i > 0 {
				out.WriteString("\n")
			}
			fmt.Fprintf(&out, "%d.", o.Number)
		case *Move:
			fmt.Fprintf(&out, " %s", FormatMove(o.Move))
		case *Comment:
			fmt.Fprintf(&out, " {%s}", o.Comment)
		case *Result:
			var w string
			switch o.Winner {
			case ttt.X:
				w = resultX
			case ttt.O:
				w = resultO
			default:
				w = resultDraw
			}
			fmt.Fprintf(&out, "\n%s", w)
		}
	}
	out.WriteString("\n")
	return out.String()
}
