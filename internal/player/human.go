package player

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	engine "github.com/Kgervais7/MooseInTheHouse/engine"
)

// Human reads moves from a line-oriented input. Input is consumed on a
// background goroutine so ChooseMove can return when its context ends.
//
// Commands:
//
//	d <n>          discard hand card n
//	g <n> <player> put hand card n in player's house
//	p              pass
type Human struct {
	Seat
	out   io.Writer
	lines <-chan string
}

// NewHuman starts reading lines from in. Prompts and the table are written
// to out.
func NewHuman(id int, name string, in io.Reader, out io.Writer) *Human {
	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			lines <- sc.Text()
		}
	}()
	return &Human{
		Seat:  newSeat(id, name),
		out:   out,
		lines: lines,
	}
}

// ChooseMove implements engine.Player. It re-prompts until a well-formed
// command arrives, the input ends, or ctx is done.
func (h *Human) ChooseMove(ctx context.Context, t engine.Table) (engine.Move, error) {
	h.render(t)
	for {
		fmt.Fprint(h.out, "> ")
		select {
		case <-ctx.Done():
			return engine.Move{}, ctx.Err()
		case line, ok := <-h.lines:
			if !ok {
				return engine.Move{}, fmt.Errorf("player %d: input closed: %w", h.id, io.ErrUnexpectedEOF)
			}
			m, err := h.parse(line, t)
			if err != nil {
				fmt.Fprintf(h.out, "%v\n", err)
				continue
			}
			return m, nil
		}
	}
}

func (h *Human) render(t engine.Table) {
	fmt.Fprintf(h.out, "\nround %d | draw pile %d | discard top %s\n", t.Round()+1, t.DrawPileSize(), t.DiscardTop())
	for _, p := range t.PlayersExcept(h.id) {
		fmt.Fprintf(h.out, "  player %d: %d in hand, %d in house\n", p.ID(), len(p.Hand()), HouseSize(p))
	}
	fmt.Fprintf(h.out, "your house: %d cards\nyour hand:", HouseSize(h))
	for i, c := range h.hand {
		fmt.Fprintf(h.out, " %d:%s", i, c)
	}
	fmt.Fprintln(h.out)
}

func (h *Human) parse(line string, t engine.Table) (engine.Move, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return engine.Move{}, fmt.Errorf("commands: d <n> | g <n> <player> | p")
	}

	switch fields[0] {
	case "p", "pass":
		return engine.Pass(h.id), nil
	case "d", "discard":
		if len(fields) != 2 {
			return engine.Move{}, fmt.Errorf("usage: d <n>")
		}
		c, err := h.cardAt(fields[1])
		if err != nil {
			return engine.Move{}, err
		}
		return engine.DiscardMove(h.id, c), nil
	case "g", "give":
		if len(fields) != 3 {
			return engine.Move{}, fmt.Errorf("usage: g <n> <player>")
		}
		c, err := h.cardAt(fields[1])
		if err != nil {
			return engine.Move{}, err
		}
		to, err := strconv.Atoi(fields[2])
		if err != nil {
			return engine.Move{}, fmt.Errorf("bad player %q", fields[2])
		}
		if _, ok := t.Player(to); !ok || to == h.id {
			return engine.Move{}, fmt.Errorf("no opponent with id %d", to)
		}
		return engine.HouseMove(h.id, to, c), nil
	}
	return engine.Move{}, fmt.Errorf("unknown command %q", fields[0])
}

func (h *Human) cardAt(s string) (engine.Card, error) {
	i, err := strconv.Atoi(s)
	if err != nil || i < 0 || i >= len(h.hand) {
		return engine.NoCard, fmt.Errorf("no card at %q", s)
	}
	return h.hand[i], nil
}
