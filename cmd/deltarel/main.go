// Command deltarel drives a small fixed demo vocabulary against the
// engine: two int relations (evens, odds) and one view (doubled =
// 2*evens). With -i it becomes an interactive REPL reading :insert/
// :eval/:show/:stats commands from stdin; without it, it runs the same
// operations as a scripted round-by-round demo. There is no expression
// parser in either mode — a surface syntax for building arbitrary
// expression trees is out of scope (see spec's Non-goals) — so both
// front ends dispatch to this fixed set of named relations/views
// rather than parsing free-form algebra.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/wbrown/deltarel/algebra"
	"github.com/wbrown/deltarel/engine"
	"github.com/wbrown/deltarel/internal/render"
	"github.com/wbrown/deltarel/reltuple"
)

func intCmp(a, b int) int { return a - b }

func intRow(x int) []string { return []string{strconv.Itoa(x)} }

// session owns the fixed demo database: two relations and the one view
// derived from them, plus whether tier sizes are traced after every
// mutating command.
type session struct {
	db      *engine.Database
	evens   engine.RelationHandle[int]
	odds    engine.RelationHandle[int]
	doubled engine.ViewHandle[int]
	trace   bool
}

func newSession(trace bool) (*session, error) {
	db := engine.NewDatabase()
	evens, err := engine.AddRelation[int](db, "evens", intCmp)
	if err != nil {
		return nil, err
	}
	odds, err := engine.AddRelation[int](db, "odds", intCmp)
	if err != nil {
		return nil, err
	}
	doubled := algebra.NewProject[int, int](algebra.NewRelation(evens), func(x int) int { return x * 2 }, intCmp)
	view, err := engine.StoreView[int](db, doubled, intCmp)
	if err != nil {
		return nil, err
	}
	return &session{db: db, evens: evens, odds: odds, doubled: view, trace: trace}, nil
}

func (s *session) insert(name string, values []int) error {
	batch := reltuple.New(values, intCmp)
	switch name {
	case "evens":
		return engine.Insert(s.db, s.evens, batch)
	case "odds":
		return engine.Insert(s.db, s.odds, batch)
	default:
		return fmt.Errorf("unknown relation %q (known: evens, odds)", name)
	}
}

func (s *session) eval(name string) (reltuple.Tuples[int], error) {
	switch name {
	case "evens":
		return engine.Evaluate[int](s.db, algebra.NewRelation(s.evens))
	case "odds":
		return engine.Evaluate[int](s.db, algebra.NewRelation(s.odds))
	case "union":
		return engine.Evaluate[int](s.db, algebra.NewUnion[int](algebra.NewRelation(s.evens), algebra.NewRelation(s.odds), intCmp))
	case "doubled":
		return engine.Evaluate[int](s.db, algebra.NewView[int](s.doubled))
	default:
		var zero reltuple.Tuples[int]
		return zero, fmt.Errorf("unknown expression %q (known: evens, odds, union, doubled)", name)
	}
}

func (s *session) show(name string) error {
	result, err := s.eval(name)
	if err != nil {
		return err
	}
	fmt.Println(render.Summary(name, result.Len()))
	fmt.Println(render.Table([]string{"value"}, result.Items(), intRow))
	return nil
}

func (s *session) printStats() {
	stats := s.db.Stats()
	fmt.Println(render.Summary("stats", len(stats.Relations)+len(stats.Views)))
	for _, r := range stats.Relations {
		fmt.Printf("  relation %-8s to_add=%d recent=%d stable=%d\n", r.Name, r.ToAdd, r.Recent, r.Stable)
	}
	for _, v := range stats.Views {
		fmt.Printf("  view #%-7d to_add=%d recent=%d stable=%d\n", v.ID, v.ToAdd, v.Recent, v.Stable)
	}
}

func main() {
	var interactive bool
	var trace bool
	flag.BoolVar(&interactive, "i", false, "interactive REPL mode")
	flag.BoolVar(&trace, "trace", false, "print tier sizes after every mutating command")
	flag.Usage = usage
	flag.Parse()

	sess, err := newSession(trace)
	if err != nil {
		log.Fatalf("init: %v", err)
	}

	if interactive {
		if err := runREPL(sess); err != nil {
			log.Fatalf("repl: %v", err)
		}
		return
	}
	if err := runDemo(sess); err != nil {
		log.Fatalf("demo failed: %v", err)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Drives a small incremental relational-algebra demo over two int\n")
	fmt.Fprintf(os.Stderr, "relations (evens, odds) and one view (doubled = 2*evens).\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nREPL commands (-i):\n")
	fmt.Fprintf(os.Stderr, "  :insert <evens|odds> <int>...    insert tuples\n")
	fmt.Fprintf(os.Stderr, "  :eval <evens|odds|union|doubled> evaluate and print an expression\n")
	fmt.Fprintf(os.Stderr, "  :show <evens|odds|union|doubled> same as :eval, table-formatted\n")
	fmt.Fprintf(os.Stderr, "  :stats                           print relation/view tier sizes\n")
	fmt.Fprintf(os.Stderr, "  :help                            show this message\n")
	fmt.Fprintf(os.Stderr, "  :quit                            exit\n")
}

var errQuit = errors.New("quit")

func runREPL(s *session) error {
	fmt.Println("deltarel REPL. Type :help for commands, :quit to exit.")
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("> ")
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			fmt.Print("> ")
			continue
		}
		if err := dispatch(s, line); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		fmt.Print("> ")
	}
	return scanner.Err()
}

func dispatch(s *session, line string) error {
	fields := strings.Fields(line)
	cmd := strings.TrimPrefix(fields[0], ":")
	args := fields[1:]

	switch cmd {
	case "quit", "exit":
		return errQuit
	case "help":
		usage()
		return nil
	case "insert":
		return dispatchInsert(s, args)
	case "eval":
		if len(args) != 1 {
			return errors.New("usage: :eval <evens|odds|union|doubled>")
		}
		result, err := s.eval(args[0])
		if err != nil {
			return err
		}
		fmt.Println(result.Items())
		return nil
	case "show":
		if len(args) != 1 {
			return errors.New("usage: :show <evens|odds|union|doubled>")
		}
		return s.show(args[0])
	case "stats":
		s.printStats()
		return nil
	default:
		return fmt.Errorf("unknown command %q (try :help)", cmd)
	}
}

func dispatchInsert(s *session, args []string) error {
	if len(args) < 2 {
		return errors.New("usage: :insert <evens|odds> <int>...")
	}
	values := make([]int, 0, len(args)-1)
	for _, a := range args[1:] {
		v, err := strconv.Atoi(a)
		if err != nil {
			return fmt.Errorf("invalid int %q: %w", a, err)
		}
		values = append(values, v)
	}
	if err := s.insert(args[0], values); err != nil {
		return err
	}
	if s.trace {
		s.printStats()
	}
	return nil
}

func runDemo(s *session) error {
	fmt.Println("=== deltarel demo ===")
	rounds := [][2][]int{
		{{2, 4, 6}, {1, 3, 5}},
		{{8, 10}, {7, 9}},
		{{12}, {11}},
	}

	for i, round := range rounds {
		fmt.Printf("\n--- round %d: insert ---\n", i+1)
		if err := s.insert("evens", round[0]); err != nil {
			return err
		}
		if err := s.insert("odds", round[1]); err != nil {
			return err
		}
		if err := s.show("union"); err != nil {
			return err
		}
		if err := s.show("doubled"); err != nil {
			return err
		}
		if s.trace {
			s.printStats()
		}
	}

	s.printStats()
	return nil
}
