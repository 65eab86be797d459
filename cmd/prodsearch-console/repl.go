package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/kailas-cloud/prodsearch/internal/presenter"
	searchuc "github.com/kailas-cloud/prodsearch/internal/usecase/search"
)

const (
	prompt  = "Search: "
	goodbye = "Thank you for using Product Search Tool!"
)

const banner = `Product Search Tool
==================================================
Enter your product search request in natural language.
Examples:
- "I need a smartphone under $800 with a great camera and long battery life"
- "Show me fitness equipment under $100"
- "Find electronics with rating above 4.5"
- "I want books about programming"

Type 'quit' to exit.

`

type searcher interface {
	Search(ctx context.Context, query string) (searchuc.Outcome, error)
}

// runREPL reads one query per line until quit, EOF or ctx cancellation
// (Ctrl-C). Search failures are printed and the loop continues.
func runREPL(ctx context.Context, in io.Reader, out io.Writer, s searcher) error {
	fmt.Fprint(out, banner)

	done := make(chan struct{})
	defer close(done)
	lines := scanLines(in, done)

	for {
		fmt.Fprint(out, prompt)

		var line string
		select {
		case <-ctx.Done():
			fmt.Fprintf(out, "\n\n%s\n", goodbye)
			return nil
		case l, ok := <-lines:
			if !ok {
				fmt.Fprintf(out, "\n\n%s\n", goodbye)
				return nil
			}
			if l.err != nil {
				return fmt.Errorf("read input: %w", l.err)
			}
			line = strings.TrimSpace(l.text)
		}

		switch strings.ToLower(line) {
		case "quit", "exit", "q":
			fmt.Fprintln(out, goodbye)
			return nil
		case "":
			fmt.Fprint(out, "Please enter a search query.\n\n")
			continue
		}

		fmt.Fprintln(out, "Searching...")
		outcome, err := s.Search(ctx, line)
		if ctx.Err() != nil {
			fmt.Fprintf(out, "\n\n%s\n", goodbye)
			return nil
		}
		if err != nil {
			fmt.Fprintf(out, "An error occurred: %v\n\n", err)
			continue
		}
		fmt.Fprintf(out, "\n%s\n\n", strings.TrimRight(presenter.Text(outcome.Products), "\n"))
	}
}

type scanned struct {
	text string
	err  error
}

// scanLines feeds input lines to a channel so a blocked read does not hold
// up cancellation. The channel closes on EOF or after a read error.
func scanLines(in io.Reader, done <-chan struct{}) <-chan scanned {
	lines := make(chan scanned)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- scanned{text: sc.Text()}:
			case <-done:
				return
			}
		}
		if err := sc.Err(); err != nil {
			select {
			case lines <- scanned{err: err}:
			case <-done:
			}
		}
	}()
	return lines
}
