// Package cli collects query names from the command line, a file, or a terminal.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/okian/crux/internal/domain/model"
)

// StopWord ends an interactive prompt session.
const StopWord = "done"

// ParseList splits "First:Last,First:Last" into query names.
func ParseList(list string) []string {
	var out []string
	for _, part := range strings.Split(list, ",") {
		if name := strings.TrimSpace(part); name != "" {
			out = append(out, name)
		}
	}
	return out
}

// splitDisplayName turns "First Last Name" into a query name, splitting at the first space.
func splitDisplayName(line string) string {
	first, last, _ := strings.Cut(strings.TrimSpace(line), " ")
	return model.NameKey(strings.TrimSpace(first), strings.TrimSpace(last))
}

// ReadNames reads one "Firstname Lastname" per line. Blank lines are ignored.
func ReadNames(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) == "" {
			continue
		}
		out = append(out, splitDisplayName(sc.Text()))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read names: %w", err)
	}
	return out, nil
}

// Prompt asks for last and first names until either answer contains
// StopWord or input ends.
func Prompt(in io.Reader, out io.Writer) ([]string, error) {
	var names []string
	sc := bufio.NewScanner(in)
	ask := func(label string) (string, bool) {
		_, _ = fmt.Fprintf(out, "%s: ", label)
		if !sc.Scan() {
			return "", false
		}
		return sc.Text(), true
	}
	for {
		last, ok := ask("Nachname")
		if !ok {
			break
		}
		first, ok := ask("Vorname")
		if !ok {
			break
		}
		if strings.Contains(last, StopWord) || strings.Contains(first, StopWord) {
			break
		}
		names = append(names, model.NameKey(strings.TrimSpace(first), strings.TrimSpace(last)))
	}
	if err := sc.Err(); err != nil {
		return names, fmt.Errorf("read prompt: %w", err)
	}
	return names, nil
}
