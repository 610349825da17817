package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"
)

func collectForCLI[T any](seq iter.Seq2[*T, error], marshal func(*T) ([]byte, error)) ([][]byte, error) {
	var results [][]byte
	for value, err := range seq {
		if err != nil {
			return nil, err
		}
		data, err := marshal(value)
		if err != nil {
			return nil, err
		}
		results = append(results, data)
	}
	return results, nil
}

func printJSONArray(w io.Writer, entries [][]byte) error {
	if _, err := fmt.Fprintln(w, "["); err != nil {
		return err
	}
	for i, entry := range entries {
		if i > 0 {
			if _, err := fmt.Fprintln(w, ","); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, string(entry)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "]")
	return err
}

const interactivePageSize = 10

// printJSONArrayInteractive streams entries and asks on prompt before every
// batch of interactivePageSize. Typing q ends the array early.
func printJSONArrayInteractive[T any](w, prompt io.Writer, in io.Reader, seq iter.Seq2[*T, error], marshal func(*T) ([]byte, error)) error {
	if _, err := fmt.Fprintln(w, "["); err != nil {
		return err
	}

	reader := bufio.NewReader(in)
	var (
		printed int
		iterErr error
	)
	for value, err := range seq {
		if err != nil {
			iterErr = err
			break
		}
		data, err := marshal(value)
		if err != nil {
			iterErr = err
			break
		}
		if printed > 0 {
			if _, err := fmt.Fprintln(w, ","); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, string(data)); err != nil {
			return err
		}
		printed++

		if printed%interactivePageSize != 0 {
			continue
		}
		fmt.Fprint(prompt, "Press Enter to continue, or type 'q' to quit: ")
		input, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			iterErr = err
			break
		}
		if strings.EqualFold(strings.TrimSpace(input), "q") {
			break
		}
	}

	if _, err := fmt.Fprintln(w, "]"); err != nil && iterErr == nil {
		iterErr = err
	}
	return iterErr
}
