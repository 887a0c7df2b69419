package scenario

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pthm-cable/savanna/components"
)

const animalParams = 4

// ParseText reads the line-oriented input format:
//
//	<days>
//	<grass>
//	<N>
//	<Species> <weight> <speed> <energy>   (N lines)
//
// Checks run in reading order and the first violation is returned.
// A single trailing newline is allowed; any further line is an error.
func ParseText(r *Reader, cat Catalog) (*Scenario, error) {
	days, err := readInt(r)
	if err != nil {
		return nil, err
	}
	if err := checkDays(days); err != nil {
		return nil, &LineError{Line: r.Line(), Err: err}
	}

	grass, err := readFloat(r)
	if err != nil {
		return nil, err
	}
	if err := components.CheckGrass(grass); err != nil {
		return nil, &LineError{Line: r.Line(), Err: err}
	}

	n, err := readInt(r)
	if err != nil {
		return nil, err
	}
	if err := checkAnimalCount(n); err != nil {
		return nil, &LineError{Line: r.Line(), Err: err}
	}

	sc := &Scenario{Days: days, Grass: grass, Animals: make([]components.Traits, 0, n)}
	for i := 0; i < n; i++ {
		t, err := readAnimal(r, cat)
		if err != nil {
			return nil, err
		}
		sc.Animals = append(sc.Animals, t)

		last := i == n-1
		if !last && !r.More() {
			return nil, &LineError{Line: r.Line() + 1, Err: fmt.Errorf("expected %d animals, got %d: %w", n, i+1, ErrInvalidInputs)}
		}
		if last && r.More() {
			return nil, &LineError{Line: r.Line() + 1, Err: fmt.Errorf("unexpected line after %d animals: %w", n, ErrInvalidInputs)}
		}
	}
	return sc, nil
}

func nextLine(r *Reader) (string, error) {
	line, ok := r.Next()
	if !ok {
		if err := r.Err(); err != nil {
			return "", fmt.Errorf("reading input: %w", err)
		}
		return "", &LineError{Line: r.Line() + 1, Err: fmt.Errorf("unexpected end of input: %w", ErrInvalidInputs)}
	}
	return line, nil
}

// readInt parses a whole line as a base-10 integer. Surrounding spaces are not allowed.
func readInt(r *Reader) (int, error) {
	line, err := nextLine(r)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(line)
	if err != nil {
		return 0, &LineError{Line: r.Line(), Err: fmt.Errorf("%q is not an integer: %w", line, ErrInvalidInputs)}
	}
	return v, nil
}

// readFloat parses a whole line as a float. Surrounding whitespace is ignored.
// Out-of-range values become infinities and fail the bound checks instead.
func readFloat(r *Reader) (float32, error) {
	line, err := nextLine(r)
	if err != nil {
		return 0, err
	}
	v, err := parseFloat(line)
	if err != nil {
		return 0, &LineError{Line: r.Line(), Err: err}
	}
	return v, nil
}

// parseFloat accepts the decimal and hex float syntax of the legacy format:
// an optional sign, one optional trailing type suffix (f, F, d or D), and the
// exact spellings Infinity and NaN. Go-only spellings such as inf are rejected.
func parseFloat(s string) (float32, error) {
	invalid := fmt.Errorf("%q is not a number: %w", s, ErrInvalidInputs)

	t := strings.TrimSpace(s)
	var sign string
	if t != "" && (t[0] == '+' || t[0] == '-') {
		sign, t = t[:1], t[1:]
	}
	switch t {
	case "Infinity":
		if sign == "-" {
			return float32(math.Inf(-1)), nil
		}
		return float32(math.Inf(1)), nil
	case "NaN":
		return float32(math.NaN()), nil
	}

	if n := len(t); n > 0 && strings.ContainsRune("fFdD", rune(t[n-1])) {
		t = t[:n-1]
	}
	if strings.ContainsAny(t, "iInN_") {
		return 0, invalid
	}
	v, err := strconv.ParseFloat(sign+t, 32)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, invalid
	}
	return float32(v), nil
}

// splitParams splits on single spaces and drops trailing empty fields,
// so "Lion 1 2 3 " has four fields but "Lion  1 2 3" has five.
func splitParams(line string) []string {
	fields := strings.Split(line, " ")
	for len(fields) > 0 && fields[len(fields)-1] == "" {
		fields = fields[:len(fields)-1]
	}
	return fields
}

func readAnimal(r *Reader, cat Catalog) (components.Traits, error) {
	line, err := nextLine(r)
	if err != nil {
		return components.Traits{}, err
	}
	fail := func(err error) (components.Traits, error) {
		return components.Traits{}, &LineError{Line: r.Line(), Err: err}
	}

	fields := splitParams(line)
	if len(fields) != animalParams {
		return fail(fmt.Errorf("%d fields: %w", len(fields), ErrInvalidParamCount))
	}

	var vals [3]float32
	for i, f := range fields[1:] {
		v, err := parseFloat(f)
		if err != nil {
			return fail(err)
		}
		vals[i] = v
	}

	t, err := cat.Traits(fields[0], vals[0], vals[1], vals[2])
	if err != nil {
		return fail(err)
	}
	return t, nil
}
