package model

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Text notation: five lines of five whitespace separated tokens, "." for
// an empty cell and SIDE-KIND[TAG] for a piece, e.g. "A-P2", "B-H1".
// H1 is the orthogonal hero, H2 the diagonal one.

func (b Board) String() string {
	var sb strings.Builder
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if c > 0 {
				sb.WriteByte(' ')
			}
			cell := b.Cells[r][c]
			if !cell.Occupied {
				sb.WriteString(fmt.Sprintf("%-4s", "."))
				continue
			}
			sb.WriteString(fmt.Sprintf("%-4s", cell.Piece.Name()))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func ParseBoard(reader io.Reader) (Board, error) {
	var b Board
	scanner := bufio.NewScanner(reader)
	scanner.Split(bufio.ScanLines)
	row := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if row >= Size {
			return b, fmt.Errorf("board has more than %d rows", Size)
		}
		tokens := strings.Fields(line)
		if len(tokens) != Size {
			return b, fmt.Errorf("row %d: expected %d cells, got %d", row, Size, len(tokens))
		}
		for col, tok := range tokens {
			cell, err := parseCell(tok)
			if err != nil {
				return b, fmt.Errorf("row %d col %d: %w", row, col, err)
			}
			b.Cells[row][col] = cell
		}
		row++
	}
	if err := scanner.Err(); err != nil {
		return b, err
	}
	if row != Size {
		return b, fmt.Errorf("board has %d rows, want %d", row, Size)
	}
	return b, nil
}

func MustParseBoard(s string) Board {
	b, err := ParseBoard(strings.NewReader(s))
	if err != nil {
		panic(err)
	}
	return b
}

func parseCell(tok string) (Cell, error) {
	if tok == "." {
		return Empty(), nil
	}
	parts := strings.SplitN(tok, "-", 2)
	if len(parts) != 2 {
		return Cell{}, fmt.Errorf("bad token %q", tok)
	}
	var p Piece
	switch parts[0] {
	case "A":
		p.Side = SideA
	case "B":
		p.Side = SideB
	default:
		return Cell{}, fmt.Errorf("bad side in %q", tok)
	}
	kind := parts[1]
	switch {
	case kind == "H1":
		p.Kind, p.Tag = OrthogonalHero, 1
	case kind == "H2":
		p.Kind, p.Tag = DiagonalHero, 1
	case strings.HasPrefix(kind, "P"):
		p.Kind, p.Tag = Pawn, 1
		if len(kind) > 1 {
			tag, err := strconv.Atoi(kind[1:])
			if err != nil || tag < 1 {
				return Cell{}, fmt.Errorf("bad pawn tag in %q", tok)
			}
			p.Tag = int8(tag)
		}
	default:
		return Cell{}, fmt.Errorf("bad kind in %q", tok)
	}
	return Occupied(p), nil
}
