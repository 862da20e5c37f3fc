package core

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrParse is wrapped by every level text parse failure.
var ErrParse = errors.New("invalid level text")

// ParseError describes a malformed level text.
type ParseError struct {
	Index  int      // Token index, or the token count for count errors
	Pos    Position // Cell the token belongs to
	Token  string   // Offending token, empty for count errors
	Reason string
}

func (e *ParseError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("level text: %s", e.Reason)
	}
	return fmt.Sprintf("level text: token %d %q at %s: %s", e.Index, e.Token, e.Pos, e.Reason)
}

// Unwrap lets errors.Is match ErrParse.
func (e *ParseError) Unwrap() error {
	return ErrParse
}

// Token letters of the level text format.
const (
	tokenWall      = 'W'
	tokenBreakable = 'R'
	tokenFloor     = 'T'
	tokenHole      = 'E'
	tokenStart     = 'S'
	tokenCreature  = 'B'
)

// tokenize splits level text on whitespace and commas, dropping empties.
func tokenize(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return unicode.IsSpace(r) || r == ','
	})
}

// ParseLevel builds a level from its text form: exactly Width*Height
// single-letter tokens in row-major order.
//
// The parser does not require an S token; callers that need a player check
// HasPlayerStart.
func ParseLevel(text string) (*LevelState, error) {
	tokens := tokenize(text)
	if len(tokens) < Width*Height {
		return nil, &ParseError{
			Index:  len(tokens),
			Reason: fmt.Sprintf("expected %d tokens, got %d", Width*Height, len(tokens)),
		}
	}
	if len(tokens) > Width*Height {
		return nil, &ParseError{
			Index:  len(tokens),
			Reason: fmt.Sprintf("expected %d tokens, got %d (trailing data)", Width*Height, len(tokens)),
		}
	}

	l := NewLevelState()
	for i, tok := range tokens {
		p := positionAt(i)
		if len(tok) != 1 {
			return nil, &ParseError{Index: i, Pos: p, Token: tok, Reason: "tile attributes are not supported"}
		}

		tile := Floor(false)
		switch tok[0] {
		case tokenWall:
			tile = Wall(false, Tunnels{})
		case tokenBreakable:
			tile = Wall(true, Tunnels{})
		case tokenFloor:
		case tokenHole:
			tile = Hole()
		case tokenStart:
			tile = Floor(true)
			l.SetPlayer(p)
		case tokenCreature:
			l.AddCreature(p)
		default:
			return nil, &ParseError{Index: i, Pos: p, Token: tok, Reason: "unknown tile"}
		}
		l.tiles[i] = tile
	}
	return l, nil
}

// EncodeLevel renders the level back into the text format, one row per line.
//
// The player is written as S and creatures as B, so the encoding only round
// trips for a level whose player stands on an entry floor and whose
// creatures stand on distinct, non-entry floors.
func EncodeLevel(l *LevelState) string {
	var sb strings.Builder
	sb.Grow(Width * Height * 3)

	for i, t := range l.tiles {
		p := positionAt(i)
		if p.X > 0 {
			sb.WriteString(", ")
		} else if p.Y > 0 {
			sb.WriteString(",\n")
		}
		sb.WriteByte(encodeCell(t, l.itemAt(p)))
	}
	sb.WriteByte('\n')
	return sb.String()
}

func encodeCell(t GroundTile, item TileItem) byte {
	switch item {
	case ItemPlayer:
		return tokenStart
	case ItemCreature:
		return tokenCreature
	case ItemNone:
	}

	switch t.Kind {
	case TileWall:
		if t.Breakable {
			return tokenBreakable
		}
		return tokenWall
	case TileHole:
		return tokenHole
	case TileFloor:
		return tokenFloor
	default:
		panic(fmt.Sprintf("core: unknown tile kind %d", t.Kind))
	}
}
