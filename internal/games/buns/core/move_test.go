package core

import (
	"errors"
	"testing"
)

func TestMoveIntoWallIsBlocked(t *testing.T) {
	l := mustParse(t,
		wallRow,
		"WSTTTTTTTTTTTTW",
		wallRow, wallRow, wallRow, wallRow, wallRow, wallRow, wallRow,
	)
	before := l.Clone()

	for _, d := range []Direction{Up, Down, Left} {
		_, err := l.Move(d)
		if !errors.Is(err, ErrBlocked) {
			t.Errorf("Move(%v) error = %v, expected ErrBlocked", d, err)
		}
		if !l.Equal(before) {
			t.Fatalf("Move(%v) into a wall changed the level", d)
		}
	}
}

func TestMoveOffGridRequestsAdjacentBurrow(t *testing.T) {
	l := mustParse(t,
		wallRow,
		"STTTTTTTTTTTTTT",
		wallRow, wallRow, wallRow, wallRow, wallRow, wallRow, wallRow,
	)
	l.AddCreature(P(1, 1))
	before := l.Clone()

	res, err := l.Move(Left)
	if err != nil {
		t.Fatalf("Move(Left) failed: %v", err)
	}
	if res.Effect != MoveAdjacent(Left) {
		t.Errorf("Effect = %v, expected MoveAdjacent(Left)", res.Effect)
	}
	if len(res.History) != 0 {
		t.Errorf("History has %d frames, expected none", len(res.History))
	}
	if !l.Equal(before) {
		t.Error("leaving the grid should not mutate the level")
	}
}

func TestRecheckOutsideGridFails(t *testing.T) {
	l := NewLevelState()
	l.SetPlayer(P(-1, 3))

	if _, err := l.Recheck(); !errors.Is(err, ErrNoDirection) {
		t.Errorf("Recheck() error = %v, expected ErrNoDirection", err)
	}
}

func TestRecheckInsideGrid(t *testing.T) {
	l := mustParse(t,
		wallRow,
		"WSBTTTTTTTTTTTW",
		wallRow, wallRow, wallRow, wallRow, wallRow, wallRow, wallRow,
	)

	res, err := l.Recheck()
	if err != nil {
		t.Fatalf("Recheck() failed: %v", err)
	}
	if res.Effect.Kind != EffectNone {
		t.Errorf("Effect = %v, expected None", res.Effect)
	}
	if l.Player() != P(1, 1) {
		t.Errorf("Player() = %v, expected (1,1)", l.Player())
	}
	if l.RemainingCreatures() != 0 {
		t.Error("adjacent creature should have run into the player")
	}
}

func TestMoveOntoHoleDrops(t *testing.T) {
	l := mustParse(t,
		wallRow,
		"WSETTTTTTTTTTTW",
		wallRow, wallRow, wallRow, wallRow, wallRow, wallRow, wallRow,
	)

	res, err := l.Move(Right)
	if err != nil {
		t.Fatalf("Move(Right) failed: %v", err)
	}
	if res.Effect.Kind != EffectDropHole {
		t.Errorf("Effect = %v, expected DropHole", res.Effect)
	}
	if l.Player() != P(2, 1) {
		t.Errorf("Player() = %v, expected the hole at (2,1)", l.Player())
	}
}

func TestCorridorCaptureWithoutFrames(t *testing.T) {
	l := mustParse(t,
		wallRow,
		"STBTTWWWWWWWWWW",
		wallRow, wallRow, wallRow, wallRow, wallRow, wallRow, wallRow,
	)

	res, err := l.Move(Right)
	if err != nil {
		t.Fatalf("first Move(Right) failed: %v", err)
	}
	if len(res.History) != 0 {
		t.Errorf("History has %d frames, expected 0", len(res.History))
	}
	if got := l.Creatures()[0]; got.Present {
		t.Fatalf("creature should be captured after the first move, got %+v", got)
	}

	if _, err := l.Move(Right); err != nil {
		t.Fatalf("second Move(Right) failed: %v", err)
	}
	if l.Creatures()[0].Present {
		t.Error("captured creature reappeared")
	}
	if l.CapturedCreatures() != 1 {
		t.Errorf("CapturedCreatures() = %d, expected 1", l.CapturedCreatures())
	}
}

func TestCorridorCaptureAfterOneFrame(t *testing.T) {
	l := mustParse(t,
		wallRow,
		"STTBTWWWWWWWWWW",
		wallRow, wallRow, wallRow, wallRow, wallRow, wallRow, wallRow,
	)

	res, err := l.Move(Right)
	if err != nil {
		t.Fatalf("Move(Right) failed: %v", err)
	}
	if len(res.History) != 1 {
		t.Fatalf("History has %d frames, expected 1", len(res.History))
	}

	frame := res.History[0].Creatures()[0]
	if !frame.Present || frame.Pos != P(2, 1) {
		t.Errorf("frame creature = %+v, expected present at (2,1)", frame)
	}
	if res.History[0].Player() != P(1, 1) {
		t.Errorf("frame player = %v, expected (1,1)", res.History[0].Player())
	}
	if l.Creatures()[0].Present {
		t.Error("creature should be captured once it reaches the player")
	}
}

func TestCapturedWhenPlayerStepsOnCreature(t *testing.T) {
	l := mustParse(t,
		wallRow,
		"WSBWWWWWWWWWWWW",
		wallRow, wallRow, wallRow, wallRow, wallRow, wallRow, wallRow,
	)

	if _, err := l.Move(Right); err != nil {
		t.Fatalf("Move(Right) failed: %v", err)
	}
	if l.Creatures()[0].Present {
		t.Error("creature on the player's cell should be captured")
	}
}

// turnLevel: the creature at (3,4) sees the player two cells to its left,
// but that way is a dead end, so it takes the corridor going down.
func turnLevel(t *testing.T) *LevelState {
	return mustParse(t,
		wallRow,
		wallRow,
		wallRow,
		wallRow,
		"WTSBWWWWWWWWWWW",
		"WWWTWWWWWWWWWWW",
		"WWWTWWWWWWWWWWW",
		"WWWTWWWWWWWWWWW",
		"WWWTTWWWWWWWWWW",
	)
}

func TestCreatureAvoidsDeadEndAndRunsCorridor(t *testing.T) {
	l := turnLevel(t)

	if !l.SeesDeadEnd(P(3, 4), Left) {
		t.Fatal("SeesDeadEnd((3,4), Left) = false, expected true")
	}
	if l.SeesDeadEnd(P(3, 4), Down) {
		t.Fatal("SeesDeadEnd((3,4), Down) = true, expected false")
	}

	res, err := l.Move(Left)
	if err != nil {
		t.Fatalf("Move(Left) failed: %v", err)
	}

	if got := l.Creatures()[0]; !got.Present || got.Pos != P(3, 7) {
		t.Errorf("creature = %+v, expected present at (3,7)", got)
	}
	if len(res.History) != 2 {
		t.Fatalf("History has %d frames, expected 2", len(res.History))
	}

	expected := []Position{P(3, 5), P(3, 6)}
	for i, frame := range res.History {
		if got := frame.Creatures()[0].Pos; got != expected[i] {
			t.Errorf("frame %d creature at %v, expected %v", i, got, expected[i])
		}
		if frame.Player() != P(1, 4) {
			t.Errorf("frame %d player at %v, expected (1,4)", i, frame.Player())
		}
	}
}

// Slot 0 charges the player from the left and is caught after one frame;
// slot 1 sees a dead end to its left and runs down its own corridor.
func TestCreaturesReactInSlotOrder(t *testing.T) {
	l := mustParse(t,
		wallRow,
		wallRow,
		wallRow,
		wallRow,
		"WWBTSTBWWWWWWWW",
		"WWWWWWTWWWWWWWW",
		"WWWWWWTWWWWWWWW",
		"WWWWWWTWWWWWWWW",
		"WWWWWWTTWWWWWWW",
	)

	res, err := l.Recheck()
	if err != nil {
		t.Fatalf("Recheck() failed: %v", err)
	}

	expected := []struct {
		first, second CreatureSlot
	}{
		{CreatureSlot{Pos: P(3, 4), Present: true}, CreatureSlot{Pos: P(6, 4), Present: true}},
		{CreatureSlot{Pos: P(3, 4), Present: false}, CreatureSlot{Pos: P(6, 5), Present: true}},
		{CreatureSlot{Pos: P(3, 4), Present: false}, CreatureSlot{Pos: P(6, 6), Present: true}},
	}
	if len(res.History) != len(expected) {
		t.Fatalf("History has %d frames, expected %d", len(res.History), len(expected))
	}
	for i, frame := range res.History {
		got := frame.Creatures()
		if got[0] != expected[i].first {
			t.Errorf("frame %d slot 0 = %+v, expected %+v", i, got[0], expected[i].first)
		}
		if got[1] != expected[i].second {
			t.Errorf("frame %d slot 1 = %+v, expected %+v", i, got[1], expected[i].second)
		}
	}

	final := l.Creatures()
	if final[0].Present {
		t.Errorf("slot 0 = %+v, expected captured", final[0])
	}
	if !final[1].Present || final[1].Pos != P(6, 7) {
		t.Errorf("slot 1 = %+v, expected present at (6,7)", final[1])
	}
}

func TestHistoryFramesAreIndependent(t *testing.T) {
	l := turnLevel(t)
	res, err := l.Move(Left)
	if err != nil {
		t.Fatalf("Move(Left) failed: %v", err)
	}
	snapshot := res.History[0].Clone()

	l.SetTileAt(P(1, 4), Hole())
	if _, err := l.Move(Right); err != nil {
		t.Fatalf("Move(Right) failed: %v", err)
	}

	if !res.History[0].Equal(snapshot) {
		t.Error("history frame changed after the level moved on")
	}
}

func TestUnalignedCreatureStays(t *testing.T) {
	l := turnLevel(t)
	if _, err := l.Move(Left); err != nil {
		t.Fatalf("Move(Left) failed: %v", err)
	}

	res, err := l.Move(Right)
	if err != nil {
		t.Fatalf("Move(Right) failed: %v", err)
	}
	if got := l.Creatures()[0].Pos; got != P(3, 7) {
		t.Errorf("unaligned creature moved to %v", got)
	}
	if len(res.History) != 0 {
		t.Errorf("History has %d frames, expected none", len(res.History))
	}
}

func TestFarCreatureStays(t *testing.T) {
	l := mustParse(t,
		wallRow,
		"WSTTTBTTTTTTTTW",
		"WTTTTTTTTTTTTTW",
		wallRow, wallRow, wallRow, wallRow, wallRow, wallRow,
	)

	if _, err := l.Move(Right); err != nil {
		t.Fatalf("Move(Right) failed: %v", err)
	}
	if got := l.Creatures()[0].Pos; got != P(5, 1) {
		t.Errorf("creature 3 cells away moved to %v", got)
	}
}

func TestBlockedLineOfSightStays(t *testing.T) {
	l := mustParse(t,
		wallRow,
		"STWBTTTTTTTTTTW",
		"WWWTWWWWWWWWWWW",
		"WWWTWWWWWWWWWWW",
		wallRow, wallRow, wallRow, wallRow, wallRow,
	)

	if _, err := l.Move(Right); err != nil {
		t.Fatalf("Move(Right) failed: %v", err)
	}
	if got := l.Creatures()[0].Pos; got != P(3, 1) {
		t.Errorf("creature behind a wall moved to %v", got)
	}
}

func TestExitedCreatureIsSkipped(t *testing.T) {
	l := mustParse(t,
		wallRow,
		"WSTTTTTTTTTTTTW",
		wallRow, wallRow, wallRow, wallRow, wallRow, wallRow, wallRow,
	)
	l.AddCreature(P(-1, 1))

	if _, err := l.Move(Right); err != nil {
		t.Fatalf("Move(Right) failed: %v", err)
	}
	if got := l.Creatures()[0]; !got.Present || got.Pos != P(-1, 1) {
		t.Errorf("exited creature = %+v, expected untouched", got)
	}
	if l.RemainingCreatures() != 0 {
		t.Errorf("RemainingCreatures() = %d, expected 0", l.RemainingCreatures())
	}
}

func TestCreatureChargesWhenEveryWayIsDeadEnd(t *testing.T) {
	// Left, Down and Up all end in walls; the first open cell wins.
	l := mustParse(t,
		wallRow,
		"WSTTBWWWWWWWWWW",
		"WWWWTWWWWWWWWWW",
		wallRow, wallRow, wallRow, wallRow, wallRow, wallRow,
	)

	for _, d := range []Direction{Left, Down, Up} {
		if !l.SeesDeadEnd(P(4, 1), d) {
			t.Fatalf("SeesDeadEnd((4,1), %v) = false, expected true", d)
		}
	}

	res, err := l.Move(Right)
	if err != nil {
		t.Fatalf("Move(Right) failed: %v", err)
	}
	if len(res.History) != 1 {
		t.Errorf("History has %d frames, expected 1", len(res.History))
	}
	if l.Creatures()[0].Present {
		t.Error("creature should have run into the player")
	}
}

func TestMoveWithoutPlayerPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Move() on a level without a player start should panic")
		}
	}()
	l := NewLevelState()
	_, _ = l.Move(Right)
}
