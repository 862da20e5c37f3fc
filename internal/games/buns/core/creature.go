package core

// Creatures only react to a player they can see along a row or column, and
// only from close by.
const reactionRange = 2

// reactCreature runs the reaction of creature slot i against the already
// committed player position. Corridor frames are appended to history.
func (l *LevelState) reactCreature(i int, history *[]*LevelState) {
	slot := l.creatures[i]
	if !slot.Present || !slot.Pos.InBounds() {
		return
	}

	toward, dist, aligned := DistanceToStraightLine(l.player, slot.Pos)
	if !aligned {
		return
	}
	if dist == 0 {
		l.capture(i)
		return
	}
	if dist > reactionRange {
		return
	}
	if l.lineBlocked(slot.Pos, toward, dist) {
		return
	}

	dir, ok := l.chooseDirection(slot.Pos, toward)
	if !ok {
		return
	}

	pos := slot.Pos.Step(dir)
	for {
		if pos == l.player {
			l.capture(i)
			return
		}
		if !l.canRun(pos, dir) {
			break
		}
		l.creatures[i].Pos = pos
		*history = append(*history, l.Clone())
		pos = pos.Step(dir)
	}
	l.creatures[i].Pos = pos
}

// capture empties slot i for good.
func (l *LevelState) capture(i int) {
	l.creatures[i] = CreatureSlot{Pos: l.creatures[i].Pos, Present: false}
}

// lineBlocked reports whether a wall stands between a creature at pos and
// the player dist cells away in direction toward.
func (l *LevelState) lineBlocked(pos Position, toward Direction, dist int) bool {
	first := pos.Step(toward)
	if l.solidFor(first, toward) {
		return true
	}
	return dist == 2 && l.solidFor(first.Step(toward), toward)
}

// chooseDirection picks the creature's move among toward and its two turns.
// A direction without a dead end wins; failing that, any direction whose
// adjacent cell is open.
func (l *LevelState) chooseDirection(pos Position, toward Direction) (Direction, bool) {
	candidates := [3]Direction{toward, toward.TurnLeft(), toward.TurnRight()}

	for _, d := range candidates {
		if !l.SeesDeadEnd(pos, d) {
			return d, true
		}
	}
	for _, d := range candidates {
		if !l.solidFor(pos.Step(d), d) {
			return d, true
		}
	}
	return Up, false
}

// canRun reports whether a creature at pos keeps running in direction d:
// the next cell is open and walled in on both flanks.
func (l *LevelState) canRun(pos Position, d Direction) bool {
	if !pos.InBounds() {
		return false
	}
	next := pos.Step(d)
	if l.solidFor(next, d) {
		return false
	}
	left, right := d.TurnLeft(), d.TurnRight()
	return l.solidFor(next.Step(left), left) && l.solidFor(next.Step(right), right)
}

// SeesDeadEnd scans the straight line from p in direction d and reports
// whether it ends in a wall before either flank opens up.
// It never explores side branches.
func (l *LevelState) SeesDeadEnd(p Position, d Direction) bool {
	left, right := d.TurnLeft(), d.TurnRight()
	cur := p
	for {
		cur = cur.Step(d)
		if !cur.InBounds() {
			return false
		}
		if l.solidFor(cur, d) {
			return true
		}
		if !l.solidFor(cur.Step(left), left) || !l.solidFor(cur.Step(right), right) {
			return false
		}
	}
}
