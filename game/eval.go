package game

// EvaluateProgress compares the player's total progress against the strongest
// opponent to produce a score between -1 and 1.
func EvaluateProgress(gs *GameState, player Color) float64 {
	if winner, ok := gs.Winner(); ok {
		if winner == player {
			return 1
		}
		return -1
	}

	own := 0.0
	best := 0.0
	for _, p := range gs.Players {
		progress := float64(p.Progress())
		if p.Color == player {
			own = progress
		} else if progress > best {
			best = progress
		}
	}
	return normalize(own, best)
}

// EvaluateThreats additionally penalises pieces sitting within one roll of an
// opposing piece.
func EvaluateThreats(gs *GameState, player Color) float64 {
	progressScore := EvaluateProgress(gs, player)
	if _, ok := gs.Winner(); ok {
		return progressScore
	}

	exposed, threatening := 0.0, 0.0
	for _, piece := range gs.Board.Pieces() {
		if piece.Location.Kind != OnTrack {
			continue
		}
		n := float64(Threats(gs.Board, piece.Owner, piece.Location.Slot, gs.Rules.DieMax()))
		if piece.Owner == player {
			exposed += n
		} else {
			threatening += n
		}
	}
	return (progressScore + normalize(threatening, exposed)) / 2
}

// Threats counts opposing track pieces that can reach slot with a single roll
// of at most reach steps.
func Threats(b *Board, owner Color, slot Slot, reach int) int {
	if !slot.IsTrack() {
		return 0
	}
	n := 0
	for _, piece := range b.Pieces() {
		if piece.Owner == owner || piece.Location.Kind != OnTrack {
			continue
		}
		d := Distance(piece.Location.Slot, slot)
		if d == 0 || d > reach {
			continue
		}
		// Pieces turn into their home stretch before passing their junction.
		if piece.Progress()+d > JunctionProgress {
			continue
		}
		n++
	}
	return n
}

// normalize converts two values into a single score between -1 and 1
func normalize(value float64, otherValue float64) float64 {
	total := value + otherValue
	if total == 0 {
		return 0
	}
	// [a/(a+b)-0.5]*2 = (a-b)/(a+b)
	return (value - otherValue) / total
}
