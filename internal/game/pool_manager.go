package game

import (
	"fmt"
	"log"
	"math"

	"github.com/google/uuid"
)

// ShotOptions tunes a Shoot call.
type ShotOptions struct {
	Frames      bool // sample display frames every FrameRate seconds
	MaxSegments int  // segments a shot may record; 0 means unbounded
}

// SegmentRecord is one segment of a shot.
type SegmentRecord struct {
	Event  Event        `json:"event"`
	Start  TableState   `json:"start"`
	End    TableState   `json:"end"`
	Frames []TableState `json:"frames,omitempty"`
}

// Shot is the full history of a cue strike until the table is at rest.
type Shot struct {
	ID       string          `json:"id"`
	Velocity Coordinate      `json:"velocity"`
	Segments []SegmentRecord `json:"segments"`
	Final    TableState      `json:"final"`
	Pocketed []int           `json:"pocketed"`
	TimedOut bool            `json:"timed_out"`
}

// Shoot strikes the cue ball of t with vel and runs segments until nothing is
// rolling. t is not modified.
func (e *Engine) Shoot(t *Table, vel Coordinate, opts ShotOptions) (*Shot, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: nil table", ErrInvalidOperand)
	}
	cur := t.Copy()
	if err := e.strike(cur, vel); err != nil {
		return nil, err
	}

	shot := &Shot{
		ID:       uuid.NewString(),
		Velocity: vel,
		Segments: make([]SegmentRecord, 0, 16),
		Pocketed: []int{},
	}

	for {
		next, ev := e.Segment(cur)
		if next == nil {
			if ev.Kind == EventTimeout {
				log.Printf("[SIM] Shot %s: no event within %.1fs at t=%.4f, treating table as settled", shot.ID, e.c.MaxTime, cur.Time)
				shot.TimedOut = true
			}
			break
		}
		if opts.MaxSegments > 0 && len(shot.Segments) >= opts.MaxSegments {
			next.Free()
			return nil, fmt.Errorf("shot %s: %w (%d segments)", shot.ID, ErrSegmentLimit, opts.MaxSegments)
		}

		rec := SegmentRecord{Event: ev, Start: cur.State(), End: next.State()}
		if opts.Frames {
			rec.Frames = e.frames(cur, next)
		}
		if ev.Kind == EventCollision && ev.Target == KindPocket.String() {
			shot.Pocketed = append(shot.Pocketed, int(ev.Ball))
		}
		shot.Segments = append(shot.Segments, rec)

		cur.Free()
		cur = next
	}

	shot.Final = cur.State()
	log.Printf("[SIM] Shot %s settled after %d segments (t=%.4f, pocketed=%v)", shot.ID, len(shot.Segments), cur.Time, shot.Pocketed)
	return shot, nil
}

// strike sets the cue ball of t rolling with vel and the matching drag.
func (e *Engine) strike(t *Table, vel Coordinate) error {
	for i := len(t.fixtures); i < t.Len(); i++ {
		obj := t.Object(i)
		if n, _ := ballNumber(obj); n != 0 {
			continue
		}
		pos, _ := ballPos(obj)
		t.replace(i, NewRollingBall(0, pos, vel, e.DragFor(vel)))
		return nil
	}
	return ErrNoCueBall
}

// frames samples the balls of start every FrameRate seconds up to end.
func (e *Engine) frames(start, end *Table) []TableState {
	if e.c.FrameRate <= 0 {
		return nil
	}
	n := int(math.Round((end.Time - start.Time) / e.c.FrameRate))
	out := make([]TableState, 0, n)
	for k := 0; k < n; k++ {
		out = append(out, start.Roll(float64(k)*e.c.FrameRate).State())
	}
	return out
}
