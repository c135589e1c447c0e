package entity

import (
	"log"

	"speed-snake/game/types"
)

// Segment is one cell of the body. Dir is the heading the segment had when it
// was the head. ID is unique within a body and stable while the segment lives.
type Segment struct {
	ID  uint64
	Pos types.Point
	Dir types.Direction
}

// Snake keeps its segments in a ring buffer, head first. Prepending a head and
// dropping the tail are both O(1); the buffer doubles when full.
type Snake struct {
	segments []Segment
	head     int // index of the head segment in segments
	length   int
	nextID   uint64

	direction types.Direction // committed heading of the head
	pending   types.Direction // latest input, applied on the next Step
	growing   bool
}

// NewSnake builds a straight body of length segments ending at startPos and
// extending backward, opposite to dir. An out-of-range length is replaced by
// types.DefaultLength.
func NewSnake(startPos types.Point, length int, dir types.Direction) *Snake {
	if length < types.MinLength || length > types.MaxLength {
		log.Printf("snake: invalid initial length %d, using %d", length, types.DefaultLength)
		length = types.DefaultLength
	}
	if !dir.Valid() {
		log.Printf("snake: invalid initial direction %d, using %v", dir, types.North)
		dir = types.North
	}

	s := &Snake{
		segments:  make([]Segment, nextCapacity(length)),
		direction: dir,
		pending:   dir,
	}

	back := dir.Opposite().Delta()
	for i := 0; i < length; i++ {
		pos := types.Point{X: startPos.X + i*back.X, Y: startPos.Y + i*back.Y}
		s.pushBack(pos, dir)
	}
	return s
}

func nextCapacity(n int) int {
	c := 16
	for c < n+1 {
		c *= 2
	}
	return c
}

func (s *Snake) index(i int) int {
	return (s.head + i) % len(s.segments)
}

func (s *Snake) grow() {
	if s.length < len(s.segments) {
		return
	}
	buf := make([]Segment, len(s.segments)*2)
	for i := 0; i < s.length; i++ {
		buf[i] = s.segments[s.index(i)]
	}
	s.segments = buf
	s.head = 0
}

func (s *Snake) newSegment(pos types.Point, dir types.Direction) Segment {
	seg := Segment{ID: s.nextID, Pos: pos, Dir: dir}
	s.nextID++
	return seg
}

// pushBack is only used while building the initial body.
func (s *Snake) pushBack(pos types.Point, dir types.Direction) {
	s.grow()
	s.segments[s.index(s.length)] = s.newSegment(pos, dir)
	s.length++
}

func (s *Snake) pushFront(pos types.Point, dir types.Direction) {
	s.grow()
	s.head = (s.head - 1 + len(s.segments)) % len(s.segments)
	s.segments[s.head] = s.newSegment(pos, dir)
	s.length++
}

func (s *Snake) popBack() Segment {
	i := s.index(s.length - 1)
	seg := s.segments[i]
	s.segments[i] = Segment{}
	s.length--
	return seg
}

// SetDirection records player intent. Reversals are resolved in Step, so any
// number of calls between two steps leaves the body consistent.
func (s *Snake) SetDirection(dir types.Direction) {
	if !dir.Valid() {
		return
	}
	s.pending = dir
}

// Step advances the head one cell and then retracts the tail unless the body
// is growing. removed is false when the tail stayed in place.
func (s *Snake) Step() (head types.Point, tail types.Point, removed bool) {
	// A pending reversal is dropped, not queued.
	if !s.direction.IsOpposite(s.pending) {
		s.direction = s.pending
	}
	s.pending = s.direction

	head = s.direction.Step(s.Head())
	s.pushFront(head, s.direction)

	if s.growing {
		s.growing = false
		return head, types.Point{}, false
	}
	return head, s.popBack().Pos, true
}

// MarkGrowing suppresses the tail retraction of the next Step.
func (s *Snake) MarkGrowing() {
	s.growing = true
}

func (s *Snake) Growing() bool {
	return s.growing
}

func (s *Snake) Head() types.Point {
	return s.segments[s.head].Pos
}

func (s *Snake) Tail() types.Point {
	return s.segments[s.index(s.length-1)].Pos
}

// Direction is the committed heading of the head.
func (s *Snake) Direction() types.Direction {
	return s.direction
}

// Pending is the heading that the next Step will try to apply.
func (s *Snake) Pending() types.Direction {
	return s.pending
}

func (s *Snake) Len() int {
	return s.length
}

// Each visits segments from head to tail until fn returns false.
func (s *Snake) Each(fn func(Segment) bool) {
	for i := 0; i < s.length; i++ {
		if !fn(s.segments[s.index(i)]) {
			return
		}
	}
}

// Segments returns a head-to-tail copy of the body.
func (s *Snake) Segments() []Segment {
	out := make([]Segment, 0, s.length)
	s.Each(func(seg Segment) bool {
		out = append(out, seg)
		return true
	})
	return out
}

// Positions returns the head-to-tail cell positions.
func (s *Snake) Positions() []types.Point {
	out := make([]types.Point, 0, s.length)
	s.Each(func(seg Segment) bool {
		out = append(out, seg.Pos)
		return true
	})
	return out
}
