package board

// Snake is the ordered body of a snake, head first. It is backed by a ring
// buffer so moving is O(1) amortized at both ends.
type Snake struct {
	buf  []Point
	head int
	n    int
}

// NewSnake creates a snake from its segments, head first.
func NewSnake(body ...Point) *Snake {
	size := len(body)
	if size < 4 {
		size = 4
	}
	s := &Snake{buf: make([]Point, size)}
	copy(s.buf, body)
	s.n = len(body)
	return s
}

// Len returns the number of segments.
func (s *Snake) Len() int { return s.n }

// At returns the i-th segment counting from the head.
func (s *Snake) At(i int) Point {
	return s.buf[(s.head+i)%len(s.buf)]
}

// Head returns the first segment. Calling Head on an empty snake panics.
func (s *Snake) Head() Point {
	if s.n == 0 {
		panic("board: head of empty snake")
	}
	return s.At(0)
}

// Tail returns the last segment. Calling Tail on an empty snake panics.
func (s *Snake) Tail() Point {
	if s.n == 0 {
		panic("board: tail of empty snake")
	}
	return s.At(s.n - 1)
}

// Advance moves the snake so newHead becomes the first segment. When grew is
// false the tail segment is dropped, otherwise it is kept and the snake is
// one segment longer.
func (s *Snake) Advance(newHead Point, grew bool) {
	if !grew && s.n > 0 {
		s.n--
	}
	if s.n == len(s.buf) {
		s.grow()
	}
	s.head = (s.head - 1 + len(s.buf)) % len(s.buf)
	s.buf[s.head] = newHead
	s.n++
}

// ContainsExcludingHead reports whether p is any segment but the head.
func (s *Snake) ContainsExcludingHead(p Point) bool {
	for i := 1; i < s.n; i++ {
		if s.At(i) == p {
			return true
		}
	}
	return false
}

// Body returns a copy of the segments, head first.
func (s *Snake) Body() []Point {
	body := make([]Point, s.n)
	for i := range body {
		body[i] = s.At(i)
	}
	return body
}

func (s *Snake) grow() {
	buf := make([]Point, 2*len(s.buf))
	for i := 0; i < s.n; i++ {
		buf[i] = s.At(i)
	}
	s.buf = buf
	s.head = 0
}
