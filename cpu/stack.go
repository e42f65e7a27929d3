package cpu

type ValueStack struct {
	Data []Value
}

func (s *ValueStack) Push(v Value) {
	s.Data = append(s.Data, v)
}

func (s *ValueStack) Pop() (value Value, ok bool) {
	if len(s.Data) == 0 {
		return
	}

	value = s.Data[len(s.Data)-1]
	s.Data = s.Data[:len(s.Data)-1]
	ok = true
	return
}

func (s *ValueStack) Peek() (value Value, ok bool) {
	if len(s.Data) == 0 {
		return
	}

	return s.Data[len(s.Data)-1], true
}

func (s *ValueStack) Empty() bool {
	return len(s.Data) == 0
}

func (s *ValueStack) Depth() int {
	return len(s.Data)
}

func (s *ValueStack) Reset() {
	s.Data = s.Data[:0]
}

type CallStack struct {
	Data []int
}

func (s *CallStack) Push(pc int) {
	s.Data = append(s.Data, pc)
}

func (s *CallStack) Pop() (pc int, ok bool) {
	if len(s.Data) == 0 {
		return
	}

	pc = s.Data[len(s.Data)-1]
	s.Data = s.Data[:len(s.Data)-1]
	ok = true
	return
}

func (s *CallStack) Empty() bool {
	return len(s.Data) == 0
}

func (s *CallStack) Depth() int {
	return len(s.Data)
}

func (s *CallStack) Reset() {
	s.Data = s.Data[:0]
}
