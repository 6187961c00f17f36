package cpu

const (
	INTERRUPT_LIMIT = 256 // Maximum interrupt queue depth
)

// Queue is the FIFO of pending interrupt messages.
type Queue struct {
	Data []uint16
}

func (q *Queue) Push(value uint16) {
	q.Data = append(q.Data, value)
}

func (q *Queue) Pop() (value uint16, ok bool) {
	value, ok = q.Peek()
	if ok {
		q.Data = q.Data[1:]
	}
	return
}

func (q *Queue) Empty() bool {
	return len(q.Data) == 0
}

func (q *Queue) Full() bool {
	return len(q.Data) >= INTERRUPT_LIMIT
}

func (q *Queue) Peek() (value uint16, ok bool) {
	if q.Empty() {
		return
	}

	return q.Data[0], true
}

func (q *Queue) Reset() {
	q.Data = nil
}
