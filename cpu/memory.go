package cpu

const (
	MEMORY_SIZE = 0x10000 // Words of memory.
)

// Memory is the word addressed store. Addresses wrap at MEMORY_SIZE.
type Memory [MEMORY_SIZE]uint16

// Reset zeros all of memory.
func (mem *Memory) Reset() {
	clear(mem[:])
}

// Read returns a copy of at most n words starting at addr.
// The copy is short if it would run past the end of memory.
func (mem *Memory) Read(addr uint16, n int) (data []uint16) {
	if n <= 0 {
		return
	}
	if int(addr)+n > MEMORY_SIZE {
		n = MEMORY_SIZE - int(addr)
	}
	data = make([]uint16, n)
	copy(data, mem[addr:])
	return
}

// Write copies data to memory starting at addr, returning the number of
// words written.
func (mem *Memory) Write(addr uint16, data []uint16) int {
	return copy(mem[addr:], data)
}
