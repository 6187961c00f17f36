package cpu

// DeviceInfo identifies an attached hardware device.
type DeviceInfo struct {
	Id           uint32 // Hardware ID.
	Version      uint16 // Hardware version.
	Manufacturer uint32 // Manufacturer ID.
}

// Hardware is the bus of devices reached by HWN, HWQ and HWI.
type Hardware interface {
	// Count returns the number of attached devices.
	Count() uint16
	// Query returns the identity of the device at index.
	Query(index uint16) (info DeviceInfo, ok bool)
	// Interrupt delivers a hardware interrupt to the device at index.
	// The device may read and modify the cpu registers and memory.
	Interrupt(index uint16, cpu *Cpu) error
}
