package io

import (
	"github.com/ezrec/dcpu16/cpu"
)

const (
	BUS_LIMIT = 0xffff // Maximum number of attached devices.
)

// Bus is the ordered list of attached devices.
// The device index is the order of attachment.
type Bus struct {
	Devices []Device
}

var _ cpu.Hardware = (*Bus)(nil)

// Attach a device to the bus, returning its index.
func (bus *Bus) Attach(dev Device) (index uint16, err error) {
	if len(bus.Devices) >= BUS_LIMIT {
		err = ErrBusFull
		return
	}

	index = uint16(len(bus.Devices))
	bus.Devices = append(bus.Devices, dev)

	return
}

// Reset every attached device.
func (bus *Bus) Reset() {
	for _, dev := range bus.Devices {
		dev.Reset()
	}
}

// Tick every attached device that implements Ticker.
func (bus *Bus) Tick(dcpu *cpu.Cpu) (err error) {
	for index, dev := range bus.Devices {
		ticker, ok := dev.(Ticker)
		if !ok {
			continue
		}
		err = ticker.Tick(dcpu)
		if err != nil {
			err = &cpu.ErrHardware{Index: uint16(index), Err: err}
			return
		}
	}

	return
}

// Count returns the number of attached devices.
func (bus *Bus) Count() uint16 {
	return uint16(len(bus.Devices))
}

// Query returns the identity of the device at index.
func (bus *Bus) Query(index uint16) (info cpu.DeviceInfo, ok bool) {
	if int(index) >= len(bus.Devices) {
		return
	}

	return bus.Devices[index].Info(), true
}

// Interrupt sends an HWI to the device at index.
// Out of range indexes are ignored.
func (bus *Bus) Interrupt(index uint16, dcpu *cpu.Cpu) (err error) {
	if int(index) >= len(bus.Devices) {
		return
	}

	return bus.Devices[index].Interrupt(dcpu)
}
