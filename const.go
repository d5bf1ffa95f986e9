//Package pdca drives the peripheral DMA controller (PDCA) of the SAM4L using plain GO.
/*
The controller has 16 independent channels. Each channel moves data between memory
and one peripheral FIFO without the CPU touching the bytes. All channels sit behind
the same two clock gates, so the package keeps a shared count of enabled channels
and turns the gates off only when the last one disables.

Board code builds the channel engines once through Open (real register window) or
NewController (emulated window), calls Initialize on each channel it uses, and routes
the controller interrupt line to ServiceInterrupts. The clock gates themselves belong
to the platform clock subsystem and are reached through the ClockController interface.
*/
package pdca

import (
	"errors"
	"fmt"
)

// Errors
var (
	ErrTransferActive = errors.New("buffer slot still occupied. Abort the active transfer first")
	ErrEmptyBuffer    = errors.New("transfer buffer is empty")
	ErrNoRegisterMap  = errors.New("register window not mapped. Not initialized?")
)

//Width is the element size a channel moves per peripheral request.
type Width uint8

//Valid Widths. The numeric value is the SIZE field encoding of the mode register.
const (
	WidthByte     Width = 0
	WidthHalfword Width = 1
	WidthWord     Width = 2
)

//bytes per element
func (w Width) elemSize() uint32 {
	switch w {
	case WidthHalfword:
		return 2
	case WidthWord:
		return 4
	}
	return 1
}

//Enable Debug output
var Debug bool

func logOutput(msg string) {
	if Debug {
		fmt.Println(msg)
	}
}
