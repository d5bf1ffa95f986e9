package pdca

import (
	"os"

	"github.com/DerLukas15/rpimemmap"
	"github.com/pkg/errors"
)

//MemIO is 32 bit access into the controller register window. Offsets are
//relative to the window base. The hardware implementation sits on a mapped
//register page; tests substitute an emulated window.
type MemIO interface {
	Read32(offset uint32) uint32
	Write32(offset uint32, value uint32)
}

//register window mapped through /dev/mem
type peripheralMem struct {
	mem rpimemmap.MemMap
}

func (p *peripheralMem) Read32(offset uint32) uint32 {
	return *rpimemmap.Reg32(p.mem, offset)
}

func (p *peripheralMem) Write32(offset uint32, value uint32) {
	*rpimemmap.Reg32(p.mem, offset) = value
}

//Controller holds the register window and the engines of all 16 channels.
//All engines share the controller's clock collaborator and enablement count.
type Controller struct {
	mem      MemIO
	mapped   rpimemmap.MemMap //set when Open owns the mapping
	clocks   ClockController
	active   EnableCount
	channels [NumChannels]*Channel
}

//Open maps the controller register window and builds the channel engines.
//clocks is the platform clock subsystem gating the controller.
func Open(clocks ClockController) (*Controller, error) {
	mapped := rpimemmap.NewPeripheral(uint32(os.Getpagesize()))
	err := mapped.Map(registerDMABusOffset, rpimemmap.MemDevDefault, 0)
	if err != nil {
		return nil, errors.Wrap(err, "controller open")
	}
	logOutput("DMA: " + mapped.String())
	c := NewController(&peripheralMem{mem: mapped}, clocks)
	c.mapped = mapped
	return c, nil
}

//NewController builds the channel engines on an already reachable register
//window. Use this with emulated hardware; Open is the path for the real chip.
func NewController(mem MemIO, clocks ClockController) *Controller {
	c := &Controller{
		mem:    mem,
		clocks: clocks,
	}
	for ch := uint32(0); ch < NumChannels; ch++ {
		c.channels[ch] = NewChannel(mem, ch, clocks, &c.active)
	}
	return c
}

//Channel returns the engine for the given channel number.
func (c *Controller) Channel(channel uint32) *Channel {
	return c.channels[channel]
}

//Active returns the number of currently enabled channels.
func (c *Controller) Active() int {
	return c.active.Active()
}

//ServiceInterrupts runs the completion handler of every channel with a pending
//unmasked interrupt source.
/*
The controller raises all channels on one line, so the dispatcher cannot tell
which channel fired. Board code routes the line here and this sweep recovers
the channels from the interrupt status and mask registers.
*/
func (c *Controller) ServiceInterrupts() {
	for _, d := range c.channels {
		if d.read32(registerOffsetDmaIsr)&d.read32(registerOffsetDmaImr) != 0 {
			d.HandleInterrupt()
		}
	}
}

//Close releases the register window mapping. A controller built on an
//emulated window has nothing to release.
func (c *Controller) Close() error {
	if c.mapped == nil {
		return nil
	}
	err := c.mapped.Unmap()
	if err != nil {
		return errors.Wrap(err, "controller close")
	}
	c.mapped = nil
	return nil
}
