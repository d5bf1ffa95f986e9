package pdca

import (
	"fmt"
	"unsafe"

	"github.com/pkg/errors"
)

const (
	//Register offsets within one channel block
	registerOffsetDmaMar  uint32 = 0x00 // Memory Address
	registerOffsetDmaPsr  uint32 = 0x04 // Peripheral Select
	registerOffsetDmaTcr  uint32 = 0x08 // Transfer Counter
	registerOffsetDmaMarr uint32 = 0x0c // Memory Address Reload
	registerOffsetDmaTcrr uint32 = 0x10 // Transfer Counter Reload
	registerOffsetDmaCr   uint32 = 0x14 // Control
	registerOffsetDmaMr   uint32 = 0x18 // Mode
	registerOffsetDmaSr   uint32 = 0x1c // Status
	registerOffsetDmaIer  uint32 = 0x20 // Interrupt Enable
	registerOffsetDmaIdr  uint32 = 0x24 // Interrupt Disable
	registerOffsetDmaImr  uint32 = 0x28 // Interrupt Mask
	registerOffsetDmaIsr  uint32 = 0x2c // Interrupt Status

	//Register values Cr (write only)
	registerValueDmaCrTen  uint32 = (1 << 0) // Transfer Enable
	registerValueDmaCrTdis uint32 = (1 << 1) // Transfer Disable
	registerValueDmaCrEclr uint32 = (1 << 8) // Transfer Error Clear

	//Register values Mr
	registerValueDmaMrEtrig uint32 = (1 << 2) // Start on event instead of peripheral request
	registerValueDmaMrRing  uint32 = (1 << 3) // Ring buffer. No channel logic here drives it

	//Register values Sr
	registerValueDmaSrTen uint32 = (1 << 0) // Transfer enabled

	//Register values Ier/Idr/Imr/Isr
	registerValueDmaIntRcz  uint32 = (1 << 0) // Reload Counter Zero
	registerValueDmaIntTrc  uint32 = (1 << 1) // Transfer Complete
	registerValueDmaIntTerr uint32 = (1 << 2) // Transfer Error
	registerValueDmaIntAll  uint32 = registerValueDmaIntTerr | registerValueDmaIntTrc | registerValueDmaIntRcz

	registerDMABusOffset uint32 = 0x400a2000 // physical base of the controller window
	channelStride        uint32 = 0x40       // bytes between channel register blocks
)

//helper functions for dma register
var (
	registerValueDmaMrSize = func(val uint32) uint32 { return ((val & 0x3) << 0) }

	registerOffsetDmaChannel = func(ch uint32, r uint32) uint32 { //Adds channel specific offset to address
		return ch*channelStride + r
	}
)

//NumChannels is the number of physical channels of the controller.
const NumChannels uint32 = 16

//TransferClient is notified when a transfer completes. The channel borrows the
//client: whoever registers it must keep it alive for as long as the channel may
//fire. Re-registering through Initialize replaces it.
type TransferClient interface {
	TransferDone(pid Peripheral)
}

//Channel is the engine for one PDCA channel.
/*
The engine mirrors its enabled state in software and never reads it back from
hardware. While a transfer is armed the engine exclusively owns the supplied
buffer; nothing else may touch that memory until AbortTransfer hands it back.

All methods are plain register programming and never block. HandleInterrupt is
the only method expected to run from interrupt context and must not race with
Initialize.
*/
type Channel struct {
	mem     MemIO
	channel uint32
	clocks  ClockController
	active  *EnableCount

	client TransferClient
	width  Width

	enabled bool   // software mirror of the enabled state
	buf     []byte // active buffer slot, nil when empty
}

//NewChannel returns the engine for the given channel number.
/*
channel must be below NumChannels; a wrong number silently addresses the wrong
register block, which is a board wiring bug this package does not detect.

NewChannel touches no hardware. All channels of one controller must share mem,
clocks and active, which Open and NewController take care of.
*/
func NewChannel(mem MemIO, channel uint32, clocks ClockController, active *EnableCount) *Channel {
	return &Channel{
		mem:     mem,
		channel: channel,
		clocks:  clocks,
		active:  active,
	}
}

func (d *Channel) read32(offset uint32) uint32 {
	return d.mem.Read32(registerOffsetDmaChannel(d.channel, offset))
}

func (d *Channel) write32(offset uint32, value uint32) {
	d.mem.Write32(registerOffsetDmaChannel(d.channel, offset), value)
}

//Initialize registers the completion client and the element width for all
//following transfers. Must be called before the first transfer. Calling it
//again overwrites both.
func (d *Channel) Initialize(client TransferClient, width Width) {
	d.client = client
	d.width = width
}

//Enable opens the shared clock gates and marks the channel enabled.
/*
The first Enable after a Disable masks all interrupt sources of the channel so
that nothing latent from an earlier session can fire. Enabling an already
enabled channel only re-requests the clocks, which is harmless.
*/
func (d *Channel) Enable() {
	d.clocks.EnableClock(ClockHSB)
	d.clocks.EnableClock(ClockPBB)

	if !d.enabled {
		d.active.acquire()

		//Disable all interrupts
		d.write32(registerOffsetDmaIdr, registerValueDmaIntAll)

		d.enabled = true
		logOutput(fmt.Sprintf("DMA channel %d enabled", d.channel))
	}
}

//Disable issues a hardware transfer disable and marks the channel disabled.
//The shared clock gates close when this was the last enabled channel.
//Disabling an already disabled channel is a no-op.
func (d *Channel) Disable() {
	if d.enabled {
		if d.active.release() == 0 {
			d.clocks.DisableClock(ClockHSB)
			d.clocks.DisableClock(ClockPBB)
		}
		d.write32(registerOffsetDmaCr, registerValueDmaCrTdis)
		d.enabled = false
		logOutput(fmt.Sprintf("DMA channel %d disabled", d.channel))
	}
}

//IsEnabled reports the software enabled state. Hardware is not consulted.
func (d *Channel) IsEnabled() bool {
	return d.enabled
}

//PrepareTransfer programs a transfer of length elements from or to buf and
//takes ownership of buf until it is handed back by AbortTransfer.
/*
length is clamped to the number of elements of the configured width that fit
into buf; an oversized request is truncated, not rejected. Only the
transfer-complete interrupt source is unmasked. The transfer error source stays
masked, a caller needing error detection has to unmask it itself.

Returns ErrTransferActive while a previous buffer still occupies the slot and
ErrEmptyBuffer for a zero length buf.
*/
func (d *Channel) PrepareTransfer(pid Peripheral, buf []byte, length uint32) error {
	if d.buf != nil {
		return errors.Wrap(ErrTransferActive, "prepare transfer")
	}
	if len(buf) == 0 {
		return errors.Wrap(ErrEmptyBuffer, "prepare transfer")
	}
	maxlen := uint32(len(buf)) / d.width.elemSize()
	if length > maxlen {
		length = maxlen
	}

	d.write32(registerOffsetDmaMr, registerValueDmaMrSize(uint32(d.width)))
	d.write32(registerOffsetDmaPsr, uint32(pid))
	d.write32(registerOffsetDmaMarr, uint32(uintptr(unsafe.Pointer(&buf[0]))))
	d.write32(registerOffsetDmaTcrr, length)

	d.write32(registerOffsetDmaIer, registerValueDmaIntTrc)

	d.buf = buf
	logOutput(fmt.Sprintf("DMA channel %d armed for %v, %d elements", d.channel, pid, length))
	return nil
}

//StartTransfer commits a prepared transfer to hardware. Separate from
//PrepareTransfer so a caller can finish all other setup before arming.
func (d *Channel) StartTransfer() {
	d.write32(registerOffsetDmaCr, registerValueDmaCrTen)
}

//DoTransfer is PrepareTransfer directly followed by StartTransfer.
func (d *Channel) DoTransfer(pid Peripheral, buf []byte, length uint32) error {
	err := d.PrepareTransfer(pid, buf, length)
	if err != nil {
		return err
	}
	d.StartTransfer()
	return nil
}

//HandleInterrupt services a completion raised by this channel.
/*
Masks all interrupt sources before touching anything else, so the same
completion cannot re-enter while being serviced; sources are re-armed by the
next PrepareTransfer. The peripheral identity is read back from the peripheral
select register because one interrupt line serves every channel and the
dispatcher does not know it.

The buffer slot stays occupied. The client decides when it wants the memory
back and reclaims it with AbortTransfer, which after a completed transfer only
repeats the masking and zeroes an already exhausted counter.

A completion with no registered client is dropped.
*/
func (d *Channel) HandleInterrupt() {
	d.write32(registerOffsetDmaIdr, registerValueDmaIntAll)
	pid := Peripheral(d.read32(registerOffsetDmaPsr))

	if d.client != nil {
		d.client.TransferDone(pid)
	}
}

//AbortTransfer stops the channel and hands back the buffer of the active
//transfer, or nil if none was armed. This is the only path that releases the
//buffer slot.
func (d *Channel) AbortTransfer() []byte {
	d.write32(registerOffsetDmaIdr, registerValueDmaIntAll)

	//Reset counter
	d.write32(registerOffsetDmaTcr, 0)

	buf := d.buf
	d.buf = nil
	return buf
}

//TransferCounter reads the live element counter of the channel. Useful after
//an early abort to learn how much of the transfer actually ran.
func (d *Channel) TransferCounter() uint32 {
	return d.read32(registerOffsetDmaTcr) & 0xffff
}
