package pdca

import "testing"

func TestSharedCountGatesClocks(t *testing.T) {
	c, _, clocks := newTestController()
	ch0 := c.Channel(0)
	ch1 := c.Channel(1)

	ch0.Enable()
	ch1.Enable()
	if got := c.Active(); got != 2 {
		t.Fatalf("active count = %d, want 2", got)
	}

	ch0.Disable()
	if got := c.Active(); got != 1 {
		t.Fatalf("active count = %d after first disable, want 1", got)
	}
	if clocks.disables[ClockHSB] != 0 || clocks.disables[ClockPBB] != 0 {
		t.Fatalf("clocks gated while a channel is still enabled: %v", clocks.disables)
	}

	ch1.Disable()
	if got := c.Active(); got != 0 {
		t.Fatalf("active count = %d after last disable, want 0", got)
	}
	if clocks.disables[ClockHSB] != 1 || clocks.disables[ClockPBB] != 1 {
		t.Fatalf("clock disables = %v, want exactly 1 per domain", clocks.disables)
	}
}

func TestCountersIsolatedPerController(t *testing.T) {
	a, _, _ := newTestController()
	b, _, _ := newTestController()

	a.Channel(0).Enable()
	if got := b.Active(); got != 0 {
		t.Errorf("second controller active count = %d, want 0", got)
	}
}

func TestServiceInterruptsFindsPendingChannel(t *testing.T) {
	c, sim, _ := newTestController()

	client2 := &clientRecorder{}
	client9 := &clientRecorder{}
	for ch, client := range map[uint32]*clientRecorder{2: client2, 9: client9} {
		d := c.Channel(ch)
		d.Initialize(client, WidthByte)
		d.Enable()
		if err := d.DoTransfer(USART0_RX, make([]byte, 8), 8); err != nil {
			t.Fatal(err)
		}
	}

	sim.complete(9)
	c.ServiceInterrupts()

	if len(client2.done) != 0 {
		t.Errorf("idle channel got %v", client2.done)
	}
	if len(client9.done) != 1 {
		t.Fatalf("pending channel completions = %v, want one", client9.done)
	}

	//the handler masked the channel, a second sweep must not fire again
	c.ServiceInterrupts()
	if len(client9.done) != 1 {
		t.Errorf("masked channel fired again: %v", client9.done)
	}
}

func TestServiceInterruptsIgnoresMaskedSources(t *testing.T) {
	c, sim, _ := newTestController()
	client := &clientRecorder{}
	d := c.Channel(4)
	d.Initialize(client, WidthByte)
	d.Enable()

	//error interrupts are never unmasked by this package
	if err := d.DoTransfer(TWIM0_RX, make([]byte, 8), 8); err != nil {
		t.Fatal(err)
	}
	*sim.cell(registerOffsetDmaChannel(4, registerOffsetDmaIsr)) = registerValueDmaIntTerr

	c.ServiceInterrupts()
	if len(client.done) != 0 {
		t.Errorf("masked error source dispatched a completion: %v", client.done)
	}
}
