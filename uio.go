package pdca

import (
	"encoding/binary"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

//UIO waits on the controller interrupt line through a userspace IO event file.
/*
On platforms that expose the line as /dev/uioN, board code can run the
dispatch loop without a kernel driver:

	for {
		if _, err := u.Wait(); err != nil {
			return err
		}
		controller.ServiceInterrupts()
		if err := u.Ack(); err != nil {
			return err
		}
	}

Wait blocks, everything the sweep calls does not.
*/
type UIO struct {
	fd int
}

//OpenUIO opens the event file of the controller line, e.g. "/dev/uio0".
func OpenUIO(device string) (*UIO, error) {
	fd, err := unix.Open(device, unix.O_RDWR|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, errors.Wrap(err, "uio open")
	}
	return &UIO{fd: fd}, nil
}

//Wait blocks until the line fires and returns the total event count so far.
func (u *UIO) Wait() (uint32, error) {
	var raw [4]byte
	_, err := unix.Read(u.fd, raw[:])
	if err != nil {
		return 0, errors.Wrap(err, "uio wait")
	}
	return binary.LittleEndian.Uint32(raw[:]), nil
}

//Ack re-enables the line at the kernel after servicing.
func (u *UIO) Ack() error {
	var raw [4]byte
	binary.LittleEndian.PutUint32(raw[:], 1)
	_, err := unix.Write(u.fd, raw[:])
	if err != nil {
		return errors.Wrap(err, "uio ack")
	}
	return nil
}

//Close closes the event file.
func (u *UIO) Close() error {
	err := unix.Close(u.fd)
	if err != nil {
		return errors.Wrap(err, "uio close")
	}
	return nil
}
