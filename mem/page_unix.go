//go:build unix

package mem

import "golang.org/x/sys/unix"

// reservePage maps size bytes of anonymous, private memory.
func reservePage(size int) ([]byte, error) {
	buf, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, &AllocError{Op: "reservePage", Size: uintptr(size), Err: ErrOutOfMemory}
	}
	return buf, nil
}

// releasePage unmaps buf. Failure here indicates a corrupted region chain
// (a bad address or length was supplied) - serious enough that continuing
// silently would be worse than crashing.
func releasePage(buf []byte) {
	if len(buf) == 0 {
		return
	}
	if err := unix.Munmap(buf); err != nil {
		panic(&AllocError{Op: "releasePage", Size: uintptr(len(buf)), Err: err})
	}
}
