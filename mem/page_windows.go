//go:build windows

package mem

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

// reservePage reserves and commits size bytes of read/write memory.
func reservePage(size int) ([]byte, error) {
	addr, err := windows.VirtualAlloc(0, uintptr(size), windows.MEM_RESERVE|windows.MEM_COMMIT, windows.PAGE_READWRITE)
	if err != nil {
		return nil, &AllocError{Op: "reservePage", Size: uintptr(size), Err: ErrOutOfMemory}
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), size), nil
}

// releasePage releases buf back to the system.
func releasePage(buf []byte) {
	if len(buf) == 0 {
		return
	}
	addr := uintptr(unsafe.Pointer(&buf[0]))
	if err := windows.VirtualFree(addr, 0, windows.MEM_RELEASE); err != nil {
		panic(&AllocError{Op: "releasePage", Size: uintptr(len(buf)), Err: err})
	}
}
