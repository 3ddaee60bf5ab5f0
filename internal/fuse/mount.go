//go:build !linux
// +build !linux

package fuse

import (
	"fmt"
	"io"
)

type ImageEntry struct {
	Name   string
	Offset uint64
	Size   uint64
}

func Mount(mountpoint string, r io.ReaderAt, images []ImageEntry) error {
	return fmt.Errorf("FUSE mount is only supported on Linux")
}
