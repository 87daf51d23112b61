//go:build windows
// +build windows

package dbase

import (
	"fmt"

	"golang.org/x/sys/windows"
)

var DefaultIO IO = WindowsIO{}

// WindowsIO implements the IO interface for windows systems.
type WindowsIO struct{}

func (w WindowsIO) ReadTable(config *Config) ([]byte, error) {
	name, err := tableFilename(config)
	if err != nil {
		return nil, newError("dbase-io-windows-readtable-1", err)
	}
	data, err := w.readFile(name)
	if err != nil {
		return nil, newError("dbase-io-windows-readtable-2", err)
	}
	return data, nil
}

func (w WindowsIO) ReadMemo(config *Config) ([]byte, error) {
	name, err := memoFilename(config)
	if err != nil {
		return nil, newError("dbase-io-windows-readmemo-1", err)
	}
	if name == "" {
		debugf("No memo file found for table %s", config.Filename)
		return nil, nil
	}
	data, err := w.readFile(name)
	if err != nil {
		return nil, newError("dbase-io-windows-readmemo-2", err)
	}
	return data, nil
}

// Reads the whole file, the size is taken from the file information
func (w WindowsIO) readFile(name string) ([]byte, error) {
	fd, err := windows.Open(name, windows.O_RDONLY, 0)
	if err != nil {
		return nil, newError("dbase-io-windows-readfile-1", fmt.Errorf("opening %v failed with error: %w", name, err))
	}
	defer windows.Close(fd)
	var info windows.ByHandleFileInformation
	err = windows.GetFileInformationByHandle(fd, &info)
	if err != nil {
		return nil, newError("dbase-io-windows-readfile-2", fmt.Errorf("stat %v failed with error: %w", name, err))
	}
	buf := make([]byte, int64(info.FileSizeHigh)<<32|int64(info.FileSizeLow))
	read := 0
	for read < len(buf) {
		n, err := windows.Read(fd, buf[read:])
		if err != nil {
			return nil, newError("dbase-io-windows-readfile-3", fmt.Errorf("reading %v failed with error: %w", name, err))
		}
		if n == 0 {
			break
		}
		read += n
	}
	debugf("Read %d bytes from %s", read, name)
	return buf[:read], nil
}
