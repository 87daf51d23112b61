//go:build !windows
// +build !windows

package dbase

import (
	"fmt"

	"golang.org/x/sys/unix"
)

var DefaultIO IO = UnixIO{}

// UnixIO implements the IO interface for unix systems.
type UnixIO struct{}

func (u UnixIO) ReadTable(config *Config) ([]byte, error) {
	name, err := tableFilename(config)
	if err != nil {
		return nil, newError("dbase-io-unix-readtable-1", err)
	}
	data, err := u.readFile(name)
	if err != nil {
		return nil, newError("dbase-io-unix-readtable-2", err)
	}
	return data, nil
}

func (u UnixIO) ReadMemo(config *Config) ([]byte, error) {
	name, err := memoFilename(config)
	if err != nil {
		return nil, newError("dbase-io-unix-readmemo-1", err)
	}
	if name == "" {
		debugf("No memo file found for table %s", config.Filename)
		return nil, nil
	}
	data, err := u.readFile(name)
	if err != nil {
		return nil, newError("dbase-io-unix-readmemo-2", err)
	}
	return data, nil
}

// Reads the whole file with positional reads
func (u UnixIO) readFile(name string) ([]byte, error) {
	fd, err := unix.Open(name, unix.O_RDONLY|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, newError("dbase-io-unix-readfile-1", fmt.Errorf("opening %v failed with error: %w", name, err))
	}
	defer unix.Close(fd)
	var stat unix.Stat_t
	err = unix.Fstat(fd, &stat)
	if err != nil {
		return nil, newError("dbase-io-unix-readfile-2", fmt.Errorf("stat %v failed with error: %w", name, err))
	}
	buf := make([]byte, stat.Size)
	read := 0
	for read < len(buf) {
		n, err := unix.Pread(fd, buf[read:], int64(read))
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return nil, newError("dbase-io-unix-readfile-3", fmt.Errorf("reading %v failed with error: %w", name, err))
		}
		if n == 0 {
			break
		}
		read += n
	}
	debugf("Read %d bytes from %s", read, name)
	return buf[:read], nil
}
