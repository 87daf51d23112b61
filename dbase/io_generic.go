package dbase

import (
	"fmt"
	"io"
)

// GenericIO reads the table from Handle and the memo file from RelatedHandle.
// The config filename is not used. A nil RelatedHandle means there is no memo file.
type GenericIO struct {
	Handle        io.Reader
	RelatedHandle io.Reader
}

func (g GenericIO) ReadTable(config *Config) ([]byte, error) {
	if g.Handle == nil {
		return nil, newError("dbase-io-generic-readtable-1", fmt.Errorf("missing table handle"))
	}
	data, err := io.ReadAll(g.Handle)
	if err != nil {
		return nil, newError("dbase-io-generic-readtable-2", err)
	}
	return data, nil
}

func (g GenericIO) ReadMemo(config *Config) ([]byte, error) {
	if g.RelatedHandle == nil {
		return nil, nil
	}
	data, err := io.ReadAll(g.RelatedHandle)
	if err != nil {
		return nil, newError("dbase-io-generic-readmemo-1", err)
	}
	return data, nil
}
