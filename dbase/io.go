package dbase

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// IO is the interface to load table and memo files into memory.
// Three implementations are available:
// - UnixIO (direct file access with Unix)
// - WindowsIO (direct file access with Windows)
// - GenericIO (for any custom source implementing io.Reader)
type IO interface {
	ReadTable(config *Config) ([]byte, error)
	// ReadMemo returns nil without error if the table has no memo file
	ReadMemo(config *Config) ([]byte, error)
}

// OpenTable loads the table named in the config and its memo file, if one exists, and opens it.
func OpenTable(config *Config) (*File, error) {
	if config == nil {
		return nil, newError("dbase-io-opentable-1", fmt.Errorf("missing configuration"))
	}
	handler := config.IO
	if handler == nil {
		handler = DefaultIO
	}
	debugf("Opening table: %s - Trim spaces: %v - InterpretCodepage: %v", config.Filename, config.TrimSpaces, config.InterpretCodePage)
	data, err := handler.ReadTable(config)
	if err != nil {
		return nil, newError("dbase-io-opentable-2", err)
	}
	memo, err := handler.ReadMemo(config)
	if err != nil {
		return nil, newError("dbase-io-opentable-3", err)
	}
	file, err := Open(data, memo, config)
	if err != nil {
		return nil, newError("dbase-io-opentable-4", err)
	}
	return file, nil
}

// FindFile returns the path of the file in the same directory whose name matches
// name case-insensitively. The second return value is false if there is none.
func FindFile(name string) (string, bool, error) {
	debugf("Searching for file: %s", name)
	dir := filepath.Dir(name)
	files, err := os.ReadDir(dir)
	if err != nil {
		return "", false, newError("dbase-io-findfile-1", err)
	}
	for _, file := range files {
		if !file.IsDir() && strings.EqualFold(file.Name(), filepath.Base(name)) {
			debugf("Found file: %s", file.Name())
			return filepath.Join(dir, file.Name()), true, nil
		}
	}
	return name, false, nil
}

// FindMemoFile returns the memo file of a table: same name with extension .fpt,
// or .dbt if there is no .fpt, matched case-insensitively.
// An empty path is returned if neither exists.
func FindMemoFile(table string) (string, error) {
	base := strings.TrimSuffix(table, filepath.Ext(table))
	for _, ext := range []FileExtension{FPT, DBT} {
		name, found, err := FindFile(base + string(ext))
		if err != nil {
			return "", newError("dbase-io-findmemofile-1", err)
		}
		if found {
			return name, nil
		}
	}
	return "", nil
}

// Resolves the table file name of the config
func tableFilename(config *Config) (string, error) {
	if len(strings.TrimSpace(config.Filename)) == 0 {
		return "", newError("dbase-io-tablefilename-1", ErrNoFilename)
	}
	name, found, err := FindFile(filepath.Clean(config.Filename))
	if err != nil {
		return "", newError("dbase-io-tablefilename-2", err)
	}
	if !found {
		return "", newError("dbase-io-tablefilename-3", fmt.Errorf("table %v: %w", config.Filename, os.ErrNotExist))
	}
	return name, nil
}

// Resolves the memo file name of the config, empty if there is none
func memoFilename(config *Config) (string, error) {
	name, err := tableFilename(config)
	if err != nil {
		return "", newError("dbase-io-memofilename-1", err)
	}
	return FindMemoFile(name)
}
