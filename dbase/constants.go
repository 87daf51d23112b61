package dbase

import "fmt"

// FileVersion is the first byte of a table file.
type FileVersion byte

const (
	FoxBase             FileVersion = 0x02
	FoxBasePlus         FileVersion = 0x03
	FoxPro              FileVersion = 0x30
	FoxProAutoincrement FileVersion = 0x31
	FoxProVar           FileVersion = 0x32
	DBaseIV             FileVersion = 0x04
	FoxBasePlusMemo     FileVersion = 0x83
	DBaseIVMemo         FileVersion = 0x8B
	FoxPro2Memo         FileVersion = 0xF5
)

var versionNames = map[FileVersion]string{
	FoxBase:             "FoxBASE",
	FoxBasePlus:         "FoxBASE+/dBase III plus, no memo",
	FoxPro:              "Visual FoxPro",
	FoxProAutoincrement: "Visual FoxPro, autoincrement enabled",
	FoxProVar:           "Visual FoxPro, Varchar, Varbinary, or Blob-enabled",
	DBaseIV:             "dBase IV",
	FoxBasePlusMemo:     "FoxBASE+/dBase III plus, with memo",
	DBaseIVMemo:         "dBase IV with memo",
	FoxPro2Memo:         "FoxPro 2.x with memo",
}

// Returns the product name of the version byte, or its hex value if unknown
func (v FileVersion) String() string {
	if name, ok := versionNames[v]; ok {
		return name
	}
	return fmt.Sprintf("unknown (0x%02x)", byte(v))
}

// Marker is a byte with a structural meaning inside a table or memo file.
type Marker byte

const (
	Null      Marker = 0x00
	Blank     Marker = 0x20
	ColumnEnd Marker = 0x0D
	Active    Marker = Blank
	Deleted   Marker = 0x2A
	EOFMarker Marker = 0x1A
)

// TableFlag is a bit in header byte 28
type TableFlag byte

const (
	MemoFlag TableFlag = 0x02
)

// ColumnFlag is a bit in the descriptor flag byte
type ColumnFlag byte

const (
	SystemFlag ColumnFlag = 0x01
)

// DataType is the one character type tag of a column.
type DataType byte

const (
	Character DataType = 'C'
	Numeric   DataType = 'N'
	Date      DataType = 'D'
	Logical   DataType = 'L'
	Integer   DataType = 'I'
	MemoType  DataType = 'M'
	Float     DataType = 'F'
	DateTime  DataType = 'T'
	Currency  DataType = 'Y'
	Double    DataType = 'B'
	General   DataType = 'G'
	Picture   DataType = 'P'
	Autoinc   DataType = '+'
	IEEE      DataType = 'O'
	Timestamp DataType = '@'
	Varchar   DataType = 'V'
	NullFlags DataType = '0'
)

// Returns the type tag as string
func (t DataType) String() string {
	return string(t)
}

// FileExtension is an upper case extension of a dBase related file.
type FileExtension string

const (
	DBF FileExtension = ".DBF"
	FPT FileExtension = ".FPT"
	DBT FileExtension = ".DBT"
	CSV FileExtension = ".CSV"
)

const (
	// Fixed size of the table header before the column descriptors
	HeaderSize = 32
	// Size of one column descriptor
	ColumnSize = 32
	// Size of the memo file header
	MemoHeaderSize = 512
	// Block size of memo files that do not declare one
	DefaultBlockSize = 512
	// Length of the sub header in front of every memo blob
	MemoBlockHeaderSize = 8
	// Name of the FoxPro system column holding null and varlength bits
	NullFlagsColumn = "_NullFlags"
)

// Text written in place of values that cannot be decoded.
const (
	MissingMemoText       = "memofile missing"
	UnknownTypeText       = "missing implementation unknown fieldtype"
	InvalidIntegerText    = "missing implementation for integer length"
	missingImplementation = "missing implementation for "
)

// Placeholder text for each type tag without a decoder
var placeholders = map[DataType]string{
	Float:     missingImplementation + "float",
	DateTime:  missingImplementation + "time",
	Currency:  missingImplementation + "currency",
	Double:    missingImplementation + "double",
	General:   missingImplementation + "general",
	Picture:   missingImplementation + "picture",
	Autoinc:   missingImplementation + "autoinc",
	IEEE:      missingImplementation + "double",
	Timestamp: missingImplementation + "timestamp",
	Varchar:   missingImplementation + "varchar",
}
