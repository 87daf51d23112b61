// This go-dbase package decodes dBase and FoxPro tables (.dbf) together with
// their optional memo files (.fpt/.dbt) into delimited text.
//
// The package reads the fixed table header and the column descriptors, walks
// the fixed size row area and decodes every field according to its type tag.
// Memo fields are resolved from either memo layout, the 512 byte block layout
// of dBase or the length prefixed layout of FoxPro. Types without a decoder
// produce a placeholder text instead of an error, so a conversion always
// completes unless the binary layout itself is broken.
//
// Decoding works on buffers that are fully loaded into memory and never
// modifies them. Independent tables can be converted in parallel.
package dbase

// Config is a struct containing the configuration for opening and converting a table.
// The filename is only needed when the table is opened with OpenTable.
//
// The other fields are optional and are false by default.
// If Converter is not set the code page mark of the table selects the converter.
type Config struct {
	Filename          string            // The filename of the DBF file.
	Converter         EncodingConverter // The encoding converter to use.
	InterpretCodePage bool              // Map every known code page mark instead of the Western default table. Ignored if a converter is set.
	TrimSpaces        bool              // Trim spaces of character and numeric values.
	Separator         byte              // Field separator of the text output, ';' if zero.
	TrailingSeparator bool              // Terminate every field with the separator, as older exports did.
	UTF8              bool              // Write UTF-8 output instead of the table's code page.
	IO                IO                // The IO interface to use for OpenTable.
}

func (c *Config) separator() byte {
	if c == nil || c.Separator == 0 {
		return ';'
	}
	return c.Separator
}
