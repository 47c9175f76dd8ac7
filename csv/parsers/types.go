package parsers

type Csv struct {
	Rows []CsvRow
}

// CsvRow is one line of an output file.
type CsvRow interface {
	GetRowForCsv() []string
	GetDate() string
}

type CsvColumn interface {
	String() string
}
